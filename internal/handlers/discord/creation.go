package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/librogame/passomorto/internal/entities"
	"github.com/librogame/passomorto/internal/services/creation"
)

// startChapter is where every adventure begins after creation
const startChapter = 1

// spendOptions are the stats offered in the point-spend menus, with the
// labels the book uses
var spendOptions = []struct {
	Key   string
	Label string
}{
	{"combattivita", "Combattività (+1)"},
	{"resistenza", "Resistenza (+3)"},
	{"mira", "Mira (+1)"},
	{"movimento", "Movimento (+1)"},
	{"sotterfugio", "Sotterfugio (+1)"},
	{"scassinare", "Scassinare (+1)"},
	{"percezione", "Percezione (+1)"},
	{"conoscenzaarcana", "Conoscenza Arcana (+1)"},
}

// renderCreation builds the character creation message: the draft sheet
// plus the spend, refund and language menus
func (h *Handler) renderCreation(draft *entities.CreationDraft) *response {
	embed := &discordgo.MessageEmbed{
		Title: "Creazione del personaggio",
		Description: fmt.Sprintf(
			"Distribuisci i tuoi **%d Punti Esperienza**. Ogni punto vale +1 su una caratteristica (+3 Resistenza) oppure una lingua aggiuntiva.\n\nPunti rimanenti: **%d**",
			draft.Pool(), draft.Remaining()),
		Color:  embedColorCreation,
		Fields: draftFields(draft),
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    "gamebook:create_spend",
				Placeholder: "Spendi un punto su...",
				Options:     spendMenuOptions(),
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    "gamebook:create_refund",
				Placeholder: "Recupera un punto da...",
				Options:     spendMenuOptions(),
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    "gamebook:create_lang",
				Placeholder: "Lingua aggiuntiva (1 punto)",
				Options:     languageMenuOptions(h.creationService),
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Rimuovi lingua",
				Style:    discordgo.SecondaryButton,
				CustomID: "gamebook:create_lang_clear",
				Disabled: draft.Language == "",
			},
			discordgo.Button{
				Label:    "Conferma personaggio",
				Style:    discordgo.SuccessButton,
				CustomID: "gamebook:create_confirm",
				Disabled: !draft.Confirmable(),
			},
		}},
	}

	return &response{Embeds: []*discordgo.MessageEmbed{embed}, Components: components}
}

func draftFields(draft *entities.CreationDraft) []*discordgo.MessageEmbedField {
	st := draft.Stats
	language := draft.Language
	if language == "" {
		language = "nessuna"
	}
	return []*discordgo.MessageEmbedField{
		{
			Name: "Caratteristiche",
			Value: fmt.Sprintf("Combattività: **%d**\nResistenza: **%d/%d**",
				st.Combativity, st.Endurance, st.EnduranceMax),
			Inline: true,
		},
		{
			Name: "Abilità",
			Value: fmt.Sprintf("Mira: **%d**\nMovimento: **%d**\nSotterfugio: **%d**\nScassinare: **%d**\nPercezione: **%d**\nConoscenza Arcana: **%d**",
				st.Aim, st.Movement, st.Stealth, st.Lockpicking, st.Perception, st.ArcaneKnowledge),
			Inline: true,
		},
		{
			Name:   "Lingua aggiuntiva",
			Value:  language,
			Inline: true,
		},
	}
}

func spendMenuOptions() []discordgo.SelectMenuOption {
	options := make([]discordgo.SelectMenuOption, 0, len(spendOptions))
	for _, opt := range spendOptions {
		options = append(options, discordgo.SelectMenuOption{
			Label: opt.Label,
			Value: opt.Key,
		})
	}
	return options
}

func languageMenuOptions(svc creation.Service) []discordgo.SelectMenuOption {
	languages := svc.Languages()
	options := make([]discordgo.SelectMenuOption, 0, len(languages))
	for _, lang := range languages {
		options = append(options, discordgo.SelectMenuOption{Label: lang, Value: lang})
	}
	return options
}

func (h *Handler) handleCreationSpend(s *discordgo.Session, i *discordgo.InteractionCreate, session *playSession) {
	if session.Draft == nil {
		h.respondEphemeral(s, i, "La creazione del personaggio non è in corso.")
		return
	}
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}

	if err := h.creationService.SpendPoint(context.Background(), session.Draft, values[0]); err != nil {
		log.Printf("spend point on %q rejected: %v", values[0], err)
	}
	h.update(s, i, h.renderCreation(session.Draft))
}

func (h *Handler) handleCreationRefund(s *discordgo.Session, i *discordgo.InteractionCreate, session *playSession) {
	if session.Draft == nil {
		h.respondEphemeral(s, i, "La creazione del personaggio non è in corso.")
		return
	}
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}

	if err := h.creationService.RefundPoint(context.Background(), session.Draft, values[0]); err != nil {
		log.Printf("refund point on %q rejected: %v", values[0], err)
	}
	h.update(s, i, h.renderCreation(session.Draft))
}

func (h *Handler) handleCreationLanguage(s *discordgo.Session, i *discordgo.InteractionCreate, session *playSession) {
	if session.Draft == nil {
		h.respondEphemeral(s, i, "La creazione del personaggio non è in corso.")
		return
	}
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}

	if err := h.creationService.SelectLanguage(context.Background(), session.Draft, values[0]); err != nil {
		log.Printf("language selection %q rejected: %v", values[0], err)
	}
	h.update(s, i, h.renderCreation(session.Draft))
}

func (h *Handler) handleCreationLanguageClear(s *discordgo.Session, i *discordgo.InteractionCreate, session *playSession) {
	if session.Draft == nil {
		h.respondEphemeral(s, i, "La creazione del personaggio non è in corso.")
		return
	}
	h.creationService.ClearLanguage(context.Background(), session.Draft)
	h.update(s, i, h.renderCreation(session.Draft))
}

// handleCreationConfirm commits the draft and moves on to the starting
// item pick
func (h *Handler) handleCreationConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, session *playSession) {
	if session.Draft == nil {
		h.respondEphemeral(s, i, "La creazione del personaggio non è in corso.")
		return
	}

	if err := h.creationService.Confirm(context.Background(), session.Draft, session.State); err != nil {
		h.respondEphemeral(s, i, "Devi spendere tutti i Punti Esperienza prima di confermare.")
		return
	}
	session.Draft = nil

	h.update(s, i, h.renderItemsPick())
}

// renderItemsPick shows the fixed equipment list with a pick-three menu
func (h *Handler) renderItemsPick() *response {
	offers := h.creationService.StartingItems()

	options := make([]discordgo.SelectMenuOption, 0, len(offers))
	for _, offer := range offers {
		options = append(options, discordgo.SelectMenuOption{
			Label: entities.ItemBaseName(offer.Name),
			Value: offer.Name,
		})
	}

	minPick := creation.StartingItemCount
	embed := &discordgo.MessageEmbed{
		Title: "Equipaggiamento iniziale",
		Description: fmt.Sprintf("Scegli esattamente **%d** oggetti da portare con te.",
			creation.StartingItemCount),
		Color: embedColorCreation,
	}

	return &response{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    "gamebook:items_pick",
					Placeholder: "Scegli tre oggetti",
					MinValues:   &minPick,
					MaxValues:   creation.StartingItemCount,
					Options:     options,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Inizia l'avventura",
					Style:    discordgo.SuccessButton,
					CustomID: "gamebook:items_start",
				},
			}},
		},
	}
}

func (h *Handler) handleItemsPick(s *discordgo.Session, i *discordgo.InteractionCreate, session *playSession) {
	values := i.MessageComponentData().Values

	picked := make([]entities.ItemOffer, 0, len(values))
	for _, offer := range h.creationService.StartingItems() {
		for _, value := range values {
			if offer.Name == value {
				picked = append(picked, offer)
			}
		}
	}
	session.PickedItems = picked

	// Acknowledge without changing the message; the start button commits
	h.update(s, i, h.renderItemsPick())
}

// handleItemsStart applies the picked items and opens chapter 1
func (h *Handler) handleItemsStart(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, session *playSession) {
	ctx := context.Background()

	if err := h.creationService.ApplyStartingItems(ctx, session.State, session.PickedItems); err != nil {
		h.respondEphemeral(s, i, fmt.Sprintf("Scegli esattamente %d oggetti prima di partire.", creation.StartingItemCount))
		return
	}
	session.PickedItems = nil

	names := make([]string, 0, len(session.State.Inventory.Backpack))
	names = append(names, session.State.Inventory.Backpack...)
	log.Printf("user %s starts the adventure with backpack: %s", userID, strings.Join(names, ", "))

	view, err := h.gameService.DisplayChapter(ctx, userID, session.State, startChapter)
	if err != nil {
		h.respondEphemeral(s, i, "Impossibile aprire il primo capitolo.")
		return
	}

	h.update(s, i, h.renderChapter(session, view))
}
