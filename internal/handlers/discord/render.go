package discord

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/librogame/passomorto/internal/entities"
	"github.com/librogame/passomorto/internal/services/game"
)

const (
	embedColorNarrative = 0x8b6f47
	embedColorCombat    = 0xb03a2e
	embedColorCreation  = 0x2e86c1
	embedColorGameOver  = 0x1b2631

	maxEmbedDescription = 4096
	maxButtonsPerRow    = 5
)

// response is the render model shared by initial responses and in-place
// message updates
type response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

func (h *Handler) respond(s *discordgo.Session, i *discordgo.InteractionCreate, r *response) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Embeds:     r.Embeds,
			Components: r.Components,
		},
	})
	if err != nil {
		log.Printf("failed to respond to interaction: %v", err)
	}
}

func (h *Handler) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("failed to respond to interaction: %v", err)
	}
}

// respondEphemeralWith sends an ephemeral response with components
// attached (used by the reset confirmation prompt)
func (h *Handler) respondEphemeralWith(s *discordgo.Session, i *discordgo.InteractionCreate, r *response) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Embeds:     r.Embeds,
			Components: r.Components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("failed to respond to interaction: %v", err)
	}
}

// update edits the message the component belongs to
func (h *Handler) update(s *discordgo.Session, i *discordgo.InteractionCreate, r *response) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Embeds:     r.Embeds,
			Components: r.Components,
		},
	})
	if err != nil {
		log.Printf("failed to update message: %v", err)
	}
}

// editMessage rewrites a previously sent message outside of an
// interaction response (used by the delayed enemy phase)
func (h *Handler) editMessage(s *discordgo.Session, channelID, messageID string, r *response) {
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Content:    &r.Content,
		Embeds:     &r.Embeds,
		Components: &r.Components,
	})
	if err != nil {
		log.Printf("failed to edit message %s: %v", messageID, err)
	}
}

// renderChapter builds the message for a chapter view: narrative embed,
// stats footer, and the action components the view allows
func (h *Handler) renderChapter(session *playSession, view *game.ChapterView) *response {
	embed := &discordgo.MessageEmbed{
		Title:       chapterTitle(view),
		Description: truncate(view.Text, maxEmbedDescription),
		Color:       embedColorNarrative,
		Footer:      statsFooter(session.State),
	}
	if view.Image != nil {
		embed.Image = &discordgo.MessageEmbedImage{URL: view.Image.Src}
	}

	r := &response{Embeds: []*discordgo.MessageEmbed{embed}}

	switch {
	case view.GameOver:
		embed.Color = embedColorGameOver
		embed.Description += "\n\n**La tua avventura finisce qui.**"

	case view.CombatActive:
		r.Embeds = append(r.Embeds, h.combatEmbed(session.State))
		r.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Attacca!",
					Style:    discordgo.DangerButton,
					CustomID: "gamebook:attack",
				},
			}},
		}

	case view.SkillCheckActive:
		check := session.State.ActiveSkillCheck
		if check != nil {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Prova di abilità",
				Value: fmt.Sprintf("%s — devi totalizzare almeno **%d**", check.Skill, check.Target),
			})
		}
		r.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Tira i dadi",
					Style:    discordgo.PrimaryButton,
					CustomID: "gamebook:skill",
				},
			}},
		}

	default:
		r.Components = chapterComponents(view)
		if view.IsEnding {
			embed.Color = embedColorGameOver
		}
		if view.NoActions {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Vicolo cieco",
				Value: "Questo capitolo non offre azioni. Ricarica un salvataggio o ricomincia.",
			})
		}
	}

	return r
}

// chapterComponents lays out take-item and choice buttons in rows
func chapterComponents(view *game.ChapterView) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent

	for _, offer := range view.ItemsOffered {
		buttons = append(buttons, discordgo.Button{
			Label:    truncate("Prendi: "+entities.ItemBaseName(offer.Name), 80),
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("gamebook:take:%s|%s", offer.Name, offer.Type),
			Disabled: !offer.CanTake,
		})
	}

	for _, choice := range view.Choices {
		buttons = append(buttons, discordgo.Button{
			Label:    truncate(fmt.Sprintf("%s (Capitolo %d)", choice.Text, choice.Target), 80),
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("gamebook:choice:%d", choice.Target),
		})
	}

	return buttonRows(buttons)
}

// combatEmbed shows the enemy roster and the tail of the combat log
func (h *Handler) combatEmbed(state *entities.PlayerState) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Combattimento",
		Color: embedColorCombat,
	}

	if state.ActiveCombat != nil {
		var roster strings.Builder
		for _, enemy := range state.ActiveCombat.Enemies {
			status := fmt.Sprintf("R: %d/%d", enemy.Resistance, enemy.InitialResistance)
			if enemy.Resistance <= 0 {
				status = "sconfitto"
			}
			fmt.Fprintf(&roster, "**%s** (C: %d) — %s\n", enemy.Name, enemy.Combativity, status)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Nemici",
			Value: roster.String(),
		})
	}

	if tail := logTail(state.CombatLog, 10); tail != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Diario del combattimento",
			Value: tail,
		})
	}

	return embed
}

func chapterTitle(view *game.ChapterView) string {
	if view.Title == "" {
		return ""
	}
	return fmt.Sprintf("Capitolo %d — %s", view.ChapterID, view.Title)
}

func statsFooter(state *entities.PlayerState) *discordgo.MessageEmbedFooter {
	if !state.Started() {
		return nil
	}
	return &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("C: %d | R: %d/%d | Oro: %d",
			state.Stats.Combativity,
			state.Stats.Endurance, state.Stats.EnduranceMax,
			state.Gold),
	}
}

// buttonRows chunks buttons into action rows of at most five
func buttonRows(buttons []discordgo.MessageComponent) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for len(buttons) > 0 {
		n := len(buttons)
		if n > maxButtonsPerRow {
			n = maxButtonsPerRow
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons[:n]})
		buttons = buttons[n:]
	}
	return rows
}

func logTail(lines []string, n int) string {
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-1] + "…"
}
