// Package discord adapts the gamebook services to Discord interactions:
// one slash command, component-driven navigation, and per-user play
// sessions held in memory.
package discord

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/librogame/passomorto/internal/entities"
	"github.com/librogame/passomorto/internal/services/creation"
	"github.com/librogame/passomorto/internal/services/game"
)

// Handler handles all Discord interactions
type Handler struct {
	gameService     game.Service
	creationService creation.Service
	turnDelay       time.Duration

	mu       sync.Mutex
	sessions map[string]*playSession
}

// playSession is the in-memory state of one user's run. The draft exists
// only during character creation; the item pick only between creation
// and the first chapter.
type playSession struct {
	State       *entities.PlayerState
	Draft       *entities.CreationDraft
	PickedItems []entities.ItemOffer
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	GameService     game.Service
	CreationService creation.Service

	// TurnDelay is the pause before the enemy combat phase plays out
	TurnDelay time.Duration
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.GameService == nil {
		panic("game service is required")
	}
	if cfg.CreationService == nil {
		panic("creation service is required")
	}

	return &Handler{
		gameService:     cfg.GameService,
		creationService: cfg.CreationService,
		turnDelay:       cfg.TurnDelay,
		sessions:        make(map[string]*playSession),
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "gamebook",
			Description: "Play the gamebook",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "new",
					Description: "Start a new adventure (character creation)",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "load",
					Description: "Resume your saved adventure",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "save",
					Description: "Save your current progress",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "reset",
					Description: "Delete your save and start over",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
	}

	for _, cmd := range commands {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd); err != nil {
			return err
		}
		log.Printf("Registered command: %s", cmd.Name)
	}

	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(s, i)
	}
}

func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != "gamebook" || len(data.Options) == 0 {
		return
	}

	userID := interactionUserID(i)
	if userID == "" {
		return
	}

	switch data.Options[0].Name {
	case "new":
		h.handleNewGame(s, i, userID)
	case "load":
		h.handleLoadGame(s, i, userID)
	case "save":
		h.handleSaveGame(s, i, userID)
	case "reset":
		h.handleResetGame(s, i, userID)
	}
}

func (h *Handler) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	// Custom ID format: "gamebook:action:data"
	parts := strings.Split(customID, ":")
	if len(parts) < 2 || parts[0] != "gamebook" {
		return
	}

	userID := interactionUserID(i)
	if userID == "" {
		return
	}

	action := parts[1]
	arg := ""
	if len(parts) >= 3 {
		arg = strings.Join(parts[2:], ":")
	}

	// The reset confirmation works on the save slot alone, no active
	// session required
	switch action {
	case "reset_confirm":
		h.handleResetConfirm(s, i, userID)
		return
	case "reset_cancel":
		h.update(s, i, &response{Content: "Cancellazione annullata."})
		return
	}

	session := h.session(userID)
	if session == nil {
		h.respondEphemeral(s, i, "Nessuna partita in corso. Usa `/gamebook new` o `/gamebook load`.")
		return
	}

	switch action {
	case "choice":
		h.handleChoice(s, i, userID, session, arg)
	case "take":
		h.handleTakeItem(s, i, userID, session, arg)
	case "attack":
		h.handleAttack(s, i, userID, session)
	case "skill":
		h.handleSkillRoll(s, i, userID, session)
	case "continue":
		h.handleContinue(s, i, userID, session, arg)
	case "create_spend":
		h.handleCreationSpend(s, i, session)
	case "create_refund":
		h.handleCreationRefund(s, i, session)
	case "create_lang":
		h.handleCreationLanguage(s, i, session)
	case "create_lang_clear":
		h.handleCreationLanguageClear(s, i, session)
	case "create_confirm":
		h.handleCreationConfirm(s, i, session)
	case "items_pick":
		h.handleItemsPick(s, i, session)
	case "items_start":
		h.handleItemsStart(s, i, userID, session)
	default:
		log.Printf("unknown component action %q", action)
	}
}

// handleNewGame begins character creation for a fresh session
func (h *Handler) handleNewGame(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	session := &playSession{
		State: entities.NewPlayerState(),
		Draft: h.creationService.NewDraft(context.Background()),
	}
	h.setSession(userID, session)

	h.respond(s, i, h.renderCreation(session.Draft))
}

// handleLoadGame restores the saved state and shows the saved chapter
func (h *Handler) handleLoadGame(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	ctx := context.Background()

	state, err := h.gameService.LoadGame(ctx, userID)
	if err != nil {
		log.Printf("load failed for user %s: %v", userID, err)
		h.respondEphemeral(s, i, "Nessun salvataggio valido trovato.")
		return
	}

	session := &playSession{State: state}
	h.setSession(userID, session)

	view, err := h.gameService.DisplayChapter(ctx, userID, state, state.Chapter)
	if err != nil {
		h.respondEphemeral(s, i, "Impossibile caricare il capitolo salvato.")
		return
	}
	h.respond(s, i, h.renderChapter(session, view))
}

func (h *Handler) handleSaveGame(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	session := h.session(userID)
	if session == nil || session.State == nil {
		h.respondEphemeral(s, i, "Nessuna partita in corso.")
		return
	}

	saved, err := h.gameService.SaveGame(context.Background(), userID, session.State)
	if err != nil {
		log.Printf("save failed for user %s: %v", userID, err)
		h.respondEphemeral(s, i, "Salvataggio non riuscito.")
		return
	}
	if !saved {
		h.respondEphemeral(s, i, "Non c'è nulla da salvare in questo momento.")
		return
	}
	h.respondEphemeral(s, i, "Partita salvata.")
}

// handleResetGame asks for confirmation; the delete only happens on the
// confirm button
func (h *Handler) handleResetGame(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	h.respondEphemeralWith(s, i, renderResetConfirm())
}

// handleResetConfirm deletes the save slot and drops the session
func (h *Handler) handleResetConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	if err := h.gameService.ResetGame(context.Background(), userID); err != nil {
		log.Printf("reset failed for user %s: %v", userID, err)
		h.update(s, i, &response{Content: "Cancellazione non riuscita. Riprova."})
		return
	}
	h.clearSession(userID)
	h.update(s, i, &response{Content: "Salvataggio cancellato. Usa `/gamebook new` per ricominciare."})
}

// renderResetConfirm builds the confirmation prompt for a reset request
func renderResetConfirm() *response {
	return &response{
		Content: "Vuoi davvero cancellare il salvataggio? L'avventura in corso andrà persa.",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Cancella il salvataggio",
					Style:    discordgo.DangerButton,
					CustomID: "gamebook:reset_confirm",
				},
				discordgo.Button{
					Label:    "Annulla",
					Style:    discordgo.SecondaryButton,
					CustomID: "gamebook:reset_cancel",
				},
			}},
		},
	}
}

// handleChoice navigates to the chosen chapter
func (h *Handler) handleChoice(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, session *playSession, arg string) {
	target, err := strconv.Atoi(arg)
	if err != nil {
		return
	}
	h.showChapter(s, i, userID, session, target)
}

func (h *Handler) handleContinue(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, session *playSession, arg string) {
	h.handleChoice(s, i, userID, session, arg)
}

// showChapter runs DisplayChapter and updates the message in place
func (h *Handler) showChapter(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, session *playSession, chapterID int) {
	view, err := h.gameService.DisplayChapter(context.Background(), userID, session.State, chapterID)
	if err != nil {
		log.Printf("display chapter %d failed for user %s: %v", chapterID, userID, err)
		h.respondEphemeral(s, i, "Capitolo non trovato. Riprova o ricarica la partita.")
		return
	}

	h.update(s, i, h.renderChapter(session, view))
}

// handleTakeItem picks up an offered item and re-renders the chapter
func (h *Handler) handleTakeItem(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, session *playSession, arg string) {
	name, typeLabel, _ := strings.Cut(arg, "|")
	offer := entities.ItemOffer{Name: name, Type: entities.ParseItemType(typeLabel)}

	if err := h.gameService.TakeItem(context.Background(), userID, session.State, offer); err != nil {
		h.respondEphemeral(s, i, "Non puoi prendere questo oggetto.")
		return
	}
	h.showChapter(s, i, userID, session, session.State.Chapter)
}

func (h *Handler) session(userID string) *playSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[userID]
}

func (h *Handler) setSession(userID string, session *playSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[userID] = session
}

func (h *Handler) clearSession(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, userID)
}

// interactionUserID resolves the acting user in both guild and DM contexts
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
