// Package game implements the narrative engine: chapter transitions,
// effect application, condition evaluation, and the combat and
// skill-check resolvers. Every operation is an explicit function of the
// player state it receives; the engine keeps no ambient state of its own.
package game

import (
	"context"
	"log"
	"strings"

	"github.com/librogame/passomorto/internal/dice"
	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
	"github.com/librogame/passomorto/internal/repositories/chapters"
	"github.com/librogame/passomorto/internal/repositories/saves"
)

// Game-over reasons surfaced to the presentation layer
const (
	GameOverEndurance = "endurance"
	GameOverCombat    = "combat"
)

// Terminal chapters are detected by their closing narrative phrases
var endingPhrases = []string{
	"La tua avventura finisce qui.",
	"Hai concluso vittoriosamente la tua avventura!",
}

// Service defines the narrative engine interface
type Service interface {
	// DisplayChapter moves the player to a chapter, applies its effects
	// and returns the render model for the presentation layer
	DisplayChapter(ctx context.Context, userID string, state *entities.PlayerState, chapterID int) (*ChapterView, error)

	// TakeItem picks up an item the current chapter offers
	TakeItem(ctx context.Context, userID string, state *entities.PlayerState, offer entities.ItemOffer) error

	// RollSkillCheck resolves the active skill check with a 2d6 roll
	RollSkillCheck(ctx context.Context, userID string, state *entities.PlayerState) (*SkillCheckResult, error)

	// PlayerAttack resolves the player phase of the active combat
	PlayerAttack(ctx context.Context, userID string, state *entities.PlayerState) (*CombatRound, error)

	// EnemyTurn resolves the enemy phase of the active combat
	EnemyTurn(ctx context.Context, userID string, state *entities.PlayerState) (*CombatRound, error)

	// SaveGame persists the state if it is in a saveable condition.
	// Returns whether a save was actually written.
	SaveGame(ctx context.Context, userID string, state *entities.PlayerState) (bool, error)

	// LoadGame restores a previously saved state, clearing any active
	// sub-interaction
	LoadGame(ctx context.Context, userID string) (*entities.PlayerState, error)

	// ResetGame deletes the save slot for a new game
	ResetGame(ctx context.Context, userID string) error
}

// ChapterView is what DisplayChapter hands the presentation layer: pure
// render data, no engine internals
type ChapterView struct {
	ChapterID        int
	Title            string
	Text             string
	Image            *entities.Image
	ItemsOffered     []OfferView
	Choices          []ChoiceView
	CombatActive     bool
	SkillCheckActive bool
	IsEnding         bool
	NoActions        bool
	GameOver         bool
	GameOverReason   string
}

// OfferView is an item offer annotated with whether the player can
// actually take it right now
type OfferView struct {
	entities.ItemOffer
	CanTake bool
}

// ChoiceView is a navigation choice that passed its condition
type ChoiceView struct {
	Text   string
	Target int
}

type service struct {
	chapters chapters.Repository
	saves    saves.Repository
	roller   dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	ChapterRepository chapters.Repository
	SaveRepository    saves.Repository
	Roller            dice.Roller
}

// NewService creates a new narrative engine service
func NewService(cfg *ServiceConfig) Service {
	if cfg.ChapterRepository == nil {
		panic("chapter repository is required")
	}
	if cfg.SaveRepository == nil {
		panic("save repository is required")
	}

	svc := &service{
		chapters: cfg.ChapterRepository,
		saves:    cfg.SaveRepository,
		roller:   cfg.Roller,
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}

	return svc
}

// DisplayChapter moves the player to a chapter
func (s *service) DisplayChapter(ctx context.Context, userID string, state *entities.PlayerState, chapterID int) (*ChapterView, error) {
	if state == nil {
		return nil, apperr.InvalidArgument("state cannot be nil")
	}
	if state.GameOver {
		return nil, apperr.FailedPrecondition("the game is over")
	}
	if !state.Started() && chapterID != 0 {
		return nil, apperr.FailedPrecondition("character has not been created yet")
	}

	chapter, err := s.chapters.Get(chapterID)
	if err != nil {
		// Recoverable: the engine stays usable, the player sees an
		// error message in place of the narrative
		return nil, apperr.Wrapf(err, "chapter %d not found", chapterID)
	}

	log.Printf("--- Loading chapter %d ('%s') for user %s ---", chapterID, chapter.Title, userID)

	state.Chapter = chapterID
	state.ClearSubInteractions()

	// Effects apply before the text and choices are shown
	for _, effect := range chapter.Effects {
		s.applyEffect(state, effect)
	}

	view := &ChapterView{
		ChapterID: chapterID,
		Title:     chapter.Title,
		Text:      chapter.Text,
	}
	if chapterID == 0 {
		view.Title = ""
	}
	if len(chapter.Images) > 0 {
		view.Image = &chapter.Images[0]
	}

	// Combat takes priority when a chapter erroneously declares both
	switch {
	case chapter.Combat != nil && state.ActiveSkillCheck == nil:
		state.ActiveCombat = entities.NewCombatState(chapter.Combat)
		view.CombatActive = true
	case chapter.SkillCheck != nil && state.ActiveCombat == nil:
		check := *chapter.SkillCheck
		state.ActiveSkillCheck = &check
		view.SkillCheckActive = true
	}

	if state.ActiveCombat == nil && state.ActiveSkillCheck == nil && chapterID != 0 {
		view.ItemsOffered = s.offeredItems(state, chapter)
		view.Choices = s.availableChoices(state, chapter)
	}

	view.IsEnding = isEndingChapter(chapter)
	if chapterID != 0 && !view.CombatActive && !view.SkillCheckActive &&
		len(view.ItemsOffered) == 0 && len(view.Choices) == 0 && !view.IsEnding {
		view.NoActions = true
	}

	if state.Started() && state.Stats.Endurance <= 0 && state.ActiveCombat == nil && !state.GameOver {
		state.GameOver = true
		view.GameOver = true
		view.GameOverReason = GameOverEndurance
	}

	// Every accepted transition persists; the save gates turn this into
	// a no-op before creation and after game over
	if _, err := s.SaveGame(ctx, userID, state); err != nil {
		log.Printf("autosave after chapter %d failed for user %s: %v", chapterID, userID, err)
	}

	return view, nil
}

// TakeItem picks up an item the current chapter offers
func (s *service) TakeItem(ctx context.Context, userID string, state *entities.PlayerState, offer entities.ItemOffer) error {
	if state == nil || !state.Started() {
		return apperr.FailedPrecondition("character has not been created yet")
	}

	// Only what the current chapter actually offers can be taken; the
	// request carries a name, the chapter record is the authority
	chapter, err := s.chapters.Get(state.Chapter)
	if err != nil {
		return apperr.Wrapf(err, "chapter %d not found", state.Chapter)
	}
	canonical, ok := findOffer(chapter, offer.Name)
	if !ok {
		return apperr.InvalidArgumentf("'%s' is not offered here", offer.Name)
	}

	if err := state.Inventory.AddItem(canonical.Name, canonical.Type); err != nil {
		return err
	}
	log.Printf("Added item: %s (%s)", canonical.Name, canonical.Type)

	if _, err := s.SaveGame(ctx, userID, state); err != nil {
		log.Printf("autosave after item pickup failed: %v", err)
	}
	return nil
}

// findOffer looks the named offer up in the chapter record
func findOffer(chapter *entities.Chapter, name string) (entities.ItemOffer, bool) {
	for _, offer := range chapter.ItemsOffered {
		if strings.EqualFold(offer.Name, name) {
			return offer, true
		}
	}
	return entities.ItemOffer{}, false
}

// offeredItems filters the chapter's item offers by inventory rules
func (s *service) offeredItems(state *entities.PlayerState, chapter *entities.Chapter) []OfferView {
	offers := make([]OfferView, 0, len(chapter.ItemsOffered))
	for _, offer := range chapter.ItemsOffered {
		offers = append(offers, OfferView{
			ItemOffer: offer,
			CanTake:   state.Inventory.CanAdd(offer.Name, offer.Type) == nil,
		})
	}
	return offers
}

// availableChoices filters the chapter's choices by their conditions
func (s *service) availableChoices(state *entities.PlayerState, chapter *entities.Chapter) []ChoiceView {
	choices := make([]ChoiceView, 0, len(chapter.Choices))
	for _, choice := range chapter.Choices {
		if s.evaluateCondition(state, choice.Condition) {
			choices = append(choices, ChoiceView{Text: choice.Text, Target: choice.Target})
		}
	}
	return choices
}

func isEndingChapter(chapter *entities.Chapter) bool {
	for _, phrase := range endingPhrases {
		if strings.Contains(chapter.Text, phrase) {
			return true
		}
	}
	return false
}
