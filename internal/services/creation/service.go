// Package creation implements character creation: the experience-point
// spend, the additional language choice, and the starting item pick.
package creation

import (
	"context"
	"log"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
)

// StartingItemCount is how many items must be picked from the offer list
// before the adventure starts
const StartingItemCount = 3

// Service defines the character creation interface
type Service interface {
	// NewDraft starts a fresh creation draft from the base stats
	NewDraft(ctx context.Context) *entities.CreationDraft

	// SpendPoint spends one experience point on a stat
	SpendPoint(ctx context.Context, draft *entities.CreationDraft, statName string) error

	// RefundPoint undoes a spend on a stat
	RefundPoint(ctx context.Context, draft *entities.CreationDraft, statName string) error

	// SelectLanguage spends one experience point on an additional language
	SelectLanguage(ctx context.Context, draft *entities.CreationDraft, name string) error

	// ClearLanguage refunds the language selection
	ClearLanguage(ctx context.Context, draft *entities.CreationDraft)

	// Languages returns the selectable additional languages
	Languages() []string

	// StartingItems returns the items offered at the end of creation
	StartingItems() []entities.ItemOffer

	// Confirm commits a fully spent draft onto the player state
	Confirm(ctx context.Context, draft *entities.CreationDraft, state *entities.PlayerState) error

	// ApplyStartingItems adds the picked starting items to a confirmed
	// character
	ApplyStartingItems(ctx context.Context, state *entities.PlayerState, picked []entities.ItemOffer) error
}

// extraLanguages a character may learn during creation
var extraLanguages = []string{
	"Adunaico",
	"Esterling",
	"Linguaggio Nero",
	"Nahaiduk",
	"Orchesco",
	"Quenya",
	"Segnali Naturali",
	"Sindarin",
}

// startingItemOffers is the fixed end-of-creation equipment list
var startingItemOffers = []entities.ItemOffer{
	{Name: "Spada Aggiuntiva/Arma da corpo a corpo", Type: entities.ItemTypeWeapon},
	{Name: "Chiodi da Roccia", Type: entities.ItemTypeGeneric},
	{Name: "Corda", Type: entities.ItemTypeGeneric},
	{Name: "Cuneo di Legno", Type: entities.ItemTypeGeneric},
	{Name: "Lanterna", Type: entities.ItemTypeGeneric},
	{Name: "Piede di Porco", Type: entities.ItemTypeGeneric},
	{Name: "Tenda Smontabile", Type: entities.ItemTypeGeneric},
	{Name: "Pozione Guaritrice", Type: entities.ItemTypeGeneric},
}

type service struct{}

// NewService creates a new character creation service
func NewService() Service {
	return &service{}
}

func (s *service) NewDraft(ctx context.Context) *entities.CreationDraft {
	return entities.NewCreationDraft()
}

func (s *service) SpendPoint(ctx context.Context, draft *entities.CreationDraft, statName string) error {
	if draft == nil {
		return apperr.InvalidArgument("draft cannot be nil")
	}
	return draft.SpendPoint(statName)
}

func (s *service) RefundPoint(ctx context.Context, draft *entities.CreationDraft, statName string) error {
	if draft == nil {
		return apperr.InvalidArgument("draft cannot be nil")
	}
	return draft.RefundPoint(statName)
}

func (s *service) SelectLanguage(ctx context.Context, draft *entities.CreationDraft, name string) error {
	if draft == nil {
		return apperr.InvalidArgument("draft cannot be nil")
	}
	for _, lang := range extraLanguages {
		if lang == name {
			return draft.SelectLanguage(name)
		}
	}
	return apperr.InvalidArgumentf("'%s' is not a selectable language", name)
}

func (s *service) ClearLanguage(ctx context.Context, draft *entities.CreationDraft) {
	if draft != nil {
		draft.ClearLanguage()
	}
}

// Languages returns the selectable additional languages
func (s *service) Languages() []string {
	return append([]string{}, extraLanguages...)
}

// StartingItems returns the items offered at the end of creation
func (s *service) StartingItems() []entities.ItemOffer {
	return append([]entities.ItemOffer{}, startingItemOffers...)
}

// Confirm commits the draft onto the player state: final stats with the
// experience pool zeroed out, canonical starting equipment, languages,
// gold and empty keywords
func (s *service) Confirm(ctx context.Context, draft *entities.CreationDraft, state *entities.PlayerState) error {
	if draft == nil || state == nil {
		return apperr.InvalidArgument("draft and state are required")
	}
	if !draft.Confirmable() {
		return apperr.FailedPreconditionf("%d experience points still unspent", draft.Remaining())
	}

	stats := draft.Stats.Clone()
	stats.ExperiencePoints = 0
	state.Stats = stats

	state.Languages = entities.StartingLanguages()
	if draft.Language != "" {
		state.Languages = append(state.Languages, draft.Language)
	}

	state.Gold = entities.StartingGold
	state.Inventory = entities.StartingInventory()
	state.Keywords = entities.NewKeywords()
	state.GameOver = false
	state.ClearSubInteractions()

	log.Printf("character created: combativity %d, endurance %d/%d, languages %v",
		stats.Combativity, stats.Endurance, stats.EnduranceMax, state.Languages)
	return nil
}

// ApplyStartingItems adds exactly three picked items from the offer list
// to a confirmed character
func (s *service) ApplyStartingItems(ctx context.Context, state *entities.PlayerState, picked []entities.ItemOffer) error {
	if state == nil || !state.Started() {
		return apperr.FailedPrecondition("character has not been created yet")
	}
	if len(picked) != StartingItemCount {
		return apperr.Validationf("exactly %d starting items must be chosen", StartingItemCount)
	}

	for _, offer := range picked {
		if !isOffered(offer.Name) {
			return apperr.InvalidArgumentf("'%s' is not on the starting item list", offer.Name)
		}
	}

	for _, offer := range picked {
		if err := state.Inventory.AddItem(offer.Name, offer.Type); err != nil {
			return apperr.Wrapf(err, "cannot take starting item '%s'", offer.Name)
		}
	}

	return nil
}

func isOffered(name string) bool {
	for _, offer := range startingItemOffers {
		if offer.Name == name {
			return true
		}
	}
	return false
}
