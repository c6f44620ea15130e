package game

import (
	"context"
	"log"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
)

// SaveGame persists the state when it is in a saveable condition: a
// created character, standing in a real chapter, not game over. Anything
// else is a silent no-op so autosave hooks can call this freely.
func (s *service) SaveGame(ctx context.Context, userID string, state *entities.PlayerState) (bool, error) {
	if state == nil || !state.Started() || state.Chapter == 0 || state.GameOver {
		log.Printf("skipping save for user %s: state not saveable", userID)
		return false, nil
	}

	if err := s.saves.Save(ctx, userID, state); err != nil {
		return false, apperr.Wrap(err, "failed to save game")
	}

	log.Printf("game saved for user %s at chapter %d", userID, state.Chapter)
	return true, nil
}

// LoadGame restores a saved state. A corrupted or structurally invalid
// save clears the slot and reports an error: a broken save must never be
// resumed, and must never block starting over.
func (s *service) LoadGame(ctx context.Context, userID string) (*entities.PlayerState, error) {
	state, err := s.saves.Load(ctx, userID)
	if err != nil {
		if apperr.GetCode(err) == apperr.CodeValidation {
			log.Printf("corrupted save for user %s, clearing slot", userID)
			if delErr := s.saves.Delete(ctx, userID); delErr != nil && !apperr.IsNotFound(delErr) {
				log.Printf("failed to clear corrupted save for user %s: %v", userID, delErr)
			}
		}
		return nil, err
	}

	if !state.ValidateLoaded() {
		log.Printf("structurally invalid save for user %s, clearing slot", userID)
		if delErr := s.saves.Delete(ctx, userID); delErr != nil && !apperr.IsNotFound(delErr) {
			log.Printf("failed to clear invalid save for user %s: %v", userID, delErr)
		}
		return nil, apperr.Validation("saved game data is invalid")
	}

	// A save can only be written mid-adventure, so a loaded game is by
	// definition not over
	state.GameOver = false
	state.ClearSubInteractions()

	log.Printf("game loaded for user %s at chapter %d", userID, state.Chapter)
	return state, nil
}

// ResetGame deletes the save slot. A missing slot is not an error.
func (s *service) ResetGame(ctx context.Context, userID string) error {
	if err := s.saves.Delete(ctx, userID); err != nil && !apperr.IsNotFound(err) {
		return apperr.Wrap(err, "failed to reset game")
	}
	log.Printf("game reset for user %s", userID)
	return nil
}
