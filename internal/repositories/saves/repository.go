// Package saves persists one save slot per player.
package saves

import (
	"context"
	"time"

	"github.com/librogame/passomorto/internal/entities"
)

// SaveData is the stored form of a save slot. The player state it wraps
// never includes active sub-interactions: a save is never resumed
// mid-combat or mid-check.
type SaveData struct {
	ID        string                `json:"id"`
	UserID    string                `json:"user_id"`
	State     *entities.PlayerState `json:"state"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Repository defines the interface for save-game persistence
type Repository interface {
	// Save stores or replaces the save slot for a user
	Save(ctx context.Context, userID string, state *entities.PlayerState) error

	// Load retrieves the saved player state for a user
	Load(ctx context.Context, userID string) (*entities.PlayerState, error)

	// Delete removes the save slot for a user
	Delete(ctx context.Context, userID string) error
}
