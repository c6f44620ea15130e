package saves

import (
	"context"
	"sync"
	"time"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
	"github.com/librogame/passomorto/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the save
// repository. Useful for testing and development without Redis.
type InMemoryRepository struct {
	mu    sync.RWMutex
	saves map[string]*SaveData
	uuids uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		saves: make(map[string]*SaveData),
		uuids: uuid.NewGoogleUUIDGenerator(),
	}
}

// Save stores or replaces the save slot for a user
func (r *InMemoryRepository) Save(ctx context.Context, userID string, state *entities.PlayerState) error {
	if userID == "" {
		return apperr.InvalidArgument("user ID is required")
	}
	if state == nil {
		return apperr.InvalidArgument("state cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	existing, ok := r.saves[userID]
	data := &SaveData{
		UserID:    userID,
		State:     state.Clone(),
		UpdatedAt: now,
	}
	if ok {
		data.ID = existing.ID
		data.CreatedAt = existing.CreatedAt
	} else {
		data.ID = r.uuids.New()
		data.CreatedAt = now
	}
	r.saves[userID] = data

	return nil
}

// Load retrieves the saved player state for a user
func (r *InMemoryRepository) Load(ctx context.Context, userID string) (*entities.PlayerState, error) {
	if userID == "" {
		return nil, apperr.InvalidArgument("user ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.saves[userID]
	if !ok {
		return nil, apperr.NotFoundf("no save found for user '%s'", userID).WithMeta("user_id", userID)
	}

	return data.State.Clone(), nil
}

// Delete removes the save slot for a user
func (r *InMemoryRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return apperr.InvalidArgument("user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.saves[userID]; !ok {
		return apperr.NotFoundf("no save found for user '%s'", userID)
	}
	delete(r.saves, userID)

	return nil
}
