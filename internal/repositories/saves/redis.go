package saves

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
	"github.com/librogame/passomorto/internal/uuid"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
	uuids  uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedisRepository creates a new Redis-backed save repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	repo := &redisRepo{
		client: cfg.Client,
		uuids:  cfg.UUIDGenerator,
	}
	if repo.uuids == nil {
		repo.uuids = uuid.NewGoogleUUIDGenerator()
	}

	return repo
}

// NewRedis creates a Redis-backed save repository with default settings
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// key generates the Redis key for a user's save slot
func (r *redisRepo) key(userID string) string {
	return fmt.Sprintf("savegame:%s", userID)
}

// Save stores or replaces the save slot for a user
func (r *redisRepo) Save(ctx context.Context, userID string, state *entities.PlayerState) error {
	if userID == "" {
		return apperr.InvalidArgument("user ID is required")
	}
	if state == nil {
		return apperr.InvalidArgument("state cannot be nil")
	}

	now := time.Now().UTC()
	data := &SaveData{
		ID:        r.uuids.New(),
		UserID:    userID,
		State:     state.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Preserve identity and creation time across overwrites
	if existing, err := r.get(ctx, userID); err == nil {
		data.ID = existing.ID
		data.CreatedAt = existing.CreatedAt
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return apperr.Wrap(err, "failed to marshal save data")
	}

	if err := r.client.Set(ctx, r.key(userID), payload, 0).Err(); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeInternal, "failed to write save data")
	}

	return nil
}

// Load retrieves the saved player state for a user
func (r *redisRepo) Load(ctx context.Context, userID string) (*entities.PlayerState, error) {
	if userID == "" {
		return nil, apperr.InvalidArgument("user ID is required")
	}

	data, err := r.get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return data.State, nil
}

// Delete removes the save slot for a user
func (r *redisRepo) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return apperr.InvalidArgument("user ID is required")
	}

	deleted, err := r.client.Del(ctx, r.key(userID)).Result()
	if err != nil {
		return apperr.WrapWithCode(err, apperr.CodeInternal, "failed to delete save data")
	}
	if deleted == 0 {
		return apperr.NotFoundf("no save found for user '%s'", userID)
	}

	return nil
}

func (r *redisRepo) get(ctx context.Context, userID string) (*SaveData, error) {
	payload, err := r.client.Get(ctx, r.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFoundf("no save found for user '%s'", userID).WithMeta("user_id", userID)
		}
		return nil, apperr.WrapWithCode(err, apperr.CodeInternal, "failed to read save data")
	}

	var data SaveData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		// Corrupted blob: the caller decides whether to clear the slot
		return nil, apperr.WrapWithCode(err, apperr.CodeValidation, "corrupted save data")
	}

	return &data, nil
}
