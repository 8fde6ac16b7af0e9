package fightsession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
)

// Key pattern: fight_session:{session_id}
const sessionKeyPrefix = "fight_session:"

// RedisConfig configures the redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if cfg.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if cfg.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

var _ Repository = (*redisRepository)(nil)

// NewRedis creates a redis-backed session repository. Sessions are stored as
// JSON blobs and expire through redis key TTLs.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	now := r.clock.Now()
	session := &SessionData{
		ID:        input.SessionID,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	created, err := r.client.SetNX(ctx, GetKey(input.SessionID), data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create session %s", input.SessionID)
	}
	if !created {
		return nil, errors.AlreadyExists("session already exists").WithMeta("session_id", input.SessionID)
	}

	return &CreateOutput{Session: session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	session, err := r.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Session: session}, nil
}

func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionRequired)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	existing, err := r.load(ctx, input.Session.ID)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	session := input.Session.Clone()
	session.CreatedAt = existing.CreatedAt
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(r.ttl)

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	// XX so a session deleted between load and write stays deleted
	updated, err := r.client.SetXX(ctx, GetKey(session.ID), data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update session %s", session.ID)
	}
	if !updated {
		return nil, errors.NotFoundf("session %s not found", session.ID)
	}

	return &UpdateOutput{Session: session}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	deleted, err := r.client.Del(ctx, GetKey(input.SessionID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session %s", input.SessionID)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, sessionID string) (*SessionData, error) {
	key := GetKey(sessionID)

	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("session %s not found", sessionID)
		}
		return nil, errors.Wrapf(err, "failed to get session %s", sessionID)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// Key TTL and ExpiresAt normally agree; the clock wins if they drift
	if !r.clock.Now().Before(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("session %s not found", sessionID)
	}

	return &session, nil
}

// GetKey returns the redis key for a session.
// Exposed for testing purposes
func GetKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
