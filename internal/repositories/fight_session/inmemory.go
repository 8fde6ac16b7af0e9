package fightsession

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
)

// InMemoryConfig configures the in-memory repository
type InMemoryConfig struct {
	Clock clock.Clock
	TTL   time.Duration
}

// Validate validates the config
func (cfg *InMemoryConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if cfg.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

// InMemoryRepository implements Repository with a map. Sessions are lost on restart.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*SessionData
	clock clock.Clock
	ttl   time.Duration
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository
func NewInMemory(cfg *InMemoryConfig) (*InMemoryRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &InMemoryRepository{
		store: make(map[string]*SessionData),
		clock: cfg.Clock,
		ttl:   ttl,
	}, nil
}

// Create stores an empty session
func (r *InMemoryRepository) Create(_ context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if existing, ok := r.store[input.SessionID]; ok && !r.expired(existing, now) {
		return nil, errors.AlreadyExists("session already exists").WithMeta("session_id", input.SessionID)
	}

	session := &SessionData{
		ID:        input.SessionID,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}
	r.store[input.SessionID] = session

	return &CreateOutput{Session: session.Clone()}, nil
}

// Get retrieves a session by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.store[input.SessionID]
	if !ok || r.expired(session, r.clock.Now()) {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	return &GetOutput{Session: session.Clone()}, nil
}

// Update replaces a session and extends its expiry
func (r *InMemoryRepository) Update(_ context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionRequired)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	existing, ok := r.store[input.Session.ID]
	if !ok || r.expired(existing, now) {
		delete(r.store, input.Session.ID)
		return nil, errors.NotFoundf("session %s not found", input.Session.ID)
	}

	session := input.Session.Clone()
	session.CreatedAt = existing.CreatedAt
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(r.ttl)
	r.store[session.ID] = session

	return &UpdateOutput{Session: session.Clone()}, nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.store[input.SessionID]
	if !ok {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}
	delete(r.store, input.SessionID)
	if r.expired(session, r.clock.Now()) {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	return &DeleteOutput{}, nil
}

// Sweep drops expired sessions and reports how many were removed
func (r *InMemoryRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	removed := 0
	for id, session := range r.store {
		if r.expired(session, now) {
			delete(r.store, id)
			removed++
		}
	}
	return removed
}

func (r *InMemoryRepository) expired(session *SessionData, now time.Time) bool {
	return !now.Before(session.ExpiresAt)
}
