// Package fightsession stores each browser client's fight between requests
package fightsession

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=fightsessionmock github.com/KirkDiggler/rpg-arena/internal/repositories/fight_session Repository

// DefaultTTL applies when a config leaves TTL unset
const DefaultTTL = 2 * time.Hour

// SessionData is everything the arena remembers about one client
type SessionData struct {
	ID string `json:"id"`

	// Pending choices from the selection pages; nil until made
	Player   *arena.Selection `json:"player,omitempty"`
	Opponent *arena.Selection `json:"opponent,omitempty"`

	Fight combat.FightState `json:"fight"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Clone returns a deep copy so stored sessions never alias caller memory
func (s *SessionData) Clone() *SessionData {
	if s == nil {
		return nil
	}

	out := *s
	if s.Player != nil {
		p := *s.Player
		out.Player = &p
	}
	if s.Opponent != nil {
		o := *s.Opponent
		out.Opponent = &o
	}
	if s.Fight.Player != nil {
		p := *s.Fight.Player
		out.Fight.Player = &p
	}
	if s.Fight.Opponent != nil {
		o := *s.Fight.Opponent
		out.Fight.Opponent = &o
	}
	return &out
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	SessionID string
}

// CreateOutput contains the new session
type CreateOutput struct {
	Session *SessionData
}

// GetInput contains parameters for loading a session
type GetInput struct {
	SessionID string
}

// GetOutput contains the loaded session
type GetOutput struct {
	Session *SessionData
}

// UpdateInput replaces a stored session
type UpdateInput struct {
	Session *SessionData
}

// UpdateOutput contains the session as stored, with refreshed timestamps
type UpdateOutput struct {
	Session *SessionData
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	SessionID string
}

// DeleteOutput is empty
type DeleteOutput struct{}

// Repository stores sessions by ID. Every write extends the session's expiry
// by the configured TTL; expired sessions behave as missing.
type Repository interface {
	// Create returns AlreadyExists if the ID is taken
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get returns NotFound for missing or expired sessions
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Update returns NotFound if the session is gone
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// Delete returns NotFound if the session is gone
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

const (
	errInputRequired     = "input is required"
	errSessionIDRequired = "session ID is required"
	errSessionRequired   = "session is required"
)
