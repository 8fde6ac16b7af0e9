package arena

import (
	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	entities "github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// CreateSessionInput is empty; the orchestrator issues the ID
type CreateSessionInput struct{}

// CreateSessionOutput contains the new session ID
type CreateSessionOutput struct {
	SessionID string
}

// ListOptionsInput is empty
type ListOptionsInput struct{}

// ListOptionsOutput contains everything the selection pages offer
type ListOptionsOutput struct {
	Classes []entities.ClassDefinition
	Weapons []entities.Weapon
	Armors  []entities.Armor
}

// ChooseInput records a selection for one side of the next fight
type ChooseInput struct {
	SessionID string
	Selection entities.Selection
}

// ChooseOutput echoes the stored selection
type ChooseOutput struct {
	SessionID string
	Side      entities.Side
	Selection entities.Selection
}

// StartFightInput starts a fight from the stored selections
type StartFightInput struct {
	SessionID string
}

// ActionInput identifies the session a fight action applies to
type ActionInput struct {
	SessionID string
}

// GetFightInput contains parameters for reading a session's fight
type GetFightInput struct {
	SessionID string
}

// EndFightInput contains parameters for abandoning a fight
type EndFightInput struct {
	SessionID string
}

// EndFightOutput is empty
type EndFightOutput struct{}

// FightOutput is the state of a fight after an operation
type FightOutput struct {
	SessionID string

	// Result is Lines joined for plain-text display
	Result string
	Lines  []string

	Status  combat.Status
	Outcome combat.Outcome

	// Nil until a fight has been started
	Player   *combat.Snapshot
	Opponent *combat.Snapshot

	// Pending selections for the next fight
	PlayerSelection   *entities.Selection
	OpponentSelection *entities.Selection
}

// Event types published on the bus
const (
	EventFightStarted   = "arena.fight.started"
	EventAttackResolved = "arena.attack.resolved"
	EventSkillUsed      = "arena.skill.used"
	EventTurnAdvanced   = "arena.turn.advanced"
	EventFightEnded     = "arena.fight.ended"
)

// Keys set on published event contexts
const (
	EventKeySessionID = "session_id"
	EventKeyDamage    = "damage"
	EventKeyLanded    = "landed"
	EventKeyApplied   = "applied"
	EventKeyOutcome   = "outcome"
	EventKeyLines     = "lines"
)

// MsgFightStarted is shown when a fight begins
const MsgFightStarted = "Fight!"
