package testutils

import (
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

var _ dice.Roller = (*FixedRoller)(nil)

// FixedRoller satisfies rpg-toolkit's dice.Roller with scripted results.
// Once the script runs out it keeps returning Fallback.
type FixedRoller struct {
	mu       sync.Mutex
	rolls    []int
	Fallback int
	Err      error
	Calls    int
}

// NewFixedRoller returns a roller that yields rolls in order, then fallback
func NewFixedRoller(fallback int, rolls ...int) *FixedRoller {
	return &FixedRoller{rolls: rolls, Fallback: fallback}
}

// Roll returns the next scripted value
func (r *FixedRoller) Roll(_ int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls++
	if r.Err != nil {
		return 0, r.Err
	}
	if len(r.rolls) == 0 {
		return r.Fallback, nil
	}
	next := r.rolls[0]
	r.rolls = r.rolls[1:]
	return next, nil
}

// RollN returns count scripted values
func (r *FixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
