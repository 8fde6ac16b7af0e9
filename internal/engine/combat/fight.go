package combat

import (
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Fight is a single player-versus-opponent fight. It moves from StatusIdle to
// StatusActive on Start and to StatusEnded when a health check finds a side at
// zero. Once ended, every operation returns the stored result unchanged.
//
// A Fight is not safe for concurrent use; callers serialise access per session.
type Fight struct {
	player   *Combatant
	opponent *Combatant
	roller   dice.Roller

	status  Status
	outcome Outcome
	result  string
}

// NewFight creates an idle fight. roller drives the opponent's skill chance.
func NewFight(roller dice.Roller) *Fight {
	return &Fight{
		roller: roller,
		status: StatusIdle,
	}
}

// RestoreFight rebuilds a fight from saved state and the restored combatants
func RestoreFight(roller dice.Roller, state FightState, player, opponent *Combatant) *Fight {
	f := NewFight(roller)
	if state.Status == "" || player == nil || opponent == nil {
		return f
	}

	f.player = player
	f.opponent = opponent
	f.status = state.Status
	f.outcome = state.Outcome
	f.result = state.Result
	return f
}

// Start begins a new fight between player and opponent, replacing any
// previous fight.
func (f *Fight) Start(player, opponent *Combatant) {
	f.player = player
	f.opponent = opponent
	f.status = StatusActive
	f.outcome = OutcomeNone
	f.result = ""
}

// Status returns the lifecycle state
func (f *Fight) Status() Status {
	return f.status
}

// Outcome returns how the fight ended, or OutcomeNone while it runs
func (f *Fight) Outcome() Outcome {
	return f.outcome
}

// Result returns the stored result text of an ended fight
func (f *Fight) Result() string {
	return f.result
}

// Player returns the player's combatant, nil before Start
func (f *Fight) Player() *Combatant {
	return f.player
}

// Opponent returns the opponent's combatant, nil before Start
func (f *Fight) Opponent() *Combatant {
	return f.opponent
}

// CheckHealth ends the fight when either side is at zero health and returns
// the result text. ended is false while both sides still stand.
func (f *Fight) CheckHealth() (result string, ended bool) {
	if f.player == nil || f.opponent == nil {
		return "", false
	}

	playerDown := f.player.Health() <= 0
	opponentDown := f.opponent.Health() <= 0

	switch {
	case playerDown && opponentDown:
		return f.end(OutcomeDraw), true
	case playerDown:
		return f.end(OutcomeDefeat), true
	case opponentDown:
		return f.end(OutcomeVictory), true
	default:
		return "", false
	}
}

// PlayerHit resolves the player's weapon swing and then advances the turn
func (f *Fight) PlayerHit() Turn {
	if turn, done := f.guard(); done {
		return turn
	}

	strike := f.player.Hit(f.opponent, f.roller)
	action := Action{
		Kind:    ActionWeaponHit,
		Actor:   f.player,
		Target:  f.opponent,
		Damage:  strike.Damage,
		Landed:  strike.Landed,
		Applied: strike.Landed,
	}

	line := msgPlayerNoStamina
	if strike.Landed {
		f.opponent.TakeDamage(strike.Damage)
		line = playerDealt(strike.Damage)
	}

	return f.combine(line, action, f.AdvanceTurn())
}

// PlayerUseSkill spends the player's skill on the opponent and then advances
// the turn
func (f *Fight) PlayerUseSkill() Turn {
	if turn, done := f.guard(); done {
		return turn
	}

	damage, ok := f.player.UseSkill()
	action := Action{
		Kind:    ActionSkill,
		Actor:   f.player,
		Target:  f.opponent,
		Damage:  damage,
		Landed:  ok,
		Applied: ok,
	}

	line := msgPlayerNoSkill
	if ok {
		f.opponent.TakeDamage(damage)
		line = playerSkill(f.player.class.Skill.Name, damage)
	}

	return f.combine(line, action, f.AdvanceTurn())
}

// AdvanceTurn checks for the end of the fight, then lets the opponent strike
// and regenerates stamina for both sides. It is also what passing a turn does.
func (f *Fight) AdvanceTurn() Turn {
	if turn, done := f.guard(); done {
		return turn
	}

	if result, ended := f.CheckHealth(); ended {
		return Turn{Lines: []string{result}, Ended: true}
	}

	var turn Turn

	strike := f.opponent.Hit(f.player, f.roller)
	if strike.SkillUsed {
		turn.Lines = append(turn.Lines, opponentSkill(f.opponent.class.Skill.Name))
		turn.Actions = append(turn.Actions, Action{
			Kind:   ActionSkill,
			Actor:  f.opponent,
			Target: f.player,
			Damage: strike.SkillDamage,
			Landed: true,
		})
	}

	if strike.Landed {
		f.player.TakeDamage(strike.Damage)
		turn.Lines = append(turn.Lines, opponentDealt(strike.Damage))
	} else {
		turn.Lines = append(turn.Lines, msgOpponentNoStamina)
	}
	turn.Actions = append(turn.Actions, Action{
		Kind:    ActionWeaponHit,
		Actor:   f.opponent,
		Target:  f.player,
		Damage:  strike.Damage,
		Landed:  strike.Landed,
		Applied: strike.Landed,
	})

	f.player.RegenerateStamina()
	f.opponent.RegenerateStamina()

	return turn
}

// State captures the fight for storage
func (f *Fight) State() FightState {
	state := FightState{
		Status:  f.status,
		Outcome: f.outcome,
		Result:  f.result,
	}
	if f.player != nil {
		p := f.player.State()
		state.Player = &p
	}
	if f.opponent != nil {
		o := f.opponent.State()
		state.Opponent = &o
	}
	return state
}

// guard short-circuits player actions on a fight that is not running
func (f *Fight) guard() (Turn, bool) {
	switch f.status {
	case StatusIdle:
		return Turn{Lines: []string{msgNotStarted}}, true
	case StatusEnded:
		return Turn{Lines: []string{f.result}}, true
	default:
		return Turn{}, false
	}
}

func (f *Fight) combine(line string, action Action, next Turn) Turn {
	return Turn{
		Lines:   append([]string{line}, next.Lines...),
		Actions: append([]Action{action}, next.Actions...),
		Ended:   next.Ended,
	}
}

func (f *Fight) end(outcome Outcome) string {
	f.status = StatusEnded
	f.outcome = outcome
	f.result = outcome.Message()
	return f.result
}

// Message joins the turn's lines for plain-text display
func (t Turn) Message() string {
	return strings.Join(t.Lines, "\n")
}
