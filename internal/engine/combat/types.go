package combat

// Snapshot is a combatant as shown to the player
type Snapshot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ClassName   string   `json:"class_name"`
	WeaponName  string   `json:"weapon_name"`
	ArmorName   string   `json:"armor_name"`
	Behavior    Behavior `json:"behavior"`
	Health      float64  `json:"health"`
	MaxHealth   float64  `json:"max_health"`
	Stamina     float64  `json:"stamina"`
	MaxStamina  float64  `json:"max_stamina"`
	SkillName   string   `json:"skill_name"`
	SkillCost   float64  `json:"skill_cost"`
	SkillUsed   bool     `json:"skill_used"`
	CanUseSkill bool     `json:"can_use_skill"`
}

// CombatantState is the saved form of a combatant. Equipment and class are
// stored by name and resolved against the catalog on restore.
type CombatantState struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ClassName  string   `json:"class_name"`
	WeaponName string   `json:"weapon_name"`
	ArmorName  string   `json:"armor_name"`
	Behavior   Behavior `json:"behavior"`
	Health     float64  `json:"health"`
	Stamina    float64  `json:"stamina"`
	SkillUsed  bool     `json:"skill_used"`
}

// FightState is the saved form of a fight
type FightState struct {
	Status   Status          `json:"status"`
	Outcome  Outcome         `json:"outcome,omitempty"`
	Result   string          `json:"result,omitempty"`
	Player   *CombatantState `json:"player,omitempty"`
	Opponent *CombatantState `json:"opponent,omitempty"`
}

// Status is where a fight is in its lifecycle
type Status string

// Fight statuses
const (
	StatusIdle   Status = "idle"
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Outcome is how an ended fight turned out for the player
type Outcome string

// Outcomes
const (
	OutcomeNone    Outcome = ""
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeDraw    Outcome = "draw"
)

// Message returns the player-facing text for the outcome
func (o Outcome) Message() string {
	switch o {
	case OutcomeVictory:
		return MsgVictory
	case OutcomeDefeat:
		return MsgDefeat
	case OutcomeDraw:
		return MsgDraw
	default:
		return ""
	}
}

// ActionKind names what happened in a turn
type ActionKind string

// Action kinds
const (
	ActionWeaponHit ActionKind = "weapon_hit"
	ActionSkill     ActionKind = "skill"
)

// Action is a single resolved attack within a turn
type Action struct {
	Kind   ActionKind
	Actor  *Combatant
	Target *Combatant
	Damage float64
	// Landed is false when the actor lacked stamina.
	Landed bool
	// Applied is false for skill damage computed but discarded.
	Applied bool
}

// Turn is what a fight operation reports back
type Turn struct {
	Lines   []string
	Actions []Action
	// Ended is true when this call moved the fight to StatusEnded.
	Ended bool
}
