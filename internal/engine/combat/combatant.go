// Package combat implements the arena's combat rules: stamina-gated attacks,
// armor, one-shot skills and the turn sequence of a fight between a player and
// a computer-controlled opponent.
package combat

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

const (
	// BaseStaminaPerRound is scaled by the class stamina coefficient on every regeneration
	BaseStaminaPerRound = 0.4

	// EntityType is reported to rpg-toolkit as the combatant's entity type
	EntityType = "combatant"

	// aiSkillChance is the percentage chance an AI opponent tries its skill before striking
	aiSkillChance = 10
)

// Behavior selects who drives a combatant's attacks
type Behavior string

// Behaviors
const (
	PlayerControlled Behavior = "player"
	AIControlled     Behavior = "ai"
)

// Config describes a combatant at the start of a fight
type Config struct {
	ID       string
	Name     string
	Class    arena.ClassDefinition
	Weapon   arena.Weapon
	Armor    arena.Armor
	Behavior Behavior
}

// Combatant is one side of a fight. Health and stamina keep full precision
// internally and are reported rounded to one decimal.
type Combatant struct {
	id       string
	name     string
	class    arena.ClassDefinition
	weapon   arena.Weapon
	armor    arena.Armor
	behavior Behavior

	health    float64
	stamina   float64
	skillUsed bool
}

// Strike is the outcome of a combatant's attack.
type Strike struct {
	// Damage to apply to the target. Zero when the hit was fully blocked.
	Damage float64
	// Landed is false when the attacker lacked the stamina to swing.
	Landed bool
	// SkillUsed reports that an AI opponent spent its skill before the strike.
	// The skill's damage is not applied.
	SkillUsed   bool
	SkillDamage float64
}

// NewCombatant creates a combatant at full health and stamina
func NewCombatant(cfg *Config) *Combatant {
	behavior := cfg.Behavior
	if behavior == "" {
		behavior = PlayerControlled
	}

	return &Combatant{
		id:       cfg.ID,
		name:     cfg.Name,
		class:    cfg.Class,
		weapon:   cfg.Weapon,
		armor:    cfg.Armor,
		behavior: behavior,
		health:   cfg.Class.MaxHealth,
		stamina:  cfg.Class.MaxStamina,
	}
}

// RestoreCombatant rebuilds a combatant mid-fight from saved state.
// Health and stamina are clamped to the class limits.
func RestoreCombatant(cfg *Config, state CombatantState) *Combatant {
	c := NewCombatant(cfg)
	c.health = clamp(state.Health, c.class.MaxHealth)
	c.stamina = clamp(state.Stamina, c.class.MaxStamina)
	c.skillUsed = state.SkillUsed
	return c
}

// GetID implements core.Entity
func (c *Combatant) GetID() string {
	return c.id
}

// GetType implements core.Entity
func (c *Combatant) GetType() string {
	return EntityType
}

// Name returns the display name
func (c *Combatant) Name() string {
	return c.name
}

// Class returns the combatant's class definition
func (c *Combatant) Class() arena.ClassDefinition {
	return c.class
}

// Behavior returns who drives the combatant
func (c *Combatant) Behavior() Behavior {
	return c.behavior
}

// Health returns current health rounded to one decimal
func (c *Combatant) Health() float64 {
	return round1(c.health)
}

// Stamina returns current stamina rounded to one decimal
func (c *Combatant) Stamina() float64 {
	return round1(c.stamina)
}

// SkillUsed reports whether the one-shot skill has been spent
func (c *Combatant) SkillUsed() bool {
	return c.skillUsed
}

// Defense returns the armor value applied against an incoming hit. Raising
// the armor costs StaminaPerTurn; without enough stamina the defense is zero
// and nothing is spent. Stamina gates compare the displayed value.
func (c *Combatant) Defense() float64 {
	if c.Stamina() < c.armor.StaminaPerTurn {
		return 0
	}

	c.spend(c.armor.StaminaPerTurn)
	return c.armor.Defence * c.class.ArmorCoefficient
}

// WeaponHit swings the weapon at target. ok is false when the attacker lacks
// the stamina for the swing. A hit fully absorbed by armor deals zero damage
// and leaves the attacker's stamina untouched.
func (c *Combatant) WeaponHit(target *Combatant) (damage float64, ok bool) {
	if c.Stamina() < c.weapon.StaminaPerHit {
		return 0, false
	}

	raw := c.weapon.Damage * c.class.AttackCoefficient
	net := raw - target.Defense()
	if net < 0 {
		return 0, true
	}

	c.spend(c.weapon.StaminaPerHit)
	return round1(net), true
}

// UseSkill spends the class skill. ok is false when the skill was already
// used or stamina does not cover its cost.
func (c *Combatant) UseSkill() (damage float64, ok bool) {
	if !c.CanUseSkill() {
		return 0, false
	}

	c.spend(c.class.Skill.StaminaCost)
	c.skillUsed = true
	return c.class.Skill.Damage, true
}

// CanUseSkill reports whether UseSkill would succeed right now
func (c *Combatant) CanUseSkill() bool {
	return !c.skillUsed && c.Stamina() >= c.class.Skill.StaminaCost
}

// spend deducts a cost the displayed stamina covered. The stored value may sit
// a hair below the cost, so it floors at zero.
func (c *Combatant) spend(cost float64) {
	c.stamina = math.Max(0, c.stamina-cost)
}

// TakeDamage lowers health, never below zero. Non-positive amounts are ignored.
func (c *Combatant) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	c.health = math.Max(0, c.health-amount)
}

// RegenerateStamina restores the per-round stamina, capped at the class maximum
func (c *Combatant) RegenerateStamina() {
	c.stamina = math.Min(c.class.MaxStamina, c.stamina+BaseStaminaPerRound*c.class.StaminaCoefficient)
}

// Hit performs this combatant's attack on target according to its behavior.
// An AI opponent first has a 10% chance to spend its skill; the skill damage
// is reported on the Strike but never applied, and the weapon swing follows
// regardless.
func (c *Combatant) Hit(target *Combatant, roller dice.Roller) Strike {
	var strike Strike

	if c.behavior == AIControlled && c.rollForSkill(roller) && c.CanUseSkill() {
		strike.SkillDamage, strike.SkillUsed = c.UseSkill()
	}

	strike.Damage, strike.Landed = c.WeaponHit(target)
	return strike
}

func (c *Combatant) rollForSkill(roller dice.Roller) bool {
	if roller == nil {
		return false
	}

	roll, err := roller.Roll(100)
	if err != nil {
		slog.Warn("Skill roll failed, striking without skill",
			"combatant_id", c.id,
			"error", err,
		)
		return false
	}

	return roll <= aiSkillChance
}

// Snapshot returns a read-only view for presentation
func (c *Combatant) Snapshot() Snapshot {
	return Snapshot{
		ID:          c.id,
		Name:        c.name,
		ClassName:   c.class.Name,
		WeaponName:  c.weapon.Name,
		ArmorName:   c.armor.Name,
		Behavior:    c.behavior,
		Health:      c.Health(),
		MaxHealth:   c.class.MaxHealth,
		Stamina:     c.Stamina(),
		MaxStamina:  c.class.MaxStamina,
		SkillName:   c.class.Skill.Name,
		SkillCost:   c.class.Skill.StaminaCost,
		SkillUsed:   c.skillUsed,
		CanUseSkill: c.CanUseSkill(),
	}
}

// State captures what must be saved to restore the combatant later
func (c *Combatant) State() CombatantState {
	return CombatantState{
		ID:         c.id,
		Name:       c.name,
		ClassName:  c.class.Name,
		WeaponName: c.weapon.Name,
		ArmorName:  c.armor.Name,
		Behavior:   c.behavior,
		Health:     c.health,
		Stamina:    c.stamina,
		SkillUsed:  c.skillUsed,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, maxValue float64) float64 {
	return math.Max(0, math.Min(maxValue, v))
}

var _ core.Entity = (*Combatant)(nil)
