package arena

import (
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Class names accepted from the selection forms
const (
	ClassWarrior = "Warrior"
	ClassRobber  = "Robber"
)

// Skill is a class's one-shot special attack. Its damage ignores armor.
type Skill struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StaminaCost float64 `json:"stamina_cost"`
	Damage      float64 `json:"damage"`
}

// ClassDefinition is an archetype's base stats
type ClassDefinition struct {
	Name               string  `json:"name"`
	MaxHealth          float64 `json:"max_health"`
	MaxStamina         float64 `json:"max_stamina"`
	StaminaCoefficient float64 `json:"stamina_coefficient"`
	AttackCoefficient  float64 `json:"attack_coefficient"`
	ArmorCoefficient   float64 `json:"armor_coefficient"`
	Skill              Skill   `json:"skill"`
}

var (
	ferociousKick = Skill{
		Name:        "Ferocious Kick",
		Description: "A brutal kick that ignores the target's armor.",
		StaminaCost: 6,
		Damage:      12,
	}

	powerfulThrust = Skill{
		Name:        "Powerful Thrust",
		Description: "A precise thrust straight through any guard.",
		StaminaCost: 5,
		Damage:      15,
	}

	warrior = ClassDefinition{
		Name:               ClassWarrior,
		MaxHealth:          60,
		MaxStamina:         30,
		StaminaCoefficient: 0.9,
		AttackCoefficient:  0.8,
		ArmorCoefficient:   1.2,
		Skill:              ferociousKick,
	}

	robber = ClassDefinition{
		Name:               ClassRobber,
		MaxHealth:          50,
		MaxStamina:         25,
		StaminaCoefficient: 1.2,
		AttackCoefficient:  1.5,
		ArmorCoefficient:   1.0,
		Skill:              powerfulThrust,
	}
)

// Classes returns the playable classes in display order. The returned values
// are copies; the definitions themselves never change.
func Classes() []ClassDefinition {
	return []ClassDefinition{warrior, robber}
}

// ClassNames returns the names of the playable classes
func ClassNames() []string {
	return []string{ClassWarrior, ClassRobber}
}

// LookupClass returns the class with the given name
func LookupClass(name string) (ClassDefinition, error) {
	switch name {
	case ClassWarrior:
		return warrior, nil
	case ClassRobber:
		return robber, nil
	default:
		return ClassDefinition{}, errors.NotFoundf("class %q not found", name).WithMeta("class", name)
	}
}
