package testutils

import (
	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// Catalog entries used across tests
var (
	TestSword  = arena.Weapon{Name: "Sword", Damage: 10, StaminaPerHit: 2}
	TestAxe    = arena.Weapon{Name: "Axe", Damage: 14, StaminaPerHit: 4}
	TestDagger = arena.Weapon{Name: "Dagger", Damage: 4, StaminaPerHit: 1}

	TestLeather = arena.Armor{Name: "Leather", Defence: 2, StaminaPerTurn: 1}
	TestNoArmor = arena.Armor{Name: "Cloth", Defence: 0, StaminaPerTurn: 0}
)

// CreateTestCatalog returns a small catalog covering the test entries
func CreateTestCatalog() *arena.Catalog {
	return &arena.Catalog{
		Weapons: []arena.Weapon{TestSword, TestAxe, TestDagger},
		Armors:  []arena.Armor{TestLeather, TestNoArmor},
	}
}

// CreatePlainClass returns a class with neutral coefficients so damage
// arithmetic in tests reads directly off the weapon and armor values
func CreatePlainClass(maxHealth, maxStamina float64) arena.ClassDefinition {
	return arena.ClassDefinition{
		Name:               "Tester",
		MaxHealth:          maxHealth,
		MaxStamina:         maxStamina,
		StaminaCoefficient: 1,
		AttackCoefficient:  1,
		ArmorCoefficient:   1,
		Skill: arena.Skill{
			Name:        "Test Strike",
			StaminaCost: 5,
			Damage:      8,
		},
	}
}

// CreateTestPlayer builds a player-controlled combatant
func CreateTestPlayer(class arena.ClassDefinition, weapon arena.Weapon, armor arena.Armor) *combat.Combatant {
	return combat.NewCombatant(&combat.Config{
		ID:       "player-test-001",
		Name:     "Hero",
		Class:    class,
		Weapon:   weapon,
		Armor:    armor,
		Behavior: combat.PlayerControlled,
	})
}

// CreateTestOpponent builds an AI-controlled combatant
func CreateTestOpponent(class arena.ClassDefinition, weapon arena.Weapon, armor arena.Armor) *combat.Combatant {
	return combat.NewCombatant(&combat.Config{
		ID:       "opponent-test-001",
		Name:     "Villain",
		Class:    class,
		Weapon:   weapon,
		Armor:    armor,
		Behavior: combat.AIControlled,
	})
}

// CreateTestSelection returns a valid selection against CreateTestCatalog
func CreateTestSelection(className, name string) *arena.Selection {
	return &arena.Selection{
		ClassName:  className,
		WeaponName: TestSword.Name,
		ArmorName:  TestLeather.Name,
		Name:       name,
	}
}
