package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

func TestLookupClass(t *testing.T) {
	testCases := []struct {
		name       string
		className  string
		maxHealth  float64
		maxStamina float64
		skillCost  float64
	}{
		{"warrior", arena.ClassWarrior, 60, 30, 6},
		{"robber", arena.ClassRobber, 50, 25, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			class, err := arena.LookupClass(tc.className)
			require.NoError(t, err)
			assert.Equal(t, tc.className, class.Name)
			assert.Equal(t, tc.maxHealth, class.MaxHealth)
			assert.Equal(t, tc.maxStamina, class.MaxStamina)
			assert.Equal(t, tc.skillCost, class.Skill.StaminaCost)
		})
	}
}

func TestLookupClass_Unknown(t *testing.T) {
	_, err := arena.LookupClass("Necromancer")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "Necromancer", errors.GetMeta(err)["class"])
}

func TestClasses_ReturnsCopies(t *testing.T) {
	classes := arena.Classes()
	require.Len(t, classes, 2)

	classes[0].MaxHealth = 1

	warrior, err := arena.LookupClass(arena.ClassWarrior)
	require.NoError(t, err)
	assert.Equal(t, float64(60), warrior.MaxHealth)
	assert.Equal(t, arena.ClassNames(), []string{classes[0].Name, classes[1].Name})
}

func TestCatalogNames(t *testing.T) {
	catalog := &arena.Catalog{
		Weapons: []arena.Weapon{{Name: "Axe"}, {Name: "Dagger"}},
		Armors:  []arena.Armor{{Name: "Leather"}},
	}

	assert.Equal(t, []string{"Axe", "Dagger"}, catalog.WeaponNames())
	assert.Equal(t, []string{"Leather"}, catalog.ArmorNames())
}
