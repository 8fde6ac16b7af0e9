// Package arena holds the static data of the arena: equipment, character
// classes and the selections a player makes before a fight.
package arena

// Weapon is an immutable catalog entry. Each landed hit costs StaminaPerHit.
type Weapon struct {
	Name          string  `json:"name"`
	Damage        float64 `json:"damage"`
	StaminaPerHit float64 `json:"stamina_per_hit"`
}

// Armor is an immutable catalog entry. Blocking a hit costs StaminaPerTurn.
type Armor struct {
	Name           string  `json:"name"`
	Defence        float64 `json:"defence"`
	StaminaPerTurn float64 `json:"stamina_per_turn"`
}

// Catalog is the on-disk shape of the equipment document
type Catalog struct {
	Weapons []Weapon `json:"weapons"`
	Armors  []Armor  `json:"armors"`
}

// WeaponNames returns the weapon names in catalog order
func (c *Catalog) WeaponNames() []string {
	names := make([]string, 0, len(c.Weapons))
	for _, w := range c.Weapons {
		names = append(names, w.Name)
	}
	return names
}

// ArmorNames returns the armor names in catalog order
func (c *Catalog) ArmorNames() []string {
	names := make([]string, 0, len(c.Armors))
	for _, a := range c.Armors {
		names = append(names, a.Name)
	}
	return names
}
