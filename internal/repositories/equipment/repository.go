// Package equipment serves the static weapon and armor catalog
package equipment

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=equipmentmock github.com/KirkDiggler/rpg-arena/internal/repositories/equipment Repository

// GetWeaponInput contains parameters for looking up a weapon
type GetWeaponInput struct {
	Name string
}

// GetWeaponOutput contains the weapon found
type GetWeaponOutput struct {
	Weapon arena.Weapon
}

// GetArmorInput contains parameters for looking up an armor
type GetArmorInput struct {
	Name string
}

// GetArmorOutput contains the armor found
type GetArmorOutput struct {
	Armor arena.Armor
}

// ListWeaponsInput contains parameters for listing weapons
type ListWeaponsInput struct{}

// ListWeaponsOutput contains the weapons in catalog order
type ListWeaponsOutput struct {
	Weapons []arena.Weapon
}

// ListArmorsInput contains parameters for listing armors
type ListArmorsInput struct{}

// ListArmorsOutput contains the armors in catalog order
type ListArmorsOutput struct {
	Armors []arena.Armor
}

// Repository provides lookup over the equipment catalog
type Repository interface {
	// GetWeapon returns NotFound for an unknown name
	GetWeapon(ctx context.Context, input *GetWeaponInput) (*GetWeaponOutput, error)

	// GetArmor returns NotFound for an unknown name
	GetArmor(ctx context.Context, input *GetArmorInput) (*GetArmorOutput, error)

	ListWeapons(ctx context.Context, input *ListWeaponsInput) (*ListWeaponsOutput, error)
	ListArmors(ctx context.Context, input *ListArmorsInput) (*ListArmorsOutput, error)
}
