package equipment

import (
	"context"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// DefaultCatalog returns the catalog compiled into the binary
func DefaultCatalog() []byte {
	return append([]byte(nil), defaultCatalog...)
}

// Config selects where the catalog is loaded from. Data wins over Path;
// with neither set the embedded default is used.
type Config struct {
	Path string
	Data []byte
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	return nil
}

type catalogRepository struct {
	catalog *arena.Catalog
	weapons map[string]arena.Weapon
	armors  map[string]arena.Armor
}

// New loads and validates the catalog. Any problem with the document is
// returned as an error; the caller is expected to fail startup on it.
func New(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	data := cfg.Data
	if len(data) == 0 && cfg.Path != "" {
		raw, err := os.ReadFile(cfg.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read catalog %s", cfg.Path)
		}
		data = raw
	}
	if len(data) == 0 {
		data = defaultCatalog
	}

	catalog, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return NewFromCatalog(catalog)
}

// NewFromCatalog wraps an already parsed catalog
func NewFromCatalog(catalog *arena.Catalog) (Repository, error) {
	if catalog == nil {
		return nil, errors.InvalidArgument("catalog cannot be nil")
	}
	if err := Validate(catalog); err != nil {
		return nil, err
	}

	repo := &catalogRepository{
		catalog: catalog,
		weapons: make(map[string]arena.Weapon, len(catalog.Weapons)),
		armors:  make(map[string]arena.Armor, len(catalog.Armors)),
	}
	for _, w := range catalog.Weapons {
		repo.weapons[w.Name] = w
	}
	for _, a := range catalog.Armors {
		repo.armors[a.Name] = a
	}

	return repo, nil
}

// Parse decodes a catalog document without validating it
func Parse(data []byte) (*arena.Catalog, error) {
	var catalog arena.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse catalog")
	}
	return &catalog, nil
}

// Validate checks that both lists are present, names are unique and no
// stat is negative
func Validate(catalog *arena.Catalog) error {
	vb := errors.NewValidationBuilder()

	if len(catalog.Weapons) == 0 {
		vb.RequiredField("weapons")
	}
	if len(catalog.Armors) == 0 {
		vb.RequiredField("armors")
	}

	seen := make(map[string]bool)
	for i, w := range catalog.Weapons {
		field := "weapons[" + w.Name + "]"
		if w.Name == "" {
			vb.Fieldf("weapons", "entry %d has no name", i)
		} else if seen[field] {
			vb.Fieldf("weapons", "duplicate name %q", w.Name)
		}
		seen[field] = true
		errors.ValidateNonNegative(field+".damage", w.Damage, vb)
		errors.ValidateNonNegative(field+".stamina_per_hit", w.StaminaPerHit, vb)
	}

	for i, a := range catalog.Armors {
		field := "armors[" + a.Name + "]"
		if a.Name == "" {
			vb.Fieldf("armors", "entry %d has no name", i)
		} else if seen[field] {
			vb.Fieldf("armors", "duplicate name %q", a.Name)
		}
		seen[field] = true
		errors.ValidateNonNegative(field+".defence", a.Defence, vb)
		errors.ValidateNonNegative(field+".stamina_per_turn", a.StaminaPerTurn, vb)
	}

	return vb.Build()
}

func (r *catalogRepository) GetWeapon(_ context.Context, input *GetWeaponInput) (*GetWeaponOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.InvalidArgument("weapon name is required")
	}

	weapon, ok := r.weapons[input.Name]
	if !ok {
		return nil, errors.NotFoundf("weapon %q not found", input.Name).WithMeta("weapon", input.Name)
	}

	return &GetWeaponOutput{Weapon: weapon}, nil
}

func (r *catalogRepository) GetArmor(_ context.Context, input *GetArmorInput) (*GetArmorOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.InvalidArgument("armor name is required")
	}

	armor, ok := r.armors[input.Name]
	if !ok {
		return nil, errors.NotFoundf("armor %q not found", input.Name).WithMeta("armor", input.Name)
	}

	return &GetArmorOutput{Armor: armor}, nil
}

func (r *catalogRepository) ListWeapons(_ context.Context, _ *ListWeaponsInput) (*ListWeaponsOutput, error) {
	weapons := make([]arena.Weapon, len(r.catalog.Weapons))
	copy(weapons, r.catalog.Weapons)
	return &ListWeaponsOutput{Weapons: weapons}, nil
}

func (r *catalogRepository) ListArmors(_ context.Context, _ *ListArmorsInput) (*ListArmorsOutput, error) {
	armors := make([]arena.Armor, len(r.catalog.Armors))
	copy(armors, r.catalog.Armors)
	return &ListArmorsOutput{Armors: armors}, nil
}
