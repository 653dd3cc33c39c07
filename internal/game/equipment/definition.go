package equipment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// WeaponTypeSkill maps a weapon type to the skill that scales it.
var WeaponTypeSkill = map[string]string{
	"sword":  "swords",
	"axe":    "axes",
	"dagger": "daggers",
	"hammer": "hammers",
	"spear":  "spears",
}

var armorSlots = map[Slot]struct{}{
	SlotHead: {}, SlotTorso: {}, SlotArms: {}, SlotLegs: {}, SlotFeet: {},
	SlotRing: {}, SlotAmulet: {},
}

var toolSlots = map[Slot]struct{}{
	SlotAxe: {}, SlotPickaxe: {}, SlotSickle: {}, SlotRod: {},
}

// ItemDef is the YAML form of an item. Build converts it into its tagged variant.
type ItemDef struct {
	ID            string             `yaml:"id"`
	Name          string             `yaml:"name"`
	Kind          Kind               `yaml:"kind"`
	Slot          Slot               `yaml:"slot"`
	WeaponType    string             `yaml:"weapon_type"`
	Attack        float64            `yaml:"attack"`
	Defense       float64            `yaml:"defense"`
	BlockStrength float64            `yaml:"block_strength"`
	Stats         stats.Contribution `yaml:"stats"`
}

// Build validates d and returns the matching Item variant.
//
// Precondition: d is non-nil.
// Postcondition: Returns a non-nil Item iff err is nil.
func (d *ItemDef) Build() (Item, error) {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.Defense < 0 {
		errs = append(errs, errors.New("defense must be >= 0"))
	}
	common := Common{ID: d.ID, Name: d.Name, Stats: d.Stats.Clone()}

	var item Item
	switch d.Kind {
	case KindWeapon:
		if _, ok := WeaponTypeSkill[d.WeaponType]; !ok {
			errs = append(errs, fmt.Errorf("weapon_type %q is not a known weapon type", d.WeaponType))
		}
		if d.Attack <= 0 {
			errs = append(errs, errors.New("weapon attack must be > 0"))
		}
		item = &Weapon{Common: common, WeaponType: d.WeaponType, Attack: d.Attack}
	case KindArmor:
		if _, ok := armorSlots[d.Slot]; !ok {
			errs = append(errs, fmt.Errorf("slot %q is not a valid armor slot", d.Slot))
		}
		item = &Armor{Common: common, ArmorSlot: d.Slot, Defense: d.Defense}
	case KindShield:
		if d.BlockStrength < 0 {
			errs = append(errs, errors.New("block_strength must be >= 0"))
		}
		item = &Shield{Common: common, Defense: d.Defense, BlockStrength: d.BlockStrength}
	case KindArtifact:
		item = &Artifact{Common: common}
	case KindTool:
		if _, ok := toolSlots[d.Slot]; !ok {
			errs = append(errs, fmt.Errorf("slot %q is not a valid tool slot", d.Slot))
		}
		item = &Tool{Common: common, ToolSlot: d.Slot}
	default:
		errs = append(errs, fmt.Errorf("kind %q must be one of [weapon, armor, shield, artifact, tool]", d.Kind))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("item validation failed: %v", errs)
	}
	return item, nil
}

// LoadItems reads all *.yaml files from dir and builds each as an Item.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Items or the first encountered error.
func LoadItems(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []Item
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		var d ItemDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		item, err := d.Build()
		if err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Registry holds all loaded items indexed by ID.
type Registry struct {
	items map[string]Item
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Item)}
}

// Register adds item to the registry.
//
// Precondition: item must not be nil.
// Postcondition: Item(id) returns item; returns error if the ID is already registered.
func (r *Registry) Register(item Item) error {
	id := item.Info().ID
	if _, exists := r.items[id]; exists {
		return fmt.Errorf("equipment: Registry.Register: item ID %q already registered", id)
	}
	r.items[id] = item
	return nil
}

// Item returns the item for id and whether it was found.
func (r *Registry) Item(id string) (Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// All returns all registered items sorted by ID.
func (r *Registry) All() []Item {
	out := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Info().ID < out[j].Info().ID })
	return out
}
