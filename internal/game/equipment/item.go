package equipment

import "github.com/cory-johannsen/statengine/internal/game/stats"

// Kind tags an item variant.
type Kind string

const (
	KindWeapon   Kind = "weapon"
	KindArmor    Kind = "armor"
	KindShield   Kind = "shield"
	KindArtifact Kind = "artifact"
	KindTool     Kind = "tool"
)

// Common holds the fields every item variant shares.
type Common struct {
	ID    string
	Name  string
	Stats stats.Contribution
}

// Item is an equippable item. The set of variants is closed: *Weapon, *Armor,
// *Shield, *Artifact, and *Tool.
type Item interface {
	Info() Common
	Kind() Kind
	Slot() Slot
	isItem()
}

// Weapon occupies the weapon slot. Attack scales attack power; WeaponType
// selects the skill that scales attack power and attack points.
type Weapon struct {
	Common
	WeaponType string
	Attack     float64
}

// Armor occupies a body or jewelry slot and provides defense.
type Armor struct {
	Common
	ArmorSlot Slot
	Defense   float64
}

// Shield occupies the off-hand slot.
type Shield struct {
	Common
	Defense       float64
	BlockStrength float64
}

// Artifact occupies the artifact slot and provides stats only.
type Artifact struct {
	Common
}

// Tool occupies one of the gathering tool slots and provides stats only.
type Tool struct {
	Common
	ToolSlot Slot
}

func (w *Weapon) Info() Common { return w.Common }
func (w *Weapon) Kind() Kind   { return KindWeapon }
func (w *Weapon) Slot() Slot   { return SlotWeapon }
func (w *Weapon) isItem()      {}

func (a *Armor) Info() Common { return a.Common }
func (a *Armor) Kind() Kind   { return KindArmor }
func (a *Armor) Slot() Slot   { return a.ArmorSlot }
func (a *Armor) isItem()      {}

func (s *Shield) Info() Common { return s.Common }
func (s *Shield) Kind() Kind   { return KindShield }
func (s *Shield) Slot() Slot   { return SlotOffHand }
func (s *Shield) isItem()      {}

func (a *Artifact) Info() Common { return a.Common }
func (a *Artifact) Kind() Kind   { return KindArtifact }
func (a *Artifact) Slot() Slot   { return SlotArtifact }
func (a *Artifact) isItem()      {}

func (t *Tool) Info() Common { return t.Common }
func (t *Tool) Kind() Kind   { return KindTool }
func (t *Tool) Slot() Slot   { return t.ToolSlot }
func (t *Tool) isItem()      {}
