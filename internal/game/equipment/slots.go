// Package equipment provides equipment slots, the tagged item variants that
// occupy them, YAML item definitions, and the aggregator that folds equipped items
// into the equipment stat category.
package equipment

import (
	"errors"
	"fmt"
)

// Slot identifies an equipment slot.
type Slot string

const (
	SlotHead     Slot = "head"
	SlotTorso    Slot = "torso"
	SlotArms     Slot = "arms"
	SlotRing     Slot = "ring"
	SlotWeapon   Slot = "weapon"
	SlotOffHand  Slot = "off_hand"
	SlotLegs     Slot = "legs"
	SlotFeet     Slot = "feet"
	SlotAmulet   Slot = "amulet"
	SlotArtifact Slot = "artifact"
	SlotAxe      Slot = "axe"
	SlotPickaxe  Slot = "pickaxe"
	SlotSickle   Slot = "sickle"
	SlotRod      Slot = "rod"
)

// allSlots is the fixed slot order used for every fold so results are reproducible.
var allSlots = []Slot{
	SlotHead, SlotTorso, SlotArms, SlotRing, SlotWeapon, SlotOffHand, SlotLegs,
	SlotFeet, SlotAmulet, SlotArtifact, SlotAxe, SlotPickaxe, SlotSickle, SlotRod,
}

// AllSlots returns every slot in fold order.
func AllSlots() []Slot {
	return append([]Slot(nil), allSlots...)
}

// ValidSlot reports whether s is a known slot.
func ValidSlot(s Slot) bool {
	for _, v := range allSlots {
		if v == s {
			return true
		}
	}
	return false
}

var (
	// ErrWrongSlot is returned when an item is equipped into a slot it does not fit.
	ErrWrongSlot = errors.New("item does not fit slot")
	// ErrSlotEmpty is returned when unequipping an empty slot.
	ErrSlotEmpty = errors.New("slot is empty")
)

// Storage is the inventory collaborator that receives unequipped items.
type Storage interface {
	Store(item Item)
}

// Bag is an in-memory Storage that keeps items in the order they were stored.
type Bag struct {
	items []Item
}

// Store appends item to the bag.
func (b *Bag) Store(item Item) {
	b.items = append(b.items, item)
}

// Take removes and returns the first item with id.
func (b *Bag) Take(id string) (Item, bool) {
	for i, it := range b.items {
		if it.Info().ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return it, true
		}
	}
	return nil, false
}

// Items returns a copy of the stored items.
func (b *Bag) Items() []Item {
	return append([]Item(nil), b.items...)
}

// Slots holds the item equipped in each slot. It is not safe for concurrent use.
type Slots struct {
	items map[Slot]Item
}

// NewSlots returns Slots with every slot empty.
func NewSlots() *Slots {
	return &Slots{items: make(map[Slot]Item)}
}

// Get returns the item in slot, or (nil, false) when empty.
func (s *Slots) Get(slot Slot) (Item, bool) {
	it, ok := s.items[slot]
	return it, ok
}

// Weapon returns the equipped weapon, or (nil, false) when unarmed.
func (s *Slots) Weapon() (*Weapon, bool) {
	it, ok := s.items[SlotWeapon]
	if !ok {
		return nil, false
	}
	w, ok := it.(*Weapon)
	return w, ok
}

// Equip places item into slot, moving any previously equipped item to storage.
//
// Precondition: item and storage must not be nil.
// Postcondition: Get(slot) returns item; returns ErrWrongSlot if item.Slot() != slot.
func (s *Slots) Equip(slot Slot, item Item, storage Storage) error {
	if item.Slot() != slot {
		return fmt.Errorf("equipping %q into %q: %w", item.Info().ID, slot, ErrWrongSlot)
	}
	if prev, ok := s.items[slot]; ok {
		storage.Store(prev)
	}
	s.items[slot] = item
	return nil
}

// Unequip removes the item in slot and moves it to storage.
//
// Postcondition: Get(slot) reports empty; returns ErrSlotEmpty if nothing was equipped.
func (s *Slots) Unequip(slot Slot, storage Storage) (Item, error) {
	it, ok := s.items[slot]
	if !ok {
		return nil, fmt.Errorf("unequipping %q: %w", slot, ErrSlotEmpty)
	}
	delete(s.items, slot)
	storage.Store(it)
	return it, nil
}

// Occupied calls fn for every occupied slot in fold order.
func (s *Slots) Occupied(fn func(slot Slot, item Item)) {
	for _, slot := range allSlots {
		if it, ok := s.items[slot]; ok {
			fn(slot, it)
		}
	}
}

// IDs returns the item ID equipped in every occupied slot.
func (s *Slots) IDs() map[Slot]string {
	out := make(map[Slot]string, len(s.items))
	for slot, it := range s.items {
		out[slot] = it.Info().ID
	}
	return out
}
