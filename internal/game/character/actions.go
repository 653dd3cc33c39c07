package character

import (
	"fmt"

	"github.com/cory-johannsen/statengine/internal/game/environment"
	"github.com/cory-johannsen/statengine/internal/game/equipment"
	"github.com/cory-johannsen/statengine/internal/game/skill"
)

// Equip equips the pack item itemID into its slot. A previously equipped item
// in that slot moves to storage.
//
// Postcondition: returns ErrUnknownItem when itemID is not in the pack.
func (c *Character) Equip(itemID string) error {
	item, ok := c.pack.Items.Item(itemID)
	if !ok {
		return fmt.Errorf("equipping %q: %w", itemID, ErrUnknownItem)
	}
	if err := c.slots.Equip(item.Slot(), item, c.storage); err != nil {
		return err
	}
	c.Recompute()
	return nil
}

// Unequip moves the item in slot to storage.
//
// Postcondition: returns equipment.ErrSlotEmpty when nothing is equipped there.
func (c *Character) Unequip(slot equipment.Slot) (equipment.Item, error) {
	item, err := c.slots.Unequip(slot, c.storage)
	if err != nil {
		return nil, err
	}
	c.Recompute()
	return item, nil
}

// SetSkillLevel records the level of skill id and recomputes.
//
// Postcondition: returns skill.ErrUnknownSkill when id is not in the pack.
func (c *Character) SetSkillLevel(id string, level int) error {
	if err := c.skills.SetLevel(id, level); err != nil {
		return err
	}
	if id == skill.LimitBreaking {
		c.syncScaling()
	}
	c.Recompute()
	return nil
}

// ApplyEffect applies stacks of the pack effect id for duration ticks.
func (c *Character) ApplyEffect(id string, stacks, duration int) error {
	def, ok := c.pack.Effects.Get(id)
	if !ok {
		return fmt.Errorf("applying effect %q: %w", id, ErrUnknownContent)
	}
	if err := c.effects.Apply(def, stacks, duration); err != nil {
		return err
	}
	c.Recompute()
	return nil
}

// RemoveEffect removes effect id. Removing an absent effect is a no-op.
func (c *Character) RemoveEffect(id string) {
	if !c.effects.Has(id) {
		return
	}
	c.effects.Remove(id)
	c.Recompute()
}

// TickEffects advances every timed effect by one tick and returns the IDs that expired.
func (c *Character) TickEffects() []string {
	expired := c.effects.Tick()
	if len(expired) > 0 {
		c.Recompute()
	}
	return expired
}

// SetStance selects the pack stance id. The empty string clears the stance.
func (c *Character) SetStance(id string) error {
	if id == "" {
		c.stance = nil
		c.Recompute()
		return nil
	}
	def, ok := c.pack.Stances.Get(id)
	if !ok {
		return fmt.Errorf("selecting stance %q: %w", id, ErrUnknownContent)
	}
	c.stance = def
	c.Recompute()
	return nil
}

// SetLight changes the ambient light level.
func (c *Character) SetLight(level environment.LightLevel) {
	c.light = level
	c.Recompute()
}

// SetEnvironment moves the character into the pack environment id. The empty
// string clears the environment.
func (c *Character) SetEnvironment(id string) error {
	if id == "" {
		c.env = nil
		c.Recompute()
		return nil
	}
	def, ok := c.pack.Environments.Get(id)
	if !ok {
		return fmt.Errorf("entering environment %q: %w", id, ErrUnknownContent)
	}
	c.env = def
	c.Recompute()
	return nil
}

// ConsumeElixir drinks one dose of the pack elixir id.
func (c *Character) ConsumeElixir(id string) error {
	e, ok := c.pack.Consumables.Elixir(id)
	if !ok {
		return fmt.Errorf("drinking elixir %q: %w", id, ErrUnknownContent)
	}
	if err := c.consumed.Drink(e); err != nil {
		return err
	}
	c.Recompute()
	return nil
}

// ReadBook reads the pack book id.
//
// Postcondition: returns consumable.ErrAlreadyRead and changes nothing when
// the book was read before.
func (c *Character) ReadBook(id string) error {
	b, ok := c.pack.Consumables.Book(id)
	if !ok {
		return fmt.Errorf("reading book %q: %w", id, ErrUnknownContent)
	}
	if err := c.consumed.Read(b); err != nil {
		return err
	}
	c.Recompute()
	return nil
}
