package character

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cory-johannsen/statengine/internal/content"
	"github.com/cory-johannsen/statengine/internal/game/environment"
	"github.com/cory-johannsen/statengine/internal/game/equipment"
	"github.com/cory-johannsen/statengine/internal/game/progression"
	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// EffectState is the serialized form of one active effect.
type EffectState struct {
	ID        string `json:"id"`
	Stacks    int    `json:"stacks"`
	Remaining int    `json:"remaining"`
}

// Snapshot is the serialized form of a character's stat sources. Derived
// categories and the attribute set are not stored; Restore rebuilds them.
type Snapshot struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Base        map[string]float64        `json:"base"`
	Ledger      progression.Ledger        `json:"ledger"`
	LevelGains  stats.Contribution        `json:"level_gains"`
	LevelXP     map[string]float64        `json:"level_xp,omitempty"`
	Skills      map[string]int            `json:"skills,omitempty"`
	Equipment   map[equipment.Slot]string `json:"equipment,omitempty"`
	Inventory   []string                  `json:"inventory,omitempty"`
	Effects     []EffectState             `json:"effects,omitempty"`
	Stance      string                    `json:"stance,omitempty"`
	Light       environment.LightLevel    `json:"light"`
	Environment string                    `json:"environment,omitempty"`
	Elixirs     map[string]int            `json:"elixirs,omitempty"`
	Books       []string                  `json:"books,omitempty"`
	Resources   map[string]float64        `json:"resources"`
}

// Snapshot captures the character's sources and current resources.
func (c *Character) Snapshot() Snapshot {
	s := Snapshot{
		ID:          c.ID,
		Name:        c.Name,
		Base:        maps.Clone(c.base),
		Ledger:      *c.ledger,
		LevelGains:  c.levelGains.Clone(),
		LevelXP:     c.xp.Layer(progression.LayerLevels),
		Skills:      c.skills.Levels(),
		Equipment:   c.slots.IDs(),
		Stance:      c.StanceID(),
		Light:       c.light,
		Environment: c.EnvironmentID(),
		Elixirs:     c.consumed.ElixirCounts(),
		Books:       c.consumed.BookIDs(),
		Resources:   make(map[string]float64, len(resources)),
	}
	if bag, ok := c.storage.(*equipment.Bag); ok {
		for _, it := range bag.Items() {
			s.Inventory = append(s.Inventory, it.Info().ID)
		}
	}
	for _, a := range c.effects.All() {
		s.Effects = append(s.Effects, EffectState{ID: a.Def.ID, Stacks: a.Stacks, Remaining: a.Remaining})
	}
	for _, r := range resources {
		s.Resources[r] = c.attrs.Get(r)
	}
	return s
}

// Restore rebuilds a character from s against pack. opts apply as for New;
// WithID and WithBaseAttributes are implied by s.
//
// Postcondition: the restored attribute set equals the one the snapshotted
// character held and is the last set sent to the display; returns an error
// wrapping ErrUnknownItem or ErrUnknownContent when s references content
// missing from pack, or progression.ErrInvalidXPCost for an unusable ledger.
func Restore(s Snapshot, pack *content.Pack, opts ...Option) (*Character, error) {
	opts = append(opts, WithID(s.ID), WithBaseAttributes(s.Base))
	c, err := New(s.Name, pack, opts...)
	if err != nil {
		return nil, err
	}

	if !progression.ValidXPCost(s.Ledger.BaseXPCost) {
		return nil, fmt.Errorf("restoring %q: base xp cost %v: %w", s.ID, s.Ledger.BaseXPCost, progression.ErrInvalidXPCost)
	}
	ledger := s.Ledger
	c.ledger = &ledger
	c.levelGains = s.LevelGains.Clone()
	c.xp.SetLayer(progression.LayerLevels, s.LevelXP)

	for _, id := range sortedKeys(s.Skills) {
		if err := c.skills.SetLevel(id, s.Skills[id]); err != nil {
			return nil, fmt.Errorf("restoring %q: %w", s.ID, err)
		}
	}
	for _, slot := range equipment.AllSlots() {
		id, ok := s.Equipment[slot]
		if !ok {
			continue
		}
		item, ok := pack.Items.Item(id)
		if !ok {
			return nil, fmt.Errorf("restoring %q: item %q: %w", s.ID, id, ErrUnknownItem)
		}
		if err := c.slots.Equip(slot, item, c.storage); err != nil {
			return nil, fmt.Errorf("restoring %q: %w", s.ID, err)
		}
	}
	if bag, ok := c.storage.(*equipment.Bag); ok {
		for _, id := range s.Inventory {
			item, ok := pack.Items.Item(id)
			if !ok {
				return nil, fmt.Errorf("restoring %q: item %q: %w", s.ID, id, ErrUnknownItem)
			}
			bag.Store(item)
		}
	}
	for _, e := range s.Effects {
		def, ok := pack.Effects.Get(e.ID)
		if !ok {
			return nil, fmt.Errorf("restoring %q: effect %q: %w", s.ID, e.ID, ErrUnknownContent)
		}
		if err := c.effects.Apply(def, e.Stacks, e.Remaining); err != nil {
			return nil, fmt.Errorf("restoring %q: %w", s.ID, err)
		}
	}
	if s.Stance != "" {
		def, ok := pack.Stances.Get(s.Stance)
		if !ok {
			return nil, fmt.Errorf("restoring %q: stance %q: %w", s.ID, s.Stance, ErrUnknownContent)
		}
		c.stance = def
	}
	if s.Environment != "" {
		def, ok := pack.Environments.Get(s.Environment)
		if !ok {
			return nil, fmt.Errorf("restoring %q: environment %q: %w", s.ID, s.Environment, ErrUnknownContent)
		}
		c.env = def
	}
	if s.Light != "" {
		c.light = s.Light
	}
	for _, id := range sortedKeys(s.Elixirs) {
		e, ok := pack.Consumables.Elixir(id)
		if !ok {
			return nil, fmt.Errorf("restoring %q: elixir %q: %w", s.ID, id, ErrUnknownContent)
		}
		for range s.Elixirs[id] {
			if err := c.consumed.Drink(e); err != nil {
				return nil, err
			}
		}
	}
	for _, id := range s.Books {
		b, ok := pack.Consumables.Book(id)
		if !ok {
			return nil, fmt.Errorf("restoring %q: book %q: %w", s.ID, id, ErrUnknownContent)
		}
		if err := c.consumed.Read(b); err != nil {
			return nil, fmt.Errorf("restoring %q: %w", s.ID, err)
		}
	}

	c.Recompute()
	for _, r := range resources {
		if v, ok := s.Resources[r]; ok {
			c.attrs.Set(r, v, v, 1)
		}
	}
	c.display.RefreshStats(c.ID, c.attrs.Clone())
	return c, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
