package consumable

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

type dose struct {
	def   *Elixir
	count int
}

// Consumed records the elixirs a character has drunk and the books it has read.
type Consumed struct {
	elixirs map[string]*dose
	books   map[string]*Book
}

// NewConsumed returns an empty Consumed.
func NewConsumed() *Consumed {
	return &Consumed{
		elixirs: make(map[string]*dose),
		books:   make(map[string]*Book),
	}
}

// Drink records one dose of e.
//
// Precondition: e must be non-nil.
func (c *Consumed) Drink(e *Elixir) error {
	if e == nil {
		return errors.New("consumable: nil elixir")
	}
	d, ok := c.elixirs[e.ID]
	if !ok {
		d = &dose{def: e}
		c.elixirs[e.ID] = d
	}
	d.count++
	return nil
}

// Read records b as read.
//
// Postcondition: returns ErrAlreadyRead and changes nothing when b was read before.
func (c *Consumed) Read(b *Book) error {
	if b == nil {
		return errors.New("consumable: nil book")
	}
	if _, ok := c.books[b.ID]; ok {
		return fmt.Errorf("%s: %w", b.ID, ErrAlreadyRead)
	}
	c.books[b.ID] = b
	return nil
}

// HasRead reports whether the book id has been read.
func (c *Consumed) HasRead(id string) bool {
	_, ok := c.books[id]
	return ok
}

// Doses returns how many times the elixir id has been drunk.
func (c *Consumed) Doses(id string) int {
	if d, ok := c.elixirs[id]; ok {
		return d.count
	}
	return 0
}

// ElixirCounts returns a copy of the dose count per elixir ID.
func (c *Consumed) ElixirCounts() map[string]int {
	out := make(map[string]int, len(c.elixirs))
	for id, d := range c.elixirs {
		out[id] = d.count
	}
	return out
}

// BookIDs returns the IDs of every book read, sorted.
func (c *Consumed) BookIDs() []string {
	return slices.Sorted(maps.Keys(c.books))
}

// ElixirContribution returns the Elixirs category: each elixir's stats scaled by its dose count.
func (c *Consumed) ElixirContribution() stats.Contribution {
	out := stats.NewContribution()
	for _, id := range slices.Sorted(maps.Keys(c.elixirs)) {
		d := c.elixirs[id]
		out.Merge(d.def.Stats.Scaled(d.count))
	}
	return out
}

// BookContribution returns the Books category.
func (c *Consumed) BookContribution() stats.Contribution {
	out := stats.NewContribution()
	for _, id := range c.BookIDs() {
		out.Merge(c.books[id].Stats)
	}
	return out
}

// BookXPMultipliers returns the product of every read book's XP multiplier per target.
func (c *Consumed) BookXPMultipliers() map[string]float64 {
	out := make(map[string]float64)
	for _, id := range c.BookIDs() {
		targets := c.books[id].XPMultipliers
		for _, target := range slices.Sorted(maps.Keys(targets)) {
			cur, ok := out[target]
			if !ok {
				cur = 1
			}
			out[target] = cur * targets[target]
		}
	}
	return out
}
