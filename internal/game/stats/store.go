package stats

import "slices"

// Store is the layered contribution store: one Contribution per Category.
// It is not safe for concurrent use.
type Store struct {
	layers [numCategories]Contribution
}

// NewStore returns a Store with every category empty.
func NewStore() *Store {
	s := &Store{}
	for i := range s.layers {
		s.layers[i] = NewContribution()
	}
	return s
}

// Set replaces the whole sub-map of category c with contrib.
//
// Precondition: c is a valid Category.
// Postcondition: Get(c) returns a copy equal to contrib; no entry from the previous
// contribution survives.
func (s *Store) Set(c Category, contrib Contribution) {
	s.layers[c] = contrib.Clone()
}

// Get returns a copy of the contribution of category c.
func (s *Store) Get(c Category) Contribution {
	return s.layers[c].Clone()
}

// Reset empties category c.
func (s *Store) Reset(c Category) {
	s.layers[c] = NewContribution()
}

// Sum folds attr over every category in enum order.
//
// Postcondition: flat and percent default to 0, mult defaults to 1.
func (s *Store) Sum(attr string) (flat, percent, mult float64) {
	mult = 1
	for i := range s.layers {
		l := &s.layers[i]
		flat += l.Flat[attr]
		percent += l.Percent[attr]
		if m, ok := l.Multiplier[attr]; ok {
			mult *= m
		}
	}
	return flat, percent, mult
}

// Multiplier returns the product of every category's multiplier for attr.
func (s *Store) Multiplier(attr string) float64 {
	_, _, m := s.Sum(attr)
	return m
}

// Layers returns a copy of every category's contribution keyed by category name.
func (s *Store) Layers() map[string]Contribution {
	out := make(map[string]Contribution, numCategories)
	for i := range s.layers {
		out[Category(i).String()] = s.layers[i].Clone()
	}
	return out
}

// Attributes returns every attribute any category touches, sorted.
func (s *Store) Attributes() []string {
	seen := make(map[string]struct{})
	for i := range s.layers {
		for _, attr := range s.layers[i].Attributes() {
			seen[attr] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for attr := range seen {
		out = append(out, attr)
	}
	slices.Sort(out)
	return out
}
