package skill

import (
	"fmt"
	"sort"
)

// Registry holds all known skill Defs keyed by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds def to the registry.
//
// Precondition: def must not be nil.
// Postcondition: Get(def.ID) returns def; returns error if def.ID is already registered.
func (r *Registry) Register(def *Def) error {
	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("skill: Registry.Register: skill ID %q already registered", def.ID)
	}
	r.defs[def.ID] = def
	return nil
}

// Get returns the Def for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.defs[id]
	return ok
}

// IDs returns every registered skill ID in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.defs))
	for id := range r.defs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
