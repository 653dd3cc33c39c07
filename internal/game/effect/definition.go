// Package effect tracks temporary effects applied to a character and folds
// them into the active_effect stat category.
package effect

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// Duration types.
const (
	DurationTicks     = "ticks"
	DurationPermanent = "permanent"
)

// Def is the static definition of an effect, loaded from YAML.
type Def struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	Description  string             `yaml:"description"`
	DurationType string             `yaml:"duration_type"` // "ticks" | "permanent"
	MaxStacks    int                `yaml:"max_stacks"`    // 0 = unstackable
	Stats        stats.Contribution `yaml:"stats"`
}

// Validate checks that the Def satisfies its invariants.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.DurationType != DurationTicks && d.DurationType != DurationPermanent {
		errs = append(errs, fmt.Errorf("duration_type %q must be %q or %q", d.DurationType, DurationTicks, DurationPermanent))
	}
	if d.MaxStacks < 0 {
		errs = append(errs, errors.New("max_stacks must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("effect validation failed: %v", errs)
	}
	return nil
}

// Registry holds all known effect Defs keyed by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *Def) {
	r.defs[def.ID] = def
}

// Get returns the Def for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// LoadDirectory reads every *.yaml file in dir, parses each as a Def,
// and returns a populated Registry.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading effect dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("invalid effect in %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}
