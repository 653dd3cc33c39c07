package environment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// Def is an environment loaded from YAML, e.g. a blizzard or a swamp.
// The level bonus of ResistSkill, when set, pulls the penalties toward neutral.
type Def struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	ResistSkill string             `yaml:"resist_skill"`
	Stats       stats.Contribution `yaml:"stats"`
}

// Validate reports an error if the Def is missing required fields.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	return errors.Join(errs...)
}

// Contribution returns the Environment category for d given the level bonus of
// its resist skill. A nil environment contributes nothing.
func (d *Def) Contribution(resistBonus float64) stats.Contribution {
	if d == nil {
		return stats.NewContribution()
	}
	if d.ResistSkill == "" {
		return d.Stats.Clone()
	}
	return d.Stats.Mitigated(resistBonus)
}

// Registry holds environment definitions by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds d, replacing any def with the same ID.
func (r *Registry) Register(d *Def) {
	r.defs[d.ID] = d
}

// Get returns the def for id.
func (r *Registry) Get(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns every def sorted by ID.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every .yaml file in dir into a Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: every registered def passes Validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading environment dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var d Def
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid environment in %q: %w", path, err)
		}
		reg.Register(&d)
	}
	return reg, nil
}
