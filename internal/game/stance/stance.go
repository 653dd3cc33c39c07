// Package stance defines combat stances and the contribution of the selected one.
package stance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// Def is a combat stance loaded from YAML. The level bonus of Skill, when set,
// mitigates the stance's penalties.
type Def struct {
	ID    string             `yaml:"id"`
	Name  string             `yaml:"name"`
	Skill string             `yaml:"skill"`
	Stats stats.Contribution `yaml:"stats"`
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
	if len(errs) > 0 {
		return fmt.Errorf("stance validation failed: %v", errs)
	}
	return nil
}

// Contribution returns the stance category for d with its penalties mitigated
// by skillBonus. A nil stance contributes nothing.
func Contribution(d *Def, skillBonus float64) stats.Contribution {
	if d == nil {
		return stats.NewContribution()
	}
	if d.Skill == "" {
		return d.Stats.Clone()
	}
	return d.Stats.Mitigated(skillBonus)
}

// Registry holds stance definitions by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds d, replacing any stance with the same ID.
func (r *Registry) Register(d *Def) {
	r.defs[d.ID] = d
}

// Get returns the stance for id.
func (r *Registry) Get(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns every stance sorted by ID.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDefs reads all .yaml files in dir and returns the parsed Defs.
//
// Precondition: dir must be a readable directory.
// Postcondition: all returned defs pass Validate.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadDefs: cannot read directory %q: %w", dir, err)
	}
	var defs []*Def
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot read file %q: %w", path, err)
		}
		var d Def
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadDefs: invalid stance in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}
