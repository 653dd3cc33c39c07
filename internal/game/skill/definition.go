// Package skill provides the skill collaborator the stat engine consumes:
// YAML skill definitions, and the learned skill levels of a character with their
// level bonuses, coefficients, stat effects, and milestones.
package skill

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

// Skill IDs the stat engine reads directly.
const (
	LimitBreaking  = "limit_breaking"
	ShieldBlocking = "shield_blocking"
	Combat         = "combat"
	Evasion        = "evasion"
	Unarmed        = "unarmed"
	Precision      = "precision"
	NightVision    = "night_vision"
)

// EffectKind selects how a skill stat effect contributes.
type EffectKind string

const (
	// EffectFlat adds Scale * level bonus to the attribute.
	EffectFlat EffectKind = "flat"
	// EffectMultiplier multiplies the attribute by 1 + Scale * level bonus.
	EffectMultiplier EffectKind = "multiplier"
)

// StatEffect binds a skill's level bonus to one attribute.
type StatEffect struct {
	Attribute string     `yaml:"attribute"`
	Kind      EffectKind `yaml:"kind"`
	Scale     float64    `yaml:"scale"`
}

// Milestone is a one-off reward granted once a skill reaches Level.
type Milestone struct {
	Level int                `yaml:"level"`
	Stats stats.Contribution `yaml:"stats"`
	// XPMultipliers maps an XP bonus target to a multiplier.
	XPMultipliers map[string]float64 `yaml:"xp_multipliers"`
}

// Def is the static definition of a skill, loaded from YAML.
type Def struct {
	ID            string       `yaml:"id"`
	Name          string       `yaml:"name"`
	Description   string       `yaml:"description"`
	MaxLevel      int          `yaml:"max_level"`
	BonusPerLevel float64      `yaml:"bonus_per_level"`
	Stats         []StatEffect `yaml:"stats"`
	Milestones    []Milestone  `yaml:"milestones"`
}

// LevelBonus returns the bonus the skill provides at level, capped at MaxLevel.
//
// Postcondition: Returns 0 for level <= 0.
func (d *Def) LevelBonus(level int) float64 {
	if level <= 0 {
		return 0
	}
	if d.MaxLevel > 0 && level > d.MaxLevel {
		level = d.MaxLevel
	}
	return d.BonusPerLevel * float64(level)
}

// Validate checks that the Def satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.MaxLevel < 1 {
		errs = append(errs, fmt.Errorf("max_level must be >= 1, got %d", d.MaxLevel))
	}
	if d.BonusPerLevel < 0 {
		errs = append(errs, errors.New("bonus_per_level must be >= 0"))
	}
	for i, e := range d.Stats {
		if e.Attribute == "" {
			errs = append(errs, fmt.Errorf("stats[%d].attribute must not be empty", i))
		}
		if e.Kind != EffectFlat && e.Kind != EffectMultiplier {
			errs = append(errs, fmt.Errorf("stats[%d].kind %q must be \"flat\" or \"multiplier\"", i, e.Kind))
		}
	}
	for i, m := range d.Milestones {
		if m.Level < 1 || m.Level > d.MaxLevel {
			errs = append(errs, fmt.Errorf("milestones[%d].level %d must be within 1..max_level", i, m.Level))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("skill validation failed: %v", errs)
	}
	return nil
}

// LoadDefs reads every *.yaml file in dir, parses each as a Def, and validates it.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all valid Defs or the first encountered error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading skill dir %q: %w", dir, err)
	}
	var defs []*Def
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
			return nil, fmt.Errorf("invalid skill in %q: %w", path, err)
		}
		defs = append(defs, &def)
	}
	return defs, nil
}
