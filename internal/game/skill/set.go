package skill

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// ErrUnknownSkill is returned when a skill ID is not in the registry.
var ErrUnknownSkill = errors.New("unknown skill")

// Mode selects the form of a skill coefficient.
type Mode int

const (
	// Multiplicative coefficients are 1 + level bonus.
	Multiplicative Mode = iota
	// Additive coefficients are the level bonus itself.
	Additive
)

// Set is the learned skill levels of one character.
// It is not safe for concurrent use.
type Set struct {
	reg    *Registry
	levels map[string]int
}

// NewSet returns a Set with no skill levels.
//
// Precondition: reg must not be nil.
func NewSet(reg *Registry) *Set {
	return &Set{reg: reg, levels: make(map[string]int)}
}

// SetLevel records the level of skill id, capped at its MaxLevel.
//
// Postcondition: returns ErrUnknownSkill if id is not registered; a level <= 0 forgets the skill.
func (s *Set) SetLevel(id string, level int) error {
	def, ok := s.reg.Get(id)
	if !ok {
		return fmt.Errorf("setting level of %q: %w", id, ErrUnknownSkill)
	}
	if level <= 0 {
		delete(s.levels, id)
		return nil
	}
	s.levels[id] = min(level, def.MaxLevel)
	return nil
}

// Level returns the level of skill id, or 0 when unlearned or unknown.
func (s *Set) Level(id string) int {
	return s.levels[id]
}

// Levels returns a copy of every learned skill level.
func (s *Set) Levels() map[string]int {
	return maps.Clone(s.levels)
}

// LevelBonus returns the level bonus of skill id, or 0 when unlearned or unknown.
func (s *Set) LevelBonus(id string) float64 {
	def, ok := s.reg.Get(id)
	if !ok {
		return 0
	}
	return def.LevelBonus(s.levels[id])
}

// Coefficient returns the scaling factor of skill id.
//
// Postcondition: an unlearned skill is neutral: 1 for Multiplicative, 0 for Additive.
func (s *Set) Coefficient(id string, mode Mode) float64 {
	bonus := s.LevelBonus(id)
	if mode == Additive {
		return bonus
	}
	return 1 + bonus
}

// sortedIDs returns the learned skill IDs in a stable order so float folds are reproducible.
func (s *Set) sortedIDs() []string {
	ids := make([]string, 0, len(s.levels))
	for id := range s.levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Contribution builds the skills category from every learned skill's stat effects.
func (s *Set) Contribution() stats.Contribution {
	out := stats.NewContribution()
	for _, id := range s.sortedIDs() {
		def, _ := s.reg.Get(id)
		bonus := def.LevelBonus(s.levels[id])
		for _, e := range def.Stats {
			switch e.Kind {
			case EffectFlat:
				out.AddFlat(e.Attribute, e.Scale*bonus)
			case EffectMultiplier:
				out.MulMultiplier(e.Attribute, 1+e.Scale*bonus)
			}
		}
	}
	return out
}

// MilestoneContribution builds the skill_milestones category from every milestone reached.
func (s *Set) MilestoneContribution() stats.Contribution {
	out := stats.NewContribution()
	for _, id := range s.sortedIDs() {
		def, _ := s.reg.Get(id)
		for _, m := range def.Milestones {
			if s.levels[id] >= m.Level {
				out.Merge(m.Stats)
			}
		}
	}
	return out
}

// XPMultipliers returns the product of every reached milestone's XP multiplier per target.
func (s *Set) XPMultipliers() map[string]float64 {
	out := make(map[string]float64)
	for _, id := range s.sortedIDs() {
		def, _ := s.reg.Get(id)
		for _, m := range def.Milestones {
			if s.levels[id] < m.Level {
				continue
			}
			targets := make([]string, 0, len(m.XPMultipliers))
			for t := range m.XPMultipliers {
				targets = append(targets, t)
			}
			sort.Strings(targets)
			for _, t := range targets {
				cur, ok := out[t]
				if !ok {
					cur = 1
				}
				out[t] = cur * m.XPMultipliers[t]
			}
		}
	}
	return out
}
