package effect

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// ErrInvalidStacks is returned by Apply when fewer than one stack is requested.
var ErrInvalidStacks = errors.New("effect stacks must be >= 1")

// Active tracks one applied effect.
type Active struct {
	Def       *Def
	Stacks    int
	Remaining int // -1 = permanent
}

// ActiveSet tracks all effects currently applied to one character.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	effects map[string]*Active
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{effects: make(map[string]*Active)}
}

// Apply adds or refreshes an effect.
// Re-applying increments stacks (capped at MaxStacks) and extends duration to
// max(existing, duration). Unstackable effects (MaxStacks == 0) always hold 1 stack.
//
// Precondition: def must not be nil.
// Postcondition: Has(def.ID) is true; returns ErrInvalidStacks and changes
// nothing when stacks < 1.
func (s *ActiveSet) Apply(def *Def, stacks, duration int) error {
	if def == nil {
		return fmt.Errorf("Apply: def must not be nil")
	}
	if stacks < 1 {
		return fmt.Errorf("applying %q with %d stacks: %w", def.ID, stacks, ErrInvalidStacks)
	}
	if def.DurationType == DurationPermanent {
		duration = -1
	}

	if existing, ok := s.effects[def.ID]; ok {
		if def.MaxStacks > 0 {
			existing.Stacks = min(existing.Stacks+stacks, def.MaxStacks)
		}
		if duration > existing.Remaining {
			existing.Remaining = duration
		}
		return nil
	}

	effective := stacks
	if def.MaxStacks == 0 {
		effective = 1
	} else if effective > def.MaxStacks {
		effective = def.MaxStacks
	}
	s.effects[def.ID] = &Active{Def: def, Stacks: effective, Remaining: duration}
	return nil
}

// Remove deletes the effect with the given ID. Removing an absent effect is a no-op.
//
// Postcondition: Has(id) is false.
func (s *ActiveSet) Remove(id string) {
	delete(s.effects, id)
}

// Tick decrements the remaining duration of every timed effect by 1 and removes
// those that reach 0. Permanent effects are not affected.
//
// Postcondition: Returns the expired IDs in sorted order; Has is false for each.
func (s *ActiveSet) Tick() []string {
	var expired []string
	for id, a := range s.effects {
		if a.Remaining < 0 {
			continue
		}
		a.Remaining--
		if a.Remaining <= 0 {
			expired = append(expired, id)
			delete(s.effects, id)
		}
	}
	sort.Strings(expired)
	return expired
}

// Has reports whether the effect with id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.effects[id]
	return ok
}

// Stacks returns the current stack count for effect id, or 0 if not present.
func (s *ActiveSet) Stacks(id string) int {
	if a, ok := s.effects[id]; ok {
		return a.Stacks
	}
	return 0
}

// All returns the active effects sorted by ID. The pointed-to values are shared;
// callers must not modify them.
func (s *ActiveSet) All() []*Active {
	out := make([]*Active, 0, len(s.effects))
	for _, a := range s.effects {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Def.ID < out[j].Def.ID })
	return out
}

// Contribution folds every active effect, scaled by its stacks, into the
// active_effect category.
func (s *ActiveSet) Contribution() stats.Contribution {
	out := stats.NewContribution()
	for _, a := range s.All() {
		out.Merge(a.Def.Stats.Scaled(a.Stacks))
	}
	return out
}
