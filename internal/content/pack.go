// Package content loads every YAML content directory into one Pack and checks
// the cross references between them.
package content

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/statengine/internal/game/consumable"
	"github.com/cory-johannsen/statengine/internal/game/effect"
	"github.com/cory-johannsen/statengine/internal/game/environment"
	"github.com/cory-johannsen/statengine/internal/game/equipment"
	"github.com/cory-johannsen/statengine/internal/game/progression"
	"github.com/cory-johannsen/statengine/internal/game/skill"
	"github.com/cory-johannsen/statengine/internal/game/stance"
)

// Dirs names the directory of each content kind. An empty entry is skipped.
type Dirs struct {
	Items        string
	Skills       string
	Effects      string
	Stances      string
	Environments string
	Elixirs      string
	Books        string
}

// Pack is every content definition a character can reference.
type Pack struct {
	Items        *equipment.Registry
	Skills       *skill.Registry
	Effects      *effect.Registry
	Stances      *stance.Registry
	Environments *environment.Registry
	Consumables  *consumable.Registry
}

// NewPack returns a Pack with empty registries.
func NewPack() *Pack {
	return &Pack{
		Items:        equipment.NewRegistry(),
		Skills:       skill.NewRegistry(),
		Effects:      effect.NewRegistry(),
		Stances:      stance.NewRegistry(),
		Environments: environment.NewRegistry(),
		Consumables:  consumable.NewRegistry(),
	}
}

// Load reads every directory in dirs concurrently, then validates the result.
//
// Precondition: logger must be non-nil.
// Postcondition: returns a Pack that passes Validate, or the first error.
func Load(ctx context.Context, dirs Dirs, logger *zap.Logger) (*Pack, error) {
	p := NewPack()
	g, ctx := errgroup.WithContext(ctx)

	if dirs.Items != "" {
		g.Go(func() error {
			items, err := equipment.LoadItems(dirs.Items)
			if err != nil {
				return err
			}
			for _, it := range items {
				if err := p.Items.Register(it); err != nil {
					return err
				}
			}
			logger.Debug("content: loaded items", zap.Int("count", len(items)))
			return ctx.Err()
		})
	}
	if dirs.Skills != "" {
		g.Go(func() error {
			defs, err := skill.LoadDefs(dirs.Skills)
			if err != nil {
				return err
			}
			for _, d := range defs {
				if err := p.Skills.Register(d); err != nil {
					return err
				}
			}
			logger.Debug("content: loaded skills", zap.Int("count", len(defs)))
			return ctx.Err()
		})
	}
	if dirs.Effects != "" {
		g.Go(func() error {
			reg, err := effect.LoadDirectory(dirs.Effects)
			if err != nil {
				return err
			}
			p.Effects = reg
			return ctx.Err()
		})
	}
	if dirs.Stances != "" {
		g.Go(func() error {
			defs, err := stance.LoadDefs(dirs.Stances)
			if err != nil {
				return err
			}
			for _, d := range defs {
				p.Stances.Register(d)
			}
			logger.Debug("content: loaded stances", zap.Int("count", len(defs)))
			return ctx.Err()
		})
	}
	if dirs.Environments != "" {
		g.Go(func() error {
			reg, err := environment.LoadDirectory(dirs.Environments)
			if err != nil {
				return err
			}
			p.Environments = reg
			return ctx.Err()
		})
	}
	if dirs.Elixirs != "" || dirs.Books != "" {
		// Elixirs and books share one registry, so they load on one goroutine.
		g.Go(func() error {
			if dirs.Elixirs != "" {
				if err := p.Consumables.LoadElixirs(dirs.Elixirs); err != nil {
					return err
				}
			}
			if dirs.Books != "" {
				if err := p.Consumables.LoadBooks(dirs.Books); err != nil {
					return err
				}
			}
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger.Info("content loaded")
	return p, nil
}

// Validate reports every reference to a skill that is not in p.Skills:
// weapon types, book and milestone XP targets, stance skills, and environment
// resist skills.
func (p *Pack) Validate() error {
	var errs []error
	for _, it := range p.Items.All() {
		w, ok := it.(*equipment.Weapon)
		if !ok {
			continue
		}
		if id := equipment.WeaponTypeSkill[w.WeaponType]; !p.Skills.Has(id) {
			errs = append(errs, fmt.Errorf("item %q: weapon skill %q is not defined", w.ID, id))
		}
	}
	for _, b := range p.Consumables.Books() {
		for _, target := range sortedKeys(b.XPMultipliers) {
			if !p.validXPTarget(target) {
				errs = append(errs, fmt.Errorf("book %q: unknown xp target %q", b.ID, target))
			}
		}
	}
	for _, id := range p.Skills.IDs() {
		def, _ := p.Skills.Get(id)
		for _, m := range def.Milestones {
			for _, target := range sortedKeys(m.XPMultipliers) {
				if !p.validXPTarget(target) {
					errs = append(errs, fmt.Errorf("skill %q milestone %d: unknown xp target %q", id, m.Level, target))
				}
			}
		}
	}
	for _, s := range p.Stances.All() {
		if s.Skill != "" && !p.Skills.Has(s.Skill) {
			errs = append(errs, fmt.Errorf("stance %q: skill %q is not defined", s.ID, s.Skill))
		}
	}
	for _, e := range p.Environments.All() {
		if e.ResistSkill != "" && !p.Skills.Has(e.ResistSkill) {
			errs = append(errs, fmt.Errorf("environment %q: resist skill %q is not defined", e.ID, e.ResistSkill))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("content validation failed: %w", errors.Join(errs...))
	}
	return nil
}

func (p *Pack) validXPTarget(target string) bool {
	switch target {
	case progression.TargetCharacter, progression.TargetAll, progression.TargetAllSkill:
		return true
	}
	return p.Skills.Has(target)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
