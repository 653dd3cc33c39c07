// Package character owns one character's stat sources and folds them into its
// effective attributes.
package character

import (
	"errors"
	"fmt"
	"maps"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/content"
	"github.com/cory-johannsen/statengine/internal/game/consumable"
	"github.com/cory-johannsen/statengine/internal/game/effect"
	"github.com/cory-johannsen/statengine/internal/game/environment"
	"github.com/cory-johannsen/statengine/internal/game/equipment"
	"github.com/cory-johannsen/statengine/internal/game/progression"
	"github.com/cory-johannsen/statengine/internal/game/skill"
	"github.com/cory-johannsen/statengine/internal/game/stance"
	"github.com/cory-johannsen/statengine/internal/game/stats"
)

var (
	// ErrUnknownItem is returned when an item ID is not in the content pack.
	ErrUnknownItem = errors.New("unknown item")
	// ErrUnknownContent is returned when an effect, stance, environment,
	// elixir, or book ID is not in the content pack.
	ErrUnknownContent = errors.New("unknown content id")
)

// Skills is the skill collaborator the engine reads. *skill.Set satisfies it.
type Skills interface {
	Coefficient(id string, mode skill.Mode) float64
	LevelBonus(id string) float64
	SetLevel(id string, level int) error
	Levels() map[string]int
	Contribution() stats.Contribution
	MilestoneContribution() stats.Contribution
	XPMultipliers() map[string]float64
}

// Character is the stat engine of one character. It is not safe for concurrent use.
type Character struct {
	ID   string
	Name string

	base  map[string]float64
	store *stats.Store
	attrs *stats.AttributeSet

	ledger     *progression.Ledger
	xp         *progression.XPBonuses
	levelGains stats.Contribution

	skills   Skills
	slots    *equipment.Slots
	storage  equipment.Storage
	effects  *effect.ActiveSet
	stance   *stance.Def
	light    environment.LightLevel
	env      *environment.Def
	consumed *consumable.Consumed

	pack    *content.Pack
	script  environment.Scripter
	display Display
	logger  *zap.Logger
}

// Option configures a Character built by New.
type Option func(*Character)

// WithID sets the character ID instead of generating a UUID.
func WithID(id string) Option {
	return func(c *Character) { c.ID = id }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(c *Character) { c.logger = l }
}

// WithDisplay sets the display collaborator. The default is NopDisplay.
func WithDisplay(d Display) Option {
	return func(c *Character) { c.display = d }
}

// WithBaseAttributes overrides entries of stats.DefaultBase.
func WithBaseAttributes(base map[string]float64) Option {
	return func(c *Character) { maps.Copy(c.base, base) }
}

// WithBaseXPCost sets the XP required to reach level 1. New rejects a cost
// that is not a finite positive number.
func WithBaseXPCost(cost float64) Option {
	return func(c *Character) { c.ledger = progression.NewLedger(cost) }
}

// WithScripter sets the Lua hook runner consulted for light levels.
//
// Precondition: s must be a non-nil value.
func WithScripter(s environment.Scripter) Option {
	return func(c *Character) { c.script = s }
}

// WithStorage sets the inventory that receives unequipped items. The default is
// an empty *equipment.Bag.
func WithStorage(s equipment.Storage) Option {
	return func(c *Character) { c.storage = s }
}

// WithSkills replaces the default skill.Set built from the pack's skill registry.
func WithSkills(s Skills) Option {
	return func(c *Character) { c.skills = s }
}

// New builds a level 0 character with full resources and computes its attributes.
//
// Precondition: name must be non-empty; pack must be non-nil.
// Postcondition: Attributes() reflects every source; health, stamina, and mana equal their max.
func New(name string, pack *content.Pack, opts ...Option) (*Character, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if pack == nil {
		return nil, errors.New("content pack must not be nil")
	}
	c := &Character{
		ID:         uuid.NewString(),
		Name:       name,
		base:       stats.DefaultBase(),
		store:      stats.NewStore(),
		ledger:     progression.NewLedger(progression.DefaultBaseXPCost),
		xp:         progression.NewXPBonuses(),
		levelGains: stats.NewContribution(),
		skills:     skill.NewSet(pack.Skills),
		slots:      equipment.NewSlots(),
		storage:    &equipment.Bag{},
		effects:    effect.NewActiveSet(),
		light:      environment.LightNormal,
		consumed:   consumable.NewConsumed(),
		pack:       pack,
		display:    NopDisplay{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !progression.ValidXPCost(c.ledger.BaseXPCost) {
		return nil, fmt.Errorf("building %q: base xp cost %v: %w", name, c.ledger.BaseXPCost, progression.ErrInvalidXPCost)
	}
	for _, r := range []string{stats.Health, stats.Stamina, stats.Mana} {
		c.base[r] = c.base[stats.MaxOf(r)]
	}
	c.attrs = stats.NewAttributeSet(c.base)
	c.syncScaling()
	c.Recompute()
	return c, nil
}

// Attributes returns a copy of the folded attribute set.
func (c *Character) Attributes() *stats.AttributeSet {
	return c.attrs.Clone()
}

// Get returns the folded value of attr.
func (c *Character) Get(attr string) float64 {
	return c.attrs.Get(attr)
}

// Layers returns a copy of every stat category keyed by name.
func (c *Character) Layers() map[string]stats.Contribution {
	return c.store.Layers()
}

// Ledger returns a copy of the progression ledger.
func (c *Character) Ledger() progression.Ledger {
	return *c.ledger
}

// Level returns the character level.
func (c *Character) Level() int {
	return c.ledger.Level
}

// XPBonus returns the collapsed XP multiplier for target.
func (c *Character) XPBonus(target string) float64 {
	return c.xp.Total(target)
}

// SkillXPMultiplier returns the effective XP multiplier for skillID.
func (c *Character) SkillXPMultiplier(skillID string) float64 {
	return c.xp.SkillMultiplier(skillID)
}

// SkillLevels returns a copy of every learned skill level.
func (c *Character) SkillLevels() map[string]int {
	return c.skills.Levels()
}

// Equipped returns the item ID in every occupied slot.
func (c *Character) Equipped() map[equipment.Slot]string {
	return c.slots.IDs()
}

// Effects returns the active effects sorted by ID.
func (c *Character) Effects() []*effect.Active {
	return c.effects.All()
}

// Storage returns the inventory collaborator.
func (c *Character) Storage() equipment.Storage {
	return c.storage
}

// Light returns the current light level.
func (c *Character) Light() environment.LightLevel {
	return c.light
}

// StanceID returns the selected stance, or "" when none.
func (c *Character) StanceID() string {
	if c.stance == nil {
		return ""
	}
	return c.stance.ID
}

// EnvironmentID returns the current environment, or "" when none.
func (c *Character) EnvironmentID() string {
	if c.env == nil {
		return ""
	}
	return c.env.ID
}

// Consumed returns the record of consumed elixirs and read books.
func (c *Character) Consumed() *consumable.Consumed {
	return c.consumed
}
