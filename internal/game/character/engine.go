package character

import (
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/game/environment"
	"github.com/cory-johannsen/statengine/internal/game/equipment"
	"github.com/cory-johannsen/statengine/internal/game/progression"
	"github.com/cory-johannsen/statengine/internal/game/skill"
	"github.com/cory-johannsen/statengine/internal/game/stance"
	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// baseBlockChance is the block chance of a character with no shield blocking skill.
const baseBlockChance = 0.75

// derived attributes are computed from other folded attributes rather than folded directly.
var derived = map[string]bool{
	stats.BlockChance:   true,
	stats.AttackPoints:  true,
	stats.EvasionPoints: true,
	stats.AttackPower:   true,
	stats.MagicPower:    true,
	stats.Health:        true,
	stats.Stamina:       true,
	stats.Mana:          true,
}

var resources = []string{stats.Health, stats.Stamina, stats.Mana}

// Recompute rebuilds every stat category from its source and folds the
// attribute set.
//
// Postcondition: current health, stamina, and mana keep the amount they were
// missing from their max before the call; a fainted character stays fainted.
// Calling Recompute twice without a mutation in between yields bit-identical
// attributes.
func (c *Character) Recompute() {
	c.rebuildCategories()

	prev := c.attrs
	next := stats.NewAttributeSet(nil)
	for _, attr := range c.foldOrder() {
		if derived[attr] {
			continue
		}
		full, flat, mult := c.store.Fold(attr, c.base[attr])
		next.Set(attr, full, flat, mult)
	}
	c.deriveCombat(next)
	deriveResources(prev, next)
	c.attrs = next

	c.refreshXPBonuses()
	c.logger.Debug("recomputed attributes",
		zap.String("character", c.ID),
		zap.Float64("max_health", next.Get(stats.MaxHealth)),
		zap.Float64("attack_power", next.Get(stats.AttackPower)),
	)
	c.display.RefreshStats(c.ID, c.attrs.Clone())
}

// rebuildCategories replaces every category with the current output of its source.
func (c *Character) rebuildCategories() {
	c.store.Set(stats.CategoryLevel, c.levelGains)
	c.store.Set(stats.CategorySkills, c.skills.Contribution())
	c.store.Set(stats.CategorySkillMilestones, c.skills.MilestoneContribution())
	c.store.Set(stats.CategoryEquipment, equipment.Aggregate(c.slots, c.skills))
	c.store.Set(stats.CategoryStance, stance.Contribution(c.stance, c.stanceBonus()))
	c.store.Set(stats.CategoryLightLevel,
		environment.LightContribution(c.light, c.skills.LevelBonus(skill.NightVision), c.script))
	c.store.Set(stats.CategoryEnvironment, c.env.Contribution(c.resistBonus()))
	c.store.Set(stats.CategoryActiveEffect, c.effects.Contribution())
	c.store.Set(stats.CategoryElixirs, c.consumed.ElixirContribution())
	c.store.Set(stats.CategoryBooks, c.consumed.BookContribution())
}

func (c *Character) stanceBonus() float64 {
	if c.stance == nil || c.stance.Skill == "" {
		return 0
	}
	return c.skills.LevelBonus(c.stance.Skill)
}

func (c *Character) resistBonus() float64 {
	if c.env == nil || c.env.ResistSkill == "" {
		return 0
	}
	return c.skills.LevelBonus(c.env.ResistSkill)
}

// foldOrder returns every base attribute and every attribute a category
// touches, sorted.
func (c *Character) foldOrder() []string {
	attrs := c.store.Attributes()
	for attr := range c.base {
		attrs = append(attrs, attr)
	}
	slices.Sort(attrs)
	return slices.Compact(attrs)
}

// deriveCombat computes the attributes that depend on folded primaries.
func (c *Character) deriveCombat(next *stats.AttributeSet) {
	block := baseBlockChance + math.Round(c.skills.LevelBonus(skill.ShieldBlocking)*1e4)/1e4
	next.Set(stats.BlockChance, block, block, 1)

	insight := math.Sqrt(math.Max(next.Get(stats.Intuition), 0))
	setScaled(next, stats.AttackPoints,
		insight*next.Get(stats.Dexterity)*c.skills.Coefficient(skill.Combat, skill.Multiplicative),
		c.store.Multiplier(stats.AttackPoints))
	setScaled(next, stats.EvasionPoints,
		next.Get(stats.Agility)*insight*c.skills.Coefficient(skill.Evasion, skill.Multiplicative),
		c.store.Multiplier(stats.EvasionPoints))

	attack := next.Get(stats.Strength) / 10
	if w, ok := c.slots.Weapon(); ok {
		attack *= w.Attack
	}
	setPower(next, stats.AttackPower, attack, c.store.Multiplier(stats.AttackPower))
	setPower(next, stats.MagicPower, next.Get(stats.Magic)*10, c.store.Multiplier(stats.MagicPower))
}

func setScaled(next *stats.AttributeSet, attr string, raw, mult float64) {
	next.Set(attr, raw*mult, raw, mult)
}

// setPower records a power attribute whose flat part is reported as Full / multiplier.
func setPower(next *stats.AttributeSet, attr string, raw, mult float64) {
	full := raw * mult
	flat := raw
	if mult != 0 {
		flat = full / mult
	}
	next.Set(attr, full, flat, mult)
}

// deriveResources carries each resource's missing amount from prev into next.
func deriveResources(prev, next *stats.AttributeSet) {
	for _, r := range resources {
		v := next.Get(stats.MaxOf(r)) - prev.Missing(r)
		switch {
		case r == stats.Health && prev.Get(stats.Health) <= 0:
			v = prev.Get(stats.Health)
		case r == stats.Health:
			v = math.Max(1, v)
		default:
			v = math.Max(0, v)
		}
		next.Set(r, v, v, 1)
	}
}

// refreshXPBonuses rebuilds the skills and books XP layers and notifies the
// display of every target whose total changed.
func (c *Character) refreshXPBonuses() {
	c.xp.SetLayer(progression.LayerSkills, c.skills.XPMultipliers())
	c.xp.SetLayer(progression.LayerBooks, c.consumed.BookXPMultipliers())
	for _, target := range c.xp.Recompute() {
		c.display.RefreshXPBonus(target, c.xp.Total(target))
	}
}

// syncScaling applies the limit breaking skill to the ledger's XP curve.
func (c *Character) syncScaling() {
	c.ledger.SetScaling(progression.ComputeXPScaling(c.skills.LevelBonus(skill.LimitBreaking)))
}
