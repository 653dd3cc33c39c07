package equipment

import (
	"math"

	"github.com/cory-johannsen/statengine/internal/game/skill"
	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// SkillSource is the subset of the skill collaborator the aggregator reads.
type SkillSource interface {
	Coefficient(id string, mode skill.Mode) float64
}

// Aggregate rebuilds the equipment category from the items in slots, then
// applies the weapon-type skill multipliers.
//
// Precondition: slots and skills must be non-nil.
// Postcondition: the result depends only on the current slot contents and skill
// levels; equip then unequip restores the previous result exactly.
func Aggregate(slots *Slots, skills SkillSource) stats.Contribution {
	out := stats.NewContribution()
	slots.Occupied(func(_ Slot, item Item) {
		switch it := item.(type) {
		case *Armor:
			out.AddFlat(stats.Defense, it.Defense)
		case *Shield:
			out.AddFlat(stats.Defense, it.Defense)
			out.AddFlat(stats.BlockStrength, it.BlockStrength)
		}
		out.Merge(item.Info().Stats)
	})

	weapon, _ := slots.Weapon()
	out.Merge(WeaponMultipliers(weapon, skills))
	return out
}

// WeaponMultipliers returns the skill-driven multipliers for the equipped weapon.
//
// Unarmed (weapon == nil): attack_power scales by the unarmed coefficient,
// attack_speed by its cube root, and attack_points by the precision coefficient
// times that cube root. Armed: attack_power and attack_points scale by the
// weapon-type skill and attack_speed is neutral.
func WeaponMultipliers(weapon *Weapon, skills SkillSource) stats.Contribution {
	out := stats.NewContribution()
	if weapon == nil {
		unarmed := skills.Coefficient(skill.Unarmed, skill.Multiplicative)
		root := math.Cbrt(unarmed)
		out.MulMultiplier(stats.AttackPower, unarmed)
		out.MulMultiplier(stats.AttackSpeed, root)
		out.MulMultiplier(stats.AttackPoints, skills.Coefficient(skill.Precision, skill.Multiplicative)*root)
		return out
	}

	coef := skills.Coefficient(WeaponTypeSkill[weapon.WeaponType], skill.Multiplicative)
	out.MulMultiplier(stats.AttackPower, coef)
	out.MulMultiplier(stats.AttackPoints, coef)
	out.MulMultiplier(stats.AttackSpeed, 1)
	return out
}
