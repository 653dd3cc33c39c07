package progression

import (
	"math"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// SkillXPGainPerLevel is the compounding skill XP multiplier granted by each level.
const SkillXPGainPerLevel = 1.03

// Reward is the accumulated stat growth for a batch of levels.
type Reward struct {
	// Gains holds the flat growth destined for the level category.
	Gains stats.Contribution
	// SkillXPMultiplier is the compounded skill XP gain bonus for the batch.
	SkillXPMultiplier float64
}

// LevelRewards accumulates the rewards for every level in from+1..to inclusive.
//
// Postcondition: SkillXPMultiplier == 1.03^(to-from); Gains is empty when to <= from.
func LevelRewards(from, to int) Reward {
	r := Reward{Gains: stats.NewContribution(), SkillXPMultiplier: 1}
	for i := from + 1; i <= to; i++ {
		tier := math.Ceil(float64(i) / 10)

		r.Gains.AddFlat(stats.MaxHealth, 10*tier)
		r.Gains.AddFlat(stats.MaxStamina, 5)

		if i%2 == 1 {
			r.Gains.AddFlat(stats.Strength, tier)
			r.Gains.AddFlat(stats.Intuition, tier)
		} else {
			r.Gains.AddFlat(stats.Agility, tier)
			r.Gains.AddFlat(stats.Dexterity, tier)
		}
		if i%5 == 0 {
			r.Gains.AddFlat(stats.Magic, tier)
		}
		if i%10 == 0 {
			r.Gains.AddFlat(stats.MaxMana, tier)
		}

		r.SkillXPMultiplier *= SkillXPGainPerLevel
	}
	return r
}
