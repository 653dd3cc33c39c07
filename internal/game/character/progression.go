package character

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/game/progression"
)

// AddXP grants amount experience. When applyGlobalBonus is set the amount is
// first scaled by the character and all XP bonus totals.
//
// Precondition: amount is finite and >= 0.
// Postcondition: returns progression.ErrInvalidXP and changes nothing on bad input;
// on a level up every level's rewards are folded into the level category and
// the attributes are recomputed.
func (c *Character) AddXP(amount float64, applyGlobalBonus bool) (*progression.LevelUp, error) {
	if applyGlobalBonus {
		amount *= c.xp.Total(progression.TargetCharacter) * c.xp.Total(progression.TargetAll)
	}
	c.syncScaling()
	up, err := c.ledger.AddXP(amount)
	if err != nil {
		return nil, err
	}
	if up != nil {
		c.levelGains.Merge(up.Rewards.Gains)
		c.xp.Multiply(progression.LayerLevels, progression.TargetAllSkill, up.Rewards.SkillXPMultiplier)
		c.logger.Info("character leveled up",
			zap.String("character", c.ID),
			zap.Int("from", up.From),
			zap.Int("to", up.To),
		)
		c.Recompute()
	}
	c.display.RefreshXP(c.ID, *c.ledger)
	return up, nil
}
