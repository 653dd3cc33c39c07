package character

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// DamageInput describes one hit.
type DamageInput struct {
	Raw float64
	// CanFaint clamps health at 0 and marks the character fainted. When false,
	// health may go negative.
	CanFaint bool
	// IgnoreDefense bypasses defense and the damage floors.
	IgnoreDefense bool
	// Pierce is subtracted from defense before mitigation.
	Pierce float64
}

// DamageResult is the outcome of TakeDamage.
type DamageResult struct {
	Dealt   float64
	Health  float64
	Fainted bool
}

// ceilTenth rounds v up to one decimal place. The epsilon keeps values such as
// 0.3 from rounding to 0.4 through binary representation error.
func ceilTenth(v float64) float64 {
	return math.Ceil(v*10-1e-9) / 10
}

// MitigatedDamage returns the damage a raw hit deals against defense.
//
// Chip hits (raw < 1) deal raw rounded up to a tenth, never negative. Bypassing
// hits deal raw rounded up. Otherwise the hit deals raw minus the unpierced
// defense, floored at 10% of raw and at 1. NaN raw damage deals 0.
func MitigatedDamage(raw, defense, pierce float64, ignoreDefense bool) float64 {
	if math.IsNaN(raw) {
		return 0
	}
	if raw < 1 {
		return math.Max(ceilTenth(raw), 0)
	}
	if ignoreDefense {
		return ceilTenth(raw)
	}
	effective := math.Max(0, defense-pierce)
	return ceilTenth(math.Max(math.Max(raw-effective, raw*0.1), 1))
}

// TakeDamage applies one hit against the character's current defense.
//
// Postcondition: health decreases by Dealt; when CanFaint and health reaches
// 0 or below, health is 0 and Fainted is true.
func (c *Character) TakeDamage(in DamageInput) DamageResult {
	dealt := MitigatedDamage(in.Raw, c.attrs.Get(stats.Defense), in.Pierce, in.IgnoreDefense)
	health := c.attrs.Get(stats.Health) - dealt
	fainted := false
	if health <= 0 && in.CanFaint {
		health = 0
		fainted = true
	}
	c.attrs.Set(stats.Health, health, health, 1)
	if fainted {
		c.logger.Info("character fainted", zap.String("character", c.ID))
	}
	c.display.RefreshStats(c.ID, c.attrs.Clone())
	return DamageResult{Dealt: dealt, Health: health, Fainted: fainted}
}

// Heal restores amount health, capped at max health. A fainted character is
// revived.
//
// Precondition: amount >= 0.
func (c *Character) Heal(amount float64) float64 {
	if math.IsNaN(amount) || amount < 0 {
		amount = 0
	}
	health := math.Min(c.attrs.Get(stats.Health)+amount, c.attrs.Get(stats.MaxHealth))
	c.attrs.Set(stats.Health, health, health, 1)
	c.display.RefreshStats(c.ID, c.attrs.Clone())
	return health
}
