// Package progression tracks experience, converts it into levels via a
// closed-form geometric series, and generates the permanent rewards for each level.
package progression

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultBaseXPCost is the XP required to reach level 1.
	DefaultBaseXPCost = 10
	// BaseXPScaling is the per-level growth of the XP requirement before skill reductions.
	BaseXPScaling = 1.6
	// MinXPScaling bounds the growth rate away from 1, where the closed form divides by zero.
	MinXPScaling = 1.01
)

// ErrInvalidXPCost is returned when a ledger's base XP cost is not a finite positive number.
var ErrInvalidXPCost = errors.New("base xp cost must be a finite positive number")

// ValidXPCost reports whether cost can anchor a level curve.
func ValidXPCost(cost float64) bool {
	return cost > 0 && !math.IsInf(cost, 0)
}

// ErrInvalidXP is returned when an XP amount is negative, NaN, or infinite.
var ErrInvalidXP = errors.New("xp amount must be a finite non-negative number")

// ComputeXPScaling returns the per-level XP growth rate for a character whose
// limit-breaking skill provides limitBreakingBonus.
//
// Postcondition: Returns >= MinXPScaling.
func ComputeXPScaling(limitBreakingBonus float64) float64 {
	return math.Max(MinXPScaling, BaseXPScaling-limitBreakingBonus)
}

// CumulativeXP returns the total experience required to reach level, i.e. the
// geometric series base * (1 + s + ... + s^(level-1)) rounded to the nearest integer.
// While at level n, the threshold for the next level is CumulativeXP(n+1).
//
// Postcondition: CumulativeXP(.., 0) == 0; strictly increasing in level for base > 0.
func CumulativeXP(base, scaling float64, level int) float64 {
	if level <= 0 {
		return 0
	}
	if scaling < MinXPScaling {
		scaling = MinXPScaling
	}
	return math.Round(base * (1 - math.Pow(scaling, float64(level))) / (1 - scaling))
}

// Ledger is the experience bookkeeping of one character.
//
// Invariant: TotalXPToNextLevel == CumulativeXP(Level+1);
// XPToNextLevel == TotalXPToNextLevel - CumulativeXP(Level);
// CurrentXP == TotalXP - CumulativeXP(Level).
// After AddXP, TotalXP < TotalXPToNextLevel. SetScaling may lower the curve so
// that TotalXP >= TotalXPToNextLevel and CurrentXP > XPToNextLevel; the surplus
// stays pending until the next AddXP converts it into levels.
type Ledger struct {
	TotalXP            float64 `json:"total_xp"`
	CurrentXP          float64 `json:"current_xp"`
	Level              int     `json:"level"`
	XPToNextLevel      float64 `json:"xp_to_next_level"`
	TotalXPToNextLevel float64 `json:"total_xp_to_next_level"`
	BaseXPCost         float64 `json:"base_xp_cost"`
	XPScaling          float64 `json:"xp_scaling"`
}

// NewLedger returns a level 0 ledger with no experience.
//
// Precondition: ValidXPCost(baseXPCost); otherwise AddXP returns ErrInvalidXPCost.
// Postcondition: Level == 0; thresholds are consistent with BaseXPScaling.
func NewLedger(baseXPCost float64) *Ledger {
	l := &Ledger{BaseXPCost: baseXPCost, XPScaling: BaseXPScaling}
	l.sync()
	return l
}

// threshold returns CumulativeXP for level under the ledger's current cost curve.
func (l *Ledger) threshold(level int) float64 {
	return CumulativeXP(l.BaseXPCost, l.XPScaling, level)
}

// sync re-derives the thresholds and CurrentXP for the current level.
func (l *Ledger) sync() {
	prev := l.threshold(l.Level)
	l.TotalXPToNextLevel = l.threshold(l.Level + 1)
	l.XPToNextLevel = l.TotalXPToNextLevel - prev
	l.CurrentXP = l.TotalXP - prev
}

// SetScaling changes the growth rate and re-derives thresholds. The level is
// not changed; a surplus is converted into levels by the next AddXP call.
//
// Postcondition: XPScaling >= MinXPScaling.
func (l *Ledger) SetScaling(scaling float64) {
	l.XPScaling = math.Max(MinXPScaling, scaling)
	l.sync()
}

// LevelUp records the outcome of a single AddXP call that crossed at least one threshold.
type LevelUp struct {
	From    int
	To      int
	Rewards Reward
}

// Levels returns the number of levels gained.
func (u LevelUp) Levels() int {
	return u.To - u.From
}

// AddXP adds amount to the ledger, advancing as many levels as the new total covers.
//
// Precondition: amount is finite and >= 0.
// Postcondition: Returns (nil, nil) when no threshold is crossed; otherwise a
// LevelUp whose Rewards cover every level in From+1..To. The ledger invariants hold.
func (l *Ledger) AddXP(amount float64) (*LevelUp, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("adding %v xp: %w", amount, ErrInvalidXP)
	}
	if !ValidXPCost(l.BaseXPCost) {
		return nil, fmt.Errorf("adding %v xp: %w", amount, ErrInvalidXPCost)
	}

	l.TotalXP += amount
	if l.TotalXP < l.TotalXPToNextLevel {
		l.CurrentXP = l.TotalXP - l.threshold(l.Level)
		return nil, nil
	}

	from := l.Level
	for l.TotalXP >= l.threshold(l.Level+1) {
		l.Level++
	}
	l.sync()

	return &LevelUp{
		From:    from,
		To:      l.Level,
		Rewards: LevelRewards(from, l.Level),
	}, nil
}
