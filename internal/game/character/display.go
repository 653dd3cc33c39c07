package character

//go:generate mockgen -destination=mocks/mock_display.go -package=mocks -source=display.go

import (
	"github.com/cory-johannsen/statengine/internal/game/progression"
	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// Display receives change notifications. Calls are fire-and-forget; an
// implementation must not call back into the Character.
type Display interface {
	// RefreshStats is called after every recompute and damage application.
	RefreshStats(id string, attrs *stats.AttributeSet)
	// RefreshXP is called after every XP gain.
	RefreshXP(id string, ledger progression.Ledger)
	// RefreshXPBonus is called once for each XP bonus target whose total changed.
	RefreshXPBonus(target string, multiplier float64)
}

// NopDisplay discards every notification.
type NopDisplay struct{}

func (NopDisplay) RefreshStats(string, *stats.AttributeSet) {}
func (NopDisplay) RefreshXP(string, progression.Ledger)     {}
func (NopDisplay) RefreshXPBonus(string, float64)           {}
