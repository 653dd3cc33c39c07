package observability

import (
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/game/character"
	"github.com/cory-johannsen/statengine/internal/game/progression"
	"github.com/cory-johannsen/statengine/internal/game/stats"
)

var _ character.Display = (*DisplayLogger)(nil)

// DisplayLogger is a character.Display that writes every refresh to a logger.
// Attribute values are written in sorted name order.
type DisplayLogger struct {
	logger *zap.Logger
}

// NewDisplayLogger returns a DisplayLogger writing to logger.
//
// Precondition: logger must be non-nil.
func NewDisplayLogger(logger *zap.Logger) *DisplayLogger {
	if logger == nil {
		panic("observability.NewDisplayLogger: logger must not be nil")
	}
	return &DisplayLogger{logger: logger.Named("display")}
}

// RefreshStats logs the full value of every attribute at Debug.
func (d *DisplayLogger) RefreshStats(id string, attrs *stats.AttributeSet) {
	if ce := d.logger.Check(zap.DebugLevel, "stats refreshed"); ce != nil {
		fields := make([]zap.Field, 0, len(attrs.Full)+1)
		fields = append(fields, zap.String("character", id))
		for _, attr := range sortedNames(attrs.Full) {
			fields = append(fields, zap.Float64(attr, attrs.Full[attr]))
		}
		ce.Write(fields...)
	}
}

// RefreshXP logs the ledger at Info.
func (d *DisplayLogger) RefreshXP(id string, ledger progression.Ledger) {
	d.logger.Info("xp refreshed",
		zap.String("character", id),
		zap.Int("level", ledger.Level),
		zap.Float64("current_xp", ledger.CurrentXP),
		zap.Float64("xp_to_next_level", ledger.XPToNextLevel),
		zap.Float64("total_xp", ledger.TotalXP),
	)
}

// RefreshXPBonus logs a changed XP multiplier at Info.
func (d *DisplayLogger) RefreshXPBonus(target string, multiplier float64) {
	d.logger.Info("xp bonus changed",
		zap.String("target", target),
		zap.Float64("multiplier", multiplier),
	)
}

func sortedNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
