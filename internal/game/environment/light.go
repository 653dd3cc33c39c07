// Package environment provides the light level and environment stat contributors.
package environment

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// LightLevel is the ambient lighting a character acts in.
type LightLevel string

const (
	LightBright LightLevel = "bright"
	LightNormal LightLevel = "normal"
	LightDark   LightLevel = "dark"
)

// LightHook is the Lua global that, when defined, replaces the built-in light rule.
// It is called as light_level(level, night_vision) and returns a contribution table.
const LightHook = "light_level"

// darkPenalty is the multiplier applied to attack_points and evasion_points in the dark.
const darkPenalty = 0.5

// ParseLightLevel returns the LightLevel named s. The empty string is normal.
func ParseLightLevel(s string) (LightLevel, error) {
	switch LightLevel(s) {
	case "", LightNormal:
		return LightNormal, nil
	case LightBright, LightDark:
		return LightLevel(s), nil
	}
	return "", fmt.Errorf("unknown light level %q", s)
}

// Scripter calls a Lua hook returning a stat contribution. *scripting.Manager
// satisfies it.
type Scripter interface {
	Contribution(hook string, args ...lua.LValue) (stats.Contribution, bool)
}

// LightContribution returns the LightLevel category for level given the
// character's night vision bonus. When script defines LightHook its result
// replaces the built-in rule; otherwise dark halves attack_points and
// evasion_points, with nightVision mitigating the penalty.
//
// Precondition: script may be nil.
func LightContribution(level LightLevel, nightVision float64, script Scripter) stats.Contribution {
	if script != nil {
		if c, ok := script.Contribution(LightHook, lua.LString(level), lua.LNumber(nightVision)); ok {
			return c
		}
	}
	if level != LightDark {
		return stats.NewContribution()
	}
	c := stats.NewContribution()
	c.MulMultiplier(stats.AttackPoints, darkPenalty)
	c.MulMultiplier(stats.EvasionPoints, darkPenalty)
	return c.Mitigated(nightVision)
}
