package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// ToContribution converts a Lua table of the form
//
//	{flat = {attr = n}, multiplier = {attr = n}, percent = {attr = n}}
//
// into a stats.Contribution. Missing sections are empty.
//
// Postcondition: returns an error if v is not a table or any entry is not a
// string key with a numeric value.
func ToContribution(v lua.LValue) (stats.Contribution, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return stats.Contribution{}, fmt.Errorf("expected table, got %s", v.Type())
	}
	out := stats.NewContribution()
	sections := []struct {
		name string
		into map[string]float64
	}{
		{"flat", out.Flat},
		{"multiplier", out.Multiplier},
		{"percent", out.Percent},
	}
	for _, sec := range sections {
		raw := tbl.RawGetString(sec.name)
		if raw == lua.LNil {
			continue
		}
		inner, ok := raw.(*lua.LTable)
		if !ok {
			return stats.Contribution{}, fmt.Errorf("%s: expected table, got %s", sec.name, raw.Type())
		}
		var convErr error
		inner.ForEach(func(k, val lua.LValue) {
			if convErr != nil {
				return
			}
			key, ok := k.(lua.LString)
			if !ok {
				convErr = fmt.Errorf("%s: non-string key %v", sec.name, k)
				return
			}
			num, ok := val.(lua.LNumber)
			if !ok {
				convErr = fmt.Errorf("%s.%s: expected number, got %s", sec.name, key, val.Type())
				return
			}
			sec.into[string(key)] = float64(num)
		})
		if convErr != nil {
			return stats.Contribution{}, convErr
		}
	}
	return out, nil
}
