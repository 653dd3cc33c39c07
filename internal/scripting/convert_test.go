package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/statengine/internal/scripting"
)

func eval(t *testing.T, src string) lua.LValue {
	t.Helper()
	h := scripting.NewHookState(0)
	t.Cleanup(h.Close)
	require.NoError(t, h.RunString("result = "+src))
	return h.GetGlobal("result")
}

func TestToContribution_AllSections(t *testing.T) {
	c, err := scripting.ToContribution(eval(t, `{
		flat = { strength = 2, defense = -1 },
		multiplier = { attack_speed = 1.1 },
		percent = { health_regeneration_percent = 0.5 },
	}`))
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.Flat["strength"])
	assert.Equal(t, -1.0, c.Flat["defense"])
	assert.Equal(t, 1.1, c.Multiplier["attack_speed"])
	assert.Equal(t, 0.5, c.Percent["health_regeneration_percent"])
}

func TestToContribution_EmptyTable(t *testing.T) {
	c, err := scripting.ToContribution(eval(t, `{}`))
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestToContribution_Errors(t *testing.T) {
	for name, src := range map[string]string{
		"not a table":      `42`,
		"section scalar":   `{ flat = 3 }`,
		"non-string key":   `{ flat = { 1, 2 } }`,
		"non-number value": `{ multiplier = { strength = "x" } }`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := scripting.ToContribution(eval(t, src))
			assert.Error(t, err)
		})
	}
}
