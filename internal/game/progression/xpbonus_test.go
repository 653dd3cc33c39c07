package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/statengine/internal/game/progression"
)

func TestXPBonuses_DefaultsToOne(t *testing.T) {
	x := progression.NewXPBonuses()
	assert.Equal(t, 1.0, x.Total(progression.TargetCharacter))
	assert.Equal(t, 1.0, x.Total("swords"))
	assert.Equal(t, 1.0, x.SkillMultiplier("swords"))
}

func TestXPBonuses_RecomputeMultipliesLayers(t *testing.T) {
	x := progression.NewXPBonuses()
	x.Multiply(progression.LayerLevels, progression.TargetAllSkill, 1.03)
	x.Multiply(progression.LayerLevels, progression.TargetAllSkill, 1.03)
	x.SetLayer(progression.LayerBooks, map[string]float64{progression.TargetAllSkill: 1.1, "swords": 1.5})
	x.SetLayer(progression.LayerSkills, map[string]float64{"swords": 2})

	changed := x.Recompute()
	assert.Equal(t, []string{progression.TargetAllSkill, "swords"}, changed)
	assert.InDelta(t, 1.03*1.03*1.1, x.Total(progression.TargetAllSkill), 1e-12)
	assert.InDelta(t, 3.0, x.Total("swords"), 1e-12)
	assert.InDelta(t, 3.0*1.03*1.03*1.1, x.SkillMultiplier("swords"), 1e-12)
}

func TestXPBonuses_RecomputeUnchangedReportsNothing(t *testing.T) {
	x := progression.NewXPBonuses()
	x.SetLayer(progression.LayerBooks, map[string]float64{progression.TargetCharacter: 1.2})
	x.Recompute()
	assert.Empty(t, x.Recompute())
}

func TestXPBonuses_RemovedTargetReportsChange(t *testing.T) {
	x := progression.NewXPBonuses()
	x.SetLayer(progression.LayerSkills, map[string]float64{"mining": 1.5})
	x.Recompute()
	x.SetLayer(progression.LayerSkills, nil)
	assert.Equal(t, []string{"mining"}, x.Recompute())
	assert.Equal(t, 1.0, x.Total("mining"))
}
