package content_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/content"
	"github.com/cory-johannsen/statengine/internal/game/consumable"
	"github.com/cory-johannsen/statengine/internal/game/environment"
	"github.com/cory-johannsen/statengine/internal/game/skill"
	"github.com/cory-johannsen/statengine/internal/game/stance"
)

func repoDirs() content.Dirs {
	root := filepath.Join("..", "..", "content")
	return content.Dirs{
		Items:        filepath.Join(root, "items"),
		Skills:       filepath.Join(root, "skills"),
		Effects:      filepath.Join(root, "effects"),
		Stances:      filepath.Join(root, "stances"),
		Environments: filepath.Join(root, "environments"),
		Elixirs:      filepath.Join(root, "elixirs"),
		Books:        filepath.Join(root, "books"),
	}
}

func TestLoad_RepositoryContent(t *testing.T) {
	p, err := content.Load(context.Background(), repoDirs(), zap.NewNop())
	require.NoError(t, err)

	_, ok := p.Items.Item("iron_sword")
	assert.True(t, ok)
	assert.True(t, p.Skills.Has(skill.Unarmed))
	_, ok = p.Effects.Get("haste")
	assert.True(t, ok)
	_, ok = p.Stances.Get("berserk")
	assert.True(t, ok)
	_, ok = p.Environments.Get("blizzard")
	assert.True(t, ok)
	_, ok = p.Consumables.Book("tome_of_war")
	assert.True(t, ok)
	_, ok = p.Consumables.Elixir("vigor")
	assert.True(t, ok)
}

func TestLoad_EmptyDirsSkipped(t *testing.T) {
	p, err := content.Load(context.Background(), content.Dirs{}, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, p.Items.All())
	assert.Empty(t, p.Skills.IDs())
}

func TestLoad_MissingDirFails(t *testing.T) {
	_, err := content.Load(context.Background(), content.Dirs{Skills: filepath.Join(t.TempDir(), "nope")}, zap.NewNop())
	assert.Error(t, err)
}

func TestLoad_WeaponWithoutSkillFails(t *testing.T) {
	items := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(items, "sword.yaml"),
		[]byte("id: sword\nname: Sword\nkind: weapon\nweapon_type: sword\nattack: 5\n"), 0644))
	_, err := content.Load(context.Background(), content.Dirs{Items: items}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swords")
}

func TestValidate_ReportsEveryUnknownSkill(t *testing.T) {
	p := content.NewPack()
	p.Stances.Register(&stance.Def{ID: "berserk", Name: "Berserk", Skill: "berserking"})
	p.Environments.Register(&environment.Def{ID: "swamp", Name: "Swamp", ResistSkill: "survival"})
	p.Consumables.RegisterBook(&consumable.Book{ID: "tome", Name: "Tome",
		XPMultipliers: map[string]float64{"swords": 1.1, "all": 1.05}})
	require.NoError(t, p.Skills.Register(&skill.Def{ID: "meditation", Name: "Meditation", MaxLevel: 10,
		Milestones: []skill.Milestone{{Level: 5, XPMultipliers: map[string]float64{"ghost_skill": 2}}}}))

	err := p.Validate()
	require.Error(t, err)
	for _, want := range []string{"berserking", "survival", "swords", "ghost_skill"} {
		assert.Contains(t, err.Error(), want)
	}
	assert.NotContains(t, err.Error(), `"all"`)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := content.Load(ctx, repoDirs(), zap.NewNop())
	assert.Error(t, err)
}
