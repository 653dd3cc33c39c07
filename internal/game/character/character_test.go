package character_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/statengine/internal/content"
	"github.com/cory-johannsen/statengine/internal/game/character"
	"github.com/cory-johannsen/statengine/internal/game/character/mocks"
	"github.com/cory-johannsen/statengine/internal/game/consumable"
	"github.com/cory-johannsen/statengine/internal/game/effect"
	"github.com/cory-johannsen/statengine/internal/game/environment"
	"github.com/cory-johannsen/statengine/internal/game/equipment"
	"github.com/cory-johannsen/statengine/internal/game/progression"
	"github.com/cory-johannsen/statengine/internal/game/skill"
	"github.com/cory-johannsen/statengine/internal/game/stance"
	"github.com/cory-johannsen/statengine/internal/game/stats"
)

func newPack(t testing.TB) *content.Pack {
	t.Helper()
	p := content.NewPack()
	for _, id := range []string{
		skill.Unarmed, skill.Precision, skill.Combat, skill.Evasion, skill.NightVision,
		"swords", "berserking", "survival",
	} {
		require.NoError(t, p.Skills.Register(&skill.Def{ID: id, Name: id, MaxLevel: 10, BonusPerLevel: 0.1}))
	}
	require.NoError(t, p.Skills.Register(&skill.Def{ID: skill.ShieldBlocking, Name: "Shield Blocking", MaxLevel: 50, BonusPerLevel: 0.01}))
	require.NoError(t, p.Skills.Register(&skill.Def{ID: skill.LimitBreaking, Name: "Limit Breaking", MaxLevel: 5, BonusPerLevel: 0.1}))

	for _, it := range []equipment.Item{
		&equipment.Weapon{Common: equipment.Common{ID: "sword", Name: "Sword"}, WeaponType: "sword", Attack: 12},
		&equipment.Armor{Common: equipment.Common{ID: "plate", Name: "Plate"}, ArmorSlot: equipment.SlotTorso, Defense: 1000},
		&equipment.Armor{Common: equipment.Common{ID: "ring", Name: "Ring",
			Stats: stats.Contribution{Flat: map[string]float64{stats.MaxHealth: 50}}}, ArmorSlot: equipment.SlotRing},
		&equipment.Shield{Common: equipment.Common{ID: "buckler", Name: "Buckler"}, Defense: 4, BlockStrength: 10},
	} {
		require.NoError(t, p.Items.Register(it))
	}

	p.Effects.Register(&effect.Def{ID: "haste", Name: "Haste", DurationType: effect.DurationTicks, MaxStacks: 1,
		Stats: stats.Contribution{Multiplier: map[string]float64{stats.AttackSpeed: 1.25}}})
	p.Effects.Register(&effect.Def{ID: "bleeding", Name: "Bleeding", DurationType: effect.DurationTicks, MaxStacks: 3,
		Stats: stats.Contribution{Flat: map[string]float64{stats.HealthRegenFlat: -1}}})

	p.Stances.Register(&stance.Def{ID: "berserk", Name: "Berserk", Skill: "berserking",
		Stats: stats.Contribution{Multiplier: map[string]float64{stats.AttackPower: 1.4, stats.EvasionPoints: 0.5}}})
	p.Environments.Register(&environment.Def{ID: "swamp", Name: "Swamp", ResistSkill: "survival",
		Stats: stats.Contribution{Multiplier: map[string]float64{stats.Agility: 0.5}}})

	p.Consumables.RegisterElixir(&consumable.Elixir{ID: "vigor", Name: "Vigor",
		Stats: stats.Contribution{Flat: map[string]float64{stats.MaxHealth: 5}}})
	p.Consumables.RegisterBook(&consumable.Book{ID: "tome", Name: "Tome",
		Stats:         stats.Contribution{Multiplier: map[string]float64{stats.AttackPower: 1.05}},
		XPMultipliers: map[string]float64{progression.TargetCharacter: 1.5}})
	require.NoError(t, p.Validate())
	return p
}

func newCharacter(t testing.TB, opts ...character.Option) *character.Character {
	t.Helper()
	c, err := character.New("Hero", newPack(t), opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsEmptyName(t *testing.T) {
	_, err := character.New("", newPack(t))
	assert.Error(t, err)
	_, err = character.New("Hero", nil)
	assert.Error(t, err)
}

func TestNew_DefaultAttributes(t *testing.T) {
	c := newCharacter(t)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, 10.0, c.Get(stats.Strength))
	assert.Equal(t, 40.0, c.Get(stats.MaxHealth))
	assert.Equal(t, 40.0, c.Get(stats.Health))
	assert.Equal(t, 40.0, c.Get(stats.Stamina))
	assert.Equal(t, 0.75, c.Get(stats.BlockChance))
	assert.Equal(t, 1.0, c.Get(stats.AttackPower))
	assert.Equal(t, 0.0, c.Get(stats.MagicPower))
	assert.InDelta(t, math.Sqrt(10)*10, c.Get(stats.AttackPoints), 1e-9)
	assert.InDelta(t, 10*math.Sqrt(10), c.Get(stats.EvasionPoints), 1e-9)
	assert.Equal(t, 0, c.Level())
}

func TestRecompute_Idempotent(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.SetSkillLevel(skill.Unarmed, 4))
	require.NoError(t, c.SetSkillLevel("berserking", 3))
	require.NoError(t, c.Equip("ring"))
	require.NoError(t, c.ApplyEffect("bleeding", 2, 5))
	require.NoError(t, c.SetStance("berserk"))
	require.NoError(t, c.SetEnvironment("swamp"))
	c.SetLight(environment.LightDark)
	c.TakeDamage(character.DamageInput{Raw: 13.3, IgnoreDefense: true})

	before := c.Attributes()
	c.Recompute()
	assert.True(t, before.Equal(c.Attributes()))
	c.Recompute()
	assert.True(t, before.Equal(c.Attributes()))
}

func TestRecompute_PreservesMissingResources(t *testing.T) {
	c := newCharacter(t, character.WithBaseAttributes(map[string]float64{stats.MaxHealth: 100}))
	require.Equal(t, 100.0, c.Get(stats.Health))

	res := c.TakeDamage(character.DamageInput{Raw: 60, IgnoreDefense: true})
	require.Equal(t, 60.0, res.Dealt)
	require.Equal(t, 40.0, c.Get(stats.Health))

	require.NoError(t, c.Equip("ring"))
	assert.Equal(t, 150.0, c.Get(stats.MaxHealth))
	assert.Equal(t, 90.0, c.Get(stats.Health))
}

func TestRecompute_HealthNeverBelowOneWhenAlive(t *testing.T) {
	c := newCharacter(t, character.WithBaseAttributes(map[string]float64{stats.MaxHealth: 100}))
	require.NoError(t, c.Equip("ring"))
	c.TakeDamage(character.DamageInput{Raw: 149, IgnoreDefense: true})
	require.Equal(t, 1.0, c.Get(stats.Health))

	_, err := c.Unequip(equipment.SlotRing)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Get(stats.Health))
}

func TestMitigatedDamage(t *testing.T) {
	cases := []struct {
		name    string
		raw     float64
		defense float64
		pierce  float64
		bypass  bool
		want    float64
	}{
		{"floor at ten percent", 100, 1000, 0, false, 10},
		{"floor at one", 5, 1000, 0, false, 1},
		{"defense subtracted", 10, 3, 0, false, 7},
		{"pierce reduces defense", 10, 8, 5, false, 7},
		{"pierce beyond defense", 10, 2, 5, false, 10},
		{"chip rounds up", 0.25, 0, 0, false, 0.3},
		{"chip exact tenth", 0.3, 0, 0, false, 0.3},
		{"chip ignores defense", 0.5, 1000, 0, false, 0.5},
		{"negative is zero", -3, 0, 0, false, 0},
		{"nan is zero", math.NaN(), 0, 0, false, 0},
		{"bypass rounds up", 5.55, 1000, 0, true, 5.6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, character.MitigatedDamage(tc.raw, tc.defense, tc.pierce, tc.bypass), 1e-9)
		})
	}
}

func TestTakeDamage_FloorAgainstHeavyArmor(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.Equip("plate"))
	res := c.TakeDamage(character.DamageInput{Raw: 100})
	assert.Equal(t, 10.0, res.Dealt)
	assert.Equal(t, 30.0, c.Get(stats.Health))
	assert.False(t, res.Fainted)
}

func TestTakeDamage_Faint(t *testing.T) {
	c := newCharacter(t)
	res := c.TakeDamage(character.DamageInput{Raw: 100, CanFaint: true, IgnoreDefense: true})
	assert.True(t, res.Fainted)
	assert.Equal(t, 0.0, c.Get(stats.Health))

	require.NoError(t, c.ConsumeElixir("vigor"))
	assert.Equal(t, 0.0, c.Get(stats.Health), "fainted characters stay fainted across recompute")

	assert.Equal(t, 12.0, c.Heal(12))
	c.Recompute()
	assert.Equal(t, 12.0, c.Get(stats.Health))
}

func TestTakeDamage_NoFaintLeavesHealthNegative(t *testing.T) {
	c := newCharacter(t)
	res := c.TakeDamage(character.DamageInput{Raw: 100, IgnoreDefense: true})
	assert.False(t, res.Fainted)
	assert.Equal(t, -60.0, c.Get(stats.Health))
	c.Recompute()
	assert.Equal(t, -60.0, c.Get(stats.Health))
}

func TestEquip_WeaponRoundTripRestoresUnarmed(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.SetSkillLevel(skill.Unarmed, 5))
	require.NoError(t, c.SetSkillLevel(skill.Precision, 2))
	require.NoError(t, c.SetSkillLevel("swords", 3))

	unarmed := c.Attributes()
	assert.InDelta(t, 1.5, unarmed.Get(stats.AttackPower), 1e-12)
	assert.InDelta(t, math.Cbrt(1.5), unarmed.Get(stats.AttackSpeed), 1e-12)

	require.NoError(t, c.Equip("sword"))
	assert.InDelta(t, 12*1.3, c.Get(stats.AttackPower), 1e-9)
	assert.Equal(t, 1.0, c.Get(stats.AttackSpeed))

	item, err := c.Unequip(equipment.SlotWeapon)
	require.NoError(t, err)
	assert.Equal(t, "sword", item.Info().ID)
	assert.True(t, unarmed.Equal(c.Attributes()))

	bag, ok := c.Storage().(*equipment.Bag)
	require.True(t, ok)
	assert.Len(t, bag.Items(), 1)
}

func TestEquip_UnknownAndEmpty(t *testing.T) {
	c := newCharacter(t)
	assert.True(t, errors.Is(c.Equip("excalibur"), character.ErrUnknownItem))
	_, err := c.Unequip(equipment.SlotHead)
	assert.True(t, errors.Is(err, equipment.ErrSlotEmpty))
}

func TestEquip_ShieldAddsDefenseAndBlock(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.SetSkillLevel(skill.ShieldBlocking, 3))
	require.NoError(t, c.Equip("buckler"))
	assert.Equal(t, 4.0, c.Get(stats.Defense))
	assert.Equal(t, 10.0, c.Get(stats.BlockStrength))
	assert.InDelta(t, 0.78, c.Get(stats.BlockChance), 1e-12)
	assert.Equal(t, map[equipment.Slot]string{equipment.SlotOffHand: "buckler"}, c.Equipped())
}

func TestAddXP_EndToEnd(t *testing.T) {
	c := newCharacter(t)
	up, err := c.AddXP(50, false)
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, 0, up.From)
	assert.Equal(t, 2, up.To)

	l := c.Ledger()
	assert.Equal(t, 2, l.Level)
	assert.Equal(t, 24.0, l.CurrentXP)
	assert.Equal(t, 26.0, l.XPToNextLevel)

	assert.Equal(t, 60.0, c.Get(stats.MaxHealth))
	assert.Equal(t, 60.0, c.Get(stats.Health))
	assert.Equal(t, 11.0, c.Get(stats.Strength))
	assert.Equal(t, 11.0, c.Get(stats.Agility))
	assert.Equal(t, 50.0, c.Get(stats.MaxStamina))
}

func TestAddXP_MultiLevelAppliesEveryReward(t *testing.T) {
	c := newCharacter(t)
	up, err := c.AddXP(60, false)
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, 3, up.Levels())
	assert.Equal(t, 12.0, c.Get(stats.Strength))
	assert.Equal(t, 12.0, c.Get(stats.Intuition))
	assert.Equal(t, 11.0, c.Get(stats.Dexterity))
	assert.Equal(t, 70.0, c.Get(stats.MaxHealth))
	assert.InDelta(t, math.Pow(1.03, 3), c.XPBonus(progression.TargetAllSkill), 1e-12)
	assert.InDelta(t, math.Pow(1.03, 3), c.SkillXPMultiplier("swords"), 1e-12)
}

func TestAddXP_NoLevelUp(t *testing.T) {
	c := newCharacter(t)
	up, err := c.AddXP(5, false)
	require.NoError(t, err)
	assert.Nil(t, up)
	assert.Equal(t, 5.0, c.Ledger().CurrentXP)
}

func TestAddXP_InvalidAmount(t *testing.T) {
	c := newCharacter(t)
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := c.AddXP(v, true)
		assert.True(t, errors.Is(err, progression.ErrInvalidXP), "amount %v", v)
	}
	assert.Equal(t, 0.0, c.Ledger().TotalXP)
}

func TestAddXP_GlobalBonusFromBook(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.ReadBook("tome"))
	assert.Equal(t, 1.5, c.XPBonus(progression.TargetCharacter))

	_, err := c.AddXP(4, true)
	require.NoError(t, err)
	assert.Equal(t, 6.0, c.Ledger().TotalXP)
	_, err = c.AddXP(2, false)
	require.NoError(t, err)
	assert.Equal(t, 8.0, c.Ledger().TotalXP)
}

func TestSetSkillLevel_LimitBreakingFlattensCurve(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.SetSkillLevel(skill.LimitBreaking, 5))
	assert.InDelta(t, 1.1, c.Ledger().XPScaling, 1e-12)
	assert.True(t, errors.Is(c.SetSkillLevel("juggling", 1), skill.ErrUnknownSkill))
}

func TestReadBook_Twice(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.ReadBook("tome"))
	power := c.Get(stats.AttackPower)
	assert.InDelta(t, 1.05, power, 1e-12)

	err := c.ReadBook("tome")
	assert.True(t, errors.Is(err, consumable.ErrAlreadyRead))
	assert.Equal(t, power, c.Get(stats.AttackPower))
	assert.True(t, errors.Is(c.ReadBook("necronomicon"), character.ErrUnknownContent))
}

func TestConsumeElixir_Stacks(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.ConsumeElixir("vigor"))
	require.NoError(t, c.ConsumeElixir("vigor"))
	assert.Equal(t, 50.0, c.Get(stats.MaxHealth))
	assert.Equal(t, 50.0, c.Get(stats.Health))
}

func TestTickEffects_ExpiryRemovesContribution(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.ApplyEffect("haste", 1, 1))
	assert.Equal(t, 1.25, c.Get(stats.AttackSpeed))
	assert.Equal(t, []string{"haste"}, c.TickEffects())
	assert.Equal(t, 1.0, c.Get(stats.AttackSpeed))
	assert.Empty(t, c.Effects())
	assert.True(t, errors.Is(c.ApplyEffect("doom", 1, 1), character.ErrUnknownContent))
}

func TestApplyEffect_NegativeStacksKeepPenalty(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.ApplyEffect("bleeding", 2, 5))
	regen := c.Get(stats.HealthRegenFlat)

	assert.ErrorIs(t, c.ApplyEffect("bleeding", -5, 5), effect.ErrInvalidStacks)
	assert.Equal(t, regen, c.Get(stats.HealthRegenFlat))
}

func TestRemoveEffect(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.ApplyEffect("bleeding", 3, 10))
	assert.Equal(t, -2.5, c.Get(stats.HealthRegenFlat))
	c.RemoveEffect("bleeding")
	c.RemoveEffect("bleeding")
	assert.Equal(t, 0.5, c.Get(stats.HealthRegenFlat))
}

func TestSetStance_SkillMitigatesPenalty(t *testing.T) {
	c := newCharacter(t)
	base := c.Get(stats.EvasionPoints)
	require.NoError(t, c.SetStance("berserk"))
	assert.InDelta(t, base*0.5, c.Get(stats.EvasionPoints), 1e-9)
	assert.InDelta(t, 1.4, c.Get(stats.AttackPower), 1e-12)

	require.NoError(t, c.SetSkillLevel("berserking", 5))
	assert.InDelta(t, base*0.75, c.Get(stats.EvasionPoints), 1e-9)

	require.NoError(t, c.SetStance(""))
	assert.InDelta(t, base, c.Get(stats.EvasionPoints), 1e-9)
	assert.True(t, errors.Is(c.SetStance("turtle"), character.ErrUnknownContent))
}

func TestSetLight_DarkMitigatedByNightVision(t *testing.T) {
	c := newCharacter(t)
	base := c.Get(stats.AttackPoints)
	c.SetLight(environment.LightDark)
	assert.InDelta(t, base*0.5, c.Get(stats.AttackPoints), 1e-9)

	require.NoError(t, c.SetSkillLevel(skill.NightVision, 5))
	assert.InDelta(t, base*0.75, c.Get(stats.AttackPoints), 1e-9)
	assert.Equal(t, environment.LightDark, c.Light())
}

func TestSetEnvironment_ResistSkill(t *testing.T) {
	c := newCharacter(t)
	require.NoError(t, c.SetEnvironment("swamp"))
	assert.Equal(t, 5.0, c.Get(stats.Agility))
	require.NoError(t, c.SetSkillLevel("survival", 10))
	assert.Equal(t, 10.0, c.Get(stats.Agility))
	assert.Equal(t, "swamp", c.EnvironmentID())
	require.NoError(t, c.SetEnvironment(""))
	assert.Equal(t, "", c.EnvironmentID())
	assert.True(t, errors.Is(c.SetEnvironment("moon"), character.ErrUnknownContent))
}

func TestDisplay_Notifications(t *testing.T) {
	ctrl := gomock.NewController(t)
	display := mocks.NewMockDisplay(ctrl)

	display.EXPECT().RefreshStats("hero-1", gomock.Any()).Times(1)
	c := newCharacter(t, character.WithID("hero-1"), character.WithDisplay(display))

	var bonus float64
	gomock.InOrder(
		display.EXPECT().RefreshXPBonus(progression.TargetAllSkill, gomock.Any()).
			Do(func(_ string, m float64) { bonus = m }),
		display.EXPECT().RefreshStats("hero-1", gomock.Any()).
			Do(func(_ string, attrs *stats.AttributeSet) {
				assert.Equal(t, 60.0, attrs.Get(stats.MaxHealth))
			}),
		display.EXPECT().RefreshXP("hero-1", gomock.Any()).
			Do(func(_ string, l progression.Ledger) {
				assert.Equal(t, 2, l.Level)
			}),
	)
	_, err := c.AddXP(50, false)
	require.NoError(t, err)
	assert.InDelta(t, 1.03*1.03, bonus, 1e-12)
}

func TestDisplay_DamageRefreshesStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	display := mocks.NewMockDisplay(ctrl)
	display.EXPECT().RefreshStats(gomock.Any(), gomock.Any()).Times(2)
	c := newCharacter(t, character.WithDisplay(display))
	c.TakeDamage(character.DamageInput{Raw: 5})
}

func buildVeteran(t *testing.T, pack *content.Pack) *character.Character {
	t.Helper()
	c, err := character.New("Veteran", pack, character.WithBaseAttributes(map[string]float64{stats.Magic: 2}))
	require.NoError(t, err)
	require.NoError(t, c.SetSkillLevel(skill.Unarmed, 3))
	require.NoError(t, c.SetSkillLevel("swords", 4))
	require.NoError(t, c.SetSkillLevel("berserking", 2))
	require.NoError(t, c.SetSkillLevel(skill.LimitBreaking, 2))
	_, err = c.AddXP(120, false)
	require.NoError(t, err)
	require.NoError(t, c.Equip("sword"))
	require.NoError(t, c.Equip("ring"))
	require.NoError(t, c.Equip("buckler"))
	require.NoError(t, c.Equip("sword"))
	require.NoError(t, c.ApplyEffect("bleeding", 2, 4))
	require.NoError(t, c.ApplyEffect("haste", 1, 9))
	require.NoError(t, c.SetStance("berserk"))
	require.NoError(t, c.SetEnvironment("swamp"))
	c.SetLight(environment.LightDark)
	require.NoError(t, c.ConsumeElixir("vigor"))
	require.NoError(t, c.ReadBook("tome"))
	c.TakeDamage(character.DamageInput{Raw: 17.35, IgnoreDefense: true})
	return c
}

func TestSnapshot_RoundTrip(t *testing.T) {
	pack := newPack(t)
	orig := buildVeteran(t, pack)

	data, err := json.Marshal(orig.Snapshot())
	require.NoError(t, err)
	var snap character.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	restored, err := character.Restore(snap, pack)
	require.NoError(t, err)
	assert.Equal(t, orig.ID, restored.ID)
	assert.Equal(t, orig.Ledger(), restored.Ledger())
	assert.Equal(t, orig.Equipped(), restored.Equipped())
	assert.Equal(t, orig.SkillLevels(), restored.SkillLevels())
	assert.Equal(t, orig.XPBonus(progression.TargetAllSkill), restored.XPBonus(progression.TargetAllSkill))
	assert.True(t, orig.Attributes().Equal(restored.Attributes()))

	restored.Recompute()
	assert.InDelta(t, orig.Get(stats.Health), restored.Get(stats.Health), 1e-9)
	assert.Len(t, restored.Storage().(*equipment.Bag).Items(), 1)
}

func TestNew_RejectsUnusableXPCost(t *testing.T) {
	for _, cost := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := character.New("Hero", newPack(t), character.WithBaseXPCost(cost))
		assert.ErrorIs(t, err, progression.ErrInvalidXPCost, "cost %v", cost)
	}
}

func TestRestore_RejectsUnusableXPCost(t *testing.T) {
	pack := newPack(t)
	snap := newCharacter(t).Snapshot()
	snap.Ledger.BaseXPCost = 0
	_, err := character.Restore(snap, pack)
	assert.ErrorIs(t, err, progression.ErrInvalidXPCost)
}

func TestRestore_DisplaysRestoredResources(t *testing.T) {
	pack := newPack(t)
	orig := buildVeteran(t, pack)
	snap := orig.Snapshot()
	require.Less(t, snap.Resources[stats.Health], orig.Get(stats.MaxHealth))

	ctrl := gomock.NewController(t)
	display := mocks.NewMockDisplay(ctrl)
	var last *stats.AttributeSet
	display.EXPECT().RefreshStats(orig.ID, gomock.Any()).
		Do(func(_ string, attrs *stats.AttributeSet) { last = attrs }).
		AnyTimes()
	display.EXPECT().RefreshXP(gomock.Any(), gomock.Any()).AnyTimes()
	display.EXPECT().RefreshXPBonus(gomock.Any(), gomock.Any()).AnyTimes()

	restored, err := character.Restore(snap, pack, character.WithDisplay(display))
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, snap.Resources[stats.Health], last.Get(stats.Health))
	assert.True(t, restored.Attributes().Equal(last))
}

func TestRestore_UnknownContent(t *testing.T) {
	pack := newPack(t)
	snap := buildVeteran(t, pack).Snapshot()

	bad := snap
	bad.Equipment = map[equipment.Slot]string{equipment.SlotWeapon: "ghost_blade"}
	_, err := character.Restore(bad, pack)
	assert.True(t, errors.Is(err, character.ErrUnknownItem))

	bad = snap
	bad.Books = []string{"lost_tome"}
	_, err = character.Restore(bad, pack)
	assert.True(t, errors.Is(err, character.ErrUnknownContent))
}

func TestPropertyRecompute_Idempotent(t *testing.T) {
	pack := newPack(t)
	itemIDs := []string{"sword", "plate", "ring", "buckler"}
	rapid.Check(t, func(rt *rapid.T) {
		c, err := character.New("Prop", pack)
		require.NoError(rt, err)
		for _, id := range []string{skill.Unarmed, skill.Combat, skill.Evasion, "swords", "berserking"} {
			require.NoError(rt, c.SetSkillLevel(id, rapid.IntRange(0, 12).Draw(rt, id)))
		}
		for _, id := range itemIDs {
			if rapid.Bool().Draw(rt, "equip_"+id) {
				require.NoError(rt, c.Equip(id))
			}
		}
		if rapid.Bool().Draw(rt, "stance") {
			require.NoError(rt, c.SetStance("berserk"))
		}
		_, err = c.AddXP(rapid.Float64Range(0, 500).Draw(rt, "xp"), false)
		require.NoError(rt, err)

		before := c.Attributes()
		c.Recompute()
		assert.True(rt, before.Equal(c.Attributes()))
	})
}

func TestPropertyRecompute_MissingHealthPreserved(t *testing.T) {
	pack := newPack(t)
	rapid.Check(t, func(rt *rapid.T) {
		c, err := character.New("Prop", pack, character.WithBaseAttributes(map[string]float64{
			stats.MaxHealth: rapid.Float64Range(10, 500).Draw(rt, "max_health"),
		}))
		require.NoError(rt, err)
		damage := rapid.Float64Range(0, 9).Draw(rt, "damage")
		c.TakeDamage(character.DamageInput{Raw: damage, IgnoreDefense: true})
		missing := c.Get(stats.MaxHealth) - c.Get(stats.Health)

		require.NoError(rt, c.Equip("ring"))
		assert.InDelta(rt, missing, c.Get(stats.MaxHealth)-c.Get(stats.Health), 1e-9)
	})
}
