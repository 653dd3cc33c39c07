// Package stats defines character attribute names, the layered contribution
// store every stat source writes into, and the folded attribute set consumers read.
package stats

import (
	"slices"
	"strings"
)

// Primary attributes.
const (
	Strength  = "strength"
	Agility   = "agility"
	Dexterity = "dexterity"
	Intuition = "intuition"
	Magic     = "magic"
)

// Resource pairs. The current value of each resource is preserved across
// recomputation relative to its max.
const (
	MaxHealth  = "max_health"
	Health     = "health"
	MaxStamina = "max_stamina"
	Stamina    = "stamina"
	MaxMana    = "max_mana"
	Mana       = "mana"
)

// Combat and derived attributes.
const (
	AttackPower    = "attack_power"
	MagicPower     = "magic_power"
	AttackSpeed    = "attack_speed"
	AttackPoints   = "attack_points"
	EvasionPoints  = "evasion_points"
	BlockChance    = "block_chance"
	BlockStrength  = "block_strength"
	Defense        = "defense"
	CritRate       = "crit_rate"
	CritMultiplier = "crit_multiplier"
)

// Regeneration attributes.
const (
	HealthRegenFlat     = "health_regeneration_flat"
	HealthRegenPercent  = "health_regeneration_percent"
	StaminaRegenFlat    = "stamina_regeneration_flat"
	StaminaRegenPercent = "stamina_regeneration_percent"
	ManaRegenFlat       = "mana_regeneration_flat"
	ManaRegenPercent    = "mana_regeneration_percent"
)

// PercentSuffix marks attributes that hold a percentage rate. Multipliers are
// never applied to them.
const PercentSuffix = "_percent"

// IsPercent reports whether attr is a percentage-rate attribute.
func IsPercent(attr string) bool {
	return strings.HasSuffix(attr, PercentSuffix)
}

// IsResource reports whether attr is the current value of a regenerating resource.
func IsResource(attr string) bool {
	switch attr {
	case Health, Stamina, Mana:
		return true
	}
	return false
}

// MaxOf returns the max attribute paired with a resource, or "" when attr is not a resource.
func MaxOf(attr string) string {
	switch attr {
	case Health:
		return MaxHealth
	case Stamina:
		return MaxStamina
	case Mana:
		return MaxMana
	}
	return ""
}

// DefaultBase returns the base value of every attribute a fresh character starts with.
//
// Postcondition: Returns a new map on every call; callers may mutate it.
func DefaultBase() map[string]float64 {
	return map[string]float64{
		Strength:  10,
		Agility:   10,
		Dexterity: 10,
		Intuition: 10,
		Magic:     0,

		MaxHealth:  40,
		Health:     40,
		MaxStamina: 40,
		Stamina:    40,
		MaxMana:    0,
		Mana:       0,

		AttackPower:    0,
		MagicPower:     0,
		AttackSpeed:    1,
		AttackPoints:   0,
		EvasionPoints:  0,
		BlockChance:    0,
		BlockStrength:  0,
		Defense:        0,
		CritRate:       0.1,
		CritMultiplier: 1.2,

		HealthRegenFlat:     0.5,
		HealthRegenPercent:  0,
		StaminaRegenFlat:    1,
		StaminaRegenPercent: 0,
		ManaRegenFlat:       0.5,
		ManaRegenPercent:    0,
	}
}

// Attributes returns every attribute name in DefaultBase, sorted.
func Attributes() []string {
	base := DefaultBase()
	out := make([]string, 0, len(base))
	for attr := range base {
		out = append(out, attr)
	}
	slices.Sort(out)
	return out
}
