package stats

import (
	"maps"
	"math"
)

// AttributeSet is the folded, authoritative attribute values of one character.
// TotalFlat and TotalMultiplier retain the pre- and post-multiplier layers so a
// consumer can decompose Full (e.g. for min/max tooltips).
type AttributeSet struct {
	Full            map[string]float64 `json:"full"`
	TotalFlat       map[string]float64 `json:"total_flat"`
	TotalMultiplier map[string]float64 `json:"total_multiplier"`
}

// NewAttributeSet returns an AttributeSet whose Full values start at base.
//
// Postcondition: Full is a copy of base; TotalFlat equals base; TotalMultiplier is 1 everywhere.
func NewAttributeSet(base map[string]float64) *AttributeSet {
	a := &AttributeSet{
		Full:            make(map[string]float64, len(base)),
		TotalFlat:       make(map[string]float64, len(base)),
		TotalMultiplier: make(map[string]float64, len(base)),
	}
	for attr, v := range base {
		a.Full[attr] = v
		a.TotalFlat[attr] = v
		a.TotalMultiplier[attr] = 1
	}
	return a
}

// Get returns the folded value of attr, or 0 when absent.
func (a *AttributeSet) Get(attr string) float64 {
	return a.Full[attr]
}

// Set records a folded value with its flat and multiplier decomposition.
func (a *AttributeSet) Set(attr string, full, flat, mult float64) {
	a.Full[attr] = full
	a.TotalFlat[attr] = flat
	a.TotalMultiplier[attr] = mult
}

// Missing returns how far the resource sits below its max, never negative.
//
// Precondition: resource satisfies IsResource.
func (a *AttributeSet) Missing(resource string) float64 {
	return math.Max(a.Full[MaxOf(resource)]-a.Full[resource], 0)
}

// Clone returns a deep copy.
func (a *AttributeSet) Clone() *AttributeSet {
	return &AttributeSet{
		Full:            maps.Clone(a.Full),
		TotalFlat:       maps.Clone(a.TotalFlat),
		TotalMultiplier: maps.Clone(a.TotalMultiplier),
	}
}

// Equal reports whether a and b hold bit-identical values.
func (a *AttributeSet) Equal(b *AttributeSet) bool {
	return bitEqual(a.Full, b.Full) && bitEqual(a.TotalFlat, b.TotalFlat) &&
		bitEqual(a.TotalMultiplier, b.TotalMultiplier)
}

func bitEqual(x, y map[string]float64) bool {
	if len(x) != len(y) {
		return false
	}
	for k, v := range x {
		w, ok := y[k]
		if !ok || math.Float64bits(v) != math.Float64bits(w) {
			return false
		}
	}
	return true
}
