package progression

import (
	"maps"
	"math"
	"sort"
)

// Well-known XP bonus targets. Any other target names a skill ID.
const (
	TargetCharacter = "character"
	TargetAll       = "all"
	TargetAllSkill  = "all_skill"
)

// Layer identifies the source of an XP multiplier.
type Layer int

const (
	// LayerLevels is fed by character level-ups.
	LayerLevels Layer = iota
	// LayerSkills is fed by skill milestones.
	LayerSkills
	// LayerBooks is fed by read books.
	LayerBooks

	numLayers
)

// XPBonuses is the XP bonus registry: per-target multipliers from each layer,
// collapsed into one total per target by Recompute.
type XPBonuses struct {
	layers [numLayers]map[string]float64
	total  map[string]float64
}

// NewXPBonuses returns a registry where every target totals 1.
func NewXPBonuses() *XPBonuses {
	x := &XPBonuses{total: make(map[string]float64)}
	for i := range x.layers {
		x.layers[i] = make(map[string]float64)
	}
	x.Recompute()
	return x
}

// SetLayer replaces every multiplier of layer l.
func (x *XPBonuses) SetLayer(l Layer, multipliers map[string]float64) {
	x.layers[l] = maps.Clone(multipliers)
	if x.layers[l] == nil {
		x.layers[l] = make(map[string]float64)
	}
}

// Multiply compounds the multiplier of target in layer l by v. An absent entry starts at 1.
func (x *XPBonuses) Multiply(l Layer, target string, v float64) {
	cur, ok := x.layers[l][target]
	if !ok {
		cur = 1
	}
	x.layers[l][target] = cur * v
}

// Layer returns a copy of layer l.
func (x *XPBonuses) Layer(l Layer) map[string]float64 {
	return maps.Clone(x.layers[l])
}

// Total returns the collapsed multiplier for target, or 1 when nothing targets it.
func (x *XPBonuses) Total(target string) float64 {
	if v, ok := x.total[target]; ok {
		return v
	}
	return 1
}

// SkillMultiplier returns the effective XP multiplier for skillID: the skill's own
// total times the all_skill and all totals.
func (x *XPBonuses) SkillMultiplier(skillID string) float64 {
	return x.Total(skillID) * x.Total(TargetAllSkill) * x.Total(TargetAll)
}

// Totals returns a copy of every collapsed total.
func (x *XPBonuses) Totals() map[string]float64 {
	return maps.Clone(x.total)
}

// Recompute collapses every target to levels * skills * books.
//
// Postcondition: Returns the sorted targets whose total changed.
func (x *XPBonuses) Recompute() []string {
	targets := map[string]struct{}{
		TargetCharacter: {},
		TargetAll:       {},
		TargetAllSkill:  {},
	}
	for _, layer := range x.layers {
		for t := range layer {
			targets[t] = struct{}{}
		}
	}

	var changed []string
	next := make(map[string]float64, len(targets))
	for t := range targets {
		v := 1.0
		for _, layer := range x.layers {
			if m, ok := layer[t]; ok {
				v *= m
			}
		}
		next[t] = v
		if prev, ok := x.total[t]; !ok || math.Float64bits(prev) != math.Float64bits(v) {
			changed = append(changed, t)
		}
	}
	for t, prev := range x.total {
		if _, ok := next[t]; !ok && prev != 1 {
			changed = append(changed, t)
		}
	}
	x.total = next
	sort.Strings(changed)
	return changed
}
