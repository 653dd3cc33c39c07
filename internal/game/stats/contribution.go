package stats

import (
	"maps"
	"math"
)

// Contribution is the set of stat changes one source provides: additive
// flats, multiplicative factors, and additive percentages for _percent attributes.
//
// A nil map is treated as empty. Absent entries are neutral.
type Contribution struct {
	Flat       map[string]float64 `json:"flat,omitempty" yaml:"flat"`
	Multiplier map[string]float64 `json:"multiplier,omitempty" yaml:"multiplier"`
	Percent    map[string]float64 `json:"percent,omitempty" yaml:"percent"`
}

// NewContribution returns a Contribution with initialised maps.
func NewContribution() Contribution {
	return Contribution{
		Flat:       make(map[string]float64),
		Multiplier: make(map[string]float64),
		Percent:    make(map[string]float64),
	}
}

// AddFlat adds v to the flat entry of attr.
func (c *Contribution) AddFlat(attr string, v float64) {
	if c.Flat == nil {
		c.Flat = make(map[string]float64)
	}
	c.Flat[attr] += v
}

// AddPercent adds v to the percent entry of attr.
func (c *Contribution) AddPercent(attr string, v float64) {
	if c.Percent == nil {
		c.Percent = make(map[string]float64)
	}
	c.Percent[attr] += v
}

// MulMultiplier multiplies the multiplier entry of attr by v. An absent entry starts at 1.
func (c *Contribution) MulMultiplier(attr string, v float64) {
	if c.Multiplier == nil {
		c.Multiplier = make(map[string]float64)
	}
	cur, ok := c.Multiplier[attr]
	if !ok {
		cur = 1
	}
	c.Multiplier[attr] = cur * v
}

// Merge folds other into c: flats and percents are summed, multipliers multiplied.
func (c *Contribution) Merge(other Contribution) {
	for attr, v := range other.Flat {
		c.AddFlat(attr, v)
	}
	for attr, v := range other.Percent {
		c.AddPercent(attr, v)
	}
	for attr, v := range other.Multiplier {
		c.MulMultiplier(attr, v)
	}
}

// Scaled returns a copy of c with flats and percents multiplied by n and each
// multiplier raised to the n-th power. Used for stacked sources.
//
// Precondition: n >= 0.
func (c Contribution) Scaled(n int) Contribution {
	out := NewContribution()
	for attr, v := range c.Flat {
		out.Flat[attr] = v * float64(n)
	}
	for attr, v := range c.Percent {
		out.Percent[attr] = v * float64(n)
	}
	for attr, v := range c.Multiplier {
		m := 1.0
		for range n {
			m *= v
		}
		out.Multiplier[attr] = m
	}
	return out
}

// Mitigated returns a copy of c with its penalties pulled toward neutral by
// strength, clamped to [0, 1]: negative flats and percents shrink by that
// fraction and multipliers below 1 move that fraction of the way to 1. Bonuses
// are unchanged.
func (c Contribution) Mitigated(strength float64) Contribution {
	strength = math.Min(math.Max(strength, 0), 1)
	out := c.Clone()
	for attr, v := range out.Flat {
		if v < 0 {
			out.Flat[attr] = v * (1 - strength)
		}
	}
	for attr, v := range out.Percent {
		if v < 0 {
			out.Percent[attr] = v * (1 - strength)
		}
	}
	for attr, v := range out.Multiplier {
		if v < 1 {
			out.Multiplier[attr] = v + (1-v)*strength
		}
	}
	return out
}

// Clone returns a deep copy of c.
func (c Contribution) Clone() Contribution {
	out := NewContribution()
	maps.Copy(out.Flat, c.Flat)
	maps.Copy(out.Multiplier, c.Multiplier)
	maps.Copy(out.Percent, c.Percent)
	return out
}

// IsEmpty reports whether c contributes nothing.
func (c Contribution) IsEmpty() bool {
	return len(c.Flat) == 0 && len(c.Multiplier) == 0 && len(c.Percent) == 0
}

// Attributes returns every attribute name c touches.
func (c Contribution) Attributes() []string {
	seen := make(map[string]struct{})
	for _, m := range []map[string]float64{c.Flat, c.Multiplier, c.Percent} {
		for attr := range m {
			seen[attr] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for attr := range seen {
		out = append(out, attr)
	}
	return out
}
