package stats

// Fold combines base with every category's contribution to attr.
//
// _percent attributes are additive only: full = base + flat + percent and the
// multiplier is reported as 1. Every other attribute folds as
// full = (base + flat) * mult.
//
// Postcondition: full == flat * mult for non-percent attributes.
func (s *Store) Fold(attr string, base float64) (full, flat, mult float64) {
	sum, percent, m := s.Sum(attr)
	if IsPercent(attr) {
		full = base + sum + percent
		return full, full, 1
	}
	flat = base + sum
	return flat * m, flat, m
}
