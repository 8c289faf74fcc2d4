package match

import (
	"cmp"
	"slices"
)

// ActiveTraits returns the traits with TierCurrent > 0 in display order:
// tier descending, then style descending, then name ascending. The input is not
// modified.
func ActiveTraits(traits []Trait) []Trait {
	out := make([]Trait, 0, len(traits))
	for _, t := range traits {
		if t.TierCurrent > 0 {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b Trait) int {
		if c := cmp.Compare(b.TierCurrent, a.TierCurrent); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Style, a.Style); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
