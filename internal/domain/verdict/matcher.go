package verdict

import (
	"strings"
)

// PairVerdict finds the verdict for a named dish. It tries an exact
// case-insensitive name match first, then falls back to substring containment
// in either direction, taking the first hit in verdict order. It returns nil
// when nothing matches: a dish without a verdict is unassessed, never "good".
func PairVerdict(dishName string, verdicts []DishHealthVerdict) *DishHealthVerdict {
	name := strings.ToLower(dishName)

	for i := range verdicts {
		if strings.ToLower(verdicts[i].DishName) == name {
			return &verdicts[i]
		}
	}
	for i := range verdicts {
		vn := strings.ToLower(verdicts[i].DishName)
		if strings.Contains(name, vn) || strings.Contains(vn, name) {
			return &verdicts[i]
		}
	}
	return nil
}
