package verdict

import (
	"errors"
	"time"
)

// HealthVerdict is the three-level assessment of a dish or meal against a
// health profile.
type HealthVerdict string

const (
	VerdictGood    HealthVerdict = "good"
	VerdictCaution HealthVerdict = "caution"
	VerdictAvoid   HealthVerdict = "avoid"
)

// Valid reports whether v is one of the recognized verdicts.
func (v HealthVerdict) Valid() bool {
	switch v {
	case VerdictGood, VerdictCaution, VerdictAvoid:
		return true
	}
	return false
}

// DishHealthVerdict is the assessment of a single dish.
type DishHealthVerdict struct {
	DishName       string        `json:"dish_name"`
	Verdict        HealthVerdict `json:"verdict"`
	Note           string        `json:"note"`
	SwapSuggestion *string       `json:"swap_suggestion,omitempty"`
}

// MealHealthAnalysis is the full result of checking one meal against the
// caller's health profile. ProfileVersion records the profile the analysis
// was generated against, so a later reader can tell whether it is stale.
type MealHealthAnalysis struct {
	MealID         string              `json:"meal_id"`
	OverallVerdict HealthVerdict       `json:"overall_verdict"`
	OverallSummary string              `json:"overall_summary"`
	DishVerdicts   []DishHealthVerdict `json:"dish_verdicts"`
	ProfileVersion int                 `json:"profile_version"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// ErrAnalysisUnavailable is returned when the verdict generator cannot
// produce a usable analysis for any reason. Callers degrade gracefully; the
// absence of an analysis never implies the meal is fine.
var ErrAnalysisUnavailable = errors.New("health analysis unavailable")

// ErrStaleProfile is returned when the health profile changed while an
// analysis was being generated, so the result no longer describes the
// profile the user has now.
var ErrStaleProfile = errors.New("health profile changed during analysis")
