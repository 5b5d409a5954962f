package meal

import (
	"time"
)

// ConfidenceLevel is the analyzer's confidence in a dish estimate.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Valid reports whether c is one of the recognized confidence levels.
func (c ConfidenceLevel) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// MealType slots a meal into the day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
	MealDinner    MealType = "dinner"
)

// Valid reports whether t is one of the recognized meal types.
func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealSnack, MealDinner:
		return true
	}
	return false
}

// DishNutrition is one analyzed dish with its per-serving estimates.
type DishNutrition struct {
	Name             string          `json:"name"`
	Hindi            string          `json:"hindi,omitempty"`
	Portion          string          `json:"portion"`
	Calories         float64         `json:"calories"`
	ProteinG         float64         `json:"protein_g"`
	CarbsG           float64         `json:"carbs_g"`
	FatG             float64         `json:"fat_g"`
	FiberG           float64         `json:"fiber_g"`
	Ingredients      []string        `json:"ingredients"`
	Confidence       ConfidenceLevel `json:"confidence"`
	Tags             []string        `json:"tags,omitempty"`
	HealthTip        string          `json:"health_tip,omitempty"`
	EstimatedWeightG float64         `json:"estimated_weight_g,omitempty"`
	Reasoning        string          `json:"reasoning,omitempty"`
}

// MealTotals are the summed macros for a logged meal, after the servings
// multiplier is applied.
type MealTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Add accumulates a dish scaled by the servings multiplier.
func (t *MealTotals) Add(d DishNutrition, multiplier float64) {
	t.Calories += d.Calories * multiplier
	t.Protein += d.ProteinG * multiplier
	t.Carbs += d.CarbsG * multiplier
	t.Fat += d.FatG * multiplier
	t.Fiber += d.FiberG * multiplier
}

// FridgeLink records that a meal was suggested from a fridge scan.
type FridgeLink struct {
	FromScanAt   time.Time `json:"from_scan_at"`
	MatchedItems []string  `json:"matched_items"`
}

// LoggedMeal is one stored meal entry.
type LoggedMeal struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	MealType           MealType        `json:"meal_type"`
	LoggedAt           time.Time       `json:"logged_at"`
	ServingsMultiplier float64         `json:"servings_multiplier"`
	Dishes             []DishNutrition `json:"dishes"`
	Totals             MealTotals      `json:"totals"`
	FridgeLink         *FridgeLink     `json:"fridge_link,omitempty"`
}

// Daily macro baselines used for summary progress. These are display
// reference points, not per-user targets.
const (
	BaselineCalories = 2000.0
	BaselineProtein  = 120.0
	BaselineCarbs    = 250.0
	BaselineFat      = 70.0
)

// DailySummary aggregates a user's meals for one calendar day.
type DailySummary struct {
	Date       string     `json:"date"`
	MealsCount int        `json:"meals_count"`
	Totals     MealTotals `json:"totals"`
	Baselines  struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fat      float64 `json:"fat"`
	} `json:"baselines"`
}
