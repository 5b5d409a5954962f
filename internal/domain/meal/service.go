package meal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidDate is returned when a summary date is not in 2006-01-02 form.
var ErrInvalidDate = errors.New("invalid date")

// Service provides business logic for the meal log.
type Service struct {
	meals Repository
	now   func() time.Time
}

// NewService creates a new meal service.
func NewService(meals Repository) *Service {
	return &Service{meals: meals, now: time.Now}
}

// LogMeal validates and stores a meal. Dishes with blank names are dropped,
// the servings multiplier defaults to 1, and totals are recomputed server-side
// so a client cannot log totals that disagree with its dishes.
func (s *Service) LogMeal(ctx context.Context, m *LoggedMeal) error {
	if m.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if !m.MealType.Valid() {
		return fmt.Errorf("invalid meal type: %s", m.MealType)
	}
	if m.ServingsMultiplier == 0 {
		m.ServingsMultiplier = 1
	}
	if m.ServingsMultiplier < 0 {
		return fmt.Errorf("servings_multiplier must be positive")
	}

	kept := m.Dishes[:0]
	for _, d := range m.Dishes {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		if d.Confidence != "" && !d.Confidence.Valid() {
			return fmt.Errorf("invalid confidence level: %s", d.Confidence)
		}
		kept = append(kept, d)
	}
	m.Dishes = kept
	if len(m.Dishes) == 0 {
		return fmt.Errorf("meal has no dishes")
	}

	m.Totals = MealTotals{}
	for _, d := range m.Dishes {
		m.Totals.Add(d, m.ServingsMultiplier)
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.LoggedAt.IsZero() {
		m.LoggedAt = s.now()
	}
	return s.meals.Create(ctx, m)
}

// GetMeal fetches one of the user's meals.
func (s *Service) GetMeal(ctx context.Context, userID, id string) (*LoggedMeal, error) {
	return s.meals.Get(ctx, userID, id)
}

// ListMeals returns a page of the user's meals, most recent first.
func (s *Service) ListMeals(ctx context.Context, userID string, limit, offset int) ([]LoggedMeal, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.meals.List(ctx, userID, limit, offset)
}

// DeleteMeal removes one of the user's meals.
func (s *Service) DeleteMeal(ctx context.Context, userID, id string) error {
	return s.meals.Delete(ctx, userID, id)
}

// DailySummary aggregates the user's meals for one calendar day. day must be
// in "2006-01-02" form; the day boundary is UTC.
func (s *Service) DailySummary(ctx context.Context, userID, day string) (*DailySummary, error) {
	start, err := time.Parse("2006-01-02", day)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, day)
	}
	meals, err := s.meals.ListByDay(ctx, userID, start, start.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	sum := &DailySummary{Date: day, MealsCount: len(meals)}
	for _, m := range meals {
		sum.Totals.Calories += m.Totals.Calories
		sum.Totals.Protein += m.Totals.Protein
		sum.Totals.Carbs += m.Totals.Carbs
		sum.Totals.Fat += m.Totals.Fat
		sum.Totals.Fiber += m.Totals.Fiber
	}
	sum.Baselines.Calories = BaselineCalories
	sum.Baselines.Protein = BaselineProtein
	sum.Baselines.Carbs = BaselineCarbs
	sum.Baselines.Fat = BaselineFat
	return sum, nil
}
