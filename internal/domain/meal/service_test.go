package meal

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

type mockRepo struct {
	meals map[string]*LoggedMeal
}

func newMockRepo() *mockRepo {
	return &mockRepo{meals: make(map[string]*LoggedMeal)}
}

func (m *mockRepo) Create(_ context.Context, meal *LoggedMeal) error {
	cp := *meal
	m.meals[meal.ID] = &cp
	return nil
}

func (m *mockRepo) Get(_ context.Context, userID, id string) (*LoggedMeal, error) {
	meal, ok := m.meals[id]
	if !ok || meal.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *meal
	return &cp, nil
}

func (m *mockRepo) ListByDay(_ context.Context, userID string, dayStart, dayEnd time.Time) ([]LoggedMeal, error) {
	var out []LoggedMeal
	for _, meal := range m.meals {
		if meal.UserID != userID {
			continue
		}
		if meal.LoggedAt.Before(dayStart) || !meal.LoggedAt.Before(dayEnd) {
			continue
		}
		out = append(out, *meal)
	}
	return out, nil
}

func (m *mockRepo) List(_ context.Context, userID string, limit, offset int) ([]LoggedMeal, error) {
	var out []LoggedMeal
	for _, meal := range m.meals {
		if meal.UserID == userID {
			out = append(out, *meal)
		}
	}
	return out, nil
}

func (m *mockRepo) Delete(_ context.Context, userID, id string) error {
	meal, ok := m.meals[id]
	if !ok || meal.UserID != userID {
		return ErrNotFound
	}
	delete(m.meals, id)
	return nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLogMealComputesTotals(t *testing.T) {
	svc := NewService(newMockRepo())

	m := LoggedMeal{
		UserID:   "u1",
		MealType: MealLunch,
		Dishes: []DishNutrition{
			{Name: "Dal Tadka", Calories: 180, ProteinG: 9, CarbsG: 24, FatG: 5, FiberG: 6},
			{Name: "Jeera Rice", Calories: 220, ProteinG: 4, CarbsG: 45, FatG: 3, FiberG: 1},
		},
		// Client-supplied totals must be ignored.
		Totals: MealTotals{Calories: 9999},
	}
	if err := svc.LogMeal(context.Background(), &m); err != nil {
		t.Fatalf("LogMeal: %v", err)
	}

	if m.ServingsMultiplier != 1 {
		t.Errorf("multiplier = %v, want defaulted to 1", m.ServingsMultiplier)
	}
	if !almostEqual(m.Totals.Calories, 400) || !almostEqual(m.Totals.Protein, 13) {
		t.Errorf("totals = %+v", m.Totals)
	}
	if m.ID == "" || m.LoggedAt.IsZero() {
		t.Error("id and logged_at should be assigned")
	}
}

func TestLogMealAppliesMultiplier(t *testing.T) {
	svc := NewService(newMockRepo())

	m := LoggedMeal{
		UserID:             "u1",
		MealType:           MealDinner,
		ServingsMultiplier: 1.5,
		Dishes: []DishNutrition{
			{Name: "Paneer Bhurji", Calories: 200, ProteinG: 14, CarbsG: 6, FatG: 14, FiberG: 2},
		},
	}
	if err := svc.LogMeal(context.Background(), &m); err != nil {
		t.Fatalf("LogMeal: %v", err)
	}
	if !almostEqual(m.Totals.Calories, 300) || !almostEqual(m.Totals.Protein, 21) {
		t.Errorf("totals = %+v", m.Totals)
	}
}

func TestLogMealDropsBlankDishes(t *testing.T) {
	svc := NewService(newMockRepo())

	m := LoggedMeal{
		UserID:   "u1",
		MealType: MealSnack,
		Dishes: []DishNutrition{
			{Name: "   ", Calories: 500},
			{Name: "Roasted Chana", Calories: 120, ProteinG: 7},
		},
	}
	if err := svc.LogMeal(context.Background(), &m); err != nil {
		t.Fatalf("LogMeal: %v", err)
	}
	if len(m.Dishes) != 1 || m.Dishes[0].Name != "Roasted Chana" {
		t.Fatalf("dishes = %+v", m.Dishes)
	}
	if !almostEqual(m.Totals.Calories, 120) {
		t.Errorf("blank dish contributed to totals: %+v", m.Totals)
	}
}

func TestLogMealValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	dish := []DishNutrition{{Name: "Poha", Calories: 250}}

	cases := []struct {
		name    string
		meal    LoggedMeal
		wantErr string
	}{
		{"missing user", LoggedMeal{MealType: MealLunch, Dishes: dish}, "user_id"},
		{"bad meal type", LoggedMeal{UserID: "u1", MealType: "brunch", Dishes: dish}, "invalid meal type"},
		{"negative multiplier", LoggedMeal{UserID: "u1", MealType: MealLunch, ServingsMultiplier: -1, Dishes: dish}, "must be positive"},
		{"no dishes", LoggedMeal{UserID: "u1", MealType: MealLunch}, "no dishes"},
		{"only blank dishes", LoggedMeal{UserID: "u1", MealType: MealLunch, Dishes: []DishNutrition{{Name: " "}}}, "no dishes"},
		{"bad confidence", LoggedMeal{UserID: "u1", MealType: MealLunch, Dishes: []DishNutrition{{Name: "Poha", Confidence: "certain"}}}, "invalid confidence"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.LogMeal(context.Background(), &tc.meal)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestDailySummary(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	logAt := func(day string, cal float64) {
		ts, _ := time.Parse("2006-01-02T15:04:05Z", day)
		m := LoggedMeal{
			UserID:   "u1",
			MealType: MealLunch,
			LoggedAt: ts,
			Dishes:   []DishNutrition{{Name: "Dish", Calories: cal, ProteinG: 10}},
		}
		if err := svc.LogMeal(ctx, &m); err != nil {
			t.Fatalf("LogMeal: %v", err)
		}
	}

	logAt("2026-07-01T08:00:00Z", 300)
	logAt("2026-07-01T20:00:00Z", 500)
	logAt("2026-07-02T08:00:00Z", 900) // next day, excluded

	sum, err := svc.DailySummary(ctx, "u1", "2026-07-01")
	if err != nil {
		t.Fatalf("DailySummary: %v", err)
	}
	if sum.MealsCount != 2 {
		t.Fatalf("meals count = %d, want 2", sum.MealsCount)
	}
	if !almostEqual(sum.Totals.Calories, 800) || !almostEqual(sum.Totals.Protein, 20) {
		t.Fatalf("totals = %+v", sum.Totals)
	}
	if sum.Baselines.Calories != BaselineCalories || sum.Baselines.Fat != BaselineFat {
		t.Fatalf("baselines = %+v", sum.Baselines)
	}
}

func TestDailySummaryInvalidDate(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.DailySummary(context.Background(), "u1", "01-07-2026")
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestMealOwnershipScoping(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	m := LoggedMeal{
		UserID:   "owner",
		MealType: MealBreakfast,
		Dishes:   []DishNutrition{{Name: "Upma", Calories: 210}},
	}
	if err := svc.LogMeal(ctx, &m); err != nil {
		t.Fatalf("LogMeal: %v", err)
	}

	if _, err := svc.GetMeal(ctx, "intruder", m.ID); err != ErrNotFound {
		t.Fatalf("cross-user get err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteMeal(ctx, "intruder", m.ID); err != ErrNotFound {
		t.Fatalf("cross-user delete err = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetMeal(ctx, "owner", m.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
}
