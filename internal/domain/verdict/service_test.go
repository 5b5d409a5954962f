package verdict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fridgenius/fridgenius/internal/domain/meal"
	"github.com/fridgenius/fridgenius/internal/domain/profile"
)

type mockMealRepo struct {
	meals map[string]*meal.LoggedMeal
}

func (m *mockMealRepo) Create(_ context.Context, lm *meal.LoggedMeal) error {
	m.meals[lm.ID] = lm
	return nil
}

func (m *mockMealRepo) Get(_ context.Context, userID, id string) (*meal.LoggedMeal, error) {
	lm, ok := m.meals[id]
	if !ok || lm.UserID != userID {
		return nil, meal.ErrNotFound
	}
	return lm, nil
}

func (m *mockMealRepo) ListByDay(context.Context, string, time.Time, time.Time) ([]meal.LoggedMeal, error) {
	return nil, nil
}

func (m *mockMealRepo) List(context.Context, string, int, int) ([]meal.LoggedMeal, error) {
	return nil, nil
}

func (m *mockMealRepo) Delete(_ context.Context, userID, id string) error {
	delete(m.meals, id)
	return nil
}

type mockProfileRepo struct {
	profiles map[string]*profile.HealthProfile
}

func (m *mockProfileRepo) Get(_ context.Context, userID string) (*profile.HealthProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, profile.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepo) Put(_ context.Context, p *profile.HealthProfile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) Delete(_ context.Context, userID string) error {
	delete(m.profiles, userID)
	return nil
}

// mockGenerator returns a canned result and can mutate state mid-call to
// simulate a profile edit racing the analysis.
type mockGenerator struct {
	result     *GenerationResult
	err        error
	onGenerate func()
}

func (g *mockGenerator) Generate(context.Context, GenerationRequest) (*GenerationResult, error) {
	if g.onGenerate != nil {
		g.onGenerate()
	}
	return g.result, g.err
}

func goodResult() *GenerationResult {
	return &GenerationResult{
		OverallVerdict: VerdictCaution,
		OverallSummary: "Mostly fine, watch the rice portion.",
		DishVerdicts: []DishHealthVerdict{
			{DishName: "Jeera Rice", Verdict: VerdictCaution, Note: "Refined carbs."},
		},
	}
}

func fixture() (*Service, *mockMealRepo, *mockProfileRepo, *mockGenerator) {
	meals := &mockMealRepo{meals: map[string]*meal.LoggedMeal{
		"m1": {ID: "m1", UserID: "u1", MealType: meal.MealLunch,
			Dishes: []meal.DishNutrition{{Name: "Jeera Rice"}}},
	}}
	profiles := &mockProfileRepo{profiles: map[string]*profile.HealthProfile{
		"u1": {UserID: "u1", Version: 3},
	}}
	gen := &mockGenerator{result: goodResult()}
	return NewService(meals, profiles, gen, zerolog.Nop()), meals, profiles, gen
}

func TestAnalyzeMeal(t *testing.T) {
	svc, _, _, _ := fixture()

	analysis, err := svc.AnalyzeMeal(context.Background(), "u1", "m1")
	if err != nil {
		t.Fatalf("AnalyzeMeal: %v", err)
	}
	if analysis.OverallVerdict != VerdictCaution || analysis.ProfileVersion != 3 {
		t.Fatalf("analysis = %+v", analysis)
	}
	if analysis.MealID != "m1" || analysis.GeneratedAt.IsZero() {
		t.Fatalf("analysis = %+v", analysis)
	}
}

func TestAnalyzeMealNotFound(t *testing.T) {
	svc, _, _, _ := fixture()

	if _, err := svc.AnalyzeMeal(context.Background(), "u1", "missing"); !errors.Is(err, meal.ErrNotFound) {
		t.Fatalf("err = %v, want meal.ErrNotFound", err)
	}
	if _, err := svc.AnalyzeMeal(context.Background(), "u2", "m1"); !errors.Is(err, meal.ErrNotFound) {
		t.Fatalf("cross-user err = %v, want meal.ErrNotFound", err)
	}
}

func TestAnalyzeMealRequiresProfile(t *testing.T) {
	svc, _, profiles, _ := fixture()
	delete(profiles.profiles, "u1")

	if _, err := svc.AnalyzeMeal(context.Background(), "u1", "m1"); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("err = %v, want profile.ErrNotFound", err)
	}
}

func TestAnalyzeMealGeneratorFailure(t *testing.T) {
	svc, _, _, gen := fixture()
	gen.result = nil
	gen.err = ErrAnalysisUnavailable

	if _, err := svc.AnalyzeMeal(context.Background(), "u1", "m1"); !errors.Is(err, ErrAnalysisUnavailable) {
		t.Fatalf("err = %v, want ErrAnalysisUnavailable", err)
	}
}

func TestAnalyzeMealInvalidVerdictEnum(t *testing.T) {
	svc, _, _, gen := fixture()
	gen.result.DishVerdicts[0].Verdict = "excellent"

	if _, err := svc.AnalyzeMeal(context.Background(), "u1", "m1"); !errors.Is(err, ErrAnalysisUnavailable) {
		t.Fatalf("err = %v, want ErrAnalysisUnavailable for bad enum", err)
	}
}

func TestAnalyzeMealStaleProfile(t *testing.T) {
	svc, _, profiles, gen := fixture()
	gen.onGenerate = func() {
		profiles.profiles["u1"].Version = 4
	}

	if _, err := svc.AnalyzeMeal(context.Background(), "u1", "m1"); !errors.Is(err, ErrStaleProfile) {
		t.Fatalf("err = %v, want ErrStaleProfile", err)
	}
}

func TestAnalyzeMealProfileDeletedMidFlight(t *testing.T) {
	svc, _, profiles, gen := fixture()
	gen.onGenerate = func() {
		delete(profiles.profiles, "u1")
	}

	if _, err := svc.AnalyzeMeal(context.Background(), "u1", "m1"); !errors.Is(err, ErrStaleProfile) {
		t.Fatalf("err = %v, want ErrStaleProfile", err)
	}
}
