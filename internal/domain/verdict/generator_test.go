package verdict

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fridgenius/fridgenius/internal/domain/meal"
	"github.com/fridgenius/fridgenius/internal/domain/profile"
)

func generationRequest() GenerationRequest {
	return GenerationRequest{
		Meal: &meal.LoggedMeal{ID: "m1", UserID: "u1", MealType: meal.MealLunch,
			Dishes: []meal.DishNutrition{{Name: "Dal Tadka"}}},
		Profile: &profile.HealthProfile{UserID: "u1", Version: 1},
	}
}

func TestHTTPGeneratorGenerate(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodPost || r.URL.Path != "/v1/meal-verdicts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req GenerationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Meal == nil || req.Meal.ID != "m1" {
			t.Errorf("request meal = %+v", req.Meal)
		}
		json.NewEncoder(w).Encode(GenerationResult{
			OverallVerdict: VerdictGood,
			OverallSummary: "Balanced meal.",
			DishVerdicts:   []DishHealthVerdict{{DishName: "Dal Tadka", Verdict: VerdictGood, Note: "ok"}},
		})
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "secret", time.Second, zerolog.Nop())
	result, err := g.Generate(context.Background(), generationRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.OverallVerdict != VerdictGood || len(result.DishVerdicts) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("auth header = %q", gotAuth)
	}
}

func TestHTTPGeneratorNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "", time.Second, zerolog.Nop())
	if _, err := g.Generate(context.Background(), generationRequest()); !errors.Is(err, ErrAnalysisUnavailable) {
		t.Fatalf("err = %v, want ErrAnalysisUnavailable", err)
	}
}

func TestHTTPGeneratorBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "", time.Second, zerolog.Nop())
	if _, err := g.Generate(context.Background(), generationRequest()); !errors.Is(err, ErrAnalysisUnavailable) {
		t.Fatalf("err = %v, want ErrAnalysisUnavailable", err)
	}
}

func TestHTTPGeneratorConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	g := NewHTTPGenerator(srv.URL, "", time.Second, zerolog.Nop())
	if _, err := g.Generate(context.Background(), generationRequest()); !errors.Is(err, ErrAnalysisUnavailable) {
		t.Fatalf("err = %v, want ErrAnalysisUnavailable", err)
	}
}
