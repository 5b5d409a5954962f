package verdict

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fridgenius/fridgenius/internal/domain/meal"
	"github.com/fridgenius/fridgenius/internal/domain/profile"
)

// Service coordinates on-demand health checks of logged meals.
type Service struct {
	meals    meal.Repository
	profiles profile.Repository
	gen      Generator
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates a new verdict service.
func NewService(meals meal.Repository, profiles profile.Repository, gen Generator, logger zerolog.Logger) *Service {
	return &Service{
		meals:    meals,
		profiles: profiles,
		gen:      gen,
		logger:   logger,
		now:      time.Now,
	}
}

// AnalyzeMeal checks one of the user's meals against their current health
// profile. The profile version is snapshotted before the generator call and
// re-read after it: if the profile changed underneath the analysis, the
// result is discarded and ErrStaleProfile returned rather than attaching
// advice that no longer describes the user.
func (s *Service) AnalyzeMeal(ctx context.Context, userID, mealID string) (*MealHealthAnalysis, error) {
	m, err := s.meals.Get(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	version := p.Version

	result, err := s.gen.Generate(ctx, GenerationRequest{Meal: m, Profile: p})
	if err != nil {
		return nil, err
	}
	if err := validateResult(result); err != nil {
		s.logger.Warn().Err(err).Str("meal_id", mealID).Msg("discarding malformed analysis")
		return nil, fmt.Errorf("%v: %w", err, ErrAnalysisUnavailable)
	}

	current, err := s.profiles.Get(ctx, userID)
	if err == profile.ErrNotFound {
		return nil, ErrStaleProfile
	}
	if err != nil {
		return nil, err
	}
	if current.Version != version {
		return nil, ErrStaleProfile
	}

	return &MealHealthAnalysis{
		MealID:         mealID,
		OverallVerdict: result.OverallVerdict,
		OverallSummary: result.OverallSummary,
		DishVerdicts:   result.DishVerdicts,
		ProfileVersion: version,
		GeneratedAt:    s.now(),
	}, nil
}

// validateResult rejects analyses whose verdict enums the collaborator got
// wrong. A malformed verdict is unusable, not coercible.
func validateResult(r *GenerationResult) error {
	if !r.OverallVerdict.Valid() {
		return fmt.Errorf("invalid overall verdict %q", r.OverallVerdict)
	}
	for _, dv := range r.DishVerdicts {
		if !dv.Verdict.Valid() {
			return fmt.Errorf("invalid dish verdict %q for %q", dv.Verdict, dv.DishName)
		}
		if dv.DishName == "" {
			return fmt.Errorf("dish verdict with empty dish name")
		}
	}
	return nil
}
