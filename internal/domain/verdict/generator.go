package verdict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fridgenius/fridgenius/internal/domain/meal"
	"github.com/fridgenius/fridgenius/internal/domain/profile"
)

// GenerationRequest carries everything the generator needs to assess a meal.
type GenerationRequest struct {
	Meal    *meal.LoggedMeal       `json:"meal"`
	Profile *profile.HealthProfile `json:"profile"`
}

// GenerationResult is the raw output of a generator, before validation.
type GenerationResult struct {
	OverallVerdict HealthVerdict       `json:"overall_verdict"`
	OverallSummary string              `json:"overall_summary"`
	DishVerdicts   []DishHealthVerdict `json:"dish_verdicts"`
}

// Generator produces a health assessment for a meal. Implementations wrap an
// external analysis collaborator; any failure surfaces as
// ErrAnalysisUnavailable so callers have a single degradation path.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}

// HTTPGenerator calls a remote verdict API over HTTP.
type HTTPGenerator struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPGenerator creates a generator for the verdict API at baseURL.
func NewHTTPGenerator(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *HTTPGenerator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPGenerator{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Generate posts the meal and profile to the verdict API. Every failure mode,
// transport, non-200 status, undecodable body, collapses into
// ErrAnalysisUnavailable; the underlying cause is logged, not returned.
func (g *HTTPGenerator) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode generation request: %w", ErrAnalysisUnavailable)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/meal-verdicts", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", ErrAnalysisUnavailable)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.logger.Warn().Err(err).Msg("verdict api call failed")
		return nil, fmt.Errorf("verdict api: %w", ErrAnalysisUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn().Int("status", resp.StatusCode).Msg("verdict api returned non-200")
		return nil, fmt.Errorf("verdict api status %d: %w", resp.StatusCode, ErrAnalysisUnavailable)
	}

	var result GenerationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		g.logger.Warn().Err(err).Msg("verdict api response undecodable")
		return nil, fmt.Errorf("decode verdict response: %w", ErrAnalysisUnavailable)
	}
	return &result, nil
}
