package verdict

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fridgenius/fridgenius/internal/domain/meal"
	"github.com/fridgenius/fridgenius/internal/domain/profile"
	"github.com/fridgenius/fridgenius/internal/platform/auth"
)

// Handler provides HTTP handlers for meal health checks.
type Handler struct {
	svc *Service
}

// NewHandler creates a new verdict handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all verdict routes. The health check fans out to
// the analysis collaborator, so it sits in the heavy tier.
func (h *Handler) RegisterRoutes(api *echo.Group, heavy echo.MiddlewareFunc) {
	api.POST("/meals/:id/health-check", h.CheckMeal, heavy)
}

// CheckMeal runs an on-demand health check of one of the caller's meals.
// Responds 503 when the analysis collaborator is unavailable and 409 when
// the profile changed while the analysis was in flight.
func (h *Handler) CheckMeal(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	analysis, err := h.svc.AnalyzeMeal(c.Request().Context(), userID, c.Param("id"))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, analysis)
	case errors.Is(err, meal.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "meal not found")
	case errors.Is(err, profile.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "health profile not found")
	case errors.Is(err, ErrStaleProfile):
		return echo.NewHTTPError(http.StatusConflict, "health profile changed during analysis, retry")
	case errors.Is(err, ErrAnalysisUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "health analysis unavailable right now")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
