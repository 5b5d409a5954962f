package meal

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fridgenius/fridgenius/internal/platform/auth"
	"github.com/fridgenius/fridgenius/pkg/pagination"
)

// Handler provides HTTP handlers for the meal log.
type Handler struct {
	svc *Service
}

// NewHandler creates a new meal log handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all meal log routes. Logging a meal carries dish
// analysis payloads so it sits in the medium tier; reads are light.
func (h *Handler) RegisterRoutes(api *echo.Group, light, medium echo.MiddlewareFunc) {
	api.POST("/meals", h.LogMeal, medium)
	api.GET("/meals", h.ListMeals, light)
	api.GET("/meals/:id", h.GetMeal, light)
	api.DELETE("/meals/:id", h.DeleteMeal, light)
	api.GET("/daily-summary", h.DailySummary, light)
}

// LogMealRequest is the payload for logging a meal.
type LogMealRequest struct {
	MealType           MealType        `json:"meal_type"`
	LoggedAt           time.Time       `json:"logged_at"`
	ServingsMultiplier float64         `json:"servings_multiplier"`
	Dishes             []DishNutrition `json:"dishes"`
	FridgeLink         *FridgeLink     `json:"fridge_link,omitempty"`
}

// LogMeal stores a new meal for the caller. Totals are computed server-side.
func (h *Handler) LogMeal(c echo.Context) error {
	var req LogMealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m := LoggedMeal{
		UserID:             auth.UserIDFromContext(c.Request().Context()),
		MealType:           req.MealType,
		LoggedAt:           req.LoggedAt,
		ServingsMultiplier: req.ServingsMultiplier,
		Dishes:             req.Dishes,
		FridgeLink:         req.FridgeLink,
	}
	if err := h.svc.LogMeal(c.Request().Context(), &m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

// ListMeals returns a page of the caller's meals, most recent first.
func (h *Handler) ListMeals(c echo.Context) error {
	p := pagination.FromContext(c)
	userID := auth.UserIDFromContext(c.Request().Context())
	meals, err := h.svc.ListMeals(c.Request().Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if meals == nil {
		meals = []LoggedMeal{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(meals, len(meals), p))
}

// GetMeal returns one of the caller's meals.
func (h *Handler) GetMeal(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	m, err := h.svc.GetMeal(c.Request().Context(), userID, c.Param("id"))
	if err == ErrNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "meal not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMeal removes one of the caller's meals.
func (h *Handler) DeleteMeal(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.DeleteMeal(c.Request().Context(), userID, c.Param("id")); err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "meal not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// DailySummary aggregates the caller's meals for the given date (default today).
func (h *Handler) DailySummary(c echo.Context) error {
	day := strings.TrimSpace(c.QueryParam("date"))
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	sum, err := h.svc.DailySummary(c.Request().Context(), userID, day)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}
