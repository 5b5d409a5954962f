package profile

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fridgenius/fridgenius/internal/domain/registry"
	"github.com/fridgenius/fridgenius/internal/platform/auth"
)

// Handler provides HTTP handlers for the health profile domain.
type Handler struct {
	svc *Service
}

// NewHandler creates a new profile domain handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all profile domain routes. All routes are cheap
// lookups or single-row writes, so they share the light rate tier.
func (h *Handler) RegisterRoutes(api *echo.Group, light echo.MiddlewareFunc) {
	api.GET("/conditions", h.ListConditions, light)
	api.GET("/allergy-options", h.ListAllergyOptions, light)
	api.GET("/health-profile", h.GetProfile, light)
	api.PUT("/health-profile", h.SaveProfile, light)
	api.DELETE("/health-profile", h.DeleteProfile, light)
}

// ListConditions returns the conditions visible for the caller's
// demographics, optionally filtered by a search query.
func (h *Handler) ListConditions(c echo.Context) error {
	demo := registry.Demographics{
		Gender: registry.Gender(c.QueryParam("gender")),
	}
	if v := c.QueryParam("age"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil || age < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid age")
		}
		demo.Age = age
	}
	pool := h.svc.Registry().Visible(demo)
	pool = registry.Search(c.QueryParam("q"), pool)
	if pool == nil {
		pool = []registry.ConditionDef{}
	}
	return c.JSON(http.StatusOK, pool)
}

// ListAllergyOptions returns the selectable allergy options.
func (h *Handler) ListAllergyOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Registry().AllergyOptions())
}

// GetProfile returns the caller's stored health profile.
func (h *Handler) GetProfile(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	p, err := h.svc.GetProfile(c.Request().Context(), userID)
	if err == ErrNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "health profile not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

// SelectedCondition is one ordered condition selection in a save request.
type SelectedCondition struct {
	ID     string          `json:"id"`
	Status ConditionStatus `json:"status"`
}

// LabInput is one raw lab entry in a save request. Value is kept as entered;
// unparsable or non-positive values are excluded at synthesis without error.
type LabInput struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	TestedAt string `json:"tested_at"`
}

// SaveProfileRequest carries raw wizard state. The server runs synthesis so
// that two clients given the same inputs store the same profile.
type SaveProfileRequest struct {
	Conditions     []SelectedCondition `json:"conditions"`
	LabValues      []LabInput          `json:"lab_values"`
	Allergies      []string            `json:"allergies"`
	FreeTextNotes  string              `json:"free_text_notes"`
	DietPreference *DietPreference     `json:"diet_preference,omitempty"`
}

// SaveProfile synthesizes and stores the caller's profile from raw wizard
// state, replacing any existing record.
func (h *Handler) SaveProfile(c echo.Context) error {
	var req SaveProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	b := NewBuilder(h.svc.Registry())
	for _, sel := range req.Conditions {
		if !sel.Status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid condition status: "+string(sel.Status))
		}
		b.SetStatus(sel.ID, sel.Status)
	}
	for _, lab := range req.LabValues {
		b.UpdateLabValue(lab.Key, lab.Value, lab.TestedAt)
	}
	for _, id := range req.Allergies {
		b.ToggleAllergy(id)
	}
	b.SetNotes(req.FreeTextNotes)
	if req.DietPreference != nil {
		if !req.DietPreference.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid diet preference: "+string(*req.DietPreference))
		}
		b.SetDietPreference(*req.DietPreference)
	}

	p := b.Finalize()
	p.UserID = auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.SaveProfile(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProfile removes the caller's stored profile.
func (h *Handler) DeleteProfile(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.DeleteProfile(c.Request().Context(), userID); err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "health profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
