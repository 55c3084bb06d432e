package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
	"github.com/noah-isme/school-dashboard-api/pkg/response"
)

type preferenceService interface {
	Get() models.Preferences
	SetTheme(ctx context.Context, theme models.Theme) (models.Preferences, error)
	ToggleTheme(ctx context.Context) (models.Preferences, error)
	Login(ctx context.Context) (models.Preferences, error)
	Logout(ctx context.Context) (models.Preferences, error)
}

type themeRequest struct {
	Theme models.Theme `json:"theme" binding:"required,oneof=light dark"`
}

// PreferenceHandler exposes theme and login state.
type PreferenceHandler struct {
	prefs preferenceService
}

// NewPreferenceHandler constructs a preference handler.
func NewPreferenceHandler(prefs preferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// Get godoc
// @Summary Current preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /preferences [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.prefs.Get(), nil)
}

// SetTheme godoc
// @Summary Set theme
// @Tags Preferences
// @Accept json
// @Produce json
// @Param payload body themeRequest true "light or dark"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /preferences/theme [put]
func (h *PreferenceHandler) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "theme must be light or dark"))
		return
	}
	h.respond(c)(h.prefs.SetTheme(c.Request.Context(), req.Theme))
}

// ToggleTheme godoc
// @Summary Toggle theme
// @Tags Preferences
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /preferences/theme/toggle [post]
func (h *PreferenceHandler) ToggleTheme(c *gin.Context) {
	h.respond(c)(h.prefs.ToggleTheme(c.Request.Context()))
}

// Login godoc
// @Summary Mark the dashboard as logged in
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *PreferenceHandler) Login(c *gin.Context) {
	h.respond(c)(h.prefs.Login(c.Request.Context()))
}

// Logout godoc
// @Summary Mark the dashboard as logged out
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *PreferenceHandler) Logout(c *gin.Context) {
	h.respond(c)(h.prefs.Logout(c.Request.Context()))
}

func (h *PreferenceHandler) respond(c *gin.Context) func(models.Preferences, error) {
	return func(prefs models.Preferences, err error) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, prefs, nil)
	}
}
