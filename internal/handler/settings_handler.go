package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikshahq/school-console-api/internal/service"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/response"
)

// SettingsHandler exposes admission-ID settings and the school profile.
type SettingsHandler struct {
	settings *service.SettingsService
	profile  *service.ProfileService
}

// NewSettingsHandler creates a new handler.
func NewSettingsHandler(settings *service.SettingsService, profile *service.ProfileService) *SettingsHandler {
	return &SettingsHandler{settings: settings, profile: profile}
}

// Get godoc
// @Summary Current admission-ID settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.settings.Get(c.Request.Context()), nil)
}

// Update godoc
// @Summary Replace the admission-ID settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body service.UpdateSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Preview godoc
// @Summary Preview an admission ID with proposed settings
// @Description Renders a sample ID without saving the settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body service.UpdateSettingsRequest true "Settings payload"
// @Param class query string false "Class name"
// @Param section query string false "Section"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /settings/preview-id [post]
func (h *SettingsHandler) Preview(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	id, err := h.settings.PreviewID(c.Request.Context(), req, c.Query("class"), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id}, nil)
}

// Profile godoc
// @Summary School profile
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *SettingsHandler) Profile(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.profile.Get(c.Request.Context()), nil)
}

// UpdateProfile godoc
// @Summary Replace the school profile
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body service.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /profile [put]
func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	profile, err := h.profile.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}
