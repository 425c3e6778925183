package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/service"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/response"
)

// ScheduleHandler exposes exam scheduling endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List stored exam schedules
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Schedules(c.Request.Context()), nil)
}

// Draft godoc
// @Summary Build the editable draft for a class/term/exam selection
// @Description Prefilled from the stored schedule when one exists, otherwise one empty row per applicable subject
// @Tags Schedules
// @Produce json
// @Param class query string true "Class name"
// @Param term query string true "Term name"
// @Param exam query string true "Exam name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/draft [get]
func (h *ScheduleHandler) Draft(c *gin.Context) {
	draft, err := h.service.BuildDraft(c.Request.Context(), c.Query("class"), c.Query("term"), c.Query("exam"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft, nil)
}

// ApplicableSubjects godoc
// @Summary Subjects schedulable for a class/term/exam selection
// @Tags Schedules
// @Produce json
// @Param class query string true "Class name"
// @Param term query string true "Term name"
// @Param exam query string true "Exam name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/applicable-subjects [get]
func (h *ScheduleHandler) ApplicableSubjects(c *gin.Context) {
	subjects, err := h.service.ApplicableSubjects(c.Request.Context(), c.Query("class"), c.Query("term"), c.Query("exam"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// CopyTimes godoc
// @Summary Copy the first row's time window onto every row
// @Description Pure grid convenience; nothing is persisted
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body object true "Entries"
// @Success 200 {object} response.Envelope
// @Router /schedules/copy-times [post]
func (h *ScheduleHandler) CopyTimes(c *gin.Context) {
	var payload struct {
		Entries []models.ScheduleEntry `json:"entries"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid entries payload"))
		return
	}
	response.JSON(c, http.StatusOK, service.CopyTimesToAll(payload.Entries), nil)
}

// Save godoc
// @Summary Save a schedule for a class/term/exam selection
// @Description Rows without a date are dropped; a save with zero dated rows is rejected
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.SaveScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules [post]
func (h *ScheduleHandler) Save(c *gin.Context) {
	var req service.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	saved, err := h.service.SaveSchedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved, nil)
}

// Delete godoc
// @Summary Delete a stored schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSchedule(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
