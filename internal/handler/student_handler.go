package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/service"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/response"
)

// StudentHandler exposes the student roster.
type StudentHandler struct {
	service *service.StudentService
	summary *service.SummaryService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(svc *service.StudentService, summary *service.SummaryService) *StudentHandler {
	return &StudentHandler{service: svc, summary: summary}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Name or admission ID fragment"
// @Param class query string false "Class name"
// @Param section query string false "Section"
// @Param session query string false "Admission session ID"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		Search:  c.Query("search"),
		Class:   c.Query("class"),
		Section: c.Query("section"),
		Session: c.Query("session"),
	}
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context(), filter), nil)
}

// Get godoc
// @Summary Get one student
// @Tags Students
// @Produce json
// @Param id path string true "Admission ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Update godoc
// @Summary Edit a student record
// @Description The admission ID and marks ledger are untouched
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Admission ID"
// @Param payload body service.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	student, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete godoc
// @Summary Delete a student
// @Description The confirmation field must repeat the student's admission ID
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Admission ID"
// @Param payload body service.DeleteStudentRequest true "Confirmation payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	var req service.DeleteStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "confirmation is required"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Summary godoc
// @Summary Generated profile summary for one student
// @Description Degrades to a fixed fallback text when the generation endpoint is unavailable
// @Tags Students
// @Produce json
// @Param id path string true "Admission ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/summary [get]
func (h *StudentHandler) Summary(c *gin.Context) {
	summary, err := h.summary.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"summary": summary}, nil)
}

// FactoryReset godoc
// @Summary Reset every snapshot to seeded defaults
// @Description The confirmation field must be the word RESET
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.FactoryResetRequest true "Confirmation payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /system/factory-reset [post]
func (h *StudentHandler) FactoryReset(c *gin.Context) {
	var req service.FactoryResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "confirmation is required"))
		return
	}
	if err := h.service.FactoryReset(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
