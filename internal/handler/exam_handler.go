package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikshahq/school-console-api/internal/service"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/response"
)

// ExamHandler exposes the exam configuration engine: terms, exam definitions
// and co-scholastic areas.
type ExamHandler struct {
	service *service.ExamService
}

// NewExamHandler creates a new handler.
func NewExamHandler(svc *service.ExamService) *ExamHandler {
	return &ExamHandler{service: svc}
}

type namePayload struct {
	Name string `json:"name" binding:"required"`
}

// Terms godoc
// @Summary List exam terms
// @Tags Exams
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exams/terms [get]
func (h *ExamHandler) Terms(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Terms(c.Request.Context()), nil)
}

// AddTerm godoc
// @Summary Create an exam term
// @Tags Exams
// @Accept json
// @Produce json
// @Param payload body object true "Term name"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /exams/terms [post]
func (h *ExamHandler) AddTerm(c *gin.Context) {
	var payload namePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "term name required"))
		return
	}
	if err := h.service.AddTerm(c.Request.Context(), payload.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"name": payload.Name})
}

// DeleteTerm godoc
// @Summary Delete an exam term
// @Description Cascades the term's exam list and co-scholastic assignment; the last term is protected
// @Tags Exams
// @Produce json
// @Param term path string true "Term name"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /exams/terms/{term} [delete]
func (h *ExamHandler) DeleteTerm(c *gin.Context) {
	if err := h.service.DeleteTerm(c.Request.Context(), c.Param("term")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// TermExams godoc
// @Summary List exam definitions of a term
// @Tags Exams
// @Produce json
// @Param term path string true "Term name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/terms/{term}/exams [get]
func (h *ExamHandler) TermExams(c *gin.Context) {
	exams, err := h.service.TermExams(c.Request.Context(), c.Param("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exams, nil)
}

// UpsertExam godoc
// @Summary Create or edit an exam definition
// @Description original_name identifies the exam being edited; empty means create
// @Tags Exams
// @Accept json
// @Produce json
// @Param payload body service.UpsertExamRequest true "Exam payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /exams [put]
func (h *ExamHandler) UpsertExam(c *gin.Context) {
	var req service.UpsertExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid exam payload"))
		return
	}
	if err := h.service.UpsertExam(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"term": req.Term, "name": req.Name}, nil)
}

// DeleteExam godoc
// @Summary Delete an exam definition
// @Tags Exams
// @Produce json
// @Param term path string true "Term name"
// @Param exam path string true "Exam name"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/terms/{term}/exams/{exam} [delete]
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	if err := h.service.DeleteExam(c.Request.Context(), c.Param("term"), c.Param("exam")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddArea godoc
// @Summary Create a co-scholastic area
// @Tags CoScholastic
// @Accept json
// @Produce json
// @Param payload body object true "Area name"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /co-scholastic/areas [post]
func (h *ExamHandler) AddArea(c *gin.Context) {
	var payload namePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "area name required"))
		return
	}
	if err := h.service.AddCoScholasticArea(c.Request.Context(), payload.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"name": payload.Name})
}

// DeleteArea godoc
// @Summary Delete a co-scholastic area
// @Description Cascades the area out of every class and term assignment; the last area is protected
// @Tags CoScholastic
// @Produce json
// @Param area path string true "Area name"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /co-scholastic/areas/{area} [delete]
func (h *ExamHandler) DeleteArea(c *gin.Context) {
	if err := h.service.DeleteCoScholasticArea(c.Request.Context(), c.Param("area")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddAreaSubject godoc
// @Summary Add a graded sub-subject to an area
// @Tags CoScholastic
// @Accept json
// @Produce json
// @Param area path string true "Area name"
// @Param payload body object true "Subject name"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /co-scholastic/areas/{area}/subjects [post]
func (h *ExamHandler) AddAreaSubject(c *gin.Context) {
	var payload namePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "subject name required"))
		return
	}
	if err := h.service.AddSubjectToArea(c.Request.Context(), c.Param("area"), payload.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"name": payload.Name})
}

// AssignAreaToTerm godoc
// @Summary Assign an area to a term
// @Description Assigning an already assigned area is a no-op
// @Tags CoScholastic
// @Produce json
// @Param term path string true "Term name"
// @Param area path string true "Area name"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/terms/{term}/areas/{area} [put]
func (h *ExamHandler) AssignAreaToTerm(c *gin.Context) {
	if err := h.service.AssignAreaToTerm(c.Request.Context(), c.Param("term"), c.Param("area")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UnassignAreaFromTerm godoc
// @Summary Unassign an area from a term
// @Tags CoScholastic
// @Produce json
// @Param term path string true "Term name"
// @Param area path string true "Area name"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/terms/{term}/areas/{area} [delete]
func (h *ExamHandler) UnassignAreaFromTerm(c *gin.Context) {
	if err := h.service.UnassignAreaFromTerm(c.Request.Context(), c.Param("term"), c.Param("area")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignAreasToClass godoc
// @Summary Assign co-scholastic areas to a class
// @Description Duplicate areas are skipped; the call fails when every area was already assigned
// @Tags CoScholastic
// @Accept json
// @Produce json
// @Param class path string true "Class name"
// @Param payload body service.AssignAreasToClassRequest true "Areas payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /classes/{class}/co-scholastic-areas [post]
func (h *ExamHandler) AssignAreasToClass(c *gin.Context) {
	var req service.AssignAreasToClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	req.Class = c.Param("class")
	added, err := h.service.AssignAreasToClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"added": added}, nil)
}
