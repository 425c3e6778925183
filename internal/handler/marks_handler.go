package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikshahq/school-console-api/internal/service"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/response"
)

// MarksHandler exposes the score ledger.
type MarksHandler struct {
	service *service.MarksService
}

// NewMarksHandler creates a new handler.
func NewMarksHandler(svc *service.MarksService) *MarksHandler {
	return &MarksHandler{service: svc}
}

// SetScore godoc
// @Summary Write one score cell
// @Description Last write wins; a value above the exam maximum produces a warning, not an error
// @Tags Marks
// @Accept json
// @Produce json
// @Param payload body service.SetScoreRequest true "Score payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /marks [put]
func (h *MarksHandler) SetScore(c *gin.Context) {
	var req service.SetScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid score payload"))
		return
	}
	result, err := h.service.SetScore(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// StudentScores godoc
// @Summary Read a student's scores for one term
// @Tags Marks
// @Produce json
// @Param id path string true "Admission ID"
// @Param term query string true "Term name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/marks [get]
func (h *MarksHandler) StudentScores(c *gin.Context) {
	scores, err := h.service.Scores(c.Request.Context(), c.Param("id"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scores, nil)
}

// Grid godoc
// @Summary Marks-entry grid for one class/section and exam
// @Tags Marks
// @Produce json
// @Param class query string true "Class name"
// @Param section query string false "Section"
// @Param term query string true "Term name"
// @Param exam query string true "Exam name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /marks/grid [get]
func (h *MarksHandler) Grid(c *gin.Context) {
	grid, err := h.service.Grid(c.Request.Context(), c.Query("class"), c.Query("section"), c.Query("term"), c.Query("exam"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}
