package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikshahq/school-console-api/internal/service"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/response"
)

// ReportHandler exposes report cards, admit cards and marks exports.
type ReportHandler struct {
	service *service.ReportService
	metrics *service.MetricsService
}

// NewReportHandler creates a new handler.
func NewReportHandler(svc *service.ReportService, metrics *service.MetricsService) *ReportHandler {
	return &ReportHandler{service: svc, metrics: metrics}
}

// ReportCard godoc
// @Summary Report card view model for one student and term
// @Tags Reports
// @Produce json
// @Param id path string true "Admission ID"
// @Param term query string true "Term name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/report-card [get]
func (h *ReportHandler) ReportCard(c *gin.Context) {
	card, err := h.service.BuildReportCard(c.Request.Context(), c.Param("id"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card, nil)
}

// ReportCardPDF godoc
// @Summary Report card as a printable PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path string true "Admission ID"
// @Param term query string true "Term name"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/report-card/pdf [get]
func (h *ReportHandler) ReportCardPDF(c *gin.Context) {
	data, err := h.service.ReportCardPDF(c.Request.Context(), c.Param("id"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountExport("report_pdf")
	name := fmt.Sprintf("report-card-%s.pdf", c.Param("id"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", data)
}

// AdmitCards godoc
// @Summary Admit card view models for a class/term/exam selection
// @Description An empty student_ids list selects every student of the class
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body service.AdmitCardsRequest true "Selection payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admit-cards [post]
func (h *ReportHandler) AdmitCards(c *gin.Context) {
	var req service.AdmitCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid admit card payload"))
		return
	}
	cards, err := h.service.BuildAdmitCards(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cards, nil)
}

// AdmitCardsPDF godoc
// @Summary Admit cards as a printable PDF, one page per student
// @Tags Reports
// @Accept json
// @Produce application/pdf
// @Param payload body service.AdmitCardsRequest true "Selection payload"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /admit-cards/pdf [post]
func (h *ReportHandler) AdmitCardsPDF(c *gin.Context) {
	var req service.AdmitCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid admit card payload"))
		return
	}
	data, err := h.service.AdmitCardsPDF(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountExport("admit_pdf")
	c.Header("Content-Disposition", `attachment; filename="admit-cards.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// ClassMarksCSV godoc
// @Summary Marks of every student in a class for one exam, as CSV
// @Tags Reports
// @Produce text/csv
// @Param class query string true "Class name"
// @Param term query string true "Term name"
// @Param exam query string true "Exam name"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /reports/class-marks.csv [get]
func (h *ReportHandler) ClassMarksCSV(c *gin.Context) {
	data, err := h.service.ClassMarksCSV(c.Request.Context(), c.Query("class"), c.Query("term"), c.Query("exam"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountExport("marks_csv")
	c.Header("Content-Disposition", `attachment; filename="class-marks.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ClassMarksPDF godoc
// @Summary Marks of every student in a class for one exam, as PDF
// @Tags Reports
// @Produce application/pdf
// @Param class query string true "Class name"
// @Param term query string true "Term name"
// @Param exam query string true "Exam name"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /reports/class-marks.pdf [get]
func (h *ReportHandler) ClassMarksPDF(c *gin.Context) {
	data, err := h.service.ClassMarksPDF(c.Request.Context(), c.Query("class"), c.Query("term"), c.Query("exam"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountExport("marks_pdf")
	c.Header("Content-Disposition", `attachment; filename="class-marks.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
