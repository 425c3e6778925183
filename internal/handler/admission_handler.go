package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikshahq/school-console-api/internal/service"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/response"
)

// AdmissionHandler exposes admission, ID preview and CSV import/export.
type AdmissionHandler struct {
	service *service.AdmissionService
	metrics *service.MetricsService
}

// NewAdmissionHandler creates a new handler.
func NewAdmissionHandler(svc *service.AdmissionService, metrics *service.MetricsService) *AdmissionHandler {
	return &AdmissionHandler{service: svc, metrics: metrics}
}

// Admit godoc
// @Summary Admit a student
// @Description Creates a student record and consumes one admission serial
// @Tags Admissions
// @Accept json
// @Produce json
// @Param payload body service.AdmitRequest true "Admission payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admissions [post]
func (h *AdmissionHandler) Admit(c *gin.Context) {
	var req service.AdmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid admission payload"))
		return
	}
	student, err := h.service.Admit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// PreviewID godoc
// @Summary Preview the next admission ID
// @Description Shows the ID the next admission would receive without consuming the serial
// @Tags Admissions
// @Produce json
// @Param class query string false "Class name"
// @Param section query string false "Section"
// @Param admission_date query string false "Admission date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /admissions/preview-id [get]
func (h *AdmissionHandler) PreviewID(c *gin.Context) {
	id := h.service.PreviewID(c.Request.Context(), c.Query("class"), c.Query("section"), c.Query("admission_date"))
	response.JSON(c, http.StatusOK, gin.H{"id": id}, nil)
}

// ImportCSV godoc
// @Summary Bulk-import students from a CSV file
// @Description Rows missing FirstName or Class are skipped; the rest are admitted in one batch
// @Tags Admissions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admissions/import [post]
func (h *AdmissionHandler) ImportCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "CSV file required"))
		return
	}
	defer file.Close()

	result, err := h.service.ImportCSV(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ExportCSV godoc
// @Summary Export every student as CSV
// @Tags Admissions
// @Produce text/csv
// @Success 200 {file} binary
// @Router /students/export.csv [get]
func (h *AdmissionHandler) ExportCSV(c *gin.Context) {
	data, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountExport("students_csv")
	c.Header("Content-Disposition", `attachment; filename="students.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
