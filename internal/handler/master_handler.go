package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/service"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/response"
)

// MasterHandler exposes the master-data pools and per-class assignments.
type MasterHandler struct {
	service *service.MasterService
}

// NewMasterHandler creates a new handler.
func NewMasterHandler(svc *service.MasterService) *MasterHandler {
	return &MasterHandler{service: svc}
}

// Snapshot godoc
// @Summary Full master data
// @Description Returns the complete master-data snapshot
// @Tags MasterData
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /master [get]
func (h *MasterHandler) Snapshot(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Snapshot(c.Request.Context()), nil)
}

// Items godoc
// @Summary List one master-data pool
// @Tags MasterData
// @Produce json
// @Param kind path string true "Pool name" Enums(classes, sections, subjects, categories, religions, castes)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /master/{kind} [get]
func (h *MasterHandler) Items(c *gin.Context) {
	items, err := h.service.Items(c.Request.Context(), models.ListKind(c.Param("kind")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// AddItem godoc
// @Summary Add a value to a master-data pool
// @Tags MasterData
// @Accept json
// @Produce json
// @Param kind path string true "Pool name"
// @Param payload body object true "Value payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /master/{kind} [post]
func (h *MasterHandler) AddItem(c *gin.Context) {
	var payload struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "value required"))
		return
	}
	if err := h.service.AddItem(c.Request.Context(), models.ListKind(c.Param("kind")), payload.Value); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"value": payload.Value})
}

// RemoveItem godoc
// @Summary Remove a value from a master-data pool
// @Tags MasterData
// @Produce json
// @Param kind path string true "Pool name"
// @Param value path string true "Value to remove"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /master/{kind}/{value} [delete]
func (h *MasterHandler) RemoveItem(c *gin.Context) {
	if err := h.service.RemoveItem(c.Request.Context(), models.ListKind(c.Param("kind")), c.Param("value")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClassSubjects godoc
// @Summary Subject assignment for a class
// @Tags MasterData
// @Produce json
// @Param class path string true "Class name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{class}/subjects [get]
func (h *MasterHandler) ClassSubjects(c *gin.Context) {
	subjects, err := h.service.ClassSubjects(c.Request.Context(), c.Param("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// SetClassSubjects godoc
// @Summary Replace the subject assignment for a class
// @Tags MasterData
// @Accept json
// @Produce json
// @Param class path string true "Class name"
// @Param payload body service.SetClassSubjectsRequest true "Subjects payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes/{class}/subjects [put]
func (h *MasterHandler) SetClassSubjects(c *gin.Context) {
	var req service.SetClassSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class subjects payload"))
		return
	}
	req.Class = c.Param("class")
	if err := h.service.SetClassSubjects(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req.Subjects, nil)
}

// ClassSections godoc
// @Summary Effective section list for a class
// @Tags MasterData
// @Produce json
// @Param class path string true "Class name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{class}/sections [get]
func (h *MasterHandler) ClassSections(c *gin.Context) {
	sections, err := h.service.ClassSections(c.Request.Context(), c.Param("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections, nil)
}

// SetClassSections godoc
// @Summary Replace the section override for a class
// @Description An empty list clears the override so the class uses the global pool
// @Tags MasterData
// @Accept json
// @Produce json
// @Param class path string true "Class name"
// @Param payload body service.SetClassSectionsRequest true "Sections payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes/{class}/sections [put]
func (h *MasterHandler) SetClassSections(c *gin.Context) {
	var req service.SetClassSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class sections payload"))
		return
	}
	req.Class = c.Param("class")
	if err := h.service.SetClassSections(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req.Sections, nil)
}
