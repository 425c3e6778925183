package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikshahq/school-console-api/internal/service"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/response"
)

// SessionHandler exposes academic session management.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new handler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// List godoc
// @Summary List academic sessions
// @Tags Sessions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()), nil)
}

// Create godoc
// @Summary Create a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body service.SessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req service.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	session, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// Rename godoc
// @Summary Rename a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body service.SessionRequest true "Session payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /sessions/{id} [put]
func (h *SessionHandler) Rename(c *gin.Context) {
	var req service.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	session, err := h.service.Rename(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// SetCurrent godoc
// @Summary Mark a session as current
// @Description Clears the current flag from every other session in the same mutation
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id}/current [put]
func (h *SessionHandler) SetCurrent(c *gin.Context) {
	if err := h.service.SetCurrent(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a session
// @Description The current session, the last remaining session and sessions with admitted students are protected
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
