package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"castmatch_backend/internal/castings/service"
	"castmatch_backend/internal/castings/transport"
	"castmatch_backend/platform/httpkit"
	"castmatch_backend/platform/validator"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidID      = "invalid casting call ID"
)

// Handler handles HTTP requests for casting calls.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new castings handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create publishes a new casting call (admin).
// POST /api/v1/admin/castings
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCastingCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListOpen returns the calls actors can still be submitted to.
// GET /api/v1/castings
func (h *Handler) ListOpen(c *gin.Context) {
	result, err := h.svc.ListOpen(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns one casting call.
// GET /api/v1/castings/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, svcErr := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}

// ListAll returns every casting call (admin).
// GET /api/v1/admin/castings
func (h *Handler) ListAll(c *gin.Context) {
	result, err := h.svc.ListAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Close marks a casting call closed (admin).
// POST /api/v1/admin/castings/:id/close
func (h *Handler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, svcErr := h.svc.Close(c.Request.Context(), id)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}

// MatchPreview scores completed profiles against a call (admin).
// GET /api/v1/admin/castings/:id/matches
func (h *Handler) MatchPreview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, svcErr := h.svc.MatchPreview(c.Request.Context(), id)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}
