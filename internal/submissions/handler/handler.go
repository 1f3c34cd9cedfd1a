package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"castmatch_backend/internal/submissions/repository"
	"castmatch_backend/internal/submissions/service"
	"castmatch_backend/internal/submissions/transport"
	"castmatch_backend/platform/httpkit"
	"castmatch_backend/platform/validator"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidID      = "invalid submission ID"
)

// Handler handles HTTP requests for submissions.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new submissions handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create records a manual submission for the caller's profile.
// POST /api/v1/submissions
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.svc.CreateManual(c.Request.Context(), identity.AccountID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListOwn returns the caller's submissions, newest first.
// GET /api/v1/submissions
func (h *Handler) ListOwn(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ListOwn(c.Request.Context(), identity.AccountID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListForCall returns a casting call's submissions (admin review).
// GET /api/v1/admin/castings/:id/submissions
func (h *Handler) ListForCall(c *gin.Context) {
	callID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid casting call ID", nil)
		return
	}

	result, svcErr := h.svc.ListForCall(c.Request.Context(), callID)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateStatus moves a submission through downstream review (admin).
// PATCH /api/v1/admin/submissions/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, svcErr := h.svc.UpdateStatus(c.Request.Context(), id, repository.Status(req.Status))
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}
