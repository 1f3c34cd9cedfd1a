package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"castmatch_backend/internal/profiles/service"
	"castmatch_backend/internal/profiles/transport"
	"castmatch_backend/platform/httpkit"
	"castmatch_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for profiles.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new profiles handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Upsert saves the caller's full profile and completes onboarding.
// PUT /api/v1/profiles/me
func (h *Handler) Upsert(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.svc.Upsert(c.Request.Context(), identity.AccountID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns the caller's profile.
// GET /api/v1/profiles/me
func (h *Handler) Get(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), identity.AccountID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Recheck runs the profile fanout synchronously and reports the counts.
// POST /api/v1/profiles/me/recheck
func (h *Handler) Recheck(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Recheck(c.Request.Context(), identity.AccountID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Matches lists open casting calls scored against the caller's profile.
// GET /api/v1/profiles/me/matches
func (h *Handler) Matches(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Matches(c.Request.Context(), identity.AccountID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
