// Package profiles is the actor-profile bounded context: onboarding,
// the matchable profile source for the engine, and the self-service
// recheck and match-preview endpoints.
package profiles

import (
	"castmatch_backend/internal/events"
	apphttp "castmatch_backend/internal/http"
	"castmatch_backend/internal/matching"
	"castmatch_backend/internal/profiles/handler"
	"castmatch_backend/internal/profiles/repository"
	"castmatch_backend/internal/profiles/service"
	"castmatch_backend/platform/logger"
	"castmatch_backend/platform/validator"
)

// Module is the profiles bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and wires the profiles module. The repository is built
// by the composition root because the matching engine shares it; the engine
// and the submission lookup come from their owning contexts.
func NewModule(repo *repository.Repo, calls matching.CallSource, submissions service.SubmissionLookup, engine *matching.Engine, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, calls, submissions, engine, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "profiles"
}

// Source exposes the completed-profile source for the matching engine.
func (m *Module) Source() matching.ProfileSource {
	return m.repo
}

// Repository returns the repository for direct access by sibling contexts.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts profile routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	me := ctx.Protected.Group("/profiles/me")
	me.GET("", m.handler.Get)
	me.PUT("", m.handler.Upsert)
	me.GET("/matches", m.handler.Matches)
	me.POST("/recheck", ctx.RecheckRateLimiter.RateLimit(), m.handler.Recheck)
}
