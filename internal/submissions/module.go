// Package submissions is the submissions bounded context: the unique-insert
// recorder shared with the matching engine, plus manual submission and
// review endpoints.
package submissions

import (
	"castmatch_backend/internal/events"
	apphttp "castmatch_backend/internal/http"
	"castmatch_backend/internal/matching"
	"castmatch_backend/internal/submissions/handler"
	"castmatch_backend/internal/submissions/repository"
	"castmatch_backend/internal/submissions/service"
	"castmatch_backend/platform/logger"
	"castmatch_backend/platform/validator"
)

// Module is the submissions bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and wires the submissions module. The repository is
// built by the composition root because the matching engine shares it; the
// profile directory and call source come from their owning contexts.
func NewModule(repo *repository.Repo, profiles service.ProfileDirectory, calls matching.CallSource, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, profiles, calls, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "submissions"
}

// Recorder exposes the unique-insert recorder for the matching engine.
func (m *Module) Recorder() matching.SubmissionRecorder {
	return m.repo
}

// Repository returns the repository for direct access by sibling contexts.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts submission routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/submissions", m.handler.Create)
	ctx.Protected.GET("/submissions", m.handler.ListOwn)

	ctx.Admin.GET("/castings/:id/submissions", m.handler.ListForCall)
	ctx.Admin.PATCH("/submissions/:id/status", m.handler.UpdateStatus)
}
