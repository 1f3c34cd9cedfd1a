// Package castings is the casting-call bounded context: admin CRUD with the
// publish trigger, open-call listings, and the admin match preview.
package castings

import (
	"castmatch_backend/internal/castings/handler"
	"castmatch_backend/internal/castings/repository"
	"castmatch_backend/internal/castings/service"
	"castmatch_backend/internal/events"
	apphttp "castmatch_backend/internal/http"
	"castmatch_backend/internal/matching"
	"castmatch_backend/platform/logger"
	"castmatch_backend/platform/validator"
)

// Module is the castings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and wires the castings module. The repository is built
// by the composition root because the matching engine shares it.
func NewModule(repo *repository.Repo, profiles matching.ProfileSource, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, profiles, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "castings"
}

// Source exposes the open-call source for the matching engine.
func (m *Module) Source() matching.CallSource {
	return m.repo
}

// Repository returns the repository for direct access by sibling contexts.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts casting call routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/castings", m.handler.ListOpen)
	ctx.Protected.GET("/castings/:id", m.handler.Get)

	adminGroup := ctx.Admin.Group("/castings")
	adminGroup.POST("", m.handler.Create)
	adminGroup.GET("", m.handler.ListAll)
	adminGroup.POST("/:id/close", m.handler.Close)
	adminGroup.GET("/:id/matches", m.handler.MatchPreview)
}
