package routes

import (
	"github.com/gofiber/fiber/v3"

	"planboard/internal/delivery/http/handler"
	"planboard/internal/delivery/http/middleware"
)

// MountedResource pairs a resource handler with the path it serves under.
// The same table may be mounted twice (canonical and legacy calendar
// surfaces).
type MountedResource struct {
	Base    string
	Handler *handler.ResourceHandler
}

type Registry struct {
	auth      *handler.AuthHandler
	health    *handler.HealthHandler
	projDesc  *handler.ProjectDescriptionHandler
	resources []MountedResource
	authMw    *middleware.AuthMiddleware
}

func NewRegistry(
	auth *handler.AuthHandler,
	health *handler.HealthHandler,
	projDesc *handler.ProjectDescriptionHandler,
	resources []MountedResource,
	authMw *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		auth:      auth,
		health:    health,
		projDesc:  projDesc,
		resources: resources,
		authMw:    authMw,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.auth.RegisterRoutes(app)

	var res fiber.Router = app
	if r.authMw.Enabled() {
		res = app.Group("", r.authMw.Middleware())
	}

	r.projDesc.RegisterRoutes(res)
	for _, m := range r.resources {
		m.Handler.RegisterRoutes(res, m.Base)
	}
}
