package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taskboard/internal/api/http/handlers"
	"github.com/spec-kit/taskboard/internal/auth"
	"github.com/spec-kit/taskboard/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Projects       *handlers.ProjectsHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Mutating routes carry the admin gate;
// the manager view is manager-only; listings require any authenticated
// caller.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	projects := app.Group("/projects", cfg.AuthMiddleware.Handle)
	projects.Get("/manager-view", auth.RequireRole(domain.RoleManager), cfg.Projects.ManagerView)
	projects.Get("/", auth.RequireAuthenticated(), cfg.Projects.List)
	projects.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Projects.Create)
	projects.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Projects.UpdateStatus)
	projects.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Projects.Delete)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle)
	tasks.Get("/user", auth.RequireAuthenticated(), cfg.Tasks.ListForCurrentUser)
	tasks.Get("/", auth.RequireAuthenticated(), cfg.Tasks.ListByProject)
	tasks.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Tasks.Create)
	tasks.Put("/:id", auth.RequireAuthenticated(), cfg.Tasks.UpdateStatus)
	tasks.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tasks.Delete)
}
