// Package main provides the CanvasFlow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/canvasflow/canvasflow/pkg/execution"
	"github.com/canvasflow/canvasflow/pkg/persistence"
	"github.com/canvasflow/canvasflow/pkg/registry"
	"github.com/canvasflow/canvasflow/pkg/services"
	"github.com/canvasflow/canvasflow/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	runner      *execution.Runner
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry *registry.Registry,
	runner *execution.Runner,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		registry:    registry,
		runner:      runner,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	workflowService := services.NewWorkflow(a.persistence, a.registry)
	systemService := services.NewSystem(a.persistence, workflowService)
	workspaceService := services.NewWorkspace(a.persistence, systemService)

	handlers := web.NewAPIHandlers(workspaceService, systemService, workflowService, a.registry, a.runner, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("CanvasFlow API")
	})

	app.Get("/definitions", handlers.GetDefinitions)

	ws := app.Group("/workspaces")
	ws.Get("/", handlers.GetWorkspaces)
	ws.Post("/", handlers.CreateWorkspace)
	ws.Get("/:id", handlers.GetWorkspace)
	ws.Delete("/:id", handlers.DeleteWorkspace)
	ws.Get("/:id/systems", handlers.GetWorkspaceSystems)

	sys := app.Group("/systems")
	sys.Post("/", handlers.CreateSystem)
	sys.Get("/:id", handlers.GetSystem)
	sys.Delete("/:id", handlers.DeleteSystem)
	sys.Get("/:id/workflow", handlers.GetSystemWorkflow)
	sys.Post("/:id/run", handlers.RunSystem)

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Get("/:id", handlers.GetWorkflow)
	w.Put("/:id", handlers.SaveWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)

	// Node endpoints:
	w.Post("/:id/nodes", handlers.CreateWorkflowNode)
	w.Patch("/:id/nodes/:nodeId", handlers.UpdateWorkflowNode)
	w.Delete("/:id/nodes/:nodeId", handlers.DeleteWorkflowNode)
	w.Post("/:id/nodes/:nodeId/schema", handlers.EditNodeSchema)
	w.Get("/:id/nodes/:nodeId/fields/:field", handlers.GetNodeField)
	w.Put("/:id/nodes/:nodeId/fields/:field", handlers.SetNodeField)
	w.Post("/:id/nodes/:nodeId/validate", handlers.ValidateNodeData)
	w.Get("/:id/issues", handlers.GetWorkflowIssues)

	// Connection endpoints:
	w.Post("/:id/connections", handlers.CreateConnection)
	w.Delete("/:id/connections", handlers.DeleteConnection)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
