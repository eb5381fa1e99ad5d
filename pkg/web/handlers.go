package web

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/canvasflow/canvasflow/pkg/execution"
	"github.com/canvasflow/canvasflow/pkg/graph"
	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/registry"
	"github.com/canvasflow/canvasflow/pkg/services"
)

type APIHandlers struct {
	workspaceService *services.Workspace
	systemService    *services.System
	workflowService  *services.Workflow
	registry         *registry.Registry
	runner           *execution.Runner
	validator        *validator.Validate
}

func NewAPIHandlers(
	workspaceService *services.Workspace,
	systemService *services.System,
	workflowService *services.Workflow,
	registry *registry.Registry,
	runner *execution.Runner,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		workspaceService: workspaceService,
		systemService:    systemService,
		workflowService:  workflowService,
		registry:         registry,
		runner:           runner,
		validator:        validator,
	}
}

// Node definitions

func (h *APIHandlers) GetDefinitions(c fiber.Ctx) error {
	category := models.CategoryType(c.Query("category"))

	return c.JSON(h.registry.ListDefinitions(category))
}

// Workspaces

func (h *APIHandlers) GetWorkspaces(c fiber.Ctx) error {
	workspaces, err := h.workspaceService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workspaces)
}

func (h *APIHandlers) CreateWorkspace(c fiber.Ctx) error {
	var req CreateWorkspaceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	workspace, err := h.workspaceService.Create(c.Context(), req.Name, req.Description)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(workspace)
}

func (h *APIHandlers) GetWorkspace(c fiber.Ctx) error {
	workspace, err := h.workspaceService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workspace)
}

func (h *APIHandlers) DeleteWorkspace(c fiber.Ctx) error {
	if err := h.workspaceService.Delete(c.Context(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetWorkspaceSystems(c fiber.Ctx) error {
	systems, err := h.systemService.ListByWorkspace(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(systems)
}

// Systems

func (h *APIHandlers) CreateSystem(c fiber.Ctx) error {
	var req CreateSystemRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	system, err := h.systemService.Create(c.Context(), req.Name, req.Description, req.WorkspaceID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(system)
}

func (h *APIHandlers) GetSystem(c fiber.Ctx) error {
	system, err := h.systemService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(system)
}

func (h *APIHandlers) DeleteSystem(c fiber.Ctx) error {
	if err := h.systemService.Delete(c.Context(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetSystemWorkflow returns the workflow owned by a system.
func (h *APIHandlers) GetSystemWorkflow(c fiber.Ctx) error {
	workflow, err := h.workflowService.GetBySystem(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

// RunSystem serializes the system's workflow and hands it to the execution
// backend. A second run while one is outstanding maps to 409.
func (h *APIHandlers) RunSystem(c fiber.Ctx) error {
	systemID := c.Params("id")

	workflow, err := h.workflowService.GetBySystem(c.Context(), systemID)
	if err != nil {
		return handleServiceError(c, err)
	}

	model := graph.NewModel(workflow)

	exec, err := h.runner.Run(c.Context(), model, systemID)

	// Run logs are committed regardless of the remote call outcome.
	if _, saveErr := h.workflowService.Save(c.Context(), workflow); saveErr != nil {
		return handleServiceError(c, saveErr)
	}

	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(exec)
}

// Workflows

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	workflows, err := h.workflowService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflows)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	workflow, err := h.workflowService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

// SaveWorkflow is the explicit save endpoint: it replaces graph state and
// recomputes the derived connection list.
func (h *APIHandlers) SaveWorkflow(c fiber.Ctx) error {
	var req SaveWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	workflow, err := h.workflowService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	workflow.Name = req.Name
	workflow.Nodes = req.Nodes
	workflow.Variables = req.Variables

	saved, err := h.workflowService.Save(c.Context(), workflow)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(saved)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	if err := h.workflowService.Delete(c.Context(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Nodes

func (h *APIHandlers) CreateWorkflowNode(c fiber.Ctx) error {
	var req CreateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	node, err := h.workflowService.CreateNode(c.Context(), c.Params("id"), req.Type, req.Name, req.Position)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(node)
}

func (h *APIHandlers) UpdateWorkflowNode(c fiber.Ctx) error {
	var req UpdateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	update := graph.NodeUpdate{
		Name:        req.Name,
		Position:    req.Position,
		Config:      req.Config,
		Connections: req.Connections,
	}

	node, err := h.workflowService.UpdateNode(c.Context(), c.Params("id"), c.Params("nodeId"), update)
	if err != nil {
		return handleServiceError(c, err)
	}

	if node == nil {
		return notFound(c, "Node not found")
	}

	return c.JSON(node)
}

func (h *APIHandlers) DeleteWorkflowNode(c fiber.Ctx) error {
	if err := h.workflowService.DeleteNode(c.Context(), c.Params("id"), c.Params("nodeId")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// EditNodeSchema applies an add/remove/rename on a node's output schema and
// returns the workflow with its synchronized variable list.
func (h *APIHandlers) EditNodeSchema(c fiber.Ctx) error {
	var op services.SchemaPropertyOp
	if err := c.Bind().JSON(&op); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(op); err != nil {
		return badRequest(c, err.Error())
	}

	workflow, err := h.workflowService.EditSchemaProperty(c.Context(), c.Params("id"), c.Params("nodeId"), op)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

// GetNodeField returns a field's coerced display value and, for enumerated
// fields, its allowed values.
func (h *APIHandlers) GetNodeField(c fiber.Ctx) error {
	view, err := h.workflowService.NodeField(c.Context(), c.Params("id"), c.Params("nodeId"), c.Params("field"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(view)
}

// SetNodeField applies one field edit through the coercion model. Field
// writes are total; malformed values land as the field's documented default.
func (h *APIHandlers) SetNodeField(c fiber.Ctx) error {
	var req SetNodeFieldRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	view, err := h.workflowService.SetNodeField(c.Context(), c.Params("id"), c.Params("nodeId"), c.Params("field"), req.Value)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(view)
}

// ValidateNodeData checks sample data against a node's output schema.
func (h *APIHandlers) ValidateNodeData(c fiber.Ctx) error {
	var req ValidateNodeDataRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.workflowService.ValidateNodeData(c.Context(), c.Params("id"), c.Params("nodeId"), req.Data); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"valid": true})
}

// GetWorkflowIssues reports the workflow's dangling edges.
func (h *APIHandlers) GetWorkflowIssues(c fiber.Ctx) error {
	dangling, err := h.workflowService.Issues(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"dangling_edges": dangling})
}

// Connections

func (h *APIHandlers) CreateConnection(c fiber.Ctx) error {
	var req ConnectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.workflowService.Connect(c.Context(), c.Params("id"), req.From, req.To); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

func (h *APIHandlers) DeleteConnection(c fiber.Ctx) error {
	var req ConnectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.workflowService.Disconnect(c.Context(), c.Params("id"), req.From, req.To); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HealthCheck reports the persistence layer's health.
func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	message, healthy := h.workflowService.HealthCheck(c.Context())

	status := "unhealthy"
	httpStatus := fiber.StatusServiceUnavailable

	if healthy {
		status = "healthy"
		httpStatus = fiber.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"timestamp": time.Now().UTC(),
	})
}
