package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/canvasflow/canvasflow/pkg/graph"
	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/params"
	"github.com/canvasflow/canvasflow/pkg/persistence"
	"github.com/canvasflow/canvasflow/pkg/registry"
	"github.com/canvasflow/canvasflow/pkg/varsync"
)

// ErrWorkflowNotFound is returned when a workflow is not found.
var ErrWorkflowNotFound = persistence.ErrWorkflowNotFound

// Workflow handles workflow graph business operations. Node and variable
// mutations persist the node state immediately; the derived flat connection
// list is only recomputed by Save, the explicit point of truth.
type Workflow struct {
	persistence persistence.Persistence
	registry    *registry.Registry
}

// NewWorkflow creates a new workflow service.
func NewWorkflow(persistence persistence.Persistence, registry *registry.Registry) *Workflow {
	return &Workflow{
		persistence: persistence,
		registry:    registry,
	}
}

// HealthCheck checks the health of the persistence layer.
func (s *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := s.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

func (s *Workflow) List(ctx context.Context) ([]*models.Workflow, error) {
	return s.persistence.WorkflowRepository().List(ctx)
}

func (s *Workflow) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := s.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		return nil, ErrWorkflowNotFound
	}

	return workflow, nil
}

func (s *Workflow) GetBySystem(ctx context.Context, systemID string) (*models.Workflow, error) {
	workflow, err := s.persistence.WorkflowRepository().GetBySystem(ctx, systemID)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		return nil, ErrWorkflowNotFound
	}

	return workflow, nil
}

// Create creates an empty workflow, typically alongside its owning system.
func (s *Workflow) Create(ctx context.Context, name, systemID string) (*models.Workflow, error) {
	if name == "" {
		return nil, ErrWorkflowNameRequired
	}

	workflow := &models.Workflow{
		ID:          uuid.New().String(),
		Name:        name,
		SystemID:    systemID,
		Nodes:       make([]*models.WorkflowNode, 0),
		Connections: make([]*models.Connection, 0),
	}

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return workflow, nil
}

// Save is the explicit persistence point: it recomputes the derived flat
// connection list from node adjacency and rejects duplicate node names,
// since execution connections are keyed by name.
func (s *Workflow) Save(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow == nil {
		return nil, ErrWorkflowNil
	}

	if workflow.Name == "" {
		return nil, ErrWorkflowNameRequired
	}

	seen := make(map[string]struct{}, len(workflow.Nodes))

	for _, node := range workflow.Nodes {
		if _, dup := seen[node.Name]; dup {
			return nil, NewValidationError("Save", "DUPLICATE_NODE_NAME",
				fmt.Sprintf("node name %q is used more than once", node.Name), ErrDuplicateNodeName)
		}

		seen[node.Name] = struct{}{}
	}

	workflow.Connections = graph.DeriveConnections(workflow.Nodes)

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return workflow, nil
}

func (s *Workflow) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	return s.persistence.WorkflowRepository().Delete(ctx, id)
}

// CreateNode adds a node of the given type with the registry's default
// configuration and an initialized parameters map.
func (s *Workflow) CreateNode(ctx context.Context, workflowID string, nodeType models.NodeType, name string, position models.Position) (*models.WorkflowNode, error) {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = s.registry.DefinitionFor(nodeType).Label
	}

	config := s.registry.DefaultConfigFor(nodeType)
	params.EnsureParameters(config)

	node := &models.WorkflowNode{
		ID:       uuid.New().String(),
		Type:     nodeType,
		Name:     name,
		Position: position,
		Config:   config,
	}

	model := graph.NewModel(workflow)
	model.AddNode(node)

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save node: %w", err)
	}

	return node, nil
}

// UpdateNode merges a partial update into the node. Variables generated for
// the node's output schema are synchronized on mount semantics: parameters
// are lazily initialized and missing "json.*" variables created.
func (s *Workflow) UpdateNode(ctx context.Context, workflowID, nodeID string, update graph.NodeUpdate) (*models.WorkflowNode, error) {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	model := graph.NewModel(workflow)
	model.UpdateNode(nodeID, update)

	node := workflow.NodeByID(nodeID)
	if node != nil && s.registry.SchemaCapable(node) {
		workflow.Variables = varsync.SyncOnMount(node, workflow.Variables)
	}

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save node update: %w", err)
	}

	return node, nil
}

// DeleteNode removes a node and cleans its id out of every remaining node's
// adjacency lists.
func (s *Workflow) DeleteNode(ctx context.Context, workflowID, nodeID string) error {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return err
	}

	model := graph.NewModel(workflow)
	model.DeleteNode(nodeID)

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return fmt.Errorf("failed to save node deletion: %w", err)
	}

	return nil
}

// Connect records a directed edge between two nodes.
func (s *Workflow) Connect(ctx context.Context, workflowID, fromID, toID string) error {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return err
	}

	model := graph.NewModel(workflow)
	model.Connect(fromID, toID)

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return fmt.Errorf("failed to save connection: %w", err)
	}

	return nil
}

// Disconnect removes a directed edge between two nodes.
func (s *Workflow) Disconnect(ctx context.Context, workflowID, fromID, toID string) error {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return err
	}

	model := graph.NewModel(workflow)
	model.Disconnect(fromID, toID)

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return fmt.Errorf("failed to save disconnection: %w", err)
	}

	return nil
}

// NodeFieldView is the editing view of one config field: its coerced display
// value plus the allowed values when the field is enumerated.
type NodeFieldView struct {
	Field   string   `json:"field"`
	Value   any      `json:"value"`
	Options []string `json:"options,omitempty"`
}

// NodeField resolves a field's current display value with the field model's
// read-side coercion.
func (s *Workflow) NodeField(ctx context.Context, workflowID, nodeID, field string) (*NodeFieldView, error) {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	node := workflow.NodeByID(nodeID)
	if node == nil {
		return nil, persistence.ErrNodeNotFound
	}

	return &NodeFieldView{
		Field:   field,
		Value:   params.ReadField(node, field),
		Options: params.OptionsFor(field),
	}, nil
}

// SetNodeField applies one field edit with the field model's write-side
// coercion and persists the node. Schedule mode objects are normalized so an
// unparseable cron expression falls back to the daily default.
func (s *Workflow) SetNodeField(ctx context.Context, workflowID, nodeID, field string, value any) (*NodeFieldView, error) {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	node := workflow.NodeByID(nodeID)
	if node == nil {
		return nil, persistence.ErrNodeNotFound
	}

	if node.Type == models.NodeTypeSchedule && field == "mode" {
		mode, _ := value.(map[string]any)
		value = params.NormalizeScheduleMode(mode)
	}

	params.WriteField(node, field, value)

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save field edit: %w", err)
	}

	return &NodeFieldView{
		Field:   field,
		Value:   params.ReadField(node, field),
		Options: params.OptionsFor(field),
	}, nil
}

// ValidateNodeData checks sample data against a node's output schema.
func (s *Workflow) ValidateNodeData(ctx context.Context, workflowID, nodeID string, data any) error {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return err
	}

	node := workflow.NodeByID(nodeID)
	if node == nil {
		return persistence.ErrNodeNotFound
	}

	if err := registry.ValidateAgainstSchema(data, node.OutputSchema()); err != nil {
		return NewValidationError("ValidateNodeData", "SCHEMA_MISMATCH", err.Error(), ErrInvalidRequest)
	}

	return nil
}

// Issues reports the non-fatal problems of a workflow graph, currently the
// output edges whose target node no longer exists.
func (s *Workflow) Issues(ctx context.Context, workflowID string) ([]*models.Connection, error) {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	return graph.DanglingEdges(workflow.Nodes), nil
}

// SchemaPropertyOp names one explicit output-schema edit.
type SchemaPropertyOp struct {
	Action   string `json:"action"   validate:"required,oneof=add remove rename"`
	Property string `json:"property,omitempty"`
	NewName  string `json:"new_name,omitempty"`
	PropType string `json:"prop_type,omitempty"`
}

// EditSchemaProperty applies an explicit add/remove/rename on a node's
// output schema, keeping the workflow's variable list in sync.
func (s *Workflow) EditSchemaProperty(ctx context.Context, workflowID, nodeID string, op SchemaPropertyOp) (*models.Workflow, error) {
	workflow, err := s.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	node := workflow.NodeByID(nodeID)
	if node == nil {
		return nil, persistence.ErrNodeNotFound
	}

	schema := node.OutputSchema()
	if schema == nil {
		schema = &models.Schema{Type: "object"}
	}

	switch op.Action {
	case "add":
		_, workflow.Variables = varsync.AddProperty(schema, workflow.Variables, node.Name, true)
	case "remove":
		workflow.Variables = varsync.RemoveProperty(schema, workflow.Variables, op.Property, true)
	case "rename":
		workflow.Variables = varsync.RenameProperty(schema, workflow.Variables, op.Property, op.NewName, op.PropType, true)
	default:
		return nil, NewValidationError("EditSchemaProperty", "INVALID_ACTION",
			fmt.Sprintf("unknown schema action %q", op.Action), ErrInvalidRequest)
	}

	node.SetOutputSchema(schema)

	if err := registry.ValidateSchemaDocument(schema); err != nil {
		return nil, NewValidationError("EditSchemaProperty", "INVALID_SCHEMA", err.Error(), ErrInvalidRequest)
	}

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save schema edit: %w", err)
	}

	return workflow, nil
}
