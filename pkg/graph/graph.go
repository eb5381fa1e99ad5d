// Package graph implements the authoritative in-memory workflow graph model:
// node add/update/delete with adjacency cleanup, run-log retention, and
// derivation of the flat connection list persisted with the workflow.
package graph

import (
	"slices"
	"time"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/google/uuid"
)

// Model wraps one workflow and funnels every mutation of its node and log
// state. The workflow owns its slices exclusively; callers never mutate them
// directly.
type Model struct {
	workflow *models.Workflow
}

func NewModel(workflow *models.Workflow) *Model {
	return &Model{workflow: workflow}
}

// Workflow returns the wrapped workflow.
func (m *Model) Workflow() *models.Workflow {
	return m.workflow
}

// AddNode appends a node. Id uniqueness is the caller's responsibility.
func (m *Model) AddNode(node *models.WorkflowNode) {
	m.workflow.Nodes = append(m.workflow.Nodes, node)
}

// NodeUpdate is a partial node update; nil fields are left untouched. Config
// entries are merged key-by-key into the existing config.
type NodeUpdate struct {
	Name        *string
	Position    *models.Position
	Config      map[string]any
	Connections *models.NodeConnections
}

// UpdateNode merges a partial update into the matching node. No-op when the
// id is not found.
func (m *Model) UpdateNode(id string, update NodeUpdate) {
	node := m.workflow.NodeByID(id)
	if node == nil {
		return
	}

	if update.Name != nil {
		node.Name = *update.Name
	}

	if update.Position != nil {
		node.Position = *update.Position
	}

	if update.Config != nil {
		if node.Config == nil {
			node.Config = make(map[string]any, len(update.Config))
		}

		for k, v := range update.Config {
			node.Config[k] = v
		}
	}

	if update.Connections != nil {
		node.Connections = update.Connections
	}
}

// DeleteNode removes the node and strips its id from every remaining node's
// input and output lists. A connections object emptied by the cleanup is
// dropped entirely to keep the serialized form minimal.
func (m *Model) DeleteNode(id string) {
	m.workflow.Nodes = slices.DeleteFunc(m.workflow.Nodes, func(n *models.WorkflowNode) bool {
		return n.ID == id
	})

	for _, node := range m.workflow.Nodes {
		if node.Connections == nil {
			continue
		}

		node.Connections.Input = removeID(node.Connections.Input, id)
		node.Connections.Output = removeID(node.Connections.Output, id)

		if node.Connections.Empty() {
			node.Connections = nil
		}
	}
}

// Connect records a directed edge, maintaining both adjacency directions.
// Only the output side is authoritative when deriving the flat list.
func (m *Model) Connect(fromID, toID string) {
	from := m.workflow.NodeByID(fromID)
	to := m.workflow.NodeByID(toID)

	if from == nil || to == nil {
		return
	}

	if from.Connections == nil {
		from.Connections = &models.NodeConnections{}
	}

	if !slices.Contains(from.Connections.Output, toID) {
		from.Connections.Output = append(from.Connections.Output, toID)
	}

	if to.Connections == nil {
		to.Connections = &models.NodeConnections{}
	}

	if !slices.Contains(to.Connections.Input, fromID) {
		to.Connections.Input = append(to.Connections.Input, fromID)
	}
}

// Disconnect removes a directed edge from both adjacency directions.
func (m *Model) Disconnect(fromID, toID string) {
	if from := m.workflow.NodeByID(fromID); from != nil && from.Connections != nil {
		from.Connections.Output = removeID(from.Connections.Output, toID)
		if from.Connections.Empty() {
			from.Connections = nil
		}
	}

	if to := m.workflow.NodeByID(toID); to != nil && to.Connections != nil {
		to.Connections.Input = removeID(to.Connections.Input, fromID)
		if to.Connections.Empty() {
			to.Connections = nil
		}
	}
}

// AddLog prepends an entry to the workflow's newest-first run log.
func (m *Model) AddLog(status, message string) {
	entry := &models.LogEntry{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Status:    status,
		Message:   message,
	}

	m.workflow.Logs = append([]*models.LogEntry{entry}, m.workflow.Logs...)
}

// SyncConnections recomputes the workflow's derived flat connection list
// from current node adjacency. Called on save; intermediate states may lag.
func (m *Model) SyncConnections() {
	m.workflow.Connections = DeriveConnections(m.workflow.Nodes)
}

// DeriveConnections emits one {from,to} pair per (node, output target)
// combination, in node order. Always recomputed from nodes, never trusted
// from stale state.
func DeriveConnections(nodes []*models.WorkflowNode) []*models.Connection {
	connections := make([]*models.Connection, 0)

	for _, node := range nodes {
		if node.Connections == nil {
			continue
		}

		for _, target := range node.Connections.Output {
			connections = append(connections, &models.Connection{From: node.ID, To: target})
		}
	}

	return connections
}

// DanglingEdges reports output edges whose target id no longer exists.
// Dangling edges are tolerated by the model; rendering and payload layers
// decide how to treat them.
func DanglingEdges(nodes []*models.WorkflowNode) []*models.Connection {
	ids := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		ids[node.ID] = struct{}{}
	}

	var dangling []*models.Connection

	for _, node := range nodes {
		if node.Connections == nil {
			continue
		}

		for _, target := range node.Connections.Output {
			if _, ok := ids[target]; !ok {
				dangling = append(dangling, &models.Connection{From: node.ID, To: target})
			}
		}
	}

	return dangling
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}
