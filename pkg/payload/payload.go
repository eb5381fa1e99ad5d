// Package payload transforms a workflow graph into the wire format consumed
// by the execution backend. The transform is structural only: it performs no
// acyclicity or reachability validation.
package payload

import (
	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/registry"
)

// Build serializes a workflow for the execution backend. Nodes are
// normalized to name/type/subtype/position/parameters; connections are
// resolved by node name (a legacy constraint of the backend, which addresses
// sibling nodes by display name) and grouped per source node, with edges
// into the "End Node" sentinel routed to the sub group.
func Build(workflow *models.Workflow) *models.ExecutionPayload {
	payload := &models.ExecutionPayload{
		ID:          workflow.ID,
		Name:        workflow.Name,
		Nodes:       make([]*models.PayloadNode, 0, len(workflow.Nodes)),
		Connections: make([]*models.ConnectionGroup, 0, len(workflow.Nodes)),
	}

	names := make(map[string]string, len(workflow.Nodes))
	for _, node := range workflow.Nodes {
		names[node.ID] = node.Name
	}

	for _, node := range workflow.Nodes {
		payload.Nodes = append(payload.Nodes, buildNode(node))
	}

	for _, node := range workflow.Nodes {
		if group := buildGroup(node, names); group != nil {
			payload.Connections = append(payload.Connections, group)
		}
	}

	return payload
}

func buildNode(node *models.WorkflowNode) *models.PayloadNode {
	wireType, wireSubtype := registry.WireType(node.Type)

	if node.Config != nil {
		if t, ok := node.Config["type"].(string); ok && t != "" {
			wireType = t
		}

		if s, ok := node.Config["subtype"].(string); ok && s != "" {
			wireSubtype = s
		}
	}

	parameters := node.Parameters()
	if parameters == nil {
		parameters = map[string]any{}
	}

	return &models.PayloadNode{
		Name:         node.Name,
		Type:         wireType,
		Subtype:      wireSubtype,
		Position:     [2]float64{node.Position.X, node.Position.Y},
		Parameters:   parameters,
		InputSchema:  node.InputSchema(),
		OutputSchema: node.OutputSchema(),
	}
}

func buildGroup(node *models.WorkflowNode, names map[string]string) *models.ConnectionGroup {
	if node.Connections == nil || len(node.Connections.Output) == 0 {
		return nil
	}

	var main, sub []models.ConnectionTarget

	for _, targetID := range node.Connections.Output {
		targetName, ok := names[targetID]
		if !ok {
			// Dangling edge; nothing to address by name.
			continue
		}

		target := models.ConnectionTarget{Node: targetName, Type: "main", Index: 0}

		if targetName == models.EndNodeName {
			sub = append(sub, target)
		} else {
			main = append(main, target)
		}
	}

	if len(main) == 0 && len(sub) == 0 {
		return nil
	}

	group := &models.ConnectionGroup{Node: node.Name}

	if len(main) > 0 {
		group.Main = [][]models.ConnectionTarget{main}
	}

	if len(sub) > 0 {
		group.Sub = [][]models.ConnectionTarget{sub}
	}

	return group
}
