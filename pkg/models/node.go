package models

// CategoryType is the fixed set of node palette categories.
type CategoryType string

const (
	CategoryTrigger   CategoryType = "trigger"
	CategoryAI        CategoryType = "ai"
	CategoryTransform CategoryType = "transform"
	CategoryControl   CategoryType = "control"
	CategoryOutput    CategoryType = "output"
)

// NodeType identifies one entry of the closed node-type enumeration.
type NodeType string

const (
	NodeTypeSchedule   NodeType = "schedule"
	NodeTypeWebhook    NodeType = "webhook"
	NodeTypeForm       NodeType = "form"
	NodeTypeFileUpload NodeType = "file-upload"

	NodeTypeHyperclova NodeType = "hyperclova"
	NodeTypeClassifier NodeType = "classifier"

	NodeTypeExcel  NodeType = "excel"
	NodeTypeCode   NodeType = "code"
	NodeTypeFilter NodeType = "filter"

	NodeTypeIfElse NodeType = "if-else"
	NodeTypeSwitch NodeType = "switch"

	NodeTypeDatabase     NodeType = "database"
	NodeTypeHTTPResponse NodeType = "http-response"
	NodeTypeNotification NodeType = "notification"
)

// EndNodeName is the sentinel target name used by control-node alternate
// branches; payload building routes edges into it to the "sub" group.
const EndNodeName = "End Node"

// Position is the node's canvas coordinate. Opaque to the graph model.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeConnections holds per-node adjacency id lists. Both directions are
// maintained by convention, but only Output is authoritative when deriving
// the workflow's flat connection list.
type NodeConnections struct {
	Input  []string `json:"input,omitempty"`
	Output []string `json:"output,omitempty"`
}

// Empty reports whether both adjacency lists are empty.
func (c *NodeConnections) Empty() bool {
	return c == nil || (len(c.Input) == 0 && len(c.Output) == 0)
}

// WorkflowNode is one step in a workflow graph. Config is an open map whose
// shape depends on Type; after lazy initialization it always contains a
// "parameters" sub-map, and may carry "subtype", "inputSchema" and
// "outputSchema" entries.
type WorkflowNode struct {
	ID          string           `json:"id"   validate:"required"`
	Type        NodeType         `json:"type" validate:"required"`
	Name        string           `json:"name" validate:"required,min=1"`
	Position    Position         `json:"position"`
	Config      map[string]any   `json:"config,omitempty"`
	Connections *NodeConnections `json:"connections,omitempty"`
}

// Subtype returns config["subtype"] when present.
func (n *WorkflowNode) Subtype() string {
	if n.Config == nil {
		return ""
	}

	if s, ok := n.Config["subtype"].(string); ok {
		return s
	}

	return ""
}

// Parameters returns the node's parameters sub-map, which may be nil when the
// config has not been initialized yet (see params.EnsureParameters).
func (n *WorkflowNode) Parameters() map[string]any {
	if n.Config == nil {
		return nil
	}

	if p, ok := n.Config["parameters"].(map[string]any); ok {
		return p
	}

	return nil
}

// Connection is one derived flat edge between two node ids.
type Connection struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to"   validate:"required"`
}

// NodeDefinition is an immutable registry entry describing one node type.
type NodeDefinition struct {
	Type          NodeType       `json:"type"`
	Label         string         `json:"label"`
	Category      CategoryType   `json:"category"`
	Icon          string         `json:"icon"`
	DefaultConfig map[string]any `json:"default_config,omitempty"`
}
