package models

import "time"

// ExecutionStatus is the lifecycle state reported by the execution backend.
type ExecutionStatus string

const (
	ExecutionStatusRunning ExecutionStatus = "running"
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusError   ExecutionStatus = "error"
	ExecutionStatusStopped ExecutionStatus = "stopped"
)

// Execution is one remote run of a serialized workflow graph.
type Execution struct {
	ID         string            `json:"id"`
	SystemID   string            `json:"system_id"`
	SystemJSON *ExecutionPayload `json:"system_json"`
	Logs       string            `json:"logs,omitempty"` // JSON-encoded []ExecutionRecord
	Status     ExecutionStatus   `json:"status"`
	StartedAt  *time.Time        `json:"started_at,omitempty"`
	StoppedAt  *time.Time        `json:"stopped_at,omitempty"`
}

// ExecutionRecord is one per-node record inside Execution.Logs, consumed for
// display only.
type ExecutionRecord struct {
	NodeName  string `json:"node_name"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
	Duration  int64  `json:"duration"`
	ItemID    string `json:"item_id,omitempty"`
	JobID     string `json:"job_id,omitempty"`
	Payload   any    `json:"payload,omitempty"`
	Result    any    `json:"result,omitempty"`
}

// ExecutionPayload is the wire format handed to the execution backend.
// Connections are keyed by source node name, not id; the backend addresses
// sibling nodes by name.
type ExecutionPayload struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Nodes       []*PayloadNode     `json:"nodes"`
	Connections []*ConnectionGroup `json:"connections"`
}

// PayloadNode is the normalized per-node wire shape.
type PayloadNode struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Subtype      string         `json:"subtype"`
	Position     [2]float64     `json:"position"`
	Parameters   map[string]any `json:"parameters"`
	InputSchema  *Schema        `json:"inputSchema,omitempty"`
	OutputSchema *Schema        `json:"outputSchema,omitempty"`
}

// ConnectionGroup holds the outgoing edges of one source node. Main carries
// regular edges; Sub carries edges into the "End Node" sentinel used by
// control-node alternate branches. Empty groups are omitted from the wire.
type ConnectionGroup struct {
	Node string               `json:"node"`
	Main [][]ConnectionTarget `json:"main,omitempty"`
	Sub  [][]ConnectionTarget `json:"sub,omitempty"`
}

// ConnectionTarget references a sibling node by display name.
type ConnectionTarget struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}
