package flow

import "fmt"

// Status is the execution status of a node as reported by the backend.
type Status string

// Node execution statuses.
const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Position holds x/y coordinates for rendering the node on the canvas.
// Positions carry no semantics; they only affect layout.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AgentConfig holds the optional extended configuration of an agent node.
// Pointer fields distinguish "unset" from an explicit value; the backend
// schema treats the two differently.
type AgentConfig struct {
	// SystemPrompt overrides the role's default system prompt.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Temperature is the sampling temperature, constrained to [0.0, 2.0].
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens caps output tokens, constrained to [1, 16384].
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Retries is the retry count on agent failure, constrained to [0, 10].
	Retries *int `json:"retries,omitempty"`

	// CustomRole marks the role as user-defined rather than shipped.
	CustomRole bool `json:"custom_role,omitempty"`
}

// Validate checks the configured values against their allowed ranges.
func (c *AgentConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.Temperature != nil && (*c.Temperature < 0.0 || *c.Temperature > 2.0) {
		return fmt.Errorf("temperature %v outside [0.0, 2.0]", *c.Temperature)
	}
	if c.MaxTokens != nil && (*c.MaxTokens < 1 || *c.MaxTokens > 16384) {
		return fmt.Errorf("max_tokens %d outside [1, 16384]", *c.MaxTokens)
	}
	if c.Retries != nil && (*c.Retries < 0 || *c.Retries > 10) {
		return fmt.Errorf("retries %d outside [0, 10]", *c.Retries)
	}
	return nil
}

// clone returns a deep copy so snapshots don't alias caller state.
func (c *AgentConfig) clone() *AgentConfig {
	if c == nil {
		return nil
	}
	out := &AgentConfig{SystemPrompt: c.SystemPrompt, CustomRole: c.CustomRole}
	if c.Temperature != nil {
		v := *c.Temperature
		out.Temperature = &v
	}
	if c.MaxTokens != nil {
		v := *c.MaxTokens
		out.MaxTokens = &v
	}
	if c.Retries != nil {
		v := *c.Retries
		out.Retries = &v
	}
	return out
}

// NodeData holds the display and configuration data for a node.
type NodeData struct {
	Role        string       `json:"role"`
	Model       string       `json:"model"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	Config      *AgentConfig `json:"config,omitempty"`
}

// Node represents a single agent in the editor graph.
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// EdgeTypeConditional marks an edge carrying a condition, rendered with
// distinct styling.
const EdgeTypeConditional = "conditional"

// Edge represents a directed connection between two nodes.
// Edges have no identity beyond (source, target, index) and exist only as
// part of the graph snapshot.
type Edge struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Condition string `json:"condition,omitempty"`
	Type      string `json:"type,omitempty"`
}
