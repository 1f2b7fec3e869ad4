// Package design converts between the editor's graph and the backend's
// design-proposal payload.
//
// A design proposal is the wire form of a pipeline: agents in a
// topologically valid order, plus an explicit edge list only when the
// graph has fan-out or conditioned edges. Without an edge list the
// backend infers a strict chain from array order.
//
// FromFlow and ToFlow are pure functions over their inputs; a conversion
// error never leaves partial output behind.
package design

import "github.com/Maroco0109/AgentForge-sub000/pkg/flow"

// Agent is one agent specification within a design proposal.
// Optional fields use omitempty/pointer semantics: the backend schema
// distinguishes "unset" from an explicit default.
type Agent struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Model       string `json:"model"`
	Description string `json:"description,omitempty"`

	SystemPrompt string   `json:"system_prompt,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MaxTokens    *int     `json:"max_tokens,omitempty"`
	Retries      *int     `json:"retries,omitempty"`
	CustomRole   bool     `json:"custom_role,omitempty"`
}

// Edge is a directed connection in a design proposal.
// Source and Target are agent names, not node ids; each must match
// exactly one entry in the design's agent list.
type Edge struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Condition string `json:"condition,omitempty"`
}

// Design is the backend-facing serialization of a pipeline graph.
type Design struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Agents      []Agent `json:"agents"`
	Edges       []Edge  `json:"edges,omitempty"`
}

// agentFromNode copies node data into an agent spec, carrying extended
// fields only when actually set.
func agentFromNode(n flow.Node) Agent {
	a := Agent{
		Name:        n.Data.Name,
		Role:        n.Data.Role,
		Model:       n.Data.Model,
		Description: n.Data.Description,
	}
	if cfg := n.Data.Config; cfg != nil {
		a.SystemPrompt = cfg.SystemPrompt
		a.CustomRole = cfg.CustomRole
		if cfg.Temperature != nil {
			v := *cfg.Temperature
			a.Temperature = &v
		}
		if cfg.MaxTokens != nil {
			v := *cfg.MaxTokens
			a.MaxTokens = &v
		}
		if cfg.Retries != nil {
			v := *cfg.Retries
			a.Retries = &v
		}
	}
	return a
}

// configFromAgent rebuilds the optional node config, returning nil when
// the agent carries no extended fields.
func configFromAgent(a Agent) *flow.AgentConfig {
	if a.SystemPrompt == "" && a.Temperature == nil && a.MaxTokens == nil && a.Retries == nil && !a.CustomRole {
		return nil
	}
	cfg := &flow.AgentConfig{SystemPrompt: a.SystemPrompt, CustomRole: a.CustomRole}
	if a.Temperature != nil {
		v := *a.Temperature
		cfg.Temperature = &v
	}
	if a.MaxTokens != nil {
		v := *a.MaxTokens
		cfg.MaxTokens = &v
	}
	if a.Retries != nil {
		v := *a.Retries
		cfg.Retries = &v
	}
	return cfg
}
