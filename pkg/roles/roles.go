// Package roles provides display and default-model metadata for agent roles.
//
// A fixed set of roles ships with the editor. Unknown roles resolve to a
// generic "custom" appearance rather than failing, so designs produced by
// newer backends still render.
package roles

import "sync"

// Meta describes how a role is presented and which model it defaults to.
type Meta struct {
	// Role is the canonical role tag (e.g. "researcher").
	Role string

	// DisplayName is the human-readable label shown on the node.
	DisplayName string

	// DefaultModel is the model identifier assigned to new nodes of this role.
	DefaultModel string

	// Description is a one-line summary of what the role does.
	Description string

	// Accent is the hex color used for the node border.
	Accent string

	// Custom is true for roles registered at runtime rather than shipped.
	Custom bool
}

// registry is a thread-safe role metadata registry.
// It uses sync.RWMutex for optimal read-heavy workloads.
type registry struct {
	mu      sync.RWMutex
	entries map[string]Meta
}

var defaultRegistry = &registry{entries: builtins()}

// builtinTags records the shipped role set so Register can tell
// overwrites apart from new custom roles.
var builtinTags = func() map[string]bool {
	tags := make(map[string]bool)
	for role := range builtins() {
		tags[role] = true
	}
	return tags
}()

// builtins returns the shipped role set.
func builtins() map[string]Meta {
	metas := []Meta{
		{Role: "researcher", DisplayName: "Researcher", DefaultModel: "gpt-4o", Description: "Gathers and synthesizes background information", Accent: "#3b82f6"},
		{Role: "planner", DisplayName: "Planner", DefaultModel: "gpt-4o", Description: "Breaks the task into ordered steps", Accent: "#8b5cf6"},
		{Role: "coder", DisplayName: "Coder", DefaultModel: "claude-sonnet-4", Description: "Writes and edits code", Accent: "#10b981"},
		{Role: "reviewer", DisplayName: "Reviewer", DefaultModel: "claude-sonnet-4", Description: "Reviews output for correctness", Accent: "#f59e0b"},
		{Role: "critic", DisplayName: "Critic", DefaultModel: "gpt-4o-mini", Description: "Challenges assumptions and finds gaps", Accent: "#ef4444"},
		{Role: "summarizer", DisplayName: "Summarizer", DefaultModel: "gpt-4o-mini", Description: "Condenses intermediate output", Accent: "#06b6d4"},
		{Role: "writer", DisplayName: "Writer", DefaultModel: "gpt-4o", Description: "Produces the final prose deliverable", Accent: "#ec4899"},
		{Role: "analyst", DisplayName: "Analyst", DefaultModel: "gpt-4o", Description: "Interprets data and draws conclusions", Accent: "#84cc16"},
	}
	m := make(map[string]Meta, len(metas))
	for _, meta := range metas {
		m[meta.Role] = meta
	}
	return m
}

// Lookup returns the metadata for a role.
// Unknown roles return a "custom" fallback with the role itself as the
// display name; the second return reports whether the role was known.
func Lookup(role string) (Meta, bool) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	if meta, ok := defaultRegistry.entries[role]; ok {
		return meta, true
	}
	return Meta{
		Role:         role,
		DisplayName:  role,
		DefaultModel: "gpt-4o-mini",
		Description:  "User-defined role",
		Accent:       "#6b7280",
		Custom:       true,
	}, false
}

// Register adds or replaces a role's metadata.
// Registered roles are marked Custom unless they overwrite a builtin.
func Register(meta Meta) {
	if !builtinTags[meta.Role] {
		meta.Custom = true
	}

	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.entries[meta.Role] = meta
}

// Known returns the canonical tags of all registered roles.
func Known() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	tags := make([]string, 0, len(defaultRegistry.entries))
	for role := range defaultRegistry.entries {
		tags = append(tags, role)
	}
	return tags
}
