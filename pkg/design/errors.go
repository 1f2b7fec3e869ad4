package design

import "errors"

// Sentinel errors for graph-to-design conversion.
var (
	// ErrEmptyGraph indicates conversion was attempted with no nodes.
	// At least one agent is required.
	ErrEmptyGraph = errors.New("graph has no nodes")

	// ErrCycleDetected indicates the edge set is not a DAG.
	// A design is never truncated to its acyclic portion.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrUnknownNode indicates an edge references a node id not in the graph.
	ErrUnknownNode = errors.New("edge references unknown node id")
)

// Sentinel errors for design-to-graph conversion.
var (
	// ErrDuplicateAgentName indicates two agents share a name, making
	// name-based edge endpoints ambiguous.
	ErrDuplicateAgentName = errors.New("duplicate agent name")

	// ErrUnknownAgentName indicates an edge endpoint matches no agent.
	ErrUnknownAgentName = errors.New("edge references unknown agent name")
)
