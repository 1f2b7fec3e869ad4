package design

import (
	"fmt"
	"strings"

	"github.com/Maroco0109/AgentForge-sub000/pkg/flow"
)

// FromFlow serializes the editor graph into a design proposal.
//
// Agents are emitted in topological order (Kahn's algorithm; ties break in
// node insertion order via a FIFO frontier). The explicit edge list is
// attached only when the graph has fan-out or any conditioned edge;
// otherwise execution order is implied by array order as a strict chain.
//
// Errors: ErrEmptyGraph for zero nodes, ErrUnknownNode for edges touching
// ids outside the graph, ErrCycleDetected (naming the nodes involved)
// when no topological order exists. On error no design is returned.
func FromFlow(nodes []flow.Node, edges []flow.Edge) (Design, error) {
	if len(nodes) == 0 {
		return Design{}, ErrEmptyGraph
	}

	byID := make(map[string]flow.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	for _, e := range edges {
		if _, ok := byID[e.Source]; !ok {
			return Design{}, fmt.Errorf("%w: source %q", ErrUnknownNode, e.Source)
		}
		if _, ok := byID[e.Target]; !ok {
			return Design{}, fmt.Errorf("%w: target %q", ErrUnknownNode, e.Target)
		}
	}

	order, err := topoSort(nodes, edges)
	if err != nil {
		return Design{}, err
	}

	d := Design{Agents: make([]Agent, 0, len(nodes))}
	for _, id := range order {
		d.Agents = append(d.Agents, agentFromNode(byID[id]))
	}

	if needsEdgeList(edges) {
		d.Edges = make([]Edge, 0, len(edges))
		for _, e := range edges {
			d.Edges = append(d.Edges, Edge{
				Source:    byID[e.Source].Data.Name,
				Target:    byID[e.Target].Data.Name,
				Condition: e.Condition,
			})
		}
	}

	return d, nil
}

// needsEdgeList reports whether execution order cannot be implied by
// array order alone: any source with out-degree above one, or any edge
// carrying a non-empty condition.
func needsEdgeList(edges []flow.Edge) bool {
	outDegree := make(map[string]int)
	for _, e := range edges {
		if e.Condition != "" {
			return true
		}
		outDegree[e.Source]++
		if outDegree[e.Source] > 1 {
			return true
		}
	}
	return false
}

// topoSort orders node ids with Kahn's algorithm. The frontier is a FIFO
// queue seeded in node insertion order, which fixes tie-breaking among
// nodes of equal depth. Duplicate edges contribute to in-degree on each
// occurrence and cancel out symmetrically when their source is popped.
func topoSort(nodes []flow.Node, edges []flow.Edge) ([]string, error) {
	inDegree := make(map[string]int, len(nodes))
	children := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}
	for _, e := range edges {
		children[e.Source] = append(children[e.Source], e.Target)
		inDegree[e.Target]++
	}

	var frontier []string
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			frontier = append(frontier, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		order = append(order, id)

		for _, child := range children[id] {
			inDegree[child]--
			if inDegree[child] == 0 {
				frontier = append(frontier, child)
			}
		}
	}

	if len(order) < len(nodes) {
		// Everything not ordered sits on or behind a cycle.
		var stuck []string
		ordered := make(map[string]bool, len(order))
		for _, id := range order {
			ordered[id] = true
		}
		for _, n := range nodes {
			if !ordered[n.ID] {
				stuck = append(stuck, n.ID)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(stuck, ", "))
	}

	return order, nil
}
