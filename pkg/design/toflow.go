package design

import (
	"fmt"

	"github.com/Maroco0109/AgentForge-sub000/pkg/flow"
)

// Layout geometry for ToFlow. Levels stack vertically; nodes within a
// level spread horizontally, centered on centerX.
const (
	centerX      = 400.0
	topY         = 80.0
	levelSpacing = 140.0
	nodeSpacing  = 220.0
)

// ToFlow materializes a design proposal as a laid-out editor graph.
//
// One node is created per agent, in array order, with status idle. A
// design without an explicit edge list renders as a strict vertical
// chain. With an edge list, endpoints are resolved by agent name
// (ErrDuplicateAgentName / ErrUnknownAgentName on ambiguity), conditioned
// edges get the conditional type, and positions come from a multi-root
// BFS leveling: a node's level is its depth from whichever root reaches
// it first. First visit wins; later, longer paths never demote a node.
//
// A design with no agents renders as an empty graph with a nil error —
// some callers feed this into a read-only preview and expect "nothing to
// draw", not a failure.
func ToFlow(d Design) ([]flow.Node, []flow.Edge, error) {
	if len(d.Agents) == 0 {
		return nil, nil, nil
	}

	nodes := make([]flow.Node, len(d.Agents))
	idByName := make(map[string]string, len(d.Agents))
	for i, a := range d.Agents {
		id := fmt.Sprintf("node-%d", i+1)
		nodes[i] = flow.Node{
			ID: id,
			Data: flow.NodeData{
				Role:        a.Role,
				Model:       a.Model,
				Name:        a.Name,
				Description: a.Description,
				Status:      flow.StatusIdle,
				Config:      configFromAgent(a),
			},
		}
		if len(d.Edges) > 0 {
			if _, dup := idByName[a.Name]; dup {
				return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateAgentName, a.Name)
			}
		}
		idByName[a.Name] = id
	}

	if len(d.Edges) == 0 {
		// Strict chain: single column, consecutive agents connected.
		for i := range nodes {
			nodes[i].Position = flow.Position{X: centerX, Y: topY + float64(i)*levelSpacing}
		}
		edges := make([]flow.Edge, 0, len(nodes)-1)
		for i := 0; i < len(nodes)-1; i++ {
			edges = append(edges, flow.Edge{Source: nodes[i].ID, Target: nodes[i+1].ID})
		}
		return nodes, edges, nil
	}

	edges := make([]flow.Edge, 0, len(d.Edges))
	for _, e := range d.Edges {
		src, ok := idByName[e.Source]
		if !ok {
			return nil, nil, fmt.Errorf("%w: source %q", ErrUnknownAgentName, e.Source)
		}
		dst, ok := idByName[e.Target]
		if !ok {
			return nil, nil, fmt.Errorf("%w: target %q", ErrUnknownAgentName, e.Target)
		}
		fe := flow.Edge{Source: src, Target: dst, Condition: e.Condition}
		if e.Condition != "" {
			fe.Type = flow.EdgeTypeConditional
		}
		edges = append(edges, fe)
	}

	applyLayout(nodes, edges)
	return nodes, edges, nil
}

// applyLayout assigns positions from a layered BFS over the edge list.
func applyLayout(nodes []flow.Node, edges []flow.Edge) {
	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, e := range edges {
		children[e.Source] = append(children[e.Source], e.Target)
		hasParent[e.Target] = true
	}

	// Multi-root BFS; roots enqueue in node order so leveling is stable.
	level := make(map[string]int, len(nodes))
	var queue []string
	for _, n := range nodes {
		if !hasParent[n.ID] {
			level[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}

	maxLevel := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if _, visited := level[child]; visited {
				continue
			}
			level[child] = level[id] + 1
			if level[child] > maxLevel {
				maxLevel = level[child]
			}
			queue = append(queue, child)
		}
	}

	// Nodes unreachable from any root (the design is cyclic at the edge
	// layer) still get drawn, on a row of their own below everything else.
	orphanLevel := maxLevel + 1
	if len(level) == 0 {
		orphanLevel = 0
	}
	for _, n := range nodes {
		if _, ok := level[n.ID]; !ok {
			level[n.ID] = orphanLevel
		}
	}

	// Group by level in node order, then spread each row evenly around
	// the horizontal origin.
	byLevel := make(map[int][]int)
	for i, n := range nodes {
		byLevel[level[n.ID]] = append(byLevel[level[n.ID]], i)
	}
	for lvl, idxs := range byLevel {
		width := float64(len(idxs)-1) * nodeSpacing
		for j, i := range idxs {
			nodes[i].Position = flow.Position{
				X: centerX - width/2 + float64(j)*nodeSpacing,
				Y: topY + float64(lvl)*levelSpacing,
			}
		}
	}
}
