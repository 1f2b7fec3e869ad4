// Package flow holds the in-memory graph the pipeline editor mutates.
//
// A Flow is the authoritative node/edge collection behind the canvas.
// Mutations are explicit (add, update, delete, connect) and synchronous;
// nothing here talks to the network.
package flow

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Maroco0109/AgentForge-sub000/pkg/roles"
)

// Default placement for newly added nodes: vertical stacking below the
// previous node with a small horizontal jitter so stacked nodes don't
// hide each other completely.
const (
	baseX        = 400.0
	baseY        = 80.0
	ySpacing     = 120.0
	jitterSpread = 80.0
)

// Flow is a mutable node/edge collection for the visual editor.
// Use New to create a flow, then mutate it through the methods below.
//
// Flow is NOT thread-safe. The editor applies all mutations from a single
// goroutine against the latest snapshot; wrap externally if you need
// concurrent access.
//
// Example:
//
//	f := flow.New()
//	a := f.AddNode("researcher")
//	b := f.AddNode("writer")
//	f.Connect(a.ID, b.ID)
type Flow struct {
	nodes    []Node
	edges    []Edge
	selected string
}

// New creates an empty flow.
func New() *Flow {
	return &Flow{}
}

// AddNode creates a node for the given role and appends it to the flow.
// The node gets a fresh unique id, a display name derived from the role
// and id suffix, the role's default model, a stacked position, and status
// idle. AddNode always succeeds.
func (f *Flow) AddNode(role string) Node {
	id := role + "-" + uuid.NewString()[:8]
	meta, known := roles.Lookup(role)

	suffix := id[strings.LastIndex(id, "-")+1:]
	node := Node{
		ID: id,
		Position: Position{
			X: baseX + jitter(id),
			Y: baseY + float64(len(f.nodes))*ySpacing,
		},
		Data: NodeData{
			Role:        role,
			Model:       meta.DefaultModel,
			Name:        meta.DisplayName + " " + suffix,
			Description: meta.Description,
			Status:      StatusIdle,
		},
	}
	if !known {
		node.Data.Config = &AgentConfig{CustomRole: true}
	}
	f.nodes = append(f.nodes, node)
	return node
}

// jitter derives a horizontal offset in [-jitterSpread/2, jitterSpread/2)
// from the node id, so placement is stable for a given id.
func jitter(id string) float64 {
	var h uint32
	for i := 0; i < len(id); i++ {
		h = h*31 + uint32(id[i])
	}
	return float64(h%uint32(jitterSpread)) - jitterSpread/2
}

// NodePatch describes a partial update to a node's data.
// Nil fields are left untouched.
type NodePatch struct {
	Role        *string
	Model       *string
	Name        *string
	Description *string
	Status      *Status
	Config      *AgentConfig
}

// UpdateNode merges the patch into the node's data.
// An unknown node id is a silent no-op.
func (f *Flow) UpdateNode(id string, patch NodePatch) {
	for i := range f.nodes {
		if f.nodes[i].ID != id {
			continue
		}
		data := &f.nodes[i].Data
		if patch.Role != nil {
			data.Role = *patch.Role
		}
		if patch.Model != nil {
			data.Model = *patch.Model
		}
		if patch.Name != nil {
			data.Name = *patch.Name
		}
		if patch.Description != nil {
			data.Description = *patch.Description
		}
		if patch.Status != nil {
			data.Status = *patch.Status
		}
		if patch.Config != nil {
			data.Config = patch.Config.clone()
		}
		return
	}
}

// MoveNode updates a node's canvas position. Unknown ids are ignored.
func (f *Flow) MoveNode(id string, pos Position) {
	for i := range f.nodes {
		if f.nodes[i].ID == id {
			f.nodes[i].Position = pos
			return
		}
	}
}

// DeleteNode removes the node and every edge touching it.
// Selection is cleared if the deleted node was selected.
func (f *Flow) DeleteNode(id string) {
	kept := f.nodes[:0]
	for _, n := range f.nodes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	f.nodes = kept

	keptEdges := f.edges[:0]
	for _, e := range f.edges {
		if e.Source != id && e.Target != id {
			keptEdges = append(keptEdges, e)
		}
	}
	f.edges = keptEdges

	if f.selected == id {
		f.selected = ""
	}
}

// Connect appends an edge from source to target.
// Duplicate edges between the same pair are allowed; Validate reports
// them as warnings but Connect never rejects.
func (f *Flow) Connect(source, target string) {
	f.edges = append(f.edges, Edge{Source: source, Target: target})
}

// ConnectConditional appends an edge carrying a condition string of the
// form "<field> <op> <number>". The condition is stored verbatim; parsing
// happens at validation and execution time.
func (f *Flow) ConnectConditional(source, target, condition string) {
	f.edges = append(f.edges, Edge{
		Source:    source,
		Target:    target,
		Condition: condition,
		Type:      EdgeTypeConditional,
	})
}

// Disconnect removes every edge from source to target.
func (f *Flow) Disconnect(source, target string) {
	kept := f.edges[:0]
	for _, e := range f.edges {
		if e.Source != source || e.Target != target {
			kept = append(kept, e)
		}
	}
	f.edges = kept
}

// Select marks a node as selected. Selecting "" clears the selection.
func (f *Flow) Select(id string) {
	f.selected = id
}

// Selected returns the selected node id, or "" when nothing is selected.
func (f *Flow) Selected() string {
	return f.selected
}

// Node returns the node with the given id and whether it exists.
func (f *Flow) Node(id string) (Node, bool) {
	for _, n := range f.nodes {
		if n.ID == id {
			n.Data.Config = n.Data.Config.clone()
			return n, true
		}
	}
	return Node{}, false
}

// Len returns the number of nodes.
func (f *Flow) Len() int {
	return len(f.nodes)
}

// ClearAll empties nodes, edges, and selection.
func (f *Flow) ClearAll() {
	f.nodes = nil
	f.edges = nil
	f.selected = ""
}

// Snapshot returns copies of the node and edge collections.
// The copies do not alias the flow's internal state.
func (f *Flow) Snapshot() ([]Node, []Edge) {
	nodes := make([]Node, len(f.nodes))
	for i, n := range f.nodes {
		n.Data.Config = n.Data.Config.clone()
		nodes[i] = n
	}
	edges := make([]Edge, len(f.edges))
	copy(edges, f.edges)
	return nodes, edges
}

// Load replaces the flow's contents with the given nodes and edges,
// clearing any selection. Used when opening a saved template or a
// backend design proposal.
func (f *Flow) Load(nodes []Node, edges []Edge) {
	f.nodes = make([]Node, len(nodes))
	copy(f.nodes, nodes)
	f.edges = make([]Edge, len(edges))
	copy(f.edges, edges)
	f.selected = ""
}
