package design

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maroco0109/AgentForge-sub000/pkg/flow"
)

// node builds a minimal flow node for conversion tests.
func node(id, name, role string) flow.Node {
	return flow.Node{
		ID: id,
		Data: flow.NodeData{
			Role:   role,
			Model:  "gpt-4o",
			Name:   name,
			Status: flow.StatusIdle,
		},
	}
}

// TestFromFlow_EmptyGraph requires at least one agent.
func TestFromFlow_EmptyGraph(t *testing.T) {
	_, err := FromFlow(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

// TestFromFlow_Chain emits agents in order and omits the edge list.
func TestFromFlow_Chain(t *testing.T) {
	nodes := []flow.Node{
		node("n1", "Planner", "planner"),
		node("n2", "Coder", "coder"),
		node("n3", "Reviewer", "reviewer"),
	}
	edges := []flow.Edge{
		{Source: "n1", Target: "n2"},
		{Source: "n2", Target: "n3"},
	}

	d, err := FromFlow(nodes, edges)
	require.NoError(t, err)
	require.Len(t, d.Agents, 3)
	assert.Equal(t, []string{"Planner", "Coder", "Reviewer"},
		[]string{d.Agents[0].Name, d.Agents[1].Name, d.Agents[2].Name})
	assert.Nil(t, d.Edges, "strict chain must rely on array order")
}

// TestFromFlow_TopologicalOrder sorts regardless of insertion order.
func TestFromFlow_TopologicalOrder(t *testing.T) {
	// Inserted out of execution order on purpose.
	nodes := []flow.Node{
		node("n3", "Reviewer", "reviewer"),
		node("n1", "Planner", "planner"),
		node("n2", "Coder", "coder"),
	}
	edges := []flow.Edge{
		{Source: "n1", Target: "n2"},
		{Source: "n2", Target: "n3"},
	}

	d, err := FromFlow(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, "Planner", d.Agents[0].Name)
	assert.Equal(t, "Coder", d.Agents[1].Name)
	assert.Equal(t, "Reviewer", d.Agents[2].Name)
}

// TestFromFlow_Cycle fails loud instead of truncating.
func TestFromFlow_Cycle(t *testing.T) {
	nodes := []flow.Node{
		node("n1", "A", "planner"),
		node("n2", "B", "coder"),
		node("n3", "C", "reviewer"),
	}
	edges := []flow.Edge{
		{Source: "n1", Target: "n2"},
		{Source: "n2", Target: "n3"},
		{Source: "n3", Target: "n1"},
	}

	_, err := FromFlow(nodes, edges)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycleDetected)
	assert.Contains(t, err.Error(), "n1")
}

// TestFromFlow_SelfLoop is the smallest cycle.
func TestFromFlow_SelfLoop(t *testing.T) {
	nodes := []flow.Node{node("n1", "A", "planner")}
	edges := []flow.Edge{{Source: "n1", Target: "n1"}}

	_, err := FromFlow(nodes, edges)
	assert.ErrorIs(t, err, ErrCycleDetected)
}

// TestFromFlow_UnknownEndpoint rejects edges outside the node set.
func TestFromFlow_UnknownEndpoint(t *testing.T) {
	nodes := []flow.Node{node("n1", "A", "planner")}
	edges := []flow.Edge{{Source: "n1", Target: "ghost"}}

	_, err := FromFlow(nodes, edges)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

// TestFromFlow_FanOut attaches the edge list with name endpoints.
func TestFromFlow_FanOut(t *testing.T) {
	nodes := []flow.Node{
		node("n1", "Splitter", "planner"),
		node("n2", "Left", "coder"),
		node("n3", "Right", "coder"),
	}
	edges := []flow.Edge{
		{Source: "n1", Target: "n2"},
		{Source: "n1", Target: "n3"},
	}

	d, err := FromFlow(nodes, edges)
	require.NoError(t, err)
	require.Len(t, d.Edges, 2)
	assert.Equal(t, "Splitter", d.Edges[0].Source)
	assert.Equal(t, "Left", d.Edges[0].Target)
	assert.Equal(t, "Splitter", d.Edges[1].Source)
	assert.Equal(t, "Right", d.Edges[1].Target)
}

// TestFromFlow_Condition attaches the edge list even without fan-out and
// carries the condition verbatim.
func TestFromFlow_Condition(t *testing.T) {
	nodes := []flow.Node{
		node("n1", "Reviewer", "reviewer"),
		node("n2", "Writer", "writer"),
	}
	edges := []flow.Edge{
		{Source: "n1", Target: "n2", Condition: "score >= 0.8", Type: flow.EdgeTypeConditional},
	}

	d, err := FromFlow(nodes, edges)
	require.NoError(t, err)
	require.Len(t, d.Edges, 1)
	assert.Equal(t, "score >= 0.8", d.Edges[0].Condition)
}

// TestFromFlow_ExtendedFields carries config fields and omits the unset
// ones from the JSON payload entirely.
func TestFromFlow_ExtendedFields(t *testing.T) {
	temp := 0.3
	n := node("n1", "Coder", "coder")
	n.Data.Config = &flow.AgentConfig{
		SystemPrompt: "be terse",
		Temperature:  &temp,
	}

	d, err := FromFlow([]flow.Node{n}, nil)
	require.NoError(t, err)

	a := d.Agents[0]
	assert.Equal(t, "be terse", a.SystemPrompt)
	require.NotNil(t, a.Temperature)
	assert.Equal(t, 0.3, *a.Temperature)
	assert.Nil(t, a.MaxTokens)

	raw, err := json.Marshal(a)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "max_tokens", "unset fields must be absent, not null")
	assert.NotContains(t, string(raw), "null")
}

// TestFromFlow_DuplicateEdges carries duplicates through verbatim; the
// backend arbitrates whether it tolerates them.
func TestFromFlow_DuplicateEdges(t *testing.T) {
	nodes := []flow.Node{
		node("n1", "A", "planner"),
		node("n2", "B", "coder"),
	}
	edges := []flow.Edge{
		{Source: "n1", Target: "n2"},
		{Source: "n1", Target: "n2"},
	}

	d, err := FromFlow(nodes, edges)
	require.NoError(t, err)
	require.Len(t, d.Edges, 2, "duplicate pair counts as fan-out")
	assert.Equal(t, d.Edges[0], d.Edges[1])
}

// TestToFlow_NoAgents renders nothing rather than failing.
func TestToFlow_NoAgents(t *testing.T) {
	nodes, edges, err := ToFlow(Design{})
	assert.NoError(t, err)
	assert.Empty(t, nodes)
	assert.Empty(t, edges)
}

// TestToFlow_Chain builds len-1 consecutive edges in a single column.
func TestToFlow_Chain(t *testing.T) {
	d := Design{Agents: []Agent{
		{Name: "A", Role: "planner", Model: "gpt-4o"},
		{Name: "B", Role: "coder", Model: "gpt-4o"},
		{Name: "C", Role: "writer", Model: "gpt-4o"},
	}}

	nodes, edges, err := ToFlow(d)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	require.Len(t, edges, 2)
	assert.Equal(t, nodes[0].ID, edges[0].Source)
	assert.Equal(t, nodes[1].ID, edges[0].Target)
	assert.Equal(t, nodes[1].ID, edges[1].Source)
	assert.Equal(t, nodes[2].ID, edges[1].Target)
	for i, n := range nodes {
		assert.Equal(t, centerX, n.Position.X, "single column")
		assert.Equal(t, topY+float64(i)*levelSpacing, n.Position.Y)
	}
	assert.Equal(t, flow.StatusIdle, nodes[0].Data.Status)
}

// TestToFlow_ParallelLayout places parallel branches on one level at
// distinct, symmetric offsets around the horizontal origin.
func TestToFlow_ParallelLayout(t *testing.T) {
	d := Design{
		Agents: []Agent{
			{Name: "A", Role: "planner", Model: "gpt-4o"},
			{Name: "B", Role: "coder", Model: "gpt-4o"},
			{Name: "C", Role: "coder", Model: "gpt-4o"},
		},
		Edges: []Edge{
			{Source: "A", Target: "B"},
			{Source: "A", Target: "C"},
		},
	}

	nodes, _, err := ToFlow(d)
	require.NoError(t, err)

	byName := make(map[string]flow.Node)
	for _, n := range nodes {
		byName[n.Data.Name] = n
	}
	b, c := byName["B"], byName["C"]

	assert.Equal(t, b.Position.Y, c.Position.Y, "same level")
	assert.NotEqual(t, b.Position.X, c.Position.X, "distinct offsets")
	assert.Equal(t, 2*centerX, b.Position.X+c.Position.X, "symmetric around center")
	assert.Equal(t, topY, byName["A"].Position.Y)
	assert.Greater(t, b.Position.Y, byName["A"].Position.Y)
}

// TestToFlow_ConditionalEdgeStyling marks conditioned edges distinctly.
func TestToFlow_ConditionalEdgeStyling(t *testing.T) {
	d := Design{
		Agents: []Agent{
			{Name: "Review", Role: "reviewer", Model: "gpt-4o"},
			{Name: "Ship", Role: "writer", Model: "gpt-4o"},
			{Name: "Rework", Role: "coder", Model: "gpt-4o"},
		},
		Edges: []Edge{
			{Source: "Review", Target: "Ship", Condition: "score >= 0.8"},
			{Source: "Review", Target: "Rework", Condition: "score < 0.8"},
		},
	}

	_, edges, err := ToFlow(d)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	for _, e := range edges {
		assert.Equal(t, flow.EdgeTypeConditional, e.Type)
		assert.NotEmpty(t, e.Condition)
	}
}

// TestToFlow_DuplicateAgentNames rejects ambiguous endpoint lookups.
func TestToFlow_DuplicateAgentNames(t *testing.T) {
	d := Design{
		Agents: []Agent{
			{Name: "Twin", Role: "coder", Model: "gpt-4o"},
			{Name: "Twin", Role: "coder", Model: "gpt-4o"},
		},
		Edges: []Edge{{Source: "Twin", Target: "Twin"}},
	}

	_, _, err := ToFlow(d)
	assert.ErrorIs(t, err, ErrDuplicateAgentName)
}

// TestToFlow_UnknownAgentName rejects unmatched edge endpoints.
func TestToFlow_UnknownAgentName(t *testing.T) {
	d := Design{
		Agents: []Agent{{Name: "A", Role: "planner", Model: "gpt-4o"}},
		Edges:  []Edge{{Source: "A", Target: "Nobody"}},
	}

	_, _, err := ToFlow(d)
	assert.ErrorIs(t, err, ErrUnknownAgentName)
}

// TestToFlow_FirstVisitLeveling keeps the first-assigned level when a
// node is reachable through paths of different lengths.
func TestToFlow_FirstVisitLeveling(t *testing.T) {
	// A -> D directly and A -> B -> C -> D. BFS visits D at depth 1 first.
	d := Design{
		Agents: []Agent{
			{Name: "A", Role: "planner", Model: "gpt-4o"},
			{Name: "B", Role: "coder", Model: "gpt-4o"},
			{Name: "C", Role: "coder", Model: "gpt-4o"},
			{Name: "D", Role: "writer", Model: "gpt-4o"},
		},
		Edges: []Edge{
			{Source: "A", Target: "D"},
			{Source: "A", Target: "B"},
			{Source: "B", Target: "C"},
			{Source: "C", Target: "D"},
		},
	}

	nodes, _, err := ToFlow(d)
	require.NoError(t, err)

	byName := make(map[string]flow.Node)
	for _, n := range nodes {
		byName[n.Data.Name] = n
	}
	assert.Equal(t, byName["B"].Position.Y, byName["D"].Position.Y,
		"D keeps its first-visit level (depth 1), never promoted to depth 3")
}

// TestToFlow_CyclicEdgeList still renders every node. DesignToFlow feeds
// a preview; a malformed payload should draw, not vanish.
func TestToFlow_CyclicEdgeList(t *testing.T) {
	d := Design{
		Agents: []Agent{
			{Name: "A", Role: "planner", Model: "gpt-4o"},
			{Name: "B", Role: "coder", Model: "gpt-4o"},
		},
		Edges: []Edge{
			{Source: "A", Target: "B"},
			{Source: "B", Target: "A"},
		},
	}

	nodes, edges, err := ToFlow(d)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
	assert.Len(t, edges, 2)
}

// TestToFlow_ExtendedFields rebuilds optional config only when present.
func TestToFlow_ExtendedFields(t *testing.T) {
	tokens := 2048
	d := Design{Agents: []Agent{
		{Name: "A", Role: "coder", Model: "gpt-4o", MaxTokens: &tokens, SystemPrompt: "think first"},
		{Name: "B", Role: "writer", Model: "gpt-4o"},
	}}

	nodes, _, err := ToFlow(d)
	require.NoError(t, err)
	require.NotNil(t, nodes[0].Data.Config)
	assert.Equal(t, 2048, *nodes[0].Data.Config.MaxTokens)
	assert.Equal(t, "think first", nodes[0].Data.Config.SystemPrompt)
	assert.Nil(t, nodes[1].Data.Config, "no extended fields, no config")
}

// agentKeys projects a design onto its (name, role, model) multiset.
func agentKeys(d Design) []string {
	keys := make([]string, 0, len(d.Agents))
	for _, a := range d.Agents {
		keys = append(keys, a.Name+"|"+a.Role+"|"+a.Model)
	}
	sort.Strings(keys)
	return keys
}

// TestRoundTrip_Stability: FromFlow -> ToFlow -> FromFlow preserves the
// multiset of names, roles, and models, for chains and branched graphs.
func TestRoundTrip_Stability(t *testing.T) {
	testCases := []struct {
		name  string
		nodes []flow.Node
		edges []flow.Edge
	}{
		{
			name: "chain",
			nodes: []flow.Node{
				node("n1", "Planner", "planner"),
				node("n2", "Coder", "coder"),
				node("n3", "Reviewer", "reviewer"),
			},
			edges: []flow.Edge{
				{Source: "n1", Target: "n2"},
				{Source: "n2", Target: "n3"},
			},
		},
		{
			name: "fan-out fan-in",
			nodes: []flow.Node{
				node("n1", "Split", "planner"),
				node("n2", "Left", "coder"),
				node("n3", "Right", "coder"),
				node("n4", "Join", "summarizer"),
			},
			edges: []flow.Edge{
				{Source: "n1", Target: "n2"},
				{Source: "n1", Target: "n3"},
				{Source: "n2", Target: "n4"},
				{Source: "n3", Target: "n4"},
			},
		},
		{
			name: "conditional branch",
			nodes: []flow.Node{
				node("n1", "Review", "reviewer"),
				node("n2", "Ship", "writer"),
				node("n3", "Rework", "coder"),
			},
			edges: []flow.Edge{
				{Source: "n1", Target: "n2", Condition: "score >= 0.8"},
				{Source: "n1", Target: "n3", Condition: "score < 0.8"},
			},
		},
		{
			name:  "single node",
			nodes: []flow.Node{node("n1", "Solo", "writer")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			first, err := FromFlow(tc.nodes, tc.edges)
			require.NoError(t, err)

			nodes, edges, err := ToFlow(first)
			require.NoError(t, err)

			second, err := FromFlow(nodes, edges)
			require.NoError(t, err)

			assert.Equal(t, agentKeys(first), agentKeys(second))
			assert.Equal(t, len(first.Edges), len(second.Edges))
		})
	}
}
