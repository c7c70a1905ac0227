package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inheritance builds Container <- Controls/Button <- Controls/IconButton and
// Container <- Text, plus an unrelated Screens/Main.
func inheritance(t *testing.T) *Graph[string] {
	t.Helper()
	g := NewGraph[string]()
	for _, id := range []string{"Container", "Text", "Controls/Button", "Controls/IconButton", "Main"} {
		g.AddNode(id, id)
	}
	require.NoError(t, g.AddEdge("Container", "Controls/Button"))
	require.NoError(t, g.AddEdge("Controls/Button", "Controls/IconButton"))
	require.NoError(t, g.AddEdge("Container", "Text"))
	return g
}

func TestGraph_AddNodeAndEdge(t *testing.T) {
	g := inheritance(t)
	assert.Equal(t, 5, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())

	g.AddNode("Text", "replaced")
	n, ok := g.GetNode("Text")
	require.True(t, ok)
	assert.Equal(t, "replaced", n.Data)
	assert.Equal(t, 5, g.NodeCount())
}

func TestGraph_AddEdge_Invalid(t *testing.T) {
	g := NewGraph[int]()
	g.AddNode("a", 1)

	assert.Error(t, g.AddEdge("a", "missing"))
	assert.Error(t, g.AddEdge("missing", "a"))
	assert.Error(t, g.AddEdge("a", "a"))
}

func TestGraph_DuplicateEdges(t *testing.T) {
	g := inheritance(t)
	require.NoError(t, g.AddEdge("Container", "Text"))
	assert.Equal(t, 3, g.EdgeCount())
	assert.Len(t, g.GetChildren("Container"), 2)
}

func TestGraph_Children(t *testing.T) {
	g := inheritance(t)
	assert.ElementsMatch(t, []string{"Controls/Button", "Text"}, g.GetChildren("Container"))
}

func TestGraph_HasCycle(t *testing.T) {
	g := inheritance(t)
	hasCycle, _ := g.HasCycle()
	assert.False(t, hasCycle)

	require.NoError(t, g.AddEdge("Controls/IconButton", "Container"))
	hasCycle, path := g.HasCycle()
	assert.True(t, hasCycle)
	require.NotEmpty(t, path)
	assert.Equal(t, path[0], path[len(path)-1])
}

func TestGraph_GetExecutionLevels_WithCycle(t *testing.T) {
	g := NewGraph[string]()
	g.AddNode("A", "")
	g.AddNode("B", "")
	require.NoError(t, g.AddEdge("A", "B"))
	require.NoError(t, g.AddEdge("B", "A"))

	_, err := g.GetExecutionLevels()
	assert.Error(t, err)
}

func TestGraph_GetExecutionLevels(t *testing.T) {
	levels, err := inheritance(t).GetExecutionLevels()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Container", "Main"},
		{"Controls/Button", "Text"},
		{"Controls/IconButton"},
	}, levels)
}

func TestGraph_GetExecutionLevels_Empty(t *testing.T) {
	levels, err := NewGraph[string]().GetExecutionLevels()
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestGraph_GetAffectedNodes(t *testing.T) {
	g := inheritance(t)
	assert.Equal(t,
		[]string{"Controls/Button", "Controls/IconButton"},
		g.GetAffectedNodes([]string{"Controls/Button", "Unknown"}))
	assert.Equal(t,
		[]string{"Container", "Controls/Button", "Controls/IconButton", "Text"},
		g.GetAffectedNodes([]string{"Container"}))
}

func TestGraph_GetUpstreamNodes(t *testing.T) {
	g := inheritance(t)
	assert.Equal(t, []string{"Container", "Controls/Button"}, g.GetUpstreamNodes("Controls/IconButton"))
	assert.Empty(t, g.GetUpstreamNodes("Main"))
}

func TestGraph_GetRoots(t *testing.T) {
	assert.Equal(t, []string{"Container", "Main"}, inheritance(t).GetRoots())
}

func TestGraph_Subgraph(t *testing.T) {
	sub := inheritance(t).Subgraph([]string{"Controls/Button", "Controls/IconButton", "Ghost"})
	assert.Equal(t, 2, sub.NodeCount())
	assert.Equal(t, 1, sub.EdgeCount())
	assert.Equal(t, []string{"Controls/Button"}, sub.GetRoots())

	levels, err := sub.GetExecutionLevels()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Controls/Button"}, {"Controls/IconButton"}}, levels)
}
