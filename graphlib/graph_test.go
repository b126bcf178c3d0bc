package graphlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/dagre/graphlib"
)

func newTestGraph() *graphlib.Graph[string, int, string] {
	return graphlib.New[string, int, string](graphlib.Options{
		Directed:   true,
		Multigraph: true,
		Compound:   true,
	})
}

func TestNodeInsertionOrder(t *testing.T) {
	g := newTestGraph()
	for _, v := range []string{"c", "a", "b"} {
		g.SetNode(v, v)
	}
	assert.Equal(t, []string{"c", "a", "b"}, g.Nodes())

	// replacing a label must not move the node
	g.SetNode("a", "a2")
	assert.Equal(t, []string{"c", "a", "b"}, g.Nodes())
	assert.Equal(t, "a2", g.Node("a"))

	g.RemoveNode("a")
	assert.Equal(t, []string{"c", "b"}, g.Nodes())
	g.SetNode("a", "back")
	assert.Equal(t, []string{"c", "b", "a"}, g.Nodes())
}

func TestParallelEdges(t *testing.T) {
	g := newTestGraph()
	e1 := g.SetEdge("a", "b", 1)
	e2 := g.SetNamedEdge("a", "b", "second", 2)
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 1, g.EdgeKeyLabel(e1))
	assert.Equal(t, 2, g.EdgeKeyLabel(e2))
	assert.Equal(t, []graphlib.EdgeKey{e1, e2}, g.OutEdgesTo("a", "b"))

	// endpoints were auto-created
	assert.True(t, g.HasNode("a"))
	assert.True(t, g.HasNode("b"))
}

func TestNamedEdgeOnNonMultigraph(t *testing.T) {
	g := graphlib.New[string, int, string](graphlib.Options{Directed: true})
	e1 := g.SetEdge("a", "b", 1)
	e2 := g.SetNamedEdge("a", "b", "second", 2)

	// the name is dropped, so the named set updates the plain edge
	assert.Equal(t, e1, e2)
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 2, g.Edge("a", "b"))
}

func TestAdjacency(t *testing.T) {
	g := newTestGraph()
	g.SetEdge("a", "b", 0)
	g.SetEdge("b", "c", 0)
	g.SetEdge("a", "c", 0)

	assert.Equal(t, []string{"b", "c"}, g.Successors("a"))
	assert.Equal(t, []string{"b", "a"}, g.Predecessors("c"))
	assert.Equal(t, []string{"b", "a"}, g.Neighbors("c"))
	assert.Equal(t, []string{"a"}, g.Sources())
	assert.Equal(t, []string{"c"}, g.Sinks())

	g.RemoveEdge("a", "b")
	assert.Equal(t, []string{"c"}, g.Successors("a"))
}

func TestRemoveNodeDetachesEdgesAndChildren(t *testing.T) {
	g := newTestGraph()
	g.SetNode("p", "")
	g.SetNode("x", "")
	g.SetNode("y", "")
	assert.NoError(t, g.SetParent("x", "p"))
	assert.NoError(t, g.SetParent("y", "p"))
	g.SetEdge("x", "p", 0)

	g.RemoveNode("p")
	assert.False(t, g.HasNode("p"))
	assert.Equal(t, 0, g.EdgeCount())
	// children become top-level
	assert.Equal(t, "", g.Parent("x"))
	assert.Equal(t, []string{"x", "y"}, g.Children(""))
}

func TestSetParentCycleIsRejected(t *testing.T) {
	g := newTestGraph()
	g.SetNode("a", "")
	g.SetNode("b", "")
	assert.NoError(t, g.SetParent("b", "a"))
	assert.Error(t, g.SetParent("a", "b"))
	assert.Error(t, g.SetParent("a", "a"))
}

func TestUndirectedCanonicalKeys(t *testing.T) {
	g := graphlib.New[struct{}, int, struct{}](graphlib.Options{})
	g.SetEdge("b", "a", 7)
	assert.True(t, g.HasEdge("a", "b"))
	assert.Equal(t, 7, g.Edge("a", "b"))
	assert.Equal(t, []string{"a"}, g.Neighbors("b"))
	assert.Equal(t, []string{"b"}, g.Neighbors("a"))
}

func TestTraversalOrders(t *testing.T) {
	g := newTestGraph()
	g.SetEdge("a", "b", 0)
	g.SetEdge("a", "c", 0)
	g.SetEdge("b", "d", 0)

	assert.Equal(t, []string{"a", "b", "d", "c"}, graphlib.Preorder(g, "a"))
	assert.Equal(t, []string{"d", "b", "c", "a"}, graphlib.Postorder(g, "a"))
}
