package dagrelayout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/dagre/graphlib"
	"oss.terrastruct.com/dagre/lib/go2"
)

func TestNormalizeRoundTrip(t *testing.T) {
	g := NewGraph()
	g.SetNode("a", &NodeLabel{Rank: go2.Pointer(0)})
	g.SetNode("b", &NodeLabel{Rank: go2.Pointer(3)})
	g.SetEdge("a", "b", &EdgeLabel{Weight: 2})

	normalizeRun(g)

	assert.Equal(t, 4, g.NodeCount())
	assert.False(t, g.HasEdge("a", "b"))
	for _, e := range g.Edges() {
		span := *g.Node(e.W).Rank - *g.Node(e.V).Rank
		assert.Equal(t, 1, span, e.String())
		assert.Equal(t, 2.0, g.EdgeKeyLabel(e).Weight, e.String())
	}
	assert.Len(t, g.Label().DummyChains, 1)

	// give the dummies coordinates, as position would
	v := g.Label().DummyChains[0]
	for i := 0; g.Node(v).Dummy != ""; i++ {
		node := g.Node(v)
		node.X = float64(10 + i)
		node.Y = float64(100 + i)
		v = g.Successors(v)[0]
	}

	normalizeUndo(g)

	assert.Equal(t, 2, g.NodeCount())
	edge := g.Edge("a", "b")
	assert.NotNil(t, edge)
	assert.Len(t, edge.Points, 2)
	assert.Equal(t, 10.0, edge.Points[0].X)
	assert.Equal(t, 100.0, edge.Points[0].Y)
	assert.Equal(t, 11.0, edge.Points[1].X)
	assert.Equal(t, 101.0, edge.Points[1].Y)
}

func TestNormalizeParallelEdgesKeepNames(t *testing.T) {
	g := NewGraph()
	g.SetNode("a", &NodeLabel{Rank: go2.Pointer(0)})
	g.SetNode("b", &NodeLabel{Rank: go2.Pointer(3)})
	g.SetEdge("a", "b", &EdgeLabel{Weight: 1})
	g.SetNamedEdge("a", "b", "x", &EdgeLabel{Weight: 2})

	normalizeRun(g)

	// two chains of two dummies each
	assert.Equal(t, 6, g.NodeCount())
	assert.Len(t, g.Label().DummyChains, 2)
	var named int
	for _, e := range g.Edges() {
		span := *g.Node(e.W).Rank - *g.Node(e.V).Rank
		assert.Equal(t, 1, span, e.String())
		if e.Name == "x" {
			named++
			assert.Equal(t, 2.0, g.EdgeKeyLabel(e).Weight, e.String())
		} else {
			assert.Equal(t, 1.0, g.EdgeKeyLabel(e).Weight, e.String())
		}
	}
	assert.Equal(t, 3, named)

	normalizeUndo(g)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 1.0, g.Edge("a", "b").Weight)
	named2 := g.EdgeKeyLabel(graphlib.EdgeKey{V: "a", W: "b", Name: "x"})
	assert.NotNil(t, named2)
	assert.Equal(t, 2.0, named2.Weight)
}

func TestNormalizeLabelDummy(t *testing.T) {
	g := NewGraph()
	g.SetNode("a", &NodeLabel{Rank: go2.Pointer(0)})
	g.SetNode("b", &NodeLabel{Rank: go2.Pointer(4)})
	g.SetEdge("a", "b", &EdgeLabel{
		Weight:    1,
		Width:     30,
		Height:    10,
		LabelPos:  "r",
		LabelRank: go2.Pointer(2),
	})

	normalizeRun(g)

	var labelDummies []string
	for _, v := range g.Nodes() {
		if g.Node(v).Dummy == dummyEdgeLabel {
			labelDummies = append(labelDummies, v)
		}
	}
	assert.Len(t, labelDummies, 1)
	node := g.Node(labelDummies[0])
	assert.Equal(t, 2, *node.Rank)
	assert.Equal(t, 30.0, node.Width)
	assert.Equal(t, 10.0, node.Height)
	assert.Equal(t, "r", node.LabelPos)

	node.X = 55
	node.Y = 77

	normalizeUndo(g)

	edge := g.Edge("a", "b")
	assert.NotNil(t, edge.X)
	assert.Equal(t, 55.0, *edge.X)
	assert.Equal(t, 77.0, *edge.Y)
}

func TestNormalizeSkipsUnitEdges(t *testing.T) {
	g := NewGraph()
	g.SetNode("a", &NodeLabel{Rank: go2.Pointer(0)})
	g.SetNode("b", &NodeLabel{Rank: go2.Pointer(1)})
	g.SetEdge("a", "b", &EdgeLabel{Weight: 1})

	normalizeRun(g)
	assert.Equal(t, 2, g.NodeCount())
	assert.True(t, g.HasEdge("a", "b"))
	assert.Empty(t, g.Label().DummyChains)
}
