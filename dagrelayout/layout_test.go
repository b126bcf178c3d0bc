package dagrelayout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/dagre/lib/log"
)

func testCtx(t *testing.T) context.Context {
	return log.WithTB(context.Background(), t, nil)
}

func TestLayoutDagreTwoNodes(t *testing.T) {
	g := NewGraph()
	g.SetNode("a", &NodeLabel{Width: 60, Height: 40})
	g.SetNode("b", &NodeLabel{Width: 80, Height: 30})
	g.SetEdge("a", "b", &EdgeLabel{})

	err := LayoutDagre(testCtx(t), g, nil)
	assert.NoError(t, err)

	a := g.Node("a")
	b := g.Node("b")
	assert.Equal(t, a.X, b.X)
	assert.Less(t, a.Y, b.Y)

	// ranksep is halved and every edge doubled in length to reserve a label
	// rank, so a sits at y=20 and b at y=105 with one dummy rank between
	assert.Equal(t, 20.0, a.Y)
	assert.Equal(t, 105.0, b.Y)
	assert.Equal(t, 80.0, g.Label().Width)
	assert.Equal(t, 120.0, g.Label().Height)

	points := g.Edge("a", "b").Points
	assert.Len(t, points, 3)
	assert.Equal(t, a.X, points[0].X)
	assert.Equal(t, a.Y+20, points[0].Y)
	assert.Equal(t, b.X, points[2].X)
	assert.Equal(t, b.Y-15, points[2].Y)
}

func TestLayoutDagreRankDir(t *testing.T) {
	build := func(rankdir string) *Graph {
		g := NewGraph()
		g.Label().RankDir = rankdir
		g.SetNode("a", &NodeLabel{Width: 60, Height: 40})
		g.SetNode("b", &NodeLabel{Width: 60, Height: 40})
		g.SetEdge("a", "b", &EdgeLabel{})
		return g
	}

	g := build("BT")
	assert.NoError(t, LayoutDagre(testCtx(t), g, nil))
	assert.Greater(t, g.Node("a").Y, g.Node("b").Y)
	assert.Equal(t, g.Node("a").X, g.Node("b").X)

	g = build("LR")
	assert.NoError(t, LayoutDagre(testCtx(t), g, nil))
	assert.Less(t, g.Node("a").X, g.Node("b").X)
	assert.Equal(t, g.Node("a").Y, g.Node("b").Y)

	g = build("RL")
	assert.NoError(t, LayoutDagre(testCtx(t), g, nil))
	assert.Greater(t, g.Node("a").X, g.Node("b").X)
	assert.Equal(t, g.Node("a").Y, g.Node("b").Y)
}

func TestLayoutDagreMargins(t *testing.T) {
	g := NewGraph()
	g.Label().MarginX = 10
	g.Label().MarginY = 5
	g.SetNode("a", &NodeLabel{Width: 100, Height: 50})

	assert.NoError(t, LayoutDagre(testCtx(t), g, nil))

	a := g.Node("a")
	assert.Equal(t, 60.0, a.X)
	assert.Equal(t, 30.0, a.Y)
	assert.Equal(t, 120.0, g.Label().Width)
	assert.Equal(t, 60.0, g.Label().Height)
}

func TestLayoutDagreSelfLoop(t *testing.T) {
	g := NewGraph()
	g.SetNode("a", &NodeLabel{Width: 100, Height: 100})
	g.SetEdge("a", "a", &EdgeLabel{})

	assert.NoError(t, LayoutDagre(testCtx(t), g, nil))

	a := g.Node("a")
	edge := g.Edge("a", "a")
	assert.Len(t, edge.Points, 7)
	// the loop bulges out of the node's right side
	right := a.X + a.Width/2
	for _, p := range edge.Points[1:6] {
		assert.GreaterOrEqual(t, p.X, right)
	}
	assert.NotNil(t, edge.X)
	assert.NotNil(t, edge.Y)
}

func TestLayoutDagreCompound(t *testing.T) {
	g := NewGraph()
	g.SetNode("a", &NodeLabel{Width: 50, Height: 30})
	g.SetNode("p", &NodeLabel{})
	g.SetNode("c1", &NodeLabel{Width: 60, Height: 40})
	g.SetNode("c2", &NodeLabel{Width: 60, Height: 40})
	assert.NoError(t, g.SetParent("c1", "p"))
	assert.NoError(t, g.SetParent("c2", "p"))
	g.SetEdge("a", "c1", &EdgeLabel{})
	g.SetEdge("c1", "c2", &EdgeLabel{})

	assert.NoError(t, LayoutDagre(testCtx(t), g, nil))

	p := g.Node("p")
	for _, v := range []string{"c1", "c2"} {
		child := g.Node(v)
		assert.LessOrEqual(t, p.X-p.Width/2, child.X-child.Width/2, v)
		assert.GreaterOrEqual(t, p.X+p.Width/2, child.X+child.Width/2, v)
		assert.LessOrEqual(t, p.Y-p.Height/2, child.Y-child.Height/2, v)
		assert.GreaterOrEqual(t, p.Y+p.Height/2, child.Y+child.Height/2, v)
	}
	// the subgraph sits strictly below the outside node feeding into it
	assert.Less(t, g.Node("a").Y, g.Node("c1").Y)
}

func buildBusyGraph() *Graph {
	g := NewGraph()
	for _, v := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		g.SetNode(v, &NodeLabel{Width: 40 + float64(len(v))*10, Height: 30})
	}
	g.SetEdge("a", "b", &EdgeLabel{})
	g.SetEdge("a", "c", &EdgeLabel{Weight: 2})
	g.SetEdge("b", "d", &EdgeLabel{})
	g.SetEdge("c", "d", &EdgeLabel{})
	g.SetEdge("c", "e", &EdgeLabel{Minlen: 2})
	g.SetEdge("d", "f", &EdgeLabel{})
	g.SetEdge("e", "f", &EdgeLabel{})
	g.SetEdge("f", "g", &EdgeLabel{Width: 30, Height: 10})
	g.SetEdge("g", "h", &EdgeLabel{})
	g.SetEdge("h", "c", &EdgeLabel{}) // cycle
	g.SetEdge("g", "g", &EdgeLabel{}) // self loop
	return g
}

func TestLayoutDagreDeterministic(t *testing.T) {
	g1 := buildBusyGraph()
	g2 := buildBusyGraph()
	assert.NoError(t, LayoutDagre(testCtx(t), g1, nil))
	assert.NoError(t, LayoutDagre(testCtx(t), g2, nil))

	for _, v := range g1.Nodes() {
		assert.Equal(t, g1.Node(v).X, g2.Node(v).X, v)
		assert.Equal(t, g1.Node(v).Y, g2.Node(v).Y, v)
	}
	for _, e := range g1.Edges() {
		p1 := g1.EdgeKeyLabel(e).Points
		p2 := g2.EdgeKeyLabel(e).Points
		assert.Equal(t, len(p1), len(p2), e.String())
		for i := range p1 {
			assert.Equal(t, p1[i].X, p2[i].X, e.String())
			assert.Equal(t, p1[i].Y, p2[i].Y, e.String())
		}
	}
	assert.Equal(t, g1.Label().Width, g2.Label().Width)
	assert.Equal(t, g1.Label().Height, g2.Label().Height)
}

func TestLayoutDagreReversedEdgePoints(t *testing.T) {
	g := buildBusyGraph()
	assert.NoError(t, LayoutDagre(testCtx(t), g, nil))

	// every route, including the one that was reversed to break the cycle,
	// must run from its tail toward its head in input direction
	sq := func(a, b float64) float64 { return (a - b) * (a - b) }
	for _, e := range g.Edges() {
		if e.V == e.W {
			continue
		}
		edge := g.EdgeKeyLabel(e)
		tail := g.Node(e.V)
		first := edge.Points[0]
		last := edge.Points[len(edge.Points)-1]
		assert.Less(t,
			sq(first.X, tail.X)+sq(first.Y, tail.Y),
			sq(last.X, tail.X)+sq(last.Y, tail.Y),
			e.String())
	}
}

func TestLayoutConservative(t *testing.T) {
	g := NewGraph()
	g.SetNode("a", &NodeLabel{Width: 60, Height: 40})
	g.SetNode("b", &NodeLabel{Width: 80, Height: 30})
	g.SetNode("p", &NodeLabel{})
	g.SetNode("c1", &NodeLabel{Width: 50, Height: 20})
	assert.NoError(t, g.SetParent("c1", "p"))
	g.SetEdge("a", "b", &EdgeLabel{})
	g.SetEdge("b", "c1", &EdgeLabel{})

	err := Layout(testCtx(t), g, nil)
	assert.NoError(t, err)

	assert.Less(t, g.Node("a").Y, g.Node("b").Y)
	assert.Less(t, g.Node("b").Y, g.Node("c1").Y)
	assert.Len(t, g.Edge("a", "b").Points, 2)

	// compound box wraps its child
	p := g.Node("p")
	c1 := g.Node("c1")
	assert.Equal(t, c1.Width, p.Width)
	assert.Equal(t, c1.Height, p.Height)
	assert.Equal(t, c1.X, p.X)
	assert.Equal(t, c1.Y, p.Y)
	assert.Greater(t, g.Label().Width, 0.0)
	assert.Greater(t, g.Label().Height, 0.0)
}
