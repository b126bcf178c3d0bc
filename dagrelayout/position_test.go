package dagrelayout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/dagre/lib/geo"
	"oss.terrastruct.com/dagre/lib/go2"
)

// positionedGraph builds a ranked, ordered, non-compound graph ready for
// coordinate assignment.
func positionedGraph() *Graph {
	g := NewGraph()
	g.Label().NodeSep = 50
	g.Label().EdgeSep = 20
	g.Label().RankSep = 50

	set := func(v string, rank, order int, w, h float64) {
		g.SetNode(v, &NodeLabel{Rank: go2.Pointer(rank), Order: order, Width: w, Height: h})
	}
	set("a", 0, 0, 40, 20)
	set("b", 0, 1, 60, 40)
	set("c", 1, 0, 40, 30)
	set("d", 1, 1, 40, 30)
	set("e", 2, 0, 80, 10)
	g.SetEdge("a", "c", &EdgeLabel{Weight: 1})
	g.SetEdge("b", "d", &EdgeLabel{Weight: 1})
	g.SetEdge("c", "e", &EdgeLabel{Weight: 1})
	g.SetEdge("d", "e", &EdgeLabel{Weight: 1})
	return g
}

func TestPositionYStacksRanks(t *testing.T) {
	g := positionedGraph()
	position(g)

	// rank heights 40, 30, 10 with ranksep 50 between
	assert.Equal(t, 20.0, g.Node("a").Y)
	assert.Equal(t, 20.0, g.Node("b").Y)
	assert.Equal(t, 105.0, g.Node("c").Y)
	assert.Equal(t, 105.0, g.Node("d").Y)
	assert.Equal(t, 175.0, g.Node("e").Y)
}

func TestPositionXRespectsOrderAndSeparation(t *testing.T) {
	g := positionedGraph()
	position(g)

	for _, layer := range buildLayerMatrix(g) {
		for i := 1; i < len(layer); i++ {
			prev := g.Node(layer[i-1])
			curr := g.Node(layer[i])
			gap := curr.X - prev.X
			minGap := prev.Width/2 + curr.Width/2 + g.Label().NodeSep
			assert.GreaterOrEqual(t, gap, minGap-1e-9, layer[i])
		}
	}
}

func TestPositionXDeterministic(t *testing.T) {
	g1 := positionedGraph()
	g2 := positionedGraph()
	position(g1)
	position(g2)
	for _, v := range g1.Nodes() {
		assert.Equal(t, g1.Node(v).X, g2.Node(v).X, v)
		assert.Equal(t, g1.Node(v).Y, g2.Node(v).Y, v)
	}
}

func TestIntersectRect(t *testing.T) {
	node := &NodeLabel{X: 0, Y: 0, Width: 20, Height: 10}

	p := intersectRect(node, geo.NewPoint(0, 100))
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 5.0, p.Y)

	p = intersectRect(node, geo.NewPoint(100, 0))
	assert.Equal(t, 10.0, p.X)
	assert.Equal(t, 0.0, p.Y)

	p = intersectRect(node, geo.NewPoint(-100, 0))
	assert.Equal(t, -10.0, p.X)

	// degenerate: target on the center degrades to the center
	p = intersectRect(node, geo.NewPoint(0, 0))
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 0.0, p.Y)
}
