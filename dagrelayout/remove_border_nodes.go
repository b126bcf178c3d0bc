package dagrelayout

import (
	"math"
)

// removeBorderNodes sizes each compound node from its border extremes (top
// and bottom border rows, last left and right border columns) and then drops
// every border dummy from the graph.
func removeBorderNodes(g *Graph) {
	for _, v := range g.Nodes() {
		if len(g.Children(v)) == 0 {
			continue
		}
		node := g.Node(v)
		t := g.Node(node.BorderTop)
		b := g.Node(node.BorderBottom)
		l := g.Node(node.BorderLeft[*node.MaxRank])
		r := g.Node(node.BorderRight[*node.MaxRank])

		node.Width = math.Abs(r.X - l.X)
		node.Height = math.Abs(b.Y - t.Y)
		node.X = l.X + node.Width/2
		node.Y = t.Y + node.Height/2
	}

	for _, v := range g.Nodes() {
		if g.Node(v).Dummy == dummyBorder {
			g.RemoveNode(v)
		}
	}
}
