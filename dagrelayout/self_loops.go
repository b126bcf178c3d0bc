package dagrelayout

import (
	"oss.terrastruct.com/dagre/lib/geo"
	"oss.terrastruct.com/dagre/lib/go2"
)

// Self loops cannot survive the layered pipeline (every edge must span at
// least one rank), so they are stashed on their node up front, reinserted as
// zero-rank-span dummies right of the node after ordering so they reserve
// horizontal room, and finally routed as a small loop on the node's right
// side.

func removeSelfEdges(g *Graph) {
	for _, e := range g.Edges() {
		if e.V == e.W {
			node := g.Node(e.V)
			node.SelfEdges = append(node.SelfEdges, SelfEdge{Key: e, Label: g.EdgeKeyLabel(e)})
			g.RemoveEdgeKey(e)
		}
	}
}

func insertSelfEdges(g *Graph) {
	layers := buildLayerMatrix(g)
	for _, layer := range layers {
		orderShift := 0
		for i, v := range layer {
			node := g.Node(v)
			node.Order = i + orderShift
			for _, selfEdge := range node.SelfEdges {
				orderShift++
				addDummyNode(g, dummySelfEdge, &NodeLabel{
					Width:     selfEdge.Label.Width,
					Height:    selfEdge.Label.Height,
					Rank:      node.Rank,
					Order:     i + orderShift,
					EdgeKey:   go2.Pointer(selfEdge.Key),
					EdgeLabel: selfEdge.Label,
				}, "_se")
			}
			node.SelfEdges = nil
		}
	}
}

func positionSelfEdges(g *Graph) {
	for _, v := range g.Nodes() {
		node := g.Node(v)
		if node.Dummy != dummySelfEdge {
			continue
		}
		selfNode := g.Node(node.EdgeKey.V)
		x := selfNode.X + selfNode.Width/2
		y := selfNode.Y
		dx := node.X - x
		dy := selfNode.Height / 2
		g.SetEdgeKey(*node.EdgeKey, node.EdgeLabel)
		g.RemoveNode(v)
		node.EdgeLabel.Points = geo.Points{
			geo.NewPoint(x+2*dx/3, y-dy),
			geo.NewPoint(x+5*dx/6, y-dy),
			geo.NewPoint(x+dx, y),
			geo.NewPoint(x+5*dx/6, y+dy),
			geo.NewPoint(x+2*dx/3, y+dy),
		}
		node.EdgeLabel.X = go2.Pointer(node.X)
		node.EdgeLabel.Y = go2.Pointer(node.Y)
	}
}
