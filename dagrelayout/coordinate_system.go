package dagrelayout

import (
	"strings"
)

// The pipeline lays out top-to-bottom; other rank directions are handled by
// transforming the graph into TB space before positioning and back after.

func adjustCoordinateSystem(g *Graph) {
	rankDir := strings.ToLower(g.Label().RankDir)
	if rankDir == "lr" || rankDir == "rl" {
		swapWidthHeight(g)
	}
}

func undoCoordinateSystem(g *Graph) {
	rankDir := strings.ToLower(g.Label().RankDir)
	if rankDir == "bt" || rankDir == "rl" {
		reverseY(g)
	}
	if rankDir == "lr" || rankDir == "rl" {
		swapXY(g)
		swapWidthHeight(g)
	}
}

func swapWidthHeight(g *Graph) {
	for _, v := range g.Nodes() {
		node := g.Node(v)
		node.Width, node.Height = node.Height, node.Width
	}
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		edge.Width, edge.Height = edge.Height, edge.Width
	}
}

func reverseY(g *Graph) {
	for _, v := range g.Nodes() {
		node := g.Node(v)
		node.Y = -node.Y
	}
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		for _, p := range edge.Points {
			p.Y = -p.Y
		}
		if edge.Y != nil {
			*edge.Y = -*edge.Y
		}
	}
}

func swapXY(g *Graph) {
	for _, v := range g.Nodes() {
		node := g.Node(v)
		node.X, node.Y = node.Y, node.X
	}
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		for _, p := range edge.Points {
			p.X, p.Y = p.Y, p.X
		}
		if edge.X != nil {
			edge.X, edge.Y = edge.Y, edge.X
		}
	}
}
