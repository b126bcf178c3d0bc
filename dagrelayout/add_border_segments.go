package dagrelayout

import (
	"oss.terrastruct.com/dagre/lib/go2"
)

// addBorderSegments gives every compound node a chain of left and right
// border nodes, one per rank of its span, connected vertically so crossing
// minimization keeps each subgraph's content between its borders.
func addBorderSegments(g *Graph) {
	var dfs func(v string)
	dfs = func(v string) {
		children := g.Children(v)
		node := g.Node(v)
		for _, child := range children {
			dfs(child)
		}

		if node != nil && node.MinRank != nil {
			node.BorderLeft = make(map[int]string)
			node.BorderRight = make(map[int]string)
			for rank := *node.MinRank; rank <= *node.MaxRank; rank++ {
				addBorderSegmentNode(g, "borderLeft", "_bl", v, node, rank)
				addBorderSegmentNode(g, "borderRight", "_br", v, node, rank)
			}
		}
	}

	for _, v := range g.Children("") {
		dfs(v)
	}
}

func addBorderSegmentNode(g *Graph, prop, prefix, sg string, sgNode *NodeLabel, rank int) {
	label := &NodeLabel{Width: 0, Height: 0, Rank: go2.Pointer(rank), BorderType: prop}
	borders := sgNode.BorderLeft
	if prop == "borderRight" {
		borders = sgNode.BorderRight
	}
	prev := borders[rank-1]
	curr := addDummyNode(g, dummyBorder, label, prefix)
	borders[rank] = curr
	g.SetParent(curr, sg)
	if prev != "" {
		g.SetEdge(prev, curr, &EdgeLabel{Weight: 1})
	}
}
