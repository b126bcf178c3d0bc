package dagrelayout

import (
	"oss.terrastruct.com/dagre/lib/go2"
)

// nestingRun prepares a compound graph for ranking. Each subgraph gets a top
// and a bottom border node connected to its children with weighted nesting
// edges, so the subgraph's descendants end up in a contiguous rank band, and
// a synthetic root ties everything into one connected component (the rankers
// require connectivity). Ranks come out multiplied by 2 * depth + 1: the
// extra ranks hold the border nodes.
func nestingRun(g *Graph) {
	root := addDummyNode(g, dummyRoot, &NodeLabel{}, "_root")
	depths := treeDepths(g)
	height := 0
	for _, d := range depths {
		height = go2.Max(height, d)
	}
	height-- // depths start at 1
	nodeSep := 2*height + 1

	g.Label().NestingRoot = root

	// multiply minlen by nodeSep to align nodes on non-border ranks
	for _, e := range g.Edges() {
		g.EdgeKeyLabel(e).Minlen *= nodeSep
	}

	// a weight large enough to keep subgraphs vertically compact
	weight := sumWeights(g) + 1

	for _, child := range g.Children("") {
		nestingDFS(g, root, nodeSep, weight, height, depths, child)
	}

	// remember the multiplier so empty border ranks can be collapsed later
	g.Label().NodeRankFactor = nodeSep
}

func nestingDFS(g *Graph, root string, nodeSep int, weight float64, height int, depths map[string]int, v string) {
	children := g.Children(v)
	if len(children) == 0 {
		if v != root {
			g.SetEdge(root, v, &EdgeLabel{Weight: 0, Minlen: nodeSep})
		}
		return
	}

	top := addBorderNode(g, "_bt")
	bottom := addBorderNode(g, "_bb")
	label := g.Node(v)

	g.SetParent(top, v)
	label.BorderTop = top
	g.SetParent(bottom, v)
	label.BorderBottom = bottom

	for _, child := range children {
		nestingDFS(g, root, nodeSep, weight, height, depths, child)

		childNode := g.Node(child)
		childTop, childBottom := child, child
		thisWeight := 2 * weight
		if childNode.BorderTop != "" {
			childTop = childNode.BorderTop
			childBottom = childNode.BorderBottom
			thisWeight = weight
		}
		minlen := height - depths[v] + 1
		if childTop != childBottom {
			minlen = 1
		}

		g.SetEdge(top, childTop, &EdgeLabel{Weight: thisWeight, Minlen: minlen, NestingEdge: true})
		g.SetEdge(childBottom, bottom, &EdgeLabel{Weight: thisWeight, Minlen: minlen, NestingEdge: true})
	}

	if g.Parent(v) == "" {
		g.SetEdge(root, top, &EdgeLabel{Weight: 0, Minlen: height + depths[v]})
	}
}

func treeDepths(g *Graph) map[string]int {
	depths := make(map[string]int)
	var dfs func(v string, depth int)
	dfs = func(v string, depth int) {
		for _, child := range g.Children(v) {
			dfs(child, depth+1)
		}
		depths[v] = depth
	}
	for _, v := range g.Children("") {
		dfs(v, 1)
	}
	return depths
}

func sumWeights(g *Graph) float64 {
	sum := 0.0
	for _, e := range g.Edges() {
		sum += g.EdgeKeyLabel(e).Weight
	}
	return sum
}

// nestingCleanup removes the synthetic root and the nesting edges once
// ranking is done. Border nodes stay: their ranks define each compound
// node's min and max rank.
func nestingCleanup(g *Graph) {
	label := g.Label()
	g.RemoveNode(label.NestingRoot)
	label.NestingRoot = ""
	for _, e := range g.Edges() {
		if g.EdgeKeyLabel(e).NestingEdge {
			g.RemoveEdgeKey(e)
		}
	}
}
