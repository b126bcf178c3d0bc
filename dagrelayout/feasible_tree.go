package dagrelayout

import (
	"math"

	"oss.terrastruct.com/dagre/graphlib"
)

// treeNode and treeEdge label the undirected spanning tree the rankers build;
// low/lim/parent are filled in by network simplex.
type treeNode struct {
	parent    string
	hasParent bool
	low, lim  int
}

type treeEdge struct {
	cutvalue float64
}

type tree = graphlib.Graph[*treeNode, *treeEdge, struct{}]

// feasibleTree grows a maximal tree of tight edges (slack 0) over g, shifting
// the ranks of the tree with the minimum slack found whenever it gets stuck,
// until the tree spans the graph. Requires connected g with feasible ranks.
func feasibleTree(g *Graph) *tree {
	t := graphlib.New[*treeNode, *treeEdge, struct{}](graphlib.Options{})

	start := g.Nodes()[0]
	size := g.NodeCount()
	t.SetNode(start, &treeNode{})

	for tightTree(t, g) < size {
		e := findMinSlackEdge(t, g)
		delta := slack(g, e)
		if !t.HasNode(e.V) {
			delta = -delta
		}
		shiftRanks(t, g, delta)
	}
	return t
}

// tightTree finds a maximal tree of tight edges incident on the current tree
// and returns the number of nodes in it.
func tightTree(t *tree, g *Graph) int {
	var dfs func(v string)
	dfs = func(v string) {
		for _, e := range g.NodeEdges(v) {
			edgeV := e.V
			w := edgeV
			if v == edgeV {
				w = e.W
			}
			if !t.HasNode(w) && slack(g, e) == 0 {
				t.SetNode(w, &treeNode{})
				t.SetEdge(v, w, &treeEdge{})
				dfs(w)
			}
		}
	}
	for _, v := range t.Nodes() {
		dfs(v)
	}
	return t.NodeCount()
}

// findMinSlackEdge returns the edge with the smallest slack that connects the
// tree to a node outside it.
func findMinSlackEdge(t *tree, g *Graph) graphlib.EdgeKey {
	minSlack := math.MaxInt
	var minEdge graphlib.EdgeKey
	for _, e := range g.Edges() {
		if t.HasNode(e.V) != t.HasNode(e.W) {
			if s := slack(g, e); s < minSlack {
				minSlack = s
				minEdge = e
			}
		}
	}
	return minEdge
}

func shiftRanks(t *tree, g *Graph, delta int) {
	for _, v := range t.Nodes() {
		*g.Node(v).Rank += delta
	}
}
