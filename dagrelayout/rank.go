package dagrelayout

import (
	"math"

	"oss.terrastruct.com/dagre/graphlib"
	"oss.terrastruct.com/dagre/lib/go2"
)

// rank assigns each node a rank such that rank(w) >= rank(v) + minlen(v, w)
// for every edge (v, w). It expects a connected acyclic non-compound graph;
// the nesting graph builder guarantees connectivity before this runs.
func rank(g *Graph) {
	switch g.Label().Ranker {
	case "network-simplex":
		networkSimplex(g)
	case "tight-tree":
		longestPath(g)
		feasibleTree(g)
	case "longest-path":
		longestPath(g)
	default:
		networkSimplex(g)
	}
}

// longestPath ranks sinks at 0 and everything else as far down as its
// outgoing constraints allow, yielding ranks that may be negative but are
// always feasible. It is fast but produces long edges; the other rankers use
// it as their starting point.
func longestPath(g *Graph) {
	visited := make(map[string]bool)

	var dfs func(v string) int
	dfs = func(v string) int {
		label := g.Node(v)
		if visited[v] {
			return *label.Rank
		}
		visited[v] = true

		rank := math.MaxInt
		for _, e := range g.OutEdges(v) {
			if r := dfs(e.W) - g.EdgeKeyLabel(e).Minlen; r < rank {
				rank = r
			}
		}
		if rank == math.MaxInt {
			rank = 0
		}
		label.Rank = go2.Pointer(rank)
		return rank
	}

	for _, v := range g.Sources() {
		dfs(v)
	}
}

// slack is the amount an edge exceeds its minimum length.
func slack(g *Graph, e graphlib.EdgeKey) int {
	return *g.Node(e.W).Rank - *g.Node(e.V).Rank - g.EdgeKeyLabel(e).Minlen
}
