package dagrelayout

import (
	"sort"

	"oss.terrastruct.com/dagre/lib/go2"
)

// initOrder builds the first layering with a DFS from the leaf nodes in rank
// order. The pre-sort must be stable with insertion order as the implicit
// secondary key: the resulting layering seeds crossing minimization and any
// other tie-break changes the final output.
func initOrder(g *Graph) [][]string {
	visited := make(map[string]bool)
	var simpleNodes []string
	for _, v := range g.Nodes() {
		if len(g.Children(v)) == 0 {
			simpleNodes = append(simpleNodes, v)
		}
	}
	maxRank := 0
	for _, v := range simpleNodes {
		if node := g.Node(v); node != nil && node.Rank != nil {
			maxRank = go2.Max(maxRank, *node.Rank)
		}
	}
	layers := make([][]string, maxRank+1)

	var dfs func(v string)
	dfs = func(v string) {
		if visited[v] {
			return
		}
		visited[v] = true
		node := g.Node(v)
		layers[*node.Rank] = append(layers[*node.Rank], v)
		for _, w := range g.Successors(v) {
			dfs(w)
		}
	}

	orderedVs := make([]string, len(simpleNodes))
	copy(orderedVs, simpleNodes)
	sort.SliceStable(orderedVs, func(i, j int) bool {
		return *g.Node(orderedVs[i]).Rank < *g.Node(orderedVs[j]).Rank
	})
	for _, v := range orderedVs {
		dfs(v)
	}
	return layers
}
