package dagrelayout

import (
	"oss.terrastruct.com/dagre/lib/go2"
)

// parentDummyChains assigns each dummy chain node a parent along the path in
// the nesting tree between the original edge's endpoints: ascending from the
// tail's ancestors to the lowest common ancestor, then descending toward the
// head, switching parents as the chain's ranks leave each ancestor's span.
func parentDummyChains(g *Graph) {
	postorderNums := compoundPostorder(g)

	for _, v := range g.Label().DummyChains {
		node := g.Node(v)
		edge := *node.EdgeKey
		path, lca := findPath(g, postorderNums, edge.V, edge.W)
		pathIdx := 0
		pathV := path[pathIdx]
		ascending := true

		for v != edge.W {
			node = g.Node(v)

			if ascending {
				for {
					pathV = path[pathIdx]
					if pathV == lca {
						break
					}
					pn := g.Node(pathV)
					if pn.MaxRank == nil || *pn.MaxRank >= *node.Rank {
						break
					}
					pathIdx++
				}
				if pathV == lca {
					ascending = false
				}
			}
			if !ascending {
				for pathIdx < len(path)-1 {
					pn := g.Node(path[pathIdx+1])
					if pn.MinRank == nil || *pn.MinRank > *node.Rank {
						break
					}
					pathIdx++
				}
				pathV = path[pathIdx]
			}

			g.SetParent(v, pathV)
			v = g.Successors(v)[0]
		}
	}
}

// findPath returns the ancestor chain from v up to the lowest common
// ancestor, then down to w. The LCA is found with the low/lim interval test
// over the compound tree's postorder numbering.
func findPath(g *Graph, postorderNums map[string]lowLim, v, w string) ([]string, string) {
	var vPath, wPath []string
	low := go2.Min(postorderNums[v].low, postorderNums[w].low)
	lim := go2.Max(postorderNums[v].lim, postorderNums[w].lim)

	// traverse up from v to find the LCA
	parent := v
	for {
		parent = g.Parent(parent)
		vPath = append(vPath, parent)
		if parent == "" {
			break
		}
		if postorderNums[parent].low <= low && lim <= postorderNums[parent].lim {
			break
		}
	}
	lca := parent

	// traverse from w to the LCA
	parent = w
	for {
		parent = g.Parent(parent)
		if parent == lca {
			break
		}
		wPath = append(wPath, parent)
	}

	return append(vPath, go2.Reverse(wPath)...), lca
}

type lowLim struct {
	low, lim int
}

func compoundPostorder(g *Graph) map[string]lowLim {
	result := make(map[string]lowLim)
	lim := 0
	var dfs func(v string)
	dfs = func(v string) {
		low := lim
		for _, child := range g.Children(v) {
			dfs(child)
		}
		result[v] = lowLim{low: low, lim: lim}
		lim++
	}
	for _, v := range g.Children("") {
		dfs(v)
	}
	return result
}
