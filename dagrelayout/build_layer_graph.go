package dagrelayout

import (
	"oss.terrastruct.com/dagre/graphlib"
)

// buildLayerGraph constructs the graph used to order one rank: the rank's
// nodes plus their adjacencies into the already-ordered neighbor rank, with
// parallel edge weights aggregated and every edge oriented toward the movable
// node. Compound nodes spanning the rank are represented by a slice label
// holding just that rank's border ids, and a synthetic root adopts top-level
// nodes so subgraph-aware sorting can start from a single point.
//
// This assumes all edges span exactly one rank, i.e. the graph has been
// normalized.
func buildLayerGraph(g *Graph, rank int, useInEdges bool) *Graph {
	root := createRootNode(g)
	result := graphlib.New[*NodeLabel, *EdgeLabel, *GraphLabel](graphlib.Options{
		Directed:   true,
		Compound:   true,
		Multigraph: false,
	})
	result.SetLabel(&GraphLabel{Root: root})
	result.SetDefaultNodeLabel(func(v string) *NodeLabel { return g.Node(v) })

	for _, v := range g.Nodes() {
		node := g.Node(v)
		parent := g.Parent(v)

		inRank := node.Rank != nil && *node.Rank == rank
		spansRank := node.MinRank != nil && *node.MinRank <= rank && rank <= *node.MaxRank
		if !inRank && !spansRank {
			continue
		}

		result.EnsureNode(v)
		if parent == "" {
			parent = root
		}
		result.SetParent(v, parent)

		edges := g.InEdges(v)
		if !useInEdges {
			edges = g.OutEdges(v)
		}
		for _, e := range edges {
			u := e.V
			if u == v {
				u = e.W
			}
			weight := 0.0
			if existing := result.Edge(u, v); existing != nil {
				weight = existing.Weight
			}
			result.SetEdge(u, v, &EdgeLabel{Weight: g.EdgeKeyLabel(e).Weight + weight})
		}

		if node.MinRank != nil {
			result.SetNode(v, &NodeLabel{
				BorderLeftID:  node.BorderLeft[rank],
				BorderRightID: node.BorderRight[rank],
			})
		}
	}
	return result
}

func createRootNode(g *Graph) string {
	return uniqueName(g, "_root")
}
