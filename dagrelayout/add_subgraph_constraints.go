package dagrelayout

import (
	"oss.terrastruct.com/dagre/graphlib"
)

// constraintGraph records required left-to-right orderings between siblings.
// It accumulates across the layers of one sweep so a subgraph keeps the
// relative order it was given on a previous rank.
type constraintGraph = graphlib.Graph[struct{}, struct{}, struct{}]

func newConstraintGraph() *constraintGraph {
	return graphlib.New[struct{}, struct{}, struct{}](graphlib.Options{Directed: true})
}

// addSubgraphConstraints walks the sorted nodes of a layer and, for each pair
// of distinct subgraphs that appear in sequence under the same parent, adds
// an ordering constraint between them.
func addSubgraphConstraints(g *Graph, cg *constraintGraph, vs []string) {
	prev := make(map[string]string)
	rootPrev := ""

	for _, v := range vs {
		child := g.Parent(v)
		for child != "" {
			parent := g.Parent(child)
			var prevChild string
			if parent != "" {
				prevChild = prev[parent]
				prev[parent] = child
			} else {
				prevChild = rootPrev
				rootPrev = child
			}
			if prevChild != "" && prevChild != child {
				cg.SetEdge(prevChild, child, struct{}{})
				break
			}
			child = parent
		}
	}
}
