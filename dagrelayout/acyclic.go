package dagrelayout

import (
	"oss.terrastruct.com/dagre/graphlib"
)

// acyclicRun reverses a feedback edge set so ranking can run on an acyclic
// graph. Self-loops are left alone: reversing one cannot break a cycle and
// they must not constrain ranking. Reversed edges keep enough bookkeeping
// (Reversed, ForwardName) for acyclicUndo to restore them bit-for-bit.
func acyclicRun(g *Graph) {
	var fas []graphlib.EdgeKey
	if g.Label().Acyclicer == "greedy" {
		fas = greedyFAS(g, func(e graphlib.EdgeKey) float64 {
			return g.EdgeKeyLabel(e).Weight
		})
	} else {
		fas = dfsFAS(g)
	}
	for _, e := range fas {
		label := g.EdgeKeyLabel(e)
		g.RemoveEdgeKey(e)
		label.ForwardName = e.Name
		label.Reversed = true
		g.SetNamedEdge(e.W, e.V, uniqueName(g, "rev"), label)
	}
}

func dfsFAS(g *Graph) []graphlib.EdgeKey {
	var fas []graphlib.EdgeKey
	stack := make(map[string]bool)
	visited := make(map[string]bool)

	var dfs func(v string)
	dfs = func(v string) {
		if visited[v] {
			return
		}
		visited[v] = true
		stack[v] = true
		for _, e := range g.OutEdges(v) {
			if e.V == e.W {
				continue
			}
			if stack[e.W] {
				fas = append(fas, e)
			} else {
				dfs(e.W)
			}
		}
		delete(stack, v)
	}

	for _, v := range g.Nodes() {
		dfs(v)
	}
	return fas
}

func acyclicUndo(g *Graph) {
	for _, e := range g.Edges() {
		label := g.EdgeKeyLabel(e)
		if label.Reversed {
			g.RemoveEdgeKey(e)

			forwardName := label.ForwardName
			label.Reversed = false
			label.ForwardName = ""
			g.SetNamedEdge(e.W, e.V, forwardName, label)
		}
	}
}
