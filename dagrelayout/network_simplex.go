package dagrelayout

import (
	"math"

	"oss.terrastruct.com/dagre/graphlib"
)

// networkSimplex is the default ranker. It applies the network simplex
// algorithm from Gansner et al., "A Technique for Drawing Directed Graphs":
// start from a feasible tight tree, compute cut values for tree edges, and
// exchange negative-cut-value tree edges for the minimum-slack non-tree edge
// until no negative cut value remains, minimizing total weighted edge length.
func networkSimplex(g *Graph) {
	g = simplify(g)
	longestPath(g)
	t := feasibleTree(g)
	initLowLimValues(t, "")
	initCutValues(t, g)

	for {
		e, ok := leaveEdge(t)
		if !ok {
			break
		}
		f := enterEdge(t, g, e)
		exchangeEdges(t, g, e, f)
	}
}

// initCutValues computes the cut value of every tree edge, walking the tree
// in postorder so children are finished before their parent edge.
func initCutValues(t *tree, g *Graph) {
	vs := graphlib.Postorder(t, t.Nodes()...)
	for _, v := range vs[:len(vs)-1] {
		assignCutValue(t, g, v)
	}
}

func assignCutValue(t *tree, g *Graph, child string) {
	childLab := t.Node(child)
	t.Edge(child, childLab.parent).cutvalue = calcCutValue(t, g, child)
}

// calcCutValue computes the cut value of the tree edge between child and its
// parent from the child's other incident edges and, for tree edges among
// them, their previously computed cut values.
func calcCutValue(t *tree, g *Graph, child string) float64 {
	childLab := t.Node(child)
	parent := childLab.parent
	// true if the child is on the tail end of the graph edge
	childIsTail := true
	graphEdge := g.Edge(child, parent)
	if graphEdge == nil {
		childIsTail = false
		graphEdge = g.Edge(parent, child)
	}

	cutValue := graphEdge.Weight
	for _, e := range g.NodeEdges(child) {
		isOutEdge := e.V == child
		other := e.V
		if isOutEdge {
			other = e.W
		}
		if other == parent {
			continue
		}
		pointsToHead := isOutEdge == childIsTail
		otherWeight := g.EdgeKeyLabel(e).Weight
		if pointsToHead {
			cutValue += otherWeight
		} else {
			cutValue -= otherWeight
		}
		if t.HasEdge(child, other) {
			otherCutValue := t.Edge(child, other).cutvalue
			if pointsToHead {
				cutValue -= otherCutValue
			} else {
				cutValue += otherCutValue
			}
		}
	}
	return cutValue
}

// initLowLimValues numbers the tree nodes with a DFS so that subtree
// membership can be tested with a low <= lim <= lim interval check.
func initLowLimValues(t *tree, root string) {
	if root == "" {
		root = t.Nodes()[0]
	}
	visited := make(map[string]bool)
	dfsAssignLowLim(t, visited, 1, root, "")
}

func dfsAssignLowLim(t *tree, visited map[string]bool, nextLim int, v, parent string) int {
	low := nextLim
	label := t.Node(v)
	visited[v] = true
	for _, w := range t.Neighbors(v) {
		if !visited[w] {
			nextLim = dfsAssignLowLim(t, visited, nextLim, w, v)
		}
	}
	label.low = low
	label.lim = nextLim
	nextLim++
	label.parent = parent
	label.hasParent = parent != ""
	return nextLim
}

// leaveEdge returns the first tree edge with a negative cut value, if any.
func leaveEdge(t *tree) (graphlib.EdgeKey, bool) {
	for _, e := range t.Edges() {
		if t.EdgeKeyLabel(e).cutvalue < 0 {
			return e, true
		}
	}
	return graphlib.EdgeKey{}, false
}

// enterEdge finds the non-tree edge with minimum slack that reconnects the
// two components produced by removing the leave edge: its tail must be in the
// head component and its head in the tail component.
func enterEdge(t *tree, g *Graph, edge graphlib.EdgeKey) graphlib.EdgeKey {
	v, w := edge.V, edge.W
	if !g.HasEdge(v, w) {
		// the tree edge is stored in the opposite orientation
		v, w = edge.W, edge.V
	}

	vLabel, wLabel := t.Node(v), t.Node(w)
	tailLabel := vLabel
	flip := false
	// choose the tail as the component not containing the tree root
	if vLabel.lim > wLabel.lim {
		tailLabel = wLabel
		flip = true
	}

	minSlack := math.MaxInt
	var minEdge graphlib.EdgeKey
	for _, e := range g.Edges() {
		if flip == isDescendant(t, t.Node(e.V), tailLabel) &&
			flip != isDescendant(t, t.Node(e.W), tailLabel) {
			if s := slack(g, e); s < minSlack {
				minSlack = s
				minEdge = e
			}
		}
	}
	return minEdge
}

func exchangeEdges(t *tree, g *Graph, e, f graphlib.EdgeKey) {
	t.RemoveEdge(e.V, e.W)
	t.SetEdge(f.V, f.W, &treeEdge{})
	initLowLimValues(t, "")
	initCutValues(t, g)
	updateRanks(t, g)
}

func updateRanks(t *tree, g *Graph) {
	root := t.Nodes()[0]
	vs := graphlib.Preorder(t, root)
	for _, v := range vs[1:] {
		parent := t.Node(v).parent
		edge := g.Edge(v, parent)
		flipped := false
		if edge == nil {
			edge = g.Edge(parent, v)
			flipped = true
		}
		rank := *g.Node(parent).Rank
		if flipped {
			rank += edge.Minlen
		} else {
			rank -= edge.Minlen
		}
		g.Node(v).Rank = &rank
	}
}

func isDescendant(t *tree, vLabel, rootLabel *treeNode) bool {
	return rootLabel.low <= vLabel.lim && vLabel.lim <= rootLabel.lim
}
