package dagrelayout

import (
	"math"
	"strconv"

	"oss.terrastruct.com/dagre/graphlib"
	"oss.terrastruct.com/dagre/lib/geo"
	"oss.terrastruct.com/dagre/lib/go2"
)

// uniqueName generates a node id with the given prefix that is not yet in use.
// The counter lives on the graph label so ids stay deterministic per layout
// call.
func uniqueName(g *Graph, prefix string) string {
	label := g.Label()
	for {
		label.nameCounter++
		v := prefix + strconv.Itoa(label.nameCounter)
		if !g.HasNode(v) {
			return v
		}
	}
}

// addDummyNode adds a synthetic node of the given kind and returns its id.
func addDummyNode(g *Graph, kind string, label *NodeLabel, prefix string) string {
	label.Dummy = kind
	v := uniqueName(g, prefix)
	g.SetNode(v, label)
	return v
}

func addBorderNode(g *Graph, prefix string) string {
	return addDummyNode(g, dummyBorder, &NodeLabel{}, prefix)
}

// simplify returns a copy with parallel edges collapsed into one edge holding
// the summed weight and the largest minlen. Self-loops are copied through;
// the pipeline strips them before ranking. Node labels are shared with g, so
// rank writes propagate back.
func simplify(g *Graph) *Graph {
	simplified := graphlib.New[*NodeLabel, *EdgeLabel, *GraphLabel](graphlib.Options{Directed: true})
	simplified.SetLabel(g.Label())
	for _, v := range g.Nodes() {
		simplified.SetNode(v, g.Node(v))
	}
	for _, e := range g.Edges() {
		weight, minlen := 0.0, 1
		if prev := simplified.Edge(e.V, e.W); prev != nil {
			weight, minlen = prev.Weight, prev.Minlen
		}
		label := g.EdgeKeyLabel(e)
		simplified.SetEdge(e.V, e.W, &EdgeLabel{
			Weight: weight + label.Weight,
			Minlen: go2.Max(minlen, label.Minlen),
		})
	}
	return simplified
}

// asNonCompoundGraph projects g onto its leaf nodes, dropping the nesting
// relation. Labels are shared with g.
func asNonCompoundGraph(g *Graph) *Graph {
	simplified := graphlib.New[*NodeLabel, *EdgeLabel, *GraphLabel](graphlib.Options{
		Directed:   true,
		Multigraph: g.IsMultigraph(),
	})
	simplified.SetLabel(g.Label())
	simplified.SetDefaultNodeLabel(func(v string) *NodeLabel { return g.Node(v) })
	for _, v := range g.Nodes() {
		if len(g.Children(v)) == 0 {
			simplified.SetNode(v, g.Node(v))
		}
	}
	for _, e := range g.Edges() {
		simplified.SetEdgeKey(e, g.EdgeKeyLabel(e))
	}
	return simplified
}

// intersectRect finds the point at which a line from the rectangle's center
// to the given point crosses the rectangle's boundary. If the point sits on
// the center the node center is returned, favoring a degraded layout over a
// failure.
func intersectRect(rect *NodeLabel, point *geo.Point) *geo.Point {
	x, y := rect.X, rect.Y
	dx := point.X - x
	dy := point.Y - y
	w := rect.Width / 2
	h := rect.Height / 2
	if dx == 0 && dy == 0 {
		return geo.NewPoint(x, y)
	}

	var sx, sy float64
	if math.Abs(dy)*w > math.Abs(dx)*h {
		// intersection is top or bottom
		if dy < 0 {
			h = -h
		}
		sx = h * dx / dy
		sy = h
	} else {
		// intersection is left or right
		if dx < 0 {
			w = -w
		}
		sx = w
		sy = w * dy / dx
	}
	return geo.NewPoint(x+sx, y+sy)
}

// buildLayerMatrix reconstructs the layering from rank and order fields: one
// row per rank, each row ordered by the nodes' order values.
func buildLayerMatrix(g *Graph) [][]string {
	layering := make([][]string, maxRankOf(g)+1)
	counts := make([]int, len(layering))
	for _, v := range g.Nodes() {
		if node := g.Node(v); node != nil && node.Rank != nil {
			counts[*node.Rank]++
		}
	}
	for i := range layering {
		layering[i] = make([]string, counts[i])
	}
	for _, v := range g.Nodes() {
		if node := g.Node(v); node != nil && node.Rank != nil {
			layering[*node.Rank][node.Order] = v
		}
	}
	return layering
}

// normalizeRanks shifts ranks so the smallest is 0.
func normalizeRanks(g *Graph) {
	min := math.MaxInt
	for _, v := range g.Nodes() {
		if node := g.Node(v); node != nil && node.Rank != nil {
			min = go2.Min(min, *node.Rank)
		}
	}
	if min == math.MaxInt {
		return
	}
	for _, v := range g.Nodes() {
		if node := g.Node(v); node != nil && node.Rank != nil {
			*node.Rank -= min
		}
	}
}

// removeEmptyRanks collapses ranks with no nodes. Ranks created by the
// nesting graph come in multiples of NodeRankFactor; only in-between ranks
// may be removed.
func removeEmptyRanks(g *Graph) {
	offset := math.MaxInt
	for _, v := range g.Nodes() {
		if node := g.Node(v); node != nil && node.Rank != nil {
			offset = go2.Min(offset, *node.Rank)
		}
	}
	if offset == math.MaxInt {
		return
	}

	maxIdx := 0
	for _, v := range g.Nodes() {
		if node := g.Node(v); node != nil && node.Rank != nil {
			maxIdx = go2.Max(maxIdx, *node.Rank-offset)
		}
	}
	layers := make([][]string, maxIdx+1)
	for _, v := range g.Nodes() {
		if node := g.Node(v); node != nil && node.Rank != nil {
			i := *node.Rank - offset
			layers[i] = append(layers[i], v)
		}
	}

	delta := 0
	nodeRankFactor := g.Label().NodeRankFactor
	for i, vs := range layers {
		if vs == nil && (nodeRankFactor == 0 || i%nodeRankFactor != 0) {
			delta--
		} else if delta != 0 {
			for _, v := range vs {
				*g.Node(v).Rank += delta
			}
		}
	}
}

func maxRankOf(g *Graph) int {
	max := 0
	for _, v := range g.Nodes() {
		if node := g.Node(v); node != nil && node.Rank != nil {
			max = go2.Max(max, *node.Rank)
		}
	}
	return max
}

func partition[T any](collection []T, fn func(T) bool) (lhs, rhs []T) {
	for _, item := range collection {
		if fn(item) {
			lhs = append(lhs, item)
		} else {
			rhs = append(rhs, item)
		}
	}
	return lhs, rhs
}
