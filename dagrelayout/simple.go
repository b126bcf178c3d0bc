package dagrelayout

import (
	"context"
	"math"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/dagre/lib/geo"
	"oss.terrastruct.com/dagre/lib/go2"
	"oss.terrastruct.com/dagre/lib/log"
)

// Layout is the conservative layout: longest-path ranks, nodes packed left to
// right per rank in insertion order, compound nodes grown to enclose their
// children, and straight edge routes clipped to node borders. It trades the
// crossing minimization and coordinate balancing of LayoutDagre for
// simplicity and speed; callers that need parity with the full layered
// pipeline use LayoutDagre instead.
func Layout(ctx context.Context, g *Graph, opts *ConfigurableOpts) (err error) {
	defer xdefer.Errorf(&err, "failed to run conservative layout")
	if opts == nil {
		opts = &DefaultOpts
	}

	start := time.Now()
	layoutGraph, err := buildLayoutGraph(g, opts)
	if err != nil {
		return err
	}
	runSimpleLayout(layoutGraph)
	updateInputGraph(g, layoutGraph)
	log.Debug(ctx, "conservative layout done",
		slog.F("nodes", g.NodeCount()),
		slog.F("edges", g.EdgeCount()),
		slog.F("d", time.Since(start)),
	)
	return nil
}

func runSimpleLayout(g *Graph) {
	removeSelfEdges(g)
	acyclicRun(g)

	ncg := asNonCompoundGraph(g)
	longestPath(ncg)
	normalizeRanks(ncg)

	positionSimple(g, ncg)
	sizeCompoundNodes(g)
	acyclicUndo(g)
	routeStraightEdges(g)
	positionSimpleSelfEdges(g)
	translateGraph(g)
}

// positionSimple stacks ranks vertically and packs each rank's nodes left to
// right in insertion order.
func positionSimple(g *Graph, ncg *Graph) {
	label := g.Label()
	layering := make([][]string, maxRankOf(ncg)+1)
	for _, v := range ncg.Nodes() {
		node := ncg.Node(v)
		node.Order = len(layering[*node.Rank])
		layering[*node.Rank] = append(layering[*node.Rank], v)
	}

	prevY := 0.0
	for _, layer := range layering {
		maxHeight := 0.0
		for _, v := range layer {
			maxHeight = math.Max(maxHeight, ncg.Node(v).Height)
		}
		x := 0.0
		for _, v := range layer {
			node := ncg.Node(v)
			node.X = x + node.Width/2
			node.Y = prevY + maxHeight/2
			x += node.Width + label.NodeSep
		}
		prevY += maxHeight + label.RankSep
	}
}

// sizeCompoundNodes computes each compound node's box as the union of its
// children's boxes, deepest first.
func sizeCompoundNodes(g *Graph) {
	var dfs func(v string)
	dfs = func(v string) {
		children := g.Children(v)
		if len(children) == 0 {
			return
		}
		var box *geo.Box
		for _, child := range children {
			dfs(child)
			cn := g.Node(child)
			childBox := geo.NewBoxFromCenter(geo.NewPoint(cn.X, cn.Y), cn.Width, cn.Height)
			if box == nil {
				box = childBox
			} else {
				box.Expand(childBox)
			}
		}
		node := g.Node(v)
		node.Width = box.Width
		node.Height = box.Height
		center := box.Center()
		node.X = center.X
		node.Y = center.Y
	}
	for _, v := range g.Children("") {
		dfs(v)
	}
}

// routeStraightEdges connects every edge with a two-point straight segment
// clipped to the endpoint borders.
func routeStraightEdges(g *Graph) {
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		nodeV := g.Node(e.V)
		nodeW := g.Node(e.W)
		edge.Points = geo.Points{
			clipToBorder(nodeV, geo.NewPoint(nodeW.X, nodeW.Y)),
			clipToBorder(nodeW, geo.NewPoint(nodeV.X, nodeV.Y)),
		}
	}
}

// clipToBorder returns where the segment from node's center toward the given
// point crosses the node's box, or the center itself when the target sits
// inside the box.
func clipToBorder(node *NodeLabel, toward *geo.Point) *geo.Point {
	box := geo.NewBoxFromCenter(geo.NewPoint(node.X, node.Y), node.Width, node.Height)
	seg := geo.NewSegment(box.Center(), toward)
	if pts := box.Intersections(*seg); len(pts) > 0 {
		return pts[0]
	}
	return box.Center()
}

// positionSimpleSelfEdges restores stashed self loops with the standard loop
// shape on the node's right side.
func positionSimpleSelfEdges(g *Graph) {
	sep := g.Label().NodeSep
	for _, v := range g.Nodes() {
		node := g.Node(v)
		for _, selfEdge := range node.SelfEdges {
			x := node.X + node.Width/2
			y := node.Y
			dx := sep / 2
			dy := node.Height / 2
			g.SetEdgeKey(selfEdge.Key, selfEdge.Label)
			selfEdge.Label.Points = geo.Points{
				geo.NewPoint(x+2*dx/3, y-dy),
				geo.NewPoint(x+5*dx/6, y-dy),
				geo.NewPoint(x+dx, y),
				geo.NewPoint(x+5*dx/6, y+dy),
				geo.NewPoint(x+2*dx/3, y+dy),
			}
			selfEdge.Label.X = go2.Pointer(x + dx)
			selfEdge.Label.Y = go2.Pointer(y)
		}
		node.SelfEdges = nil
	}
}
