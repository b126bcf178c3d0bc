// Package dagrelayout is a native port of the dagre layered graph layout:
// cycle breaking, ranking, crossing minimization, and Brandes-Köpf coordinate
// assignment, with compound (nested) node support.
//
// The engine mutates the given graph in place: on return every node label has
// x/y set to its center and every edge label carries its routing points in
// the final coordinate space.
package dagrelayout

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/dagre/graphlib"
	"oss.terrastruct.com/dagre/lib/env"
	"oss.terrastruct.com/dagre/lib/geo"
	"oss.terrastruct.com/dagre/lib/go2"
	"oss.terrastruct.com/dagre/lib/log"
)

// ConfigurableOpts are the spacing knobs callers commonly override without
// touching the graph label.
type ConfigurableOpts struct {
	NodeSep int `json:"nodesep"`
	EdgeSep int `json:"edgesep"`
}

var DefaultOpts = ConfigurableOpts{
	NodeSep: defaultNodeSep,
	EdgeSep: defaultEdgeSep,
}

// LayoutDagre runs the full layered pipeline on g. Remaining options
// (rankdir, ranksep, margins, acyclicer, ranker, align) are read from g's
// label; zero values take the usual dagre defaults.
func LayoutDagre(ctx context.Context, g *Graph, opts *ConfigurableOpts) (err error) {
	defer xdefer.Errorf(&err, "failed to run layered layout")
	if opts == nil {
		opts = &DefaultOpts
	}

	start := time.Now()
	layoutGraph, err := buildLayoutGraph(g, opts)
	if err != nil {
		return err
	}
	runLayout(ctx, layoutGraph)
	updateInputGraph(g, layoutGraph)
	log.Debug(ctx, "layered layout done",
		slog.F("nodes", g.NodeCount()),
		slog.F("edges", g.EdgeCount()),
		slog.F("d", time.Since(start)),
	)
	return nil
}

func runLayout(ctx context.Context, g *Graph) {
	stage := stageTimer(ctx)

	stage("makeSpaceForEdgeLabels", func() { makeSpaceForEdgeLabels(g) })
	stage("removeSelfEdges", func() { removeSelfEdges(g) })
	stage("acyclic", func() { acyclicRun(g) })
	stage("nestingGraph.run", func() { nestingRun(g) })
	stage("rank", func() { rank(asNonCompoundGraph(g)) })
	stage("injectEdgeLabelProxies", func() { injectEdgeLabelProxies(g) })
	stage("removeEmptyRanks", func() { removeEmptyRanks(g) })
	stage("nestingGraph.cleanup", func() { nestingCleanup(g) })
	stage("normalizeRanks", func() { normalizeRanks(g) })
	stage("assignRankMinMax", func() { assignRankMinMax(g) })
	stage("removeEdgeLabelProxies", func() { removeEdgeLabelProxies(g) })
	stage("normalize.run", func() { normalizeRun(g) })
	stage("parentDummyChains", func() { parentDummyChains(g) })
	stage("addBorderSegments", func() { addBorderSegments(g) })
	stage("order", func() { order(g) })
	stage("insertSelfEdges", func() { insertSelfEdges(g) })
	stage("adjustCoordinateSystem", func() { adjustCoordinateSystem(g) })
	stage("position", func() { position(g) })
	stage("positionSelfEdges", func() { positionSelfEdges(g) })
	stage("removeBorderNodes", func() { removeBorderNodes(g) })
	stage("normalize.undo", func() { normalizeUndo(g) })
	stage("fixupEdgeLabelCoords", func() { fixupEdgeLabelCoords(g) })
	stage("undoCoordinateSystem", func() { undoCoordinateSystem(g) })
	stage("translateGraph", func() { translateGraph(g) })
	stage("assignNodeIntersects", func() { assignNodeIntersects(g) })
	stage("reversePoints", func() { reversePointsForReversedEdges(g) })
	stage("acyclic.undo", func() { acyclicUndo(g) })
}

// stageTimer logs per-stage durations when debugging is on; otherwise stages
// run without overhead.
func stageTimer(ctx context.Context) func(string, func()) {
	if !env.Debug() {
		return func(_ string, fn func()) { fn() }
	}
	return func(name string, fn func()) {
		start := time.Now()
		fn()
		log.Debug(ctx, "layout stage",
			slog.F("stage", name),
			slog.F("d", time.Since(start)),
		)
	}
}

// buildLayoutGraph copies the input into a fresh multigraph with defaults
// filled in, so the pipeline's heavy label mutation never leaks into labels
// the caller owns.
func buildLayoutGraph(inputGraph *Graph, opts *ConfigurableOpts) (*Graph, error) {
	if !inputGraph.IsDirected() {
		return nil, errors.New("layered layout requires a directed graph")
	}

	graph := &GraphLabel{
		RankDir: defaultRankDir,
		NodeSep: defaultNodeSep,
		EdgeSep: defaultEdgeSep,
		RankSep: defaultRankSep,
	}
	if in := inputGraph.Label(); in != nil {
		if in.NodeSep > 0 {
			graph.NodeSep = in.NodeSep
		}
		if in.EdgeSep > 0 {
			graph.EdgeSep = in.EdgeSep
		}
		if in.RankSep > 0 {
			graph.RankSep = in.RankSep
		}
		if in.RankDir != "" {
			graph.RankDir = in.RankDir
		}
		graph.MarginX = in.MarginX
		graph.MarginY = in.MarginY
		graph.Align = in.Align
		graph.Acyclicer = in.Acyclicer
		graph.Ranker = in.Ranker
	}
	if opts.NodeSep > 0 {
		graph.NodeSep = float64(opts.NodeSep)
	}
	if opts.EdgeSep > 0 {
		graph.EdgeSep = float64(opts.EdgeSep)
	}

	g := graphlib.New[*NodeLabel, *EdgeLabel, *GraphLabel](graphlib.Options{
		Directed:   true,
		Multigraph: true,
		Compound:   true,
	})
	g.SetLabel(graph)

	for _, v := range inputGraph.Nodes() {
		label := &NodeLabel{}
		if node := inputGraph.Node(v); node != nil {
			label.Width = node.Width
			label.Height = node.Height
		}
		g.SetNode(v, label)
		if err := g.SetParent(v, inputGraph.Parent(v)); err != nil {
			return nil, err
		}
	}

	for _, e := range inputGraph.Edges() {
		label := &EdgeLabel{
			Minlen:      defaultMinlen,
			Weight:      defaultWeight,
			LabelOffset: defaultLabelOffset,
			LabelPos:    defaultLabelPos,
		}
		if edge := inputGraph.EdgeKeyLabel(e); edge != nil {
			if edge.Minlen > 0 {
				label.Minlen = edge.Minlen
			}
			if edge.Weight > 0 {
				label.Weight = edge.Weight
			}
			label.Width = edge.Width
			label.Height = edge.Height
			if edge.LabelOffset > 0 {
				label.LabelOffset = edge.LabelOffset
			}
			if edge.LabelPos != "" {
				label.LabelPos = edge.LabelPos
			}
		}
		g.SetEdgeKey(e, label)
	}

	return g, nil
}

// updateInputGraph copies the layout results back onto the caller's labels.
func updateInputGraph(inputGraph, layoutGraph *Graph) {
	for _, v := range inputGraph.Nodes() {
		inputLabel := inputGraph.Node(v)
		if inputLabel == nil {
			continue
		}
		layoutLabel := layoutGraph.Node(v)
		inputLabel.X = layoutLabel.X
		inputLabel.Y = layoutLabel.Y
		if len(layoutGraph.Children(v)) > 0 {
			inputLabel.Width = layoutLabel.Width
			inputLabel.Height = layoutLabel.Height
		}
	}

	for _, e := range inputGraph.Edges() {
		inputLabel := inputGraph.EdgeKeyLabel(e)
		if inputLabel == nil {
			continue
		}
		layoutLabel := layoutGraph.EdgeKeyLabel(e)
		inputLabel.Points = layoutLabel.Points
		if layoutLabel.X != nil {
			inputLabel.X = layoutLabel.X
			inputLabel.Y = layoutLabel.Y
		}
	}

	if inputGraph.Label() == nil {
		inputGraph.SetLabel(&GraphLabel{})
	}
	inputGraph.Label().Width = layoutGraph.Label().Width
	inputGraph.Label().Height = layoutGraph.Label().Height
}

// makeSpaceForEdgeLabels halves ranksep and doubles every minlen, opening a
// rank between every pair of connected ranks for edge labels to sit in.
// Labels positioned off-center additionally reserve their offset.
func makeSpaceForEdgeLabels(g *Graph) {
	graph := g.Label()
	graph.RankSep /= 2
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		edge.Minlen *= 2
		if strings.ToLower(edge.LabelPos) != "c" {
			if graph.RankDir == "TB" || graph.RankDir == "BT" {
				edge.Width += edge.LabelOffset
			} else {
				edge.Height += edge.LabelOffset
			}
		}
	}
}

// injectEdgeLabelProxies creates a dummy node per labeled edge, ranked
// midway between the edge's endpoints. The proxy keeps the label's rank from
// being compacted away by removeEmptyRanks; it carries no size.
func injectEdgeLabelProxies(g *Graph) {
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		if edge.Width != 0 && edge.Height != 0 {
			v := g.Node(e.V)
			w := g.Node(e.W)
			labelRank := (*w.Rank-*v.Rank)/2 + *v.Rank
			addDummyNode(g, dummyEdgeProxy, &NodeLabel{
				Rank:    go2.Pointer(labelRank),
				EdgeKey: go2.Pointer(e),
			}, "_ep")
		}
	}
}

func assignRankMinMax(g *Graph) {
	maxRank := 0
	for _, v := range g.Nodes() {
		node := g.Node(v)
		if node.BorderTop == "" {
			continue
		}
		node.MinRank = go2.Pointer(*g.Node(node.BorderTop).Rank)
		node.MaxRank = go2.Pointer(*g.Node(node.BorderBottom).Rank)
		maxRank = go2.Max(maxRank, *node.MaxRank)
	}
	g.Label().MaxRank = maxRank
}

func removeEdgeLabelProxies(g *Graph) {
	for _, v := range g.Nodes() {
		node := g.Node(v)
		if node.Dummy == dummyEdgeProxy {
			g.EdgeKeyLabel(*node.EdgeKey).LabelRank = go2.Pointer(*node.Rank)
			g.RemoveNode(v)
		}
	}
}

// translateGraph shifts all coordinates so the drawing starts at the margin
// and records the total size on the graph label.
func translateGraph(g *Graph) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := 0.0, 0.0
	graphLabel := g.Label()
	marginX := graphLabel.MarginX
	marginY := graphLabel.MarginY

	getExtremes := func(x, y, w, h float64) {
		minX = math.Min(minX, x-w/2)
		maxX = math.Max(maxX, x+w/2)
		minY = math.Min(minY, y-h/2)
		maxY = math.Max(maxY, y+h/2)
	}

	for _, v := range g.Nodes() {
		node := g.Node(v)
		getExtremes(node.X, node.Y, node.Width, node.Height)
	}
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		if edge.X != nil {
			getExtremes(*edge.X, *edge.Y, edge.Width, edge.Height)
		}
	}

	minX -= marginX
	minY -= marginY

	for _, v := range g.Nodes() {
		node := g.Node(v)
		node.X -= minX
		node.Y -= minY
	}
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		for _, p := range edge.Points {
			p.X -= minX
			p.Y -= minY
		}
		if edge.X != nil {
			*edge.X -= minX
		}
		if edge.Y != nil {
			*edge.Y -= minY
		}
	}

	graphLabel.Width = maxX - minX + marginX
	graphLabel.Height = maxY - minY + marginY
}

// assignNodeIntersects clips each edge's route to its endpoint borders,
// prepending and appending the boundary crossing points.
func assignNodeIntersects(g *Graph) {
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		nodeV := g.Node(e.V)
		nodeW := g.Node(e.W)
		var p1, p2 *geo.Point
		if len(edge.Points) == 0 {
			p1 = geo.NewPoint(nodeW.X, nodeW.Y)
			p2 = geo.NewPoint(nodeV.X, nodeV.Y)
		} else {
			p1 = edge.Points[0]
			p2 = edge.Points[len(edge.Points)-1]
		}
		points := make(geo.Points, 0, len(edge.Points)+2)
		points = append(points, intersectRect(nodeV, p1))
		points = append(points, edge.Points...)
		points = append(points, intersectRect(nodeW, p2))
		edge.Points = points
	}
}

func fixupEdgeLabelCoords(g *Graph) {
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		if edge.X == nil {
			continue
		}
		if edge.LabelPos == "l" || edge.LabelPos == "r" {
			edge.Width -= edge.LabelOffset
		}
		switch edge.LabelPos {
		case "l":
			*edge.X -= edge.Width/2 + edge.LabelOffset
		case "r":
			*edge.X += edge.Width/2 + edge.LabelOffset
		}
	}
}

func reversePointsForReversedEdges(g *Graph) {
	for _, e := range g.Edges() {
		edge := g.EdgeKeyLabel(e)
		if edge.Reversed {
			for i, j := 0, len(edge.Points)-1; i < j; i, j = i+1, j-1 {
				edge.Points[i], edge.Points[j] = edge.Points[j], edge.Points[i]
			}
		}
	}
}
