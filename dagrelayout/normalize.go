package dagrelayout

import (
	"oss.terrastruct.com/dagre/graphlib"
	"oss.terrastruct.com/dagre/lib/geo"
	"oss.terrastruct.com/dagre/lib/go2"
)

// normalizeRun breaks every edge spanning more than one rank into a chain of
// unit-length edges through dummy nodes, one per intermediate rank. All later
// stages may then assume every edge connects adjacent ranks. The first dummy
// of each chain is recorded on the graph label so normalizeUndo can walk the
// chains back into routing points.
func normalizeRun(g *Graph) {
	g.Label().DummyChains = nil
	for _, e := range g.Edges() {
		normalizeEdge(g, e)
	}
}

func normalizeEdge(g *Graph, e graphlib.EdgeKey) {
	v := e.V
	vRank := *g.Node(v).Rank
	w := e.W
	wRank := *g.Node(w).Rank
	name := e.Name
	edgeLabel := g.EdgeKeyLabel(e)
	labelRank := -1
	if edgeLabel.LabelRank != nil {
		labelRank = *edgeLabel.LabelRank
	}

	if wRank == vRank+1 {
		return
	}

	g.RemoveEdgeKey(e)

	edgeLabel.Points = geo.Points{}
	for i, r := 0, vRank+1; r < wRank; i, r = i+1, r+1 {
		attrs := &NodeLabel{
			Width:     0,
			Height:    0,
			EdgeLabel: edgeLabel,
			EdgeKey:   &graphlib.EdgeKey{V: e.V, W: e.W, Name: e.Name},
			Rank:      go2.Pointer(r),
		}
		dummy := addDummyNode(g, dummyEdge, attrs, "_d")
		if r == labelRank {
			attrs.Width = edgeLabel.Width
			attrs.Height = edgeLabel.Height
			attrs.Dummy = dummyEdgeLabel
			attrs.LabelPos = edgeLabel.LabelPos
		}
		g.SetNamedEdge(v, dummy, name, &EdgeLabel{Weight: edgeLabel.Weight})
		if i == 0 {
			g.Label().DummyChains = append(g.Label().DummyChains, dummy)
		}
		v = dummy
	}
	g.SetNamedEdge(v, w, name, &EdgeLabel{Weight: edgeLabel.Weight})
}

// normalizeUndo restores the original multi-rank edges, folding each dummy
// chain's coordinates into the edge's points and harvesting label geometry
// from the chain's edge-label node.
func normalizeUndo(g *Graph) {
	for _, v := range g.Label().DummyChains {
		node := g.Node(v)
		origLabel := node.EdgeLabel
		g.SetEdgeKey(*node.EdgeKey, origLabel)
		for node != nil && node.Dummy != "" {
			w := g.Successors(v)[0]
			g.RemoveNode(v)
			origLabel.Points = append(origLabel.Points, geo.NewPoint(node.X, node.Y))
			if node.Dummy == dummyEdgeLabel {
				origLabel.X = go2.Pointer(node.X)
				origLabel.Y = go2.Pointer(node.Y)
				origLabel.Width = node.Width
				origLabel.Height = node.Height
			}
			v = w
			node = g.Node(v)
		}
	}
	g.Label().DummyChains = nil
}
