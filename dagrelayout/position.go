package dagrelayout

// position assigns x and y coordinates to every node. Ranks are stacked
// vertically, each as tall as its tallest node, and x coordinates come from
// the Brandes-Köpf balancer in bk.go.
func position(g *Graph) {
	ncg := asNonCompoundGraph(g)

	positionY(ncg)
	for v, x := range positionX(ncg) {
		ncg.Node(v).X = x
	}
}

func positionY(g *Graph) {
	layering := buildLayerMatrix(g)
	rankSep := g.Label().RankSep
	prevY := 0.0
	for _, layer := range layering {
		maxHeight := 0.0
		for _, v := range layer {
			if h := g.Node(v).Height; h > maxHeight {
				maxHeight = h
			}
		}
		for _, v := range layer {
			g.Node(v).Y = prevY + maxHeight/2
		}
		prevY += maxHeight + rankSep
	}
}
