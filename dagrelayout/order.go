package dagrelayout

import (
	"math"
)

// order assigns an order attribute to each node in the graph, minimizing
// weighted edge crossings with the layer-by-layer sweep heuristic. Sweeps
// alternate direction, starting upward from the bottom rank, and flip their
// tie-break bias every other pass; the search stops after four consecutive
// sweeps without improvement and the best layering seen wins.
func order(g *Graph) {
	maxRank := maxRankOf(g)
	var downLayerGraphs, upLayerGraphs []*Graph
	for rank := 1; rank <= maxRank; rank++ {
		downLayerGraphs = append(downLayerGraphs, buildLayerGraph(g, rank, true))
	}
	for rank := maxRank - 1; rank >= 0; rank-- {
		upLayerGraphs = append(upLayerGraphs, buildLayerGraph(g, rank, false))
	}

	layering := initOrder(g)
	assignOrder(g, layering)

	bestCC := math.Inf(1)
	var best [][]string

	for i, lastBest := 0, 0; lastBest < 4; i, lastBest = i+1, lastBest+1 {
		lgs := upLayerGraphs
		if i%2 == 1 {
			lgs = downLayerGraphs
		}
		sweepLayerGraphs(lgs, i%4 >= 2)

		layering = buildLayerMatrix(g)
		if cc := crossCount(g, layering); cc < bestCC {
			lastBest = 0
			best = cloneLayering(layering)
			bestCC = cc
		}
	}

	assignOrder(g, best)
}

func sweepLayerGraphs(layerGraphs []*Graph, biasRight bool) {
	cg := newConstraintGraph()
	for _, lg := range layerGraphs {
		root := lg.Label().Root
		sorted := sortSubgraph(lg, root, cg, biasRight)
		for i, v := range sorted.vs {
			lg.Node(v).Order = i
		}
		addSubgraphConstraints(lg, cg, sorted.vs)
	}
}

func assignOrder(g *Graph, layering [][]string) {
	for _, layer := range layering {
		for i, v := range layer {
			g.Node(v).Order = i
		}
	}
}

func cloneLayering(layering [][]string) [][]string {
	out := make([][]string, len(layering))
	for i, layer := range layering {
		out[i] = append([]string{}, layer...)
	}
	return out
}
