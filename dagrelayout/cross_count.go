package dagrelayout

import (
	"sort"
)

// crossCount returns the weighted number of edge crossings in the layering.
func crossCount(g *Graph, layering [][]string) float64 {
	cc := 0.0
	for i := 1; i < len(layering); i++ {
		cc += twoLayerCrossCount(g, layering[i-1], layering[i])
	}
	return cc
}

// twoLayerCrossCount counts crossings between two adjacent layers with the
// accumulator-tree method of Barth, Jünger & Mutzel: edges are visited in
// north order with ties broken by south position, and each edge adds the
// total weight of previously seen edges that end to its right.
func twoLayerCrossCount(g *Graph, northLayer, southLayer []string) float64 {
	southPos := make(map[string]int, len(southLayer))
	for i, v := range southLayer {
		southPos[v] = i
	}

	type southEntry struct {
		pos    int
		weight float64
	}
	var southEntries []southEntry
	for _, v := range northLayer {
		outEdges := g.OutEdges(v)
		entries := make([]southEntry, len(outEdges))
		for i, e := range outEdges {
			entries[i] = southEntry{pos: southPos[e.W], weight: g.EdgeKeyLabel(e).Weight}
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].pos < entries[j].pos })
		southEntries = append(southEntries, entries...)
	}

	firstIndex := 1
	for firstIndex < len(southLayer) {
		firstIndex <<= 1
	}
	treeSize := 2*firstIndex - 1
	firstIndex--
	tree := make([]float64, treeSize)

	cc := 0.0
	for _, entry := range southEntries {
		index := entry.pos + firstIndex
		tree[index] += entry.weight
		weightSum := 0.0
		for index > 0 {
			if index%2 == 1 {
				weightSum += tree[index+1]
			}
			index = (index - 1) >> 1
			tree[index] += entry.weight
		}
		cc += entry.weight * weightSum
	}
	return cc
}
