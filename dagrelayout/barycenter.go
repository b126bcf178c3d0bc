package dagrelayout

// barycenterEntry carries a movable node's weighted mean neighbor position.
// Nodes with no in-edges in the layer graph have no barycenter and keep their
// relative position during sorting.
type barycenterEntry struct {
	v             string
	hasBarycenter bool
	barycenter    float64
	weight        float64
}

func barycenter(g *Graph, movable []string) []*barycenterEntry {
	entries := make([]*barycenterEntry, len(movable))
	for i, v := range movable {
		inV := g.InEdges(v)
		if len(inV) == 0 {
			entries[i] = &barycenterEntry{v: v}
			continue
		}
		sum, weight := 0.0, 0.0
		for _, e := range inV {
			edge := g.EdgeKeyLabel(e)
			nodeU := g.Node(e.V)
			sum += edge.Weight * float64(nodeU.Order)
			weight += edge.Weight
		}
		entries[i] = &barycenterEntry{
			v:             v,
			hasBarycenter: true,
			barycenter:    sum / weight,
			weight:        weight,
		}
	}
	return entries
}
