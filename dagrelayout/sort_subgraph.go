package dagrelayout

// sortSubgraph orders the children of v in a layer graph, recursing into
// nested subgraphs first so each one collapses to a single entry with an
// aggregated barycenter. When v is a compound slice its border nodes bracket
// the result and their predecessors' positions are folded into the
// barycenter with weight 2.
func sortSubgraph(g *Graph, v string, cg *constraintGraph, biasRight bool) sortResult {
	movable := g.Children(v)
	node := g.Node(v)
	bl, br := "", ""
	if node != nil {
		bl, br = node.BorderLeftID, node.BorderRightID
	}
	subgraphs := make(map[string]sortResult)

	if bl != "" {
		filtered := movable[:0]
		for _, w := range movable {
			if w != bl && w != br {
				filtered = append(filtered, w)
			}
		}
		movable = filtered
	}

	barycenters := barycenter(g, movable)
	for _, entry := range barycenters {
		if len(g.Children(entry.v)) > 0 {
			subgraphResult := sortSubgraph(g, entry.v, cg, biasRight)
			subgraphs[entry.v] = subgraphResult
			if subgraphResult.hasBarycenter {
				mergeBarycenters(entry, subgraphResult)
			}
		}
	}

	entries := resolveConflicts(barycenters, cg)
	expandSubgraphs(entries, subgraphs)

	result := sortEntries(entries, biasRight)

	if bl != "" {
		result.vs = append(append([]string{bl}, result.vs...), br)
		if preds := g.Predecessors(bl); len(preds) > 0 {
			blPred := g.Node(preds[0])
			brPred := g.Node(g.Predecessors(br)[0])
			if !result.hasBarycenter {
				result.hasBarycenter = true
				result.barycenter = 0
				result.weight = 0
			}
			result.barycenter = (result.barycenter*result.weight +
				float64(blPred.Order) + float64(brPred.Order)) / (result.weight + 2)
			result.weight += 2
		}
	}

	return result
}

func expandSubgraphs(entries []*conflictEntry, subgraphs map[string]sortResult) {
	for _, entry := range entries {
		var expanded []string
		for _, v := range entry.vs {
			if sub, ok := subgraphs[v]; ok {
				expanded = append(expanded, sub.vs...)
			} else {
				expanded = append(expanded, v)
			}
		}
		entry.vs = expanded
	}
}

func mergeBarycenters(target *barycenterEntry, other sortResult) {
	if target.hasBarycenter {
		target.barycenter = (target.barycenter*target.weight +
			other.barycenter*other.weight) / (target.weight + other.weight)
		target.weight += other.weight
	} else {
		target.hasBarycenter = true
		target.barycenter = other.barycenter
		target.weight = other.weight
	}
}
