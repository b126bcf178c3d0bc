package dagrelayout

// conflictEntry is an ordering unit during crossing minimization: initially a
// single movable node, possibly merged with others when the constraint graph
// forces an order their barycenters disagree with.
type conflictEntry struct {
	vs            []string
	i             int
	hasBarycenter bool
	barycenter    float64
	weight        float64

	indegree int
	in       []*conflictEntry
	out      []*conflictEntry
	merged   bool
}

// resolveConflicts coalesces entries whose barycenters would violate the
// constraint graph cg. Each returned entry keeps the constrained nodes in
// order and carries the weighted average of the merged barycenters, tagged
// with the smallest original index so sorting stays stable.
func resolveConflicts(entries []*barycenterEntry, cg *constraintGraph) []*conflictEntry {
	mapped := make(map[string]*conflictEntry, len(entries))
	ordered := make([]*conflictEntry, len(entries))
	for i, entry := range entries {
		tmp := &conflictEntry{
			vs: []string{entry.v},
			i:  i,
		}
		if entry.hasBarycenter {
			tmp.hasBarycenter = true
			tmp.barycenter = entry.barycenter
			tmp.weight = entry.weight
		}
		mapped[entry.v] = tmp
		ordered[i] = tmp
	}

	for _, e := range cg.Edges() {
		entryV, okV := mapped[e.V]
		entryW, okW := mapped[e.W]
		if okV && okW {
			entryW.indegree++
			entryV.out = append(entryV.out, entryW)
		}
	}

	var sourceSet []*conflictEntry
	for _, entry := range ordered {
		if entry.indegree == 0 {
			sourceSet = append(sourceSet, entry)
		}
	}

	return doResolveConflicts(sourceSet)
}

func doResolveConflicts(sourceSet []*conflictEntry) []*conflictEntry {
	var entries []*conflictEntry

	for len(sourceSet) > 0 {
		entry := sourceSet[len(sourceSet)-1]
		sourceSet = sourceSet[:len(sourceSet)-1]
		entries = append(entries, entry)

		// in-edges are scanned newest first so the most recently queued
		// predecessor merges ahead of older ones
		in := entry.in
		for i, j := 0, len(in)-1; i < j; i, j = i+1, j-1 {
			in[i], in[j] = in[j], in[i]
		}
		for _, uEntry := range in {
			if uEntry.merged {
				continue
			}
			if !uEntry.hasBarycenter || !entry.hasBarycenter ||
				uEntry.barycenter >= entry.barycenter {
				mergeEntries(entry, uEntry)
			}
		}

		for _, wEntry := range entry.out {
			wEntry.in = append(wEntry.in, entry)
			wEntry.indegree--
			if wEntry.indegree == 0 {
				sourceSet = append(sourceSet, wEntry)
			}
		}
	}

	var out []*conflictEntry
	for _, entry := range entries {
		if !entry.merged {
			out = append(out, entry)
		}
	}
	return out
}

func mergeEntries(target, source *conflictEntry) {
	sum, weight := 0.0, 0.0
	if target.weight != 0 {
		sum += target.barycenter * target.weight
		weight += target.weight
	}
	if source.weight != 0 {
		sum += source.barycenter * source.weight
		weight += source.weight
	}
	target.vs = append(append([]string{}, source.vs...), target.vs...)
	target.hasBarycenter = true
	target.barycenter = sum / weight
	target.weight = weight
	if source.i < target.i {
		target.i = source.i
	}
	source.merged = true
}
