package dagrelayout

import (
	"sort"
)

type sortResult struct {
	vs            []string
	hasBarycenter bool
	barycenter    float64
	weight        float64
}

// sortEntries orders entries by barycenter. Entries without a barycenter are
// fixed: they are re-inserted at their original index as the sortable entries
// are consumed. Ties flip direction with biasRight so repeated sweeps do not
// get stuck mirroring each other.
func sortEntries(entries []*conflictEntry, biasRight bool) sortResult {
	sortable, unsortable := partition(entries, func(entry *conflictEntry) bool {
		return entry.hasBarycenter
	})
	sort.Slice(unsortable, func(i, j int) bool {
		return unsortable[i].i < unsortable[j].i
	})
	sort.Slice(sortable, func(i, j int) bool {
		return compareWithBias(sortable[i], sortable[j], biasRight) < 0
	})

	var vs []string
	sum, weight := 0.0, 0.0
	vsIndex := 0

	vsIndex = consumeUnsortable(&vs, &unsortable, vsIndex)
	for _, entry := range sortable {
		vsIndex += len(entry.vs)
		vs = append(vs, entry.vs...)
		sum += entry.barycenter * entry.weight
		weight += entry.weight
		vsIndex = consumeUnsortable(&vs, &unsortable, vsIndex)
	}

	result := sortResult{vs: vs}
	if weight != 0 {
		result.hasBarycenter = true
		result.barycenter = sum / weight
		result.weight = weight
	}
	return result
}

func consumeUnsortable(vs *[]string, unsortable *[]*conflictEntry, index int) int {
	for len(*unsortable) > 0 && (*unsortable)[0].i <= index {
		entry := (*unsortable)[0]
		*unsortable = (*unsortable)[1:]
		*vs = append(*vs, entry.vs...)
		index++
	}
	return index
}

func compareWithBias(entryV, entryW *conflictEntry, biasRight bool) int {
	if entryV.barycenter < entryW.barycenter {
		return -1
	}
	if entryV.barycenter > entryW.barycenter {
		return 1
	}
	if biasRight {
		return entryW.i - entryV.i
	}
	return entryV.i - entryW.i
}
