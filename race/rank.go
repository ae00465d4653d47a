package race

import "sort"

// Ranks assigns a dense rank to every entry, rank 0 being the highest count.
// Ties keep the order entries appear in the input, so repeated runs over the
// same snapshot always rank identically.
func Ranks(entries []SnapshotEntry) map[string]int {
	ordered := make([]SnapshotEntry, len(entries))
	copy(ordered, entries)

	// Stable sort on count only; stability supplies the input-order tie-break.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Count > ordered[j].Count
	})

	ranks := make(map[string]int, len(ordered))
	for i, e := range ordered {
		ranks[e.Name] = i
	}
	return ranks
}
