package layout

import "sort"

// Finish sorts ld.Runs into logical text order (shaping over RTL segments
// may have produced them out of order) and records FullWidth as the sum of
// all run advances (spec §4.7). Each run keeps its ClusterRange; ld.Clusters
// and ld.Glyphs are not reordered. It must run once, after shaping and
// before BreakLines.
func (ld *LayoutData) Finish() {
	if !sort.SliceIsSorted(ld.Runs, func(i, j int) bool {
		return ld.Runs[i].TextRange.Start < ld.Runs[j].TextRange.Start
	}) {
		sort.Slice(ld.Runs, func(i, j int) bool {
			return ld.Runs[i].TextRange.Start < ld.Runs[j].TextRange.Start
		})
	}

	ld.FullWidth = 0
	for _, r := range ld.Runs {
		ld.FullWidth += r.Advance
	}
	ld.TextLen = totalTextLen(ld)
}

func totalTextLen(ld *LayoutData) int {
	max := 0
	for _, r := range ld.Runs {
		if r.TextRange.End > max {
			max = r.TextRange.End
		}
	}
	if max > ld.TextLen {
		return max
	}
	return ld.TextLen
}
