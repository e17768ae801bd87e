package layout

import "golang.org/x/image/math/fixed"

// LineCount returns the number of wrapped lines.
func (ld *LayoutData) LineCount() int { return len(ld.Lines) }

// Line returns the i'th line.
func (ld *LayoutData) Line(i int) LineData { return ld.Lines[i] }

// RunsInLine returns the run sub-ranges of line i in visual (left-to-right)
// order.
func (ld *LayoutData) RunsInLine(i int) []LineRun {
	return orderedByVisualPosition(ld.Lines[i].LineRuns)
}

// ClustersOf returns the cluster indices for lr in visual order, reversing
// the stored logical order when its owning run is RTL (spec §9).
func (ld *LayoutData) ClustersOf(lr LineRun) []int {
	return visualClusterIndices(lr.ClusterRange, ld.Runs[lr.RunIndex].RTL())
}

// GlyphsOf returns the glyph indices belonging to cluster index ci.
func (ld *LayoutData) GlyphsOf(ci int) []int {
	gr := ld.Clusters[ci].GlyphRange
	out := make([]int, 0, gr.End-gr.Start)
	for i := gr.Start; i < gr.End; i++ {
		out = append(out, i)
	}
	return out
}

// WidthFixed returns the layout's content width: the greatest line advance actually
// used, capped by the wrap width passed to BreakLines.
func (ld *LayoutData) WidthFixed() fixed.Int26_6 { return ld.Width }

// HeightFixed sums every line's band height (ascent+descent+leading).
func (ld *LayoutData) HeightFixed() fixed.Int26_6 {
	var h fixed.Int26_6
	for _, l := range ld.Lines {
		h += l.Metrics.Ascent + l.Metrics.Descent + l.Metrics.Leading
	}
	return h
}
