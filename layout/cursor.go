package layout

import "golang.org/x/image/math/fixed"

// CursorPath names a cluster by its position in the layout tree rather than
// by coordinate or text offset, so it can be re-resolved after any
// read-only change to how the layout is rendered (spec §4.8).
type CursorPath struct {
	LineIndex    int
	RunIndex     int
	ClusterIndex int
}

// Cursor is the result of a hit-test: a text position plus enough context
// to place a caret and know which side of it the position leans toward.
type Cursor struct {
	Path      CursorPath
	Offset    fixed.Int26_6
	IsLeading bool
	IsInside  bool
}

// FromPoint resolves the cursor nearest (x, y) in ld's rendered layout.
// Lines are assumed stacked top-down starting at y=0 using each line's
// ascent+descent+leading as its band height; callers that apply their own
// vertical layout should translate y into that space first.
func FromPoint(ld *LayoutData, x, y fixed.Int26_6) Cursor {
	if len(ld.Lines) == 0 {
		return Cursor{IsLeading: true}
	}

	lineIdx, top := locateLine(ld, y)
	line := ld.Lines[lineIdx]
	below := y > top+line.Metrics.Ascent+line.Metrics.Descent+line.Metrics.Leading/2
	if lineIdx == 0 && y < top {
		x = 0
	}

	lastEdge := line.Metrics.Offset
	for _, lr := range orderedByVisualPosition(line.LineRuns) {
		run := ld.Runs[lr.RunIndex]
		rtl := run.RTL()
		clusters := visualClusterIndices(lr.ClusterRange, rtl)
		for _, ci := range clusters {
			adv := ld.Clusters[ci].Advance
			farEdge := lastEdge + adv
			if x >= lastEdge && x < farEdge {
				leading := x <= lastEdge+adv/2
				offset := lastEdge
				if !leading {
					offset = farEdge
				}
				// ci is already the logical cluster index (visualClusterIndices
				// yields logical indices in visual order, reversed for RTL).
				return Cursor{
					Path:      CursorPath{LineIndex: lineIdx, RunIndex: lr.RunIndex, ClusterIndex: ci},
					Offset:    offset,
					IsLeading: leading,
					IsInside:  !below,
				}
			}
			lastEdge = farEdge
		}
	}

	if x < line.Metrics.Offset {
		return Cursor{
			Path:      CursorPath{LineIndex: lineIdx, RunIndex: line.RunRange.Start, ClusterIndex: 0},
			Offset:    line.Metrics.Offset,
			IsLeading: true,
			IsInside:  false,
		}
	}
	// Past the trailing edge of the last cluster: offset is the line's
	// advance (trailing whitespace excluded, per line.Metrics.Advance),
	// not the raw sum of every cluster's advance.
	lastRun := line.LineRuns[len(line.LineRuns)-1]
	return Cursor{
		Path:      CursorPath{LineIndex: lineIdx, RunIndex: lastRun.RunIndex, ClusterIndex: lastRun.ClusterRange.End - 1},
		Offset:    line.Metrics.Offset + line.Metrics.Advance,
		IsLeading: false,
		IsInside:  !below,
	}
}

// FromPosition resolves the cursor for the text-byte offset pos.
func FromPosition(ld *LayoutData, pos int) Cursor {
	if len(ld.Lines) == 0 || pos >= ld.TextLen {
		return trailingCursor(ld)
	}
	for li, line := range ld.Lines {
		if pos < line.TextRange.Start || pos >= line.TextRange.End {
			continue
		}
		edge := line.Metrics.Offset
		for _, lr := range orderedByVisualPosition(line.LineRuns) {
			for _, ci := range visualClusterIndices(lr.ClusterRange, ld.Runs[lr.RunIndex].RTL()) {
				cl := ld.Clusters[ci]
				if pos >= cl.TextRange.Start && pos < cl.TextRange.End {
					return Cursor{
						Path:      CursorPath{LineIndex: li, RunIndex: lr.RunIndex, ClusterIndex: ci},
						Offset:    edge,
						IsLeading: true,
						IsInside:  true,
					}
				}
				edge += cl.Advance
			}
		}
	}
	return trailingCursor(ld)
}

func trailingCursor(ld *LayoutData) Cursor {
	if len(ld.Lines) == 0 {
		return Cursor{IsLeading: true}
	}
	li := len(ld.Lines) - 1
	line := ld.Lines[li]
	lastRun := line.LineRuns[len(line.LineRuns)-1]
	return Cursor{
		Path:      CursorPath{LineIndex: li, RunIndex: lastRun.RunIndex, ClusterIndex: lastRun.ClusterRange.End - 1},
		Offset:    line.Metrics.Offset + line.Metrics.Advance,
		IsLeading: false,
		IsInside:  false,
	}
}

func locateLine(ld *LayoutData, y fixed.Int26_6) (int, fixed.Int26_6) {
	var top fixed.Int26_6
	for i, line := range ld.Lines {
		height := line.Metrics.Ascent + line.Metrics.Descent + line.Metrics.Leading
		if y < top+height || i == len(ld.Lines)-1 {
			return i, top
		}
		top += height
	}
	return 0, 0
}

func orderedByVisualPosition(runs []LineRun) []LineRun {
	out := make([]LineRun, len(runs))
	for _, lr := range runs {
		out[lr.VisualPosition] = lr
	}
	return out
}

// visualClusterIndices returns a run's cluster indices within rng in
// visual (left-to-right) order: unchanged for LTR, reversed for RTL, since
// clusters are always stored in logical order (spec §9).
func visualClusterIndices(rng Range, rtl bool) []int {
	n := rng.End - rng.Start
	out := make([]int, n)
	if !rtl {
		for i := range out {
			out[i] = rng.Start + i
		}
	} else {
		for i := range out {
			out[i] = rng.End - 1 - i
		}
	}
	return out
}
