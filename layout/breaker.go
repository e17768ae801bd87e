package layout

import (
	"github.com/go-richtext/richlayout/internal/fixedutil"
	"golang.org/x/image/math/fixed"
)

// BreakLines partitions ld's runs/clusters (already in logical text order,
// as Finish leaves them) into lines no wider than maxAdvance, reorders each
// line's runs visually per UAX #9 L2 when the layout has bidi content, and
// applies align to the free space on each line (spec §4.7).
//
// ld.Runs, ld.Clusters and ld.Glyphs must already be populated and in
// logical order; BreakLines only appends to ld.Lines (which it first
// truncates to empty) and may widen whitespace-cluster advances and shift
// glyph X coordinates when align is Justified.
func BreakLines(ld *LayoutData, maxAdvance fixed.Int26_6, align Alignment) {
	ld.Lines = ld.Lines[:0]
	totalClusters := len(ld.Clusters)
	if totalClusters == 0 {
		return
	}

	clusterRun := make([]int, totalClusters)
	for ri, r := range ld.Runs {
		for c := r.ClusterRange.Start; c < r.ClusterRange.End; c++ {
			clusterRun[c] = ri
		}
	}

	lineStart := 0
	width := fixed.Int26_6(0)
	trailingWs := fixed.Int26_6(0)
	lastBreak := -1

	type pendingLine struct {
		start, end int
		hardBreak  bool
	}
	var pending []pendingLine

	emit := func(end int, hardBreak bool) {
		pending = append(pending, pendingLine{start: lineStart, end: end, hardBreak: hardBreak})
		lineStart = end
		width = 0
		trailingWs = 0
		lastBreak = -1
	}

	for c := 0; c < totalClusters; {
		cl := &ld.Clusters[c]
		if cl.IsWhitespace {
			trailingWs += cl.Advance
		} else {
			width += trailingWs + cl.Advance
			trailingWs = 0
		}

		if cl.Break == BreakMandatory {
			emit(c+1, true)
			c++
			continue
		}
		if cl.Break == BreakAllowed {
			lastBreak = c
		}

		if width > maxAdvance && lastBreak >= lineStart {
			emit(lastBreak+1, false)
			c = lineStart
			continue
		}
		c++
	}
	if lineStart < totalClusters {
		emit(totalClusters, true)
	}

	for i, pl := range pending {
		isFinal := i == len(pending)-1
		buildLine(ld, clusterRun, pl.start, pl.end, maxAdvance, align, pl.hardBreak || isFinal)
	}

	var widest fixed.Int26_6
	for _, l := range ld.Lines {
		used := l.Metrics.Offset + l.Metrics.Advance
		if used > widest {
			widest = used
		}
	}
	if widest > maxAdvance {
		widest = maxAdvance
	}
	ld.Width = widest
}

// lineRunSlice is the working form of a line's per-run sub-range, before
// the final LineRun/visual-position assignment.
type lineRunSlice struct {
	runIndex     int
	clusterRange Range
	level        uint8
}

func buildLine(ld *LayoutData, clusterRun []int, start, end int, maxAdvance fixed.Int26_6, align Alignment, suppressJustify bool) {
	var slices []lineRunSlice
	for c := start; c < end; {
		ri := clusterRun[c]
		run := ld.Runs[ri]
		segEnd := end
		if run.ClusterRange.End < segEnd {
			segEnd = run.ClusterRange.End
		}
		slices = append(slices, lineRunSlice{runIndex: ri, clusterRange: Range{Start: c, End: segEnd}, level: run.BidiLevel})
		c = segEnd
	}

	visual := visualOrder(slices)

	var (
		advance            fixed.Int26_6
		trailingWhitespace fixed.Int26_6
		ascent, descent    fixed.Int26_6
		leading            fixed.Int26_6
	)
	lineRuns := make([]LineRun, len(slices))
	x := fixed.Int26_6(0)
	for pos, idx := range visual {
		sl := slices[idx]
		run := ld.Runs[sl.runIndex]
		lineHeight := float32(1)
		if run.StyleIndex < len(ld.Styles) {
			lineHeight = ld.Styles[run.StyleIndex].LineHeight
		}
		runAscent := fixedutil.Scale(run.Metrics.Ascent, lineHeight)
		runDescent := fixedutil.Scale(run.Metrics.Descent, lineHeight)
		runLeading := fixedutil.Scale(run.Metrics.Leading, lineHeight)
		if runAscent > ascent {
			ascent = runAscent
		}
		if runDescent+runLeading > descent+leading {
			descent, leading = runDescent, runLeading
		}
		var segAdvance fixed.Int26_6
		for c := sl.clusterRange.Start; c < sl.clusterRange.End; c++ {
			segAdvance += ld.Clusters[c].Advance
		}
		lineRuns[idx] = LineRun{RunIndex: sl.runIndex, ClusterRange: sl.clusterRange, VisualPosition: pos, X: x}
		x += segAdvance
		advance += segAdvance
	}
	// Trailing whitespace (in logical order) does not count toward the
	// advance used for breaking/alignment decisions but is tracked for
	// hit-testing past the last visible cluster.
	for c := end - 1; c >= start; c-- {
		if !ld.Clusters[c].IsWhitespace {
			break
		}
		trailingWhitespace += ld.Clusters[c].Advance
		advance -= ld.Clusters[c].Advance
	}

	line := LineData{
		RunRange:  Range{Start: slices[0].runIndex, End: slices[len(slices)-1].runIndex + 1},
		LineRuns:  lineRuns,
		TextRange: Range{Start: ld.Clusters[start].TextRange.Start, End: ld.Clusters[end-1].TextRange.End},
		Metrics: LineMetrics{
			Ascent:             ascent,
			Descent:            descent,
			Leading:            leading,
			Advance:            advance,
			TrailingWhitespace: trailingWhitespace,
		},
	}

	freeSpace := maxAdvance - advance
	if freeSpace < 0 {
		freeSpace = 0
	}
	switch align {
	case Start:
	case End:
		line.Metrics.Offset = freeSpace
	case Middle:
		line.Metrics.Offset = freeSpace / 2
	case Justified:
		if suppressJustify || freeSpace == 0 {
			break
		}
		justifyLine(ld, &line, freeSpace)
	}

	ld.Lines = append(ld.Lines, line)
}

// visualOrder applies UAX #9 L2 to slices (already in logical/run order),
// returning a permutation of slice indices in left-to-right visual order.
func visualOrder(slices []lineRunSlice) []int {
	order := make([]int, len(slices))
	for i := range order {
		order[i] = i
	}
	if len(slices) == 0 {
		return order
	}
	var highest uint8
	lowestOdd := uint8(255)
	for _, s := range slices {
		if s.level > highest {
			highest = s.level
		}
		if s.level%2 == 1 && s.level < lowestOdd {
			lowestOdd = s.level
		}
	}
	if lowestOdd > highest {
		return order
	}
	for level := highest; level >= lowestOdd; level-- {
		i := 0
		for i < len(order) {
			if slices[order[i]].level >= level {
				j := i
				for j < len(order) && slices[order[j]].level >= level {
					j++
				}
				reverseInts(order[i:j])
				i = j
			} else {
				i++
			}
		}
		if level == 0 {
			break
		}
	}
	return order
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// justifyLine distributes freeSpace across the whitespace clusters of line
// (in visual order), widening each such cluster's advance and shifting the
// X position of every run and glyph that follows it. Lines with no
// whitespace clusters are left unshifted (there is no gap to distribute
// into).
func justifyLine(ld *LayoutData, line *LineData, freeSpace fixed.Int26_6) {
	gaps := 0
	for _, lr := range line.LineRuns {
		for c := lr.ClusterRange.Start; c < lr.ClusterRange.End; c++ {
			if ld.Clusters[c].IsWhitespace {
				gaps++
			}
		}
	}
	if gaps == 0 {
		return
	}
	per := freeSpace / fixed.Int26_6(gaps)
	remainder := freeSpace - per*fixed.Int26_6(gaps)

	// Walk the line's runs in visual order, tracking the cumulative shift
	// applied so far, so every glyph after a widened gap moves with it.
	visual := make([]int, len(line.LineRuns))
	for i, lr := range line.LineRuns {
		visual[lr.VisualPosition] = i
	}

	var shift fixed.Int26_6
	gapsSeen := 0
	for _, i := range visual {
		lr := &line.LineRuns[i]
		lr.X += shift
		run := ld.Runs[lr.RunIndex]
		for g := run.Glyphs(ld, lr.ClusterRange); g.more(); g.next() {
			ld.Glyphs[g.idx].X += shift
		}
		for c := lr.ClusterRange.Start; c < lr.ClusterRange.End; c++ {
			if ld.Clusters[c].IsWhitespace {
				extra := per
				gapsSeen++
				if gapsSeen == gaps {
					extra += remainder
				}
				ld.Clusters[c].Advance += extra
				shift += extra
			}
		}
	}
	line.Metrics.Advance += freeSpace
}

// glyphWalk iterates the glyph indices belonging to the clusters in rng for
// run's cluster range, without allocating.
type glyphWalk struct {
	ld       *LayoutData
	clusters Range
	idx, end int
	c        int
}

// Glyphs returns a walker over the glyphs covered by rng's clusters for r.
func (r RunData) Glyphs(ld *LayoutData, rng Range) *glyphWalk {
	w := &glyphWalk{ld: ld, clusters: rng, c: rng.Start}
	w.loadCluster()
	return w
}

func (w *glyphWalk) loadCluster() {
	for w.c < w.clusters.End {
		gr := w.ld.Clusters[w.c].GlyphRange
		if gr.Start < gr.End {
			w.idx, w.end = gr.Start, gr.End
			return
		}
		w.c++
	}
	w.idx, w.end = 0, 0
}

func (w *glyphWalk) more() bool { return w.c < w.clusters.End }

func (w *glyphWalk) next() {
	w.idx++
	if w.idx >= w.end {
		w.c++
		w.loadCluster()
	}
}
