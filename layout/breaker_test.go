package layout

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

// appendCluster appends a cluster with the given text start, byte width,
// advance, whitespace flag and break class to ld.
func appendCluster(ld *LayoutData, textStart, textLen int, advance fixed.Int26_6, ws bool, brk BreakClass) {
	ld.Clusters = append(ld.Clusters, ClusterData{
		TextRange:    Range{Start: textStart, End: textStart + textLen},
		Advance:      advance,
		IsWhitespace: ws,
		Break:        brk,
	})
}

// singleRun builds a LayoutData with one LTR run spanning every cluster
// already appended to ld.
func singleRun(ld *LayoutData) {
	var advance fixed.Int26_6
	for _, c := range ld.Clusters {
		advance += c.Advance
	}
	ld.Runs = append(ld.Runs, RunData{
		TextRange:    Range{Start: 0, End: ld.Clusters[len(ld.Clusters)-1].TextRange.End},
		Advance:      advance,
		BidiLevel:    0,
		ClusterRange: Range{Start: 0, End: len(ld.Clusters)},
	})
}

func TestBreakLinesSingleLineNoWrap(t *testing.T) {
	ld := &LayoutData{}
	for i, r := range "Hello" {
		appendCluster(ld, i, 1, fixed.I(6), false, BreakAllowed)
		_ = r
	}
	singleRun(ld)

	BreakLines(ld, fixed.I(1000), Start)
	if len(ld.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(ld.Lines))
	}
	if ld.Lines[0].TextRange != (Range{Start: 0, End: 5}) {
		t.Fatalf("unexpected text range: %+v", ld.Lines[0].TextRange)
	}
}

func TestBreakLinesWrapsAtWhitespace(t *testing.T) {
	// "one two three" -- break after "two " so line 0 is 0..8 (including
	// the trailing space) and line 1 is 8..13, matching spec scenario 5.
	ld := &LayoutData{}
	text := "one two three"
	charAdvance := fixed.I(10)
	for i, r := range text {
		ws := r == ' '
		brk := BreakProhibited
		if ws {
			brk = BreakAllowed
		}
		appendCluster(ld, i, 1, charAdvance, ws, brk)
	}
	singleRun(ld)

	// Width that fits "one two" (7 chars) but not "one two three".
	maxAdvance := fixed.I(10 * 8)
	BreakLines(ld, maxAdvance, Start)

	if len(ld.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(ld.Lines))
	}
	if ld.Lines[0].TextRange != (Range{Start: 0, End: 8}) {
		t.Fatalf("line 0 text range = %+v, want 0..8", ld.Lines[0].TextRange)
	}
	if ld.Lines[1].TextRange != (Range{Start: 8, End: 13}) {
		t.Fatalf("line 1 text range = %+v, want 8..13", ld.Lines[1].TextRange)
	}
	if ld.Lines[0].Metrics.TrailingWhitespace == 0 {
		t.Fatalf("expected line 0 to retain trailing whitespace advance")
	}
}

func TestBreakLinesMandatoryBreak(t *testing.T) {
	ld := &LayoutData{}
	appendCluster(ld, 0, 1, fixed.I(6), false, BreakAllowed)
	appendCluster(ld, 1, 1, fixed.I(6), false, BreakMandatory)
	appendCluster(ld, 2, 1, fixed.I(6), false, BreakAllowed)
	singleRun(ld)

	BreakLines(ld, fixed.I(1000), Start)
	if len(ld.Lines) != 2 {
		t.Fatalf("expected 2 lines from the mandatory break, got %d", len(ld.Lines))
	}
	if ld.Lines[0].TextRange != (Range{Start: 0, End: 2}) {
		t.Fatalf("line 0 text range = %+v, want 0..2", ld.Lines[0].TextRange)
	}
}

func TestVisualOrderReversesRTLMiddleRun(t *testing.T) {
	// Three runs at levels 0, 1, 0 -- the middle (odd) run should reverse
	// in place, leaving the overall run order unchanged (spec scenario 2).
	ld := &LayoutData{}
	appendCluster(ld, 0, 3, fixed.I(30), false, BreakAllowed) // run0: "abc"
	appendCluster(ld, 3, 6, fixed.I(30), false, BreakAllowed) // run1: hebrew (1 cluster, for simplicity)
	appendCluster(ld, 9, 3, fixed.I(30), false, BreakAllowed) // run2: "def"
	ld.Runs = []RunData{
		{TextRange: Range{Start: 0, End: 3}, Advance: fixed.I(30), BidiLevel: 0, ClusterRange: Range{Start: 0, End: 1}},
		{TextRange: Range{Start: 3, End: 9}, Advance: fixed.I(30), BidiLevel: 1, ClusterRange: Range{Start: 1, End: 2}},
		{TextRange: Range{Start: 9, End: 12}, Advance: fixed.I(30), BidiLevel: 0, ClusterRange: Range{Start: 2, End: 3}},
	}
	ld.HasBidi = true

	BreakLines(ld, fixed.I(1000), Start)
	if len(ld.Lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(ld.Lines))
	}
	runs := ld.RunsInLine(0)
	if len(runs) != 3 {
		t.Fatalf("expected 3 line-runs, got %d", len(runs))
	}
	// A single odd-level run sandwiched between two even-level runs reverses
	// on its own and does not move relative to its neighbors.
	if runs[0].RunIndex != 0 || runs[1].RunIndex != 1 || runs[2].RunIndex != 2 {
		t.Fatalf("unexpected visual run order: %+v", runs)
	}
}
