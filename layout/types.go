// Package layout owns LayoutData -- the buffers a build produces -- plus
// line breaking, visual reordering, alignment, and cursor hit-testing over
// it. It is independent of FontContext/LayoutContext once a build finishes.
package layout

import (
	"github.com/go-richtext/richlayout/font"
	"github.com/go-richtext/richlayout/resolve"
	"github.com/go-richtext/richlayout/style"
	"golang.org/x/image/math/fixed"
)

// Range is a half-open [Start, End) span, reused for byte text ranges,
// cluster ranges, glyph ranges, and run ranges alike.
type Range = style.Range

// Alignment selects how a line's free space is distributed.
type Alignment uint8

const (
	Start Alignment = iota
	End
	Middle
	Justified
)

// BreakClass classifies the line-break opportunity immediately following a
// cluster, per the Unicode line-breaking algorithm.
type BreakClass uint8

const (
	BreakProhibited BreakClass = iota
	BreakAllowed
	BreakMandatory
)

// RunMetrics holds a run's scaled font metrics.
type RunMetrics struct {
	Ascent, Descent, Leading fixed.Int26_6
}

// RunData is a maximal span of text sharing one font, bidi level, script,
// and resolved style (spec glossary: Run).
type RunData struct {
	FontIndex    int
	StyleIndex   int
	FontSize     float32
	Synthesis    font.Synthesis
	CoordsRange  Range
	Metrics      RunMetrics
	Advance      fixed.Int26_6
	TextRange    Range
	BidiLevel    uint8
	ClusterRange Range
}

// RTL reports whether the run's bidi level is odd.
func (r RunData) RTL() bool { return r.BidiLevel%2 == 1 }

// ClusterData is a minimal shaping unit mapping atomically to one or more
// glyphs (spec glossary: Cluster). Clusters are stored in logical text
// order within a run; visual order is synthesized by reversal for RTL runs
// rather than duplicated in storage (spec §9).
type ClusterData struct {
	GlyphRange   Range
	TextRange    Range
	Advance      fixed.Int26_6
	IsWhitespace bool
	Break        BreakClass
}

// Glyph is one positioned, shaped glyph.
type Glyph struct {
	ID         uint32
	StyleIndex int
	X, Y       fixed.Int26_6
	Advance    fixed.Int26_6
}

// LineRun re-points to an entry in LayoutData.Runs, with a possibly-trimmed
// cluster sub-range (for soft breaks inside a run) and the run's visual
// position within the line.
type LineRun struct {
	RunIndex       int
	ClusterRange   Range
	VisualPosition int
	X              fixed.Int26_6
}

// LineMetrics holds a line's vertical placement and trailing-whitespace
// advance (the latter excluded from alignment and hit-testing bounds).
type LineMetrics struct {
	Offset             fixed.Int26_6
	Baseline           fixed.Int26_6
	Leading            fixed.Int26_6
	Ascent             fixed.Int26_6
	Descent            fixed.Int26_6
	Advance            fixed.Int26_6
	TrailingWhitespace fixed.Int26_6
}

// LineData is one wrapped row of text.
type LineData struct {
	RunRange  Range
	LineRuns  []LineRun
	Metrics   LineMetrics
	TextRange Range
}

// LayoutData is the complete output of a build: deduplicated fonts and
// variation coordinates, plus runs/clusters/glyphs/lines in the relationship
// spec §3 describes.
type LayoutData struct {
	Scale        float32
	HasBidi      bool
	BaseLevelRTL bool
	TextLen      int
	Width        fixed.Int26_6
	FullWidth    fixed.Int26_6
	Height       fixed.Int26_6

	// Styles retains resolved styles for glyph-level lookup (at minimum
	// each style's effective line-height multiplier).
	Styles []style.ResolvedStyle
	// Fonts is the deduplicated list of fonts referenced by runs.
	Fonts []resolve.FontHandle
	// Coords is the flat normalized-variation-coord arena shared by runs
	// via RunData.CoordsRange.
	Coords []float32

	Runs     []RunData
	Clusters []ClusterData
	Glyphs   []Glyph
	Lines    []LineData
}

// Reset empties ld in preparation for reuse, as build_into requires on
// empty input (spec §7).
func (ld *LayoutData) Reset() {
	ld.Scale = 0
	ld.HasBidi = false
	ld.BaseLevelRTL = false
	ld.TextLen = 0
	ld.Width, ld.FullWidth, ld.Height = 0, 0, 0
	ld.Styles = ld.Styles[:0]
	ld.Fonts = ld.Fonts[:0]
	ld.Coords = ld.Coords[:0]
	ld.Runs = ld.Runs[:0]
	ld.Clusters = ld.Clusters[:0]
	ld.Glyphs = ld.Glyphs[:0]
	ld.Lines = ld.Lines[:0]
}

// InternFont deduplicates h into ld.Fonts by cache key, returning its index.
func (ld *LayoutData) InternFont(h resolve.FontHandle) int {
	for i, f := range ld.Fonts {
		if f.CacheKey == h.CacheKey {
			return i
		}
	}
	ld.Fonts = append(ld.Fonts, h)
	return len(ld.Fonts) - 1
}

// InternCoords deduplicates coords into the shared coords arena, returning
// the range of an equal sequence already stored or of a freshly appended
// copy. An empty slice returns the zero Range, matching the sentinel
// "no variation coordinates" case.
func (ld *LayoutData) InternCoords(coords []float32) Range {
	if len(coords) == 0 {
		return Range{}
	}
	for s := 0; s+len(coords) <= len(ld.Coords); s++ {
		if slicesEqual(ld.Coords[s:s+len(coords)], coords) {
			return Range{Start: s, End: s + len(coords)}
		}
	}
	start := len(ld.Coords)
	ld.Coords = append(ld.Coords, coords...)
	return Range{Start: start, End: start + len(coords)}
}

func slicesEqual(a, b []float32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// InternStyle deduplicates s into ld.Styles by value, returning its index.
func (ld *LayoutData) InternStyle(s style.ResolvedStyle) int {
	for i, st := range ld.Styles {
		if st == s {
			return i
		}
	}
	ld.Styles = append(ld.Styles, s)
	return len(ld.Styles) - 1
}
