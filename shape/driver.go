// Package shape drives cluster-by-cluster font fallback and harfbuzz
// shaping over a ranged-style partition, appending RunData, ClusterData,
// and Glyph entries to a layout.LayoutData (spec §4.6).
package shape

import (
	"unicode"

	"github.com/go-richtext/richlayout/font"
	"github.com/go-richtext/richlayout/internal/fixedutil"
	"github.com/go-richtext/richlayout/layout"
	"github.com/go-richtext/richlayout/resolve"
	"github.com/go-richtext/richlayout/style"

	"github.com/go-text/typesetting/di"
	ttfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/opentype/loader"
	"github.com/go-text/typesetting/segmenter"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/exp/slices"
	"golang.org/x/image/math/fixed"
)

// Driver shapes a paragraph's resolved style spans into a LayoutData. A
// Driver holds reusable scratch state and a harfbuzz shaper instance; reuse
// one per FontContext the way the font-fallback cache is reused across
// builds.
type Driver struct {
	reg    *font.Registry
	fc     *resolve.FallbackCache
	shaper shaping.HarfbuzzShaper
	seg    segmenter.Segmenter
}

// NewDriver constructs a shaping driver over reg, reusing fc for font
// fallback resolution.
func NewDriver(reg *font.Registry, fc *resolve.FallbackCache) *Driver {
	return &Driver{reg: reg, fc: fc}
}

// segment is an open run of clusters sharing a resolved font, bidi level,
// script, and style span.
type segment struct {
	spanIdx   int
	handle    resolve.FontHandle
	synthesis font.Synthesis
	level     uint8
	script    language.Script
	start     int // rune index, inclusive
	end       int // rune index, exclusive
}

func (s segment) sameKeyAs(o segment) bool {
	return s.spanIdx == o.spanIdx && s.handle.CacheKey == o.handle.CacheKey &&
		s.level == o.level && s.script == o.script
}

// Shape appends runs/clusters/glyphs for text, whose byte ranges are
// described by spans (a ranged-style partition tiling [0, len(text))), to
// ld. bidi carries the per-rune embedding levels computed separately (spec
// §4.4); in resolves the spans' interned family/variation/feature handles.
func (d *Driver) Shape(ld *layout.LayoutData, text string, spans []style.RangedStyle, bidi resolve.BidiResult, in *resolve.Interner) {
	if len(spans) == 0 {
		return
	}
	runes, byteOf := explodeRunes(text)
	if len(runes) == 0 {
		return
	}
	spanOf := spanIndexer(spans, byteOf)
	breakAt := lineBreakClasses(&d.seg, runes)

	d.fc.Reset()
	var open *segment
	flush := func(end int) {
		if open == nil || open.start >= end {
			return
		}
		seg := *open
		seg.end = end
		d.shapeSegment(ld, runes, byteOf, spans[seg.spanIdx], seg, breakAt, in)
	}

	d.seg.Init(runes)
	iter := d.seg.GraphemeIterator()
	currentSpan := -1
	for iter.Next() {
		g := iter.Grapheme()
		start := g.Offset

		spanIdx := spanOf(start)
		lvl := uint8(0)
		if bidi.BaseLevelRTL {
			lvl = 1
		}
		if len(bidi.Levels) > start {
			lvl = bidi.Levels[start]
		}
		script := clusterScript(g.Text)

		span := spans[spanIdx]
		attrs := font.Attributes{Stretch: span.Style.Stretch, Weight: span.Style.Weight, Style: span.Style.Style}
		if spanIdx != currentSpan {
			currentSpan = spanIdx
			d.fc.SelectFamilies(spanIdx, in.FamilyStack(span.Style.FontStack), attrs)
		}
		handle, synth, ok := d.fc.MapCluster(g.Text, attrs)
		if !ok {
			// No candidate covers this cluster at all: close whatever
			// segment was open (it must not silently absorb this
			// character at the next flush) and record a zero-width
			// sentinel run/cluster instead, so the run/cluster tiling
			// still spans this character rather than leaving a gap.
			flush(start)
			open = nil
			d.appendSentinel(ld, runes, byteOf, span, start, start+len(g.Text), lvl, breakAt)
			continue
		}

		cur := segment{spanIdx: spanIdx, handle: handle, synthesis: synth, level: lvl, script: script, start: start}
		if open == nil {
			open = &cur
			open.start = start
		} else if !open.sameKeyAs(cur) {
			flush(start)
			cur.start = start
			open = &cur
		}
	}
	if open != nil {
		flush(len(runes))
	}

	ld.Finish()
}

// explodeRunes converts text to a rune slice and a rune-index -> byte-offset
// table (len(byteOf) == len(runes)+1, with the final entry == len(text)).
func explodeRunes(text string) ([]rune, []int) {
	runes := make([]rune, 0, len(text))
	byteOf := make([]int, 0, len(text)+1)
	for i, r := range text {
		runes = append(runes, r)
		byteOf = append(byteOf, i)
	}
	byteOf = append(byteOf, len(text))
	return runes, byteOf
}

// spanIndexer returns a function mapping a rune index to its style-span
// index, using byteOf to translate back to the spans' byte ranges.
func spanIndexer(spans []style.RangedStyle, byteOf []int) func(runeIdx int) int {
	return func(runeIdx int) int {
		pos := byteOf[runeIdx]
		for i, s := range spans {
			if s.Range.Contains(pos) {
				return i
			}
		}
		return len(spans) - 1
	}
}

// clusterScript reports the Unicode script of a grapheme cluster, skipping
// script-neutral (Common) runes the way the teacher's splitByScript does,
// so punctuation inherits its neighbor's script instead of forcing a break.
func clusterScript(text []rune) language.Script {
	for _, r := range text {
		if s := language.LookupScript(r); s != language.Common {
			return s
		}
	}
	if len(text) > 0 {
		return language.LookupScript(text[0])
	}
	return language.Common
}

// lineBreakClasses runs the UAX #14 line-break segmenter once over the
// whole paragraph and records, for the last rune of each break segment,
// whether the following position is a mandatory or merely allowed break.
func lineBreakClasses(seg *segmenter.Segmenter, runes []rune) []layout.BreakClass {
	out := make([]layout.BreakClass, len(runes))
	seg.Init(runes)
	it := seg.LineIterator()
	for it.Next() {
		ln := it.Line()
		last := ln.Offset + len(ln.Text) - 1
		if last < 0 || last >= len(out) {
			continue
		}
		if ln.IsMandatoryBreak {
			out[last] = layout.BreakMandatory
		} else {
			out[last] = layout.BreakAllowed
		}
	}
	return out
}

// shapeSegment invokes harfbuzz over seg and appends the resulting run,
// clusters, and glyphs to ld. seg's start/end are rune indices into runes
// (what the shaper and the segmenter operate on); byteOf translates them
// back to the byte offsets RunData/ClusterData.TextRange store (spec §3).
func (d *Driver) shapeSegment(ld *layout.LayoutData, runes []rune, byteOf []int, span style.RangedStyle, seg segment, breakAt []layout.BreakClass, in *resolve.Interner) {
	face, ok := d.reg.Face(seg.handle.FontID)
	if !ok {
		return
	}

	dir := di.DirectionLTR
	if seg.level%2 == 1 {
		dir = di.DirectionRTL
	}

	size := fixedutil.FromFloat32(span.Style.FontSize)
	input := shaping.Input{
		Text:      runes,
		RunStart:  seg.start,
		RunEnd:    seg.end,
		Direction: dir,
		Face:      face,
		Size:      size,
		Script:    seg.script,
		Language:  span.Style.Locale,
	}
	input.FontFeatures = toFontFeatures(in.Features(span.Style.Features))

	out := d.shaper.Shape(input)

	coords := variationCoords(in.Variations(span.Style.Variations))
	normCoords := face.NormalizeVariations(coords)

	styleIndex := ld.InternStyle(span.Style)

	runData := layout.RunData{
		FontIndex:    ld.InternFont(seg.handle),
		StyleIndex:   styleIndex,
		FontSize:     span.Style.FontSize,
		Synthesis:    seg.synthesis,
		CoordsRange:  ld.InternCoords(coords),
		Metrics:      scaledMetrics(face, size, normCoords),
		TextRange:    layout.Range{Start: byteOf[seg.start], End: byteOf[seg.end]},
		BidiLevel:    seg.level,
		ClusterRange: layout.Range{Start: len(ld.Clusters), End: len(ld.Clusters)},
	}

	rawClusters := groupByCluster(out.Glyphs)
	if seg.level%2 == 1 {
		reverseGlyphClusters(rawClusters)
	}

	wordSpacing := fixedutil.FromFloat32(span.Style.WordSpacing)
	letterSpacing := fixedutil.FromFloat32(span.Style.LetterSpacing)

	ld.Glyphs = slices.Grow(ld.Glyphs, len(out.Glyphs))
	for i, rc := range rawClusters {
		textStart, textEnd := clusterTextRange(rc, rawClusters, i, seg)
		byteStart, byteEnd := byteOf[textStart], byteOf[textEnd]
		glyphStart := len(ld.Glyphs)
		var advance fixed.Int26_6
		for _, g := range rc.glyphs {
			adv := g.XAdvance
			ld.Glyphs = append(ld.Glyphs, layout.Glyph{
				ID:         uint32(g.GlyphID),
				StyleIndex: styleIndex,
				X:          g.XOffset,
				Y:          g.YOffset,
				Advance:    adv,
			})
			advance += adv
		}
		isWS := isWhitespace(runes[textStart:textEnd])
		if isWS {
			advance += wordSpacing
			if n := len(ld.Glyphs); n > glyphStart {
				ld.Glyphs[n-1].Advance += wordSpacing
			}
		}
		advance += letterSpacing
		if n := len(ld.Glyphs); n > glyphStart {
			ld.Glyphs[n-1].Advance += letterSpacing
		}

		brk := layout.BreakProhibited
		if textEnd-1 >= 0 && textEnd-1 < len(breakAt) {
			brk = breakAt[textEnd-1]
		}

		ld.Clusters = append(ld.Clusters, layout.ClusterData{
			GlyphRange:   layout.Range{Start: glyphStart, End: len(ld.Glyphs)},
			TextRange:    layout.Range{Start: byteStart, End: byteEnd},
			Advance:      advance,
			IsWhitespace: isWS,
			Break:        brk,
		})
		runData.Advance += advance
	}
	runData.ClusterRange.End = len(ld.Clusters)

	ld.Runs = append(ld.Runs, runData)
}

// appendSentinel appends a zero-width, glyph-less run/cluster spanning the
// single grapheme cluster [runeStart, runeEnd), for the case where no
// registered font covers it at all. This keeps the run and cluster
// partitions covering every character even when nothing can be shaped for
// it (spec §4.5/§7/§8), rather than leaving a gap or, worse, having the
// next flush fold it into an unrelated font's segment.
func (d *Driver) appendSentinel(ld *layout.LayoutData, runes []rune, byteOf []int, span style.RangedStyle, runeStart, runeEnd int, level uint8, breakAt []layout.BreakClass) {
	styleIndex := ld.InternStyle(span.Style)
	fontIndex := ld.InternFont(resolve.FontHandle{})

	byteStart, byteEnd := byteOf[runeStart], byteOf[runeEnd]
	brk := layout.BreakProhibited
	if runeEnd-1 >= 0 && runeEnd-1 < len(breakAt) {
		brk = breakAt[runeEnd-1]
	}

	clusterIdx := len(ld.Clusters)
	ld.Clusters = append(ld.Clusters, layout.ClusterData{
		GlyphRange:   layout.Range{Start: len(ld.Glyphs), End: len(ld.Glyphs)},
		TextRange:    layout.Range{Start: byteStart, End: byteEnd},
		IsWhitespace: isWhitespace(runes[runeStart:runeEnd]),
		Break:        brk,
	})

	ld.Runs = append(ld.Runs, layout.RunData{
		FontIndex:    fontIndex,
		StyleIndex:   styleIndex,
		FontSize:     span.Style.FontSize,
		TextRange:    layout.Range{Start: byteStart, End: byteEnd},
		BidiLevel:    level,
		ClusterRange: layout.Range{Start: clusterIdx, End: clusterIdx + 1},
	})
}

func isWhitespace(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// glyphCluster is a contiguous run of output glyphs sharing one harfbuzz
// ClusterIndex.
type glyphCluster struct {
	clusterIndex int
	glyphs       []shaping.Glyph
}

func groupByCluster(glyphs []shaping.Glyph) []glyphCluster {
	var out []glyphCluster
	for _, g := range glyphs {
		if len(out) > 0 && out[len(out)-1].clusterIndex == g.ClusterIndex {
			last := &out[len(out)-1]
			last.glyphs = append(last.glyphs, g)
			continue
		}
		out = append(out, glyphCluster{clusterIndex: g.ClusterIndex, glyphs: []shaping.Glyph{g}})
	}
	return out
}

// reverseGlyphClusters puts harfbuzz's left-to-right paint-order raw
// cluster list back into logical (ascending rune) order for an RTL run, so
// storage stays logical and visual order is recovered by reversal at read
// time (spec §9).
func reverseGlyphClusters(rc []glyphCluster) {
	for i, j := 0, len(rc)-1; i < j; i, j = i+1, j-1 {
		rc[i], rc[j] = rc[j], rc[i]
	}
}

// clusterTextRange derives rc's rune range from its successor's cluster
// index (harfbuzz reports only a cluster's start glyph). rawClusters is
// already in logical (ascending rune) order by the time this is called --
// RTL runs are re-reversed into that order before this loop -- so the same
// "next neighbor" rule applies regardless of the run's direction.
func clusterTextRange(rc glyphCluster, all []glyphCluster, idx int, seg segment) (int, int) {
	start := rc.clusterIndex
	end := seg.end
	if idx+1 < len(all) {
		end = all[idx+1].clusterIndex
	}
	if start < seg.start {
		start = seg.start
	}
	if end > seg.end || end <= start {
		end = seg.end
	}
	return start, end
}

// toFontFeatures converts interned feature settings into the shaper's
// tagged form.
func toFontFeatures(settings []style.FeatureSetting) []shaping.FontFeature {
	if len(settings) == 0 {
		return nil
	}
	out := make([]shaping.FontFeature, len(settings))
	for i, s := range settings {
		out[i] = shaping.FontFeature{Tag: loader.MustNewTag(s.Tag.String()), Value: uint32(s.Value)}
	}
	return out
}

// variationCoords flattens interned variation settings into the raw
// (unnormalized) axis-value array RunData.CoordsRange stores. These are
// not threaded into the harfbuzz Input in this version (shaping.Input has
// no variation-coordinate field); they are still used to query
// size-independent face metrics via FaceMetrics.NormalizeVariations below,
// so a variable font's reported ascent/descent reflects the requested
// instance even though glyph outlines do not.
func variationCoords(settings []style.VariationSetting) []float32 {
	if len(settings) == 0 {
		return nil
	}
	out := make([]float32, len(settings))
	for i, s := range settings {
		out[i] = s.Value
	}
	return out
}

func scaledMetrics(face ttfont.Face, size fixed.Int26_6, normCoords []float32) layout.RunMetrics {
	upem := float32(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	ext, ok := face.FontHExtents(normCoords)
	if !ok {
		return layout.RunMetrics{}
	}
	scale := fixedutil.ToFloat32(size) / upem
	return layout.RunMetrics{
		Ascent:  fixedutil.FromFloat32(ext.Ascender * scale),
		Descent: fixedutil.FromFloat32(-ext.Descender * scale),
		Leading: fixedutil.FromFloat32(ext.LineGap * scale),
	}
}
