package resolve

import (
	"golang.org/x/text/unicode/bidi"
)

// BidiResult is the outcome of running UAX #9 over one paragraph: a base
// level (false = LTR, true = RTL) and a per-rune embedding level array. The
// resolver never reorders text; it only labels it, exactly as spec §4.4
// requires. When the paragraph needs no bidi resolution, Levels is empty
// and BaseLevelRTL is false (or the caller-supplied override).
type BidiResult struct {
	BaseLevelRTL bool
	// Levels holds one entry per rune of the input text; even values are
	// LTR, odd are RTL (the two-level simplification also used by the
	// teacher's shaperImpl.splitBidi -- see spec §9 Open Questions).
	Levels []uint8
}

// ResolveBidi runs the Unicode Bidirectional Algorithm over text. override,
// if non-nil, forces the paragraph base direction instead of letting the
// algorithm infer it from the first strong character.
func ResolveBidi(text string, override *bool) BidiResult {
	if !NeedsBidi(text) {
		base := false
		if override != nil {
			base = *override
		}
		return BidiResult{BaseLevelRTL: base}
	}

	def := bidi.LeftToRight
	if override != nil && *override {
		def = bidi.RightToLeft
	}

	var p bidi.Paragraph
	p.SetString(text, bidi.DefaultDirection(def))
	ordering, err := p.Order()
	if err != nil {
		return BidiResult{}
	}

	runeCount := 0
	for range text {
		runeCount++
	}
	levels := make([]uint8, runeCount)
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		startRune, endRune := run.Pos()
		level := uint8(0)
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for r := startRune; r <= endRune && r < runeCount; r++ {
			levels[r] = level
		}
	}

	baseRTL := false
	if override != nil {
		baseRTL = *override
	} else if p.IsLeftToRight() {
		baseRTL = false
	} else {
		baseRTL = true
	}
	return BidiResult{BaseLevelRTL: baseRTL, Levels: levels}
}

// NeedsBidi reports whether text contains any character whose bidi class
// requires running the full algorithm (i.e. anything beyond plain LTR
// text): right-to-left letters, arabic letters/numbers, or explicit
// directional formatting characters.
func NeedsBidi(text string) bool {
	for _, r := range text {
		switch bidi.LookupRune(r).Class() {
		case bidi.R, bidi.AL, bidi.AN, bidi.RLE, bidi.RLO, bidi.RLI, bidi.LRE, bidi.LRO, bidi.LRI, bidi.FSI, bidi.PDI, bidi.PDF:
			return true
		}
	}
	return false
}
