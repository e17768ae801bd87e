package richlayout

import (
	"testing"

	"github.com/go-richtext/richlayout/font"
	"github.com/go-richtext/richlayout/font/gofont"
	"github.com/go-richtext/richlayout/layout"
	"github.com/go-richtext/richlayout/style"
	"golang.org/x/image/math/fixed"
)

func newFontContext() *FontContext {
	fcx := NewFontContext()
	gofont.Register(fcx.Registry)
	return fcx
}

// TestBuildPlainASCIIOneFamily covers spec scenario 1: a single family, no
// bidi content, one run per style span.
func TestBuildPlainASCIIOneFamily(t *testing.T) {
	fcx := newFontContext()
	lcx := NewLayoutContext()

	b := lcx.RangedBuilder(fcx, "Hello, world!", 1.0)
	b.PushDefault(style.FontStack{Source: "Go"})
	b.PushDefault(style.FontSize{Size: 16})

	ld := b.Build(fixed.I(1000), layout.Start)
	if ld == nil {
		t.Fatal("expected a non-nil layout for non-empty text")
	}
	if ld.HasBidi {
		t.Fatalf("plain ASCII text should not be flagged as bidi")
	}
	if len(ld.Runs) == 0 {
		t.Fatal("expected at least one run")
	}
	if len(ld.Lines) != 1 {
		t.Fatalf("expected a single line at this width, got %d", len(ld.Lines))
	}
	assertInvariants(t, ld)
}

// TestBuildMixedBidi covers spec scenario 2: Latin text surrounding an
// embedded RTL (Hebrew) span produces multiple runs with mixed levels.
func TestBuildMixedBidi(t *testing.T) {
	fcx := newFontContext()
	lcx := NewLayoutContext()

	text := "abc אבג def"
	b := lcx.RangedBuilder(fcx, text, 1.0)
	b.PushDefault(style.FontStack{Source: "Go"})
	b.PushDefault(style.FontSize{Size: 16})

	ld := b.Build(fixed.I(1000), layout.Start)
	if ld == nil {
		t.Fatal("expected a non-nil layout")
	}
	if !ld.HasBidi {
		t.Fatalf("expected HasBidi for text containing Hebrew")
	}
	assertInvariants(t, ld)
}

// TestBuildFallsBackToSymFont covers spec scenario 3: a codepoint the
// requested family may not cover (U+2603 SNOWMAN) must still yield a layout
// whose runs tile the text. Only the families named in the stack are tried;
// a cluster none of them covers becomes a zero-width sentinel run.
func TestBuildFallsBackToSymFont(t *testing.T) {
	fcx := newFontContext()
	lcx := NewLayoutContext()

	b := lcx.RangedBuilder(fcx, "snow ☃", 1.0)
	b.PushDefault(style.FontStack{Source: "Go"})
	b.PushDefault(style.FontSize{Size: 16})

	ld := b.Build(fixed.I(1000), layout.Start)
	if ld == nil {
		t.Fatal("expected a non-nil layout even when falling back")
	}
	assertInvariants(t, ld)
}

// TestBuildRangedStyle covers spec scenario 4: a ranged style push (bold
// over a sub-range) should split the run at the boundary.
func TestBuildRangedStyle(t *testing.T) {
	fcx := newFontContext()
	lcx := NewLayoutContext()

	text := "plain bold plain"
	b := lcx.RangedBuilder(fcx, text, 1.0)
	b.PushDefault(style.FontStack{Source: "Go"})
	b.PushDefault(style.FontSize{Size: 16})
	b.Push(style.FontWeight{Weight: font.WeightBold}, style.Range{Start: 6, End: 10})

	ld := b.Build(fixed.I(1000), layout.Start)
	if ld == nil {
		t.Fatal("expected a non-nil layout")
	}
	if len(ld.Styles) < 2 {
		t.Fatalf("expected at least 2 distinct interned styles, got %d", len(ld.Styles))
	}
	assertInvariants(t, ld)
}

// TestBuildEmptyText covers spec §7's empty-input contract for both Build
// and BuildInto.
func TestBuildEmptyText(t *testing.T) {
	fcx := newFontContext()
	lcx := NewLayoutContext()

	b := lcx.RangedBuilder(fcx, "", 1.0)
	b.PushDefault(style.FontStack{Source: "Go"})
	if ld := b.Build(fixed.I(1000), layout.Start); ld != nil {
		t.Fatalf("expected nil layout for empty text")
	}

	ld := &layout.LayoutData{}
	ld.Lines = []layout.LineData{{}}
	if b.BuildInto(ld, fixed.I(1000), layout.Start) {
		t.Fatalf("expected BuildInto to return false for empty text")
	}
	if len(ld.Lines) != 0 {
		t.Fatalf("expected BuildInto to clear the target on empty text")
	}
}

// TestBuildWrapsAtWidth covers spec scenario 5: a narrow wrap width forces
// a multi-line break.
func TestBuildWrapsAtWidth(t *testing.T) {
	fcx := newFontContext()
	lcx := NewLayoutContext()

	b := lcx.RangedBuilder(fcx, "one two three four five six seven eight", 1.0)
	b.PushDefault(style.FontStack{Source: "Go"})
	b.PushDefault(style.FontSize{Size: 16})

	ld := b.Build(fixed.I(60), layout.Start)
	if ld == nil {
		t.Fatal("expected a non-nil layout")
	}
	if len(ld.Lines) < 2 {
		t.Fatalf("expected the narrow width to force wrapping, got %d line(s)", len(ld.Lines))
	}
	assertInvariants(t, ld)
}

// assertInvariants checks the structural invariants spec §8 calls out,
// independent of any single scenario's specifics.
func assertInvariants(t *testing.T, ld *layout.LayoutData) {
	t.Helper()

	var sumRunAdvance fixed.Int26_6
	prevEnd := 0
	for i, r := range ld.Runs {
		if r.TextRange.Start != prevEnd {
			t.Fatalf("run %d text range %v does not start where run %d ended (%d)", i, r.TextRange, i-1, prevEnd)
		}
		prevEnd = r.TextRange.End
		sumRunAdvance += r.Advance
	}
	if prevEnd != ld.TextLen {
		t.Fatalf("runs cover [0, %d), want [0, %d)", prevEnd, ld.TextLen)
	}
	if sumRunAdvance != ld.FullWidth {
		t.Fatalf("sum of run advances %v != FullWidth %v", sumRunAdvance, ld.FullWidth)
	}

	for _, c := range ld.Clusters {
		runIdx := -1
		for i, r := range ld.Runs {
			if c.TextRange.Start >= r.TextRange.Start && c.TextRange.Start < r.TextRange.End {
				runIdx = i
				break
			}
		}
		if runIdx < 0 {
			t.Fatalf("cluster %v not contained in any run's text range", c.TextRange)
		}
		run := ld.Runs[runIdx]
		if c.TextRange.Start < run.TextRange.Start || c.TextRange.End > run.TextRange.End {
			t.Fatalf("cluster %v not contained within owning run %v", c.TextRange, run.TextRange)
		}
	}

	for _, g := range ld.Glyphs {
		if g.StyleIndex < 0 || g.StyleIndex >= len(ld.Styles) {
			t.Fatalf("glyph style index %d out of range [0, %d)", g.StyleIndex, len(ld.Styles))
		}
	}

	prevLineEnd := 0
	for i, l := range ld.Lines {
		if l.TextRange.Start != prevLineEnd {
			t.Fatalf("line %d text range %v does not start where line %d ended (%d)", i, l.TextRange, i-1, prevLineEnd)
		}
		prevLineEnd = l.TextRange.End
	}
	if len(ld.Lines) > 0 && prevLineEnd != ld.TextLen {
		t.Fatalf("lines cover [0, %d), want [0, %d)", prevLineEnd, ld.TextLen)
	}
}
