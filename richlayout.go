// Package richlayout resolves a stream of ranged style properties over a
// run of text into a shaped, line-broken Layout: style resolution and
// interning, Unicode bidi labeling, font-fallback-aware shaping, greedy
// line breaking with bidi-aware visual reordering and alignment, and
// hit-testing over the result.
//
// A FontContext owns registered font data and a font-fallback cache; a
// LayoutContext owns the style interner and is paired with a FontContext
// for the duration of one build via RangedBuilder. Neither is safe for
// concurrent builds -- a build holds an exclusive borrow on both for its
// entire duration (spec §5).
package richlayout

import (
	"github.com/go-richtext/richlayout/font"
	"github.com/go-richtext/richlayout/layout"
	"github.com/go-richtext/richlayout/resolve"
	"github.com/go-richtext/richlayout/shape"
	"github.com/go-richtext/richlayout/style"
	"golang.org/x/image/math/fixed"
)

// FontContext owns font registration and the font-fallback cache built
// from it. Share one FontContext across builds; its fallback cache is
// reset at the start of each build but its loaded-face table amortizes
// across spans within a build.
type FontContext struct {
	Registry *font.Registry
	fallback *resolve.FallbackCache
	driver   *shape.Driver
}

// NewFontContext constructs an empty font context.
func NewFontContext() *FontContext {
	reg := font.NewRegistry()
	fc := resolve.NewFallbackCache(reg)
	return &FontContext{
		Registry: reg,
		fallback: fc,
		driver:   shape.NewDriver(reg, fc),
	}
}

// RegisterFonts ingests a font-file blob under family name, returning the
// number of faces accepted (0 for a malformed blob, per spec §7).
func (fcx *FontContext) RegisterFonts(name string, data []byte) int {
	n, _ := fcx.Registry.AddFonts(name, data)
	return n
}

// HasFamily reports whether name is registered.
func (fcx *FontContext) HasFamily(name string) bool {
	return fcx.Registry.HasFamily(name)
}

// LayoutContext owns the interner caches used to resolve ranged style
// pushes into ResolvedStyle spans. Its caches are cleared at the start of
// every build; handles from a previous build are never valid afterward.
type LayoutContext struct {
	interner resolve.Interner
	builder  resolve.RangedBuilder
}

// NewLayoutContext constructs an empty layout context.
func NewLayoutContext() *LayoutContext {
	return &LayoutContext{}
}

// RangedBuilder begins a new build over text (length in bytes) at the
// given scale factor (applied to FontSize, WordSpacing and LetterSpacing
// when a property is resolved), borrowing fcx
// and lcx for the builder's lifetime.
func (lcx *LayoutContext) RangedBuilder(fcx *FontContext, text string, scale float32) *RangedBuilder {
	lcx.interner.Reset()
	lcx.builder.Begin(fcx.Registry, &lcx.interner, scale, len(text))
	return &RangedBuilder{fcx: fcx, lcx: lcx, text: text, scale: scale}
}

// RangedBuilder accumulates default and ranged style pushes over one piece
// of text, then resolves them into a shaped, broken Layout (spec §4.3,
// §6).
type RangedBuilder struct {
	fcx   *FontContext
	lcx   *LayoutContext
	text  string
	scale float32
}

// PushDefault updates the builder's current default style.
func (b *RangedBuilder) PushDefault(prop style.Property) {
	b.lcx.builder.PushDefault(prop)
}

// Push records prop as applying across the byte range rng.
func (b *RangedBuilder) Push(prop style.Property, rng style.Range) {
	b.lcx.builder.Push(prop, rng)
}

// Build resolves the accumulated pushes, shapes, and line-breaks the
// builder's text at maxAdvance with align, returning nil for empty text
// (spec §7).
func (b *RangedBuilder) Build(maxAdvance fixed.Int26_6, align layout.Alignment) *layout.LayoutData {
	ld := &layout.LayoutData{}
	if !b.BuildInto(ld, maxAdvance, align) {
		return nil
	}
	return ld
}

// BuildInto resolves into an existing LayoutData, reusing its backing
// arrays, and reports whether it produced any content. On empty text, out
// is cleared and BuildInto returns false.
func (b *RangedBuilder) BuildInto(out *layout.LayoutData, maxAdvance fixed.Int26_6, align layout.Alignment) bool {
	if len(b.text) == 0 {
		out.Reset()
		return false
	}
	out.Reset()
	out.Scale = b.scale
	out.TextLen = len(b.text)

	spans := b.lcx.builder.Finish()
	bidiResult := resolve.ResolveBidi(b.text, nil)
	out.HasBidi = len(bidiResult.Levels) > 0
	out.BaseLevelRTL = bidiResult.BaseLevelRTL

	b.fcx.driver.Shape(out, b.text, spans, bidiResult, &b.lcx.interner)
	layout.BreakLines(out, maxAdvance, align)
	out.Height = out.HeightFixed()
	out.Width = out.WidthFixed()
	return len(out.Lines) > 0
}
