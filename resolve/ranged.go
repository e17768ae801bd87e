package resolve

import (
	"sort"

	"github.com/go-richtext/richlayout/font"
	"github.com/go-richtext/richlayout/style"
)

// overlay is one ranged property push retained until Finish.
type overlay struct {
	rng  style.Range
	prop style.Property
}

// RangedBuilder folds a stream of (default | ranged) property pushes into
// an ordered, non-overlapping partition of [0, textLen) with a fully
// resolved style per span (spec §4.3). It borrows a font.Registry and an
// Interner for the duration of a single build and is not reused afterward.
type RangedBuilder struct {
	reg   *font.Registry
	in    *Interner
	scale float32

	textLen int
	def     style.ResolvedStyle
	pushes  []overlay
}

// Begin starts a new build for text of length textLen (in bytes). Any state
// retained from a previous Begin/Finish cycle is discarded.
func (b *RangedBuilder) Begin(reg *font.Registry, in *Interner, scale float32, textLen int) {
	b.reg = reg
	b.in = in
	b.scale = scale
	b.textLen = textLen
	b.def = style.DefaultResolvedStyle()
	b.pushes = b.pushes[:0]
}

// PushDefault updates the builder's current default style, applied before
// any overlay at every position.
func (b *RangedBuilder) PushDefault(prop style.Property) {
	Apply(prop, b.reg, b.in, b.scale, &b.def)
}

// Push records prop as applying across rng. Overlays are applied in
// insertion order at finish time, so the most recently pushed overlay wins
// for a given property at a given position ("last write wins").
func (b *RangedBuilder) Push(prop style.Property, rng style.Range) {
	if rng.Start >= rng.End {
		return
	}
	if rng.Start < 0 {
		rng.Start = 0
	}
	if rng.End > b.textLen {
		rng.End = b.textLen
	}
	if rng.Start >= rng.End {
		return
	}
	b.pushes = append(b.pushes, overlay{rng: rng, prop: prop})
}

// Finish computes the partition: walk byte positions monotonically, and at
// each position compute the effective style by applying the default then
// every overlay whose range contains the position (insertion order, last
// write wins for the same property), emitting a new span whenever the
// computed style differs from the previous one.
func (b *RangedBuilder) Finish() []style.RangedStyle {
	if b.textLen == 0 {
		return nil
	}
	boundaries := b.boundaryPositions()
	var out []style.RangedStyle
	for i := 0; i < len(boundaries)-1; i++ {
		start, end := boundaries[i], boundaries[i+1]
		rs := b.effectiveStyleAt(start)
		if len(out) > 0 && out[len(out)-1].Style == rs {
			out[len(out)-1].Range.End = end
			continue
		}
		out = append(out, style.RangedStyle{Range: style.Range{Start: start, End: end}, Style: rs})
	}
	return out
}

// boundaryPositions returns every distinct overlay start/end within
// [0, textLen], sorted ascending, always including 0 and textLen.
func (b *RangedBuilder) boundaryPositions() []int {
	set := map[int]struct{}{0: {}, b.textLen: {}}
	for _, o := range b.pushes {
		set[o.rng.Start] = struct{}{}
		set[o.rng.End] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func (b *RangedBuilder) effectiveStyleAt(pos int) style.ResolvedStyle {
	rs := b.def
	for _, o := range b.pushes {
		if o.rng.Contains(pos) {
			Apply(o.prop, b.reg, b.in, b.scale, &rs)
		}
	}
	return rs
}
