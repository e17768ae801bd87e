package resolve

import (
	"testing"

	"github.com/go-richtext/richlayout/font"
)

// newFallbackTestCache wires up a FallbackCache whose candidates are the
// given font ids directly (bypassing family matching) and whose coverage
// function is driven by a rune->covering-font-ids table, so the
// Complete/Keep/Discard walk can be exercised without real font parsing.
func newFallbackTestCache(ids []font.FontId, coverage map[font.FontId]map[rune]bool) *FallbackCache {
	reg := font.NewRegistry()
	fc := NewFallbackCache(reg)
	fc.havePrimed = true
	for _, id := range ids {
		fc.candidates = append(fc.candidates, cachedFont{id: id})
	}
	fc.covFn = func(id font.FontId, runes []rune) int {
		n := 0
		for _, r := range runes {
			if coverage[id][r] {
				n++
			}
		}
		return n
	}
	fc.lookupFn = func(id font.FontId) (font.Font, bool) {
		return font.Font{ID: id, CacheKey: uint64(id) + 1}, true
	}
	return fc
}

func TestMapClusterCompleteStopsEarly(t *testing.T) {
	latin := font.FontId(0)
	sym := font.FontId(1)
	fc := newFallbackTestCache([]font.FontId{latin, sym}, map[font.FontId]map[rune]bool{
		latin: {'a': true, 'b': true},
	})
	h, _, ok := fc.MapCluster([]rune("ab"), font.DefaultAttributes)
	if !ok || h.FontID != latin {
		t.Fatalf("expected complete coverage from latin font, got (%+v, %v)", h, ok)
	}
}

func TestMapClusterFallsBackToSecondFamily(t *testing.T) {
	latin := font.FontId(0)
	sym := font.FontId(1)
	fc := newFallbackTestCache([]font.FontId{latin, sym}, map[font.FontId]map[rune]bool{
		sym: {'☃': true},
	})
	h, _, ok := fc.MapCluster([]rune("☃"), font.DefaultAttributes)
	if !ok || h.FontID != sym {
		t.Fatalf("expected fallback to sym font for snowman, got (%+v, %v)", h, ok)
	}
}

func TestMapClusterKeepsBestPartial(t *testing.T) {
	a := font.FontId(0)
	b := font.FontId(1)
	// "xy": a covers only x, b covers only y -- neither is complete, a is
	// tried first and recorded as the tentative best with 1/2, b also
	// covers 1/2 but does not strictly improve on a, so a should win.
	fc := newFallbackTestCache([]font.FontId{a, b}, map[font.FontId]map[rune]bool{
		a: {'x': true},
		b: {'y': true},
	})
	h, _, ok := fc.MapCluster([]rune("xy"), font.DefaultAttributes)
	if !ok || h.FontID != a {
		t.Fatalf("expected first-seen best-partial match (a), got (%+v, %v)", h, ok)
	}
}

func TestMapClusterNoCoverageReturnsFalse(t *testing.T) {
	a := font.FontId(0)
	fc := newFallbackTestCache([]font.FontId{a}, map[font.FontId]map[rune]bool{})
	_, _, ok := fc.MapCluster([]rune("z"), font.DefaultAttributes)
	if ok {
		t.Fatalf("expected no match when no candidate covers anything")
	}
}

func TestSelectFamiliesIsNoOpWhenUnchanged(t *testing.T) {
	reg := font.NewRegistry()
	fc := NewFallbackCache(reg)
	fc.SelectFamilies(1, nil, font.DefaultAttributes)
	fc.candidates = append(fc.candidates, cachedFont{id: 42})
	fc.SelectFamilies(1, nil, font.DefaultAttributes)
	if len(fc.candidates) != 1 {
		t.Fatalf("SelectFamilies with the same (span, attrs) should not re-materialize candidates")
	}
}
