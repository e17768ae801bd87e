package font

import "testing"

func newTestRegistry(members ...Attributes) (*Registry, *FontFamily) {
	r := NewRegistry()
	fam := &FontFamily{ID: 0, Name: "Test"}
	for _, a := range members {
		id := FontId(len(r.fonts))
		r.fonts = append(r.fonts, Font{ID: id, Attributes: a})
		if a.Stretch != StretchNormal {
			fam.HasStretch = true
		}
		r.insertMember(fam, id, a)
	}
	r.families = []*FontFamily{fam}
	return r, fam
}

func TestMatchRoundTrip(t *testing.T) {
	// Registering a single face (Normal, 400, Normal) and querying any
	// (stretch, weight, style) must return that face.
	r, fam := newTestRegistry(DefaultAttributes)
	for _, want := range []Attributes{
		DefaultAttributes,
		{Stretch: StretchExpanded, Weight: WeightBold, Style: Style{Kind: StyleItalic}},
		{Stretch: StretchCondensed, Weight: WeightThin, Style: Style{Kind: StyleOblique}},
	} {
		id, ok := r.Match(fam, want)
		if !ok || id != 0 {
			t.Fatalf("Match(%+v) = (%d, %v), want (0, true)", want, id, ok)
		}
	}
}

func TestWeightMatching(t *testing.T) {
	// 400..500 requested: [w,500] ascending, then <w descending, then >500 ascending.
	r, fam := newTestRegistry(
		Attributes{Weight: 300},
		Attributes{Weight: 450},
		Attributes{Weight: 600},
		Attributes{Weight: 900},
	)
	id, _ := r.Match(fam, Attributes{Weight: 400})
	f, _ := r.FontByID(id)
	if f.Attributes.Weight != 450 {
		t.Fatalf("want 450, got %v", f.Attributes.Weight)
	}

	r2, fam2 := newTestRegistry(Attributes{Weight: 200}, Attributes{Weight: 900})
	id2, _ := r2.Match(fam2, Attributes{Weight: 450})
	f2, _ := r2.FontByID(id2)
	if f2.Attributes.Weight != 200 {
		t.Fatalf("want 200 (for a 400..500 request, weights below it outrank weights above 500), got %v", f2.Attributes.Weight)
	}
}

func TestStretchCondensedWinsTieAtNormal(t *testing.T) {
	r, fam := newTestRegistry(
		Attributes{Stretch: StretchCondensed, Weight: WeightNormal},
		Attributes{Stretch: StretchExpanded, Weight: WeightNormal},
	)
	id, _ := r.Match(fam, Attributes{Stretch: StretchNormal, Weight: WeightNormal})
	f, _ := r.FontByID(id)
	// Both are equidistant from Normal (25 vs 25) -- equal raw distance,
	// condensed must win because want <= Normal.
	if f.Attributes.Stretch != StretchCondensed {
		t.Fatalf("want condensed to win tie, got %v", f.Attributes.Stretch)
	}
}

func TestStylePreferenceOrder(t *testing.T) {
	r, fam := newTestRegistry(
		Attributes{Style: Style{Kind: StyleOblique}},
		Attributes{Style: Style{Kind: StyleItalic}},
	)
	id, _ := r.Match(fam, Attributes{Style: Style{Kind: StyleNormal}})
	f, _ := r.FontByID(id)
	if f.Attributes.Style.Kind != StyleOblique {
		t.Fatalf("Normal request should prefer Oblique over Italic when no Normal exists, got %v", f.Attributes.Style.Kind)
	}
}
