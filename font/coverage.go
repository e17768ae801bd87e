package font

// Coverage reports how many of runes are mapped by id's character map. The
// fallback cache (package resolve) uses this to decide whether a candidate
// font is a Complete, Keep, or Discard match for a cluster (spec §4.5).
func (r *Registry) Coverage(id FontId, runes []rune) int {
	face, ok := r.Face(id)
	if !ok {
		return 0
	}
	cmap := face.Cmap()
	covered := 0
	for _, ru := range runes {
		if _, ok := cmap.Lookup(ru); ok {
			covered++
		}
	}
	return covered
}

// RecommendSynthesis compares a font's intrinsic attributes against the
// requested ones and returns what a shaper-side rasterizer should emulate:
// embolden when a bolder weight was requested than the font supplies, skew
// when oblique/italic was requested but only an upright face was found.
func RecommendSynthesis(have, want Attributes) Synthesis {
	var s Synthesis
	if want.Weight > have.Weight {
		s.Embolden = true
	}
	if want.Style.Kind != StyleNormal && have.Style.Kind == StyleNormal {
		angle := want.Style.ObliqueAngle
		if angle == 0 {
			angle = 14 // conventional synthetic-oblique slant, degrees
		}
		s.SkewAngle = angle
	}
	return s
}

// Synthesis is a recommendation to emulate attributes a font lacks.
type Synthesis struct {
	Embolden  bool
	SkewAngle float32
}
