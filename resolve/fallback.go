package resolve

import "github.com/go-richtext/richlayout/font"

// FontHandle identifies a resolved font as seen by the rest of the layout
// pipeline: the registry id plus its cache key, so shaper-level caches can
// key on CacheKey without re-deriving it from the registry.
type FontHandle struct {
	FontID   font.FontId
	CacheKey uint64
}

type cachedFont struct {
	id      font.FontId
	errored bool
}

// FallbackCache materializes, for a primed (style-span, attributes) pair,
// the ordered list of candidate fonts across a family stack, and walks that
// list to find coverage for each cluster it is asked about (spec §4.5).
//
// The cache holds a back-reference to the registry's font data; this is a
// lookup relation, not ownership (spec §9): it never outlives correctness
// so long as no new registrations occur mid-build.
type FallbackCache struct {
	reg *font.Registry
	// covFn computes coverage for a candidate; defaults to reg.Coverage.
	// lookupFn resolves a candidate id to its Font record; defaults to
	// reg.FontByID. Both are overridable so tests can exercise the
	// Complete/Keep/Discard walk without parsing real font files.
	covFn    func(font.FontId, []rune) int
	lookupFn func(font.FontId) (font.Font, bool)

	primedSpan  int
	primedAttrs font.Attributes
	havePrimed  bool

	candidates []cachedFont
}

// NewFallbackCache constructs a cache bound to reg.
func NewFallbackCache(reg *font.Registry) *FallbackCache {
	return &FallbackCache{reg: reg, covFn: reg.Coverage, lookupFn: reg.FontByID}
}

// Reset clears the cache's loaded-font table at the start of a new build,
// per spec §5 ("reset at the start of each build").
func (fc *FallbackCache) Reset() {
	fc.havePrimed = false
	fc.candidates = fc.candidates[:0]
}

// SelectFamilies primes the cache for a style span: familyIDs is the span's
// resolved family stack (in priority order) and attrs is the span's
// (stretch, weight, style) request. It is a no-op if (spanID, attrs)
// matches the previously primed pair, so that adjacent clusters within the
// same span reuse the same candidate list.
func (fc *FallbackCache) SelectFamilies(spanID int, familyIDs []font.FamilyId, attrs font.Attributes) {
	if fc.havePrimed && fc.primedSpan == spanID && fc.primedAttrs == attrs {
		return
	}
	fc.primedSpan = spanID
	fc.primedAttrs = attrs
	fc.havePrimed = true
	fc.candidates = fc.candidates[:0]
	for _, famID := range familyIDs {
		fam, ok := fc.reg.Family(famID)
		if !ok {
			continue
		}
		fontID, ok := fc.reg.Match(fam, attrs)
		if !ok {
			continue
		}
		fc.candidates = append(fc.candidates, cachedFont{id: fontID})
	}
}

// MapCluster walks the primed candidate list for the best coverage of
// runes, per the tri-state Complete/Keep/Discard rule in spec §4.5:
// a font covering every rune wins immediately; otherwise the best partial
// match (more runes covered than any earlier candidate) is kept as a
// tentative answer; fonts covering zero extra runes are discarded. A
// complete candidate whose Font record cannot be looked up is marked errored
// and skipped until the cache is primed for a different (span, attributes)
// pair; the error flags are not kept across primings. If the best partial
// candidate cannot be looked up, no match is reported. Returns
// (zero handle, zero synthesis, false) if no candidate covers any rune.
func (fc *FallbackCache) MapCluster(runes []rune, want font.Attributes) (FontHandle, font.Synthesis, bool) {
	var (
		bestIdx     = -1
		bestCovered = 0
	)
	for i := range fc.candidates {
		cf := &fc.candidates[i]
		if cf.errored {
			continue
		}
		covered := fc.covFn(cf.id, runes)
		if covered == len(runes) && len(runes) > 0 {
			f, ok := fc.lookupFn(cf.id)
			if !ok {
				cf.errored = true
				continue
			}
			return handleFor(f), font.RecommendSynthesis(f.Attributes, want), true
		}
		if covered > bestCovered {
			bestCovered = covered
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return FontHandle{}, font.Synthesis{}, false
	}
	f, ok := fc.lookupFn(fc.candidates[bestIdx].id)
	if !ok {
		return FontHandle{}, font.Synthesis{}, false
	}
	return handleFor(f), font.RecommendSynthesis(f.Attributes, want), true
}

func handleFor(f font.Font) FontHandle {
	return FontHandle{FontID: f.ID, CacheKey: f.CacheKey}
}
