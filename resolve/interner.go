// Package resolve turns the tagged-union style.Property input form into
// fully-resolved style.ResolvedStyle spans (the ranged-style builder), runs
// the Unicode Bidirectional Algorithm to label characters with embedding
// levels, and walks a font family's fallback chain to find coverage for a
// cluster of text.
package resolve

import (
	"github.com/go-richtext/richlayout/font"
	"github.com/go-richtext/richlayout/intern"
	"github.com/go-richtext/richlayout/style"
)

// Interner owns the two caches spec §4.2 describes: a family-id-sequence
// cache and settings caches for variations and features. It lives inside a
// LayoutContext and is cleared at the start of every build.
type Interner struct {
	families   intern.Cache[font.FamilyId]
	variations intern.Cache[style.VariationSetting]
	features   intern.Cache[style.FeatureSetting]
}

// Reset clears all three caches, invalidating every handle from the
// previous build.
func (in *Interner) Reset() {
	in.families.Reset()
	in.variations.Reset()
	in.features.Reset()
}

// ResolveStack parses a CSS-like family-stack source string, maps each
// recognized name to a font.FamilyId via reg (dropping unknown names), and
// interns the result in registration order.
func (in *Interner) ResolveStack(reg *font.Registry, src string) style.FamilyListHandle {
	names := style.ParseFamilyStack(src)
	return in.InternStack(reg, names)
}

// InternStack interns a pre-resolved list of family names the same way
// ResolveStack does, for callers that already split and validated names.
func (in *Interner) InternStack(reg *font.Registry, names []string) style.FamilyListHandle {
	ids := make([]font.FamilyId, 0, len(names))
	for _, name := range names {
		if id, ok := reg.FamilyByName(name); ok {
			ids = append(ids, id)
		}
	}
	return style.FamilyListHandle(in.families.Insert(ids))
}

// FamilyStack returns the family ids previously interned under h, in
// priority order.
func (in *Interner) FamilyStack(h style.FamilyListHandle) []font.FamilyId {
	return in.families.Get(intern.Handle(h))
}

// ResolveVariations parses a CSS-like variation-settings source string,
// sorts by tag, and interns the result.
func (in *Interner) ResolveVariations(src string) style.VariationsHandle {
	return in.InternVariations(style.ParseVariations(src))
}

// InternVariations interns a pre-parsed, sorted-or-unsorted variation list
// (it is sorted here so two inputs differing only in order intern equal).
func (in *Interner) InternVariations(settings []style.VariationSetting) style.VariationsHandle {
	sorted := append([]style.VariationSetting(nil), settings...)
	sortVariationsStable(sorted)
	return style.VariationsHandle(in.variations.Insert(sorted))
}

// Variations returns the settings previously interned under h.
func (in *Interner) Variations(h style.VariationsHandle) []style.VariationSetting {
	return in.variations.Get(intern.Handle(h))
}

// ResolveFeatures parses a CSS-like feature-settings source string, sorts
// by tag, and interns the result.
func (in *Interner) ResolveFeatures(src string) style.FeaturesHandle {
	return in.InternFeatures(style.ParseFeatures(src))
}

// InternFeatures interns a pre-parsed feature list, sorted by tag first.
func (in *Interner) InternFeatures(settings []style.FeatureSetting) style.FeaturesHandle {
	sorted := append([]style.FeatureSetting(nil), settings...)
	sortFeaturesStable(sorted)
	return style.FeaturesHandle(in.features.Insert(sorted))
}

// Features returns the settings previously interned under h.
func (in *Interner) Features(h style.FeaturesHandle) []style.FeatureSetting {
	return in.features.Get(intern.Handle(h))
}
