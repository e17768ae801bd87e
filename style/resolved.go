package style

import (
	"github.com/go-richtext/richlayout/font"
	"github.com/go-text/typesetting/language"
)

// FamilyListHandle identifies an interned, ordered list of font.FamilyId
// values (an unknown-name-filtered family stack). Distinct nominal type so
// it cannot be confused with a VariationsHandle or FeaturesHandle.
type FamilyListHandle int32

// VariationsHandle identifies an interned, tag-sorted list of
// VariationSetting values.
type VariationsHandle int32

// FeaturesHandle identifies an interned, tag-sorted list of
// FeatureSetting values.
type FeaturesHandle int32

// NoHandle is the sentinel for "empty list", distinct from any stored
// interner entry (interner indices returned to callers are always >= 0).
const NoHandle = -1

// Range is a half-open [Start, End) byte range into the source text.
type Range struct {
	Start, End int
}

// Len returns End - Start.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether pos falls within the half-open range.
func (r Range) Contains(pos int) bool { return pos >= r.Start && pos < r.End }

// ResolvedStyle is the flat struct with one slot per known property. All
// multi-valued attributes (family stacks, variation/feature sets) are
// interned handles rather than inline slices, so ResolvedStyle is small and
// comparable with ==.
type ResolvedStyle struct {
	FontStack  FamilyListHandle
	FontSize   float32 // pre-scaled by the layout scale factor
	Stretch    font.Stretch
	Weight     font.Weight
	Style      font.Style
	Variations VariationsHandle
	Features   FeaturesHandle
	Locale     language.Language

	LineHeight    float32
	WordSpacing   float32
	LetterSpacing float32
}

// DefaultResolvedStyle returns the spec-mandated defaults: font size 16,
// line height 1.0, zero spacing, no locale, normal stretch/weight/style,
// and empty font stack / variation / feature handles.
func DefaultResolvedStyle() ResolvedStyle {
	return ResolvedStyle{
		FontStack:  NoHandle,
		FontSize:   16,
		Stretch:    font.StretchNormal,
		Weight:     font.WeightNormal,
		Style:      font.Style{Kind: font.StyleNormal},
		Variations: NoHandle,
		Features:   NoHandle,
		LineHeight: 1.0,
	}
}

// RangedStyle pairs a fully-resolved style with the half-open byte range it
// applies to. After RangedBuilder.Finish, a slice of RangedStyle tiles
// [0, textLen) with strictly ascending, non-overlapping ranges.
type RangedStyle struct {
	Range Range
	Style ResolvedStyle
}
