package resolve

import (
	"github.com/go-richtext/richlayout/font"
	"github.com/go-richtext/richlayout/style"
	"github.com/go-text/typesetting/language"
)

// Apply resolves prop against reg and in, writing the result into rs. scale
// multiplies size-like properties (FontSize, WordSpacing, LetterSpacing) per
// the layout's scale factor,
// matching the spec's "size-like fields are pre-scaled" rule.
//
// Unknown family names within a FontStack are silently dropped (spec §7);
// a stack that resolves to nothing is legal and simply never matches a
// cluster in the fallback cache.
func Apply(prop style.Property, reg *font.Registry, in *Interner, scale float32, rs *style.ResolvedStyle) {
	switch p := prop.(type) {
	case style.FontStack:
		rs.FontStack = in.ResolveStack(reg, p.Source)
	case style.FontSize:
		rs.FontSize = p.Size * scale
	case style.FontStretch:
		rs.Stretch = p.Stretch
	case style.FontStyleProp:
		rs.Style = p.Style
	case style.FontWeight:
		rs.Weight = p.Weight
	case style.FontVariations:
		if p.Source != "" {
			rs.Variations = in.ResolveVariations(p.Source)
		} else {
			rs.Variations = in.InternVariations(p.Parsed)
		}
	case style.FontFeatures:
		if p.Source != "" {
			rs.Features = in.ResolveFeatures(p.Source)
		} else {
			rs.Features = in.InternFeatures(p.Parsed)
		}
	case style.Locale:
		if p.Tag == "" {
			rs.Locale = language.Language("")
		} else {
			rs.Locale = language.NewLanguage(p.Tag)
		}
	case style.LineHeight:
		rs.LineHeight = p.Multiplier
	case style.WordSpacing:
		rs.WordSpacing = p.Space * scale
	case style.LetterSpacing:
		rs.LetterSpacing = p.Space * scale
	}
}
