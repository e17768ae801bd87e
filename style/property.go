// Package style defines the tagged-union input form for ranged style
// properties (Property) and the flat, fully-resolved style struct
// (ResolvedStyle) that a RangedStyle span carries.
package style

import "github.com/go-richtext/richlayout/font"

// Property is a single style attribute push, in the input form a caller
// supplies to a ranged-style builder. Concrete variants follow the
// isEditorEvent sealed-interface idiom: an unexported marker method limits
// implementers to this package.
type Property interface {
	isProperty()
}

// FontStack names a comma-separated list of font family names, in priority
// order, as CSS-like source text.
type FontStack struct{ Source string }

// FontSize is the requested font size in the layout's input units (scaled
// by the LayoutContext's scale factor before being stored in ResolvedStyle).
type FontSize struct{ Size float32 }

// FontStretch requests a font-stretch percentage.
type FontStretch struct{ Stretch font.Stretch }

// FontStyleProp requests a font style (normal / italic / oblique[angle]).
type FontStyleProp struct{ Style font.Style }

// FontWeight requests a font weight in [1, 1000].
type FontWeight struct{ Weight font.Weight }

// FontVariations supplies OpenType variation-axis settings, either as CSS-
// like source text or as a pre-parsed list.
type FontVariations struct {
	Source string
	Parsed []VariationSetting
}

// FontFeatures supplies OpenType feature settings, either as CSS-like
// source text or as a pre-parsed list.
type FontFeatures struct {
	Source string
	Parsed []FeatureSetting
}

// Locale supplies a BCP-47 language tag, or "" for "no locale".
type Locale struct{ Tag string }

// LineHeight is a multiplier applied to a run's font metrics.
type LineHeight struct{ Multiplier float32 }

// WordSpacing adds extra advance to word-separator whitespace clusters.
type WordSpacing struct{ Space float32 }

// LetterSpacing adds extra advance to the trailing cluster of every
// grapheme.
type LetterSpacing struct{ Space float32 }

func (FontStack) isProperty()      {}
func (FontSize) isProperty()       {}
func (FontStretch) isProperty()    {}
func (FontStyleProp) isProperty()  {}
func (FontWeight) isProperty()     {}
func (FontVariations) isProperty() {}
func (FontFeatures) isProperty()   {}
func (Locale) isProperty()         {}
func (LineHeight) isProperty()     {}
func (WordSpacing) isProperty()    {}
func (LetterSpacing) isProperty()  {}
