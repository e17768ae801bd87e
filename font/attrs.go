package font

import (
	"bytes"
	"io"

	gotext "github.com/go-text/typesetting/font"
)

// Stretch is a CSS font-stretch percentage; 100 is normal.
type Stretch float32

const (
	StretchUltraCondensed Stretch = 50
	StretchExtraCondensed Stretch = 62.5
	StretchCondensed      Stretch = 75
	StretchSemiCondensed  Stretch = 87.5
	StretchNormal         Stretch = 100
	StretchSemiExpanded   Stretch = 112.5
	StretchExpanded       Stretch = 125
	StretchExtraExpanded  Stretch = 150
	StretchUltraExpanded  Stretch = 200
)

// Weight is a CSS font-weight value in [1, 1000]; 400 is normal, 700 bold.
type Weight float32

const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Style is the CSS font-style axis. Oblique carries an optional angle in
// degrees (0 means "use the default oblique slant").
type Style struct {
	Kind         StyleKind
	ObliqueAngle float32
}

// StyleKind discriminates the three font-style values.
type StyleKind uint8

const (
	StyleNormal StyleKind = iota
	StyleItalic
	StyleOblique
)

// Attributes is the (stretch, weight, style) triple CSS-Fonts-4 matches on.
type Attributes struct {
	Stretch Stretch
	Weight  Weight
	Style   Style
}

// DefaultAttributes is (Normal, 400, Normal).
var DefaultAttributes = Attributes{Stretch: StretchNormal, Weight: WeightNormal, Style: Style{Kind: StyleNormal}}

func bytesReader(data []byte) io.ReaderAt {
	return bytes.NewReader(data)
}

func styleFromAspect(s gotext.Style) Style {
	switch s {
	case gotext.StyleItalic:
		return Style{Kind: StyleItalic}
	case gotext.StyleOblique:
		return Style{Kind: StyleOblique}
	default:
		return Style{Kind: StyleNormal}
	}
}
