// Package gofont registers the Go font family (golang.org/x/image/font/gofont)
// into a richlayout font.Registry. It exists so tests and examples exercising
// the layout pipeline have a small, license-clean, always-available set of
// real font files to shape with, instead of needing system fonts.
package gofont

import (
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"

	"github.com/go-richtext/richlayout/font"
)

// entry pairs a family name with the blob to register under it.
type entry struct {
	family string
	ttf    []byte
}

var entries = []entry{
	{"Go", goregular.TTF},
	{"Go", goitalic.TTF},
	{"Go", gobold.TTF},
	{"Go", gobolditalic.TTF},
	{"Go", gomedium.TTF},
	{"Go", gomediumitalic.TTF},
	{"Go Mono", gomono.TTF},
	{"Go Mono", gomonobold.TTF},
	{"Go Mono", gomonobolditalic.TTF},
	{"Go Mono", gomonoitalic.TTF},
	{"Go Smallcaps", gosmallcaps.TTF},
	{"Go Smallcaps", gosmallcapsitalic.TTF},
}

var (
	once sync.Once
	errs []error
)

// Register adds every bundled Go font face to reg, one family per variant
// group ("Go", "Go Mono", "Go Smallcaps"). It is safe to call on multiple
// registries; each call performs its own AddFonts.
func Register(reg *font.Registry) {
	for _, e := range entries {
		reg.AddFonts(e.family, e.ttf)
	}
}

// RegisterDefault registers the bundled fonts into reg exactly once per
// process for the common case of a single shared default registry; repeated
// calls after the first are no-ops regardless of reg.
func RegisterDefault(reg *font.Registry) {
	once.Do(func() {
		Register(reg)
	})
}
