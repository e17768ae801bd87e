// Package fixedutil holds small fixed.Int26_6 conversions shared by the
// shape and layout packages, grounded on the teacher's fixedToFloat helper
// in text/gotext.go.
package fixedutil

import "golang.org/x/image/math/fixed"

// FromFloat32 converts a floating-point pixel measurement to 26.6 fixed
// point.
func FromFloat32(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v*64 + 0.5)
}

// ToFloat32 converts a 26.6 fixed-point measurement back to a float32.
func ToFloat32(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}

// Scale multiplies a 26.6 fixed-point measurement by a float multiplier,
// such as a style's line-height multiplier.
func Scale(v fixed.Int26_6, mult float32) fixed.Int26_6 {
	return FromFloat32(ToFloat32(v) * mult)
}
