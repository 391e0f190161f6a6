package color

import (
	"github.com/mdouchement/hdr/format"
	"github.com/mdouchement/hdr/hdrcolor"
)

// RGBE is one stored pixel: three mantissa bytes sharing the exponent byte E.
type RGBE [NUM_CHANNELS]uint8

// ToRGB expands the pixel to linear radiance, value = mantissa * 2^(E-136) / exposure.
// An exposure of 0 is treated as 1. A zero exponent is black.
func (p RGBE) ToRGB(exposure float64) hdrcolor.RGB {
	if exposure == 0 {
		exposure = 1
	}
	r, g, b := format.FromRadianceBytes(p[CHANNEL_R], p[CHANNEL_G], p[CHANNEL_B], p[CHANNEL_E], exposure)
	return hdrcolor.RGB{R: r, G: g, B: b}
}

// FromRGB packs linear radiance into the shared exponent form. Negative
// components are clamped to 0.
func FromRGB(c hdrcolor.RGB) RGBE {
	pix := format.ToRadianceBytes(clampNegative(c.R), clampNegative(c.G), clampNegative(c.B))
	return RGBE{pix[0], pix[1], pix[2], pix[3]}
}

func clampNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
