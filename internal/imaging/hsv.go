package imaging

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HueScale is the number of hue units per full turn of the color wheel.
// Hue is stored on a half-degree scale so that it fits 8-bit storage.
const HueScale = 180.0

// ToHSV converts an RGB grid to HSV.
//
// The conversion is the standard hexcone model:
//   - H: hue in half-degrees, [0,180)
//   - S: (max-min)/max, scaled to [0,255]
//   - V: max(R,G,B), on [0,255]
//
// Grays (R=G=B) have hue 0 and saturation 0. An HSV input grid is returned as
// a copy. Empty grids produce empty grids.
func ToHSV(g *PixelGrid) *PixelGrid {
	if g.Space == HSV {
		return g.Map(HSV, identity)
	}
	return g.Map(HSV, rgbToHSV)
}

// ToRGB converts an HSV grid back to RGB. It is the inverse of ToHSV up to
// floating point rounding. An RGB input grid is returned as a copy.
func ToRGB(g *PixelGrid) *PixelGrid {
	if g.Space == RGB {
		return g.Map(RGB, identity)
	}
	return g.Map(RGB, hsvToRGB)
}

func identity(p Pixel) Pixel { return p }

func rgbToHSV(p Pixel) Pixel {
	c := colorful.Color{R: p[0] / 255.0, G: p[1] / 255.0, B: p[2] / 255.0}
	h, s, v := c.Hsv()
	return Pixel{h / 360.0 * HueScale, s * 255.0, v * 255.0}
}

func hsvToRGB(p Pixel) Pixel {
	// colorful.Hsv expects degrees in [0,360); anything at or past a full
	// turn falls through its sector switch and comes back gray.
	deg := math.Mod(p[0]/HueScale*360.0, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	c := colorful.Hsv(deg, Clamp(p[1]/255.0, 0, 1), Clamp(p[2]/255.0, 0, 1))
	return Pixel{c.R * 255.0, c.G * 255.0, c.B * 255.0}
}
