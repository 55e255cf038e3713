package colorfix

import "github.com/ironsheep/photo-color-mcp/internal/imaging"

// Correct applies the gains implied by c to an HSV grid and returns a new HSV
// grid. The input grid is left untouched.
//
// Per pixel, value is scaled by DefaultGains().Value(c.Brightness) and
// saturation by DefaultGains().Saturation(c.Saturation). Hue is never changed:
// white balance is only advised, not applied. Products are computed in
// float64 and every channel is clamped to [0,255] afterwards, so an overflow
// saturates at 255 instead of wrapping.
//
// An RGB grid is converted to HSV first.
func Correct(hsv *imaging.PixelGrid, c Classification) *imaging.PixelGrid {
	if hsv.Space != imaging.HSV {
		hsv = imaging.ToHSV(hsv)
	}

	gains := DefaultGains()
	sGain := gains.Saturation(c.Saturation)
	vGain := gains.Value(c.Brightness)

	return hsv.Map(imaging.HSV, func(p imaging.Pixel) imaging.Pixel {
		return imaging.Pixel{
			imaging.Clamp(p[0], 0, 255),
			imaging.Clamp(p[1]*sGain, 0, 255),
			imaging.Clamp(p[2]*vGain, 0, 255),
		}
	})
}
