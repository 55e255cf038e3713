package colorfix

import "github.com/ironsheep/photo-color-mcp/internal/imaging"

// Analyze computes channel means over every pixel of an HSV grid and
// classifies them with DefaultThresholds.
//
// An RGB grid is converted to HSV first. An empty grid has zero means, which
// classify as {Low, Low, WarmShift}.
func Analyze(hsv *imaging.PixelGrid) (Stats, Classification) {
	if hsv.Space != imaging.HSV {
		hsv = imaging.ToHSV(hsv)
	}
	stats := Measure(hsv)
	return stats, Classify(stats, DefaultThresholds())
}

// Measure returns the arithmetic mean of each HSV channel. It does not sample:
// every pixel contributes.
func Measure(hsv *imaging.PixelGrid) Stats {
	n := hsv.Len()
	if n == 0 {
		return Stats{}
	}
	sums := hsv.ChannelSums()
	return Stats{
		MeanHue:        sums[0] / float64(n),
		MeanSaturation: sums[1] / float64(n),
		MeanValue:      sums[2] / float64(n),
	}
}

// Classify buckets channel means against thresholds.
func Classify(s Stats, t Thresholds) Classification {
	return Classification{
		Brightness: bucket(s.MeanValue, t.ValueLow, t.ValueHigh),
		Saturation: bucket(s.MeanSaturation, t.SaturationLow, t.SaturationHigh),
		HueBalance: hueBalance(s.MeanHue, t),
	}
}

func bucket(mean, low, high float64) Level {
	switch {
	case mean < low:
		return Low
	case mean > high:
		return High
	default:
		return Normal
	}
}

func hueBalance(h float64, t Thresholds) HueBalance {
	switch {
	case h < t.WarmBelow || h > t.WarmAbove:
		return WarmShift
	case h > t.CoolAbove && h < t.CoolBelow:
		return CoolShift
	default:
		return Balanced
	}
}
