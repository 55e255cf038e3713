package colorfix

import "fmt"

// Level is a three-way bucket for brightness and saturation.
type Level int

const (
	// Normal means the channel mean lies within the thresholds (inclusive).
	Normal Level = iota
	// Low means the channel mean is strictly below the lower threshold.
	Low
	// High means the channel mean is strictly above the upper threshold.
	High
)

// String returns "Low", "Normal" or "High".
func (l Level) String() string {
	switch l {
	case Low:
		return "Low"
	case Normal:
		return "Normal"
	case High:
		return "High"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	switch l {
	case Low, Normal, High:
		return []byte(l.String()), nil
	default:
		return nil, fmt.Errorf("invalid level %d", int(l))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Low":
		*l = Low
	case "Normal":
		*l = Normal
	case "High":
		*l = High
	default:
		return fmt.Errorf("invalid level %q", text)
	}
	return nil
}

// HueBalance describes where the mean hue sits on the color wheel.
type HueBalance int

const (
	// Balanced means no dominant warm or cool cast.
	Balanced HueBalance = iota
	// WarmShift means the mean hue is in the red/orange range.
	WarmShift
	// CoolShift means the mean hue is in the green/cyan/blue range.
	CoolShift
)

// String returns the human-readable label used in diagnostic text.
func (h HueBalance) String() string {
	switch h {
	case Balanced:
		return "Balanced"
	case WarmShift:
		return "Shifted to warm tones"
	case CoolShift:
		return "Shifted to cool tones"
	default:
		return fmt.Sprintf("HueBalance(%d)", int(h))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (h HueBalance) MarshalText() ([]byte, error) {
	switch h {
	case Balanced, WarmShift, CoolShift:
		return []byte(h.String()), nil
	default:
		return nil, fmt.Errorf("invalid hue balance %d", int(h))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HueBalance) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Balanced":
		*h = Balanced
	case "Shifted to warm tones":
		*h = WarmShift
	case "Shifted to cool tones":
		*h = CoolShift
	default:
		return fmt.Errorf("invalid hue balance %q", text)
	}
	return nil
}

// Stats holds the per-channel means of an HSV grid.
type Stats struct {
	MeanHue        float64 `json:"mean_hue"`        // half-degrees, [0,180)
	MeanSaturation float64 `json:"mean_saturation"` // [0,255]
	MeanValue      float64 `json:"mean_value"`      // [0,255]
}

// Classification is the qualitative verdict for one image.
type Classification struct {
	Brightness Level      `json:"brightness"`
	Saturation Level      `json:"saturation"`
	HueBalance HueBalance `json:"hue_balance"`
}

// Neutral reports whether every field is at its neutral bucket.
func (c Classification) Neutral() bool {
	return c.Brightness == Normal && c.Saturation == Normal && c.HueBalance == Balanced
}

// Thresholds are the channel-mean cut-offs used by Classify. All comparisons
// are strict, so a mean exactly on a threshold is never flagged.
type Thresholds struct {
	ValueLow  float64 // brightness is Low below this
	ValueHigh float64 // brightness is High above this

	SaturationLow  float64
	SaturationHigh float64

	// Hue below WarmBelow or above WarmAbove is WarmShift.
	WarmBelow float64
	WarmAbove float64

	// Hue strictly between CoolAbove and CoolBelow is CoolShift.
	CoolAbove float64
	CoolBelow float64
}

// DefaultThresholds returns the thresholds every analysis uses.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ValueLow:       100,
		ValueHigh:      150,
		SaturationLow:  40,
		SaturationHigh: 200,
		WarmBelow:      15,
		WarmAbove:      165,
		CoolAbove:      75,
		CoolBelow:      135,
	}
}

// Gains are the multiplicative factors Correct applies per bucket.
type Gains struct {
	ValueLow       float64
	ValueHigh      float64
	SaturationLow  float64
	SaturationHigh float64
}

// DefaultGains returns the gains every correction uses.
func DefaultGains() Gains {
	return Gains{
		ValueLow:       1.3,
		ValueHigh:      0.8,
		SaturationLow:  1.4,
		SaturationHigh: 0.7,
	}
}

func (g Gains) forLevel(l Level, low, high float64) float64 {
	switch l {
	case Low:
		return low
	case High:
		return high
	default:
		return 1.0
	}
}

// Value returns the value-channel gain for a brightness level.
func (g Gains) Value(l Level) float64 {
	return g.forLevel(l, g.ValueLow, g.ValueHigh)
}

// Saturation returns the saturation-channel gain for a saturation level.
func (g Gains) Saturation(l Level) float64 {
	return g.forLevel(l, g.SaturationLow, g.SaturationHigh)
}
