package colorfix

import (
	"fmt"
	"strings"
)

const (
	diagnosticHeader    = "📸 Analysis results:"
	looksGoodMessage    = "✅ The photo looks good! There are no significant color correction issues."
	recommendHeader     = "🛠 Recommended Lightroom adjustments:"
	noAdjustmentsNeeded = "✅ No adjustments needed. The photo is well balanced."
)

// Advice holds the two texts generated for a classification.
type Advice struct {
	// Diagnostic names each off-normal bucket with a direction to fix it.
	Diagnostic string `json:"diagnostic"`

	// Recommendations gives numeric slider ranges for a photo editor.
	Recommendations string `json:"recommendations"`
}

// Advise returns both texts for c. It depends on nothing but c.
func Advise(c Classification) Advice {
	return Advice{
		Diagnostic:      Diagnose(c),
		Recommendations: Recommend(c),
	}
}

// Diagnose returns one line per off-normal field, in the order brightness,
// saturation, hue balance, under a fixed header. A neutral classification
// yields a single "looks good" line.
func Diagnose(c Classification) string {
	var tips []string
	if c.Brightness != Normal {
		tips = append(tips, fmt.Sprintf("🔅 Brightness: %s. Tip: %s brightness.", c.Brightness, direction(c.Brightness)))
	}
	if c.Saturation != Normal {
		tips = append(tips, fmt.Sprintf("🎨 Saturation: %s. Tip: %s saturation.", c.Saturation, direction(c.Saturation)))
	}
	if c.HueBalance != Balanced {
		tips = append(tips, fmt.Sprintf("🌈 Color balance: %s. Tip: adjust the white balance.", c.HueBalance))
	}

	if len(tips) == 0 {
		return looksGoodMessage
	}
	return strings.Join(append([]string{diagnosticHeader}, tips...), "\n")
}

// Recommend returns editor slider ranges for each off-normal field, in the
// same order and with the same triggers as Diagnose.
func Recommend(c Classification) string {
	var lines []string
	switch c.Brightness {
	case Low:
		lines = append(lines, "☀️ Exposure: +0.3 to +0.7")
	case High:
		lines = append(lines, "☀️ Exposure: -0.3 to -0.7")
	}
	switch c.Saturation {
	case Low:
		lines = append(lines, "🎨 Vibrance: +10 to +25 (and Saturation +5 to +10)")
	case High:
		lines = append(lines, "🎨 Vibrance: -10 to -25")
	}
	switch c.HueBalance {
	case WarmShift:
		lines = append(lines, "🌡 Temperature: -5 to -15 (cool the image)")
	case CoolShift:
		lines = append(lines, "🌡 Temperature: +5 to +15 (warm the image)")
	}

	if len(lines) == 0 {
		return noAdjustmentsNeeded
	}
	return strings.Join(append([]string{recommendHeader}, lines...), "\n")
}

func direction(l Level) string {
	if l == Low {
		return "increase"
	}
	return "decrease"
}
