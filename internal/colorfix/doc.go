// Package colorfix classifies a photo's color balance and derives advice and
// corrections from that classification.
//
// The pipeline has three pure stages:
//
//  1. Analyze: mean hue, saturation and value over an HSV grid, bucketed into
//     a Classification with DefaultThresholds.
//  2. Advise: diagnostic text and photo-editor slider ranges, computed from the
//     Classification alone.
//  3. Correct: multiplicative gains on saturation and value, clamped to
//     [0,255]. Hue is left as is.
//
// # Thresholds
//
// Means are compared with strict inequalities:
//
//	brightness  Low < 100 <= Normal <= 150 < High
//	saturation  Low < 40  <= Normal <= 200 < High
//	hue         WarmShift if < 15 or > 165, CoolShift if 75 < h < 135
//
// Thresholds and gains are fixed. They are grouped in DefaultThresholds and
// DefaultGains so they can be read and tested in one place.
package colorfix
