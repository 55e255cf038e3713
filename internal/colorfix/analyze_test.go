package colorfix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/photo-color-mcp/internal/imaging"
)

func uniformHSV(h, s, v float64) *imaging.PixelGrid {
	return imaging.NewPixelGrid(2, 2, imaging.HSV, imaging.Pixel{h, s, v})
}

func TestClassify_Brightness(t *testing.T) {
	tests := []struct {
		value float64
		want  Level
	}{
		{0, Low},
		{50, Low},
		{99.99, Low},
		{100, Normal},
		{125, Normal},
		{150, Normal},
		{150.01, High},
		{255, High},
	}

	for _, tt := range tests {
		got := Classify(Stats{MeanHue: 45, MeanSaturation: 100, MeanValue: tt.value}, DefaultThresholds())
		assert.Equalf(t, tt.want, got.Brightness, "mean value %v", tt.value)
	}
}

func TestClassify_Saturation(t *testing.T) {
	tests := []struct {
		saturation float64
		want       Level
	}{
		{0, Low},
		{39.9, Low},
		{40, Normal},
		{120, Normal},
		{200, Normal},
		{200.1, High},
		{255, High},
	}

	for _, tt := range tests {
		got := Classify(Stats{MeanHue: 45, MeanSaturation: tt.saturation, MeanValue: 125}, DefaultThresholds())
		assert.Equalf(t, tt.want, got.Saturation, "mean saturation %v", tt.saturation)
	}
}

func TestClassify_HueBalance(t *testing.T) {
	tests := []struct {
		hue  float64
		want HueBalance
	}{
		{0, WarmShift},
		{10, WarmShift},
		{15, Balanced},
		{45, Balanced},
		{75, Balanced},
		{75.5, CoolShift},
		{100, CoolShift},
		{134.9, CoolShift},
		{135, Balanced},
		{150, Balanced},
		{165, Balanced},
		{170, WarmShift},
		{179, WarmShift},
	}

	for _, tt := range tests {
		got := Classify(Stats{MeanHue: tt.hue, MeanSaturation: 100, MeanValue: 125}, DefaultThresholds())
		assert.Equalf(t, tt.want, got.HueBalance, "mean hue %v", tt.hue)
	}
}

func TestAnalyze_UsesFullGridMeans(t *testing.T) {
	grid := imaging.GridFromPixels(imaging.HSV, [][]imaging.Pixel{
		{{10, 0, 0}, {20, 40, 100}},
		{{30, 80, 200}, {40, 120, 255}},
	})

	stats, class := Analyze(grid)

	assert.InDelta(t, 25.0, stats.MeanHue, 1e-9)
	assert.InDelta(t, 60.0, stats.MeanSaturation, 1e-9)
	assert.InDelta(t, 138.75, stats.MeanValue, 1e-9)

	want := Classification{Brightness: Normal, Saturation: Normal, HueBalance: Balanced}
	if diff := cmp.Diff(want, class); diff != "" {
		t.Errorf("classification mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_DarkDesaturatedGrid(t *testing.T) {
	stats, class := Analyze(uniformHSV(45, 20, 50))

	assert.InDelta(t, 50.0, stats.MeanValue, 1e-9)
	assert.InDelta(t, 20.0, stats.MeanSaturation, 1e-9)

	want := Classification{Brightness: Low, Saturation: Low, HueBalance: Balanced}
	if diff := cmp.Diff(want, class); diff != "" {
		t.Errorf("classification mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_SinglePixel(t *testing.T) {
	grid := imaging.NewPixelGrid(1, 1, imaging.HSV, imaging.Pixel{100, 220, 200})

	_, class := Analyze(grid)

	assert.Equal(t, Classification{Brightness: High, Saturation: High, HueBalance: CoolShift}, class)
}

func TestAnalyze_ConvertsRGBInput(t *testing.T) {
	// Pure red: hue 0, full saturation and value.
	grid := imaging.NewPixelGrid(3, 3, imaging.RGB, imaging.Pixel{255, 0, 0})

	stats, class := Analyze(grid)

	assert.InDelta(t, 0.0, stats.MeanHue, 1e-9)
	assert.InDelta(t, 255.0, stats.MeanSaturation, 1e-9)
	assert.Equal(t, Classification{Brightness: High, Saturation: High, HueBalance: WarmShift}, class)
}

func TestAnalyze_EmptyGrid(t *testing.T) {
	stats, class := Analyze(imaging.NewPixelGrid(0, 0, imaging.HSV, imaging.Pixel{}))

	require.Equal(t, Stats{}, stats)
	assert.Equal(t, Classification{Brightness: Low, Saturation: Low, HueBalance: WarmShift}, class)
}

func TestDefaultThresholds(t *testing.T) {
	want := Thresholds{
		ValueLow: 100, ValueHigh: 150,
		SaturationLow: 40, SaturationHigh: 200,
		WarmBelow: 15, WarmAbove: 165,
		CoolAbove: 75, CoolBelow: 135,
	}
	if diff := cmp.Diff(want, DefaultThresholds()); diff != "" {
		t.Errorf("thresholds changed (-want +got):\n%s", diff)
	}
}
