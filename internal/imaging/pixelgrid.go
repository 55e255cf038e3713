package imaging

import (
	"image"
	"image/color"
	"math"
)

// ColorSpace identifies the channel order stored in a PixelGrid.
type ColorSpace int

const (
	// RGB grids hold red, green and blue, each on [0,255].
	RGB ColorSpace = iota
	// HSV grids hold hue on the half-degree scale [0,180) followed by
	// saturation and value on [0,255].
	HSV
)

// String returns "rgb" or "hsv".
func (s ColorSpace) String() string {
	switch s {
	case RGB:
		return "rgb"
	case HSV:
		return "hsv"
	default:
		return "unknown"
	}
}

// Pixel is one 3-channel sample. Channel meaning depends on the grid's ColorSpace.
type Pixel [3]float64

// PixelGrid is a width × height array of 3-channel pixels.
//
// Channels are kept as float64 so that color space conversions and gain
// adjustments never truncate between stages. Rounding to 8 bits happens only
// when the grid is turned back into an image.Image.
//
// A PixelGrid is never modified after construction. Every operation in this
// module that transforms a grid returns a new one, so grids can be shared
// freely between goroutines.
type PixelGrid struct {
	Width  int
	Height int
	Space  ColorSpace

	// pix holds 3 channels per pixel in row-major order.
	pix []float64
}

// NewPixelGrid builds a grid of the given size where every pixel is p.
//
// Negative dimensions are treated as zero, which yields an empty grid.
func NewPixelGrid(width, height int, space ColorSpace, p Pixel) *PixelGrid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &PixelGrid{
		Width:  width,
		Height: height,
		Space:  space,
		pix:    make([]float64, 3*width*height),
	}
	for i := 0; i < len(g.pix); i += 3 {
		g.pix[i], g.pix[i+1], g.pix[i+2] = p[0], p[1], p[2]
	}
	return g
}

// GridFromPixels builds a grid from rows of pixels. All rows must have the
// same length; rows[y][x] becomes the pixel at (x, y).
func GridFromPixels(space ColorSpace, rows [][]Pixel) *PixelGrid {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	g := &PixelGrid{Width: width, Height: height, Space: space, pix: make([]float64, 3*width*height)}
	for y, row := range rows {
		for x := 0; x < width && x < len(row); x++ {
			i := g.offset(x, y)
			g.pix[i], g.pix[i+1], g.pix[i+2] = row[x][0], row[x][1], row[x][2]
		}
	}
	return g
}

// Len returns the number of pixels in the grid.
func (g *PixelGrid) Len() int {
	return g.Width * g.Height
}

// Empty reports whether the grid has no pixels.
func (g *PixelGrid) Empty() bool {
	return g.Len() == 0
}

// At returns the pixel at (x, y). Coordinates are 0-based from the top-left
// corner; out-of-range coordinates return the zero Pixel.
func (g *PixelGrid) At(x, y int) Pixel {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return Pixel{}
	}
	i := g.offset(x, y)
	return Pixel{g.pix[i], g.pix[i+1], g.pix[i+2]}
}

// Map returns a new grid in the given space where each pixel is fn applied to
// the corresponding pixel of g.
func (g *PixelGrid) Map(space ColorSpace, fn func(Pixel) Pixel) *PixelGrid {
	out := &PixelGrid{Width: g.Width, Height: g.Height, Space: space, pix: make([]float64, len(g.pix))}
	for i := 0; i < len(g.pix); i += 3 {
		p := fn(Pixel{g.pix[i], g.pix[i+1], g.pix[i+2]})
		out.pix[i], out.pix[i+1], out.pix[i+2] = p[0], p[1], p[2]
	}
	return out
}

// ChannelSums returns the sum of each channel over every pixel.
func (g *PixelGrid) ChannelSums() [3]float64 {
	var sums [3]float64
	for i := 0; i < len(g.pix); i += 3 {
		sums[0] += g.pix[i]
		sums[1] += g.pix[i+1]
		sums[2] += g.pix[i+2]
	}
	return sums
}

func (g *PixelGrid) offset(x, y int) int {
	return 3 * (y*g.Width + x)
}

// FromImage converts any image.Image into an RGB PixelGrid.
//
// Alpha is discarded: channels are read in non-premultiplied form and the
// resulting grid is fully opaque. 16-bit images are scaled down to the 8-bit
// range.
func FromImage(img image.Image) *PixelGrid {
	bounds := img.Bounds()
	g := &PixelGrid{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Space:  RGB,
		pix:    make([]float64, 3*bounds.Dx()*bounds.Dy()),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			g.pix[i] = float64(c.R >> 8)
			g.pix[i+1] = float64(c.G >> 8)
			g.pix[i+2] = float64(c.B >> 8)
			i += 3
		}
	}
	return g
}

// Image renders an RGB grid as an opaque *image.NRGBA, rounding each channel
// to the nearest integer and clamping it to [0,255]. HSV grids are converted
// to RGB first.
func (g *PixelGrid) Image() *image.NRGBA {
	src := g
	if g.Space != RGB {
		src = ToRGB(g)
	}

	img := image.NewNRGBA(image.Rect(0, 0, src.Width, src.Height))
	for p, j := 0, 0; p < len(src.pix); p, j = p+3, j+4 {
		img.Pix[j] = toUint8(src.pix[p])
		img.Pix[j+1] = toUint8(src.pix[p+1])
		img.Pix[j+2] = toUint8(src.pix[p+2])
		img.Pix[j+3] = 0xff
	}
	return img
}

func toUint8(v float64) uint8 {
	return uint8(Clamp(math.Round(v), 0, 255))
}

// Clamp restricts v to [lo, hi], saturating at the boundary.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
