package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrDecode is returned when bytes cannot be turned into a usable pixel grid,
// or when a corrected grid cannot be encoded back into bytes. Callers should
// match it with errors.Is.
var ErrDecode = errors.New("image decode failure")

// DefaultJPEGQuality is the JPEG quality used when none is configured.
const DefaultJPEGQuality = 95

// FallbackFormat is the output format for inputs that can be decoded but not
// encoded again (WebP).
const FallbackFormat = "jpeg"

// DecodeOptions controls how raw bytes are decoded.
type DecodeOptions struct {
	// AutoOrient applies the EXIF orientation tag of JPEG input before the
	// grid is built. Width and height are then those of the rotated image.
	AutoOrient bool
}

// Decoded is the result of decoding an encoded raster image.
type Decoded struct {
	// Grid holds the pixels in RGB order.
	Grid *PixelGrid

	// Format is the detected encoding: "jpeg", "png", "gif", "tiff", "bmp" or "webp".
	Format string
}

// Decode parses an encoded image into an RGB PixelGrid.
//
// Returns an error wrapping ErrDecode when:
//   - the data is empty or in an unregistered format
//   - the data is corrupt
//   - the image has zero width or height
func Decode(data []byte, opts DecodeOptions) (*Decoded, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: zero-sized image (%dx%d)", ErrDecode, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(opts.AutoOrient))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	grid := FromImage(img)
	if grid.Empty() {
		return nil, fmt.Errorf("%w: decoded image has no pixels", ErrDecode)
	}

	return &Decoded{Grid: grid, Format: format}, nil
}

// OutputFormat returns the format a grid decoded from format will be encoded
// as. Formats without an encoder map to FallbackFormat.
func OutputFormat(format string) string {
	if _, ok := encoders(DefaultJPEGQuality)[format]; ok {
		return format
	}
	return FallbackFormat
}

// MimeType returns the MIME type for a format name, or
// "application/octet-stream" for unknown formats.
func MimeType(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "tiff":
		return "image/tiff"
	case "bmp":
		return "image/bmp"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the conventional file extension for a format, without
// the leading dot.
func Extension(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	default:
		return format
	}
}

// Encode renders a grid in the given format. The format is first passed
// through OutputFormat, and the format actually used is returned alongside the
// bytes. jpegQuality outside 1-100 falls back to DefaultJPEGQuality.
//
// Encoder failures wrap ErrDecode.
func Encode(g *PixelGrid, format string, jpegQuality int) ([]byte, string, error) {
	if g.Empty() {
		return nil, "", fmt.Errorf("%w: cannot encode an empty grid", ErrDecode)
	}
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}

	format = OutputFormat(format)
	encode := encoders(jpegQuality)[format]

	var buf bytes.Buffer
	if err := encode(&buf, g.Image()); err != nil {
		return nil, "", fmt.Errorf("%w: failed to encode %s: %v", ErrDecode, format, err)
	}
	return buf.Bytes(), format, nil
}

// encoders maps format names to encoders. JPEG and PNG go through bild's
// encoders; the remaining formats use disintegration/imaging.
func encoders(jpegQuality int) map[string]imgio.Encoder {
	return map[string]imgio.Encoder{
		"jpeg": imgio.JPEGEncoder(jpegQuality),
		"png":  imgio.PNGEncoder(),
		"gif":  imagingEncoder(imaging.GIF),
		"tiff": imagingEncoder(imaging.TIFF),
		"bmp":  imagingEncoder(imaging.BMP),
	}
}

func imagingEncoder(f imaging.Format) imgio.Encoder {
	return func(w io.Writer, img image.Image) error {
		return imaging.Encode(w, img, f)
	}
}
