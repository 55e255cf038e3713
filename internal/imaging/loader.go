package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
)

// ImageInfo contains metadata about an encoded image.
//
// This struct provides essential information about an image without decoding
// its full pixel data.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "jpeg", "png", "gif", "tiff", "bmp" or "webp".
	// Detection is based on file contents, not the file extension.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the color model carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the encoded data in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// ReadFile reads an image file into memory.
//
// The bytes are not decoded; pass them to Decode or to the photo pipeline.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// InspectBytes returns metadata for encoded image data by reading only the
// image header. The pixel data is not validated: a file with an intact header
// and a corrupt or truncated body is still reported with the dimensions its
// header claims. Decode is the call that rejects such data.
//
// # Color Depth Detection
//
// Color depth and alpha are determined by the decoder's color model:
//   - RGBA64, NRGBA64 -> "16-bit", alpha
//   - Gray16 -> "16-bit"
//   - RGBA, NRGBA -> "8-bit", alpha
//   - All other models -> "8-bit"
//
// # Errors
//
// Returns an error wrapping ErrDecode if the header cannot be parsed or the
// image has zero width or height.
func InspectBytes(data []byte) (*ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: zero-sized image (%dx%d)", ErrDecode, cfg.Width, cfg.Height)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch cfg.ColorModel {
	case color.RGBAModel, color.NRGBAModel:
		hasAlpha = true
	case color.RGBA64Model, color.NRGBA64Model:
		hasAlpha = true
		colorDepth = "16-bit"
	case color.Gray16Model:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: int64(len(data)),
	}, nil
}

// LoadImageInfo reads an image file and returns its metadata.
//
// Parameters:
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the file cannot be read or its header is not a
//     supported image. Only the header is checked; see InspectBytes.
func LoadImageInfo(path string) (*ImageInfo, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return InspectBytes(data)
}
