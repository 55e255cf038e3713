// Package imaging provides the pixel-level plumbing for photo color analysis.
//
// This package turns encoded image bytes into a PixelGrid, converts grids
// between RGB and HSV, and encodes corrected grids back into bytes in the same
// format family as the input.
//
// # Pixel Grids
//
// A PixelGrid stores three float64 channels per pixel in row-major order.
// (0,0) is the top-left pixel, X increases rightward and Y increases downward.
// Grids are immutable: conversions return new grids.
//
// # Channel Ranges
//
//   - RGB: R, G, B on [0,255]
//   - HSV: H on the half-degree scale [0,180), S and V on [0,255]
//
// The half-degree hue scale matches 8-bit storage of a full 360 degree turn.
// Values are only rounded to integers when a grid is rendered as an image.
//
// # Formats
//
// Decode accepts JPEG, PNG, GIF, TIFF, BMP and WebP. Encode writes JPEG, PNG,
// GIF, TIFF and BMP; WebP input is written as JPEG.
//
// # Error Handling
//
// Every decode or encode failure wraps ErrDecode:
//   - empty, corrupt or unrecognised data
//   - zero-sized images
//   - encoder errors
//
// # Thread Safety
//
// Nothing in this package holds mutable state, so all functions can be called
// concurrently.
package imaging
