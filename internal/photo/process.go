// Package photo runs the complete color pipeline on encoded image bytes:
// decode, convert to HSV, analyze, advise, correct, convert back and encode.
package photo

import (
	"github.com/ironsheep/photo-color-mcp/internal/colorfix"
	"github.com/ironsheep/photo-color-mcp/internal/imaging"
)

// Caption accompanies a corrected image when it is delivered to a user.
const Caption = "🖼️ Here is the processed photo. Download it!"

// FailureMessage is the user-facing text for any pipeline failure.
const FailureMessage = "⚠️ Something went wrong. Try another photo."

// Welcome is the greeting shown by interactive front ends.
const Welcome = "Hello! Send me a photo, and I will analyze its color correction. " +
	"After the analysis, I will offer you the processed photo for download."

// Options configures a Processor.
type Options struct {
	// JPEGQuality is used when the corrected image is written as JPEG (1-100).
	JPEGQuality int

	// AutoOrient applies EXIF orientation while decoding.
	AutoOrient bool
}

// DefaultOptions returns the options used by the package-level functions.
func DefaultOptions() Options {
	return Options{JPEGQuality: imaging.DefaultJPEGQuality}
}

// Analysis is the text-and-numbers part of a pipeline run.
type Analysis struct {
	Stats          colorfix.Stats          `json:"stats"`
	Classification colorfix.Classification `json:"classification"`
	colorfix.Advice

	// Format is the detected input format.
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Result is a full pipeline run: the analysis plus the corrected image.
type Result struct {
	Analysis

	// Image is the corrected image, encoded as OutputFormat.
	Image        []byte `json:"-"`
	OutputFormat string `json:"output_format"`
	MimeType     string `json:"mime_type"`

	// Filename is a suggested download name, e.g. "corrected_photo.jpg".
	Filename string `json:"filename"`
	Caption  string `json:"caption"`
}

// Processor runs the pipeline with fixed options. It holds no mutable state
// and is safe for concurrent use.
type Processor struct {
	opts Options
}

// New creates a Processor.
func New(opts Options) *Processor {
	return &Processor{opts: opts}
}

// Process runs the complete pipeline on encoded image bytes.
//
// The only failure is an error wrapping imaging.ErrDecode, raised when the
// bytes are not a usable image or the corrected grid cannot be encoded. On
// failure no partial result is returned.
func (p *Processor) Process(data []byte) (*Result, error) {
	decoded, hsv, analysis, err := p.analyze(data)
	if err != nil {
		return nil, err
	}

	corrected := imaging.ToRGB(colorfix.Correct(hsv, analysis.Classification))
	out, format, err := imaging.Encode(corrected, decoded.Format, p.opts.JPEGQuality)
	if err != nil {
		return nil, err
	}

	return &Result{
		Analysis:     *analysis,
		Image:        out,
		OutputFormat: format,
		MimeType:     imaging.MimeType(format),
		Filename:     "corrected_photo." + imaging.Extension(format),
		Caption:      Caption,
	}, nil
}

// Analyze runs decode, analysis and advice without producing a corrected image.
func (p *Processor) Analyze(data []byte) (*Analysis, error) {
	_, _, analysis, err := p.analyze(data)
	return analysis, err
}

func (p *Processor) analyze(data []byte) (*imaging.Decoded, *imaging.PixelGrid, *Analysis, error) {
	decoded, err := imaging.Decode(data, imaging.DecodeOptions{AutoOrient: p.opts.AutoOrient})
	if err != nil {
		return nil, nil, nil, err
	}

	hsv := imaging.ToHSV(decoded.Grid)
	stats, class := colorfix.Analyze(hsv)

	return decoded, hsv, &Analysis{
		Stats:          stats,
		Classification: class,
		Advice:         colorfix.Advise(class),
		Format:         decoded.Format,
		Width:          decoded.Grid.Width,
		Height:         decoded.Grid.Height,
	}, nil
}

// Process runs the pipeline with DefaultOptions.
func Process(data []byte) (*Result, error) {
	return New(DefaultOptions()).Process(data)
}
