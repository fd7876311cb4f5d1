// Package quantize reduces an image to a small set of representative colours.
// The results feed the palette engine as candidate swatches.
package quantize

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/jmylchreest/swatch/internal/colour"
)

// ErrNoPixels is returned when an image has no opaque pixels to quantize.
var ErrNoPixels = errors.New("no eligible pixels in image")

// MaxCount is the largest swatch count a quantizer accepts.
const MaxCount = 256

// Quantizer extracts a dominant colour and a set of swatches from an image.
type Quantizer interface {
	// Quantize returns up to count swatches. Implementations may return fewer
	// when the image has fewer distinct colours.
	Quantize(img image.Image, count int) (Result, error)
}

// Result is the output of one quantization.
type Result struct {
	// Dominant is the colour of the most populous region.
	Dominant colour.RGB
	// Swatches are ordered by descending population.
	Swatches []colour.RGB
}

// Candidates returns the dominant colour followed by the swatches.
func (r Result) Candidates() []colour.Swatch {
	return colour.NewCandidates(r.Dominant, r.Swatches)
}

// Algorithm represents the quantization algorithm type.
type Algorithm string

const (
	// AlgorithmMedianCut recursively splits a colour histogram along its
	// longest axis.
	AlgorithmMedianCut Algorithm = "mediancut"

	// AlgorithmKMeans uses k-means++ clustering.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmProminent uses the prominentcolor k-means implementation,
	// which crops and masks the image before clustering.
	AlgorithmProminent Algorithm = "prominent"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmMedianCut, AlgorithmKMeans, AlgorithmProminent}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// Options configures a quantizer.
type Options struct {
	// Seed makes k-means initialisation reproducible. Nil seeds from the clock.
	Seed *int64
	// Quality is the pixel step median cut samples on both axes.
	Quality int
	// Workers bounds the goroutines counting median-cut populations; 0 picks a default.
	Workers int
}

// DefaultOptions returns the default quantizer options.
func DefaultOptions() Options {
	return Options{Quality: 10}
}

// New creates a Quantizer for the specified algorithm.
func New(alg Algorithm, opts Options) (Quantizer, error) {
	switch alg {
	case AlgorithmMedianCut, "":
		return NewMedianCut(opts), nil
	case AlgorithmKMeans:
		return NewKMeans(opts), nil
	case AlgorithmProminent:
		return NewProminent(), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q (valid algorithms: %v)", colour.ErrInvalidInput, alg, ValidAlgorithms())
	}
}

func validateRequest(img image.Image, count int) error {
	if img == nil {
		return fmt.Errorf("%w: image cannot be nil", colour.ErrInvalidInput)
	}
	if count < 1 {
		return fmt.Errorf("%w: color count must be at least 1, got %d", colour.ErrInvalidInput, count)
	}
	if count > MaxCount {
		return fmt.Errorf("%w: color count too large: %d (maximum: %d)", colour.ErrInvalidInput, count, MaxCount)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ErrNoPixels
	}
	return nil
}

// toRGB converts any colour to 8-bit RGB, un-premultiplying alpha.
func toRGB(c color.Color) (colour.RGB, uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colour.RGB{R: n.R, G: n.G, B: n.B}, n.A
}
