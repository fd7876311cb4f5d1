package colour

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/hashicorp/go-hclog"
)

// ErrInvalidInput is wrapped by every input validation error.
var ErrInvalidInput = errors.New("invalid input")

const (
	// MinColourCount is the smallest palette size that can be requested.
	MinColourCount = 3
	// MaxColourCount is the largest palette size that can be requested.
	MaxColourCount = 15
	// DefaultColourCount is the palette size used when none is given.
	DefaultColourCount = 8
)

// Options configures one extraction run.
type Options struct {
	Mode        Mode
	ColourCount int

	// SmartFilter classifies pixels and removes the background population.
	SmartFilter bool
	// PortraitMode classifies pixels and ignores skin tones.
	PortraitMode bool
	// Accessibility computes dichromacy flags for every entry.
	Accessibility bool

	// BackgroundThreshold overrides DefaultBackgroundThreshold when non-zero.
	BackgroundThreshold float64
	// Workers bounds classifier goroutines; 0 picks a default.
	Workers int
	// Rand drives synthetic percentages. Nil means non-deterministic output.
	Rand *rand.Rand
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode:                ModeBalanced,
		ColourCount:         DefaultColourCount,
		BackgroundThreshold: DefaultBackgroundThreshold,
	}
}

// Validate validates the options.
func (o Options) Validate() error {
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if o.ColourCount < MinColourCount || o.ColourCount > MaxColourCount {
		return fmt.Errorf("%w: colour count must be between %d and %d, got %d",
			ErrInvalidInput, MinColourCount, MaxColourCount, o.ColourCount)
	}
	if o.BackgroundThreshold < 0 || o.BackgroundThreshold > 1 {
		return fmt.Errorf("%w: background threshold must be within [0, 1], got %g",
			ErrInvalidInput, o.BackgroundThreshold)
	}
	return nil
}

// usesPixels reports whether the options ask for pixel classification.
func (o Options) usesPixels() bool {
	return o.SmartFilter || o.PortraitMode
}

func (o Options) backgroundThreshold() float64 {
	if o.BackgroundThreshold == 0 {
		return DefaultBackgroundThreshold
	}
	return o.BackgroundThreshold
}

// Engine runs the palette pipeline. It holds no state between runs.
type Engine struct {
	logger hclog.Logger
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(logger hclog.Logger) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Engine{logger: logger}
}

// ExtractPalette turns candidate swatches, and optionally the source pixels,
// into a ranked palette.
//
// Pixel classification runs when SmartFilter or PortraitMode is set and
// pixels is non-nil; otherwise percentages are synthesised. An empty palette
// with a nil error means every candidate was filtered out.
func (e *Engine) ExtractPalette(candidates []Swatch, opts Options, pixels *PixelBuffer) (Palette, error) {
	if len(candidates) == 0 {
		return Palette{}, fmt.Errorf("%w: no candidate swatches", ErrInvalidInput)
	}
	if err := opts.Validate(); err != nil {
		return Palette{}, err
	}

	built := BuildCandidates(candidates, opts.Mode, opts.ColourCount)
	e.logger.Debug("built candidates", "input", len(candidates), "kept", len(built), "mode", opts.Mode)
	if len(built) == 0 {
		return Palette{}, nil
	}

	var palette Palette
	switch {
	case opts.usesPixels() && pixels != nil:
		classification := Classify(*pixels, built, ClassifyOptions{
			ExcludeSkin: opts.PortraitMode,
			Workers:     opts.Workers,
		})
		filtered := FilterBackground(classification, opts.backgroundThreshold())
		e.logger.Debug("classified pixels",
			"sampled", classification.Sampled,
			"matched", classification.Total(),
			"colours", len(classification.Colours),
			"after_filter", len(filtered))
		palette = Palette{Entries: AllocateMeasured(filtered), Measured: true}
	default:
		if opts.usesPixels() {
			e.logger.Debug("pixel classification requested without pixels, using synthetic percentages")
		}
		palette = Palette{Entries: AllocateSynthetic(built, opts.Rand)}
	}

	if opts.Accessibility {
		for i := range palette.Entries {
			palette.Entries[i].Accessibility = Profile(palette.Entries[i].RGB)
		}
	}

	return palette, nil
}

// GenerateHarmonies generates harmony sets for the leading palette colours.
func (e *Engine) GenerateHarmonies(palette Palette) HarmonyResult {
	return GenerateHarmonies(palette.Entries, e.logger)
}
