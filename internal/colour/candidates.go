package colour

import (
	"fmt"
	"slices"
)

// Mode is the extraction mode that tunes deduplication and filtering.
type Mode string

const (
	// ModeBalanced keeps every distinct candidate.
	ModeBalanced Mode = "balanced"
	// ModeVibrant keeps saturated, reasonably bright candidates.
	ModeVibrant Mode = "vibrant"
	// ModeMuted keeps low-saturation candidates.
	ModeMuted Mode = "muted"
)

// ValidModes returns the supported extraction modes.
func ValidModes() []Mode {
	return []Mode{ModeBalanced, ModeVibrant, ModeMuted}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("%w: unknown extraction mode %q (valid: balanced, vibrant, muted)", ErrInvalidInput, s)
}

// DedupThreshold is the minimum distance a candidate must keep from every
// already accepted candidate.
func (m Mode) DedupThreshold() float64 {
	switch m {
	case ModeVibrant:
		return 30
	case ModeMuted:
		return 20
	default:
		return 25
	}
}

// Source records where a candidate swatch came from.
type Source int

const (
	// SourceQuantizer marks a swatch from the quantizer's palette.
	SourceQuantizer Source = iota
	// SourceDominant marks the quantizer's single dominant colour.
	SourceDominant
)

func (s Source) String() string {
	if s == SourceDominant {
		return "dominant"
	}
	return "quantizer"
}

// Swatch is a candidate colour with its provenance.
type Swatch struct {
	Colour RGB
	Source Source
}

// NewCandidates orders the dominant colour first, followed by the quantizer
// swatches in the order supplied.
func NewCandidates(dominant RGB, swatches []RGB) []Swatch {
	out := make([]Swatch, 0, len(swatches)+1)
	out = append(out, Swatch{Colour: dominant, Source: SourceDominant})
	for _, c := range swatches {
		out = append(out, Swatch{Colour: c, Source: SourceQuantizer})
	}
	return out
}

// Deduplicate greedily keeps swatches, in input order, whose distance to every
// kept swatch is at least threshold.
func Deduplicate(swatches []Swatch, threshold float64) []Swatch {
	unique := make([]Swatch, 0, len(swatches))
	for _, candidate := range swatches {
		duplicate := slices.ContainsFunc(unique, func(kept Swatch) bool {
			return Distance(candidate.Colour, kept.Colour) < threshold
		})
		if !duplicate {
			unique = append(unique, candidate)
		}
	}
	return unique
}

// IsVibrant reports saturation > 0.4 and brightness (max channel / 255) > 0.3.
func IsVibrant(c RGB) bool {
	brightness := float64(max(c.R, c.G, c.B)) / 255
	return HSVSaturation(c) > 0.4 && brightness > 0.3
}

// IsMuted reports saturation < 0.6.
func IsMuted(c RGB) bool {
	return HSVSaturation(c) < 0.6
}

// FilterByMode applies the mode filter, preserving order.
func FilterByMode(swatches []Swatch, mode Mode) []Swatch {
	var keep func(RGB) bool
	switch mode {
	case ModeVibrant:
		keep = IsVibrant
	case ModeMuted:
		keep = IsMuted
	default:
		return slices.Clone(swatches)
	}

	out := make([]Swatch, 0, len(swatches))
	for _, s := range swatches {
		if keep(s.Colour) {
			out = append(out, s)
		}
	}
	return out
}

// BuildCandidates deduplicates, filters by mode and truncates to count.
// The result may be shorter than count.
func BuildCandidates(swatches []Swatch, mode Mode, count int) []Swatch {
	out := FilterByMode(Deduplicate(swatches, mode.DedupThreshold()), mode)
	if count >= 0 && len(out) > count {
		out = out[:count]
	}
	return out
}
