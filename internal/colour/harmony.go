package colour

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"
)

// MaxHarmonyBases is the number of leading palette colours harmonies are
// generated for.
const MaxHarmonyBases = 3

// HarmonyKind names a colour-harmony scheme.
type HarmonyKind string

const (
	// HarmonyComplementary is the channel-inverted base colour.
	HarmonyComplementary HarmonyKind = "complementary"
	// HarmonyAnalogous is the two hues 30 degrees either side of the base.
	HarmonyAnalogous HarmonyKind = "analogous"
	// HarmonyTriad is the two hues 120 degrees from the base.
	HarmonyTriad HarmonyKind = "triad"
	// HarmonyTetradic is the three hues 90 degrees apart from the base.
	HarmonyTetradic HarmonyKind = "tetradic"
	// HarmonyMonochromatic is the base hue at varied saturation and lightness.
	HarmonyMonochromatic HarmonyKind = "monochromatic"
)

// HarmonyKinds returns every kind in generation order.
func HarmonyKinds() []HarmonyKind {
	return []HarmonyKind{
		HarmonyComplementary,
		HarmonyAnalogous,
		HarmonyTriad,
		HarmonyTetradic,
		HarmonyMonochromatic,
	}
}

// HarmonySet is the companion colours for one base colour and kind.
type HarmonySet struct {
	Base    PaletteEntry `json:"base"`
	Kind    HarmonyKind  `json:"kind"`
	Colours []RGB        `json:"colors"`
}

// HarmonyFailure records a (base, kind) pair that could not be generated.
type HarmonyFailure struct {
	Base PaletteEntry
	Kind HarmonyKind
	Err  error
}

func (f HarmonyFailure) Error() string {
	return fmt.Sprintf("%s harmony for %s: %v", f.Kind, f.Base.Hex, f.Err)
}

// HarmonyResult holds the generated sets and any isolated failures.
type HarmonyResult struct {
	Sets     []HarmonySet
	Failures []HarmonyFailure
}

// Complementary inverts each channel. This is not a 180° hue rotation.
func Complementary(c RGB) []RGB {
	return []RGB{{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}}
}

// Analogous rotates hue by +30° and -30°.
func Analogous(c RGB) []RGB {
	return rotateHue(c, 30, -30)
}

// Triad rotates hue by +120° and +240°.
func Triad(c RGB) []RGB {
	return rotateHue(c, 120, 240)
}

// Tetradic rotates hue by +90°, +180° and +270°.
func Tetradic(c RGB) []RGB {
	return rotateHue(c, 90, 180, 270)
}

// Monochromatic scales saturation and lightness of the base colour.
func Monochromatic(c RGB) []RGB {
	h, s, l := c.HSL()
	hue := float64(h)
	return []RGB{
		HSLToRGB(hue, s*0.7, math.Min(1, l*1.3)),
		HSLToRGB(hue, s*1.2, l*0.7),
		HSLToRGB(hue, s*0.9, math.Min(1, l*1.1)),
		HSLToRGB(hue, s*0.5, l*0.9),
	}
}

func rotateHue(c RGB, degrees ...int) []RGB {
	h, s, l := c.HSL()
	out := make([]RGB, len(degrees))
	for i, d := range degrees {
		out[i] = HSLToRGB(float64((h+d+360)%360), s, l)
	}
	return out
}

// HarmonyFunc returns the generator for kind.
func HarmonyFunc(kind HarmonyKind) (func(RGB) []RGB, error) {
	switch kind {
	case HarmonyComplementary:
		return Complementary, nil
	case HarmonyAnalogous:
		return Analogous, nil
	case HarmonyTriad:
		return Triad, nil
	case HarmonyTetradic:
		return Tetradic, nil
	case HarmonyMonochromatic:
		return Monochromatic, nil
	default:
		return nil, fmt.Errorf("unknown harmony kind: %s", kind)
	}
}

// GenerateHarmony builds one harmony set. The base colour is taken from the
// entry's hex code, so a malformed entry fails here rather than producing
// colours for the wrong base.
func GenerateHarmony(base PaletteEntry, kind HarmonyKind) (set HarmonySet, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("harmony generation panicked: %v", r)
		}
	}()

	fn, err := HarmonyFunc(kind)
	if err != nil {
		return HarmonySet{}, err
	}
	c, err := ParseHex(base.Hex)
	if err != nil {
		return HarmonySet{}, err
	}

	return HarmonySet{Base: base, Kind: kind, Colours: fn(c)}, nil
}

// GenerateHarmonies builds every harmony kind for up to the first
// MaxHarmonyBases palette entries. A failing pair is logged and recorded in
// Failures; the remaining pairs are still generated.
func GenerateHarmonies(palette []PaletteEntry, logger hclog.Logger) HarmonyResult {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	bases := palette[:min(len(palette), MaxHarmonyBases)]
	var result HarmonyResult
	for _, base := range bases {
		for _, kind := range HarmonyKinds() {
			set, err := GenerateHarmony(base, kind)
			if err != nil {
				logger.Warn("harmony generation failed", "base", base.Hex, "kind", kind, "error", err)
				result.Failures = append(result.Failures, HarmonyFailure{Base: base, Kind: kind, Err: err})
				continue
			}
			result.Sets = append(result.Sets, set)
		}
	}
	return result
}
