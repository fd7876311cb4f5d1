// Package colour implements the palette analysis engine: colour space maths,
// candidate building, pixel classification, background filtering, percentage
// allocation, accessibility profiling and harmony generation.
package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return RGBToHex(rgb.R, rgb.G, rgb.B)
}

// HSL returns hue (0-359, whole degrees), saturation (0-1) and lightness (0-1).
func (rgb RGB) HSL() (h int, s, l float64) {
	return RGBToHSL(rgb.R, rgb.G, rgb.B)
}

// HSV returns hue (0-359, whole degrees), saturation (0-1) and value (0-1).
func (rgb RGB) HSV() (h int, s, v float64) {
	return RGBToHSV(rgb.R, rgb.G, rgb.B)
}

// Slice returns the channels as [r, g, b].
func (rgb RGB) Slice() [3]uint8 {
	return [3]uint8{rgb.R, rgb.G, rgb.B}
}

// RGBToHex formats channels as a zero-padded, uppercase, #-prefixed hex string.
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// ParseHex parses "#RRGGBB" or "RRGGBB" in any case.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Distance is the Euclidean distance between two colours in raw RGB space.
// The range is [0, ~441.67].
func Distance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Brightness is the perceived brightness 0.299r + 0.587g + 0.114b, in [0, 255].
func Brightness(c RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// ContrastColour returns the text colour ("#000000" or "#ffffff") that reads
// best on top of c.
func ContrastColour(c RGB) string {
	if Brightness(c) > 128 {
		return "#000000"
	}
	return "#ffffff"
}

// ContrastColourHex is ContrastColour for a hex string. Unparseable input
// yields white text.
func ContrastColourHex(hex string) string {
	c, err := ParseHex(hex)
	if err != nil {
		return "#ffffff"
	}
	return ContrastColour(c)
}

// clampChannel rounds v and clamps it into a uint8 channel.
func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
