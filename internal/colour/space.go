package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBToHSL converts RGB to HSL colour space.
// Returns hue rounded to whole degrees (0-359), saturation (0-1), lightness (0-1).
// Achromatic colours have h = 0 and s = 0.
// Rounding the hue means HSLToRGB(RGBToHSL(c)) can drift by more than one
// per channel; the unrounded conversion round-trips within ±1.
func RGBToHSL(r, g, b uint8) (h int, s, l float64) {
	hf, s, l := rgbToHSLExact(r, g, b)
	return roundHue(hf), s, l
}

// rgbToHSLExact is RGBToHSL without hue rounding.
func rgbToHSLExact(red, green, blue uint8) (h, s, l float64) {
	r := float64(red) / 255.0
	g := float64(green) / 255.0
	b := float64(blue) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0
	if delta == 0 {
		return 0, 0, l
	}

	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return h * 60, s, l
}

// HSLToRGB converts HSL to RGB colour space.
// h is hue in degrees (any value, wrapped into 0-360), s and l are clamped to 0-1.
func HSLToRGB(h, s, l float64) RGB {
	h = normaliseHue(h)
	s = clampUnit(s)
	l = clampUnit(l)

	if s == 0 {
		v := clampChannel(l * 255)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: clampChannel(hueToRGB(p, q, h+120) * 255),
		G: clampChannel(hueToRGB(p, q, h) * 255),
		B: clampChannel(hueToRGB(p, q, h-120) * 255),
	}
}

// hueToRGB is a helper for HSL to RGB conversion. t is in degrees.
func hueToRGB(p, q, t float64) float64 {
	t = normaliseHue(t)

	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// RGBToHSV converts RGB to HSV colour space.
// Returns hue rounded to whole degrees (0-359), saturation (0-1), value (0-1).
func RGBToHSV(r, g, b uint8) (h int, s, v float64) {
	hf, s, v := rgbToHSVExact(r, g, b)
	return roundHue(hf), s, v
}

// rgbToHSVExact is RGBToHSV without hue rounding.
func rgbToHSVExact(red, green, blue uint8) (h, s, v float64) {
	r := float64(red) / 255.0
	g := float64(green) / 255.0
	b := float64(blue) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	v = maxVal
	if delta == 0 {
		return 0, 0, v
	}
	s = delta / maxVal

	switch maxVal {
	case r:
		h = (g - b) / delta
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return normaliseHue(h * 60), s, v
}

// HSVToRGB converts HSV back to RGB. s and v are clamped to 0-1.
func HSVToRGB(h, s, v float64) RGB {
	c := colorful.Hsv(normaliseHue(h), clampUnit(s), clampUnit(v))
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// HSVSaturation is the saturation used by the mode filters: (max-min)/max.
func HSVSaturation(c RGB) float64 {
	_, s, _ := rgbToHSVExact(c.R, c.G, c.B)
	return s
}

// normaliseHue wraps a hue in degrees into [0, 360).
func normaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func roundHue(h float64) int {
	return int(math.Round(h)) % 360
}
