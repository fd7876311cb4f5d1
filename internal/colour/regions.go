package colour

import "math"

const (
	// DefaultBackgroundThreshold is the share of sampled pixels at which the
	// most populous colour is treated as background.
	DefaultBackgroundThreshold = 0.25

	// BackgroundSimilarity is the distance under which a colour is considered
	// part of the detected background.
	BackgroundSimilarity = 30
)

// IsBackgroundColour reports near-white, light-grey and near-black colours.
func IsBackgroundColour(c RGB) bool {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)

	if r > 240 && g > 240 && b > 240 {
		return true
	}

	avg := (r + g + b) / 3
	variance := math.Abs(r-avg) + math.Abs(g-avg) + math.Abs(b-avg)
	if variance < 25 && avg > 200 {
		return true
	}

	return r < 25 && g < 25 && b < 25
}

// IsSkinTone reports whether c falls in the skin heuristic: HSV hue 0-50,
// saturation 0.1-0.7, value 0.2-0.95.
func IsSkinTone(c RGB) bool {
	h, s, v := c.HSV()
	return h >= 0 && h <= 50 &&
		s >= 0.1 && s <= 0.7 &&
		v >= 0.2 && v <= 0.95
}

// dominantIndex returns the index of the colour with the largest count,
// preferring the earliest on ties, or -1 for an empty slice.
func dominantIndex(colours []ClassifiedColour) int {
	idx := -1
	for i, c := range colours {
		if idx < 0 || c.Count > colours[idx].Count {
			idx = i
		}
	}
	return idx
}

// FilterBackground removes a background population from a classification.
//
// The most populous colour is background when its share of sampled pixels is
// at least threshold. When it is, that colour is dropped together with every
// background-like colour and every colour within BackgroundSimilarity of it.
// Otherwise the colours are returned unchanged. The result may be empty.
func FilterBackground(c Classification, threshold float64) []ClassifiedColour {
	bg := dominantIndex(c.Colours)
	if bg < 0 {
		return nil
	}

	sampled := c.Sampled
	if sampled <= 0 {
		sampled = c.Total()
	}
	dominant := c.Colours[bg]
	if float64(dominant.Count)/float64(sampled) < threshold {
		out := make([]ClassifiedColour, len(c.Colours))
		copy(out, c.Colours)
		return out
	}

	out := make([]ClassifiedColour, 0, len(c.Colours)-1)
	for i, cc := range c.Colours {
		if i == bg {
			continue
		}
		if IsBackgroundColour(cc.Colour) {
			continue
		}
		if Distance(cc.Colour, dominant.Colour) < BackgroundSimilarity {
			continue
		}
		out = append(out, cc)
	}
	return out
}
