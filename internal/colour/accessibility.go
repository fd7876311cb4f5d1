package colour

// ConfusionThreshold is the distance under which a colour and its dichromacy
// simulation are considered the same colour.
const ConfusionThreshold = 50

// AccessibilityProfile holds dichromacy flags for a colour. A deficiency flag
// is true when the simulated colour stays within ConfusionThreshold of the
// original.
type AccessibilityProfile struct {
	Normal       bool `json:"normal"`
	Protanopia   bool `json:"protanopia"`
	Deuteranopia bool `json:"deuteranopia"`
	Tritanopia   bool `json:"tritanopia"`
}

// DefaultProfile is the profile reported when accessibility analysis is off.
func DefaultProfile() AccessibilityProfile {
	return AccessibilityProfile{Normal: true}
}

// Profile runs the three dichromacy simulations against c.
func Profile(c RGB) AccessibilityProfile {
	return AccessibilityProfile{
		Normal:       true,
		Protanopia:   Distance(c, SimulateProtanopia(c)) < ConfusionThreshold,
		Deuteranopia: Distance(c, SimulateDeuteranopia(c)) < ConfusionThreshold,
		Tritanopia:   Distance(c, SimulateTritanopia(c)) < ConfusionThreshold,
	}
}

// SimulateProtanopia approximates red-blind vision.
func SimulateProtanopia(c RGB) RGB {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return RGB{
		R: clampChannel(0.567*r + 0.433*g),
		G: clampChannel(0.558*r + 0.442*g),
		B: clampChannel(0.242*g + 0.758*b),
	}
}

// SimulateDeuteranopia approximates green-blind vision.
func SimulateDeuteranopia(c RGB) RGB {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return RGB{
		R: clampChannel(0.625*r + 0.375*g),
		G: clampChannel(0.7*r + 0.3*g),
		B: clampChannel(0.3*g + 0.7*b),
	}
}

// SimulateTritanopia approximates blue-blind vision.
func SimulateTritanopia(c RGB) RGB {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return RGB{
		R: clampChannel(0.95*r + 0.05*g),
		G: clampChannel(0.433*g + 0.567*b),
		B: clampChannel(0.475*g + 0.525*b),
	}
}
