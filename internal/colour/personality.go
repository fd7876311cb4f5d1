package colour

// Personality is a light-hearted description of a colour family.
type Personality struct {
	Family          string   `json:"family"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Traits          []string `json:"traits"`
	Recommendations string   `json:"recommendations"`
}

type hueFamily struct {
	upper       int // exclusive upper hue bound
	personality Personality
}

var hueFamilies = []hueFamily{
	{30, Personality{
		Family:          "red",
		Name:            "Passionate reds",
		Description:     "Energetic and driven, a natural leader who takes the initiative and keeps moving forward when things get difficult.",
		Traits:          []string{"passionate", "proactive", "leader", "action-oriented", "decisive"},
		Recommendations: "Pairs well with orange, yellow and deep blue.",
	}},
	{60, Personality{
		Family:          "orange-yellow",
		Name:            "Cheerful oranges and yellows",
		Description:     "Bright and sociable, lifts the mood of everyone nearby and keeps generating new ideas.",
		Traits:          []string{"sociable", "bright", "creative", "optimistic", "communicative"},
		Recommendations: "Combine with red, green or purple for a vivid look.",
	}},
	{120, Personality{
		Family:          "green",
		Name:            "Calming greens",
		Description:     "Gentle and harmonious, values balance and creates peaceful surroundings.",
		Traits:          []string{"calm", "soothing", "cooperative", "natural", "balanced"},
		Recommendations: "Harmonises with blue, yellow and earth tones.",
	}},
	{180, Personality{
		Family:          "cyan-teal",
		Name:            "Intellectual cyans and teals",
		Description:     "Level-headed with a sharp sense of judgement; untangles complex problems and finds precise answers.",
		Traits:          []string{"balanced", "composed", "intellectual", "refined", "analytical"},
		Recommendations: "Contrast with orange, red or navy.",
	}},
	{240, Personality{
		Family:          "blue",
		Name:            "Trustworthy blues",
		Description:     "Sincere and responsible, a dependable partner with logical thinking and a long-term view.",
		Traits:          []string{"sincere", "responsible", "logical", "dependable", "steady"},
		Recommendations: "Use with orange, yellow or white for a clean feel.",
	}},
	{300, Personality{
		Family:          "purple",
		Name:            "Mysterious purples",
		Description:     "Original and artistic, intuitive and sensitive, seeing the world from an unusual angle.",
		Traits:          []string{"original", "mysterious", "sensitive", "intuitive", "artistic"},
		Recommendations: "Refined next to yellow, green or silver.",
	}},
	{360, Personality{
		Family:          "pink-magenta",
		Name:            "Gentle pinks and magentas",
		Description:     "Caring and affectionate, warm and supportive, good at understanding how others feel.",
		Traits:          []string{"caring", "affectionate", "warm", "kind", "supportive"},
		Recommendations: "Elegant with green, blue or gold.",
	}},
}

// Describe returns the personality of the hue family c belongs to, using
// the HSV hue.
func Describe(c RGB) Personality {
	h, _, _ := c.HSV()
	for _, f := range hueFamilies {
		if h < f.upper {
			p := f.personality
			p.Traits = append([]string(nil), p.Traits...)
			return p
		}
	}
	return hueFamilies[len(hueFamilies)-1].personality
}
