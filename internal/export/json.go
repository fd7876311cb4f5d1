package export

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"time"

	"golang.org/x/image/colornames"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Document is the JSON export of a palette.
type Document struct {
	Name        string              `json:"name"`
	Generated   time.Time           `json:"generated"`
	Source      string              `json:"source,omitempty"`
	Measured    bool                `json:"measured"`
	Colours     []DocumentColour    `json:"colors"`
	Harmonies   []DocumentHarmony   `json:"harmonies,omitempty"`
	Personality *colour.Personality `json:"personality,omitempty"`
}

// DocumentColour is one exported palette entry.
type DocumentColour struct {
	ID            int                         `json:"id"`
	Name          string                      `json:"name"`
	CSSName       string                      `json:"css_name"`
	Hex           string                      `json:"hex"`
	RGB           colour.RGB                  `json:"rgb"`
	HSL           HSL                         `json:"hsl"`
	Percentage    float64                     `json:"percentage"`
	Accessibility colour.AccessibilityProfile `json:"accessibility"`
}

// HSL is hue in degrees with saturation and lightness in [0,1].
type HSL struct {
	H int     `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// DocumentHarmony is one generated harmony set.
type DocumentHarmony struct {
	Base    string   `json:"base"`
	Kind    string   `json:"kind"`
	Colours []string `json:"colors"`
}

// NewDocument builds the JSON document for a palette.
func NewDocument(p colour.Palette, meta Meta) Document {
	generated := meta.Generated
	if generated.IsZero() {
		generated = time.Now().UTC()
	}

	doc := Document{
		Name:        meta.name(),
		Generated:   generated,
		Source:      meta.Source,
		Measured:    p.Measured,
		Colours:     make([]DocumentColour, 0, len(p.Entries)),
		Personality: meta.Personality,
	}

	for i, e := range p.Entries {
		h, s, l := e.RGB.HSL()
		doc.Colours = append(doc.Colours, DocumentColour{
			ID:            i + 1,
			Name:          colourName(i),
			CSSName:       NearestName(e.RGB),
			Hex:           e.Hex,
			RGB:           e.RGB,
			HSL:           HSL{H: h, S: round3(s), L: round3(l)},
			Percentage:    e.Percentage,
			Accessibility: e.Accessibility,
		})
	}

	if meta.Harmonies != nil {
		for _, set := range meta.Harmonies.Sets {
			hexes := make([]string, len(set.Colours))
			for i, c := range set.Colours {
				hexes[i] = c.Hex()
			}
			doc.Harmonies = append(doc.Harmonies, DocumentHarmony{
				Base:    set.Base.Hex,
				Kind:    string(set.Kind),
				Colours: hexes,
			})
		}
	}
	return doc
}

func formatJSON(p colour.Palette, meta Meta) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(p, meta), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}
	return append(data, '\n'), nil
}

// NearestName returns the CSS colour keyword closest to c.
// Ties resolve to the alphabetically first name.
func NearestName(c colour.RGB) string {
	best := ""
	bestDist := math.MaxFloat64
	for _, name := range colornames.Names {
		d := colour.Distance(c, fromRGBA(colornames.Map[name]))
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func fromRGBA(c color.RGBA) colour.RGB {
	return colour.RGB{R: c.R, G: c.G, B: c.B}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
