package colour

import (
	"encoding/json"
	"fmt"
)

// PaletteEntry is one colour of a finished palette.
type PaletteEntry struct {
	RGB           RGB                  `json:"rgb"`
	Hex           string               `json:"hex"`
	Percentage    float64              `json:"percentage"`
	Accessibility AccessibilityProfile `json:"accessibility"`
}

// NewPaletteEntry builds an entry for c with the default accessibility profile.
func NewPaletteEntry(c RGB, percentage float64) PaletteEntry {
	return PaletteEntry{
		RGB:           c,
		Hex:           c.Hex(),
		Percentage:    percentage,
		Accessibility: DefaultProfile(),
	}
}

// Palette is a ranked, percentage-weighted list of colours.
type Palette struct {
	Entries []PaletteEntry `json:"colors"`
	// Measured is true when percentages come from pixel populations.
	Measured bool `json:"measured"`
}

// Len returns the number of colours in the palette.
func (p Palette) Len() int {
	return len(p.Entries)
}

// IsEmpty reports the degenerate result where filtering removed every colour.
func (p Palette) IsEmpty() bool {
	return len(p.Entries) == 0
}

// ToHex returns the hex codes of the palette in rank order.
func (p Palette) ToHex() []string {
	hexColours := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		hexColours[i] = e.Hex
	}
	return hexColours
}

// ToRGBSlice returns the colours of the palette in rank order.
func (p Palette) ToRGBSlice() []RGB {
	rgbColours := make([]RGB, len(p.Entries))
	for i, e := range p.Entries {
		rgbColours[i] = e.RGB
	}
	return rgbColours
}

// TotalPercentage sums the entry percentages.
func (p Palette) TotalPercentage() float64 {
	total := 0.0
	for _, e := range p.Entries {
		total += e.Percentage
	}
	return total
}

// ToJSON converts the palette to indented JSON.
func (p Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p Palette) String() string {
	if len(p.Entries) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colors:\n", len(p.Entries))
	for i, e := range p.Entries {
		result += fmt.Sprintf("  %2d: %s (%s) %5.1f%%\n", i+1, e.Hex, e.RGB.String(), e.Percentage)
	}
	return result
}

// Get returns the entry at the specified index.
func (p Palette) Get(index int) (PaletteEntry, error) {
	if index < 0 || index >= len(p.Entries) {
		return PaletteEntry{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Entries))
	}
	return p.Entries[index], nil
}

// All returns an iterator over all entries in rank order.
func (p Palette) All() func(func(int, PaletteEntry) bool) {
	return func(yield func(int, PaletteEntry) bool) {
		for i, e := range p.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}
