package colour

import (
	"fmt"
	"strings"
)

// ParseShareList splits a comma-separated list of hex codes.
func ParseShareList(list string) []string {
	var hexes []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			hexes = append(hexes, part)
		}
	}
	return hexes
}

// ShareList joins the palette hex codes with commas.
func ShareList(p Palette) string {
	return strings.Join(p.ToHex(), ",")
}

// SharedPalette rebuilds a palette from shared hex codes. Every colour gets
// an equal share rounded to one decimal.
func SharedPalette(hexes []string, accessibility bool) (Palette, error) {
	if len(hexes) == 0 {
		return Palette{}, fmt.Errorf("%w: no colours to share", ErrInvalidInput)
	}

	share := roundTenth(100 / float64(len(hexes)))
	entries := make([]PaletteEntry, 0, len(hexes))
	for _, hex := range hexes {
		c, err := ParseHex(hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		entry := NewPaletteEntry(c, share)
		if accessibility {
			entry.Accessibility = Profile(c)
		}
		entries = append(entries, entry)
	}
	return Palette{Entries: entries}, nil
}
