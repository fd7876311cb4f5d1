// Package export renders palettes into text formats for terminals, stylesheets and tools.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Format names an output format.
type Format string

const (
	FormatHex   Format = "hex"
	FormatRGB   Format = "rgb"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSS   Format = "css"
	FormatSCSS  Format = "scss"
	FormatASE   Format = "ase"
)

// DefaultName titles exported palettes when Meta.Name is empty.
const DefaultName = "swatch palette"

// previewWidth is the width of the ANSI preview block in hex, rgb and table output.
const previewWidth = 4

// ValidFormats returns all supported formats in display order.
func ValidFormats() []Format {
	return []Format{FormatHex, FormatRGB, FormatTable, FormatJSON, FormatCSS, FormatSCSS, FormatASE}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidFormats() {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format: %s (must be one of: %s)", s, formatList())
}

func formatList() string {
	names := make([]string, 0, len(ValidFormats()))
	for _, f := range ValidFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// Meta carries the context printed alongside a palette.
type Meta struct {
	Name      string
	Source    string
	Generated time.Time

	// Preview adds ANSI colour blocks to hex, rgb and table output.
	Preview bool

	// Harmonies and Personality are included in JSON output when set.
	Harmonies   *colour.HarmonyResult
	Personality *colour.Personality
}

func (m Meta) name() string {
	if m.Name == "" {
		return DefaultName
	}
	return m.Name
}

// Render formats the palette.
func Render(format Format, p colour.Palette, meta Meta) ([]byte, error) {
	switch format {
	case FormatHex:
		return []byte(formatHex(p, meta.Preview)), nil
	case FormatRGB:
		return []byte(formatRGB(p, meta.Preview)), nil
	case FormatTable:
		return []byte(formatTable(p, meta.Preview)), nil
	case FormatJSON:
		return formatJSON(p, meta)
	case FormatCSS:
		return renderTemplate("css.tmpl", p, meta)
	case FormatSCSS:
		return renderTemplate("scss.tmpl", p, meta)
	case FormatASE:
		return []byte(formatASE(p, meta)), nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be one of: %s)", format, formatList())
	}
}

// colourName is the stable per-position identifier used in stylesheets.
func colourName(index int) string {
	return fmt.Sprintf("color-%d", index+1)
}

func formatHex(p colour.Palette, preview bool) string {
	var sb strings.Builder
	for _, e := range p.Entries {
		if preview {
			sb.WriteString(colour.ColourPreview(e.RGB, previewWidth))
			sb.WriteString(" ")
		}
		sb.WriteString(e.Hex)
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatRGB(p colour.Palette, preview bool) string {
	var sb strings.Builder
	for _, e := range p.Entries {
		if preview {
			sb.WriteString(colour.ColourPreview(e.RGB, previewWidth))
			sb.WriteString(" ")
		}
		sb.WriteString(e.RGB.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatTable(p colour.Palette, preview bool) string {
	headers := []string{"#", "Hex", "RGB", "HSL", "Share", "Name", "Text", "Colour-blind safe"}
	if preview {
		headers = append([]string{"Colour"}, headers...)
	}

	table := NewTable(headers)
	table.SetColumnMaxWidth(len(headers)-1, 24)
	for i, e := range p.Entries {
		h, s, l := e.RGB.HSL()
		row := []string{
			fmt.Sprintf("%d", i+1),
			e.Hex,
			fmt.Sprintf("%d, %d, %d", e.RGB.R, e.RGB.G, e.RGB.B),
			fmt.Sprintf("%d°, %.0f%%, %.0f%%", h, s*100, l*100),
			fmt.Sprintf("%.1f%%", e.Percentage),
			NearestName(e.RGB),
			colour.ContrastColour(e.RGB),
			accessibilitySummary(e.Accessibility),
		}
		if preview {
			row = append([]string{colour.ColourPreview(e.RGB, previewWidth)}, row...)
		}
		table.AddRow(row)
	}
	return table.Render()
}

// accessibilitySummary lists the dichromacies under which the colour stays recognisable.
func accessibilitySummary(a colour.AccessibilityProfile) string {
	var safe []string
	if a.Protanopia {
		safe = append(safe, "protanopia")
	}
	if a.Deuteranopia {
		safe = append(safe, "deuteranopia")
	}
	if a.Tritanopia {
		safe = append(safe, "tritanopia")
	}
	if len(safe) == 0 {
		return "-"
	}
	return strings.Join(safe, " ")
}

func formatASE(p colour.Palette, meta Meta) string {
	blocks := make([]string, 0, len(p.Entries))
	for i, e := range p.Entries {
		blocks = append(blocks, fmt.Sprintf("Color %d\nName: %s\nHex: %s\nRGB: %d, %d, %d\nPercentage: %s%%\n",
			i+1, colourName(i), e.Hex, e.RGB.R, e.RGB.G, e.RGB.B, percent(e.Percentage)))
	}
	return fmt.Sprintf("Adobe Swatch Exchange (text)\n%s\n\n", meta.name()) + strings.Join(blocks, "\n")
}
