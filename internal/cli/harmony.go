package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/export"
)

type harmonyOptions struct {
	historyID string
	format    string
	preview   bool
}

func newHarmonyCmd(global *globalOptions) *cobra.Command {
	opts := &harmonyOptions{}

	cmd := &cobra.Command{
		Use:   "harmony [hex...]",
		Short: "Generate colour harmonies",
		Long: `Generate complementary, analogous, triad, tetradic and monochromatic
harmonies for up to three base colours, given as hex codes or taken from a
saved palette.

Examples:
  swatch harmony "#3366CC"
  swatch harmony ff0000 00ff00
  swatch harmony --history 1a2b3c4d --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarmony(cmd, global, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.historyID, "history", "", "use the palette saved under this history id")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&opts.preview, "preview", stdoutIsTerminal(), "show colour previews in terminal")

	return cmd
}

func runHarmony(cmd *cobra.Command, global *globalOptions, opts *harmonyOptions, args []string) error {
	if (opts.historyID == "") == (len(args) == 0) {
		return fmt.Errorf("give either hex colours or --history <id>")
	}
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("invalid format: %s (must be text or json)", opts.format)
	}

	var (
		palette colour.Palette
		source  string
		err     error
	)
	if opts.historyID != "" {
		store, err := global.openHistory(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.Get(cmd.Context(), opts.historyID)
		if err != nil {
			return err
		}
		palette, source = rec.Palette, rec.Source
	} else {
		var hexes []string
		for _, arg := range args {
			hexes = append(hexes, colour.ParseShareList(arg)...)
		}
		if palette, err = colour.SharedPalette(hexes, false); err != nil {
			return err
		}
	}

	engine := colour.NewEngine(global.logger("engine"))
	result := engine.GenerateHarmonies(palette)
	global.progress(cmd, "Generated %d harmony sets (%d failed)", len(result.Sets), len(result.Failures))

	var data []byte
	if opts.format == "json" {
		data, err = export.Render(export.FormatJSON, palette, export.Meta{
			Source:    source,
			Generated: time.Now().UTC(),
			Harmonies: &result,
		})
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
	} else {
		data = []byte(formatHarmonies(result, opts.preview))
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// formatHarmonies renders harmony sets as a table, one row per (base, kind).
func formatHarmonies(result colour.HarmonyResult, preview bool) string {
	table := export.NewTable([]string{"Base", "Harmony", "Colours"})
	for _, set := range result.Sets {
		table.AddRow([]string{
			swatchLabel(set.Base.RGB, preview),
			string(set.Kind),
			swatchList(set.Colours, preview),
		})
	}

	var sb strings.Builder
	sb.WriteString(table.Render())
	for _, f := range result.Failures {
		fmt.Fprintf(&sb, "failed: %v\n", f)
	}
	return sb.String()
}

func swatchLabel(c colour.RGB, preview bool) string {
	if preview {
		return colour.ColourPreview(c, 2) + " " + c.Hex()
	}
	return c.Hex()
}

func swatchList(colours []colour.RGB, preview bool) string {
	labels := make([]string, len(colours))
	for i, c := range colours {
		labels[i] = swatchLabel(c, preview)
	}
	return strings.Join(labels, "  ")
}

// formatPersonality renders a colour personality as a short text block.
func formatPersonality(p colour.Personality) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Personality: %s (%s)\n", p.Name, p.Family)
	fmt.Fprintf(&sb, "%s\n", p.Description)
	if len(p.Traits) > 0 {
		fmt.Fprintf(&sb, "Traits: %s\n", strings.Join(p.Traits, ", "))
	}
	if p.Recommendations != "" {
		fmt.Fprintf(&sb, "Best for: %s\n", p.Recommendations)
	}
	return sb.String()
}
