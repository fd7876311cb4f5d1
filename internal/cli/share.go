package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/export"
)

type shareOptions struct {
	url           string
	format        string
	accessibility bool
	preview       bool
	output        string
}

func newShareCmd(global *globalOptions) *cobra.Command {
	opts := &shareOptions{}

	cmd := &cobra.Command{
		Use:   "share <hex,hex,...|share-url>",
		Short: "Rebuild a shared palette",
		Long: `Rebuild a palette from a comma-separated list of hex codes or from a
share URL carrying ?colors=. Every colour gets an equal share.

Examples:
  swatch share "#FF0000,#00FF00,#0000FF"
  swatch share "https://example.com/?colors=%23FF0000%2C%2300FF00" -f css
  swatch share ff0000,00ff00 --url https://example.com/palette`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShare(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "print a share URL with this base after the palette")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.FormatTable), "output format (hex, rgb, table, json, css, scss, ase)")
	cmd.Flags().BoolVar(&opts.accessibility, "accessibility", true, "flag colours that survive colour-vision deficiencies")
	cmd.Flags().BoolVar(&opts.preview, "preview", stdoutIsTerminal(), "show colour previews in terminal")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runShare(cmd *cobra.Command, global *globalOptions, opts *shareOptions, input string) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	hexes := colour.ParseShareList(input)
	if strings.Contains(input, "://") {
		if hexes, err = export.ParseShareURL(input); err != nil {
			return err
		}
	}

	palette, err := colour.SharedPalette(hexes, opts.accessibility)
	if err != nil {
		return err
	}
	global.progress(cmd, "Decoded %d shared colours", palette.Len())

	data, err := export.Render(format, palette, export.Meta{
		Source:    "shared",
		Generated: time.Now().UTC(),
		Preview:   opts.preview && opts.output == "",
	})
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if err := writeOutput(cmd, global, opts.output, data); err != nil {
		return err
	}

	if opts.url != "" {
		shareURL, err := export.ShareURL(opts.url, palette)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), shareURL)
	}
	return nil
}
