package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/export"
	"github.com/jmylchreest/swatch/internal/history"
)

func newHistoryCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved palettes",
		Long: fmt.Sprintf(`List, show, delete and archive palettes saved by extract.

The newest %d palettes are kept. Ids may be shortened to any unique prefix.
Archives ending in .xz or .gz are compressed.`, history.MaxRecords),
	}

	cmd.AddCommand(newHistoryListCmd(global))
	cmd.AddCommand(newHistoryShowCmd(global))
	cmd.AddCommand(newHistoryDeleteCmd(global))
	cmd.AddCommand(newHistoryClearCmd(global))
	cmd.AddCommand(newHistoryExportCmd(global))
	cmd.AddCommand(newHistoryImportCmd(global))

	return cmd
}

// withStore opens the history store for the duration of fn.
func withStore(cmd *cobra.Command, global *globalOptions, fn func(*history.Store) error) error {
	store, err := global.openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newHistoryListCmd(global *globalOptions) *cobra.Command {
	var (
		limit   int
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved palettes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, global, func(store *history.Store) error {
				records, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No saved palettes.")
					return nil
				}

				table := export.NewTable([]string{"ID", "Created", "Source", "Mode", "Palette"})
				for _, rec := range records {
					table.AddRow([]string{
						rec.ShortID(),
						rec.CreatedAt.Local().Format("2006-01-02 15:04"),
						rec.Source,
						rec.Settings.Mode,
						paletteStrip(rec.Palette, preview),
					})
				}
				fmt.Fprint(cmd.OutOrStdout(), table.Render())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, fmt.Sprintf("maximum palettes to list (default: all %d)", history.MaxRecords))
	cmd.Flags().BoolVar(&preview, "preview", stdoutIsTerminal(), "show colour previews in terminal")
	return cmd
}

// paletteStrip renders a palette on one line as preview blocks or hex codes.
func paletteStrip(p colour.Palette, preview bool) string {
	if !preview {
		return strings.Join(p.ToHex(), " ")
	}
	var sb strings.Builder
	for _, e := range p.Entries {
		sb.WriteString(colour.ColourPreview(e.RGB, 2))
	}
	return sb.String()
}

func newHistoryShowCmd(global *globalOptions) *cobra.Command {
	var (
		format  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return withStore(cmd, global, func(store *history.Store) error {
				rec, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				data, err := export.Render(f, rec.Palette, export.Meta{
					Source:    rec.Source,
					Generated: rec.CreatedAt,
					Preview:   preview,
				})
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				if f == export.FormatTable {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n\n", rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04:05"), rec.Source)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatTable), "output format (hex, rgb, table, json, css, scss, ase)")
	cmd.Flags().BoolVar(&preview, "preview", stdoutIsTerminal(), "show colour previews in terminal")
	return cmd
}

func newHistoryDeleteCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, global, func(store *history.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				if !global.quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				}
				return nil
			})
		},
	}
}

func newHistoryClearCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, global, func(store *history.Store) error {
				n, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				if !global.quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d palettes\n", n)
				}
				return nil
			})
		},
	}
}

func newHistoryExportCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the history to an archive (.json, .json.gz, .json.xz)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, global, func(store *history.Store) error {
				records, err := store.List(cmd.Context(), 0)
				if err != nil {
					return err
				}
				if err := history.WriteArchive(args[0], records); err != nil {
					return err
				}
				if !global.quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %d palettes to %s\n", len(records), args[0])
				}
				return nil
			})
		},
	}
}

func newHistoryImportCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load palettes from an archive written by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := history.ReadArchive(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, global, func(store *history.Store) error {
				n, err := store.Import(cmd.Context(), records)
				if err != nil {
					return err
				}
				if !global.quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d palettes from %s\n", n, args[0])
				}
				return nil
			})
		},
	}
}
