// Package cli provides the command-line interface for swatch.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/history"
	"github.com/jmylchreest/swatch/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose   bool
	quiet     bool
	historyDB string

	// log is built once flags are parsed.
	log hclog.Logger
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Colour palette analysis and harmony generator",
		Long: `Swatch extracts a ranked colour palette from an image, estimates how much
of the image each colour covers, flags colours that stay recognisable under
common colour-vision deficiencies, and generates colour harmonies.

Palettes can be exported as CSS, SCSS, JSON or a text swatch list, shared as
a URL, and are kept in a local history.`,
		Version:       version.Version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			if err := config.ApplyToFlags(cmd.Flags()); err != nil {
				return err
			}
			opts.log = newLogger(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.historyDB, "history-db", "", "history database path (default: <user config dir>/swatch/history.db)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newHarmonyCmd(opts))
	rootCmd.AddCommand(newShareCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))

	return rootCmd
}

// newLogger creates the root logger: Debug when verbose, Error when quiet, Warn otherwise.
func newLogger(out io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: out,
		Level:  level,
	})
}

// logger returns the named sub-logger, falling back to a null logger before flags are parsed.
func (o *globalOptions) logger(name string) hclog.Logger {
	if o.log == nil {
		return hclog.NewNullLogger()
	}
	return o.log.Named(name)
}

// progress prints a verbose progress line to stderr.
func (o *globalOptions) progress(cmd *cobra.Command, format string, args ...any) {
	if o.verbose && !o.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}

// openHistory opens the configured history database.
func (o *globalOptions) openHistory(ctx context.Context) (*history.Store, error) {
	path := o.historyDB
	if path == "" {
		var err error
		if path, err = history.DefaultPath(); err != nil {
			return nil, err
		}
	}
	store, err := history.Open(ctx, path, o.logger("history"))
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// stdoutIsTerminal decides the default for --preview.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, opts *globalOptions, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	opts.progress(cmd, "Writing output to: %s", path)
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - exported palettes are not secret
		return fmt.Errorf("failed to write output file: %w", err)
	}
	opts.progress(cmd, "Successfully wrote palette to %s", path)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
