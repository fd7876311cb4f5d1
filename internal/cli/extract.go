package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/describe"
	"github.com/jmylchreest/swatch/internal/export"
	"github.com/jmylchreest/swatch/internal/history"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/quantize"
	"github.com/jmylchreest/swatch/internal/seed"
)

// emptyPaletteMessage is printed when filtering removes every colour.
const emptyPaletteMessage = "no colours survived filtering"

type extractOptions struct {
	colours       int
	mode          string
	smartFilter   bool
	portrait      bool
	accessibility bool
	advanced      bool
	algorithm     string
	seedMode      string
	seedValue     int64
	format        string
	output        string
	preview       bool
	harmonies     bool
	describe      string
	noHistory     bool
	workers       int
	background    float64
	cacheDir      string
}

func newExtractCmd(global *globalOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a ranked colour palette from an image file or HTTP(S) URL.

Percentages are measured from pixel populations when --smart-filter or
--portrait is set, and synthesised otherwise. Smart filtering drops the
dominant background colour; portrait mode also ignores skin tones.

Supported image formats: JPEG, PNG, GIF, WebP, AVIF (up to 10 MiB)

Examples:
  # Extract 8 colours (default) as a table
  swatch extract photo.jpg

  # Vibrant colours with background removal and accessibility flags
  swatch extract --mode vibrant --smart-filter --accessibility photo.jpg

  # Export SCSS variables to a file
  swatch extract -f scss -o palette.scss photo.png

  # Reproducible synthetic percentages with a fixed seed
  swatch extract --seed-mode manual --seed-value 42 photo.png

  # JSON with harmonies and a colour personality
  swatch extract -f json --harmonies --describe builtin https://example.com/a.webp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), cmd, global, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.colours, "colours", "c", colour.DefaultColourCount,
		fmt.Sprintf("number of colours to extract (%d-%d)", colour.MinColourCount, colour.MaxColourCount))
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(colour.ModeBalanced), "extraction mode (balanced, vibrant, muted)")
	cmd.Flags().BoolVar(&opts.smartFilter, "smart-filter", false, "measure pixel populations and drop the background colour")
	cmd.Flags().BoolVar(&opts.portrait, "portrait", false, "measure pixel populations ignoring skin tones")
	cmd.Flags().BoolVar(&opts.accessibility, "accessibility", false, "flag colours that survive protanopia, deuteranopia and tritanopia")
	cmd.Flags().BoolVar(&opts.advanced, "advanced", false, "ask the quantizer for twice as many candidates")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", string(quantize.AlgorithmMedianCut),
		fmt.Sprintf("quantization algorithm (%s)", joinAlgorithms()))
	cmd.Flags().StringVar(&opts.seedMode, "seed-mode", string(seed.ModeContent), "seed mode for reproducible output (content, filepath, manual, random)")
	cmd.Flags().Int64Var(&opts.seedValue, "seed-value", 0, "seed value for --seed-mode manual")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.FormatTable), "output format (hex, rgb, table, json, css, scss, ase)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.preview, "preview", stdoutIsTerminal(), "show colour previews in terminal")
	cmd.Flags().BoolVar(&opts.harmonies, "harmonies", false, "generate harmonies for the leading colours")
	cmd.Flags().StringVar(&opts.describe, "describe", "", "describe the palette personality (builtin, gemini)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not save the palette to history")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "goroutines for pixel classification (default: CPU count, capped at 8)")
	cmd.Flags().Float64Var(&opts.background, "background-threshold", colour.DefaultBackgroundThreshold, "share of sampled pixels that marks the top colour as background")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "download cache for URL images (default: user cache dir)")

	return cmd
}

func joinAlgorithms() string {
	names := make([]string, 0, len(quantize.ValidAlgorithms()))
	for _, alg := range quantize.ValidAlgorithms() {
		names = append(names, string(alg))
	}
	return strings.Join(names, ", ")
}

// extractResult is what one extraction run produced.
type extractResult struct {
	palette     colour.Palette
	harmonies   *colour.HarmonyResult
	personality *colour.Personality
	seed        int64
}

func runExtract(ctx context.Context, cmd *cobra.Command, global *globalOptions, opts *extractOptions, source string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	mode, err := colour.ParseMode(opts.mode)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	algorithm := quantize.Algorithm(strings.ToLower(opts.algorithm))
	if !quantize.IsValidAlgorithm(algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid: %s)", opts.algorithm, joinAlgorithms())
	}
	seedMode, err := seed.ParseMode(opts.seedMode)
	if err != nil {
		return err
	}

	engineOpts := colour.DefaultOptions()
	engineOpts.Mode = mode
	engineOpts.ColourCount = opts.colours
	engineOpts.SmartFilter = opts.smartFilter
	engineOpts.PortraitMode = opts.portrait
	engineOpts.Accessibility = opts.accessibility
	engineOpts.BackgroundThreshold = opts.background
	engineOpts.Workers = opts.workers
	if err := engineOpts.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	global.progress(cmd, "Loading image: %s", source)
	loader := image.NewSmartLoader(opts.cacheDir, global.logger("image"))
	img, err := loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	global.progress(cmd, "Image loaded: %dx%d", bounds.Dx(), bounds.Dy())

	img = image.FitWithin(img, image.MaxWidth, image.MaxHeight)

	seedOpts := seed.Options{Mode: seedMode}
	if cmd.Flags().Changed("seed-value") {
		seedOpts.Value = &opts.seedValue
	}
	runSeed, err := seed.Resolve(seed.Source{Image: img, Path: source}, seedOpts)
	if err != nil {
		return fmt.Errorf("failed to resolve seed: %w", err)
	}
	engineOpts.Rand = seed.NewRand(runSeed)
	global.logger("seed").Debug("resolved seed", "mode", seedMode, "seed", runSeed)

	hint := opts.colours
	if opts.advanced {
		hint *= 2
	}
	qOpts := quantize.DefaultOptions()
	qOpts.Seed = &runSeed
	qOpts.Workers = opts.workers
	quantizer, err := quantize.New(algorithm, qOpts)
	if err != nil {
		return fmt.Errorf("failed to create quantizer: %w", err)
	}

	global.progress(cmd, "Extracting %d candidate colours using %s algorithm...", hint, algorithm)
	candidates, err := quantizer.Quantize(img, hint)
	if err != nil {
		if errors.Is(err, quantize.ErrNoPixels) {
			fmt.Fprintln(cmd.ErrOrStderr(), emptyPaletteMessage)
			return nil
		}
		return fmt.Errorf("failed to extract colours: %w", err)
	}

	var pixels *colour.PixelBuffer
	if opts.smartFilter || opts.portrait {
		buf := image.ToPixelBuffer(img)
		pixels = &buf
	}

	engine := colour.NewEngine(global.logger("engine"))
	result := extractResult{seed: runSeed}
	result.palette, err = engine.ExtractPalette(candidates.Candidates(), engineOpts, pixels)
	if err != nil {
		return fmt.Errorf("failed to build palette: %w", err)
	}
	if result.palette.IsEmpty() {
		fmt.Fprintln(cmd.ErrOrStderr(), emptyPaletteMessage)
		return nil
	}
	global.progress(cmd, "Successfully extracted %d colours", result.palette.Len())

	if opts.harmonies {
		harmonies := engine.GenerateHarmonies(result.palette)
		result.harmonies = &harmonies
	}

	if opts.describe != "" {
		personality, err := describePalette(ctx, global, opts.describe, result.palette)
		if err != nil {
			return err
		}
		result.personality = &personality
	}

	meta := export.Meta{
		Source:      source,
		Generated:   time.Now().UTC(),
		Preview:     opts.preview && opts.output == "",
		Harmonies:   result.harmonies,
		Personality: result.personality,
	}
	data, err := renderWithExtras(format, result.palette, meta)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if err := writeOutput(cmd, global, opts.output, data); err != nil {
		return err
	}

	if !opts.noHistory {
		saveHistory(ctx, cmd, global, opts, source, result)
	}
	return nil
}

// renderWithExtras renders the palette and, for text formats, appends the
// harmony and personality sections. JSON carries them inside the document.
func renderWithExtras(format export.Format, p colour.Palette, meta export.Meta) ([]byte, error) {
	data, err := export.Render(format, p, meta)
	if err != nil {
		return nil, err
	}
	if format != export.FormatHex && format != export.FormatRGB && format != export.FormatTable {
		return data, nil
	}

	var sb strings.Builder
	sb.Write(data)
	if meta.Harmonies != nil {
		sb.WriteString("\n")
		sb.WriteString(formatHarmonies(*meta.Harmonies, meta.Preview))
	}
	if meta.Personality != nil {
		sb.WriteString("\n")
		sb.WriteString(formatPersonality(*meta.Personality))
	}
	return []byte(sb.String()), nil
}

func describePalette(ctx context.Context, global *globalOptions, name string, p colour.Palette) (colour.Personality, error) {
	cfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		return colour.Personality{}, err
	}
	describer, err := describe.New(name, describe.Options{
		APIKey: cfg.GoogleAPIKey,
		Logger: global.logger("describe"),
	})
	if err != nil {
		return colour.Personality{}, err
	}
	personality, err := describer.Describe(ctx, p)
	if err != nil {
		return colour.Personality{}, fmt.Errorf("failed to describe palette: %w", err)
	}
	return personality, nil
}

// saveHistory records the run. Failures are logged and never fail the command.
func saveHistory(ctx context.Context, cmd *cobra.Command, global *globalOptions, opts *extractOptions, source string, result extractResult) {
	logger := global.logger("history")

	store, err := global.openHistory(ctx)
	if err != nil {
		logger.Warn("history disabled for this run", "error", err)
		return
	}
	defer store.Close()

	rec, err := store.Save(ctx, history.Record{
		Source: source,
		Settings: history.Settings{
			Mode:         opts.mode,
			ColourCount:  opts.colours,
			SmartFilter:  opts.smartFilter,
			PortraitMode: opts.portrait,
			Advanced:     opts.advanced,
			Algorithm:    opts.algorithm,
			SeedMode:     opts.seedMode,
			Seed:         result.seed,
		},
		Palette: result.palette,
	})
	if err != nil {
		logger.Warn("failed to save palette to history", "error", err)
		return
	}
	global.progress(cmd, "Saved to history as %s", rec.ShortID())
}
