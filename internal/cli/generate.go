package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourfactory/internal/colour"
	"github.com/jmylchreest/colourfactory/internal/encoder"
	"github.com/jmylchreest/colourfactory/internal/generator"
	"github.com/jmylchreest/colourfactory/internal/prompt"
	"github.com/jmylchreest/colourfactory/internal/reserved"
	"github.com/jmylchreest/colourfactory/internal/security"
)

type generateOptions struct {
	*rootOptions

	reservedPath string
	images       []string
	request      generator.Request
	sort         bool
	interactive  bool
	autoRelax    bool
	maxCount     int

	outputDir   string
	textName    string
	imageName   string
	jsonPath    string
	swatchPath  string
	swatchScale int
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	o := &generateOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate unreserved colours",
		Long: `Generate colours that do not appear in the reserved list.

Colours are produced by stepping the red, then green, then blue channel
through the allowed range like an odometer. A colour is kept only if it is not
reserved and not already generated. The step grows when the next colour would
be too close in brightness to the last kept one.

When --count is not given and input is a terminal, the request is asked for
interactively. If the request cannot be satisfied, interactive runs ask again;
otherwise --auto-relax halves the minimum contrast until it succeeds.

Outputs (in --output-dir):
  unreserved.txt  one "(R, G, B) hex" line per colour
  unreserved.bmp  square 24-bit bitmap, one pixel per colour`,
		Example: `  # Interactive
  colourfactory generate

  # 500 colours with at least 20 contrast between neighbours
  colourfactory generate -r map/definition.csv -n 500 -c 20

  # Dark colours only, sorted by brightness, with a JSON export and swatch
  colourfactory generate -n 200 --clamp 0,0,0,128,128,128 --sort \
    --json colours.json --swatch colours.png`,
		Args: cobra.NoArgs,
		RunE: o.run,
	}

	cmd.Flags().StringVarP(&o.reservedPath, "reserved", "r", "", "reserved colour list, optionally .gz/.xz/.bz2/.zip (default from config: definition.csv)")
	cmd.Flags().StringArrayVar(&o.images, "reserved-image", nil, "also reserve every colour in this BMP/PNG map image (repeatable)")
	cmd.Flags().IntVarP(&o.request.Count, "count", "n", 0, "number of colours to generate")
	cmd.Flags().IntVarP(&o.request.MinContrast, "min-contrast", "c", 1, "minimum luminance contrast between neighbouring colours (1-255)")
	cmd.Flags().Var(newClampValue(&o.request.Clamp), "clamp", "channel limits")
	cmd.Flags().BoolVar(&o.sort, "sort", false, "sort colours by brightness")
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "ask for the request interactively")
	cmd.Flags().BoolVar(&o.autoRelax, "auto-relax", false, "halve the minimum contrast and retry when generation fails")
	cmd.Flags().IntVar(&o.maxCount, "max-count", 0, "largest allowed --count (default from config: 50000)")

	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "o", "", "directory for output files (default from config: .)")
	cmd.Flags().StringVar(&o.textName, "text-name", "unreserved.txt", "text list file name")
	cmd.Flags().StringVar(&o.imageName, "image-name", "unreserved.bmp", "BMP image file name")
	cmd.Flags().StringVar(&o.jsonPath, "json", "", "also write a JSON export to this path")
	cmd.Flags().StringVar(&o.swatchPath, "swatch", "", "also write an enlarged PNG swatch to this path")
	cmd.Flags().IntVar(&o.swatchScale, "swatch-scale", 0, "pixels per colour in the swatch (default from config: 8)")

	return cmd
}

// run executes the generate command.
func (o *generateOptions) run(cmd *cobra.Command, _ []string) error {
	o.applyDefaults()

	if err := security.ValidateOutputName(o.textName); err != nil {
		return err
	}
	if err := security.ValidateOutputName(o.imageName); err != nil {
		return err
	}

	interactive := o.interactive || (!cmd.Flags().Changed("count") && stdinIsTerminal(cmd))
	if !interactive {
		if !cmd.Flags().Changed("count") {
			return fmt.Errorf("--count is required when not running interactively")
		}
		if err := o.request.Validate(o.maxCount); err != nil {
			return fmt.Errorf("invalid request: %w", err)
		}
	}

	set, err := o.loadReserved(cmd, o.reservedPath, o.images)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := o.logger.With("run_id", runID)

	palette, err := o.generateWithRetry(cmd, set, interactive, logger)
	if err != nil {
		return err
	}

	if o.sort {
		logger.Debug("sorting colours by contrast")
		colour.SortByContrast(palette)
	}

	if err := o.writeOutputs(cmd, palette, set, runID); err != nil {
		return err
	}

	o.printSummary(cmd, palette)
	return nil
}

// applyDefaults fills unset flags from configuration.
func (o *generateOptions) applyDefaults() {
	if o.reservedPath == "" {
		o.reservedPath = o.cfg.ReservedPath
	}
	if o.outputDir == "" {
		o.outputDir = o.cfg.OutputDir
	}
	if o.maxCount <= 0 {
		o.maxCount = o.cfg.MaxCount
	}
	if o.swatchScale <= 0 {
		o.swatchScale = o.cfg.SwatchScale
	}
}

// generateWithRetry runs one generation per request and, on exhaustion, asks
// for a new request (interactive) or relaxes the contrast (--auto-relax).
func (o *generateOptions) generateWithRetry(cmd *cobra.Command, set *reserved.Set, interactive bool, logger hclog.Logger) (*colour.Palette, error) {
	var collector *prompt.Collector
	if interactive {
		collector = prompt.NewCollector(cmd.InOrStdin(), cmd.OutOrStdout(), o.maxCount)
	}

	for {
		if interactive {
			answers, err := collector.Collect()
			if err != nil {
				return nil, fmt.Errorf("failed to read request: %w", err)
			}
			o.request = answers.Request
			o.sort = answers.Sort
		}

		o.printf(cmd, "Generating %d unreserved colours...\n", o.request.Count)
		palette, err := generator.Generate(set, o.request, generator.Options{
			Logger:   logger,
			Progress: progressLogger(logger),
		})
		if err == nil {
			return palette, nil
		}
		if !errors.Is(err, generator.ErrExhausted) {
			return nil, err
		}

		logger.Info("generation exhausted", "error", err)

		switch {
		case interactive:
			o.warnf(cmd, "Could not generate the desired number of colours.\nTry reducing minimum contrast or desired colour count.\n\n")
		case o.autoRelax && o.request.MinContrast > 1:
			relaxed := max(o.request.MinContrast/2, 1)
			o.warnf(cmd, "Could not generate %d colours with minimum contrast %d; retrying with %d\n",
				o.request.Count, o.request.MinContrast, relaxed)
			o.request.MinContrast = relaxed
		default:
			return nil, fmt.Errorf("%w (try a lower --min-contrast or --count, or pass --auto-relax)", err)
		}
	}
}

// progressLogger logs generation progress every ten percent.
func progressLogger(logger hclog.Logger) func(generated, requested int) {
	last := -1
	return func(generated, requested int) {
		percent := generated * 100 / requested
		if percent/10 != last {
			last = percent / 10
			logger.Debug("generating", "percent", percent, "generated", generated)
		}
	}
}

// writeOutputs writes the text list, BMP image and any optional exports.
func (o *generateOptions) writeOutputs(cmd *cobra.Command, palette *colour.Palette, set *reserved.Set, runID string) error {
	textPath := filepath.Join(o.outputDir, o.textName)
	if err := encoder.WriteFile(textPath, func(w io.Writer) error {
		return encoder.WriteText(w, palette)
	}); err != nil {
		return err
	}
	o.printf(cmd, "✓ Wrote %s\n", textPath)

	imagePath := filepath.Join(o.outputDir, o.imageName)
	if err := encoder.WriteFile(imagePath, func(w io.Writer) error {
		return encoder.WriteBMP(w, palette)
	}); err != nil {
		return err
	}
	o.printf(cmd, "✓ Wrote %s (%dx%d)\n", imagePath, encoder.Side(palette.Len()), encoder.Side(palette.Len()))

	if o.jsonPath != "" {
		doc := encoder.NewDocument(palette, encoder.Metadata{
			RunID:       runID,
			GeneratedAt: time.Now().UTC(),
			Count:       o.request.Count,
			MinContrast: o.request.MinContrast,
			Clamp:       o.request.Clamp.String(),
			Sorted:      o.sort,
			Reserved:    set.Len(),
		})
		if err := encoder.WriteFile(o.jsonPath, func(w io.Writer) error {
			return encoder.WriteJSON(w, doc)
		}); err != nil {
			return err
		}
		o.printf(cmd, "✓ Wrote %s\n", o.jsonPath)
	}

	if o.swatchPath != "" {
		if err := encoder.WriteFile(o.swatchPath, func(w io.Writer) error {
			return encoder.WriteSwatch(w, palette, o.swatchScale)
		}); err != nil {
			return err
		}
		o.printf(cmd, "✓ Wrote %s\n", o.swatchPath)
	}

	return nil
}

func (o *generateOptions) printSummary(cmd *cobra.Command, palette *colour.Palette) {
	s := colour.Summarise(palette)

	table := NewTable("Colours", "Min", "Max", "Mean", "Mean step").
		AlignRight(0).AlignRight(1).AlignRight(2).AlignRight(3).AlignRight(4)
	table.AddRow(
		strconv.Itoa(s.Count),
		strconv.FormatFloat(s.MinContrast, 'f', 0, 64),
		strconv.FormatFloat(s.MaxContrast, 'f', 0, 64),
		strconv.FormatFloat(s.MeanContrast, 'f', 1, 64),
		strconv.FormatFloat(s.MeanStep, 'f', 1, 64),
	)
	o.printf(cmd, "\nContrast summary:\n%s", table.Render())
}

// stdinIsTerminal reports whether the command reads from an interactive terminal.
func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && prompt.IsInteractive(f)
}
