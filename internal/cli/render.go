package cli

import (
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
	avatario "github.com/matzehuels/avatarkit/pkg/io"
	"github.com/matzehuels/avatarkit/pkg/pipeline"
)

// renderOpts holds the flags shared by commands that render.
type renderOpts struct {
	output        string   // output file, or base path for several formats
	formats       string   // comma-separated output formats
	width         int      // canvas width in logical pixels
	height        int      // canvas height in logical pixels
	scale         float64  // device pixel ratio for raster output
	seed          uint64   // 0 draws a fresh seed
	clothingColor string   // pins the clothing color
	sets          []string // slot=value overrides
	noCache       bool
	refresh       bool
}

// addFlags registers the render flags on cmd.
func (o *renderOpts) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "output file (base path when rendering several formats, - for stdout)")
	f.StringVarP(&o.formats, "format", "f", "", "output formats: png, svg, pdf, json (comma-separated)")
	f.IntVar(&o.width, "width", 0, "canvas width")
	f.IntVar(&o.height, "height", 0, "canvas height")
	f.Float64Var(&o.scale, "scale", 0, "pixel ratio for png and pdf")
	f.Uint64Var(&o.seed, "seed", 0, "random seed for clothing color and stubble (0 = random)")
	f.StringVar(&o.clothingColor, "clothing-color", "", "clothing color as #rrggbb (default: sampled)")
	f.StringArrayVar(&o.sets, "set", nil, "override a slot, e.g. --set hair_style=afro (repeatable)")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&o.refresh, "refresh", false, "re-render even if cached")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [config-file]",
		Short: "Render an avatar to PNG, SVG, PDF or JSON",
		Long: `Render an avatar described by a JSON, TOML or YAML config file.

Slots missing from the file keep their default variant. Without a file the
default avatar is rendered. --set overrides individual slots either way.`,
		Example: `  avatarkit render me.toml -f png,svg
  avatarkit render --set hair_style=afro --set hair_color=#ff69b4 -o afro.png
  avatarkit render me.yaml -f json -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			cfg := avatar.Default()
			if len(args) == 1 {
				input = args[0]
				var err error
				if cfg, err = avatario.ImportConfig(input); err != nil {
					return err
				}
			}
			return c.runRender(cmd, cfg, input, opts)
		},
	}

	opts.addFlags(cmd)
	return cmd
}

// runRender renders cfg with the flag overrides and writes every artifact.
func (c *CLI) runRender(cmd *cobra.Command, cfg avatar.Config, input string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := applySets(cfg, opts.sets)
	if err != nil {
		return err
	}
	popts, err := c.pipelineOptions(cmd, cfg, opts)
	if err != nil {
		return err
	}
	paths, err := outputPaths(opts.output, input, popts.Formats)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	toStdout := slices.Contains(slices.Collect(maps.Values(paths)), "-")
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinner(ctx, "Rendering...")
		spinner.Start()
	}
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Rendered " + strings.Join(popts.Formats, ", "))

	for _, format := range popts.Formats {
		if err := writeArtifact(cmd.OutOrStdout(), paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	if toStdout {
		return nil
	}

	printSuccess("Rendered avatar %s", styleHighlight.Render(result.Fingerprint[:12]))
	for _, format := range popts.Formats {
		printFileSize(paths[format], len(result.Artifacts[format]))
	}
	printStats(len(popts.Formats), result.Stats.Bytes, result.Seed, result.CacheHit)
	return nil
}

// pipelineOptions merges flags over the settings file.
func (c *CLI) pipelineOptions(cmd *cobra.Command, cfg avatar.Config, opts renderOpts) (pipeline.Options, error) {
	rs := c.settings.Render
	popts := pipeline.Options{
		Config:        cfg,
		Width:         rs.Width,
		Height:        rs.Height,
		Scale:         rs.Scale,
		Formats:       rs.Formats,
		Seed:          rs.Seed,
		ClothingColor: rs.ClothingColor,
		Refresh:       opts.refresh,
		Logger:        loggerFromContext(cmd.Context()),
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		popts.Width = opts.width
	}
	if flags.Changed("height") {
		popts.Height = opts.height
	}
	if flags.Changed("scale") {
		popts.Scale = opts.scale
	}
	if flags.Changed("seed") {
		popts.Seed = opts.seed
	}
	if flags.Changed("clothing-color") {
		popts.ClothingColor = opts.clothingColor
	}
	if opts.formats != "" {
		formats, err := pipeline.ParseFormats(opts.formats)
		if err != nil {
			return popts, err
		}
		popts.Formats = formats
	}

	return popts, popts.ValidateAndSetDefaults()
}

// applySets applies "slot=value" overrides in order.
func applySets(cfg avatar.Config, sets []string) (avatar.Config, error) {
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return cfg, errors.New(errors.ErrCodeInvalidInput, "--set %q: want slot=value", kv)
		}
		s, err := avatar.ParseSlot(strings.TrimSpace(key))
		if err != nil {
			return cfg, err
		}
		if cfg, err = cfg.With(s, strings.TrimSpace(value)); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// outputPaths maps each format to its destination. A single format writes to
// output verbatim; several formats share a base path named after output, the
// input file, or "avatar", with the format as extension.
func outputPaths(output, input string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths, nil
	}
	if output == "-" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(formats))
	}

	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths, nil
}

// basePath strips a known extension from output, or derives a name from the
// input file.
func basePath(output, input string) string {
	if output != "" {
		ext := strings.TrimPrefix(filepath.Ext(output), ".")
		if pipeline.ValidFormats[strings.ToLower(ext)] {
			return strings.TrimSuffix(output, filepath.Ext(output))
		}
		return output
	}
	if input != "" {
		return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	return "avatar"
}

// writeArtifact writes data to path, or to stdout for "-".
func writeArtifact(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
