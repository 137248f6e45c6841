package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/molviz/molrender/pkg/errors"
	"github.com/molviz/molrender/pkg/pipeline"
	"github.com/molviz/molrender/pkg/render/config"
	"github.com/molviz/molrender/pkg/render/input"
)

// renderOpts holds the command-line flags for the render command. The
// boolean flags are converted to the token form the parameter layer expects.
type renderOpts struct {
	output        string // output image path (default derived from the input)
	engine        string // explicit engine binary path
	keepArtifacts bool   // keep temp structure/script/raster for debugging

	params config.Params

	// Zero-valid numeric flags land in pointer Params fields; these locals
	// hold the flag values until applyChanged checks flag presence.
	rotateX        float64
	rotateY        float64
	traceGain      float64
	surfaceQuality int

	antialias        int
	rayShadows       bool
	ambientOcclusion bool
	depthCue         bool
	twoSidedLighting bool
	fancyHelices     bool
	fancySheets      bool
	flatSheets       bool
	stickBall        bool
	showLabels       bool
}

// renderCommand creates the render command for producing raster images.
//
// Default settings follow the standard preset: 1024x1024, cartoon
// representation colored by chain on a white background, isometric camera.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		antialias:        1,
		rayShadows:       true,
		ambientOcclusion: true,
		depthCue:         true,
		twoSidedLighting: true,
		fancyHelices:     true,
		fancySheets:      true,
	}

	cmd := &cobra.Command{
		Use:   "render <reference>",
		Short: "Render a structure file to a PNG image",
		Long: `Render a molecular structure to a PNG image using the PyMOL engine.

The reference may be a local file path (PDB, mmCIF), an http(s) URL, or an
inline base64file://<filename>/<base64> payload.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyChanged(cmd.Flags())
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output image path (default: derived from the input name)")
	f.StringVar(&opts.engine, "engine", "", "path to the engine binary (default: $PYMOL_BIN, then PATH)")
	f.BoolVar(&opts.keepArtifacts, "keep-artifacts", false, "keep temporary script and raster files for debugging")

	f.StringVarP(&opts.params.Preset, "preset", "p", "", "quality preset: draft, standard (default), high, publication, publication_outlined, custom")
	f.IntVar(&opts.params.Width, "width", 0, "output width in pixels (256-4096, default 1024)")
	f.IntVar(&opts.params.Height, "height", 0, "output height in pixels (256-4096, default 1024)")

	f.StringVarP(&opts.params.RenderMode, "mode", "m", "", "representation: cartoon (default), surface, sticks, spheres, lines, ribbon, dots, mesh, ball_and_stick")
	f.StringVar(&opts.params.ColorMode, "color", "", "coloring: chain (default), element, spectrum, secondary_structure, hydrophobicity, single, custom")
	f.StringVar(&opts.params.Background, "background", "", "background: white (default), black, gray, custom")
	f.StringVar(&opts.params.BackgroundColor, "bg-color", "", "background color name when --background=custom")
	f.StringVar(&opts.params.Camera, "camera", "", "camera: iso (default), front, side, top, bottom, back, auto_orient, custom")
	f.StringVarP(&opts.params.Selection, "selection", "s", "", "atom selection expression (default: all)")

	f.StringVar(&opts.params.ChainColors, "chain-colors", "", `per-chain colors, e.g. "A:cyan,B:green"`)
	f.StringVar(&opts.params.SingleColor, "single-color", "", "color name for --color=single")
	f.StringVar(&opts.params.SpectrumPalette, "palette", "", "spectrum palette: rainbow (default), blue_white_red, blue_red, green_white_magenta")
	f.Float64Var(&opts.params.Transparency, "transparency", 0, "global transparency in [0,1]")

	f.Float64Var(&opts.rotateX, "rotate-x", 0, "camera rotation around X in degrees (custom camera)")
	f.Float64Var(&opts.rotateY, "rotate-y", 0, "camera rotation around Y in degrees (custom camera)")
	f.Float64Var(&opts.params.RotateZ, "rotate-z", 0, "camera rotation around Z in degrees (custom camera)")
	f.Float64Var(&opts.params.ZoomFactor, "zoom", 0, "zoom buffer factor (0.5-5.0, default 1.5)")

	f.IntVar(&opts.antialias, "antialias", opts.antialias, "antialias level 0-4 (custom preset)")
	f.BoolVar(&opts.rayShadows, "ray-shadows", opts.rayShadows, "enable ray-traced shadows (custom preset)")
	f.StringVar(&opts.params.TraceMode, "trace-mode", "", "trace mode: normal (default), outlined, bw_outlined, quantized")
	f.Float64Var(&opts.traceGain, "trace-gain", 0, "outline strength for outlined trace modes")
	f.StringVar(&opts.params.TraceColor, "trace-color", "", "outline color for outlined trace modes")
	f.IntVar(&opts.surfaceQuality, "surface-quality", 0, "surface tessellation quality 0-4 (custom preset)")
	f.IntVar(&opts.params.LightCount, "lights", 0, "number of lights 1-10 (custom preset)")
	f.BoolVar(&opts.ambientOcclusion, "ambient-occlusion", opts.ambientOcclusion, "enable ambient occlusion (custom preset)")
	f.BoolVar(&opts.depthCue, "depth-cue", opts.depthCue, "enable depth cueing fog (custom preset)")
	f.BoolVar(&opts.twoSidedLighting, "two-sided-lighting", opts.twoSidedLighting, "light both surface sides (custom preset)")

	f.StringVar(&opts.params.CartoonStyle, "cartoon-style", "", "cartoon helix style: oval (default), tube, rectangle, dumbbell")
	f.BoolVar(&opts.fancyHelices, "fancy-helices", opts.fancyHelices, "render helices with fancy geometry")
	f.BoolVar(&opts.fancySheets, "fancy-sheets", opts.fancySheets, "render sheets with fancy geometry")
	f.BoolVar(&opts.flatSheets, "flat-sheets", opts.flatSheets, "render sheets flat")
	f.Float64Var(&opts.params.StickRadius, "stick-radius", 0, "stick radius (0.05-1.0)")
	f.BoolVar(&opts.stickBall, "stick-ball", opts.stickBall, "draw balls on stick joints")
	f.Float64Var(&opts.params.SphereScale, "sphere-scale", 0, "sphere scale (0.1-3.0)")

	f.BoolVar(&opts.showLabels, "labels", opts.showLabels, "draw residue labels")
	f.StringVar(&opts.params.LabelSelection, "label-selection", "", "selection to label (default: name CA)")
	f.StringVar(&opts.params.LabelContent, "label-content", "", "label content: resi (default), resn, resn_resi, chain, custom")
	f.Float64Var(&opts.params.LabelSize, "label-size", 0, "label size in points (5-100)")
	f.StringVar(&opts.params.LabelColor, "label-color", "", "label color name")

	return cmd
}

// runRender executes the full pipeline for a single reference and writes the
// raster to disk.
func (c *CLI) runRender(ctx context.Context, reference string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	opts.applyTokens()
	c.applyConfig(opts)

	out := opts.output
	if out == "" {
		out = defaultOutput(reference)
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("rendering %s", reference))
	spinner.Start()

	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:         reference,
		Engine:        opts.engine,
		Params:        opts.params,
		KeepArtifacts: opts.keepArtifacts,
		Logger:        logger,
	})
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.Stop()

	if err := os.WriteFile(out, result.Raster, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write output image %s", out)
	}

	img := result.Batch.Images[0]
	prog.done(fmt.Sprintf("Rendered %s", reference))
	printSuccess("Rendered %dx%d image", img.Width, img.Height)
	printFile(out)
	printDetail("engine %s", result.EnginePath)
	printDetail("render %s, decode %s",
		result.Stats.RenderTime.Round(time.Millisecond),
		result.Stats.DecodeTime.Round(time.Millisecond))
	return nil
}

// applyChanged copies zero-valid numeric flags into their pointer fields,
// but only when the user actually set the flag. An untouched flag stays nil
// so the parameter layer applies its default; an explicit zero is kept.
func (o *renderOpts) applyChanged(flags *pflag.FlagSet) {
	if flags.Changed("rotate-x") {
		o.params.RotateX = config.Float64(o.rotateX)
	}
	if flags.Changed("rotate-y") {
		o.params.RotateY = config.Float64(o.rotateY)
	}
	if flags.Changed("trace-gain") {
		o.params.TraceGain = config.Float64(o.traceGain)
	}
	if flags.Changed("surface-quality") {
		o.params.SurfaceQuality = config.Int(o.surfaceQuality)
	}
}

// applyTokens converts boolean flags into the token form of the parameter
// layer.
func (o *renderOpts) applyTokens() {
	o.params.Antialias = strconv.Itoa(o.antialias)
	o.params.RayShadows = boolToken(o.rayShadows)
	o.params.AmbientOcclusion = boolToken(o.ambientOcclusion)
	o.params.DepthCue = boolToken(o.depthCue)
	o.params.TwoSidedLighting = boolToken(o.twoSidedLighting)
	o.params.CartoonFancyHelices = boolToken(o.fancyHelices)
	o.params.CartoonFancySheets = boolToken(o.fancySheets)
	o.params.CartoonFlatSheets = boolToken(o.flatSheets)
	o.params.StickBall = boolToken(o.stickBall)
	o.params.ShowLabels = boolToken(o.showLabels)
}

// applyConfig fills flag gaps from the user's configuration file.
func (c *CLI) applyConfig(opts *renderOpts) {
	if opts.engine == "" {
		opts.engine = c.Config.Engine
	}
	if opts.params.Preset == "" {
		opts.params.Preset = c.Config.Preset
	}
}

func boolToken(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// defaultOutput derives an output image path from the structure reference:
// the reference's base name with a .png extension.
func defaultOutput(reference string) string {
	var name string
	if strings.HasPrefix(reference, input.InlineScheme) {
		name, _, _ = strings.Cut(strings.TrimPrefix(reference, input.InlineScheme), "/")
	} else {
		name = path.Base(strings.TrimRight(reference, "/"))
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." {
		name = "render"
	}
	return name + ".png"
}
