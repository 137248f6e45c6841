package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      string
	}{
		{"local pdb", "structures/1abc.pdb", "1abc.png"},
		{"local cif", "/data/4hhb.cif", "4hhb.png"},
		{"url", "https://files.rcsb.org/download/1UBQ.pdb", "1UBQ.png"},
		{"url with query", "https://example.com/fetch/2mbw.pdb?format=raw", "2mbw.png"},
		{"inline", "base64file://complex.pdb/QVRPTQ==", "complex.png"},
		{"no extension", "mystructure", "mystructure.png"},
		{"empty tail", "/", "render.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultOutput(tt.reference); got != tt.want {
				t.Errorf("defaultOutput(%q) = %q, want %q", tt.reference, got, tt.want)
			}
		})
	}
}

func TestApplyTokens(t *testing.T) {
	opts := renderOpts{
		antialias:        2,
		rayShadows:       true,
		ambientOcclusion: false,
		showLabels:       true,
	}
	opts.applyTokens()

	if opts.params.Antialias != "2" {
		t.Errorf("Antialias = %q, want %q", opts.params.Antialias, "2")
	}
	if opts.params.RayShadows != "true" {
		t.Errorf("RayShadows = %q, want %q", opts.params.RayShadows, "true")
	}
	if opts.params.AmbientOcclusion != "false" {
		t.Errorf("AmbientOcclusion = %q, want %q", opts.params.AmbientOcclusion, "false")
	}
	if opts.params.ShowLabels != "true" {
		t.Errorf("ShowLabels = %q, want %q", opts.params.ShowLabels, "true")
	}
}

func TestApplyChanged(t *testing.T) {
	opts := renderOpts{}
	flags := pflag.NewFlagSet("render", pflag.ContinueOnError)
	flags.Float64Var(&opts.rotateX, "rotate-x", 0, "")
	flags.Float64Var(&opts.rotateY, "rotate-y", 0, "")
	flags.Float64Var(&opts.traceGain, "trace-gain", 0, "")
	flags.IntVar(&opts.surfaceQuality, "surface-quality", 0, "")

	// An explicit zero must survive; an untouched flag must stay absent.
	if err := flags.Set("rotate-x", "0"); err != nil {
		t.Fatal(err)
	}
	if err := flags.Set("surface-quality", "3"); err != nil {
		t.Fatal(err)
	}
	opts.applyChanged(flags)

	if opts.params.RotateX == nil || *opts.params.RotateX != 0 {
		t.Errorf("RotateX = %v, want pointer to 0", opts.params.RotateX)
	}
	if opts.params.SurfaceQuality == nil || *opts.params.SurfaceQuality != 3 {
		t.Errorf("SurfaceQuality = %v, want pointer to 3", opts.params.SurfaceQuality)
	}
	if opts.params.RotateY != nil {
		t.Errorf("RotateY = %v, want nil for untouched flag", *opts.params.RotateY)
	}
	if opts.params.TraceGain != nil {
		t.Errorf("TraceGain = %v, want nil for untouched flag", *opts.params.TraceGain)
	}
}

func TestApplyConfigFillsGaps(t *testing.T) {
	c := &CLI{Config: Config{Engine: "/opt/pymol/bin/pymol", Preset: "high"}}

	opts := renderOpts{}
	c.applyConfig(&opts)
	if opts.engine != "/opt/pymol/bin/pymol" {
		t.Errorf("engine = %q, want config value", opts.engine)
	}
	if opts.params.Preset != "high" {
		t.Errorf("preset = %q, want config value", opts.params.Preset)
	}

	// Explicit flags win over config values.
	opts = renderOpts{engine: "/usr/bin/pymol"}
	opts.params.Preset = "draft"
	c.applyConfig(&opts)
	if opts.engine != "/usr/bin/pymol" {
		t.Errorf("engine = %q, flag should win", opts.engine)
	}
	if opts.params.Preset != "draft" {
		t.Errorf("preset = %q, flag should win", opts.params.Preset)
	}
}
