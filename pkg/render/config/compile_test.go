package config

import (
	"testing"

	"github.com/molviz/molrender/pkg/errors"
)

func TestCompilePresetBundles(t *testing.T) {
	tests := []struct {
		preset string
		want   Preset
	}{
		{"draft", Preset{Antialias: 0, RayShadows: false, SurfaceQuality: 0, TraceMode: TraceNormal, AmbientOcclusion: false, LightCount: 2}},
		{"standard", Preset{Antialias: 1, RayShadows: true, SurfaceQuality: 1, TraceMode: TraceNormal, AmbientOcclusion: true, LightCount: 4}},
		{"high", Preset{Antialias: 2, RayShadows: true, SurfaceQuality: 2, TraceMode: TraceNormal, AmbientOcclusion: true, LightCount: 6}},
		{"publication", Preset{Antialias: 4, RayShadows: true, SurfaceQuality: 3, TraceMode: TraceNormal, AmbientOcclusion: true, LightCount: 8}},
		{"publication_outlined", Preset{Antialias: 4, RayShadows: true, SurfaceQuality: 3, TraceMode: TraceOutlined, AmbientOcclusion: true, LightCount: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg, err := Compile(Params{
				Preset: tt.preset,
				// Transparency override must be ignored for named presets.
				Transparency: 0.8,
				// Manual quality fields must be ignored too.
				Antialias: "3 (3x oversample)",
				TraceMode: "quantized",
			})
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			if cfg.Quality.Antialias != tt.want.Antialias {
				t.Errorf("Antialias = %d, want %d", cfg.Quality.Antialias, tt.want.Antialias)
			}
			if cfg.Quality.RayShadows != tt.want.RayShadows {
				t.Errorf("RayShadows = %v, want %v", cfg.Quality.RayShadows, tt.want.RayShadows)
			}
			if cfg.Quality.SurfaceQuality != tt.want.SurfaceQuality {
				t.Errorf("SurfaceQuality = %d, want %d", cfg.Quality.SurfaceQuality, tt.want.SurfaceQuality)
			}
			if cfg.Quality.TraceMode != tt.want.TraceMode {
				t.Errorf("TraceMode = %d, want %d", cfg.Quality.TraceMode, tt.want.TraceMode)
			}
			if cfg.Lighting.AmbientOcclusion != tt.want.AmbientOcclusion {
				t.Errorf("AmbientOcclusion = %v, want %v", cfg.Lighting.AmbientOcclusion, tt.want.AmbientOcclusion)
			}
			if cfg.Lighting.LightCount != tt.want.LightCount {
				t.Errorf("LightCount = %d, want %d", cfg.Lighting.LightCount, tt.want.LightCount)
			}
			if cfg.Transparency != 0 {
				t.Errorf("Transparency = %v, want 0 (forced by preset)", cfg.Transparency)
			}
		})
	}
}

func TestCompileUnknownPreset(t *testing.T) {
	_, err := Compile(Params{Preset: "ultra"})
	if !errors.Is(err, errors.ErrCodeUnknownPreset) {
		t.Fatalf("err = %v, want CONFIG_UNKNOWN_PRESET", err)
	}
}

func TestCompileCustomPreset(t *testing.T) {
	cfg, err := Compile(Params{
		Preset:           PresetCustom,
		Antialias:        "2 (2x oversample)",
		RayShadows:       "no",
		TraceMode:        "outlined",
		SurfaceQuality:   Int(3),
		AmbientOcclusion: "on",
		LightCount:       7,
		Transparency:     0.4,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if cfg.Quality.Antialias != 2 {
		t.Errorf("Antialias = %d, want 2", cfg.Quality.Antialias)
	}
	if cfg.Quality.RayShadows {
		t.Error("RayShadows = true, want false")
	}
	if cfg.Quality.TraceMode != TraceOutlined {
		t.Errorf("TraceMode = %d, want %d", cfg.Quality.TraceMode, TraceOutlined)
	}
	if cfg.Quality.SurfaceQuality != 3 {
		t.Errorf("SurfaceQuality = %d, want 3", cfg.Quality.SurfaceQuality)
	}
	if !cfg.Lighting.AmbientOcclusion {
		t.Error("AmbientOcclusion = false, want true")
	}
	if cfg.Lighting.LightCount != 7 {
		t.Errorf("LightCount = %d, want 7", cfg.Lighting.LightCount)
	}
	if cfg.Transparency != 0.4 {
		t.Errorf("Transparency = %v, want 0.4", cfg.Transparency)
	}
}

func TestCompileCustomExplicitZeros(t *testing.T) {
	// Zero is a valid value for these fields; it must map 1:1 instead of
	// being replaced by the absent-value default.
	cfg, err := Compile(Params{
		Preset:         PresetCustom,
		Camera:         "custom",
		FogAmount:      Float64(0),
		SurfaceQuality: Int(0),
		SpecCount:      Int(0),
		SpecReflect:    Float64(0),
		TraceGain:      Float64(0),
		RotateX:        Float64(0),
		Ambient:        Float64(0),
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if cfg.Lighting.Fog != 0 {
		t.Errorf("Fog = %v, want 0", cfg.Lighting.Fog)
	}
	if cfg.Quality.SurfaceQuality != 0 {
		t.Errorf("SurfaceQuality = %d, want 0", cfg.Quality.SurfaceQuality)
	}
	if cfg.Lighting.SpecCount != 0 {
		t.Errorf("SpecCount = %d, want 0", cfg.Lighting.SpecCount)
	}
	if cfg.Lighting.SpecReflect != 0 {
		t.Errorf("SpecReflect = %v, want 0", cfg.Lighting.SpecReflect)
	}
	if cfg.Quality.TraceGain != 0 {
		t.Errorf("TraceGain = %v, want 0", cfg.Quality.TraceGain)
	}
	if cfg.Camera.RotateX != 0 {
		t.Errorf("RotateX = %v, want 0", cfg.Camera.RotateX)
	}
	if cfg.Lighting.Ambient != 0 {
		t.Errorf("Ambient = %v, want 0", cfg.Lighting.Ambient)
	}
}

func TestCompileAbsentFieldsStillDefault(t *testing.T) {
	cfg, err := Compile(Params{Preset: PresetCustom})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if cfg.Lighting.Fog != 0.5 {
		t.Errorf("Fog = %v, want 0.5", cfg.Lighting.Fog)
	}
	if cfg.Quality.SurfaceQuality != 1 {
		t.Errorf("SurfaceQuality = %d, want 1", cfg.Quality.SurfaceQuality)
	}
	if cfg.Lighting.SpecCount != 4 {
		t.Errorf("SpecCount = %d, want 4", cfg.Lighting.SpecCount)
	}
	if cfg.Camera.RotateX != 45 {
		t.Errorf("RotateX = %v, want 45", cfg.Camera.RotateX)
	}
}

func TestCompileCustomInvalidAntialias(t *testing.T) {
	_, err := Compile(Params{Preset: PresetCustom, Antialias: "max (please)"})
	if !errors.Is(err, errors.ErrCodeInvalidValue) {
		t.Fatalf("err = %v, want CONFIG_INVALID_VALUE", err)
	}
}

func TestParseTraceModeFallback(t *testing.T) {
	tests := []struct {
		name string
		want TraceMode
	}{
		{"normal", TraceNormal},
		{"outlined", TraceOutlined},
		{"bw_outlined", TraceBWOutlined},
		{"quantized", TraceQuantized},
		{"holographic", TraceNormal}, // unrecognized names fall back, accepted edge case
		{"", TraceNormal},
	}
	for _, tt := range tests {
		if got := parseTraceMode(tt.name); got != tt.want {
			t.Errorf("parseTraceMode(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestAsBool(t *testing.T) {
	truthy := []string{"1", "true", "TRUE", "yes", "Y", "on", " On "}
	for _, v := range truthy {
		if !AsBool(v) {
			t.Errorf("AsBool(%q) = false, want true", v)
		}
	}
	falsy := []string{"", "0", "false", "off", "nope", "2"}
	for _, v := range falsy {
		if AsBool(v) {
			t.Errorf("AsBool(%q) = true, want false", v)
		}
	}
}

func TestParseChainColors(t *testing.T) {
	got := ParseChainColors("A:cyan, B:green ,C:yellow")
	want := []ChainColor{{"A", "cyan"}, {"B", "green"}, {"C", "yellow"}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseChainColorsDropsMalformed(t *testing.T) {
	// Entries without a colon are dropped silently. This permissive behavior
	// is contractual, not an oversight.
	got := ParseChainColors("A:cyan,broken,B:green")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (malformed entry dropped)", len(got))
	}
	if got[0].Chain != "A" || got[1].Chain != "B" {
		t.Errorf("chains = %v, want A then B", got)
	}
}

func TestCompileColorPaletteFallback(t *testing.T) {
	cfg, err := Compile(Params{ColorMode: "spectrum", SpectrumPalette: "neon"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if cfg.Color.Palette != DefaultPalette {
		t.Errorf("Palette = %q, want %q", cfg.Color.Palette, DefaultPalette)
	}
}

func TestCompileBackground(t *testing.T) {
	tests := []struct {
		background string
		custom     string
		want       string
	}{
		{"white", "", "white"},
		{"black", "red", "black"},
		{"custom", "grey20", "grey20"},
		{"custom", "", "white"},
	}
	for _, tt := range tests {
		cfg, err := Compile(Params{Background: tt.background, BackgroundColor: tt.custom})
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if cfg.Background != tt.want {
			t.Errorf("Background(%q,%q) = %q, want %q", tt.background, tt.custom, cfg.Background, tt.want)
		}
	}
}

func TestValidateClampsDimensions(t *testing.T) {
	p := Params{Width: 100000, Height: 10}
	p.ValidateAndSetDefaults()
	if p.Width != MaxDimension {
		t.Errorf("Width = %d, want %d", p.Width, MaxDimension)
	}
	if p.Height != MinDimension {
		t.Errorf("Height = %d, want %d", p.Height, MinDimension)
	}
}
