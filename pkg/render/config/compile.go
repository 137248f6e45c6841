package config

import (
	"strconv"
	"strings"

	"github.com/molviz/molrender/pkg/errors"
)

// Compile merges the named quality preset (or the manual quality fields when
// the preset is "custom") with the per-call parameters into one fully
// resolved Config.
//
// Preset semantics: a named preset defines a complete lighting/quality
// profile, so global transparency is forced to 0 regardless of any override.
// An unknown preset name fails with CONFIG_UNKNOWN_PRESET; this is defensive,
// since UI enumeration should prevent it.
func Compile(params Params) (*Config, error) {
	params.ValidateAndSetDefaults()

	quality, transparency, err := compileQuality(params)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Selection: strings.TrimSpace(params.Selection),
		Mode:      RenderMode(params.RenderMode),

		Cartoon: CartoonParams{
			Style:        params.CartoonStyle,
			FancyHelices: AsBool(params.CartoonFancyHelices),
			FancySheets:  AsBool(params.CartoonFancySheets),
			FlatSheets:   AsBool(params.CartoonFlatSheets),
			SmoothLoops:  *params.CartoonSmoothLoops,
			TubeRadius:   params.CartoonTubeRadius,
			HelixRadius:  params.CartoonHelixRadius,
			LoopRadius:   params.CartoonLoopRadius,
			Transparency: params.CartoonTransparency,
		},
		Stick: StickParams{
			Radius:       params.StickRadius,
			Ball:         AsBool(params.StickBall),
			Transparency: params.StickTransparency,
		},
		Sphere: SphereParams{
			Scale:        params.SphereScale,
			Mode:         sphereModes[params.SphereMode], // unknown name → 0 (default)
			Transparency: params.SphereTransparency,
		},
		Surface: SurfaceParams{
			Quality:      quality.SurfaceQuality,
			Transparency: params.SurfaceTransparency,
		},
		Ribbon: RibbonParams{
			Width:  params.RibbonWidth,
			Smooth: params.RibbonSmooth,
		},

		LineWidth:  params.LineWidth,
		MeshWidth:  params.MeshWidth,
		DotDensity: params.DotDensity,

		Color:      compileColor(params),
		Background: compileBackground(params),

		Transparency: transparency,
		Quality:      quality.QualityParams,
		Lighting: LightingParams{
			Ambient:               *params.Ambient,
			Direct:                *params.Direct,
			Reflect:               *params.Reflect,
			SpecCount:             *params.SpecCount,
			SpecReflect:           *params.SpecReflect,
			SpecDirect:            params.SpecDirect,
			Shininess:             *params.Shininess,
			LightCount:            quality.lightCount,
			TwoSided:              AsBool(params.TwoSidedLighting),
			AmbientOcclusion:      quality.ambientOcclusion,
			AmbientOcclusionScale: params.AmbientOcclusionScale,
			DepthCue:              AsBool(params.DepthCue),
			Fog:                   *params.FogAmount,
		},
		Camera: CameraSpec{
			Mode:    CameraMode(params.Camera),
			RotateX: *params.RotateX,
			RotateY: *params.RotateY,
			RotateZ: params.RotateZ,
			Zoom:    params.ZoomFactor,
		},

		Width:  params.Width,
		Height: params.Height,
	}

	if AsBool(params.ShowLabels) {
		cfg.Label = &LabelSpec{
			Selection: params.LabelSelection,
			Content:   params.LabelContent,
			Size:      params.LabelSize,
			Color:     params.LabelColor,
		}
	}

	return cfg, nil
}

// qualityResult extends QualityParams with the fields that land in the
// lighting bundle.
type qualityResult struct {
	QualityParams
	ambientOcclusion bool
	lightCount       int
}

// compileQuality resolves the quality bundle from the preset or the manual
// fields, and decides the global transparency.
func compileQuality(params Params) (qualityResult, float64, error) {
	if params.Preset != PresetCustom {
		preset, ok := Presets[params.Preset]
		if !ok {
			return qualityResult{}, 0, errors.New(errors.ErrCodeUnknownPreset,
				"unknown quality preset %q (valid: draft, standard, high, publication, publication_outlined, custom)",
				params.Preset)
		}
		return qualityResult{
			QualityParams: QualityParams{
				Antialias:      preset.Antialias,
				RayShadows:     preset.RayShadows,
				SurfaceQuality: preset.SurfaceQuality,
				TraceMode:      preset.TraceMode,
				TraceGain:      *params.TraceGain,
				TraceColor:     params.TraceColor,
			},
			ambientOcclusion: preset.AmbientOcclusion,
			lightCount:       preset.LightCount,
		}, 0, nil // presets force global transparency to 0
	}

	antialias, err := parseAntialias(params.Antialias)
	if err != nil {
		return qualityResult{}, 0, err
	}
	return qualityResult{
		QualityParams: QualityParams{
			Antialias:      antialias,
			RayShadows:     AsBool(params.RayShadows),
			SurfaceQuality: *params.SurfaceQuality,
			TraceMode:      parseTraceMode(params.TraceMode),
			TraceGain:      *params.TraceGain,
			TraceColor:     params.TraceColor,
		},
		ambientOcclusion: AsBool(params.AmbientOcclusion),
		lightCount:       params.LightCount,
	}, params.Transparency, nil
}

// parseAntialias extracts the level from a descriptive label such as
// "2 (2x oversample)". A bare integer is also accepted. Non-numeric input is
// a configuration error.
func parseAntialias(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidValue, "empty antialias value")
	}
	level, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidValue, err, "invalid antialias value %q", label)
	}
	return clampInt(level, 0, 4), nil
}

// parseTraceMode looks up a trace-mode name, defaulting to TraceNormal for
// unrecognized names.
func parseTraceMode(name string) TraceMode {
	if mode, ok := traceModes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return mode
	}
	return TraceNormal
}

// compileColor resolves the color mode and its payload.
func compileColor(params Params) ColorSpec {
	spec := ColorSpec{Mode: ColorMode(params.ColorMode)}

	switch spec.Mode {
	case ColorSingle:
		spec.Single = params.SingleColor
	case ColorSpectrum, ColorByBFactor:
		spec.Palette = params.SpectrumPalette
		if !SpectrumPalettes[spec.Palette] {
			spec.Palette = DefaultPalette
		}
	case ColorByChain, ColorByElement, ColorBySecondary, ColorByHydro:
		// no payload
	default:
		// Unknown modes take the per-chain branch, matching the engine-side
		// fallback. Entries without a colon are silently dropped.
		spec.Mode = ColorCustom
		fallthrough
	case ColorCustom:
		spec.Chains = ParseChainColors(params.ChainColors)
	}
	return spec
}

// ParseChainColors parses a "chain:color,chain:color" mapping. Entries
// without a colon are dropped without error; order is preserved.
func ParseChainColors(s string) []ChainColor {
	var out []ChainColor
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		chain, color, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		out = append(out, ChainColor{
			Chain: strings.TrimSpace(chain),
			Color: strings.TrimSpace(color),
		})
	}
	return out
}

// compileBackground picks the plate color: a named background, or the custom
// color when the background mode is "custom".
func compileBackground(params Params) string {
	if params.Background == "custom" {
		if params.BackgroundColor != "" {
			return params.BackgroundColor
		}
		return "white"
	}
	return params.Background
}
