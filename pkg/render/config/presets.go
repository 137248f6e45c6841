package config

// Preset is a named bundle of quality and lighting settings chosen as a
// single unit instead of per-field tuning. Each preset trades render speed
// against visual quality.
type Preset struct {
	Antialias        int       // oversampling level 0-4
	RayShadows       bool      // cast shadows during ray trace
	SurfaceQuality   int       // surface tessellation level 0-4
	TraceMode        TraceMode // outline style during ray trace
	AmbientOcclusion bool      // screen-space ambient occlusion
	LightCount       int       // number of scene lights
}

// PresetCustom is the sentinel preset name meaning "ignore the bundle; use
// the manual quality and lighting fields instead".
const PresetCustom = "custom"

// Presets maps preset names to their fixed bundles. PresetCustom is not a
// key here: it is handled separately by Compile.
var Presets = map[string]Preset{
	"draft": {
		Antialias:        0,
		RayShadows:       false,
		SurfaceQuality:   0,
		TraceMode:        TraceNormal,
		AmbientOcclusion: false,
		LightCount:       2,
	},
	"standard": {
		Antialias:        1,
		RayShadows:       true,
		SurfaceQuality:   1,
		TraceMode:        TraceNormal,
		AmbientOcclusion: true,
		LightCount:       4,
	},
	"high": {
		Antialias:        2,
		RayShadows:       true,
		SurfaceQuality:   2,
		TraceMode:        TraceNormal,
		AmbientOcclusion: true,
		LightCount:       6,
	},
	"publication": {
		Antialias:        4,
		RayShadows:       true,
		SurfaceQuality:   3,
		TraceMode:        TraceNormal,
		AmbientOcclusion: true,
		LightCount:       8,
	},
	"publication_outlined": {
		Antialias:        4,
		RayShadows:       true,
		SurfaceQuality:   3,
		TraceMode:        TraceOutlined,
		AmbientOcclusion: true,
		LightCount:       8,
	},
}

// PresetNames returns the valid preset names including PresetCustom.
func PresetNames() []string {
	names := make([]string, 0, len(Presets)+1)
	for name := range Presets {
		names = append(names, name)
	}
	names = append(names, PresetCustom)
	return names
}
