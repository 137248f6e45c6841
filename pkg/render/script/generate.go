package script

import (
	"fmt"

	"github.com/molviz/molrender/pkg/render/config"
)

// objectName is the fixed internal name the structure is loaded under. All
// generated selections and settings reference it.
const objectName = "prot"

// labelExprs maps label content fields to engine text expressions.
// Unrecognized content fields fall back to the residue index.
var labelExprs = map[string]string{
	"resn":   "resn",
	"resi":   "resi",
	"name":   "name",
	"chain":  "chain",
	"b":      "b",
	"custom": `"%s-%s" % (resn, resi)`,
}

// Generate lowers a resolved configuration into the fixed engine statement
// sequence: load, selection, representation, coloring, background, quality,
// transparency, lighting, labels, camera, export. It is pure and total:
// identical inputs yield byte-identical scripts.
func Generate(cfg *config.Config, structurePath, outputPath string) Script {
	s := Script{
		Reinitialize{},
		Load{Path: structurePath, Object: objectName},
	}

	if cfg.Selection != "" && cfg.Selection != "all" {
		s = append(s, Select{Name: "sel", Expr: cfg.Selection})
	}

	s = append(s, Hide{Rep: "everything", Sel: "all"})
	s = append(s, modeBlock(cfg)...)
	s = append(s, colorBlock(cfg.Color)...)

	// Opaque background both interactively and at trace time, so the decoded
	// output never carries an alpha-dependent matte.
	s = append(s,
		Background{Color: cfg.Background},
		Set{"opaque_background", true},
		Set{"ray_opaque_background", true},
	)

	s = append(s,
		Set{"antialias", cfg.Quality.Antialias},
		Set{"ray_shadow", cfg.Quality.RayShadows},
		Set{"ray_trace_mode", int(cfg.Quality.TraceMode)},
	)
	if cfg.Quality.TraceMode.Outlined() {
		s = append(s,
			Set{"ray_trace_gain", cfg.Quality.TraceGain},
			Set{"ray_trace_color", cfg.Quality.TraceColor},
		)
	}

	s = append(s, Set{"transparency", cfg.Transparency})

	s = append(s,
		Set{"ambient", cfg.Lighting.Ambient},
		Set{"direct", cfg.Lighting.Direct},
		Set{"reflect", cfg.Lighting.Reflect},
		Set{"spec_count", cfg.Lighting.SpecCount},
		Set{"spec_reflect", cfg.Lighting.SpecReflect},
		Set{"spec_direct", cfg.Lighting.SpecDirect},
		Set{"shininess", cfg.Lighting.Shininess},
		Set{"light_count", cfg.Lighting.LightCount},
		Set{"two_sided_lighting", cfg.Lighting.TwoSided},
		Set{"ambient_occlusion_mode", cfg.Lighting.AmbientOcclusion},
		Set{"ambient_occlusion_scale", cfg.Lighting.AmbientOcclusionScale},
		Set{"depth_cue", cfg.Lighting.DepthCue},
		Set{"fog", cfg.Lighting.Fog},
	)

	if cfg.Label != nil {
		expr, ok := labelExprs[cfg.Label.Content]
		if !ok {
			expr = labelExprs["resi"]
		}
		s = append(s,
			Set{"label_size", cfg.Label.Size},
			Set{"label_color", cfg.Label.Color},
			Label{Sel: cfg.Label.Selection, Expr: expr},
		)
	}

	s = append(s, cameraBlock(cfg.Camera)...)

	s = append(s,
		Export{Path: outputPath, Width: cfg.Width, Height: cfg.Height},
		Quit{},
	)
	return s
}

// modeBlock emits the show directive plus the settings belonging to the
// selected render mode. Exactly one mode's settings are emitted; settings
// for other modes are inert. Unknown modes fall back to a bare cartoon.
func modeBlock(cfg *config.Config) Script {
	switch cfg.Mode {
	case config.ModeCartoon:
		return Script{
			Show{Rep: "cartoon", Sel: objectName},
			CartoonStyle{Style: cfg.Cartoon.Style, Sel: objectName},
			Set{"cartoon_fancy_helices", cfg.Cartoon.FancyHelices},
			Set{"cartoon_fancy_sheets", cfg.Cartoon.FancySheets},
			Set{"cartoon_flat_sheets", cfg.Cartoon.FlatSheets},
			Set{"cartoon_smooth_loops", cfg.Cartoon.SmoothLoops},
			Set{"cartoon_tube_radius", cfg.Cartoon.TubeRadius},
			Set{"cartoon_helix_radius", cfg.Cartoon.HelixRadius},
			Set{"cartoon_loop_radius", cfg.Cartoon.LoopRadius},
			Set{"cartoon_highlight_color", "grey90"},
			Set{"cartoon_transparency", cfg.Cartoon.Transparency},
		}
	case config.ModeSurface:
		return Script{
			Show{Rep: "surface", Sel: objectName},
			Set{"surface_quality", cfg.Surface.Quality},
			Set{"surface_transparency", cfg.Surface.Transparency},
		}
	case config.ModeSticks:
		return Script{
			Show{Rep: "sticks", Sel: objectName},
			Set{"stick_radius", cfg.Stick.Radius},
			Set{"stick_ball", cfg.Stick.Ball},
			Set{"stick_transparency", cfg.Stick.Transparency},
		}
	case config.ModeBallAndStick:
		return Script{
			Show{Rep: "spheres", Sel: objectName},
			Show{Rep: "sticks", Sel: objectName},
			Set{"sphere_scale", 0.25},
			Set{"stick_radius", cfg.Stick.Radius},
			Set{"sphere_transparency", cfg.Sphere.Transparency},
			Set{"stick_transparency", cfg.Stick.Transparency},
		}
	case config.ModeRibbon:
		return Script{
			Show{Rep: "ribbon", Sel: objectName},
			Set{"ribbon_width", cfg.Ribbon.Width},
			Set{"ribbon_smooth", cfg.Ribbon.Smooth},
		}
	case config.ModeLines:
		return Script{
			Show{Rep: "lines", Sel: objectName},
			Set{"line_width", cfg.LineWidth},
		}
	case config.ModeSpheres:
		return Script{
			Show{Rep: "spheres", Sel: objectName},
			Set{"sphere_scale", cfg.Sphere.Scale},
			Set{"sphere_mode", cfg.Sphere.Mode},
			Set{"sphere_transparency", cfg.Sphere.Transparency},
		}
	case config.ModeMesh:
		return Script{
			Show{Rep: "mesh", Sel: objectName},
			Set{"mesh_width", cfg.MeshWidth},
			Set{"surface_quality", cfg.Surface.Quality},
		}
	case config.ModeDots:
		return Script{
			Show{Rep: "dots", Sel: objectName},
			Set{"dot_density", cfg.DotDensity},
		}
	default:
		return Script{Show{Rep: "cartoon", Sel: objectName}}
	}
}

// colorBlock emits the coloring commands for the resolved color mode.
func colorBlock(spec config.ColorSpec) Script {
	switch spec.Mode {
	case config.ColorByChain:
		return Script{Util{Call: "util.cbc()"}}
	case config.ColorByElement:
		// Explicit per-element colors; robust across engine versions.
		return Script{
			Color{Color: "gray70", Sel: objectName},
			Color{Color: "slate", Sel: "elem C & " + objectName},
			Color{Color: "blue", Sel: "elem N & " + objectName},
			Color{Color: "red", Sel: "elem O & " + objectName},
			Color{Color: "yellow", Sel: "elem S & " + objectName},
			Color{Color: "orange", Sel: "elem P & " + objectName},
			Color{Color: "white", Sel: "elem H & " + objectName},
		}
	case config.ColorSingle:
		return Script{Color{Color: spec.Single, Sel: objectName}}
	case config.ColorSpectrum:
		return Script{Spectrum{Expr: "count", Palette: spec.Palette, Sel: objectName}}
	case config.ColorByBFactor:
		return Script{Spectrum{Expr: "b", Palette: spec.Palette, Sel: objectName}}
	case config.ColorBySecondary:
		return Script{
			Color{Color: "red", Sel: "ss h & " + objectName},
			Color{Color: "yellow", Sel: "ss s & " + objectName},
			Color{Color: "green", Sel: "ss l+ & " + objectName},
		}
	case config.ColorByHydro:
		return Script{Util{Call: fmt.Sprintf("util.color_by_hydropathy(%s)", objectName)}}
	default: // ColorCustom and anything the compiler routed there
		s := make(Script, 0, len(spec.Chains))
		for _, cc := range spec.Chains {
			s = append(s, Color{Color: cc.Color, Sel: "chain " + cc.Chain})
		}
		return s
	}
}

// cameraBlock emits the fixed orientation, the per-mode rotation sequence,
// and the zoom. Unknown camera modes keep the plain orient+zoom.
func cameraBlock(cam config.CameraSpec) Script {
	s := Script{Orient{Sel: objectName}}
	switch cam.Mode {
	case config.CameraSide:
		s = append(s, Turn{Axis: "y", Degrees: 90})
	case config.CameraTop:
		s = append(s, Turn{Axis: "x", Degrees: -90})
	case config.CameraBottom:
		s = append(s, Turn{Axis: "x", Degrees: 90})
	case config.CameraBack:
		s = append(s, Turn{Axis: "y", Degrees: 180})
	case config.CameraIso:
		s = append(s, Turn{Axis: "x", Degrees: 45}, Turn{Axis: "y", Degrees: 30})
	case config.CameraCustom:
		s = append(s,
			Turn{Axis: "x", Degrees: cam.RotateX},
			Turn{Axis: "y", Degrees: cam.RotateY},
			Turn{Axis: "z", Degrees: cam.RotateZ},
		)
	}
	s = append(s, Zoom{Sel: "visible", Factor: cam.Zoom})
	return s
}
