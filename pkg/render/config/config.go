// Package config compiles raw render parameters into a fully resolved,
// internally consistent render configuration.
//
// Parameters arrive loosely typed at the boundary (enum-like strings,
// boolean-like tokens, a descriptive antialias label) and are normalized
// here into a strict [Config] with typed enumerations and numeric fields.
// The script generator consumes only the resolved Config; it never sees a
// raw string token.
//
// # Presets
//
// A named quality preset populates the quality and lighting bundle as a
// single unit and forces global transparency to 0. The sentinel preset
// "custom" instead parses each manual quality field independently.
package config

// RenderMode is the geometric representation style used to draw the
// structure.
type RenderMode string

// Supported render modes. Unknown modes degrade to ModeCartoon at script
// generation time rather than failing.
const (
	ModeCartoon      RenderMode = "cartoon"
	ModeSurface      RenderMode = "surface"
	ModeSticks       RenderMode = "sticks"
	ModeBallAndStick RenderMode = "ball_and_stick"
	ModeRibbon       RenderMode = "ribbon"
	ModeLines        RenderMode = "lines"
	ModeSpheres      RenderMode = "spheres"
	ModeMesh         RenderMode = "mesh"
	ModeDots         RenderMode = "dots"
)

// ColorMode selects how the structure is colored.
type ColorMode string

// Supported color modes.
const (
	ColorByChain     ColorMode = "chain"
	ColorByElement   ColorMode = "element"
	ColorSingle      ColorMode = "single"
	ColorCustom      ColorMode = "custom"
	ColorSpectrum    ColorMode = "spectrum"
	ColorBySecondary ColorMode = "secondary_structure"
	ColorByBFactor   ColorMode = "b_factor"
	ColorByHydro     ColorMode = "hydrophobicity"
)

// CameraMode selects a named orientation or explicit rotation.
type CameraMode string

// Supported camera modes. Unknown modes degrade to orient+zoom only.
const (
	CameraAutoOrient CameraMode = "auto_orient"
	CameraFront      CameraMode = "front"
	CameraBack       CameraMode = "back"
	CameraSide       CameraMode = "side"
	CameraTop        CameraMode = "top"
	CameraBottom     CameraMode = "bottom"
	CameraIso        CameraMode = "iso"
	CameraCustom     CameraMode = "custom"
)

// TraceMode is the engine's line/outline rendering style during
// high-quality export.
type TraceMode int

// Trace modes, in engine encoding.
const (
	TraceNormal     TraceMode = 0
	TraceOutlined   TraceMode = 1
	TraceBWOutlined TraceMode = 2
	TraceQuantized  TraceMode = 3
)

// Outlined reports whether the trace mode draws outlines, which enables the
// outline gain and color settings in the generated script.
func (m TraceMode) Outlined() bool {
	return m == TraceOutlined || m == TraceBWOutlined || m == TraceQuantized
}

// traceModes maps trace-mode names to engine codes. Unrecognized names
// default to TraceNormal; this permissive fallback is contractual.
var traceModes = map[string]TraceMode{
	"normal":      TraceNormal,
	"outlined":    TraceOutlined,
	"bw_outlined": TraceBWOutlined,
	"quantized":   TraceQuantized,
}

// sphereModes maps sphere-mode names to engine codes.
var sphereModes = map[string]int{
	"default": 0,
	"simple":  1,
	"shader":  2,
	"fast":    9,
}

// SpectrumPalettes is the fixed enumeration of palettes accepted for
// spectrum and b_factor coloring.
var SpectrumPalettes = map[string]bool{
	"rainbow":             true,
	"blue_white_red":      true,
	"green_white_magenta": true,
	"cyan_white_yellow":   true,
	"blue_green":          true,
	"yellow_cyan_white":   true,
}

// ChainColor assigns a color to a single chain. Order is preserved from the
// raw mapping string.
type ChainColor struct {
	Chain string
	Color string
}

// CartoonParams are the cartoon-mode settings.
type CartoonParams struct {
	Style        string
	FancyHelices bool
	FancySheets  bool
	FlatSheets   bool
	SmoothLoops  int
	TubeRadius   float64
	HelixRadius  float64
	LoopRadius   float64
	Transparency float64
}

// StickParams are the sticks-mode settings, shared with ball_and_stick.
type StickParams struct {
	Radius       float64
	Ball         bool
	Transparency float64
}

// SphereParams are the spheres-mode settings, shared with ball_and_stick.
type SphereParams struct {
	Scale        float64
	Mode         int
	Transparency float64
}

// SurfaceParams are the surface-mode settings. Quality is shared with the
// mesh mode.
type SurfaceParams struct {
	Quality      int
	Transparency float64
}

// RibbonParams are the ribbon-mode settings.
type RibbonParams struct {
	Width  float64
	Smooth int
}

// ColorSpec is the resolved coloring instruction: the mode plus its
// mode-specific payload.
type ColorSpec struct {
	Mode    ColorMode
	Single  string       // ColorSingle: color name
	Chains  []ChainColor // ColorCustom: ordered chain assignments
	Palette string       // ColorSpectrum / ColorByBFactor: palette name
}

// QualityParams is the ray-trace quality bundle, populated from a preset or
// from manual fields.
type QualityParams struct {
	Antialias      int
	RayShadows     bool
	SurfaceQuality int
	TraceMode      TraceMode
	TraceGain      float64
	TraceColor     string
}

// LightingParams is the full lighting bundle.
type LightingParams struct {
	Ambient               float64
	Direct                float64
	Reflect               float64
	SpecCount             int
	SpecReflect           float64
	SpecDirect            float64
	Shininess             int
	LightCount            int
	TwoSided              bool
	AmbientOcclusion      bool
	AmbientOcclusionScale float64
	DepthCue              bool
	Fog                   float64
}

// CameraSpec is the resolved camera: a named orientation, or explicit
// three-axis rotation when Mode is CameraCustom, plus the zoom factor.
type CameraSpec struct {
	Mode    CameraMode
	RotateX float64
	RotateY float64
	RotateZ float64
	Zoom    float64
}

// LabelSpec describes optional text labels drawn on the structure.
type LabelSpec struct {
	Selection string
	Content   string
	Size      float64
	Color     string
}

// Config is the fully resolved render configuration consumed by the script
// generator. It is request-scoped: constructed fresh per call by Compile and
// discarded after use.
type Config struct {
	Selection string
	Mode      RenderMode

	Cartoon CartoonParams
	Stick   StickParams
	Sphere  SphereParams
	Surface SurfaceParams
	Ribbon  RibbonParams

	LineWidth  float64
	MeshWidth  float64
	DotDensity int

	Color      ColorSpec
	Background string

	// Transparency is the global transparency scalar. Forced to 0 when a
	// named preset is active.
	Transparency float64

	Quality  QualityParams
	Lighting LightingParams
	Camera   CameraSpec
	Label    *LabelSpec

	Width  int
	Height int
}
