package config

import "strings"

// Size bounds for the output raster.
const (
	MinDimension = 256
	MaxDimension = 4096
)

// Default values applied by ValidateAndSetDefaults.
const (
	DefaultPreset  = "standard"
	DefaultWidth   = 1024
	DefaultHeight  = 1024
	DefaultPalette = "rainbow"
)

// Params holds the raw, loosely typed render parameters as supplied by the
// caller (CLI flags, HTTP request, or host runtime). Enum-like and
// boolean-like fields stay strings here; normalization into typed values
// happens in Compile. This struct supports JSON serialization for service
// requests.
//
// Numeric fields whose valid domain includes zero are pointers, so an
// explicit zero (fog off, no X rotation) is distinguishable from an absent
// value and survives defaulting. Build them with Float64 and Int.
type Params struct {
	// Quality preset, or "custom" to use the manual quality fields below.
	Preset string `json:"preset,omitempty"`

	// Output size
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Visualization
	RenderMode string `json:"render_mode,omitempty"`
	ColorMode  string `json:"color_mode,omitempty"`
	Background string `json:"background,omitempty"`
	Camera     string `json:"camera,omitempty"`

	// Selection filter restricting which atoms/residues are rendered.
	Selection string `json:"selection,omitempty"`

	// Cartoon settings
	CartoonStyle        string  `json:"cartoon_style,omitempty"`
	CartoonFancyHelices string  `json:"cartoon_fancy_helices,omitempty"`
	CartoonFancySheets  string  `json:"cartoon_fancy_sheets,omitempty"`
	CartoonFlatSheets   string  `json:"cartoon_flat_sheets,omitempty"`
	CartoonSmoothLoops  *int    `json:"cartoon_smooth_loops,omitempty"`
	CartoonTubeRadius   float64 `json:"cartoon_tube_radius,omitempty"`
	CartoonHelixRadius  float64 `json:"cartoon_helix_radius,omitempty"`
	CartoonLoopRadius   float64 `json:"cartoon_loop_radius,omitempty"`

	// Stick/sphere settings
	StickRadius float64 `json:"stick_radius,omitempty"`
	StickBall   string  `json:"stick_ball,omitempty"`
	SphereScale float64 `json:"sphere_scale,omitempty"`
	SphereMode  string  `json:"sphere_mode,omitempty"`

	// Line/mesh/dot settings
	LineWidth  float64 `json:"line_width,omitempty"`
	MeshWidth  float64 `json:"mesh_width,omitempty"`
	DotDensity int     `json:"dot_density,omitempty"`

	// Ribbon settings
	RibbonWidth  float64 `json:"ribbon_width,omitempty"`
	RibbonSmooth int     `json:"ribbon_smooth,omitempty"`

	// Color options
	SingleColor     string `json:"single_color,omitempty"`
	ChainColors     string `json:"chain_colors,omitempty"` // "A:cyan,B:green,C:yellow"
	SpectrumPalette string `json:"spectrum_palette,omitempty"`

	// Background color when Background is "custom".
	BackgroundColor string `json:"background_color,omitempty"`

	// Transparency scalars, each in [0,1].
	Transparency        float64 `json:"transparency,omitempty"`
	CartoonTransparency float64 `json:"cartoon_transparency,omitempty"`
	SurfaceTransparency float64 `json:"surface_transparency,omitempty"`
	StickTransparency   float64 `json:"stick_transparency,omitempty"`
	SphereTransparency  float64 `json:"sphere_transparency,omitempty"`

	// Camera options
	RotateX    *float64 `json:"rotate_x,omitempty"`
	RotateY    *float64 `json:"rotate_y,omitempty"`
	RotateZ    float64  `json:"rotate_z,omitempty"`
	ZoomFactor float64  `json:"zoom_factor,omitempty"`

	// Ray tracing (used when Preset is "custom"). Antialias is a descriptive
	// label whose leading integer token carries the level, e.g.
	// "2 (2x oversample)".
	Antialias      string   `json:"antialias,omitempty"`
	RayShadows     string   `json:"ray_shadows,omitempty"`
	TraceMode      string   `json:"trace_mode,omitempty"`
	TraceGain      *float64 `json:"trace_gain,omitempty"`
	TraceColor     string   `json:"trace_color,omitempty"`
	SurfaceQuality *int     `json:"surface_quality,omitempty"`

	// Lighting (used when Preset is "custom", except the scalars which apply
	// to every preset).
	AmbientOcclusion      string   `json:"ambient_occlusion,omitempty"`
	AmbientOcclusionScale float64  `json:"ambient_occlusion_scale,omitempty"`
	DepthCue              string   `json:"depth_cue,omitempty"`
	Ambient               *float64 `json:"ambient,omitempty"`
	Direct                *float64 `json:"direct,omitempty"`
	Reflect               *float64 `json:"reflect,omitempty"`
	SpecCount             *int     `json:"spec_count,omitempty"`
	SpecReflect           *float64 `json:"spec_reflect,omitempty"`
	SpecDirect            float64  `json:"spec_direct,omitempty"`
	Shininess             *int     `json:"shininess,omitempty"`
	LightCount            int      `json:"light_count,omitempty"`
	TwoSidedLighting      string   `json:"two_sided_lighting,omitempty"`
	FogAmount             *float64 `json:"fog_amount,omitempty"`

	// Labels
	ShowLabels     string  `json:"show_labels,omitempty"`
	LabelSelection string  `json:"label_selection,omitempty"`
	LabelContent   string  `json:"label_content,omitempty"`
	LabelSize      float64 `json:"label_size,omitempty"`
	LabelColor     string  `json:"label_color,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Float64 returns a pointer to v, for the optional Params fields whose
// domain includes zero.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for the optional Params fields whose domain
// includes zero.
func Int(v int) *int { return &v }

// AsBool reports whether a boolean-like token is truthy. The accepted truthy
// set is fixed; anything else, including the empty string, is false.
func AsBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

// clampFloat bounds v to [lo, hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampInt bounds v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ValidateAndSetDefaults fills unset fields with their defaults and clamps
// every scalar to its documented domain, so the compiler never emits an
// out-of-range value into the generated script. Idempotent.
func (p *Params) ValidateAndSetDefaults() {
	if p.validated {
		return
	}

	if p.Preset == "" {
		p.Preset = DefaultPreset
	}
	if p.Width == 0 {
		p.Width = DefaultWidth
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	p.Width = clampInt(p.Width, MinDimension, MaxDimension)
	p.Height = clampInt(p.Height, MinDimension, MaxDimension)

	if p.RenderMode == "" {
		p.RenderMode = string(ModeCartoon)
	}
	if p.ColorMode == "" {
		p.ColorMode = string(ColorByChain)
	}
	if p.Background == "" {
		p.Background = "white"
	}
	if p.Camera == "" {
		p.Camera = string(CameraIso)
	}
	if p.Selection == "" {
		p.Selection = "all"
	}

	if p.CartoonStyle == "" {
		p.CartoonStyle = "oval"
	}
	if p.CartoonFancyHelices == "" {
		p.CartoonFancyHelices = "true"
	}
	if p.CartoonFancySheets == "" {
		p.CartoonFancySheets = "true"
	}
	if p.CartoonSmoothLoops == nil {
		p.CartoonSmoothLoops = Int(5)
	}
	if p.CartoonTubeRadius == 0 {
		p.CartoonTubeRadius = 0.5
	}
	if p.CartoonHelixRadius == 0 {
		p.CartoonHelixRadius = 2.25
	}
	if p.CartoonLoopRadius == 0 {
		p.CartoonLoopRadius = 0.3
	}
	*p.CartoonSmoothLoops = clampInt(*p.CartoonSmoothLoops, 0, 20)
	p.CartoonTubeRadius = clampFloat(p.CartoonTubeRadius, 0.1, 2.0)
	p.CartoonHelixRadius = clampFloat(p.CartoonHelixRadius, 0.5, 5.0)
	p.CartoonLoopRadius = clampFloat(p.CartoonLoopRadius, 0.1, 1.0)

	if p.StickRadius == 0 {
		p.StickRadius = 0.25
	}
	if p.SphereScale == 0 {
		p.SphereScale = 1.0
	}
	if p.SphereMode == "" {
		p.SphereMode = "default"
	}
	p.StickRadius = clampFloat(p.StickRadius, 0.05, 1.0)
	p.SphereScale = clampFloat(p.SphereScale, 0.1, 3.0)

	if p.LineWidth == 0 {
		p.LineWidth = 1.5
	}
	if p.MeshWidth == 0 {
		p.MeshWidth = 0.5
	}
	if p.DotDensity == 0 {
		p.DotDensity = 3
	}
	p.LineWidth = clampFloat(p.LineWidth, 0.5, 10.0)
	p.MeshWidth = clampFloat(p.MeshWidth, 0.1, 2.0)
	p.DotDensity = clampInt(p.DotDensity, 1, 5)

	if p.RibbonWidth == 0 {
		p.RibbonWidth = 3.0
	}
	p.RibbonWidth = clampFloat(p.RibbonWidth, 0.5, 10.0)
	p.RibbonSmooth = clampInt(p.RibbonSmooth, 0, 10)

	if p.SingleColor == "" {
		p.SingleColor = "deepsalmon"
	}
	if p.SpectrumPalette == "" {
		p.SpectrumPalette = DefaultPalette
	}
	if p.BackgroundColor == "" {
		p.BackgroundColor = "white"
	}

	p.Transparency = clampFloat(p.Transparency, 0, 1)
	p.CartoonTransparency = clampFloat(p.CartoonTransparency, 0, 1)
	p.SurfaceTransparency = clampFloat(p.SurfaceTransparency, 0, 1)
	p.StickTransparency = clampFloat(p.StickTransparency, 0, 1)
	p.SphereTransparency = clampFloat(p.SphereTransparency, 0, 1)

	if p.RotateX == nil {
		p.RotateX = Float64(45.0)
	}
	if p.RotateY == nil {
		p.RotateY = Float64(30.0)
	}
	if p.ZoomFactor == 0 {
		p.ZoomFactor = 1.5
	}
	*p.RotateX = clampFloat(*p.RotateX, -180, 180)
	*p.RotateY = clampFloat(*p.RotateY, -180, 180)
	p.RotateZ = clampFloat(p.RotateZ, -180, 180)
	p.ZoomFactor = clampFloat(p.ZoomFactor, 0.5, 5.0)

	if p.Antialias == "" {
		p.Antialias = "1 (adaptive)"
	}
	if p.RayShadows == "" {
		p.RayShadows = "true"
	}
	if p.TraceMode == "" {
		p.TraceMode = "normal"
	}
	if p.TraceGain == nil {
		p.TraceGain = Float64(0.12)
	}
	if p.TraceColor == "" {
		p.TraceColor = "black"
	}
	if p.SurfaceQuality == nil {
		p.SurfaceQuality = Int(1)
	}
	*p.TraceGain = clampFloat(*p.TraceGain, 0, 1)
	*p.SurfaceQuality = clampInt(*p.SurfaceQuality, 0, 4)

	if p.AmbientOcclusion == "" {
		p.AmbientOcclusion = "true"
	}
	if p.AmbientOcclusionScale == 0 {
		p.AmbientOcclusionScale = 25.0
	}
	if p.DepthCue == "" {
		p.DepthCue = "true"
	}
	if p.Ambient == nil {
		p.Ambient = Float64(0.6)
	}
	if p.Direct == nil {
		p.Direct = Float64(0.45)
	}
	if p.Reflect == nil {
		p.Reflect = Float64(0.45)
	}
	if p.SpecCount == nil {
		p.SpecCount = Int(4)
	}
	if p.SpecReflect == nil {
		p.SpecReflect = Float64(1.0)
	}
	if p.Shininess == nil {
		p.Shininess = Int(60)
	}
	if p.LightCount == 0 {
		p.LightCount = 6
	}
	if p.TwoSidedLighting == "" {
		p.TwoSidedLighting = "true"
	}
	if p.FogAmount == nil {
		p.FogAmount = Float64(0.5)
	}
	p.AmbientOcclusionScale = clampFloat(p.AmbientOcclusionScale, 1, 100)
	*p.Ambient = clampFloat(*p.Ambient, 0, 1)
	*p.Direct = clampFloat(*p.Direct, 0, 1)
	*p.Reflect = clampFloat(*p.Reflect, 0, 1)
	*p.SpecCount = clampInt(*p.SpecCount, 0, 8)
	*p.SpecReflect = clampFloat(*p.SpecReflect, 0, 2)
	p.SpecDirect = clampFloat(p.SpecDirect, 0, 1)
	*p.Shininess = clampInt(*p.Shininess, 0, 128)
	p.LightCount = clampInt(p.LightCount, 1, 10)
	*p.FogAmount = clampFloat(*p.FogAmount, 0, 1)

	if p.LabelSelection == "" {
		p.LabelSelection = "name CA"
	}
	if p.LabelContent == "" {
		p.LabelContent = "resi"
	}
	if p.LabelSize == 0 {
		p.LabelSize = 20.0
	}
	if p.LabelColor == "" {
		p.LabelColor = "black"
	}
	p.LabelSize = clampFloat(p.LabelSize, 5, 100)

	p.validated = true
}
