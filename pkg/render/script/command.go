// Package script lowers a resolved render configuration into an ordered
// sequence of engine commands.
//
// Generation happens in two separate passes: [Generate] builds a typed
// command list (the intermediate representation), and [Script.String]
// serializes it to the engine's text syntax. Keeping the passes apart makes
// the generator testable without invoking the engine and keeps formatting
// concerns out of the lowering logic.
//
// The engine is sensitive to statement order; the sequence emitted by
// Generate is fixed and must not be reordered.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Command is a single engine statement. Implementations are small value
// types, one per statement shape.
type Command interface {
	// line renders the statement in the engine's text syntax, without a
	// trailing newline.
	line() string
}

// Script is an ordered, immutable sequence of engine commands. It is a pure
// function of the configuration and paths it was generated from: identical
// inputs produce byte-identical text.
type Script []Command

// String serializes the script as engine command text, one statement per
// line, with a trailing newline.
func (s Script) String() string {
	var b strings.Builder
	for _, cmd := range s {
		b.WriteString(cmd.line())
		b.WriteByte('\n')
	}
	return b.String()
}

// Reinitialize resets all engine state.
type Reinitialize struct{}

func (Reinitialize) line() string { return "reinitialize" }

// Load reads a structure file into a named object.
type Load struct {
	Path   string
	Object string
}

func (c Load) line() string { return fmt.Sprintf("load %s, %s", quote(c.Path), c.Object) }

// Select creates a named sub-selection from a selection expression.
type Select struct {
	Name string
	Expr string
}

func (c Select) line() string { return fmt.Sprintf("select %s, %s", c.Name, c.Expr) }

// Hide removes a representation from a selection.
type Hide struct {
	Rep string
	Sel string
}

func (c Hide) line() string { return fmt.Sprintf("hide %s, %s", c.Rep, c.Sel) }

// Show enables a representation on a selection.
type Show struct {
	Rep string
	Sel string
}

func (c Show) line() string { return fmt.Sprintf("show %s, %s", c.Rep, c.Sel) }

// CartoonStyle selects the cartoon sub-style for a selection.
type CartoonStyle struct {
	Style string
	Sel   string
}

func (c CartoonStyle) line() string { return fmt.Sprintf("cartoon %s, %s", c.Style, c.Sel) }

// Set assigns an engine setting. Value may be a string, bool, int, or
// float64; booleans serialize as 1/0.
type Set struct {
	Name  string
	Value any
}

func (c Set) line() string { return fmt.Sprintf("set %s, %s", c.Name, formatValue(c.Value)) }

// Color applies a named color to a selection.
type Color struct {
	Color string
	Sel   string
}

func (c Color) line() string { return fmt.Sprintf("color %s, %s", c.Color, c.Sel) }

// Spectrum colors a selection along a palette keyed by an expression
// (residue count, b-factor).
type Spectrum struct {
	Expr    string
	Palette string
	Sel     string
}

func (c Spectrum) line() string { return fmt.Sprintf("spectrum %s, %s, %s", c.Expr, c.Palette, c.Sel) }

// Util invokes an engine utility function verbatim.
type Util struct {
	Call string
}

func (c Util) line() string { return c.Call }

// Background sets the plate color.
type Background struct {
	Color string
}

func (c Background) line() string { return fmt.Sprintf("bg_color %s", c.Color) }

// Orient aligns the camera to a selection's principal axes.
type Orient struct {
	Sel string
}

func (c Orient) line() string { return fmt.Sprintf("orient %s", c.Sel) }

// Turn rotates the camera around an axis by degrees.
type Turn struct {
	Axis    string
	Degrees float64
}

func (c Turn) line() string { return fmt.Sprintf("turn %s, %s", c.Axis, formatValue(c.Degrees)) }

// Zoom frames a selection with the given buffer factor.
type Zoom struct {
	Sel    string
	Factor float64
}

func (c Zoom) line() string { return fmt.Sprintf("zoom %s, %s", c.Sel, formatValue(c.Factor)) }

// Label attaches a text expression to a selection.
type Label struct {
	Sel  string
	Expr string
}

func (c Label) line() string { return fmt.Sprintf("label %s, %s", c.Sel, c.Expr) }

// Export ray-traces the scene and writes the raster to Path at the exact
// requested dimensions.
type Export struct {
	Path   string
	Width  int
	Height int
}

func (c Export) line() string {
	return fmt.Sprintf("png %s, width=%d, height=%d, ray=1", quote(c.Path), c.Width, c.Height)
}

// Quit terminates the engine.
type Quit struct{}

func (Quit) line() string { return "quit" }

// formatValue renders a setting value. Booleans become 1/0 since the engine
// has no boolean literals.
func formatValue(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// safeToken matches strings that need no quoting in the engine's command
// syntax, mirroring shell-quoting safety rules.
var safeToken = regexp.MustCompile(`^[A-Za-z0-9@%+=:,./_-]+$`)

// quote wraps a path in single quotes unless it consists entirely of safe
// characters. Embedded single quotes are escaped shell-style.
func quote(s string) string {
	if s != "" && safeToken.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
