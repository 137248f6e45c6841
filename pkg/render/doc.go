// Package render contains the individual pipeline stages for turning a
// structure reference into a raster image.
//
// # Stages
//
// Each stage lives in its own subpackage and is independently testable:
//
//   - [input]: Resolve a path, URL, or inline payload to a local file
//   - [config]: Compile loosely typed parameters into a typed configuration
//   - [script]: Generate the engine script from a configuration
//   - [engine]: Locate the engine binary and run it as a subprocess
//   - [output]: Decode the rendered raster into a pixel batch
//
// The stages are orchestrated by the pipeline package; nothing here holds
// state between runs.
//
// [input]: https://pkg.go.dev/github.com/molviz/molrender/pkg/render/input
// [config]: https://pkg.go.dev/github.com/molviz/molrender/pkg/render/config
// [script]: https://pkg.go.dev/github.com/molviz/molrender/pkg/render/script
// [engine]: https://pkg.go.dev/github.com/molviz/molrender/pkg/render/engine
// [output]: https://pkg.go.dev/github.com/molviz/molrender/pkg/render/output
package render
