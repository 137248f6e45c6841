// Package output decodes the engine's rendered raster into an in-memory
// pixel buffer.
//
// The raster is forced to a fixed 3-channel RGB layout: any alpha channel is
// discarded, matching the opaque-background directives the script generator
// emits. Samples are normalized to float32 in [0,1] and the single image is
// wrapped as a one-item batch with channel-last layout.
package output

import (
	"bytes"
	"image"
	_ "image/png" // the engine exports PNG

	"os"

	"github.com/molviz/molrender/pkg/errors"
)

// Channels is the fixed sample layout: RGB, no alpha.
const Channels = 3

// Image is a single RGB raster with float32 samples in [0,1], stored
// row-major with channel-last layout (height × width × 3).
type Image struct {
	Width  int
	Height int
	Pix    []float32
}

// At returns the sample for channel c at (x, y).
func (im *Image) At(x, y, c int) float32 {
	return im.Pix[(y*im.Width+x)*Channels+c]
}

// Batch is an ordered set of images. Renders always produce a batch of one;
// the batch shape exists so results compose with multi-image consumers.
type Batch struct {
	Images []*Image
}

// DecodeFile loads the engine's output raster from path. A missing file
// after a successful engine exit signals an engine/script mismatch, not a
// caller error, and is reported as OUTPUT_MISSING.
func DecodeFile(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeOutputMissing,
				"engine did not produce an image (%s missing)", path)
		}
		return nil, errors.Wrap(errors.ErrCodeOutputMissing, err, "cannot read rendered image %s", path)
	}
	return Decode(data)
}

// Decode parses raster bytes into a one-image batch.
func Decode(data []byte) (*Batch, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputMissing, err, "cannot decode rendered image")
	}
	return &Batch{Images: []*Image{fromImage(img)}}, nil
}

// fromImage converts a decoded image to normalized RGB float samples,
// discarding alpha.
func fromImage(img image.Image) *Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := &Image{
		Width:  w,
		Height: h,
		Pix:    make([]float32, w*h*Channels),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit samples; scale to [0,1].
			out.Pix[i] = float32(r) / 0xffff
			out.Pix[i+1] = float32(g) / 0xffff
			out.Pix[i+2] = float32(b) / 0xffff
			i += Channels
		}
	}
	return out
}
