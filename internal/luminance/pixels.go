package luminance

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/mat"
)

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// PixelArray is an H×W×3 image split into red, green and blue planes.
// Samples use the 8-bit scale [0,255] regardless of the source depth.
type PixelArray struct {
	R, G, B *mat.Dense
}

// FromChannels builds a PixelArray from row-major channel slices.
func FromChannels(rows, cols int, r, g, b []float64) (PixelArray, error) {
	if rows <= 0 || cols <= 0 {
		return PixelArray{}, ErrEmptyImage
	}
	for name, ch := range map[string][]float64{"red": r, "green": g, "blue": b} {
		if len(ch) != rows*cols {
			return PixelArray{}, fmt.Errorf("%s channel has %d samples, want %d", name, len(ch), rows*cols)
		}
	}

	return PixelArray{
		R: mat.NewDense(rows, cols, append([]float64(nil), r...)),
		G: mat.NewDense(rows, cols, append([]float64(nil), g...)),
		B: mat.NewDense(rows, cols, append([]float64(nil), b...)),
	}, nil
}

// FromImage splits a decoded image into its color planes. Alpha is dropped.
func FromImage(img image.Image) (PixelArray, error) {
	if img == nil {
		return PixelArray{}, ErrEmptyImage
	}
	bounds := img.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()
	if rows <= 0 || cols <= 0 {
		return PixelArray{}, ErrEmptyImage
	}

	r := make([]float64, rows*cols)
	g := make([]float64, rows*cols)
	b := make([]float64, rows*cols)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*cols + x
			r[i], g[i], b[i] = samples(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}

	return PixelArray{
		R: mat.NewDense(rows, cols, r),
		G: mat.NewDense(rows, cols, g),
		B: mat.NewDense(rows, cols, b),
	}, nil
}

// samples reads straight (non-premultiplied) channel values so transparent
// pixels keep their color, as file decoders report them.
func samples(c color.Color) (r, g, b float64) {
	switch v := c.(type) {
	case color.NRGBA:
		return float64(v.R), float64(v.G), float64(v.B)
	case color.NRGBA64:
		return float64(v.R) / 257, float64(v.G) / 257, float64(v.B) / 257
	}
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return float64(n.R) / 257, float64(n.G) / 257, float64(n.B) / 257
}

// Dims returns the spatial shape.
func (p PixelArray) Dims() (rows, cols int) {
	if p.R == nil {
		return 0, 0
	}
	return p.R.Dims()
}

// Validate checks that all three planes exist and agree in shape.
func (p PixelArray) Validate() error {
	if p.R == nil || p.G == nil || p.B == nil {
		return ErrEmptyImage
	}
	rows, cols := p.R.Dims()
	for _, ch := range []*mat.Dense{p.G, p.B} {
		r, c := ch.Dims()
		if r != rows || c != cols {
			return fmt.Errorf("channel shape %dx%d does not match %dx%d", r, c, rows, cols)
		}
	}
	return nil
}

// Values returns a copy of a channel in row-major order.
func Values(m mat.Matrix) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}
