package luminance

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
)

// GrayImage renders an intensity array with its [min,max] stretched over the
// full 16-bit range. Constant arrays keep their value clamped to [0,1].
func GrayImage(m mat.Matrix) *image.Gray16 {
	rows, cols := m.Dims()
	img := image.NewGray16(image.Rect(0, 0, cols, rows))
	if rows == 0 || cols == 0 {
		return img
	}

	lo, hi := mat.Min(m), mat.Max(m)
	scale := func(v float64) float64 {
		if hi > lo {
			return (v - lo) / (hi - lo)
		}
		return math.Max(0, math.Min(1, v))
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(scale(m.At(y, x)) * math.MaxUint16))})
		}
	}
	return img
}
