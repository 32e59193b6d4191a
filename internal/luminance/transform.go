// Package luminance turns RGB planes into a normalized, gamma-weighted
// grayscale array.
package luminance

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerate marks an image whose luminance is zero everywhere. The
// grayscale array returned with it is all zeros.
var ErrDegenerate = errors.New("image luminance is zero everywhere")

// Params controls the channel weighting.
type Params struct {
	Gamma   float64
	WeightR float64
	WeightG float64
	WeightB float64
}

// DefaultParams uses Rec. 709 weights with a 1.04 exponent.
func DefaultParams() Params {
	return Params{
		Gamma:   1.04,
		WeightR: 0.2126,
		WeightG: 0.7152,
		WeightB: 0.0722,
	}
}

// WithGamma returns a copy of p using gamma.
func (p Params) WithGamma(gamma float64) Params {
	p.Gamma = gamma
	return p
}

// Raw computes wr·r^γ + wg·g^γ + wb·b^γ per pixel. Samples must be non-negative.
func Raw(p PixelArray, params Params) *mat.Dense {
	rows, cols := p.Dims()
	raw := mat.NewDense(rows, cols, nil)
	raw.Apply(func(i, j int, _ float64) float64 {
		return params.WeightR*math.Pow(p.R.At(i, j), params.Gamma) +
			params.WeightG*math.Pow(p.G.At(i, j), params.Gamma) +
			params.WeightB*math.Pow(p.B.At(i, j), params.Gamma)
	}, raw)
	return raw
}

// Transform returns Raw divided by its maximum, so the brightest pixel is
// exactly 1. A zero maximum yields zeros and ErrDegenerate.
func Transform(p PixelArray, params Params) (*mat.Dense, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	raw := Raw(p, params)
	peak := mat.Max(raw)
	if peak == 0 {
		rows, cols := raw.Dims()
		return mat.NewDense(rows, cols, nil), ErrDegenerate
	}

	raw.Apply(func(_, _ int, v float64) float64 {
		return v / peak
	}, raw)
	return raw, nil
}
