// Package pipeline wires selection, decoding, the luminance transform,
// thresholding and rendering into one run.
package pipeline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"greyscale-inspector/internal/luminance"
	"greyscale-inspector/internal/threshold"
)

// Result is the output of the numeric core.
type Result struct {
	Gray   *mat.Dense
	Binary *mat.Dense
}

// ComputeResult derives the grayscale and binary arrays. An all-black image
// returns zero arrays together with luminance.ErrDegenerate; any other error
// leaves Result empty.
func ComputeResult(pixels luminance.PixelArray, t float64, params luminance.Params) (Result, error) {
	gray, err := luminance.Transform(pixels, params)
	if err != nil && !errors.Is(err, luminance.ErrDegenerate) {
		return Result{}, fmt.Errorf("luminance transform failed: %w", err)
	}

	return Result{
		Gray:   gray,
		Binary: threshold.Binarize(gray, t),
	}, err
}
