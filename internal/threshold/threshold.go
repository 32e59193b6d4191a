// Package threshold parses the user's cutoff and binarizes grayscale arrays.
package threshold

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// DefaultThreshold replaces any input that cannot be used.
const DefaultThreshold = 0.5

// ErrInvalidThreshold wraps every parse failure.
var ErrInvalidThreshold = errors.New("invalid threshold")

// Parse accepts a single float in [0,1].
func Parse(input string) (float64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: no value entered", ErrInvalidThreshold)
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: could not convert %q to a number", ErrInvalidThreshold, trimmed)
	}
	if math.IsNaN(value) || value < 0 || value > 1 {
		return 0, fmt.Errorf("%w: threshold must be between 0 and 1, got %v", ErrInvalidThreshold, value)
	}
	return value, nil
}

// Resolve returns the parsed threshold, or DefaultThreshold together with the
// reason the input was rejected.
func Resolve(input string) (float64, error) {
	value, err := Parse(input)
	if err != nil {
		return DefaultThreshold, err
	}
	return value, nil
}

// Binarize sets a cell to 1 when gray >= t and to 0 otherwise.
func Binarize(gray mat.Matrix, t float64) *mat.Dense {
	rows, cols := gray.Dims()
	binary := mat.NewDense(rows, cols, nil)
	binary.Apply(func(i, j int, _ float64) float64 {
		if gray.At(i, j) >= t {
			return 1
		}
		return 0
	}, binary)
	return binary
}

// CountForeground returns the number of 1-cells.
func CountForeground(binary mat.Matrix) int {
	return int(mat.Sum(binary))
}
