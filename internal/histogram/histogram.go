// Package histogram bins intensity samples into equal-width histograms.
package histogram

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bins is the bin count used by every diagnostic histogram.
const Bins = 256

// Range is a closed [Lo, Hi] interval of sample values.
type Range struct {
	Lo, Hi float64
}

var (
	// UnitRange covers normalized grayscale values.
	UnitRange = Range{Lo: 0, Hi: 1}
	// ChannelRange covers 8-bit channel samples with one bin per level.
	ChannelRange = Range{Lo: 0, Hi: 256}
)

// Edges returns the bins+1 bin boundaries spanning r.
func Edges(bins int, r Range) []float64 {
	return floats.Span(make([]float64, bins+1), r.Lo, r.Hi)
}

// Compute counts values into equal-width bins over r. The last bin is closed
// on the right; values outside r and NaNs are ignored.
func Compute(values []float64, bins int, r Range) ([]float64, error) {
	if bins < 1 {
		return nil, fmt.Errorf("bin count must be positive, got %d", bins)
	}
	if !(r.Hi > r.Lo) {
		return nil, fmt.Errorf("empty histogram range [%v, %v]", r.Lo, r.Hi)
	}

	inRange := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= r.Lo && v <= r.Hi {
			inRange = append(inRange, v)
		}
	}
	sort.Float64s(inRange)

	dividers := Edges(bins, r)
	dividers[bins] = math.Nextafter(r.Hi, math.Inf(1))

	return stat.Histogram(nil, dividers, inRange, nil), nil
}

// Cumulative returns the running total of counts.
func Cumulative(counts []float64) []float64 {
	if len(counts) == 0 {
		return []float64{}
	}
	return floats.CumSum(make([]float64, len(counts)), counts)
}
