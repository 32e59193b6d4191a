// Package figure lays the diagnostic panels out into a single image.
package figure

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"greyscale-inspector/internal/histogram"
	"greyscale-inspector/internal/luminance"
)

type Kind int

const (
	ImagePanel Kind = iota
	HistogramPanel
)

// Panel is one titled region of the figure.
type Panel struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	// Image is set for ImagePanel.
	Image image.Image

	// Counts, Range and Color are set for HistogramPanel.
	Counts     []float64
	Range      histogram.Range
	Color      string
	Cumulative bool
}

const (
	intensityLabel  = "Pixel Intensity"
	frequencyLabel  = "Frequency"
	cumulativeLabel = "Cumulative Frequency"
	barAlpha        = 0.75
)

// BuildPanels produces the eight diagnostic panels in display order.
func BuildPanels(original image.Image, pixels luminance.PixelArray, gray, binary mat.Matrix, threshold float64) ([]Panel, error) {
	grayValues := luminance.Values(gray)

	grayCounts, err := histogram.Compute(grayValues, histogram.Bins, histogram.UnitRange)
	if err != nil {
		return nil, fmt.Errorf("grayscale histogram: %w", err)
	}

	channels := []struct {
		name  string
		color string
		plane mat.Matrix
	}{
		{"Red", "#ff0000", pixels.R},
		{"Green", "#008000", pixels.G},
		{"Blue", "#0000ff", pixels.B},
	}
	channelPanels := make([]Panel, 0, len(channels))
	for _, ch := range channels {
		counts, err := histogram.Compute(luminance.Values(ch.plane), histogram.Bins, histogram.ChannelRange)
		if err != nil {
			return nil, fmt.Errorf("%s channel histogram: %w", ch.name, err)
		}
		channelPanels = append(channelPanels, Panel{
			Kind:   HistogramPanel,
			Title:  fmt.Sprintf("Histogram of %s Channel", ch.name),
			XLabel: intensityLabel,
			YLabel: frequencyLabel,
			Counts: counts,
			Range:  histogram.ChannelRange,
			Color:  ch.color,
		})
	}

	panels := []Panel{
		{
			Kind:  ImagePanel,
			Title: "Original Image",
			Image: original,
		},
		{
			Kind:  ImagePanel,
			Title: "Grayscale Image",
			Image: luminance.GrayImage(gray),
		},
		{
			Kind:   HistogramPanel,
			Title:  "Histogram of Grayscale Image",
			XLabel: intensityLabel,
			YLabel: frequencyLabel,
			Counts: grayCounts,
			Range:  histogram.UnitRange,
			Color:  "#000000",
		},
		{
			Kind:  ImagePanel,
			Title: fmt.Sprintf("Binary Image (Threshold = %s)", FormatThreshold(threshold)),
			Image: luminance.GrayImage(binary),
		},
	}
	panels = append(panels, channelPanels...)
	panels = append(panels, Panel{
		Kind:       HistogramPanel,
		Title:      "Cumulative Histogram of Grayscale Image",
		XLabel:     intensityLabel,
		YLabel:     cumulativeLabel,
		Counts:     histogram.Cumulative(grayCounts),
		Range:      histogram.UnitRange,
		Color:      "#000000",
		Cumulative: true,
	})

	return panels, nil
}

// FormatThreshold prints whole numbers with one decimal ("1.0") and
// everything else in shortest form ("0.75").
func FormatThreshold(t float64) string {
	if t == math.Trunc(t) {
		return strconv.FormatFloat(t, 'f', 1, 64)
	}
	return strconv.FormatFloat(t, 'g', -1, 64)
}
