package figure

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"greyscale-inspector/internal/histogram"
	"greyscale-inspector/internal/luminance"
)

func checkerPanels(t *testing.T, threshold float64) []Panel {
	t.Helper()
	ch := []float64{0, 255, 255, 0}
	pixels, err := luminance.FromChannels(2, 2, ch, ch, ch)
	require.NoError(t, err)

	original := image.NewGray(image.Rect(0, 0, 2, 2))
	original.SetGray(1, 0, color.Gray{Y: 255})
	original.SetGray(0, 1, color.Gray{Y: 255})

	gray := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
	binary := mat.NewDense(2, 2, []float64{0, 1, 1, 0})

	panels, err := BuildPanels(original, pixels, gray, binary, threshold)
	require.NoError(t, err)
	return panels
}

func TestBuildPanelsOrderAndTitles(t *testing.T) {
	panels := checkerPanels(t, 0.7)

	titles := make([]string, len(panels))
	kinds := make([]Kind, len(panels))
	for i, p := range panels {
		titles[i] = p.Title
		kinds[i] = p.Kind
	}

	assert.Equal(t, []string{
		"Original Image",
		"Grayscale Image",
		"Histogram of Grayscale Image",
		"Binary Image (Threshold = 0.7)",
		"Histogram of Red Channel",
		"Histogram of Green Channel",
		"Histogram of Blue Channel",
		"Cumulative Histogram of Grayscale Image",
	}, titles)
	assert.Equal(t, []Kind{
		ImagePanel, ImagePanel, HistogramPanel, ImagePanel,
		HistogramPanel, HistogramPanel, HistogramPanel, HistogramPanel,
	}, kinds)
}

func TestBuildPanelsHistograms(t *testing.T) {
	panels := checkerPanels(t, 0.5)

	gray := panels[2]
	assert.Equal(t, histogram.UnitRange, gray.Range)
	assert.Len(t, gray.Counts, histogram.Bins)
	assert.Equal(t, 2.0, gray.Counts[0])
	assert.Equal(t, 2.0, gray.Counts[histogram.Bins-1])
	assert.Equal(t, "Pixel Intensity", gray.XLabel)
	assert.Equal(t, "Frequency", gray.YLabel)

	for _, p := range panels[4:7] {
		assert.Equal(t, histogram.ChannelRange, p.Range)
		assert.Equal(t, 2.0, p.Counts[0], p.Title)
		assert.Equal(t, 2.0, p.Counts[255], p.Title)
		assert.Equal(t, 4.0, floats.Sum(p.Counts), p.Title)
	}

	cumulative := panels[7]
	assert.True(t, cumulative.Cumulative)
	assert.Equal(t, "Cumulative Frequency", cumulative.YLabel)
	assert.Equal(t, 4.0, cumulative.Counts[len(cumulative.Counts)-1])
	for i := 1; i < len(cumulative.Counts); i++ {
		assert.GreaterOrEqual(t, cumulative.Counts[i], cumulative.Counts[i-1])
	}
}

func TestBuildPanelsImages(t *testing.T) {
	panels := checkerPanels(t, 0.5)

	binary := panels[3].Image
	require.NotNil(t, binary)
	assert.Equal(t, image.Rect(0, 0, 2, 2), binary.Bounds())

	r, _, _, _ := binary.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	r, _, _, _ = binary.At(0, 0).RGBA()
	assert.Zero(t, r)
}

func TestFormatThreshold(t *testing.T) {
	assert.Equal(t, "0.5", FormatThreshold(0.5))
	assert.Equal(t, "0.75", FormatThreshold(0.75))
	assert.Equal(t, "1.0", FormatThreshold(1))
	assert.Equal(t, "0.0", FormatThreshold(0))
}
