package figure

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greyscale-inspector/internal/logger"
)

func TestComposeProducesFigureOfRequestedSize(t *testing.T) {
	composer, err := NewComposer(1200, 600)
	require.NoError(t, err)

	img, err := composer.Compose(checkerPanels(t, 0.5))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1200, 600), img.Bounds())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
}

func TestComposeRejectsBadInput(t *testing.T) {
	composer, err := NewComposer(1200, 600)
	require.NoError(t, err)

	_, err = composer.Compose(nil)
	assert.Error(t, err)

	_, err = composer.Compose([]Panel{{Kind: ImagePanel, Title: "empty"}})
	assert.Error(t, err)

	_, err = composer.Compose([]Panel{{Kind: HistogramPanel, Title: "bad", Counts: []float64{1}, Color: "red"}})
	assert.Error(t, err)

	small, err := NewComposer(100, 100)
	require.NoError(t, err)
	_, err = small.Compose(checkerPanels(t, 0.5))
	assert.Error(t, err)
}

func TestComposeAcceptsMinimumFigure(t *testing.T) {
	composer, err := NewComposer(MinWidth, MinHeight)
	require.NoError(t, err)

	img, err := composer.Compose(checkerPanels(t, 0.5))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, MinWidth, MinHeight), img.Bounds())
}

func TestFitImageKeepsAspectRatio(t *testing.T) {
	up := fitImage(image.NewGray(image.Rect(0, 0, 2, 1)), 100, 100)
	assert.Equal(t, image.Rect(0, 0, 100, 50), up.Bounds())

	down := fitImage(image.NewGray(image.Rect(0, 0, 400, 200)), 100, 100)
	assert.Equal(t, image.Rect(0, 0, 100, 50), down.Bounds())
}

func TestBarColorBlendsWithWhite(t *testing.T) {
	c, err := barColor("#000000")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, c.R, 1e-9)
	assert.InDelta(t, 0.25, c.G, 1e-9)
	assert.InDelta(t, 0.25, c.B, 1e-9)
}

func TestFileRendererWritesPNG(t *testing.T) {
	composer, err := NewComposer(800, 400)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "figure.png")
	renderer := &FileRenderer{Path: path, Composer: composer, Logger: logger.Nop()}
	require.NoError(t, renderer.Render(context.Background(), checkerPanels(t, 0.5)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 400), img.Bounds())
}

func TestSaveChoosesEncoderByExtension(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(1, 1, color.Gray{Y: 200})

	path := filepath.Join(t.TempDir(), "figure.JPG")
	require.NoError(t, Save(path, img))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, data[:2])
}
