// Package opencv decodes images through gocv.
package opencv

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"gocv.io/x/gocv"

	"greyscale-inspector/internal/imageio"
	"greyscale-inspector/internal/logger"
)

// Decoder decodes through OpenCV, which reads some TIFF and JPEG
// variants the Go decoders reject.
type Decoder struct {
	logger logger.Logger
}

func NewDecoder(log logger.Logger) *Decoder {
	return &Decoder{logger: log}
}

func (d *Decoder) Decode(ctx context.Context, path string) (image.Image, error) {
	data, err := imageio.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", imageio.ErrDecode, filepath.Base(path), err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: %s: OpenCV returned an empty image", imageio.ErrDecode, filepath.Base(path))
	}

	// ToImage swaps OpenCV's BGR order into RGBA.
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", imageio.ErrDecode, filepath.Base(path), err)
	}

	d.logger.Info("ImageLoader", "image loaded successfully", map[string]interface{}{
		"path":     path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
		"format":   imageio.DetectFormat(path, ""),
		"decoder":  "opencv",
	})
	return img, nil
}
