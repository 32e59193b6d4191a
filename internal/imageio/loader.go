// Package imageio reads raster images from disk.
package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"greyscale-inspector/internal/logger"
)

// ErrDecode wraps every failure to turn a file into pixels.
var ErrDecode = errors.New("failed to decode image")

// Extensions are offered by the file dialog.
var Extensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}

// StdDecoder uses the image package with JPEG, PNG, GIF, BMP, TIFF and WEBP
// registered.
type StdDecoder struct {
	logger logger.Logger
}

func NewStdDecoder(log logger.Logger) *StdDecoder {
	return &StdDecoder{logger: log}
}

func (d *StdDecoder) Decode(ctx context.Context, path string) (image.Image, error) {
	data, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	img, stdFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, filepath.Base(path), err)
	}

	bounds := img.Bounds()
	d.logger.Info("ImageLoader", "image loaded successfully", map[string]interface{}{
		"path":   path,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
		"format": DetectFormat(path, stdFormat),
	})
	return img, nil
}

// ReadFile loads the whole file, honouring cancellation first.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrDecode, filepath.Base(path))
	}
	return data, nil
}

// DetectFormat names the format from the extension, falling back to what the
// decoder reported.
func DetectFormat(path, decoderFormat string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		if decoderFormat != "" {
			return decoderFormat
		}
		return "unknown"
	}
}
