package figure

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"greyscale-inspector/internal/logger"
)

// Save writes img to path, choosing JPEG for .jpg/.jpeg and PNG otherwise.
func Save(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create figure file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close figure file: %w", cerr)
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode figure: %w", err)
	}
	return nil
}

// FileRenderer composes the panels and saves the figure to Path.
type FileRenderer struct {
	Path     string
	Composer *Composer
	Logger   logger.Logger
}

func (r *FileRenderer) Render(ctx context.Context, panels []Panel) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := r.Composer.Compose(panels)
	if err != nil {
		return err
	}
	if err := Save(r.Path, img); err != nil {
		return err
	}

	r.Logger.Info("FigureSaver", "figure saved", map[string]interface{}{
		"path":   r.Path,
		"panels": len(panels),
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	})
	return nil
}
