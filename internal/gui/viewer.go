package gui

import (
	"context"

	"fyne.io/fyne/v2"

	"greyscale-inspector/internal/figure"
	"greyscale-inspector/internal/logger"
)

// Viewer composes the panels and shows the figure in the window.
type Viewer struct {
	view     *View
	composer *figure.Composer
	logger   logger.Logger
}

func NewViewer(view *View, composer *figure.Composer, log logger.Logger) *Viewer {
	return &Viewer{view: view, composer: composer, logger: log}
}

func (v *Viewer) Render(ctx context.Context, panels []figure.Panel) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := v.composer.Compose(panels)
	if err != nil {
		return err
	}

	fyne.Do(func() {
		v.view.ShowFigure(img)
	})

	v.logger.Info("Viewer", "figure displayed", map[string]interface{}{
		"panels": len(panels),
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	})
	return nil
}
