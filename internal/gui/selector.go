// Package gui provides the Fyne-backed file picker and figure viewer.
package gui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"greyscale-inspector/internal/imageio"
	"greyscale-inspector/internal/logger"
)

const dialogScale = 0.8

type selection struct {
	path string
	ok   bool
	err  error
}

// Selector asks for an image with the Fyne open-file dialog.
type Selector struct {
	view   *View
	logger logger.Logger
}

func NewSelector(view *View, log logger.Logger) *Selector {
	return &Selector{view: view, logger: log}
}

// SelectImageFile blocks until the dialog closes or ctx ends. It must not be
// called from the Fyne event loop.
func (s *Selector) SelectImageFile(ctx context.Context) (string, bool, error) {
	done := make(chan selection, 1)

	fyne.Do(func() {
		s.view.SetStatus("Select an Image File")

		window := s.view.Window()
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			done <- selectionFromReader(reader, err)
		}, window)
		fileDialog.SetFilter(storage.NewExtensionFileFilter(imageio.Extensions))
		fileDialog.SetConfirmText("Open")

		size := window.Canvas().Size()
		fileDialog.Resize(fyne.NewSize(size.Width*dialogScale, size.Height*dialogScale))
		fileDialog.Show()
	})

	select {
	case choice := <-done:
		if choice.ok {
			s.logger.Debug("FileSelector", "file selected", map[string]interface{}{
				"path": choice.path,
			})
		}
		return choice.path, choice.ok, choice.err
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// selectionFromReader turns the dialog callback into a path. The reader is
// closed immediately; the decoder reopens the file itself.
func selectionFromReader(reader fyne.URIReadCloser, err error) selection {
	if err != nil {
		return selection{err: fmt.Errorf("file dialog failed: %w", err)}
	}
	if reader == nil {
		return selection{}
	}

	uri := reader.URI()
	if cerr := reader.Close(); cerr != nil {
		return selection{err: fmt.Errorf("failed to close %s: %w", uri.Name(), cerr)}
	}
	if uri.Scheme() != "file" {
		return selection{err: fmt.Errorf("unsupported location %s", uri.String())}
	}
	return selection{path: uri.Path(), ok: true}
}
