package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const placeholderText = "Select an image to inspect"

// View owns the single application window. Every method must run on the
// Fyne event loop; callers on other goroutines wrap calls in fyne.Do.
type View struct {
	window fyne.Window
	status *widget.Label
}

func NewView(window fyne.Window) *View {
	status := widget.NewLabel(placeholderText)
	window.SetContent(container.NewCenter(status))

	return &View{
		window: window,
		status: status,
	}
}

func (v *View) Window() fyne.Window {
	return v.window
}

func (v *View) SetStatus(text string) {
	v.status.SetText(text)
}

// ShowFigure replaces the window content with the composed figure, scaled to
// fit while keeping its aspect ratio.
func (v *View) ShowFigure(img image.Image) {
	figureImage := canvas.NewImageFromImage(img)
	figureImage.FillMode = canvas.ImageFillContain
	figureImage.ScaleMode = canvas.ImageScaleSmooth
	v.window.SetContent(figureImage)
}
