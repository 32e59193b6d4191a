package pipeline

import (
	"context"
	"image"

	"greyscale-inspector/internal/figure"
)

// FileSelector asks the user for an image. ok is false when the user
// cancelled.
type FileSelector interface {
	SelectImageFile(ctx context.Context) (path string, ok bool, err error)
}

// Decoder turns the selected path into pixels.
type Decoder interface {
	Decode(ctx context.Context, path string) (image.Image, error)
}

// ThresholdSource supplies the binarization cutoff. Invalid input is
// resolved inside the source; errors mean the source itself failed or ctx
// ended before an answer arrived.
type ThresholdSource interface {
	Threshold(ctx context.Context) (float64, error)
}

// Renderer presents the finished panels.
type Renderer interface {
	Render(ctx context.Context, panels []figure.Panel) error
}
