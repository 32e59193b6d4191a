package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"greyscale-inspector/internal/figure"
	"greyscale-inspector/internal/logger"
	"greyscale-inspector/internal/luminance"
	"greyscale-inspector/internal/threshold"
	"greyscale-inspector/internal/timing"
)

// ErrCancelled is returned when no file was selected.
var ErrCancelled = errors.New("no file selected")

// Runner executes the pipeline once.
type Runner struct {
	Selector   FileSelector
	Decoder    Decoder
	Thresholds ThresholdSource
	Renderer   Renderer
	Params     luminance.Params
	Logger     logger.Logger
	// Out receives the user-facing messages.
	Out io.Writer

	timing *timing.Tracker
}

// Run selects, decodes, computes and renders. A cancelled selection returns
// ErrCancelled before anything is decoded; a decode failure returns before
// anything is rendered. When ctx ends, ctx.Err() is returned unwrapped.
func (r *Runner) Run(ctx context.Context) error {
	r.timing = timing.NewTracker()
	defer r.logTimings()

	tctx := r.timing.StartTiming("select")
	path, ok, err := r.Selector.SelectImageFile(ctx)
	r.timing.EndTiming(tctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("file selection failed: %w", err)
	}
	if !ok {
		fmt.Fprintln(r.Out, "No file selected. Exiting program.")
		r.Logger.Info("Pipeline", "file selection cancelled", nil)
		return ErrCancelled
	}

	tctx = r.timing.StartTiming("decode")
	img, err := r.Decoder.Decode(ctx, path)
	r.timing.EndTiming(tctx)
	if err != nil {
		fmt.Fprintf(r.Out, "An error occurred while loading the image: %v\n", err)
		r.Logger.Error("Pipeline", err, map[string]interface{}{"path": path})
		return err
	}

	pixels, err := luminance.FromImage(img)
	if err != nil {
		fmt.Fprintf(r.Out, "An error occurred while loading the image: %v\n", err)
		return fmt.Errorf("%s: %w", path, err)
	}

	t, err := r.Thresholds.Threshold(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tctx = r.timing.StartTiming("compute")
	result, err := ComputeResult(pixels, t, r.Params)
	r.timing.EndTiming(tctx)
	switch {
	case errors.Is(err, luminance.ErrDegenerate):
		r.Logger.Warning("Pipeline", "image is black everywhere, grayscale left at zero", map[string]interface{}{
			"path": path,
		})
	case err != nil:
		return err
	}

	rows, cols := pixels.Dims()
	r.Logger.Info("Pipeline", "image binarized", map[string]interface{}{
		"width":      cols,
		"height":     rows,
		"threshold":  t,
		"gamma":      r.Params.Gamma,
		"foreground": threshold.CountForeground(result.Binary),
	})

	tctx = r.timing.StartTiming("panels")
	panels, err := figure.BuildPanels(img, pixels, result.Gray, result.Binary, t)
	r.timing.EndTiming(tctx)
	if err != nil {
		return fmt.Errorf("failed to build panels: %w", err)
	}

	tctx = r.timing.StartTiming("render")
	defer r.timing.EndTiming(tctx)
	if err := r.Renderer.Render(ctx, panels); err != nil {
		return fmt.Errorf("failed to render figure: %w", err)
	}
	return nil
}

func (r *Runner) logTimings() {
	for _, op := range r.timing.Operations() {
		r.Logger.Debug("Pipeline", "stage finished", map[string]interface{}{
			"stage":    op,
			"duration": r.timing.GetTimings(op),
		})
	}
	r.Logger.Debug("Pipeline", "run finished", map[string]interface{}{
		"total": r.timing.Total(),
	})
}
