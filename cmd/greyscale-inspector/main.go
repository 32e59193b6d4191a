package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"greyscale-inspector/internal/config"
	"greyscale-inspector/internal/figure"
	"greyscale-inspector/internal/gui"
	"greyscale-inspector/internal/imageio"
	"greyscale-inspector/internal/imageio/opencv"
	"greyscale-inspector/internal/logger"
	"greyscale-inspector/internal/luminance"
	"greyscale-inspector/internal/pipeline"
	"greyscale-inspector/internal/shutdown"
	"greyscale-inspector/internal/threshold"
)

const (
	AppName    = "Greyscale Inspector"
	AppID      = "com.imageprocessing.greyscale-inspector"
	AppVersion = "1.0.0"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.FromEnvironment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}

	appLogger := logger.NewConsoleLogger(cfg.LogLevel)
	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"gamma":      cfg.Gamma,
		"decoder":    cfg.Decoder,
		"headless":   cfg.Headless(),
	})

	shutdownManager := shutdown.NewManager(context.Background(), appLogger)
	shutdownManager.Listen()
	defer shutdownManager.Shutdown()

	composer, err := figure.NewComposer(cfg.WindowWidth, cfg.WindowHeight)
	if err != nil {
		appLogger.Error("Application", err, nil)
		return 1
	}

	runner := &pipeline.Runner{
		Decoder:    newDecoder(cfg, appLogger),
		Thresholds: threshold.NewPrompter(os.Stdin, os.Stdout, appLogger),
		Params:     luminance.DefaultParams().WithGamma(cfg.Gamma),
		Logger:     appLogger,
		Out:        os.Stdout,
	}
	if cfg.ImagePath != "" {
		runner.Selector = imageio.PathSelector{Path: cfg.ImagePath}
	}
	if cfg.OutputPath != "" {
		runner.Renderer = &figure.FileRenderer{Path: cfg.OutputPath, Composer: composer, Logger: appLogger}
	}

	if cfg.Headless() {
		return exitCode(runner.Run(shutdownManager.Context()), appLogger)
	}
	return runWindowed(cfg, runner, composer, shutdownManager, appLogger)
}

// runWindowed keeps the Fyne loop on the main goroutine and runs the
// pipeline beside it.
func runWindowed(cfg config.Config, runner *pipeline.Runner, composer *figure.Composer, shutdownManager *shutdown.Manager, appLogger logger.Logger) int {
	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	window.CenterOnScreen()
	window.SetOnClosed(shutdownManager.Shutdown)
	shutdownManager.Register(func() { fyne.Do(fyneApp.Quit) })

	view := gui.NewView(window)
	if runner.Selector == nil {
		runner.Selector = gui.NewSelector(view, appLogger)
	}
	// Saving to a file leaves nothing to look at afterwards.
	quitWhenDone := runner.Renderer != nil
	if runner.Renderer == nil {
		runner.Renderer = gui.NewViewer(view, composer, appLogger)
	}

	result := make(chan int, 1)
	go func() {
		err := runner.Run(shutdownManager.Context())
		result <- exitCode(err, appLogger)
		if err != nil || quitWhenDone {
			fyne.Do(fyneApp.Quit)
		}
	}()

	window.ShowAndRun()

	select {
	case code := <-result:
		return code
	default:
		// Window closed while the pipeline was still waiting on input.
		return 0
	}
}

func newDecoder(cfg config.Config, log logger.Logger) pipeline.Decoder {
	if cfg.Decoder == config.DecoderOpenCV {
		return opencv.NewDecoder(log)
	}
	return imageio.NewStdDecoder(log)
}

// exitCode maps a run result onto the process status. Cancellation is a
// normal stop.
func exitCode(err error, log logger.Logger) int {
	switch {
	case err == nil, errors.Is(err, pipeline.ErrCancelled):
		return 0
	case errors.Is(err, context.Canceled):
		log.Info("Application", "interrupted", nil)
		return 130
	default:
		log.Error("Application", err, nil)
		return 1
	}
}
