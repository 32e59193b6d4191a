// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"greyscale-inspector/internal/figure"
	"greyscale-inspector/internal/logger"
)

const (
	DefaultGamma        = 1.04
	DefaultWindowWidth  = 1800
	DefaultWindowHeight = 900

	DecoderStd    = "std"
	DecoderOpenCV = "opencv"
)

// Config holds everything the entry point needs to wire the pipeline.
type Config struct {
	LogLevel     zerolog.Level
	Gamma        float64
	ImagePath    string
	OutputPath   string
	Decoder      string
	WindowWidth  int
	WindowHeight int
}

// Headless reports whether neither collaborator needs a window.
func (c Config) Headless() bool {
	return c.ImagePath != "" && c.OutputPath != ""
}

// FromEnvironment loads the configuration from the process environment.
func FromEnvironment() (Config, error) {
	return Load(os.Getenv)
}

// Load builds a Config from getenv, rejecting malformed values.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Gamma:        DefaultGamma,
		ImagePath:    strings.TrimSpace(getenv("GREYSCALE_IMAGE")),
		OutputPath:   strings.TrimSpace(getenv("GREYSCALE_OUTPUT")),
		Decoder:      DecoderStd,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
	}

	level, err := determineLogLevel(getenv)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if raw := strings.TrimSpace(getenv("GREYSCALE_GAMMA")); raw != "" {
		gamma, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("GREYSCALE_GAMMA: %w", err)
		}
		if gamma <= 0 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
			return Config{}, fmt.Errorf("GREYSCALE_GAMMA must be a positive finite number, got %v", gamma)
		}
		cfg.Gamma = gamma
	}

	switch decoder := strings.ToLower(strings.TrimSpace(getenv("GREYSCALE_DECODER"))); decoder {
	case "":
	case DecoderStd, DecoderOpenCV:
		cfg.Decoder = decoder
	default:
		return Config{}, fmt.Errorf("GREYSCALE_DECODER must be %q or %q, got %q", DecoderStd, DecoderOpenCV, decoder)
	}

	if cfg.WindowWidth, err = sizeAtLeast(getenv, "GREYSCALE_WINDOW_WIDTH", DefaultWindowWidth, figure.MinWidth); err != nil {
		return Config{}, err
	}
	if cfg.WindowHeight, err = sizeAtLeast(getenv, "GREYSCALE_WINDOW_HEIGHT", DefaultWindowHeight, figure.MinHeight); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// determineLogLevel honours LOG_LEVEL first and falls back to DEBUG=1.
func determineLogLevel(getenv func(string) string) (zerolog.Level, error) {
	if value := getenv("LOG_LEVEL"); value != "" {
		level, err := logger.ParseLevel(value)
		if err != nil {
			return zerolog.InfoLevel, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		return level, nil
	}
	if getenv("DEBUG") == "1" {
		return zerolog.DebugLevel, nil
	}
	return zerolog.InfoLevel, nil
}

// sizeAtLeast reads a pixel size that must leave room for every figure panel.
func sizeAtLeast(getenv func(string) string, key string, fallback, minimum int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if value < minimum {
		return 0, fmt.Errorf("%s must be at least %d, got %d", key, minimum, value)
	}
	return value, nil
}
