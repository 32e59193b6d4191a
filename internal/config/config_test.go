package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(env(nil))
	require.NoError(t, err)

	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, DefaultGamma, cfg.Gamma)
	assert.Equal(t, DecoderStd, cfg.Decoder)
	assert.Equal(t, DefaultWindowWidth, cfg.WindowWidth)
	assert.Equal(t, DefaultWindowHeight, cfg.WindowHeight)
	assert.Empty(t, cfg.ImagePath)
	assert.False(t, cfg.Headless())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(env(map[string]string{
		"LOG_LEVEL":               "warn",
		"GREYSCALE_GAMMA":         "2.2",
		"GREYSCALE_IMAGE":         " photo.png ",
		"GREYSCALE_OUTPUT":        "figure.png",
		"GREYSCALE_DECODER":       "OpenCV",
		"GREYSCALE_WINDOW_WIDTH":  "1024",
		"GREYSCALE_WINDOW_HEIGHT": "768",
	}))
	require.NoError(t, err)

	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 2.2, cfg.Gamma)
	assert.Equal(t, "photo.png", cfg.ImagePath)
	assert.Equal(t, DecoderOpenCV, cfg.Decoder)
	assert.Equal(t, 1024, cfg.WindowWidth)
	assert.Equal(t, 768, cfg.WindowHeight)
	assert.True(t, cfg.Headless())
}

func TestLoadDebugFlag(t *testing.T) {
	cfg, err := Load(env(map[string]string{"DEBUG": "1"}))
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)

	cfg, err = Load(env(map[string]string{"DEBUG": "1", "LOG_LEVEL": "error"}))
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []map[string]string{
		{"LOG_LEVEL": "loud"},
		{"GREYSCALE_GAMMA": "abc"},
		{"GREYSCALE_GAMMA": "0"},
		{"GREYSCALE_GAMMA": "-1"},
		{"GREYSCALE_GAMMA": "NaN"},
		{"GREYSCALE_DECODER": "magick"},
		{"GREYSCALE_WINDOW_WIDTH": "wide"},
		{"GREYSCALE_WINDOW_HEIGHT": "0"},
		{"GREYSCALE_WINDOW_WIDTH": "479"},
		{"GREYSCALE_WINDOW_HEIGHT": "239"},
	}
	for _, values := range cases {
		_, err := Load(env(values))
		assert.Error(t, err, "%v", values)
	}
}

func TestLoadAcceptsSmallestFigure(t *testing.T) {
	cfg, err := Load(env(map[string]string{
		"GREYSCALE_WINDOW_WIDTH":  "480",
		"GREYSCALE_WINDOW_HEIGHT": "240",
	}))
	require.NoError(t, err)
	assert.Equal(t, 480, cfg.WindowWidth)
	assert.Equal(t, 240, cfg.WindowHeight)
}
