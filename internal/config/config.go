// Package config resolves runtime settings for the happycolor
// commands. Values resolve in order: built-in defaults, then an
// optional happycolor.toml in the working directory, then HAPPYCOLOR_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"

	"github.com/noutice/happy-color-poc/pkg/svg"
)

// FileName is the config file looked up in the working directory.
const FileName = "happycolor.toml"

// Config holds runtime settings shared by the GUI and the CLI.
type Config struct {
	LogLevel     string  `toml:"log_level" envconfig:"LOG_LEVEL"`
	WindowWidth  int     `toml:"window_width" envconfig:"WINDOW_WIDTH"`
	WindowHeight int     `toml:"window_height" envconfig:"WINDOW_HEIGHT"`
	RenderScale  float64 `toml:"render_scale" envconfig:"RENDER_SCALE"`
	Background   string  `toml:"background" envconfig:"BACKGROUND"`
	OutputPath   string  `toml:"output_path" envconfig:"OUTPUT_PATH"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "info",
		WindowWidth:  1024,
		WindowHeight: 768,
		RenderScale:  2.0,
		Background:   "#ffffff",
		OutputPath:   "out.png",
	}
}

// Load resolves configuration from defaults, the optional config file
// and the environment.
func Load() (*Config, error) {
	return LoadFile(FileName)
}

// LoadFile resolves configuration using the given TOML file path. A
// missing file is not an error; the defaults and environment still
// apply.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := envconfig.Process("happycolor", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return &cfg, nil
}

// Level parses the configured log level, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// BackgroundColor resolves the configured background with the same
// color grammar documents use.
func (c *Config) BackgroundColor() color.Color {
	col := svg.ParseFill(c.Background)
	if col.IsTransparent() {
		return color.White
	}
	return col
}
