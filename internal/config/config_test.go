package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LogLevel != "info" || cfg.WindowWidth != 1024 || cfg.WindowHeight != 768 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.RenderScale != 2.0 || cfg.Background != "#ffffff" || cfg.OutputPath != "out.png" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file treated as an error: %v", err)
	}
	if *cfg != Default() {
		t.Errorf("cfg = %+v, want the defaults", cfg)
	}
}

func TestLoadFilePartialOverride(t *testing.T) {
	p := writeConfig(t, "log_level = \"debug\"\nwindow_width = 640\n")

	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.WindowWidth != 640 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.WindowHeight != 768 || cfg.RenderScale != 2.0 {
		t.Errorf("untouched fields lost their defaults: %+v", cfg)
	}
}

func TestLoadFileBadTOML(t *testing.T) {
	p := writeConfig(t, "log_level = = \"debug\"\n")

	_, err := LoadFile(p)
	if err == nil {
		t.Fatal("LoadFile accepted malformed TOML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("error = %q", err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	p := writeConfig(t, "log_level = \"debug\"\nrender_scale = 1.5\n")

	t.Setenv("HAPPYCOLOR_LOG_LEVEL", "error")
	t.Setenv("HAPPYCOLOR_RENDER_SCALE", "3.5")

	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want the environment value", cfg.LogLevel)
	}
	if cfg.RenderScale != 3.5 {
		t.Errorf("RenderScale = %g, want the environment value", cfg.RenderScale)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		if got := cfg.Level(); got != tt.want {
			t.Errorf("Level(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestBackgroundColor(t *testing.T) {
	cfg := Config{Background: "#ff0000"}
	r, g, b, _ := cfg.BackgroundColor().RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("BackgroundColor(#ff0000) = %d,%d,%d", r>>8, g>>8, b>>8)
	}

	// Unusable values fall back to an opaque white page.
	for _, bad := range []string{"none", "", "zz"} {
		cfg := Config{Background: bad}
		if _, _, _, a := cfg.BackgroundColor().RGBA(); a != 0xffff {
			t.Errorf("BackgroundColor(%q) not opaque", bad)
		}
	}
}
