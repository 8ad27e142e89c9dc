package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/cardforge/pkg/card"
	cferrors "github.com/matzehuels/cardforge/pkg/errors"
	"github.com/matzehuels/cardforge/pkg/sheet"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.Render.DPI != 300 {
		t.Errorf("DPI = %d, want 300", cfg.Render.DPI)
	}
	g := cfg.Geometry()
	if g != sheet.A4() {
		t.Errorf("Geometry() = %+v, want A4", g)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty for a missing file", cfg.Path)
	}
	if cfg.Workspace != DefaultWorkspace {
		t.Errorf("Workspace = %q, want %q", cfg.Workspace, DefaultWorkspace)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
workspace = "out"
use_deck_color = false
deck_color = "#336699"

[render]
dpi = 150
frame = "frames/gold.png"
template = "/abs/template.json"
bleed_mm = 3.0
strict = true
workers = 2

[sheet]
margin_mm = 10.0
card_width_mm = 63.0
card_height_mm = 88.0
`)
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.Workspace != filepath.Join(dir, "out") {
		t.Errorf("Workspace = %q, want resolved against config dir", cfg.Workspace)
	}
	if cfg.Render.Frame != filepath.Join(dir, "frames", "gold.png") {
		t.Errorf("Frame = %q", cfg.Render.Frame)
	}
	if cfg.Render.Template != "/abs/template.json" {
		t.Errorf("Template = %q, want absolute path untouched", cfg.Render.Template)
	}
	if cfg.Render.DPI != 150 || cfg.Render.Workers != 2 || !cfg.Render.Strict {
		t.Errorf("Render = %+v", cfg.Render)
	}

	g := cfg.Geometry()
	want := sheet.Geometry{PageWidth: 210, PageHeight: 297, Margin: 10, CardWidth: 63, CardHeight: 88, Bleed: 3}
	if g != want {
		t.Errorf("Geometry() = %+v, want %+v", g, want)
	}

	accent, err := cfg.AccentColor(card.Color{R: 1, G: 2, B: 3})
	if err != nil {
		t.Fatalf("AccentColor() error: %v", err)
	}
	if accent.Hex() != "#336699" {
		t.Errorf("AccentColor() = %s, want configured override", accent.Hex())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "workspace = "},
		{"unknown key", "colour = \"red\""},
		{"bad dpi", "[render]\ndpi = 0"},
		{"bad workers", "[render]\nworkers = -1"},
		{"negative bleed", "[render]\nbleed_mm = -2.0"},
		{"bad override color", "use_deck_color = false\ndeck_color = \"blue\""},
		{"oversized card", "[sheet]\ncard_width_mm = 500.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error")
			}
		})
	}
}

func TestLoadUnknownKeyCode(t *testing.T) {
	_, err := Load(writeConfig(t, "[render]\nresolution = 1"))
	if !cferrors.Is(err, cferrors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want %v", err, cferrors.ErrCodeInvalidConfig)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(map[string]string{
		"CARDFORGE_WORKSPACE":      "/tmp/ws",
		"CARDFORGE_DPI":            "600",
		"CARDFORGE_WORKERS":        "3",
		"CARDFORGE_BLEED_MM":       "1.5",
		"CARDFORGE_STRICT":         "true",
		"CARDFORGE_USE_DECK_COLOR": "false",
		"CARDFORGE_DECK_COLOR":     "#000000",
		"CARDFORGE_FRAME":          "",
		"DPI":                      "1",
	})
	if err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.Workspace != "/tmp/ws" || cfg.Render.DPI != 600 || cfg.Render.Workers != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Render.BleedMM != 1.5 || !cfg.Render.Strict || cfg.UseDeckColor {
		t.Errorf("render = %+v, use deck color = %v", cfg.Render, cfg.UseDeckColor)
	}
	if cfg.Render.Frame != DefaultFrame {
		t.Errorf("empty override replaced Frame with %q", cfg.Render.Frame)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	for _, key := range []string{"CARDFORGE_DPI", "CARDFORGE_WORKERS", "CARDFORGE_BLEED_MM", "CARDFORGE_STRICT", "CARDFORGE_USE_DECK_COLOR"} {
		t.Run(key, func(t *testing.T) {
			err := Default().ApplyEnv(map[string]string{key: "lots"})
			if !cferrors.Is(err, cferrors.ErrCodeInvalidConfig) {
				t.Errorf("ApplyEnv() error = %v, want %v", err, cferrors.ErrCodeInvalidConfig)
			}
		})
	}
	if err := Default().ApplyEnv(nil); err != nil {
		t.Errorf("ApplyEnv(empty) error: %v", err)
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv("CARDFORGE_DPI", "72")
	cfg, err := Load(writeConfig(t, "[render]\ndpi = 150"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.DPI != 72 {
		t.Errorf("DPI = %d, want environment to win", cfg.Render.DPI)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, []byte("CARDFORGE_WORKERS=5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// t.Setenv registers cleanup for a variable godotenv will set.
	t.Setenv("CARDFORGE_WORKERS", "")
	os.Unsetenv("CARDFORGE_WORKERS")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), env); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv("CARDFORGE_WORKERS"); got != "5" {
		t.Errorf("CARDFORGE_WORKERS = %q, want 5", got)
	}
}

func TestAccentColorUsesDeck(t *testing.T) {
	deck := card.Color{R: 9, G: 8, B: 7}
	got, err := Default().AccentColor(deck)
	if err != nil || got != deck {
		t.Errorf("AccentColor() = %v, %v; want deck color", got, err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Render.Workers = 2
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[render]", "[sheet]", "dpi = 300", "workers = 2", "card_height_mm = 62.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("Encode() output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Path") {
		t.Errorf("Encode() leaked Path:\n%s", out)
	}

	path := writeConfig(t, out)
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(encoded) error: %v", err)
	}
	if loaded.Render.Workers != 2 || loaded.Geometry() != cfg.Geometry() {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	if want := filepath.Join("/xdg", "cardforge", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
