// Package config loads cardforge settings.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults ([Default]).
//  2. A TOML file, by default $XDG_CONFIG_HOME/cardforge/config.toml.
//  3. CARDFORGE_* environment variables, optionally seeded from .env files
//     with [LoadDotEnv].
//
// A config file looks like:
//
//	workspace = "export"
//	use_deck_color = true
//	deck_color = "#FFFFFF"
//
//	[render]
//	dpi = 300
//	frame = "frames/base_frame.png"
//	template = "templates/default.json"
//	bleed_mm = 0.0
//	strict = false
//	workers = 4
//
//	[sheet]
//	page_width_mm = 210.0
//	page_height_mm = 297.0
//	margin_mm = 20.0
//	card_width_mm = 40.0
//	card_height_mm = 62.0
//
// Relative paths in the file resolve against the file's directory.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/cardforge/pkg/card"
	cferrors "github.com/matzehuels/cardforge/pkg/errors"
	"github.com/matzehuels/cardforge/pkg/sheet"
	"github.com/matzehuels/cardforge/pkg/units"
)

const (
	appName  = "cardforge"
	fileName = "config.toml"
)

// Defaults for values a config file may omit.
const (
	DefaultWorkspace = "export"
	DefaultFrame     = "frames/base_frame.png"
	DefaultDeckColor = "#FFFFFF"
)

// Config holds every setting the CLI and pipeline need.
type Config struct {
	// Workspace is the root directory decks are exported into.
	Workspace string `toml:"workspace" env:"WORKSPACE"`

	// UseDeckColor selects the deck file's color. When false, DeckColor
	// replaces it for every deck.
	UseDeckColor bool   `toml:"use_deck_color" env:"USE_DECK_COLOR"`
	DeckColor    string `toml:"deck_color" env:"DECK_COLOR"`

	Render Render `toml:"render"`
	Sheet  Sheet  `toml:"sheet"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// Render configures card compositing.
type Render struct {
	DPI      int     `toml:"dpi" env:"DPI"`
	Frame    string  `toml:"frame" env:"FRAME"`
	Template string  `toml:"template" env:"TEMPLATE"`
	BleedMM  float64 `toml:"bleed_mm" env:"BLEED_MM"`
	Strict   bool    `toml:"strict" env:"STRICT"`
	Workers  int     `toml:"workers" env:"WORKERS"`
}

// Sheet configures page packing.
type Sheet struct {
	PageWidthMM  float64 `toml:"page_width_mm"`
	PageHeightMM float64 `toml:"page_height_mm"`
	MarginMM     float64 `toml:"margin_mm"`
	CardWidthMM  float64 `toml:"card_width_mm"`
	CardHeightMM float64 `toml:"card_height_mm"`
}

// Default returns the built-in configuration.
func Default() *Config {
	a4 := sheet.A4()
	return &Config{
		Workspace:    DefaultWorkspace,
		UseDeckColor: true,
		DeckColor:    DefaultDeckColor,
		Render: Render{
			DPI:     units.DefaultDPI,
			Frame:   DefaultFrame,
			Workers: runtime.NumCPU(),
		},
		Sheet: Sheet{
			PageWidthMM:  a4.PageWidth,
			PageHeightMM: a4.PageHeight,
			MarginMM:     a4.Margin,
			CardWidthMM:  a4.CardWidth,
			CardHeightMM: a4.CardHeight,
		},
	}
}

// Load reads the config file at path over the defaults, then applies
// CARDFORGE_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(env.ToMap(os.Environ())); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return cferrors.Wrap(cferrors.ErrCodeInvalidConfig, err, "read config").WithSubject(path)
	}

	md, err := toml.Decode(string(data), c)
	if err != nil {
		return cferrors.Wrap(cferrors.ErrCodeInvalidConfig, err, "parse config").WithSubject(path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cferrors.New(cferrors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String()).WithSubject(path)
	}

	c.Path = path
	base := filepath.Dir(path)
	c.Workspace = resolve(base, c.Workspace)
	c.Render.Frame = resolve(base, c.Render.Frame)
	c.Render.Template = resolve(base, c.Render.Template)
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks value ranges and cross-field consistency.
func (c *Config) Validate() error {
	if c.Render.DPI <= 0 {
		return cferrors.New(cferrors.ErrCodeInvalidConfig, "render.dpi must be positive, got %d", c.Render.DPI)
	}
	if c.Render.Workers <= 0 {
		return cferrors.New(cferrors.ErrCodeInvalidConfig, "render.workers must be positive, got %d", c.Render.Workers)
	}
	if c.Render.BleedMM < 0 {
		return cferrors.New(cferrors.ErrCodeInvalidConfig, "render.bleed_mm must not be negative, got %v", c.Render.BleedMM)
	}
	if !c.UseDeckColor {
		if err := cferrors.ValidateHexColor(c.DeckColor); err != nil {
			return err
		}
	}
	return c.Geometry().Validate()
}

// Geometry returns the sheet geometry, with the render bleed applied.
func (c *Config) Geometry() sheet.Geometry {
	return sheet.Geometry{
		PageWidth:  c.Sheet.PageWidthMM,
		PageHeight: c.Sheet.PageHeightMM,
		Margin:     c.Sheet.MarginMM,
		CardWidth:  c.Sheet.CardWidthMM,
		CardHeight: c.Sheet.CardHeightMM,
		Bleed:      c.Render.BleedMM,
	}
}

// AccentColor returns the color cards of a deck are recolored with.
func (c *Config) AccentColor(deck card.Color) (card.Color, error) {
	if c.UseDeckColor {
		return deck, nil
	}
	return card.ParseColor(c.DeckColor)
}

// Encode writes the config as TOML.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeEncode, err, "encode config")
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Dir returns the config directory using the XDG standard (~/.config/cardforge/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}
