// Package card defines the card records and deck metadata the compositor
// consumes, and loads them from declarative deck files.
package card

import (
	"fmt"
	"image/color"
	"strconv"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// Type distinguishes units, which carry a stat block, from every other card.
type Type string

const (
	TypeUnit  Type = "unit"
	TypeOther Type = "other"
)

// Stats is the numeric stat block printed on unit cards.
type Stats struct {
	ATK  int `json:"atk" toml:"atk"`
	DEF  int `json:"def" toml:"def"`
	STB  int `json:"stb" toml:"stb"`
	INIT int `json:"init" toml:"init"`
	RNG  int `json:"rng" toml:"rng"`
	MOVE int `json:"move" toml:"move"`
}

// StatLine is one labelled stat value.
type StatLine struct {
	Label string
	Value int
}

// Lines returns the stats in print order: ATK, DEF, STB, INIT, RNG, MOVE.
func (s Stats) Lines() []StatLine {
	return []StatLine{
		{"ATK", s.ATK},
		{"DEF", s.DEF},
		{"STB", s.STB},
		{"INIT", s.INIT},
		{"RNG", s.RNG},
		{"MOVE", s.MOVE},
	}
}

// Card is a single card record. Stats is non-nil only for units.
type Card struct {
	Name    string
	Type    Type
	ArtPath string
	Stats   *Stats
}

// IsUnit reports whether the card carries a stat block.
func (c Card) IsUnit() bool {
	return c.Type == TypeUnit && c.Stats != nil
}

// Color is a deck accent color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a #RRGGBB hex string.
func ParseColor(s string) (Color, error) {
	if err := cferrors.ValidateHexColor(s); err != nil {
		return Color{}, err
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, cferrors.Wrap(cferrors.ErrCodeInvalidColor, err, "parse color").WithSubject(s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// Intended for constants and tests.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as #RRGGBB in upper case.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// NRGBA returns c with the given alpha.
func (c Color) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }
