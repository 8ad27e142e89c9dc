package sheet

import (
	"math"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// ISO A4 page size in millimetres.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// Defaults matching a 40×62 mm card on A4 with 20 mm margins.
const (
	DefaultMargin     = 20.0
	DefaultCardWidth  = 40.0
	DefaultCardHeight = 62.0
)

// epsilon absorbs float error when a dimension divides the printable area
// exactly.
const epsilon = 1e-9

// Geometry describes a page and the card grid laid on it, in millimetres.
type Geometry struct {
	PageWidth  float64 `json:"page_width" toml:"page_width_mm"`
	PageHeight float64 `json:"page_height" toml:"page_height_mm"`
	Margin     float64 `json:"margin" toml:"margin_mm"`
	CardWidth  float64 `json:"card_width" toml:"card_width_mm"`
	CardHeight float64 `json:"card_height" toml:"card_height_mm"`
	Bleed      float64 `json:"bleed" toml:"bleed_mm"`
}

// A4 returns the default geometry.
func A4() Geometry {
	return Geometry{
		PageWidth:  A4Width,
		PageHeight: A4Height,
		Margin:     DefaultMargin,
		CardWidth:  DefaultCardWidth,
		CardHeight: DefaultCardHeight,
	}
}

// CardsPerRow returns floor((PageWidth - 2*Margin) / CardWidth).
func (g Geometry) CardsPerRow() int {
	return fit(g.PageWidth-2*g.Margin, g.CardWidth)
}

// CardsPerCol returns floor((PageHeight - 2*Margin) / CardHeight).
func (g Geometry) CardsPerCol() int {
	return fit(g.PageHeight-2*g.Margin, g.CardHeight)
}

// CardsPerPage returns the grid capacity of one page.
func (g Geometry) CardsPerPage() int {
	return g.CardsPerRow() * g.CardsPerCol()
}

func fit(space, size float64) int {
	if size <= 0 || space <= 0 {
		return 0
	}
	return int(math.Floor(space/size + epsilon))
}

// Validate reports a configuration error when the geometry is unusable,
// including cards too large to fit even once on the page.
func (g Geometry) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"page width", g.PageWidth},
		{"page height", g.PageHeight},
		{"card width", g.CardWidth},
		{"card height", g.CardHeight},
	} {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return cferrors.New(cferrors.ErrCodeInvalidGeometry, "%s must be positive, got %v", f.name, f.value)
		}
	}
	if g.Margin < 0 || math.IsNaN(g.Margin) {
		return cferrors.New(cferrors.ErrCodeInvalidGeometry, "margin must not be negative, got %v", g.Margin)
	}
	if g.Bleed < 0 || math.IsNaN(g.Bleed) {
		return cferrors.New(cferrors.ErrCodeInvalidGeometry, "bleed must not be negative, got %v", g.Bleed)
	}
	if g.CardsPerRow() < 1 {
		return cferrors.New(cferrors.ErrCodeInvalidGeometry,
			"card width %.1fmm exceeds printable width %.1fmm", g.CardWidth, g.PageWidth-2*g.Margin)
	}
	if g.CardsPerCol() < 1 {
		return cferrors.New(cferrors.ErrCodeInvalidGeometry,
			"card height %.1fmm exceeds printable height %.1fmm", g.CardHeight, g.PageHeight-2*g.Margin)
	}
	return nil
}
