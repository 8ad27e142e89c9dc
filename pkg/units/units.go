// Package units converts physical print measurements into raster pixels.
//
// All layout in cardforge is authored in millimetres. A [Converter] maps those
// measurements onto a pixel grid at a fixed resolution so the compositor and
// any other pixel-space math agree on exactly the same integer coordinates.
package units

import "math"

// MillimetresPerInch is the exact length of one inch in millimetres.
const MillimetresPerInch = 25.4

// DefaultDPI is the print resolution used when none is configured.
const DefaultDPI = 300

// Converter converts millimetres to pixels at DPI dots per inch.
// The zero value uses DefaultDPI.
type Converter struct {
	DPI int
}

// New returns a Converter for dpi. Non-positive values select DefaultDPI.
func New(dpi int) Converter {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return Converter{DPI: dpi}
}

// ToPixels rounds mm/25.4*dpi to the nearest pixel, halves away from zero.
// Negative input yields a negative result; callers must reject it before
// using it as a size or position.
func (c Converter) ToPixels(mm float64) int {
	return int(math.Round(mm / MillimetresPerInch * float64(c.dpi())))
}

func (c Converter) dpi() int {
	if c.DPI <= 0 {
		return DefaultDPI
	}
	return c.DPI
}
