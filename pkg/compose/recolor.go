package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/cardforge/pkg/card"
)

// RecolorThreshold is the minimum value all three channels must reach for a
// frame pixel to take the deck color.
const RecolorThreshold = 200

// RecolorPixel maps near-white pixels to the deck color, keeping alpha.
// All other pixels are returned unchanged.
func RecolorPixel(p color.NRGBA, deck card.Color) color.NRGBA {
	if p.R >= RecolorThreshold && p.G >= RecolorThreshold && p.B >= RecolorThreshold {
		return color.NRGBA{R: deck.R, G: deck.G, B: deck.B, A: p.A}
	}
	return p
}

// Recolor returns a copy of frame with RecolorPixel applied everywhere.
// The copy's bounds start at the origin.
func Recolor(frame image.Image, deck card.Color) *image.NRGBA {
	return imaging.AdjustFunc(frame, func(p color.NRGBA) color.NRGBA {
		return RecolorPixel(p, deck)
	})
}
