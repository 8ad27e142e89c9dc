package compose

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/matzehuels/cardforge/pkg/card"
	"github.com/matzehuels/cardforge/pkg/fonts"
	"github.com/matzehuels/cardforge/pkg/template"
)

// statLine formats one stat as "<LABEL>: <value>".
func statLine(l card.StatLine) string {
	return l.Label + ": " + strconv.Itoa(l.Value)
}

// lineStep returns the vertical distance between stacked text lines.
func lineStep(size float64) float64 {
	return math.Round(size * LineSpacing)
}

// drawLines draws lines in opaque white, the first with its top edge at
// origin and each following one lineStep below. Text is not wrapped or
// clipped to the region.
func drawLines(canvas *image.RGBA, r template.Region, origin image.Point, lines []string) error {
	face, err := fonts.Face(r.Font, r.Size)
	if err != nil {
		return err
	}
	defer face.Close()

	dc := gg.NewContextForRGBA(canvas)
	dc.SetFontFace(face)
	dc.SetColor(color.White)

	ascent := float64(face.Metrics().Ascent.Ceil())
	step := lineStep(r.Size)
	for i, line := range lines {
		if line == "" {
			continue
		}
		baseline := float64(origin.Y) + ascent + float64(i)*step
		dc.DrawString(line, float64(origin.X), baseline)
	}
	return nil
}
