package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/cardforge/pkg/card"
)

func TestRecolorPixel(t *testing.T) {
	accent := card.Color{R: 1, G: 2, B: 3}
	tests := []struct {
		name string
		in   color.NRGBA
		want color.NRGBA
	}{
		{"white opaque", color.NRGBA{255, 255, 255, 255}, color.NRGBA{1, 2, 3, 255}},
		{"threshold exactly", color.NRGBA{200, 200, 200, 90}, color.NRGBA{1, 2, 3, 90}},
		{"one channel below", color.NRGBA{255, 199, 255, 255}, color.NRGBA{255, 199, 255, 255}},
		{"dark", color.NRGBA{10, 20, 30, 255}, color.NRGBA{10, 20, 30, 255}},
		{"transparent white keeps alpha", color.NRGBA{250, 250, 250, 0}, color.NRGBA{1, 2, 3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecolorPixel(tt.in, accent); got != tt.want {
				t.Errorf("RecolorPixel(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecolorInvariant(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(x * 4)
			src.SetNRGBA(x, y, color.NRGBA{R: v, G: uint8(255 - y), B: uint8((x + y) * 2), A: uint8(x*y) | 1})
		}
	}
	accent := card.MustParseColor("#C0FFEE")

	out := Recolor(src, accent)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			in := src.NRGBAAt(x, y)
			got := out.NRGBAAt(x, y)
			if got.A != in.A {
				t.Fatalf("(%d,%d) alpha %d, want %d", x, y, got.A, in.A)
			}
			if in.R >= 200 && in.G >= 200 && in.B >= 200 {
				if got.R != accent.R || got.G != accent.G || got.B != accent.B {
					t.Fatalf("(%d,%d) = %v, want deck color", x, y, got)
				}
			} else if got != in {
				t.Fatalf("(%d,%d) = %v, want unchanged %v", x, y, got, in)
			}
		}
	}
}

func TestRecolorLeavesSourceUntouched(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	Recolor(src, card.Color{})
	if got := src.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("source modified: %v", got)
	}
}

func TestRecolorSubImage(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	base.SetNRGBA(2, 2, color.NRGBA{255, 255, 255, 200})
	base.SetNRGBA(1, 1, color.NRGBA{10, 10, 10, 255})
	sub := base.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)

	out := Recolor(sub, card.Color{R: 9, G: 9, B: 9})

	if out.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v, want origin-based 2x2", out.Bounds())
	}
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{9, 9, 9, 200}) {
		t.Errorf("recolored pixel = %v", got)
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{10, 10, 10, 255}) {
		t.Errorf("dark pixel = %v, want unchanged", got)
	}
}
