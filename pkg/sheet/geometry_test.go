package sheet

import (
	"math"
	"testing"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

func TestGeometryCapacity(t *testing.T) {
	tests := []struct {
		name    string
		g       Geometry
		perRow  int
		perCol  int
		perPage int
	}{
		{"a4 default", A4(), 4, 4, 16},
		{"no margin", Geometry{PageWidth: 210, PageHeight: 297, CardWidth: 40, CardHeight: 62}, 5, 4, 20},
		{"exact fit", Geometry{PageWidth: 100, PageHeight: 100, Margin: 10, CardWidth: 20, CardHeight: 40}, 4, 2, 8},
		{"fractional exact", Geometry{PageWidth: 0.3, PageHeight: 1, CardWidth: 0.1, CardHeight: 1}, 3, 1, 3},
		{"oversized card", Geometry{PageWidth: 210, PageHeight: 297, Margin: 20, CardWidth: 1000, CardHeight: 62}, 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.CardsPerRow(); got != tt.perRow {
				t.Errorf("CardsPerRow() = %d, want %d", got, tt.perRow)
			}
			if got := tt.g.CardsPerCol(); got != tt.perCol {
				t.Errorf("CardsPerCol() = %d, want %d", got, tt.perCol)
			}
			if got := tt.g.CardsPerPage(); got != tt.perPage {
				t.Errorf("CardsPerPage() = %d, want %d", got, tt.perPage)
			}
		})
	}
}

func TestGeometryValidate(t *testing.T) {
	mod := func(f func(*Geometry)) Geometry {
		g := A4()
		f(&g)
		return g
	}

	tests := []struct {
		name    string
		g       Geometry
		wantErr bool
	}{
		{"a4", A4(), false},
		{"with bleed", mod(func(g *Geometry) { g.Bleed = 3 }), false},
		{"zero margin", mod(func(g *Geometry) { g.Margin = 0 }), false},
		{"card too wide", mod(func(g *Geometry) { g.CardWidth = 1000 }), true},
		{"card too tall", mod(func(g *Geometry) { g.CardHeight = 300 }), true},
		{"margin eats page", mod(func(g *Geometry) { g.Margin = 110 }), true},
		{"negative margin", mod(func(g *Geometry) { g.Margin = -1 }), true},
		{"negative bleed", mod(func(g *Geometry) { g.Bleed = -1 }), true},
		{"zero page width", mod(func(g *Geometry) { g.PageWidth = 0 }), true},
		{"zero card height", mod(func(g *Geometry) { g.CardHeight = 0 }), true},
		{"nan card width", mod(func(g *Geometry) { g.CardWidth = math.NaN() }), true},
		{"infinite page", mod(func(g *Geometry) { g.PageHeight = math.Inf(1) }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !cferrors.Is(err, cferrors.ErrCodeInvalidGeometry) {
				t.Errorf("Validate() code = %v, want %v", cferrors.GetCode(err), cferrors.ErrCodeInvalidGeometry)
			}
		})
	}
}
