package sheet

import (
	"image"
	"os"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// Placement is one image box on a page, in millimetres from the page's
// bottom-left corner. Index is the position of Ref in the caller's input.
type Placement struct {
	Ref    string  `json:"ref"`
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Page is an ordered list of placements. Pages are never empty.
type Page struct {
	Placements []Placement `json:"placements"`
}

// Plan is the paginated placement of a sequence of images.
type Plan struct {
	Geometry Geometry `json:"geometry"`
	Pages    []Page   `json:"pages"`
}

// Len returns the total number of placements across all pages.
func (p *Plan) Len() int {
	n := 0
	for _, pg := range p.Pages {
		n += len(pg.Placements)
	}
	return n
}

// Refs returns every placed reference in plan order.
func (p *Plan) Refs() []string {
	refs := make([]string, 0, p.Len())
	for _, pg := range p.Pages {
		for _, pl := range pg.Placements {
			refs = append(refs, pl.Ref)
		}
	}
	return refs
}

// Pack lays refs out row-major in input order. It fails before placing
// anything if the geometry cannot hold a single card. An empty refs yields a
// plan with no pages.
func Pack(refs []string, g Geometry) (*Plan, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	perRow, perCol := g.CardsPerRow(), g.CardsPerCol()
	plan := &Plan{Geometry: g, Pages: []Page{}}

	top := g.PageHeight - g.Margin - g.CardHeight
	x, y := g.Margin, top
	col, row := 0, 0
	open := false

	for i, ref := range refs {
		if !open {
			plan.Pages = append(plan.Pages, Page{})
			open = true
		}
		pg := &plan.Pages[len(plan.Pages)-1]
		pg.Placements = append(pg.Placements, Placement{
			Ref:    ref,
			Index:  i,
			X:      x,
			Y:      y,
			Width:  g.CardWidth,
			Height: g.CardHeight,
		})

		x += g.CardWidth
		col++
		if col < perRow {
			continue
		}

		// Row wrap. The next row starts below the margin once perCol rows
		// are placed, so the page is closed instead.
		col, x = 0, g.Margin
		row++
		y -= g.CardHeight
		if row == perCol {
			row, y = 0, top
			open = false
		}
	}

	return plan, nil
}

// Skipped is an input reference PackFiles left out.
type Skipped struct {
	Ref    string
	Index  int
	Reason string
}

// PackResult is the outcome of PackFiles.
type PackResult struct {
	Plan    *Plan
	Skipped []Skipped
}

// PackFiles packs the image files among paths. Paths that do not exist or
// do not decode as an image are skipped without consuming a grid slot.
func PackFiles(paths []string, g Geometry) (*PackResult, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	var (
		usable  = make([]string, 0, len(paths))
		inputAt = make([]int, 0, len(paths))
		skipped []Skipped
	)
	for i, p := range paths {
		if err := probe(p); err != nil {
			skipped = append(skipped, Skipped{Ref: p, Index: i, Reason: cferrors.UserMessage(err)})
			continue
		}
		usable = append(usable, p)
		inputAt = append(inputAt, i)
	}

	plan, err := Pack(usable, g)
	if err != nil {
		return nil, err
	}
	for pi := range plan.Pages {
		for j := range plan.Pages[pi].Placements {
			pl := &plan.Pages[pi].Placements[j]
			pl.Index = inputAt[pl.Index]
		}
	}
	return &PackResult{Plan: plan, Skipped: skipped}, nil
}

func probe(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return cferrors.Wrap(cferrors.ErrCodeFileNotFound, err, "open image").WithSubject(path)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeImageUnreadable, err, "decode image").WithSubject(path)
	}
	return nil
}
