// Package pipeline runs cardforge's deck → card images → print sheet flow.
//
// The CLI builds one [Runner] from the loaded configuration and calls its
// stages:
//
//  1. RenderDeck: composite every card of a deck and export it as PNG
//  2. BuildSheet: pack image files onto pages and write a PDF
//  3. Build: both, packing the freshly rendered cards in deck order
//
// Example:
//
//	runner := pipeline.NewRunner(cfg, logger)
//	deck, err := runner.LoadDeck("decks/goblins.json")
//	if err != nil {
//	    return err
//	}
//	res, err := runner.Build(ctx, deck, pipeline.RenderOptions{})
//
// Rendering never caches: every call composites from the current frame,
// template and art files.
package pipeline

import (
	"time"

	"github.com/matzehuels/cardforge/pkg/card"
	cferrors "github.com/matzehuels/cardforge/pkg/errors"
	"github.com/matzehuels/cardforge/pkg/sheet"
)

// =============================================================================
// Options
// =============================================================================

// RenderOptions controls a deck render. Zero values fall back to the
// runner's configuration.
type RenderOptions struct {
	// OutDir receives the card PNGs. Defaults to <workspace>/<deck name>.
	OutDir string

	// Workers bounds the number of cards rendered at once.
	Workers int

	// BleedMM overrides render.bleed_mm when non-nil.
	BleedMM *float64

	// Progress, if set, is called after each exported card. Calls are
	// serialized but arrive in completion order, not deck order.
	Progress func(done, total int, path string)
}

// SheetOptions controls sheet packing.
type SheetOptions struct {
	// Output is the PDF path. Required.
	Output string

	// PlanOutput, if set, also writes the placement plan as JSON.
	PlanOutput string

	// Geometry overrides the configured sheet geometry when non-nil.
	Geometry *sheet.Geometry
}

// Validate checks output paths and the geometry override.
func (o SheetOptions) Validate() error {
	if err := cferrors.ValidateOutputPath(o.Output, ".pdf"); err != nil {
		return err
	}
	if o.PlanOutput != "" {
		if err := cferrors.ValidateOutputPath(o.PlanOutput, ".json"); err != nil {
			return err
		}
	}
	if o.Geometry != nil {
		return o.Geometry.Validate()
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// RenderResult describes an exported deck.
type RenderResult struct {
	Deck *card.Deck

	// Files holds the exported PNG paths in deck order.
	Files []string

	// Skipped lists template regions left out of individual cards.
	Skipped []SkippedRegion

	Duration time.Duration
}

// SkippedRegion is a region one card rendered without.
type SkippedRegion struct {
	Card   string
	Region string
	Reason string
}

// SheetResult describes a packed sheet.
type SheetResult struct {
	Plan *sheet.Plan

	// Skipped lists inputs that were not images.
	Skipped []sheet.Skipped

	// PDF is the written file, empty when there was nothing to pack.
	PDF string

	// PlanFile is the written JSON plan, if requested.
	PlanFile string

	Duration time.Duration
}

// BuildResult combines a deck render and its sheet.
type BuildResult struct {
	Render *RenderResult
	Sheet  *SheetResult
}
