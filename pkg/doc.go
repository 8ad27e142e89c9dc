// Package pkg provides the libraries behind cardforge, a card artwork
// generator for print-and-play trading card games.
//
// # Overview
//
// cardforge turns a deck file into card images and the card images into
// print-ready sheets. The pkg directory is organized as:
//
//  1. Data: [card] (cards, decks, accent colors) and [template] (named
//     rectangular regions in millimetres)
//  2. Rendering: [units] (mm to pixel conversion), [fonts] (text faces) and
//     [compose] (frame recolor, art, title and stats compositing)
//  3. Layout: [sheet] (page packing and the PDF writer)
//  4. Infrastructure: [config], [io] (atomic file output), [errors],
//     [observability] and [buildinfo]
//  5. Orchestration: [pipeline] (deck → PNGs → PDF)
//
// # Architecture
//
// The typical data flow:
//
//	deck.json + template.json + frame.png
//	         ↓
//	    [compose] package (one RGBA image per card)
//	         ↓
//	    [io] package (PNG per card)
//	         ↓
//	    [sheet] package (placement plan → PDF pages)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/cardforge/pkg/card"
//	    "github.com/matzehuels/cardforge/pkg/compose"
//	    "github.com/matzehuels/cardforge/pkg/sheet"
//	    "github.com/matzehuels/cardforge/pkg/template"
//	)
//
//	deck, _ := card.LoadDeck("goblins.json")
//	tpl, _ := template.Load("template.json", template.ParseOptions{})
//	comp := compose.New(compose.Config{DPI: 300, FramePath: "frame.png"}, nil)
//
//	out, _ := comp.Render(tpl, deck.Cards[0], deck.Color, 0)
//	plan, _ := sheet.Pack([]string{"card.png"}, sheet.A4())
//
// Most callers use [pipeline.Runner], which wires these together with
// configuration, parallel rendering and atomic output.
//
// [card]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/card
// [template]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/template
// [units]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/units
// [fonts]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/fonts
// [compose]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/compose
// [sheet]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/sheet
// [config]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/buildinfo
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/cardforge/pkg/pipeline#Runner
package pkg
