// Package compose renders a single card image from a template, a card record
// and a deck accent color.
//
// Layers are drawn in a fixed order, later layers over earlier ones:
//
//  1. the frame, resized to the canvas and recolored with the deck color
//  2. the art region, stretched to the region's pixel box
//  3. the title region, the card name in white
//  4. the stats region, six stat lines for unit cards
//
// The canvas is the trim size (40×62 mm) plus bleed on every side, converted
// to pixels at the configured DPI. Region coordinates are relative to the trim
// origin and shifted by the bleed.
//
// # Determinism
//
// Rendering has no hidden state: assets are loaded on every call and nothing
// is cached between calls, so identical inputs produce byte-identical pixels.
// A [Compositor] is safe for concurrent use.
//
// # Missing Data
//
// Regions the template does not define are skipped, as are regions the card
// has no data for (no art path, a non-unit card with a stats region). Missing
// art files and unreadable fonts are skipped too unless [Config.Strict] is
// set. A frame that cannot be loaded always fails the render.
package compose
