// Package template models card layout templates.
//
// A template is a set of uniquely named rectangular regions measured in
// millimetres from the trim (unbled) card origin. Each region has a [Kind]
// drawn from a closed set, so the compositor dispatches over kinds with an
// exhaustive switch rather than probing for well-known names:
//
//	art    the card artwork, stretched to fill the region
//	title  the card name
//	stats  the unit stat block
//
// # File Format
//
// Templates are stored as JSON or TOML, keyed by region name:
//
//	{
//	  "art":   {"x": 3, "y": 8,  "w": 34, "h": 30},
//	  "title": {"x": 3, "y": 2,  "w": 34, "h": 5, "font": "fonts/Cinzel.ttf", "size": 28},
//	  "stats": {"x": 4, "y": 40, "w": 32, "h": 20, "size": 20}
//	}
//
// A region's kind defaults to its name and may be set explicitly with a
// "kind" key. Relative font paths resolve against the template's directory;
// an empty font selects the built-in face.
//
// Templates are read-only once loaded and safe to share between goroutines.
package template
