// Package io writes cardforge artifacts to disk and finds images to pack.
//
// # Atomic writes
//
// Every file cardforge produces goes through [WriteFileAtomic]: the content
// is written to a temporary file next to the destination and renamed into
// place once complete. A failed write leaves no partial file behind and the
// temporary file is removed.
//
//	err := io.WriteFileAtomic("out/deck.pdf", func(w io.Writer) error {
//	    return sheet.WritePDF(w, plan, sheet.FileSource{})
//	})
//
// # Card file names
//
// [CardFileName] derives the exported PNG name for a card from its display
// name and its position in the deck. Two cards named alike still map to
// distinct files:
//
//	io.CardFileName("Goblins", 3, "Duplicate/Name") // duplicate_name-<8 hex digits>.png
//
// The suffix is a name-based UUID, so re-exporting the same deck overwrites
// the same files.
//
// # Listing images
//
// [ListImages] returns the image files in a directory in lexical order, the
// order `cardforge sheet DIR` packs them in.
package io
