// Package sheet packs rendered card images onto printable pages.
//
// [Pack] turns an ordered list of image references into a [Plan]: pages of
// card-sized boxes filled row by row from the top-left of the printable area.
// The plan is pure geometry in millimetres with the page origin at the
// bottom-left corner, the convention of PDF and most vector page writers.
//
//	geom := sheet.A4()
//	plan, err := sheet.Pack(paths, geom)
//	if err != nil {
//	    return err // INVALID_GEOMETRY: the card does not fit the page
//	}
//	err = sheet.WritePDF(w, plan, sheet.FileSource{})
//
// Placement is strictly sequential: the i-th reference always lands in the
// i-th slot of the grid. Boxes are always the nominal card size; any bleed is
// part of the image content and spills slightly past its box.
//
// [PackFiles] first drops references that do not point at a decodable image.
// Dropped files do not consume a grid slot, so the remaining cards close up.
package sheet
