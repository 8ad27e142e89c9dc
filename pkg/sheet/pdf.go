package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// ImageSource resolves placement references to images.
type ImageSource interface {
	Open(ref string) (image.Image, error)
}

// FileSource treats references as file paths.
type FileSource struct{}

// Open decodes the image file at ref.
func (FileSource) Open(ref string) (image.Image, error) {
	img, err := imaging.Open(ref)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeImageUnreadable, err, "open image").WithSubject(ref)
	}
	return img, nil
}

// MemorySource resolves references against in-memory images, for cards
// packed straight from the compositor.
type MemorySource map[string]image.Image

// Open returns the image stored under ref.
func (m MemorySource) Open(ref string) (image.Image, error) {
	img, ok := m[ref]
	if !ok {
		return nil, cferrors.New(cferrors.ErrCodeImageUnreadable, "no image for reference").WithSubject(ref)
	}
	return img, nil
}

// WritePDF draws plan onto PDF pages, one page per plan page, and writes the
// document to w. Each distinct reference is embedded once. Nothing is written
// to w if any image fails to load.
func WritePDF(w io.Writer, plan *Plan, src ImageSource) error {
	if plan == nil || len(plan.Pages) == 0 {
		return cferrors.New(cferrors.ErrCodeInvalidInput, "plan has no pages")
	}
	g := plan.Geometry
	if err := g.Validate(); err != nil {
		return err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("cardforge", true)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	names := make(map[string]string)

	for _, page := range plan.Pages {
		pdf.AddPage()
		for _, pl := range page.Placements {
			name, ok := names[pl.Ref]
			if !ok {
				data, err := encodeForPDF(src, pl.Ref)
				if err != nil {
					return err
				}
				name = fmt.Sprintf("card%d", len(names))
				pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
				if pdf.Err() {
					return cferrors.Wrap(cferrors.ErrCodeEncode, pdf.Error(), "embed image").WithSubject(pl.Ref)
				}
				names[pl.Ref] = name
			}
			// PDF writers place images by their top-left corner.
			top := g.PageHeight - pl.Y - pl.Height
			pdf.ImageOptions(name, pl.X, top, pl.Width, pl.Height, false, opts, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeEncode, err, "write pdf")
	}
	return nil
}

// encodeForPDF re-encodes ref as an 8-bit PNG, the form gofpdf embeds with
// its alpha channel intact.
func encodeForPDF(src ImageSource, ref string) ([]byte, error) {
	img, err := src.Open(ref)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Clone(img), imaging.PNG); err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeEncode, err, "encode image").WithSubject(ref)
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes plan as indented JSON for external page writers.
func WriteJSON(w io.Writer, plan *Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeEncode, err, "encode plan")
	}
	return nil
}
