package io

import (
	"image"
	"io"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// cardNamespace scopes the name-based UUIDs used for card file suffixes.
var cardNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/cardforge/cards"))

// CardFileName returns "<safe name>-<suffix>.png" for the card at index in
// deck. The suffix depends only on the deck name, index and card name.
func CardFileName(deck string, index int, name string) string {
	key := deck + "\x00" + strconv.Itoa(index) + "\x00" + name
	id := uuid.NewSHA1(cardNamespace, []byte(key))
	return cferrors.SanitizeFileName(name) + "-" + id.String()[:8] + ".png"
}

// DeckDir returns the directory a deck's cards are exported to.
func DeckDir(workspace, deck string) string {
	return filepath.Join(workspace, cferrors.SanitizeFileName(deck))
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeEncode, err, "encode png")
	}
	return nil
}

// ExportPNG atomically writes img to path as PNG.
func ExportPNG(path string, img image.Image) error {
	if err := cferrors.ValidateOutputPath(path, ".png"); err != nil {
		return err
	}
	return WriteFileAtomic(path, func(w io.Writer) error {
		return WritePNG(w, img)
	})
}
