// Package fonts loads font faces for card text.
//
// Text regions either name a TrueType file or leave the font empty, in which
// case the Go Regular face bundled with golang.org/x/image is used. That
// keeps rendering reproducible on machines without any system fonts.
//
// Sizes follow the convention of common imaging libraries: a face of size N
// has an em height of N pixels (fonts are rasterised at 72 dpi).
package fonts

import (
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// BuiltinName is reported for regions using the bundled face.
const BuiltinName = "Go Regular"

// The parsed built-in font is immutable and shared; faces are not.
var (
	builtin     *truetype.Font
	builtinErr  error
	builtinOnce sync.Once
)

// Builtin returns the bundled Go Regular font.
func Builtin() (*truetype.Font, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = truetype.Parse(goregular.TTF)
	})
	return builtin, builtinErr
}

// Parse parses TrueType data.
func Parse(data []byte) (*truetype.Font, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeFontUnreadable, err, "parse font")
	}
	return f, nil
}

// Face returns a face for path at size. An empty path selects the built-in
// font. The file is read on every call; callers own the returned face.
func Face(path string, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, cferrors.New(cferrors.ErrCodeFontUnreadable, "font size must be positive").WithSubject(path)
	}

	var f *truetype.Font
	if path == "" {
		bf, err := Builtin()
		if err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeFontUnreadable, err, "parse built-in font")
		}
		f = bf
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeFontUnreadable, err, "read font").WithSubject(path)
		}
		pf, err := Parse(data)
		if err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeFontUnreadable, err, "parse font").WithSubject(path)
		}
		f = pf
	}

	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// DisplayName returns a label for the font at path, for logs.
func DisplayName(path string) string {
	if path == "" {
		return BuiltinName
	}
	return path
}
