package io

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// ImageExtensions lists the file extensions ListImages accepts.
var ImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImage reports whether path has an image file extension.
func IsImage(path string) bool {
	return ImageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListImages returns the image files directly inside dir, sorted by name.
// Hidden files and subdirectories are ignored.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cferrors.Wrap(cferrors.ErrCodeFileNotFound, err, "read directory").WithSubject(dir)
		}
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidPath, err, "read directory").WithSubject(dir)
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !IsImage(name) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}
