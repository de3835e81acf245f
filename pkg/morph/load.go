package morph

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/arborheat/pkg/errors"
)

// Format identifies a geometry file format.
type Format string

const (
	FormatHoc Format = "hoc"
	FormatSwc Format = "swc"
)

// Formats lists the supported input extensions.
var Formats = []string{".hoc", ".swc"}

// FormatOf returns the format implied by a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hoc":
		return FormatHoc, nil
	case ".swc":
		return FormatSwc, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "%s: unknown geometry format (expected one of %v)", path, Formats)
}

// Read parses r in the given format. name labels errors and the geometry.
func Read(r io.Reader, format Format, name string) (*Geometry, error) {
	switch format {
	case FormatHoc:
		return ReadHoc(r, name)
	case FormatSwc:
		return ReadSwc(r, name)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown geometry format %q", format)
}

// ReadFile loads a geometry file, picking the reader by extension.
func ReadFile(path string) (*Geometry, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "geometry file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "open %s", path)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(f, format, name)
}

// Glob returns the geometry files directly inside dir, sorted by name.
func Glob(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read directory %s", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatOf(e.Name()); err == nil {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}
