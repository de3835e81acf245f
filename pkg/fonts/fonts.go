// Package fonts provides the font used for titles, labels and tick marks.
//
// The Go Regular typeface ships with golang.org/x/image, so rendering needs
// no system fonts: raster output loads it with freetype, and SVG output can
// embed it as a base64 @font-face.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fonts to try when the embedded font is not included.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Parsed font and base64 data (computed once on first access).
var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once

	ttfBase64     string
	ttfBase64Once sync.Once
)

// Regular returns the parsed font.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
		if regularErr != nil {
			regularErr = fmt.Errorf("parse Go Regular: %w", regularErr)
		}
	})
	return regular, regularErr
}

// Face returns a new face of the given size in points (72 DPI, so points
// equal pixels). Faces are not safe for concurrent use; get one per renderer.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// RegularTTFBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}
