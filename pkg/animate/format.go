package animate

import (
	"path/filepath"

	"github.com/matzehuels/arborheat/pkg/errors"
)

// Kind is the family of media an output extension selects.
type Kind int

const (
	KindMovie Kind = iota
	KindGIF
	KindStrip
)

// Extensions lists the accepted output extensions.
var Extensions = []string{".mp4", ".ogv", ".gif", ".jpeg", ".png"}

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindGIF:
		return "gif"
	case KindStrip:
		return "strip"
	default:
		return "unknown"
	}
}

// KindOf selects the media kind from the exact, case-sensitive extension of path.
func KindOf(path string) (Kind, error) {
	switch ext := filepath.Ext(path); ext {
	case ".mp4", ".ogv":
		return KindMovie, nil
	case ".gif":
		return KindGIF, nil
	case ".jpeg", ".png":
		return KindStrip, nil
	default:
		return 0, &errors.UnsupportedFormatError{Ext: ext, Supported: Extensions}
	}
}

// tool describes the external program for a media kind.
type tool struct {
	name string
	hint string
}

var (
	ffmpeg  = tool{"ffmpeg", "brew install ffmpeg (macOS), apt install ffmpeg (Linux)"}
	convert = tool{"convert", "brew install imagemagick (macOS), apt install imagemagick (Linux)"}
	montage = tool{"montage", "brew install imagemagick (macOS), apt install imagemagick (Linux)"}
)

func toolFor(k Kind) tool {
	switch k {
	case KindGIF:
		return convert
	case KindStrip:
		return montage
	default:
		return ffmpeg
	}
}

// codec returns the ffmpeg video codec for a movie extension.
func codec(output string) string {
	if filepath.Ext(output) == ".ogv" {
		return "libtheora"
	}
	return "mpeg4"
}
