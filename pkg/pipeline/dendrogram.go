package pipeline

import (
	"context"

	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/render/dendrogram"
)

// FormatDOT is the Graphviz source, only available for dendrograms.
const FormatDOT = "dot"

// DendrogramFormats lists the extensions Dendrogram can produce.
var DendrogramFormats = []string{".svg", ".png", ".pdf", ".dot"}

// Dendrogram renders the branch tree of geo in format (svg, png, pdf or dot).
func (r *Runner) Dendrogram(ctx context.Context, geo *morph.Geometry, format string, opts dendrogram.Options) ([]byte, error) {
	dot, err := dendrogram.ToDOT(geo, opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("Generated DOT", "branches", len(geo.Branches()), "bytes", len(dot))

	switch format {
	case FormatSVG:
		return dendrogram.RenderSVG(ctx, dot)
	case FormatPNG:
		return dendrogram.RenderPNG(ctx, dot, 2.0)
	case FormatPDF:
		return dendrogram.RenderPDF(ctx, dot)
	case FormatDOT:
		return []byte(dot), nil
	default:
		return nil, &errors.UnsupportedFormatError{Ext: "." + format, Supported: DendrogramFormats}
	}
}
