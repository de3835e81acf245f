package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/arborheat/pkg/io"
	"github.com/matzehuels/arborheat/pkg/observability"
	"github.com/matzehuels/arborheat/pkg/render"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// Render generates output artifacts for s in every requested format.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderScene(ctx, s, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderScene(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, error) {
	var svgOpts []render.SVGOption
	if opts.EmbedFont {
		svgOpts = append(svgOpts, render.WithEmbeddedFont())
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = render.RenderSVG(s, svgOpts...)
		case FormatPNG:
			data, err = render.RenderPNG(s)
		case FormatPDF:
			// PDF conversion needs the font inside the SVG.
			data, err = render.RenderSVG(s, render.WithEmbeddedFont())
			if err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			var buf bytes.Buffer
			err = io.WriteJSON(s, &buf)
			data = buf.Bytes()
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
