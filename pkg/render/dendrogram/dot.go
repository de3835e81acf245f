package dendrogram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arborheat/pkg/colormap"
	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/ranking"
	"github.com/matzehuels/arborheat/pkg/render"
)

// Options configures dendrogram rendering.
type Options struct {
	// Colormap names the fill scale (default viridis).
	Colormap string

	// Max overrides the normalization maximum. Zero uses the longest path.
	Max float64

	// Detailed adds branch length and end distance to the labels.
	// When false, only the branch number is shown.
	Detailed bool
}

// ToDOT converts the branches of geo to Graphviz DOT format.
func ToDOT(geo *morph.Geometry, opts Options) (string, error) {
	name := opts.Colormap
	if name == "" {
		name = colormap.Default
	}
	cmap, err := colormap.Get(name)
	if err != nil {
		return "", err
	}

	branches := geo.Branches()
	if len(branches) == 0 {
		return "", errors.New(errors.ErrCodeInvalidGeometry, "%s has no branches", geo.Name)
	}
	values, ends, err := branchValues(geo, branches, opts.Max)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=18, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	for i, b := range branches {
		fill := cmap.At(values[i])
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(b, ends[i], opts.Detailed)),
			fmt.Sprintf("fillcolor=%q", fill.Hex()),
		}
		if l, _, _ := fill.Lab(); l < 0.5 {
			attrs = append(attrs, "fontcolor=white")
		}
		if b.Tip() {
			attrs = append(attrs, "shape=ellipse")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(b.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, b := range branches {
		if b.Parent >= 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(b.Parent), nodeID(b.ID))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// branchValues returns the path distance at the end of every branch and the
// same distances normalized for coloring. A tree whose branches all end at
// the soma is colored uniformly.
func branchValues(geo *morph.Geometry, branches []*morph.Branch, vmax float64) (values, ends []float64, err error) {
	pdf := morph.NewPathDistanceFinder(geo)
	ends = make([]float64, len(branches))
	for i, b := range branches {
		ends[i] = pdf.NodeDistance(b.End())
	}
	if vmax == 0 {
		vmax = ranking.Max(ends)
	}
	if vmax == 0 {
		return make([]float64, len(ends)), ends, nil
	}
	values, err = ranking.NormalizeTo(ends, vmax)
	return values, ends, err
}

func nodeID(id int) string { return "b" + strconv.Itoa(id) }

func fmtLabel(b *morph.Branch, end float64, detailed bool) string {
	if !detailed {
		return strconv.Itoa(b.ID)
	}
	return fmt.Sprintf("%d\nlength: %.1f um\nend: %.1f um", b.ID, b.Length, end)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return pixelViewBox(buf.Bytes()), nil
}

var (
	svgOpenTag = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe  = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// pixelViewBox replaces the point-based size Graphviz writes with a pixel
// size matching the viewBox, so the diagram scales like the other outputs.
func pixelViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenTag.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
