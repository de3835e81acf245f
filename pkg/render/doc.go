// Package render draws scenes as SVG, PNG, PDF and movie frames.
//
// # Overview
//
// Every output goes through the same layout pass: the scene grid is split into
// cells, each cell reserves room for its title, axes and colorbar, and the
// panel content is fitted into what remains with equal x and y scales. The
// layout then drives a small canvas interface implemented twice:
//
//   - [RenderSVG] writes SVG markup with bytes.Buffer
//   - [RenderImage] and [RenderPNG] rasterize in process with fogleman/gg
//
// Polylines are painted in scene order and markers after them, so the draw
// order chosen by the scene builders is what ends up on top.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG through the external rsvg-convert tool
// (from librsvg). PDF output always goes this way; PNG output normally does
// not need it.
//
//	svg := render.RenderSVG(s)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Frames
//
// [FrameWriter] implements animate.FrameRenderer: it rotates a copy of the
// scene to the requested azimuth, rasterizes it and saves a JPEG with
// disintegration/imaging.
//
// # Dendrograms
//
// The [dendrogram] subpackage renders the branch tree of a morphology with
// Graphviz.
//
// [dendrogram]: github.com/matzehuels/arborheat/pkg/render/dendrogram
package render
