// Package dendrogram draws the branch structure of a morphology as a tree
// diagram using Graphviz.
//
// Each unbranched run of the reconstruction ([morph.Branch]) becomes one node,
// filled with the colormap value of the path distance at its far end, and
// edges connect each branch to the branches leaving its end point. The root
// node is the branch that starts at the soma.
//
// # Architecture
//
// Graphviz handles both layout and drawing, so the DOT text is the only
// intermediate representation:
//
//	Geometry → ToDOT() → DOT → RenderSVG() → SVG → render.ToPDF / render.ToPNG
//
// # Usage
//
//	dot, err := dendrogram.ToDOT(geo, dendrogram.Options{Colormap: "viridis"})
//	svg, err := dendrogram.RenderSVG(ctx, dot)
//
// [morph.Branch]: github.com/matzehuels/arborheat/pkg/morph#Branch
package dendrogram
