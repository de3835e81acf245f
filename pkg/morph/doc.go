// Package morph loads neuron morphology reconstructions and answers path
// distance queries over them.
//
// # Model
//
// A [Geometry] is a tree of 3D [Node] values rooted in the soma. Every
// non-root node is the end of exactly one [Segment] (parent → node). A tip is
// a segment whose end node has no children. [Geometry.Branches] groups the
// segments into unbranched runs for dendrogram views.
//
// # Path Distance
//
// [PathDistanceFinder] measures the cumulative segment length from the soma
// boundary to any segment: nodes belonging to the soma are at distance zero,
// and every segment outside the soma adds its Euclidean length.
//
//	geo, err := morph.ReadFile("cell.hoc")
//	pdf := morph.NewPathDistanceFinder(geo)
//	for _, tip := range geo.Tips() {
//	    fmt.Println(tip.End.ID, pdf.DistanceTo(tip))
//	}
//
// # Formats
//
// Two input formats are understood:
//
//   - .hoc: the subset of NEURON hoc that morphology exporters emit
//     (create, section blocks, pt3dclear, pt3dadd, connect, comments).
//     Everything else is skipped.
//   - .swc: the standard seven column format (id type x y z radius parent).
package morph
