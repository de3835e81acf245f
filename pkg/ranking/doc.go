// Package ranking orders neuron tips by path distance and maps each tip to a
// normalized color value.
//
// # The Overlay Problem
//
// A heatmap draws the path from the soma to every tip, colored by the length
// of that path. Paths share their proximal segments, so the last path drawn
// wins the shared pixels. Drawing the shortest paths first and the longest
// last keeps the long (bright) paths visible along the trunk.
//
// # Order
//
// [Order] returns tip indices by descending distance. Equal distances keep
// their original relative order (lowest index first). This is the order a
// repeated "take the first maximum, then remove it" scan produces, computed
// here with a stable sort instead of mutating a copy of the input.
//
// [Ascending] reverses a descending order for drawing. It is a literal
// reversal, so equal distances appear highest index first.
//
// # Normalization
//
// [Normalize] divides every distance by the observed maximum; [NormalizeTo]
// uses a caller supplied maximum, for example one shared by several cells in a
// comparison grid. A maximum of exactly zero returns
// [errors.DegenerateInputError] instead of producing NaN colors.
//
// # Usage
//
//	ov, err := ranking.NewOverlay(dists)
//	if err != nil {
//	    return err
//	}
//	for _, tip := range ov.DrawOrder() {
//	    drawPath(tip, cmap.At(ov.Values[tip]))
//	}
//
// [errors.DegenerateInputError]: github.com/matzehuels/arborheat/pkg/errors.DegenerateInputError
package ranking
