package ranking

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/arborheat/pkg/errors"
)

// Order returns the indices of dists sorted by descending distance.
// Ties are broken by index, lowest first. The input is not modified.
func Order(dists []float64) []int {
	idx := make([]int, len(dists))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(dists[b], dists[a])
	})
	return idx
}

// Ascending returns order reversed. For a descending order this yields the
// draw order where the longest path is painted last.
func Ascending(order []int) []int {
	out := slices.Clone(order)
	slices.Reverse(out)
	return out
}

// Max returns the largest value in dists, or 0 for an empty slice.
func Max(dists []float64) float64 {
	if len(dists) == 0 {
		return 0
	}
	return slices.Max(dists)
}

// Normalize divides each distance by the observed maximum.
// An empty input returns an empty result.
func Normalize(dists []float64) ([]float64, error) {
	if len(dists) == 0 {
		return []float64{}, nil
	}
	return NormalizeTo(dists, Max(dists))
}

// NormalizeTo divides each distance by vmax. Values above vmax are not clamped;
// colormaps clamp on lookup. A zero vmax is reported as degenerate before the
// distances themselves are checked.
func NormalizeTo(dists []float64, vmax float64) ([]float64, error) {
	if vmax == 0 {
		return nil, &errors.DegenerateInputError{Max: vmax, Samples: len(dists)}
	}
	if vmax < 0 || !finite(vmax) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "normalization maximum must be a positive finite number, got %g", vmax)
	}
	if err := validate(dists); err != nil {
		return nil, err
	}
	out := make([]float64, len(dists))
	for i, d := range dists {
		out[i] = d / vmax
	}
	return out, nil
}

func validate(dists []float64) error {
	for i, d := range dists {
		if d < 0 || !finite(d) {
			return errors.New(errors.ErrCodeInvalidInput, "path distance %d is %g, must be a non-negative finite number", i, d)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
