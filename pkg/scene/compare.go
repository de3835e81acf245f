package scene

import (
	"math"

	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/morph"
)

// SharedMax returns the longest tip path over all geometries.
func SharedMax(geos []*morph.Geometry) float64 {
	vmax := 0.0
	for _, g := range geos {
		_, dists := morph.NewPathDistanceFinder(g).TipDistances()
		for _, d := range dists {
			vmax = math.Max(vmax, d)
		}
	}
	return vmax
}

// Compare builds one unlabeled heatmap panel per geometry, all normalized to
// the same maximum so their colors are comparable. opts.Max, when set, takes
// precedence over the shared maximum.
func Compare(geos []*morph.Geometry, opts HeatmapOptions) ([]*Panel, float64, error) {
	if len(geos) == 0 {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "nothing to compare")
	}
	vmax := opts.Max
	if vmax == 0 {
		vmax = SharedMax(geos)
	}
	if vmax == 0 {
		return nil, 0, &errors.DegenerateInputError{Max: vmax, Samples: len(geos)}
	}

	panels := make([]*Panel, len(geos))
	for i, g := range geos {
		o := opts
		o.Max = vmax
		o.Labels = false
		o.Title = g.Name
		p, _, err := Heatmap(g, o)
		if err != nil {
			return nil, 0, err
		}
		panels[i] = p
	}
	return panels, vmax, nil
}
