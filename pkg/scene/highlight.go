package scene

import (
	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/ranking"
)

// HighlightOptions configures Highlight.
type HighlightOptions struct {
	// Rank selects the path: 0 is the longest, 1 the second longest and so on.
	Rank int

	// LineWidth is the skeleton width in pixels (default 1.5). The highlighted
	// path is drawn half a pixel wider.
	LineWidth float64

	Color  string // default plum
	Labels bool
}

// Highlight draws the skeleton of geo and a single path, the Rank-th longest
// from the soma to a tip. The panel title is the geometry name.
func Highlight(geo *morph.Geometry, opts HighlightOptions) (*Panel, *ranking.Overlay, error) {
	if geo == nil || geo.Root() == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidGeometry, "empty geometry")
	}
	pdf := morph.NewPathDistanceFinder(geo)
	tips, dists := pdf.TipDistances()
	if len(tips) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidGeometry, "%s has no tips to highlight", geo.Name)
	}
	ov, err := ranking.NewOverlay(dists)
	if err != nil {
		return nil, nil, err
	}
	idx, err := ov.Rank(opts.Rank)
	if err != nil {
		return nil, nil, err
	}

	lw := opts.LineWidth
	if lw <= 0 {
		lw = 1.5
	}
	color := opts.Color
	if color == "" {
		color = Plum
	}

	p := &Panel{Title: geo.Name}
	addSkeleton(p, geo, Black, 1, lw)
	v := ov.Values[idx]
	p.Polylines = append(p.Polylines, Polyline{
		Points: pathPoints(pdf.PathTo(tips[idx])),
		Color:  color,
		Alpha:  1,
		Width:  lw + 0.5,
		Role:   RoleHighlight,
		Value:  &v,
	})
	p.Markers = append(p.Markers, Marker{
		At:     FromPoint(geo.Root().Point),
		Color:  Black,
		Alpha:  0.5,
		Radius: 5,
		Role:   RoleSoma,
	})
	if opts.Labels {
		p.ShowAxes = true
		p.XLabel, p.YLabel = AxisLabel, AxisLabel
	}
	return p, ov, nil
}
