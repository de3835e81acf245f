package scene

import (
	"github.com/matzehuels/arborheat/pkg/colormap"
	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/ranking"
)

// Default labels.
const (
	AxisLabel       = "Micrometers"
	ColorbarLabel   = "Path Length (um)"
	HeatmapTitle    = "Heatmap of Neuron Tips Colored by Path Length"
	CompareTitle    = "Heatmaps of Neurons Colored by Path Length"
	DefaultColormap = "jet"
)

// HeatmapOptions configures Heatmap.
type HeatmapOptions struct {
	// Colormap names the color scale. Empty picks jet in 2D and viridis in 3D.
	Colormap string

	// Max overrides the normalization maximum. Zero uses the longest path.
	Max float64

	// ThreeD projects with View instead of dropping z.
	ThreeD    bool
	Elevation float64
	Azimuth   float64

	// LineWidth is the base width in pixels. Zero picks 1.5 in 2D and 2 in 3D.
	LineWidth float64

	// Labels adds axis labels and a title.
	Labels bool
	Title  string
}

func (o HeatmapOptions) colormapName() string {
	switch {
	case o.Colormap != "":
		return o.Colormap
	case o.ThreeD:
		return colormap.Default
	default:
		return DefaultColormap
	}
}

func (o HeatmapOptions) lineWidth() float64 {
	switch {
	case o.LineWidth > 0:
		return o.LineWidth
	case o.ThreeD:
		return 2
	default:
		return 1.5
	}
}

func (o HeatmapOptions) view() View {
	if o.ThreeD {
		return View3D(o.Elevation, o.Azimuth)
	}
	return View{}
}

// Heatmap draws the skeleton of geo and overlays the path from the soma to
// every tip, colored by path distance. Paths are drawn shortest first so the
// longest ends on top. In 3D each later path is drawn slightly wider.
//
// A geometry without tips yields a skeleton-only panel and an empty overlay.
func Heatmap(geo *morph.Geometry, opts HeatmapOptions) (*Panel, *ranking.Overlay, error) {
	if geo == nil || geo.Root() == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidGeometry, "empty geometry")
	}
	if opts.Max < 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "colorbar maximum must not be negative, got %g", opts.Max)
	}
	cmap, err := colormap.Get(opts.colormapName())
	if err != nil {
		return nil, nil, err
	}

	pdf := morph.NewPathDistanceFinder(geo)
	tips, dists := pdf.TipDistances()

	var ovOpts []ranking.OverlayOption
	if opts.Max > 0 {
		ovOpts = append(ovOpts, ranking.WithMax(opts.Max))
	}
	ov, err := ranking.NewOverlay(dists, ovOpts...)
	if err != nil {
		return nil, nil, errors.Wrap(errors.GetCode(err), err, "%s", geo.Name)
	}

	lw := opts.lineWidth()
	p := &Panel{View: opts.view()}
	addSkeleton(p, geo, Black, 0.5, lw)

	tipAlpha, tipRadius, somaAlpha, somaRadius := 0.1, 0.5, 0.9, 3.0
	if opts.ThreeD {
		tipAlpha, tipRadius, somaRadius = 0.9, 3, 5
	}
	for i, t := range tips {
		p.Markers = append(p.Markers, Marker{
			At:     FromPoint(t.End.Point),
			Color:  cmap.Hex(ov.Values[i]),
			Alpha:  tipAlpha,
			Radius: tipRadius,
			Role:   RoleTip,
		})
	}
	p.Markers = append(p.Markers, Marker{
		At:     FromPoint(geo.Root().Point),
		Color:  Black,
		Alpha:  somaAlpha,
		Radius: somaRadius,
		Role:   RoleSoma,
	})

	for k, idx := range ov.DrawOrder() {
		if opts.ThreeD {
			if k == 0 {
				lw += 0.1
			} else {
				lw += 0.001
			}
		}
		v := ov.Values[idx]
		p.Polylines = append(p.Polylines, Polyline{
			Points: pathPoints(pdf.PathTo(tips[idx])),
			Color:  cmap.Hex(v),
			Alpha:  1,
			Width:  lw,
			Role:   RoleOverlay,
			Value:  &v,
		})
	}

	if ov.Len() > 0 {
		p.Colorbar = &Colorbar{Colormap: cmap.Name(), Min: 0, Max: ov.Max, Label: ColorbarLabel}
	}
	if opts.Labels {
		p.ShowAxes = true
		p.XLabel, p.YLabel = AxisLabel, AxisLabel
		if opts.ThreeD {
			p.ZLabel = AxisLabel
		}
		p.Title = HeatmapTitle
	}
	if opts.Title != "" {
		p.Title = opts.Title
	}
	return p, ov, nil
}

// addSkeleton draws every branch of geo as one polyline.
func addSkeleton(p *Panel, geo *morph.Geometry, color string, alpha, width float64) {
	for _, b := range geo.Branches() {
		if len(b.Nodes) < 2 {
			continue
		}
		pts := make([]Vec3, len(b.Nodes))
		for i, n := range b.Nodes {
			pts[i] = FromPoint(n.Point)
		}
		p.Polylines = append(p.Polylines, Polyline{
			Points: pts,
			Color:  color,
			Alpha:  alpha,
			Width:  width,
			Role:   RoleSkeleton,
		})
	}
}

// pathPoints flattens consecutive segments into one point list.
func pathPoints(path []*morph.Segment) []Vec3 {
	if len(path) == 0 {
		return nil
	}
	pts := make([]Vec3, 0, len(path)+1)
	pts = append(pts, FromPoint(path[0].Start.Point))
	for _, s := range path {
		pts = append(pts, FromPoint(s.End.Point))
	}
	return pts
}
