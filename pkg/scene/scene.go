// Package scene builds renderer-independent display lists for morphology
// heatmaps.
//
// A [Scene] is a grid of [Panel] values. Each panel holds polylines and
// markers in world coordinates (micrometers) plus the [View] used to project
// them, so the same scene can be written as SVG, rasterized, rotated into
// movie frames or saved as JSON and reloaded later.
//
// Draw order is significant: renderers paint polylines in slice order, then
// markers. Builders rely on this to put the longest path on top.
package scene

import (
	"math"

	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/morph"
)

// Version is the scene format version written to JSON.
const Version = 1

// Roles tag primitives so renderers and tests can tell them apart.
const (
	RoleSkeleton  = "skeleton"
	RoleOverlay   = "overlay"
	RoleHighlight = "highlight"
	RoleTip       = "tip"
	RoleSoma      = "soma"
)

// Common colors.
const (
	Black = "#000000"
	White = "#ffffff"
	Plum  = "#dda0dd"
)

// Vec3 is a point in world coordinates.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromPoint converts a morphology point.
func FromPoint(p morph.Point) Vec3 { return Vec3{p.X, p.Y, p.Z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Polyline is a connected run of line segments.
type Polyline struct {
	Points []Vec3   `json:"points"`
	Color  string   `json:"color"`
	Alpha  float64  `json:"alpha"`
	Width  float64  `json:"width"`
	Role   string   `json:"role,omitempty"`
	Value  *float64 `json:"value,omitempty"` // normalized path value for overlays
}

// Marker is a filled dot.
type Marker struct {
	At     Vec3    `json:"at"`
	Color  string  `json:"color"`
	Alpha  float64 `json:"alpha"`
	Radius float64 `json:"radius"`
	Role   string  `json:"role,omitempty"`
}

// Colorbar describes the value scale drawn beside a panel.
type Colorbar struct {
	Colormap string  `json:"colormap"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Label    string  `json:"label"`
}

// Panel is one plot.
type Panel struct {
	Title     string     `json:"title,omitempty"`
	XLabel    string     `json:"xlabel,omitempty"`
	YLabel    string     `json:"ylabel,omitempty"`
	ZLabel    string     `json:"zlabel,omitempty"`
	ShowAxes  bool       `json:"show_axes"`
	View      View       `json:"view"`
	Polylines []Polyline `json:"polylines"`
	Markers   []Marker   `json:"markers"`
	Colorbar  *Colorbar  `json:"colorbar,omitempty"`
}

// Scene is a figure made of one or more panels laid out in a grid.
type Scene struct {
	Version    int      `json:"version"`
	Title      string   `json:"title,omitempty"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Background string   `json:"background"`
	Foreground string   `json:"foreground"`
	Columns    int      `json:"columns"`
	Panels     []*Panel `json:"panels"`
}

// New wraps panels in a scene with a near-square grid: ceil(sqrt(n)) columns.
func New(title string, width, height int, panels ...*Panel) *Scene {
	cols := int(math.Ceil(math.Sqrt(float64(len(panels)))))
	if cols < 1 {
		cols = 1
	}
	return &Scene{
		Version:    Version,
		Title:      title,
		Width:      width,
		Height:     height,
		Background: White,
		Foreground: Black,
		Columns:    cols,
		Panels:     panels,
	}
}

// Rows returns the number of grid rows.
func (s *Scene) Rows() int {
	if s.Columns <= 0 || len(s.Panels) == 0 {
		return 1
	}
	return (len(s.Panels) + s.Columns - 1) / s.Columns
}

// Invert switches to a black background with white text and skeleton.
func (s *Scene) Invert() {
	s.Background, s.Foreground = Black, White
	for _, p := range s.Panels {
		for i := range p.Polylines {
			if p.Polylines[i].Role == RoleSkeleton {
				p.Polylines[i].Color = White
			}
		}
		for i := range p.Markers {
			if p.Markers[i].Role == RoleSoma {
				p.Markers[i].Color = White
			}
		}
	}
}

// SetAzimuth rotates every 3D panel to az degrees.
func (s *Scene) SetAzimuth(az float64) {
	for _, p := range s.Panels {
		if p.View.ThreeD {
			p.View.Azimuth = az
		}
	}
}

// HideAxes removes axes and labels from every panel, as used for movie frames.
func (s *Scene) HideAxes() {
	for _, p := range s.Panels {
		p.ShowAxes = false
		p.XLabel, p.YLabel, p.ZLabel = "", "", ""
	}
}

// Clone returns a deep copy suitable for per-frame mutation.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Panels = make([]*Panel, len(s.Panels))
	for i, p := range s.Panels {
		pc := *p
		pc.Polylines = make([]Polyline, len(p.Polylines))
		for j, l := range p.Polylines {
			l.Points = append([]Vec3(nil), l.Points...)
			pc.Polylines[j] = l
		}
		pc.Markers = append([]Marker(nil), p.Markers...)
		if p.Colorbar != nil {
			cb := *p.Colorbar
			pc.Colorbar = &cb
		}
		c.Panels[i] = &pc
	}
	return &c
}

// Validate checks a scene loaded from outside the process.
func (s *Scene) Validate() error {
	if s.Version != Version {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported scene version %d (want %d)", s.Version, Version)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "scene size %dx%d must be positive", s.Width, s.Height)
	}
	if len(s.Panels) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "scene has no panels")
	}
	if s.Columns <= 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "scene columns %d must be positive", s.Columns)
	}
	for i, p := range s.Panels {
		if p == nil {
			return errors.New(errors.ErrCodeInvalidFormat, "panel %d is empty", i)
		}
		for j, l := range p.Polylines {
			if len(l.Points) < 2 {
				return errors.New(errors.ErrCodeInvalidFormat, "panel %d polyline %d has %d points", i, j, len(l.Points))
			}
		}
		if cb := p.Colorbar; cb != nil && !(cb.Max > cb.Min) {
			return errors.New(errors.ErrCodeInvalidFormat, "panel %d colorbar range [%g, %g] is empty", i, cb.Min, cb.Max)
		}
	}
	return nil
}

// Extent returns the projected 2D bounds of the panel content.
//
// 3D panels use the projection of the bounding sphere so the extent does not
// change with the viewing angle, which keeps rotating frames steady.
func (p *Panel) Extent() (minX, minY, maxX, maxY float64) {
	lo, hi, ok := p.bounds3D()
	if !ok {
		return -1, -1, 1, 1
	}
	if p.View.ThreeD {
		c := lo.Add(hi).Scale(0.5)
		r := hi.Sub(lo).Length() / 2
		cx, cy, _ := p.View.Project(c)
		if r == 0 {
			r = 1
		}
		return cx - r, cy - r, cx + r, cy + r
	}

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	p.each(func(v Vec3) {
		x, y, _ := p.View.Project(v)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	})
	if maxX == minX {
		minX, maxX = minX-1, maxX+1
	}
	if maxY == minY {
		minY, maxY = minY-1, maxY+1
	}
	return minX, minY, maxX, maxY
}

func (p *Panel) bounds3D() (lo, hi Vec3, ok bool) {
	lo = Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	p.each(func(v Vec3) {
		ok = true
		lo = Vec3{math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z)}
		hi = Vec3{math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z)}
	})
	return lo, hi, ok
}

func (p *Panel) each(fn func(Vec3)) {
	for _, l := range p.Polylines {
		for _, v := range l.Points {
			fn(v)
		}
	}
	for _, m := range p.Markers {
		fn(m.At)
	}
}

// Count returns how many polylines carry the given role.
func (p *Panel) Count(role string) int {
	n := 0
	for _, l := range p.Polylines {
		if l.Role == role {
			n++
		}
	}
	return n
}
