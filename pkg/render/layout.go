package render

import (
	"math"
	"strconv"

	"github.com/matzehuels/arborheat/pkg/colormap"
	"github.com/matzehuels/arborheat/pkg/scene"
)

type pt struct{ X, Y float64 }

type rect struct{ X, Y, W, H float64 }

func (r rect) inset(d float64) rect {
	return rect{r.X + d, r.Y + d, math.Max(r.W-2*d, 1), math.Max(r.H-2*d, 1)}
}

func (r rect) cutTop(d float64) rect {
	return rect{r.X, r.Y + d, r.W, math.Max(r.H-d, 1)}
}

type anchor int

const (
	anchorStart anchor = iota
	anchorMiddle
	anchorEnd
)

// canvas is the drawing surface the layout pass paints on. Coordinates are
// pixels with y pointing down.
type canvas interface {
	begin(w, h float64, background string)
	polyline(pts []pt, color string, alpha, width float64, role string)
	circle(c pt, r float64, color string, alpha float64, role string)
	line(a, b pt, color string, width float64)
	frame(r rect, color string, width float64)
	gradient(r rect, stops []colormap.Stop)
	text(at pt, s string, size float64, color string, a anchor, rotate float64)
	end()
}

// transform maps world units to pixels: px = ox + x*scale, py = oy - y*scale.
type transform struct {
	view       scene.View
	scale      float64
	ox, oy     float64
	minX, minY float64
	maxX, maxY float64
}

func (t transform) apply(v scene.Vec3) pt {
	x, y, _ := t.view.Project(v)
	return pt{t.ox + x*t.scale, t.oy - y*t.scale}
}

// fit centers the panel extent in r with equal scales on both axes and a 4%
// margin.
func fit(p *scene.Panel, r rect) transform {
	minX, minY, maxX, maxY := p.Extent()
	padX, padY := (maxX-minX)*0.04, (maxY-minY)*0.04
	minX, maxX = minX-padX, maxX+padX
	minY, maxY = minY-padY, maxY+padY

	scale := math.Min(r.W/(maxX-minX), r.H/(maxY-minY))
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	t := transform{
		view:  p.View,
		scale: scale,
		ox:    r.X + r.W/2 - cx*scale,
		oy:    r.Y + r.H/2 + cy*scale,
	}
	t.minX, t.maxX = (r.X-t.ox)/scale, (r.X+r.W-t.ox)/scale
	t.minY, t.maxY = (t.oy-(r.Y+r.H))/scale, (t.oy-r.Y)/scale
	return t
}

// fontSize scales text with the figure.
func fontSize(s *scene.Scene) float64 {
	return math.Max(10, math.Min(float64(s.Width), float64(s.Height))/60)
}

// draw lays out s and paints it on c.
func draw(s *scene.Scene, c canvas) error {
	if err := s.Validate(); err != nil {
		return err
	}
	w, h := float64(s.Width), float64(s.Height)
	fs := fontSize(s)

	c.begin(w, h, s.Background)
	top := 0.0
	if s.Title != "" {
		c.text(pt{w / 2, fs * 1.5}, s.Title, fs*1.3, s.Foreground, anchorMiddle, 0)
		top = fs * 2.8
	}

	cols, rows := s.Columns, s.Rows()
	cw, ch := w/float64(cols), (h-top)/float64(rows)
	for i, p := range s.Panels {
		cell := rect{X: float64(i%cols) * cw, Y: top + float64(i/cols)*ch, W: cw, H: ch}
		drawPanel(c, s, p, cell, fs)
	}
	c.end()
	return nil
}

func drawPanel(c canvas, s *scene.Scene, p *scene.Panel, cell rect, fs float64) {
	fg := s.Foreground
	inner := cell.inset(fs * 0.8)

	if p.Title != "" {
		c.text(pt{inner.X + inner.W/2, inner.Y + fs*0.6}, p.Title, fs, fg, anchorMiddle, 0)
		inner = inner.cutTop(fs * 1.8)
	}

	var bar rect
	if p.Colorbar != nil {
		barW := math.Max(fs, 8)
		reserve := barW + fs*6
		bar = rect{X: inner.X + inner.W - reserve + fs*0.5, Y: inner.Y + inner.H*0.1, W: barW, H: inner.H * 0.8}
		inner.W = math.Max(inner.W-reserve, 1)
	}

	plot := inner
	if p.ShowAxes {
		if p.View.ThreeD {
			plot.H = math.Max(plot.H-fs*2.2, 1)
		} else {
			plot = rect{inner.X + fs*4.5, inner.Y, math.Max(inner.W-fs*4.5, 1), math.Max(inner.H-fs*3.6, 1)}
		}
	}

	xf := fit(p, plot)
	for _, l := range p.Polylines {
		pts := make([]pt, len(l.Points))
		for i, v := range l.Points {
			pts[i] = xf.apply(v)
		}
		c.polyline(pts, l.Color, l.Alpha, l.Width, l.Role)
	}
	for _, m := range p.Markers {
		c.circle(xf.apply(m.At), m.Radius, m.Color, m.Alpha, m.Role)
	}

	if p.ShowAxes {
		if p.View.ThreeD {
			drawGnomon(c, p, plot, fg, fs)
		} else {
			drawAxes(c, p, plot, xf, fg, fs)
		}
	}
	if p.Colorbar != nil {
		drawColorbar(c, p.Colorbar, bar, fg, fs)
	}
}

func drawAxes(c canvas, p *scene.Panel, plot rect, xf transform, fg string, fs float64) {
	c.frame(plot, fg, 1)
	tick := fs * 0.4

	for _, v := range niceTicks(xf.minX, xf.maxX, 6) {
		x := xf.ox + v*xf.scale
		bottom := plot.Y + plot.H
		c.line(pt{x, bottom}, pt{x, bottom + tick}, fg, 1)
		c.text(pt{x, bottom + tick + fs*0.8}, formatTick(v, xf.minX, xf.maxX, 6), fs*0.8, fg, anchorMiddle, 0)
	}
	for _, v := range niceTicks(xf.minY, xf.maxY, 6) {
		y := xf.oy - v*xf.scale
		c.line(pt{plot.X - tick, y}, pt{plot.X, y}, fg, 1)
		c.text(pt{plot.X - tick - fs*0.3, y}, formatTick(v, xf.minY, xf.maxY, 6), fs*0.8, fg, anchorEnd, 0)
	}

	if p.XLabel != "" {
		c.text(pt{plot.X + plot.W/2, plot.Y + plot.H + fs*2.8}, p.XLabel, fs, fg, anchorMiddle, 0)
	}
	if p.YLabel != "" {
		c.text(pt{plot.X - fs*3.8, plot.Y + plot.H/2}, p.YLabel, fs, fg, anchorMiddle, -90)
	}
}

// drawGnomon marks the projected x, y and z directions in the lower left
// corner of a 3D plot.
func drawGnomon(c canvas, p *scene.Panel, plot rect, fg string, fs float64) {
	origin := pt{plot.X + fs*2, plot.Y + plot.H - fs*2}
	length := fs * 2.5
	axes := []struct {
		dir   scene.Vec3
		label string
	}{
		{scene.Vec3{X: 1}, "x"},
		{scene.Vec3{Y: 1}, "y"},
		{scene.Vec3{Z: 1}, "z"},
	}
	for _, a := range axes {
		dx, dy, _ := p.View.Project(a.dir)
		end := pt{origin.X + dx*length, origin.Y - dy*length}
		c.line(origin, end, fg, 1)
		c.text(pt{origin.X + dx*(length+fs*0.7), origin.Y - dy*(length+fs*0.7)}, a.label, fs*0.8, fg, anchorMiddle, 0)
	}

	label := p.XLabel
	if label == "" {
		label = p.ZLabel
	}
	if label != "" {
		c.text(pt{plot.X + plot.W/2, plot.Y + plot.H + fs*1.2}, label, fs, fg, anchorMiddle, 0)
	}
}

func drawColorbar(c canvas, cb *scene.Colorbar, bar rect, fg string, fs float64) {
	cmap, err := colormap.Get(cb.Colormap)
	if err != nil {
		cmap = colormap.MustGet(colormap.Default)
	}
	c.gradient(bar, cmap.Stops(64))
	c.frame(bar, fg, 1)

	span := cb.Max - cb.Min
	for _, v := range niceTicks(cb.Min, cb.Max, 5) {
		y := bar.Y + bar.H - (v-cb.Min)/span*bar.H
		c.line(pt{bar.X + bar.W, y}, pt{bar.X + bar.W + fs*0.3, y}, fg, 1)
		c.text(pt{bar.X + bar.W + fs*0.5, y}, formatTick(v, cb.Min, cb.Max, 5), fs*0.8, fg, anchorStart, 0)
	}
	if cb.Label != "" {
		c.text(pt{bar.X + bar.W + fs*4.6, bar.Y + bar.H/2}, cb.Label, fs, fg, anchorMiddle, -90)
	}
}

// tickStep returns a 1, 2 or 5 times power of ten step giving about n ticks.
func tickStep(lo, hi float64, n int) float64 {
	span := hi - lo
	if span <= 0 || n < 1 {
		return 0
	}
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f < 1.5:
		return mag
	case f < 3.5:
		return 2 * mag
	case f < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// niceTicks returns round tick values inside [lo, hi].
func niceTicks(lo, hi float64, n int) []float64 {
	step := tickStep(lo, hi, n)
	if step == 0 {
		return nil
	}
	var out []float64
	for i := math.Ceil(lo/step - 1e-9); i*step <= hi+step*1e-9; i++ {
		out = append(out, i*step)
	}
	return out
}

func formatTick(v, lo, hi float64, n int) string {
	step := tickStep(lo, hi, n)
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	if math.Abs(v) < step*1e-9 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
