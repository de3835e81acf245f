package render

import (
	"bytes"
	"image"
	"math"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"

	"github.com/matzehuels/arborheat/pkg/colormap"
	"github.com/matzehuels/arborheat/pkg/fonts"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// rasterCanvas draws with gg. Faces are cached per size for one render.
type rasterCanvas struct {
	dc    *gg.Context
	faces map[float64]font.Face
	err   error
}

// RenderImage rasterizes the scene at its own pixel size.
func RenderImage(s *scene.Scene) (image.Image, error) {
	dc, err := rasterize(s)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// RenderPNG rasterizes the scene and encodes it as PNG.
func RenderPNG(s *scene.Scene) ([]byte, error) {
	dc, err := rasterize(s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rasterize(s *scene.Scene) (*gg.Context, error) {
	c := &rasterCanvas{faces: make(map[float64]font.Face)}
	defer c.close()
	if err := draw(s, c); err != nil {
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.dc, nil
}

func (c *rasterCanvas) close() {
	for _, f := range c.faces {
		f.Close()
	}
}

func (c *rasterCanvas) setColor(hex string, alpha float64) {
	col, err := colorful.Hex(hex)
	if err != nil {
		col = colorful.Color{}
	}
	c.dc.SetRGBA(col.R, col.G, col.B, alpha)
}

func (c *rasterCanvas) begin(w, h float64, background string) {
	c.dc = gg.NewContext(int(math.Round(w)), int(math.Round(h)))
	c.setColor(background, 1)
	c.dc.Clear()
	c.dc.SetLineCapRound()
	c.dc.SetLineJoinRound()
}

func (c *rasterCanvas) polyline(pts []pt, color string, alpha, width float64, _ string) {
	if len(pts) < 2 {
		return
	}
	c.dc.NewSubPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.setColor(color, alpha)
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

func (c *rasterCanvas) circle(p pt, r float64, color string, alpha float64, _ string) {
	c.dc.DrawCircle(p.X, p.Y, r)
	c.setColor(color, alpha)
	c.dc.Fill()
}

func (c *rasterCanvas) line(a, b pt, color string, width float64) {
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.setColor(color, 1)
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

func (c *rasterCanvas) frame(r rect, color string, width float64) {
	c.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	c.setColor(color, 1)
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

// gradient fills r bottom to top, one pixel row at a time.
func (c *rasterCanvas) gradient(r rect, stops []colormap.Stop) {
	n := int(math.Ceil(r.H))
	for i := 0; i < n; i++ {
		t := 1 - (float64(i)+0.5)/float64(n)
		c.setColor(sampleStops(stops, t), 1)
		c.dc.DrawRectangle(r.X, r.Y+float64(i), r.W, 1)
		c.dc.Fill()
	}
}

// sampleStops returns the color of the stop nearest to t.
func sampleStops(stops []colormap.Stop, t float64) string {
	best := stops[0]
	for _, s := range stops[1:] {
		if math.Abs(s.Offset-t) < math.Abs(best.Offset-t) {
			best = s
		}
	}
	return best.Color
}

func (c *rasterCanvas) text(at pt, s string, size float64, color string, a anchor, rotate float64) {
	face, ok := c.faces[size]
	if !ok {
		f, err := fonts.Face(size)
		if err != nil {
			c.err = err
			return
		}
		face = f
		c.faces[size] = f
	}
	c.dc.SetFontFace(face)
	c.setColor(color, 1)

	ax := 0.0
	switch a {
	case anchorMiddle:
		ax = 0.5
	case anchorEnd:
		ax = 1
	}
	if rotate != 0 {
		c.dc.Push()
		c.dc.RotateAbout(gg.Radians(rotate), at.X, at.Y)
		c.dc.DrawStringAnchored(s, at.X, at.Y, ax, 0.5)
		c.dc.Pop()
		return
	}
	c.dc.DrawStringAnchored(s, at.X, at.Y, ax, 0.5)
}

func (c *rasterCanvas) end() {}
