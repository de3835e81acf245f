package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/arborheat/pkg/colormap"
	"github.com/matzehuels/arborheat/pkg/fonts"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgCanvas)

// WithEmbeddedFont embeds the label font so the SVG looks the same everywhere.
func WithEmbeddedFont() SVGOption { return func(c *svgCanvas) { c.embedFont = true } }

type svgCanvas struct {
	buf       bytes.Buffer
	embedFont bool
	gradients int
}

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) ([]byte, error) {
	c := &svgCanvas{}
	for _, opt := range opts {
		opt(c)
	}
	if err := draw(s, c); err != nil {
		return nil, err
	}
	return c.buf.Bytes(), nil
}

func (c *svgCanvas) begin(w, h float64, background string) {
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	c.buf.WriteString("  <style>\n")
	if c.embedFont {
		fmt.Fprintf(&c.buf, "    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	fmt.Fprintf(&c.buf, "    text { font-family: %s; }\n", fonts.FallbackFontFamily)
	c.buf.WriteString("    polyline { fill: none; stroke-linecap: round; stroke-linejoin: round; }\n")
	c.buf.WriteString("  </style>\n")
	fmt.Fprintf(&c.buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, background)
}

func (c *svgCanvas) polyline(pts []pt, color string, alpha, width float64, role string) {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(&c.buf, `  <polyline class="%s" points="%s" stroke="%s"%s stroke-width="%.3f"/>`+"\n",
		role, b.String(), color, opacity("stroke-opacity", alpha), width)
}

func (c *svgCanvas) circle(p pt, r float64, color string, alpha float64, role string) {
	fmt.Fprintf(&c.buf, `  <circle class="%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s/>`+"\n",
		role, p.X, p.Y, r, color, opacity("fill-opacity", alpha))
}

func (c *svgCanvas) line(a, b pt, color string, width float64) {
	fmt.Fprintf(&c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		a.X, a.Y, b.X, b.Y, color, width)
}

func (c *svgCanvas) frame(r rect, color string, width float64) {
	fmt.Fprintf(&c.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		r.X, r.Y, r.W, r.H, color, width)
}

func (c *svgCanvas) gradient(r rect, stops []colormap.Stop) {
	c.gradients++
	id := fmt.Sprintf("colorbar-%d", c.gradients)
	fmt.Fprintf(&c.buf, `  <defs><linearGradient id="%s" x1="0" y1="1" x2="0" y2="0">`, id)
	for _, s := range stops {
		fmt.Fprintf(&c.buf, `<stop offset="%.4f" stop-color="%s"/>`, s.Offset, s.Color)
	}
	c.buf.WriteString("</linearGradient></defs>\n")
	fmt.Fprintf(&c.buf, `  <rect class="colorbar" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="url(#%s)"/>`+"\n",
		r.X, r.Y, r.W, r.H, id)
}

func (c *svgCanvas) text(at pt, s string, size float64, color string, a anchor, rotate float64) {
	transform := ""
	if rotate != 0 {
		transform = fmt.Sprintf(` transform="rotate(%.0f %.2f %.2f)"`, rotate, at.X, at.Y)
	}
	fmt.Fprintf(&c.buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="%s" dominant-baseline="middle"%s>%s</text>`+"\n",
		at.X, at.Y, size, color, a.svg(), transform, html.EscapeString(s))
}

func (c *svgCanvas) end() {
	c.buf.WriteString("</svg>\n")
}

func (a anchor) svg() string {
	switch a {
	case anchorMiddle:
		return "middle"
	case anchorEnd:
		return "end"
	default:
		return "start"
	}
}

func opacity(attr string, alpha float64) string {
	if alpha >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, attr, alpha)
}
