// Package colormap maps normalized values in [0, 1] to colors.
//
// Colormaps are defined by evenly spaced control colors and interpolated with
// go-colorful. Perceptual maps (viridis, inferno, plasma, magma) blend in CIE
// L*a*b*; jet blends in RGB so its hue bands stay as sharp as the classic
// definition.
//
//	cmap, err := colormap.Get("viridis")
//	c := cmap.At(0.75) // colorful.Color, implements color.Color
//	fmt.Println(c.Hex())
package colormap

import (
	"fmt"
	"math"
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/arborheat/pkg/errors"
)

// Default is the colormap used when none is requested.
const Default = "viridis"

type blendSpace int

const (
	blendLab blendSpace = iota
	blendRGB
)

// Colormap is a continuous color scale.
type Colormap struct {
	name  string
	stops []colorful.Color
	space blendSpace
}

// Stop is a gradient stop, used to draw colorbars.
type Stop struct {
	Offset float64 // position in [0, 1]
	Color  string  // hex color, e.g. "#21918c"
}

var registry = map[string]*Colormap{
	"viridis": mustNew("viridis", blendLab,
		"#440154", "#472d7b", "#3b528b", "#2c728e", "#21918c", "#28ae80", "#5ec962", "#addc30", "#fde725"),
	"inferno": mustNew("inferno", blendLab,
		"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"),
	"plasma": mustNew("plasma", blendLab,
		"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"),
	"magma": mustNew("magma", blendLab,
		"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"),
	"jet": mustNew("jet", blendRGB,
		"#00007f", "#0000ff", "#007fff", "#00ffff", "#7fff7f", "#ffff00", "#ff7f00", "#ff0000", "#7f0000"),
	"greys": mustNew("greys", blendRGB, "#ffffff", "#000000"),
}

func mustNew(name string, space blendSpace, hexes ...string) *Colormap {
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(fmt.Sprintf("colormap %s: %v", name, err))
		}
		stops[i] = c
	}
	return &Colormap{name: name, stops: stops, space: space}
}

// Get returns the named colormap.
func Get(name string) (*Colormap, error) {
	if err := errors.ValidateColormapName(name); err != nil {
		return nil, err
	}
	c, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidColormap, "unknown colormap %q (available: %v)", name, Names())
	}
	return c, nil
}

// MustGet is like Get but panics on unknown names. Intended for package level defaults.
func MustGet(name string) *Colormap {
	c, err := Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Names returns the registered colormap names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Name returns the colormap's registered name.
func (c *Colormap) Name() string { return c.name }

// At returns the color for t. Values outside [0, 1] are clamped; NaN maps to 0.
func (c *Colormap) At(t float64) colorful.Color {
	switch {
	case math.IsNaN(t) || t <= 0:
		return c.stops[0]
	case t >= 1:
		return c.stops[len(c.stops)-1]
	}

	pos := t * float64(len(c.stops)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := c.stops[i], c.stops[i+1]
	if c.space == blendRGB {
		return a.BlendRgb(b, frac).Clamped()
	}
	return a.BlendLab(b, frac).Clamped()
}

// Hex returns the color for t as "#rrggbb".
func (c *Colormap) Hex(t float64) string {
	return c.At(t).Hex()
}

// Stops samples n evenly spaced gradient stops (n >= 2).
func (c *Colormap) Stops(n int) []Stop {
	if n < 2 {
		n = 2
	}
	out := make([]Stop, n)
	for i := range out {
		off := float64(i) / float64(n-1)
		out[i] = Stop{Offset: off, Color: c.Hex(off)}
	}
	return out
}
