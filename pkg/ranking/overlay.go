package ranking

import (
	"github.com/matzehuels/arborheat/pkg/errors"
)

// Overlay bundles the per-tip data a renderer needs to draw colored paths.
type Overlay struct {
	// Distances holds the path distance of each tip, indexed by tip.
	Distances []float64 `json:"distances"`

	// Order lists tip indices by descending distance.
	Order []int `json:"order"`

	// Values holds Distances[i] / Max for each tip.
	Values []float64 `json:"values"`

	// Max is the normalization maximum actually used.
	Max float64 `json:"max"`
}

// OverlayOption configures NewOverlay.
type OverlayOption func(*overlayConfig)

type overlayConfig struct {
	max    float64
	hasMax bool
}

// WithMax normalizes against vmax instead of the observed maximum.
func WithMax(vmax float64) OverlayOption {
	return func(c *overlayConfig) {
		c.max = vmax
		c.hasMax = true
	}
}

// NewOverlay ranks and normalizes dists. An empty input yields an empty
// overlay so callers can skip drawing without special casing.
func NewOverlay(dists []float64, opts ...OverlayOption) (*Overlay, error) {
	var cfg overlayConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	vmax := Max(dists)
	if cfg.hasMax {
		vmax = cfg.max
	}

	ov := &Overlay{
		Distances: dists,
		Order:     Order(dists),
		Max:       vmax,
	}
	if len(dists) == 0 {
		ov.Values = []float64{}
		return ov, nil
	}

	values, err := NormalizeTo(dists, vmax)
	if err != nil {
		return nil, err
	}
	ov.Values = values
	return ov, nil
}

// Len returns the number of tips.
func (o *Overlay) Len() int { return len(o.Distances) }

// DrawOrder returns tips shortest path first so the longest path is drawn on top.
func (o *Overlay) DrawOrder() []int { return Ascending(o.Order) }

// Rank returns the tip index with the n-th longest path (0 = longest).
func (o *Overlay) Rank(n int) (int, error) {
	if n < 0 || n >= len(o.Order) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "path rank %d out of range [0, %d)", n, len(o.Order))
	}
	return o.Order[n], nil
}
