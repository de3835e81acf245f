package render

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/arborheat/pkg/scene"
)

// DefaultFrameQuality is the JPEG quality used for movie frames.
const DefaultFrameQuality = 90

// FrameWriter renders rotated views of a scene to JPEG files.
type FrameWriter struct {
	base    *scene.Scene
	quality int
}

// FrameOption configures a FrameWriter.
type FrameOption func(*FrameWriter)

// WithFrameSize renders frames at size x size pixels instead of the scene size.
func WithFrameSize(size int) FrameOption {
	return func(w *FrameWriter) {
		if size > 0 {
			w.base.Width, w.base.Height = size, size
		}
	}
}

// WithFrameQuality sets the JPEG quality (1-100).
func WithFrameQuality(q int) FrameOption {
	return func(w *FrameWriter) {
		if q >= 1 && q <= 100 {
			w.quality = q
		}
	}
}

// NewFrameWriter prepares s for rotation: axes are removed for a cleaner
// picture and flat panels are lifted into 3D at the default elevation.
// s itself is not modified.
func NewFrameWriter(s *scene.Scene, opts ...FrameOption) *FrameWriter {
	base := s.Clone()
	base.HideAxes()
	for _, p := range base.Panels {
		if !p.View.ThreeD {
			p.View = scene.View3D(scene.DefaultElevation, 0)
		}
	}
	w := &FrameWriter{base: base, quality: DefaultFrameQuality}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// RenderFrame draws the scene at the given azimuth and saves it to path.
// The image format follows the path extension.
func (w *FrameWriter) RenderFrame(azimuth float64, path string) error {
	s := w.base.Clone()
	s.SetAzimuth(azimuth)
	img, err := RenderImage(s)
	if err != nil {
		return fmt.Errorf("render frame at %.1f°: %w", azimuth, err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(w.quality)); err != nil {
		return fmt.Errorf("save frame %s: %w", path, err)
	}
	return nil
}
