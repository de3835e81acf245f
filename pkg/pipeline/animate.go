package pipeline

import (
	"context"

	"github.com/matzehuels/arborheat/pkg/render"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// Animate rotates s through opts.Movie.Angles azimuths and encodes the frames
// into output. Axes are hidden and flat scenes are tilted into 3D; s itself is
// left unchanged.
func (r *Runner) Animate(ctx context.Context, s *scene.Scene, output string, opts Options) error {
	opts.SetDefaults()
	fw := render.NewFrameWriter(s, render.WithFrameSize(opts.FrameSize))

	r.Logger.Info("Rendering frames", "output", output, "angles", opts.Movie.Angles)
	return r.Encoder.Encode(ctx, fw, output, opts.Movie)
}
