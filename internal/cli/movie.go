package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arborheat/pkg/io"
	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/pipeline"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// movieCommand creates the movie command.
func (c *CLI) movieCommand() *cobra.Command {
	var (
		sf     sceneFlags
		mf     movieFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "movie [scene.json | file] -o output",
		Short: "Rotate a scene or geometry into a movie",
		Long: `Rotate a scene or geometry into a movie.

Frames are rendered at evenly spaced azimuths over a full turn and handed to
an external tool chosen by the output extension:

  .mp4 .ogv    ffmpeg (mpeg4 or libtheora)
  .gif         ImageMagick convert, looping unless --once
  .jpeg .png   ImageMagick montage, frames stacked into one strip

A geometry file is first drawn as a 3D heatmap. Axes are hidden in every
frame. Frames are removed after a successful encode and kept when the tool
fails so the command can be retried by hand.

Examples:
  arborheat movie cell.hoc -o cell.mp4
  arborheat movie scene.json -o spin.gif --angles 36 --once
  arborheat movie cell.swc -o strip.png --angles 8 --frame-size 240`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.Config.Options()
			opts.Kind = pipeline.KindHeatmap
			opts.ThreeD = true
			opts.Inputs = args
			sf.apply(cmd, &opts)
			mf.apply(cmd, &opts, c, output)

			runner := c.newRunner()
			s, err := c.movieScene(ctx, runner, args[0], opts)
			if err != nil {
				return err
			}
			return c.animate(ctx, runner, s, output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "movie file (.mp4, .ogv, .gif, .jpeg, .png)")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().StringVar(&sf.colormap, "colormap", "", "color scale for geometry input (default viridis)")
	cmd.Flags().Float64Var(&sf.vmax, "vmax", 0, "colorbar maximum in um for geometry input")
	cmd.Flags().Float64Var(&sf.elev, "elev", scene.DefaultElevation, "camera elevation in degrees for geometry input")
	cmd.Flags().BoolVar(&sf.invert, "invert", false, "black background with a white skeleton")
	mf.register(cmd, false)
	return cmd
}

// movieScene loads a saved scene or builds a 3D heatmap from a geometry file.
func (c *CLI) movieScene(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*scene.Scene, error) {
	if filepath.Ext(input) == "."+pipeline.FormatJSON {
		s, err := io.ImportJSON(input)
		if err != nil {
			return nil, err
		}
		if opts.Invert {
			s.Invert()
		}
		return s, nil
	}

	geo, err := runner.Load(ctx, input)
	if err != nil {
		return nil, err
	}
	return runner.BuildScene(ctx, []*morph.Geometry{geo}, opts)
}
