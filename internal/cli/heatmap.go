package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arborheat/pkg/pipeline"
)

// heatmapCommand creates the heatmap command.
func (c *CLI) heatmapCommand() *cobra.Command {
	var (
		sf sceneFlags
		mf movieFlags
	)

	cmd := &cobra.Command{
		Use:   "heatmap [file]",
		Short: "Color every soma-to-tip path by its length",
		Long: `Color every soma-to-tip path by its length.

The skeleton of the cell is drawn in black and the path from the soma to each
tip is overlaid in the color of its length, shortest first so the longest
paths end on top. Tips and the soma are marked.

With --3d the cell is projected through a camera (--elev, --azim) and later
paths are drawn slightly wider. Save the figure as json to re-render it with
'visualize' or rotate it with 'movie'; --movie does both in one go.

Examples:
  arborheat heatmap cell.hoc
  arborheat heatmap cell.swc --3d --invert -f svg,json
  arborheat heatmap cell.hoc --3d --movie cell.gif --angles 60`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			opts.Kind = pipeline.KindHeatmap
			opts.Inputs = args
			sf.apply(cmd, &opts)
			if mf.movie != "" {
				mf.apply(cmd, &opts, c, mf.movie)
			}
			return c.runScene(cmd.Context(), opts, basePath(sf.output, args[0]), mf.movie)
		},
	}

	sf.register(cmd, true)
	mf.register(cmd, true)
	return cmd
}

// runScene executes the pipeline, writes the artifacts and optionally
// rotates the scene into a movie.
func (c *CLI) runScene(ctx context.Context, opts pipeline.Options, base, movie string) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := checkMovie(movie); err != nil {
		return err
	}
	runner := c.newRunner()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Built scene", "kind", opts.Kind, "files", len(result.Geometries), "tips", result.Stats.TipCount)

	paths, err := writeArtifacts(ctx, result.Artifacts, opts.Formats, base)
	if err != nil {
		return err
	}
	printSuccess("Rendered %s", StyleHighlight.Render(opts.Kind))
	printStats(len(result.Geometries), result.Stats.TipCount, result.Stats.MaxPath)
	for _, p := range paths {
		printFile(p)
	}

	if movie != "" {
		return c.animate(ctx, runner, result.Scene, movie, opts)
	}
	return nil
}
