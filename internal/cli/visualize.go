package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arborheat/pkg/io"
)

// visualizeCommand creates the visualize command for re-rendering a saved scene.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		sf sceneFlags
		mf movieFlags
	)

	cmd := &cobra.Command{
		Use:   "visualize [scene.json]",
		Short: "Render a saved scene",
		Long: `Render a saved scene.

The visualize command takes a scene saved with '-f json' by heatmap,
highlight or compare and renders it again, optionally at another size, with
inverted colors or rotated into a movie. The scene holds every line and
color, so no geometry file is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}

			opts := c.Config.Options()
			opts.Width, opts.Height = s.Width, s.Height
			sf.apply(cmd, &opts)
			if opts.Invert {
				s.Invert()
			}
			s.Width, s.Height = opts.Width, opts.Height
			if err := s.Validate(); err != nil {
				return err
			}
			if err := checkMovie(mf.movie); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner := c.newRunner()
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", args[0]))
			spinner.Start()
			artifacts, err := runner.Render(ctx, s, opts)
			if err != nil {
				spinner.StopWithError("Visualization failed")
				return fmt.Errorf("visualize: %w", err)
			}
			spinner.Stop()

			paths, err := writeArtifacts(ctx, artifacts, opts.Formats, basePath(sf.output, args[0]))
			if err != nil {
				return err
			}
			printSuccess("Rendered %d panel(s)", len(s.Panels))
			for _, p := range paths {
				printFile(p)
			}

			if mf.movie != "" {
				mf.apply(cmd, &opts, c, mf.movie)
				return c.animate(ctx, runner, s, mf.movie, opts)
			}
			return nil
		},
	}

	sf.registerOutput(cmd)
	mf.register(cmd, true)
	return cmd
}
