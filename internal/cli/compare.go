package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/pipeline"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		sf sceneFlags
		mf movieFlags
	)

	cmd := &cobra.Command{
		Use:   "compare [folder]",
		Short: "Heatmaps of every geometry file in a folder",
		Long: `Heatmaps of every geometry file in a folder.

Every .hoc and .swc file directly inside the folder gets a panel in a square
grid. All panels share one colorbar maximum, the longest path over all cells,
so colors compare across panels. The output is named after the folder unless
--output is given.

Examples:
  arborheat compare cells/
  arborheat compare cells/ --3d -f png --width 1600 --height 1200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := morph.Glob(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "no %v files in %s", morph.Formats, args[0])
			}
			printInfo("Comparing %d files in %s", len(files), args[0])

			opts := c.Config.Options()
			opts.Kind = pipeline.KindCompare
			opts.Inputs = files
			sf.apply(cmd, &opts)
			if mf.movie != "" {
				mf.apply(cmd, &opts, c, mf.movie)
			}
			return c.runScene(cmd.Context(), opts, basePath(sf.output, filepath.Clean(args[0])), mf.movie)
		},
	}

	sf.register(cmd, true)
	mf.register(cmd, true)
	return cmd
}
