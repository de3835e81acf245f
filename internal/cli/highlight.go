package cli

import (
	"context"
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arborheat/pkg/pipeline"
)

// errPickCancelled is returned when the tip picker is closed without a choice.
var errPickCancelled = stderrors.New("no tip selected")

// highlightCommand creates the highlight command.
func (c *CLI) highlightCommand() *cobra.Command {
	var (
		sf   sceneFlags
		rank int
		pick bool
	)

	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Show the path to the n-th longest tip",
		Long: `Show the path to the n-th longest tip.

Draws the skeleton and overlays only the path from the soma to one tip. The
tip is chosen by rank (1 is the longest path) or interactively with --pick,
which lists every tip with its path length.

Examples:
  arborheat highlight cell.hoc
  arborheat highlight cell.hoc --rank 3 -o third.png
  arborheat highlight cell.swc --pick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			opts.Kind = pipeline.KindHighlight
			opts.Inputs = args
			sf.apply(cmd, &opts)

			r, err := rankArg(rank)
			if err != nil {
				return err
			}
			opts.Rank = r
			if pick {
				r, err := c.pickRank(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				opts.Rank = r
			}
			return c.runScene(cmd.Context(), opts, basePath(sf.output, args[0]), "")
		},
	}

	sf.register(cmd, false)
	cmd.Flags().IntVar(&rank, "rank", 1, "tip to highlight, 1 is the longest path")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose the tip interactively")
	cmd.MarkFlagsMutuallyExclusive("rank", "pick")
	return cmd
}

// pickRank loads path and lets the user choose a tip.
func (c *CLI) pickRank(ctx context.Context, path string) (int, error) {
	geo, err := c.newRunner().Load(ctx, path)
	if err != nil {
		return 0, err
	}
	ranking, err := pipeline.RankTips(geo)
	if err != nil {
		return 0, err
	}
	return pickTip(geo.Name, ranking)
}
