package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arborheat/pkg/pipeline"
)

// tipsCommand creates the tips command.
func (c *CLI) tipsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tips [file]",
		Short: "List tips by path length",
		Long: `List tips by path length.

Prints every tip with its path length from the soma and the normalized value
used for its heatmap color, longest first. The rank column is what
'highlight --rank' expects.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}
			geo, err := c.newRunner().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ranking, err := pipeline.RankTips(geo)
			if err != nil {
				return err
			}

			rows := tipRows(ranking)
			fmt.Println(StyleTitle.Render(geo.Name))
			printStats(1, len(rows), ranking.Overlay.Max)
			if len(rows) == 0 {
				printWarning("no tips")
				return nil
			}
			if limit > 0 && limit < len(rows) {
				rows = rows[:limit]
			}
			fmt.Println(renderTipTable(rows, -1))
			printNextStep("Highlight the longest path", fmt.Sprintf("%s highlight %s --rank 1", appName, args[0]))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the n longest paths (0 for all)")
	return cmd
}
