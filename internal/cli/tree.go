package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arborheat/pkg/pipeline"
	"github.com/matzehuels/arborheat/pkg/render/dendrogram"
)

// treeCommand creates the tree command for branch dendrograms.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output string
		format string
		opts   dendrogram.Options
	)

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Draw the branch tree as a dendrogram",
		Long: `Draw the branch tree as a dendrogram.

Every unbranched run of the neurite becomes a box, connected to the branch it
grows from and filled with the color of the path length at its end. Tips are
drawn as ellipses. Layout is done by Graphviz; '-f dot' writes the Graphviz
source instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			format = treeFormat(format, output)
			path := basePath(strings.TrimSuffix(output, "."+pipeline.FormatDOT), args[0]) + "." + format

			runner := c.newRunner()
			geo, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Laying out branches...")
			spinner.Start()
			data, err := runner.Dendrogram(ctx, geo, format, opts)
			if err != nil {
				spinner.StopWithError("Dendrogram failed")
				return fmt.Errorf("tree: %w", err)
			}
			spinner.Stop()

			if err := writeFile(path, data); err != nil {
				return err
			}
			printSuccess("Drew %d branches", len(geo.Branches()))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg (default), png, pdf, dot")
	cmd.Flags().StringVar(&opts.Colormap, "colormap", "", "fill color scale (default viridis)")
	cmd.Flags().Float64Var(&opts.Max, "vmax", 0, "color scale maximum in um (default longest path)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label boxes with branch length and end distance")
	return cmd
}

// treeFormat picks the dendrogram format from the flag, then the output
// extension, then svg.
func treeFormat(format, output string) string {
	if format != "" {
		return format
	}
	if ext := filepath.Ext(output); ext == "."+pipeline.FormatDOT || pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimPrefix(ext, ".")
	}
	return pipeline.FormatSVG
}
