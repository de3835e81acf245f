package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arborheat/pkg/buildinfo"
	"github.com/matzehuels/arborheat/pkg/config"
	"github.com/matzehuels/arborheat/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs. Flags given on the
	// command line take precedence over it.
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "arborheat colors neuron reconstructions by path length",
		Long: `arborheat renders neuron morphologies (.hoc and .swc files) as heatmaps
where every path from the soma to a tip is colored by its length. Views can be
saved as scenes, re-rendered later and rotated into movies.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default <user config dir>/arborheat/config.toml)")

	root.AddCommand(c.heatmapCommand())
	root.AddCommand(c.highlightCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.movieCommand())
	root.AddCommand(c.tipsCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file. An explicit --config path must
// exist; the default location is optional.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		p, err := configPath()
		if err != nil {
			c.Logger.Debug("no user config directory", "error", err)
			return nil
		}
		path = p
	} else if err := requireFile(path); err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(nil, c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns the default configuration file location.
func configPath() (string, error) {
	return config.Path()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// Without explicit formats the output extension decides, then svg.
func parseFormats(s, output string) []string {
	if s != "" {
		return strings.Split(s, ",")
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); pipeline.ValidFormats[ext] {
		return []string{ext}
	}
	return []string{pipeline.FormatSVG}
}

// basePath derives the output path without extension. Without an output
// the input file name is used, placed in the current directory.
func basePath(output, input string) string {
	if output == "" {
		name := filepath.Base(filepath.Clean(input))
		if name == "." || name == string(filepath.Separator) {
			return appName
		}
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// rankArg converts the 1-based --rank flag to a pipeline rank.
func rankArg(rank int) (int, error) {
	if rank < 1 {
		return 0, fmt.Errorf("--rank must be at least 1, got %d", rank)
	}
	return rank - 1, nil
}
