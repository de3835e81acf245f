package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arborheat/pkg/animate"
	"github.com/matzehuels/arborheat/pkg/pipeline"
)

// sceneFlags are the figure flags shared by the scene commands. Values are
// applied over the config file only when given on the command line.
type sceneFlags struct {
	output    string
	formats   string
	width     int
	height    int
	lineWidth float64
	invert    bool
	noLabels  bool
	embedFont bool

	// heatmap only
	colormap string
	vmax     float64
	threeD   bool
	elev     float64
	azim     float64
}

// register adds the figure flags to cmd. heat adds the color scale and
// camera flags.
func (f *sceneFlags) register(cmd *cobra.Command, heat bool) {
	defaults := pipeline.DefaultOptions()
	f.registerOutput(cmd)
	fl := cmd.Flags()
	fl.Float64Var(&f.lineWidth, "line-width", 0, "overlay line width (default 1.5 in 2D, 2 in 3D)")
	fl.BoolVar(&f.noLabels, "no-labels", false, "omit title, axis labels and colorbar label")

	if !heat {
		return
	}
	fl.StringVar(&f.colormap, "colormap", "", "color scale (default jet in 2D, viridis in 3D)")
	fl.Float64Var(&f.vmax, "vmax", 0, "colorbar maximum in um (default longest path)")
	fl.BoolVar(&f.threeD, "3d", false, "project in 3D instead of dropping z")
	fl.Float64Var(&f.elev, "elev", defaults.Elevation, "3D camera elevation in degrees")
	fl.Float64Var(&f.azim, "azim", defaults.Azimuth, "3D camera azimuth in degrees")
}

// registerOutput adds the flags that apply to an already built scene.
func (f *sceneFlags) registerOutput(cmd *cobra.Command) {
	defaults := pipeline.DefaultOptions()
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fl.IntVar(&f.width, "width", defaults.Width, "figure width in pixels")
	fl.IntVar(&f.height, "height", defaults.Height, "figure height in pixels")
	fl.BoolVar(&f.invert, "invert", false, "black background with a white skeleton")
	fl.BoolVar(&f.embedFont, "embed-font", false, "embed the label font in SVG output")
}

// apply copies flags given on the command line into opts.
func (f *sceneFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fl := cmd.Flags()
	set := func(name string, fn func()) {
		if fl.Lookup(name) != nil && fl.Changed(name) {
			fn()
		}
	}
	set("width", func() { opts.Width = f.width })
	set("height", func() { opts.Height = f.height })
	set("line-width", func() { opts.LineWidth = f.lineWidth })
	set("invert", func() { opts.Invert = f.invert })
	set("no-labels", func() { opts.Labels = !f.noLabels })
	set("embed-font", func() { opts.EmbedFont = f.embedFont })
	set("colormap", func() { opts.Colormap = f.colormap })
	set("vmax", func() { opts.Max = f.vmax })
	set("3d", func() { opts.ThreeD = f.threeD })
	set("elev", func() { opts.Elevation = f.elev })
	set("azim", func() { opts.Azimuth = f.azim })
	opts.Formats = parseFormats(f.formats, f.output)
}

// movieFlags control rotation movies.
type movieFlags struct {
	movie     string
	angles    int
	fps       int
	frameSize int
	frameDir  string
	prefix    string
	toolArgs  string
	once      bool
}

// register adds the movie flags to cmd. With output the movie path is
// taken from --movie; the movie command uses --output instead.
func (f *movieFlags) register(cmd *cobra.Command, output bool) {
	defaults := pipeline.DefaultOptions()
	fl := cmd.Flags()
	if output {
		fl.StringVar(&f.movie, "movie", "", "also rotate the view into a movie (.mp4, .ogv, .gif, .jpeg, .png)")
	}
	fl.IntVar(&f.angles, "angles", defaults.Movie.Angles, "frames per full turn")
	fl.IntVar(&f.fps, "fps", defaults.Movie.FPS, "movie frame rate")
	fl.IntVar(&f.frameSize, "frame-size", defaults.FrameSize, "edge length of square frames in pixels")
	fl.StringVar(&f.frameDir, "frame-dir", "", "directory for intermediate frames (default next to the output)")
	fl.StringVar(&f.prefix, "frame-prefix", "", "file name prefix for intermediate frames (default unique)")
	fl.StringVar(&f.toolArgs, "encoder-args", "", "extra arguments for ffmpeg, convert or montage")
	fl.BoolVar(&f.once, "once", false, "play a GIF once instead of looping")
}

// checkMovie rejects an unsupported --movie extension before anything is rendered.
func checkMovie(movie string) error {
	if movie == "" {
		return nil
	}
	_, err := animate.KindOf(movie)
	return err
}

// apply copies flags given on the command line into opts. Encoder arguments
// fall back to the config entry for the tool that handles output.
func (f *movieFlags) apply(cmd *cobra.Command, opts *pipeline.Options, c *CLI, output string) {
	fl := cmd.Flags()
	if fl.Changed("angles") {
		opts.Movie.Angles = f.angles
	}
	if fl.Changed("fps") {
		opts.Movie.FPS = f.fps
	}
	if fl.Changed("frame-size") {
		opts.FrameSize = f.frameSize
	}
	if fl.Changed("frame-dir") {
		opts.Movie.Dir = f.frameDir
	}
	if fl.Changed("once") {
		opts.Movie.Repeat = !f.once
	}
	opts.Movie.Prefix = f.prefix
	opts.Movie.ExtraArgs = c.Config.Movie.ExtraArgs(output)
	if fl.Changed("encoder-args") {
		opts.Movie.ExtraArgs = f.toolArgs
	}
}
