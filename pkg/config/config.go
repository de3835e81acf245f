// Package config loads arborheat settings from a TOML file.
//
// Every field has a default, so a missing file is not an error: the
// defaults are what the tool has always produced. Command line flags are
// applied on top of the loaded values by the CLI.
//
// # File Format
//
//	# ~/.config/arborheat/config.toml
//	[render]
//	width = 1200
//	height = 900
//	colormap = "inferno"
//	embed_font = true
//
//	[view]
//	elevation = 20
//	azimuth = -45
//
//	[movie]
//	angles = 60
//	fps = 12
//	bitrate = 3000
//	delay = 10
//	repeat = true
//	frame_size = 600
//	ffmpeg_args = "-pix_fmt yuv420p"
//	convert_args = "-layers Optimize"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-shellwords"

	"github.com/matzehuels/arborheat/pkg/animate"
	"github.com/matzehuels/arborheat/pkg/colormap"
	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/pipeline"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// AppName names the configuration directory.
const AppName = "arborheat"

// FileName is the configuration file inside the application directory.
const FileName = "config.toml"

// Config holds all file based settings.
type Config struct {
	Render RenderConfig `toml:"render"`
	View   ViewConfig   `toml:"view"`
	Movie  MovieConfig  `toml:"movie"`
}

// RenderConfig controls figure output.
type RenderConfig struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Colormap  string  `toml:"colormap"` // empty keeps the per-view default
	LineWidth float64 `toml:"line_width"`
	EmbedFont bool    `toml:"embed_font"`
}

// ViewConfig sets the default 3D camera.
type ViewConfig struct {
	Elevation float64 `toml:"elevation"`
	Azimuth   float64 `toml:"azimuth"`
}

// MovieConfig controls frame capture and the external encoders.
type MovieConfig struct {
	Angles      int    `toml:"angles"`
	FPS         int    `toml:"fps"`
	Bitrate     int    `toml:"bitrate"`
	Delay       int    `toml:"delay"`
	Repeat      bool   `toml:"repeat"`
	FrameSize   int    `toml:"frame_size"`
	Dir         string `toml:"frame_dir"`
	FFmpegArgs  string `toml:"ffmpeg_args"`
	ConvertArgs string `toml:"convert_args"`
	MontageArgs string `toml:"montage_args"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Width:  pipeline.DefaultWidth,
			Height: pipeline.DefaultHeight,
		},
		View: ViewConfig{
			Elevation: scene.DefaultElevation,
			Azimuth:   scene.DefaultAzimuth,
		},
		Movie: MovieConfig{
			Angles:    animate.DefaultAngles,
			FPS:       animate.DefaultFPS,
			Bitrate:   animate.DefaultBitrate,
			Delay:     animate.DefaultDelay,
			Repeat:    true,
			FrameSize: pipeline.DefaultFrameSize,
		},
	}
}

// Path returns the default configuration file location,
// <user config dir>/arborheat/config.toml.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults. Keys the file does not mention keep their default value; unknown
// keys are an error so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks value ranges and that extra tool arguments parse.
func (c Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render size %dx%d must be positive", c.Render.Width, c.Render.Height)
	}
	if c.Render.Colormap != "" {
		if err := errors.ValidateColormapName(c.Render.Colormap); err != nil {
			return err
		}
		if _, err := colormap.Get(c.Render.Colormap); err != nil {
			return err
		}
	}
	m := c.Movie
	if m.Angles < 1 || m.FPS < 1 || m.Bitrate < 1 || m.Delay < 1 || m.FrameSize < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "movie settings must be positive")
	}
	for name, args := range map[string]string{
		"ffmpeg_args":  m.FFmpegArgs,
		"convert_args": m.ConvertArgs,
		"montage_args": m.MontageArgs,
	} {
		if _, err := shellwords.Parse(args); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "movie.%s", name)
		}
	}
	return nil
}

// ExtraArgs returns the configured extra arguments for the tool that
// encodes output.
func (m MovieConfig) ExtraArgs(output string) string {
	kind, err := animate.KindOf(output)
	if err != nil {
		return ""
	}
	switch kind {
	case animate.KindGIF:
		return m.ConvertArgs
	case animate.KindStrip:
		return m.MontageArgs
	default:
		return m.FFmpegArgs
	}
}

// Options returns pipeline options seeded from the configuration.
func (c Config) Options() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Width, opts.Height = c.Render.Width, c.Render.Height
	opts.Colormap = c.Render.Colormap
	opts.LineWidth = c.Render.LineWidth
	opts.EmbedFont = c.Render.EmbedFont
	opts.Elevation, opts.Azimuth = c.View.Elevation, c.View.Azimuth
	opts.FrameSize = c.Movie.FrameSize
	opts.Movie = animate.Options{
		Angles:  c.Movie.Angles,
		Dir:     c.Movie.Dir,
		FPS:     c.Movie.FPS,
		Bitrate: c.Movie.Bitrate,
		Delay:   c.Movie.Delay,
		Repeat:  c.Movie.Repeat,
	}
	return opts
}
