package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/arborheat/pkg/animate"
	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Movie.FPS != animate.DefaultFPS || cfg.Movie.Bitrate != animate.DefaultBitrate || !cfg.Movie.Repeat {
		t.Errorf("movie defaults = %+v", cfg.Movie)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
[render]
width = 1200
colormap = "inferno"

[movie]
fps = 12
ffmpeg_args = "-pix_fmt yuv420p"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Width != 1200 || cfg.Render.Height != pipeline.DefaultHeight {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.Colormap != "inferno" || cfg.Movie.FPS != 12 || cfg.Movie.Delay != animate.DefaultDelay {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := cfg.Movie.ExtraArgs("cell.mp4"); got != "-pix_fmt yuv420p" {
		t.Errorf("ExtraArgs(mp4) = %q", got)
	}
	if got := cfg.Movie.ExtraArgs("cell.gif"); got != "" {
		t.Errorf("ExtraArgs(gif) = %q, want empty", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[render\nwidth = 1", "parse"},
		{"unknown key", "[render]\nwidht = 10\n", "unknown key"},
		{"wrong type", "[render]\nwidth = \"wide\"\n", "parse"},
		{"zero fps", "[movie]\nfps = 0\n", "must be positive"},
		{"bad colormap", "[render]\ncolormap = \"Jet Black\"\n", "colormap"},
		{"bad quoting", "[movie]\nconvert_args = \"-layers 'Optimize\"\n", "convert_args"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("err = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Render.EmbedFont = true
	cfg.View.Elevation = 10
	cfg.Movie.Angles = 90
	cfg.Movie.Repeat = false

	opts := cfg.Options()
	if !opts.EmbedFont || opts.Elevation != 10 || opts.Azimuth != cfg.View.Azimuth {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Movie.Angles != 90 || opts.Movie.Repeat {
		t.Errorf("movie = %+v", opts.Movie)
	}
	if opts.Kind != pipeline.KindHeatmap || !opts.Labels {
		t.Errorf("pipeline defaults lost: %+v", opts)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(AppName, FileName)) {
		t.Errorf("Path() = %q", path)
	}
}
