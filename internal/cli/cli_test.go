package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/arborheat/pkg/config"
	"github.com/matzehuels/arborheat/pkg/errors"
)

const (
	forkedFixture = "../../pkg/morph/testdata/forked.hoc"
	starFixture   = "../../pkg/morph/testdata/star.swc"
)

// run executes the root command with a config file holding cfg.
func run(t *testing.T, cfg string, args ...string) error {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(append(args, "--config", path))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"heatmap", "highlight", "compare", "visualize", "movie", "tips", "tree", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil || root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("root is missing --config or --verbose")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		want   []string
	}{
		{"empty defaults to svg", "", "", []string{"svg"}},
		{"single format", "png", "", []string{"png"}},
		{"multiple formats", "svg,pdf,json", "", []string{"svg", "pdf", "json"}},
		{"from output extension", "", "cell.png", []string{"png"}},
		{"flag beats extension", "pdf", "cell.png", []string{"pdf"}},
		{"unknown extension", "", "cell.tiff", []string{"svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input, tt.output); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q, %q) = %v, want %v", tt.input, tt.output, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/cell.hoc", "cell"},
		{"", "cells/", "cells"},
		{"", ".", appName},
		{"out/fig.svg", "cell.hoc", "out/fig"},
		{"out/fig", "cell.hoc", "out/fig"},
		{"fig.v2", "cell.hoc", "fig.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRankArg(t *testing.T) {
	if r, err := rankArg(1); err != nil || r != 0 {
		t.Errorf("rankArg(1) = %d, %v", r, err)
	}
	if _, err := rankArg(0); err == nil {
		t.Error("rankArg(0) should fail")
	}
}

func TestTreeFormat(t *testing.T) {
	tests := []struct{ format, output, want string }{
		{"", "", "svg"},
		{"", "tree.dot", "dot"},
		{"", "tree.pdf", "pdf"},
		{"png", "tree.pdf", "png"},
	}
	for _, tt := range tests {
		if got := treeFormat(tt.format, tt.output); got != tt.want {
			t.Errorf("treeFormat(%q, %q) = %q, want %q", tt.format, tt.output, got, tt.want)
		}
	}
}

func TestHeatmapCommand(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "cell")

	err := run(t, "[render]\nwidth = 320\nheight = 240\n",
		"heatmap", forkedFixture, "-o", base, "-f", "svg,json", "--width", "400")
	if err != nil {
		t.Fatalf("heatmap: %v", err)
	}

	svg := readFile(t, base+".svg")
	if !strings.Contains(svg, `width="400" height="240"`) {
		t.Errorf("flag and config sizes not applied:\n%.200s", svg)
	}
	if got := strings.Count(svg, `class="overlay"`); got != 2 {
		t.Errorf("overlay paths = %d, want 2", got)
	}
	if !strings.Contains(readFile(t, base+".json"), `"polylines"`) {
		t.Error("json scene not written")
	}
}

func TestHeatmapCommandErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"heatmap", filepath.Join(dir, "absent.hoc")}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"heatmap", forkedFixture, "-f", "bmp", "-o", filepath.Join(dir, "x")}, errors.ErrCodeInvalidFormat},
		{"bad colormap", []string{"heatmap", forkedFixture, "--colormap", "Rainbow!", "-o", filepath.Join(dir, "x")}, errors.ErrCodeInvalidColormap},
		{"unsupported movie", []string{"movie", forkedFixture, "-o", filepath.Join(dir, "spin.avi")}, errors.ErrCodeUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, "", tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestUnsupportedMovieFailsBeforeRendering(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "cell")
	err := run(t, "", "heatmap", forkedFixture, "--3d", "-o", base, "-f", "svg", "--movie", filepath.Join(dir, "spin.avi"))
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeUnsupportedFormat)
	}
	if _, statErr := os.Stat(base + ".svg"); !os.IsNotExist(statErr) {
		t.Errorf("heatmap written before the movie format was rejected (stat err = %v)", statErr)
	}

	saved := filepath.Join(dir, "saved")
	if err := run(t, "", "heatmap", forkedFixture, "-o", saved, "-f", "json"); err != nil {
		t.Fatalf("save scene: %v", err)
	}
	err = run(t, "", "visualize", saved+".json", "-o", filepath.Join(dir, "again.svg"), "--movie", filepath.Join(dir, "spin.avi"))
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Fatalf("visualize err = %v, want %s", err, errors.ErrCodeUnsupportedFormat)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "again.svg")); !os.IsNotExist(statErr) {
		t.Errorf("visualize wrote output before the movie format was rejected (stat err = %v)", statErr)
	}
}

func TestConfigErrors(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"tips", forkedFixture, "--config", filepath.Join(t.TempDir(), "none.toml")})
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit config: err = %v", err)
	}

	if err := run(t, "[render]\nwidth = -1\n", "tips", forkedFixture); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid config: err = %v", err)
	}
}

func TestHighlightCommand(t *testing.T) {
	dir := t.TempDir()
	if err := run(t, "", "highlight", starFixture, "--rank", "3", "-o", filepath.Join(dir, "third.svg")); err != nil {
		t.Fatalf("highlight: %v", err)
	}
	svg := readFile(t, filepath.Join(dir, "third.svg"))
	if got := strings.Count(svg, `class="highlight"`); got != 1 {
		t.Errorf("highlighted paths = %d, want 1", got)
	}
	if strings.Contains(svg, `class="overlay"`) {
		t.Error("highlight drew heatmap overlays")
	}

	err := run(t, "", "highlight", starFixture, "--rank", "4", "-o", filepath.Join(dir, "x.svg"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("rank past last tip: err = %v", err)
	}
	if err := run(t, "", "highlight", starFixture, "--rank", "0"); err == nil {
		t.Error("rank 0 accepted")
	}
}

func TestCompareCommand(t *testing.T) {
	cells := filepath.Join(t.TempDir(), "cells")
	if err := os.Mkdir(cells, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{forkedFixture, starFixture} {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(cells, filepath.Base(f)), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(cells, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "grid.svg")
	if err := run(t, "", "compare", cells, "-o", out); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if got := strings.Count(readFile(t, out), `class="soma"`); got != 2 {
		t.Errorf("soma markers = %d, want one per cell", got)
	}

	err := run(t, "", "compare", t.TempDir())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty folder: err = %v", err)
	}
}

func TestVisualizeCommand(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "cell")
	if err := run(t, "", "heatmap", forkedFixture, "--3d", "-o", scene, "-f", "json"); err != nil {
		t.Fatalf("heatmap: %v", err)
	}

	out := filepath.Join(dir, "again.svg")
	if err := run(t, "", "visualize", scene+".json", "-o", out, "--invert", "--width", "500"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	svg := readFile(t, out)
	if !strings.Contains(svg, `width="500"`) {
		t.Error("width override not applied")
	}
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("inverted background missing")
	}
}

func TestTipsCommand(t *testing.T) {
	if err := run(t, "", "tips", starFixture, "-n", "2"); err != nil {
		t.Fatalf("tips: %v", err)
	}
	if err := run(t, "", "tips", starFixture, "-n", "-1"); err == nil {
		t.Error("negative limit accepted")
	}
}

func TestTreeCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "branches.dot")
	if err := run(t, "", "tree", forkedFixture, "-o", out); err != nil {
		t.Fatalf("tree: %v", err)
	}
	dot := readFile(t, out)
	if !strings.HasPrefix(dot, "digraph G {") || !strings.Contains(dot, `"b0" -> "b1";`) {
		t.Errorf("unexpected dot:\n%s", dot)
	}

	err := run(t, "", "tree", forkedFixture, "-f", "json", "-o", filepath.Join(t.TempDir(), "t"))
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("json dendrogram: err = %v", err)
	}
}
