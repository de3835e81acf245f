package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/arborheat/pkg/animate"
	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/io"
	"github.com/matzehuels/arborheat/pkg/morph"
	"github.com/matzehuels/arborheat/pkg/observability"
	"github.com/matzehuels/arborheat/pkg/render/dendrogram"
	"github.com/matzehuels/arborheat/pkg/scene"
)

var (
	forked = filepath.Join("..", "morph", "testdata", "forked.hoc")
	star   = filepath.Join("..", "morph", "testdata", "star.swc")
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no inputs", Options{}, errors.ErrCodeInvalidInput},
		{"bad kind", Options{Kind: "movie", Inputs: []string{forked}}, errors.ErrCodeInvalidInput},
		{"two inputs for heatmap", Options{Inputs: []string{forked, star}}, errors.ErrCodeInvalidInput},
		{"negative rank", Options{Kind: KindHighlight, Inputs: []string{forked}, Rank: -1}, errors.ErrCodeInvalidInput},
		{"bad colormap", Options{Inputs: []string{forked}, Colormap: "Jet!"}, errors.ErrCodeInvalidColormap},
		{"bad format", Options{Inputs: []string{forked}, Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.Kind != KindHeatmap || o.Width != DefaultWidth || o.Height != DefaultHeight {
		t.Errorf("defaults = %+v", o)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Movie.Angles != animate.DefaultAngles || o.FrameSize != DefaultFrameSize {
		t.Errorf("movie defaults = %+v, frame %d", o.Movie, o.FrameSize)
	}
}

func TestExecuteHeatmap(t *testing.T) {
	opts := DefaultOptions()
	opts.Inputs = []string{forked}
	opts.Formats = []string{FormatSVG, FormatJSON, FormatPNG}

	result, err := NewRunner(nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.TipCount != 2 || result.Stats.MaxPath != 30 {
		t.Errorf("stats = %+v, want 2 tips and max 30", result.Stats)
	}
	for _, f := range opts.Formats {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if got := strings.Count(string(result.Artifacts[FormatSVG]), `class="overlay"`); got != 2 {
		t.Errorf("svg has %d overlay paths, want one per tip", got)
	}

	saved, err := io.ReadJSON(bytes.NewReader(result.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("saved scene does not load: %v", err)
	}
	if saved.Panels[0].Title != scene.HeatmapTitle {
		t.Errorf("panel title = %q", saved.Panels[0].Title)
	}
}

func TestExecuteInvert3D(t *testing.T) {
	opts := DefaultOptions()
	opts.Inputs = []string{star}
	opts.ThreeD = true
	opts.Invert = true

	result, err := NewRunner(nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	s := result.Scene
	if s.Background != scene.Black {
		t.Errorf("background = %s, want black", s.Background)
	}
	p := s.Panels[0]
	if !p.View.ThreeD || p.View.Elevation != scene.DefaultElevation {
		t.Errorf("view = %+v", p.View)
	}
	if p.Colorbar == nil || p.Colorbar.Colormap != "viridis" {
		t.Errorf("3D heatmap colorbar = %+v, want viridis", p.Colorbar)
	}
}

func TestExecuteCompare(t *testing.T) {
	opts := DefaultOptions()
	opts.Kind = KindCompare
	opts.Inputs = []string{forked, star}

	result, err := NewRunner(nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	s := result.Scene
	if s.Title != scene.CompareTitle || len(s.Panels) != 2 || s.Columns != 2 {
		t.Errorf("scene = %q with %d panels in %d columns", s.Title, len(s.Panels), s.Columns)
	}
	for _, p := range s.Panels {
		if p.Colorbar.Max != 30 {
			t.Errorf("panel %s colorbar max = %g, want shared 30", p.Title, p.Colorbar.Max)
		}
	}
}

func TestExecuteHighlight(t *testing.T) {
	opts := DefaultOptions()
	opts.Kind = KindHighlight
	opts.Inputs = []string{star}
	opts.Rank = 1

	result, err := NewRunner(nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := result.Scene.Panels[0].Count(scene.RoleHighlight); got != 1 {
		t.Errorf("highlighted paths = %d, want 1", got)
	}

	opts.Rank = 3
	_, err = NewRunner(nil, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("rank out of range: err = %v", err)
	}
}

func TestExecuteMissingFile(t *testing.T) {
	opts := DefaultOptions()
	opts.Inputs = []string{filepath.Join(t.TempDir(), "nope.swc")}
	_, err := NewRunner(nil, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRankTips(t *testing.T) {
	geo, err := NewRunner(nil, nil).Load(context.Background(), star)
	if err != nil {
		t.Fatal(err)
	}
	rk, err := RankTips(geo)
	if err != nil {
		t.Fatalf("RankTips: %v", err)
	}
	first := rk.Overlay.Order[0]
	if rk.Overlay.Distances[first] != 30 {
		t.Errorf("longest = %g, want 30", rk.Overlay.Distances[first])
	}
	if len(rk.Tips) != rk.Overlay.Len() {
		t.Error("tips and overlay disagree")
	}
}

type fakeRunner struct {
	name string
	args []string
}

func (f *fakeRunner) LookPath(file string) (string, error) { return file, nil }

func (f *fakeRunner) Run(_ context.Context, name string, args []string) (string, error) {
	f.name, f.args = name, args
	return "", nil
}

func TestAnimate(t *testing.T) {
	r := NewRunner(nil, nil)
	geo, err := r.Load(context.Background(), forked)
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	s, err := r.BuildScene(context.Background(), []*morph.Geometry{geo}, opts)
	if err != nil {
		t.Fatal(err)
	}

	fake := &fakeRunner{}
	r.Encoder = animate.NewEncoder(animate.WithRunner(fake))
	opts.FrameSize = 32
	opts.Movie.Angles = 3
	opts.Movie.Prefix = "t_"
	dir := t.TempDir()
	out := filepath.Join(dir, "spin.gif")

	if err := r.Animate(context.Background(), s, out, opts); err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if fake.name != "convert" || fake.args[len(fake.args)-1] != out {
		t.Errorf("ran %s %v", fake.name, fake.args)
	}
	if left, _ := filepath.Glob(filepath.Join(dir, "*.jpeg")); len(left) != 0 {
		t.Errorf("frames left behind: %v", left)
	}
	if s.Panels[0].View.ThreeD || !s.Panels[0].ShowAxes {
		t.Error("Animate modified the scene")
	}
}

func TestDendrogram(t *testing.T) {
	r := NewRunner(nil, nil)
	geo, err := r.Load(context.Background(), forked)
	if err != nil {
		t.Fatal(err)
	}
	dot, err := r.Dendrogram(context.Background(), geo, FormatDOT, dendrogram.Options{})
	if err != nil {
		t.Fatalf("Dendrogram: %v", err)
	}
	if !bytes.HasPrefix(dot, []byte("digraph G {")) {
		t.Errorf("dot output = %s", dot)
	}

	_, err = r.Dendrogram(context.Background(), geo, FormatJSON, dendrogram.Options{})
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("json dendrogram: err = %v", err)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	loads, scenes, renders int
}

func (h *countingHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
	h.loads++
}

func (h *countingHooks) OnSceneComplete(context.Context, string, time.Duration, error) {
	h.scenes++
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.renders++
}

func TestExecuteEmitsHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	opts := DefaultOptions()
	opts.Kind = KindCompare
	opts.Inputs = []string{forked, star}
	if _, err := NewRunner(nil, nil).Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if h.loads != 2 || h.scenes != 1 || h.renders != 1 {
		t.Errorf("hooks = %d loads, %d scenes, %d renders", h.loads, h.scenes, h.renders)
	}
}
