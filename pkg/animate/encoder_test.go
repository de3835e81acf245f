package animate

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/arborheat/pkg/errors"
)

type fakeRenderer struct {
	azimuths []float64
	failAt   int
}

func (f *fakeRenderer) RenderFrame(azimuth float64, path string) error {
	if f.failAt > 0 && len(f.azimuths) == f.failAt {
		return stderrors.New("boom")
	}
	f.azimuths = append(f.azimuths, azimuth)
	return os.WriteFile(path, []byte("jpeg"), 0o644)
}

type fakeRunner struct {
	missing map[string]bool
	fail    bool
	name    string
	args    []string
	seen    []string // frame files present when the tool ran
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	if f.missing[file] {
		return "", exec.ErrNotFound
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string) (string, error) {
	f.name, f.args = name, args
	for _, a := range args {
		if strings.HasSuffix(a, ".jpeg") {
			if _, err := os.Stat(a); err == nil {
				f.seen = append(f.seen, a)
			}
		}
	}
	if f.fail {
		return "  codec not found\n", stderrors.New("exit status 1")
	}
	return "", nil
}

func frameFiles(t *testing.T, dir string) []string {
	t.Helper()
	m, err := filepath.Glob(filepath.Join(dir, "*.jpeg"))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
		ok   bool
	}{
		{"out.mp4", KindMovie, true},
		{"dir/out.ogv", KindMovie, true},
		{"out.gif", KindGIF, true},
		{"out.jpeg", KindStrip, true},
		{"out.png", KindStrip, true},
		{"out.MP4", 0, false},
		{"out.jpg", 0, false},
		{"out.avi", 0, false},
		{"out", 0, false},
	}
	for _, tt := range tests {
		got, err := KindOf(tt.path)
		if tt.ok {
			if err != nil || got != tt.want {
				t.Errorf("KindOf(%q) = %v, %v, want %v", tt.path, got, err, tt.want)
			}
			continue
		}
		var ufe *errors.UnsupportedFormatError
		if !stderrors.As(err, &ufe) {
			t.Errorf("KindOf(%q) err = %v, want UnsupportedFormatError", tt.path, err)
		}
	}
}

func TestEncodeMovie(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cell.mp4")
	runner := &fakeRunner{}
	r := &fakeRenderer{}

	opts := DefaultOptions()
	opts.Angles = 4
	opts.Prefix = "f_"
	opts.FPS = 13
	opts.Bitrate = 777
	if err := NewEncoder(WithRunner(runner)).Encode(context.Background(), r, out, opts); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if want := []float64{0, 90, 180, 270}; !reflect.DeepEqual(r.azimuths, want) {
		t.Errorf("azimuths = %v, want %v", r.azimuths, want)
	}
	want := []string{
		"-y", "-loglevel", "error",
		"-framerate", "13",
		"-i", filepath.Join(dir, "f_%03d.jpeg"),
		"-c:v", "mpeg4",
		"-b:v", "777k",
		out,
	}
	if runner.name != "ffmpeg" || !reflect.DeepEqual(runner.args, want) {
		t.Errorf("ran %s %v, want ffmpeg %v", runner.name, runner.args, want)
	}
	if left := frameFiles(t, dir); len(left) != 0 {
		t.Errorf("frames not removed: %v", left)
	}
}

func TestEncodeOgvCodec(t *testing.T) {
	runner := &fakeRunner{}
	opts := Options{Angles: 1, Prefix: "f_", Dir: t.TempDir()}
	out := filepath.Join(t.TempDir(), "cell.ogv")
	if err := NewEncoder(WithRunner(runner)).Encode(context.Background(), &fakeRenderer{}, out, opts); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if i := slices.Index(runner.args, "-c:v"); i < 0 || runner.args[i+1] != "libtheora" {
		t.Errorf("args = %v, want libtheora codec", runner.args)
	}
}

func TestEncodeGIF(t *testing.T) {
	for _, repeat := range []bool{true, false} {
		t.Run(fmt.Sprintf("repeat=%v", repeat), func(t *testing.T) {
			dir := t.TempDir()
			runner := &fakeRunner{}
			opts := Options{Angles: 3, Prefix: "g_", Delay: 100, Repeat: repeat, ExtraArgs: `-layers "Optimize"`}
			out := filepath.Join(dir, "spin.gif")
			if err := NewEncoder(WithRunner(runner)).Encode(context.Background(), &fakeRenderer{}, out, opts); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			loop := "1"
			if repeat {
				loop = "0"
			}
			want := append([]string{"-delay", "100", "-loop", loop}, Frames(dir, "g_", 3)...)
			want = append(want, "-layers", "Optimize", out)
			if runner.name != "convert" || !reflect.DeepEqual(runner.args, want) {
				t.Errorf("ran %s %v, want convert %v", runner.name, runner.args, want)
			}
			if len(runner.seen) != 3 {
				t.Errorf("tool saw %d frame files, want 3", len(runner.seen))
			}
		})
	}
}

func TestEncodeStrip(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}
	out := filepath.Join(dir, "strip.png")
	opts := Options{Angles: 2, Prefix: "s_"}
	if err := NewEncoder(WithRunner(runner)).Encode(context.Background(), &fakeRenderer{}, out, opts); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := append([]string{"-tile", "1x", "-geometry", "+0+0"}, Frames(dir, "s_", 2)...)
	want = append(want, out)
	if runner.name != "montage" || !reflect.DeepEqual(runner.args, want) {
		t.Errorf("ran %s %v, want montage %v", runner.name, runner.args, want)
	}
}

func TestEncodeUnsupportedRendersNothing(t *testing.T) {
	r := &fakeRenderer{}
	err := NewEncoder(WithRunner(&fakeRunner{})).Encode(context.Background(), r, "cell.avi", DefaultOptions())
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("err = %v, want UNSUPPORTED_FORMAT", err)
	}
	if len(r.azimuths) != 0 {
		t.Errorf("rendered %d frames before rejecting the format", len(r.azimuths))
	}
}

func TestEncodeMissingTool(t *testing.T) {
	r := &fakeRenderer{}
	runner := &fakeRunner{missing: map[string]bool{"ffmpeg": true}}
	out := filepath.Join(t.TempDir(), "cell.mp4")
	err := NewEncoder(WithRunner(runner)).Encode(context.Background(), r, out, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeToolNotFound) {
		t.Fatalf("err = %v, want TOOL_NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), "apt install ffmpeg") {
		t.Errorf("missing install hint: %v", err)
	}
	if len(r.azimuths) != 0 {
		t.Error("frames rendered although the tool is missing")
	}
}

func TestEncodeToolFailureKeepsFrames(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{fail: true}
	out := filepath.Join(dir, "cell.mp4")
	opts := Options{Angles: 5, Prefix: "keep_"}
	err := NewEncoder(WithRunner(runner)).Encode(context.Background(), &fakeRenderer{}, out, opts)

	var te *errors.ToolError
	if !stderrors.As(err, &te) {
		t.Fatalf("err = %v, want ToolError", err)
	}
	if !strings.HasPrefix(te.Command, "ffmpeg -y ") || !strings.HasSuffix(te.Command, out) {
		t.Errorf("command = %q", te.Command)
	}
	if te.Stderr != "codec not found" || te.ExitCode != -1 {
		t.Errorf("stderr = %q, exit = %d", te.Stderr, te.ExitCode)
	}
	if got := len(frameFiles(t, dir)); got != 5 {
		t.Errorf("%d frames left after failure, want 5", got)
	}
}

func TestEncodeRenderFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}
	opts := Options{Angles: 6, Prefix: "p_"}
	err := NewEncoder(WithRunner(runner)).Encode(context.Background(), &fakeRenderer{failAt: 3}, filepath.Join(dir, "x.gif"), opts)
	if err == nil || !strings.Contains(err.Error(), "frame 4 of 6") {
		t.Fatalf("err = %v", err)
	}
	if runner.name != "" {
		t.Error("tool ran after a render failure")
	}
	if left := frameFiles(t, dir); len(left) != 0 {
		t.Errorf("partial frames left: %v", left)
	}
}

func TestEncodeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewEncoder(WithRunner(&fakeRunner{})).Encode(ctx, &fakeRenderer{}, filepath.Join(t.TempDir(), "x.gif"), DefaultOptions())
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestEncodeOptionErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.mp4")
	tests := []struct {
		name string
		opts Options
	}{
		{"zero angles", Options{Angles: 0}},
		{"negative fps", Options{Angles: 1, FPS: -1}},
		{"prefix with slash", Options{Angles: 1, Prefix: "a/b"}},
		{"prefix with percent", Options{Angles: 1, Prefix: "a%d"}},
		{"unbalanced quote", Options{Angles: 1, ExtraArgs: `-vf "scale`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEncoder(WithRunner(&fakeRunner{})).Encode(context.Background(), &fakeRenderer{}, out, tt.opts)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestDefaultPrefixIsUnique(t *testing.T) {
	e := NewEncoder()
	a, err := e.resolve("out.gif", Options{Angles: 1})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := e.resolve("out.gif", Options{Angles: 1})
	if !regexp.MustCompile(`^frames-[0-9a-f]{8}_$`).MatchString(a.Prefix) {
		t.Errorf("prefix = %q", a.Prefix)
	}
	if a.Prefix == b.Prefix {
		t.Errorf("two runs share prefix %q", a.Prefix)
	}
	if a.Dir != "." {
		t.Errorf("dir = %q, want the output directory", a.Dir)
	}
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	stderr, err := ExecRunner{}.Run(context.Background(), "sh", []string{"-c", "echo oops >&2; exit 3"})
	te := errors.NewToolError("sh", err, stderr)
	if te.ExitCode != 3 || te.Stderr != "oops" {
		t.Errorf("exit = %d, stderr = %q", te.ExitCode, te.Stderr)
	}
}
