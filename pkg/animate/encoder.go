package animate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mattn/go-shellwords"

	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/observability"
)

// Defaults follow the settings the heatmap movies have always been made with.
const (
	DefaultAngles  = 30
	DefaultFPS     = 8
	DefaultBitrate = 2000
	DefaultDelay   = 20
)

// FrameRenderer draws the scene seen from azimuth degrees and writes it to path.
type FrameRenderer interface {
	RenderFrame(azimuth float64, path string) error
}

// Options controls one encoding run.
type Options struct {
	// Angles is the number of frames over a full turn.
	Angles int

	// Dir holds the intermediate frames. Empty means the output's directory.
	Dir string

	// Prefix names the frames. Empty means a unique "frames-<id>_" prefix.
	Prefix string

	// FPS and Bitrate (kbit/s) apply to movies.
	FPS     int
	Bitrate int

	// Delay (1/100 s per frame) and Repeat apply to GIFs.
	Delay  int
	Repeat bool

	// ExtraArgs is appended to the tool arguments just before the output
	// path, split with shell quoting rules.
	ExtraArgs string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Angles:  DefaultAngles,
		FPS:     DefaultFPS,
		Bitrate: DefaultBitrate,
		Delay:   DefaultDelay,
		Repeat:  true,
	}
}

// Encoder captures frame sequences and runs the external encoders.
type Encoder struct {
	runner CommandRunner
	logger *log.Logger
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithRunner replaces the os/exec command runner.
func WithRunner(r CommandRunner) EncoderOption {
	return func(e *Encoder) {
		if r != nil {
			e.runner = r
		}
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(l *log.Logger) EncoderOption {
	return func(e *Encoder) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEncoder creates an Encoder that runs real commands and logs nothing.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{runner: ExecRunner{}, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Frames returns the frame paths for n angles, in azimuth order.
func Frames(dir, prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = framePath(dir, prefix, i)
	}
	return out
}

func framePath(dir, prefix string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%03d.jpeg", prefix, i))
}

// Azimuth returns the camera azimuth of frame i out of n.
func Azimuth(i, n int) float64 {
	return float64(i) * 360 / float64(n)
}

// Encode renders opts.Angles frames with r and encodes them into output.
//
// The output extension and tool availability are checked before any frame is
// rendered. Frames are removed after a successful run and kept when the tool
// fails.
func (e *Encoder) Encode(ctx context.Context, r FrameRenderer, output string, opts Options) error {
	kind, err := KindOf(output)
	if err != nil {
		return err
	}
	opts, err = e.resolve(output, opts)
	if err != nil {
		return err
	}
	extra, err := shellwords.Parse(opts.ExtraArgs)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse extra encoder arguments %q", opts.ExtraArgs)
	}

	t := toolFor(kind)
	if _, err := e.runner.LookPath(t.name); err != nil {
		return errors.New(errors.ErrCodeToolNotFound,
			"%s not found: install with: %s", t.name, t.hint)
	}

	frames := Frames(opts.Dir, opts.Prefix, opts.Angles)
	if err := e.renderFrames(ctx, r, frames); err != nil {
		return err
	}

	args := buildArgs(kind, output, frames, opts, extra)
	cmdline := t.name + " " + strings.Join(args, " ")
	e.logger.Debug("Running encoder", "cmd", cmdline)

	hooks := observability.Encode()
	hooks.OnToolStart(ctx, t.name, len(frames))
	start := time.Now()
	stderr, err := e.runner.Run(ctx, t.name, args)
	if err != nil {
		err = errors.NewToolError(cmdline, err, stderr)
		hooks.OnToolComplete(ctx, t.name, time.Since(start), err)
		e.logger.Warn("Encoder failed, keeping frames", "dir", opts.Dir, "prefix", opts.Prefix)
		return err
	}
	hooks.OnToolComplete(ctx, t.name, time.Since(start), nil)

	removeFrames(frames)
	e.logger.Info("Encoded", "output", output, "frames", len(frames), "tool", t.name)
	return nil
}

// resolve fills defaults and validates the options.
func (e *Encoder) resolve(output string, opts Options) (Options, error) {
	if opts.Angles < 1 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "angles must be at least 1, got %d", opts.Angles)
	}
	if opts.FPS < 0 || opts.Bitrate < 0 || opts.Delay < 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "fps, bitrate and delay must not be negative")
	}
	if opts.FPS == 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Bitrate == 0 {
		opts.Bitrate = DefaultBitrate
	}
	if opts.Delay == 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Prefix == "" {
		opts.Prefix = "frames-" + uuid.NewString()[:8] + "_"
	}
	if err := errors.ValidateFramePrefix(opts.Prefix); err != nil {
		return opts, err
	}
	if opts.Dir == "" {
		opts.Dir = filepath.Dir(output)
	}
	return opts, nil
}

// renderFrames writes every frame. On failure the frames written so far are
// removed since the sequence is incomplete.
func (e *Encoder) renderFrames(ctx context.Context, r FrameRenderer, frames []string) error {
	hooks := observability.Encode()
	for i, path := range frames {
		if err := ctx.Err(); err != nil {
			removeFrames(frames[:i])
			return err
		}
		if err := r.RenderFrame(Azimuth(i, len(frames)), path); err != nil {
			removeFrames(frames[:i+1])
			return fmt.Errorf("frame %d of %d: %w", i+1, len(frames), err)
		}
		hooks.OnFrame(ctx, i, len(frames))
		e.logger.Debug("Rendered frame", "path", path, "azimuth", Azimuth(i, len(frames)))
	}
	return nil
}

func buildArgs(kind Kind, output string, frames []string, opts Options, extra []string) []string {
	var args []string
	switch kind {
	case KindMovie:
		pattern := filepath.Join(opts.Dir, opts.Prefix+"%03d.jpeg")
		args = []string{
			"-y", "-loglevel", "error",
			"-framerate", strconv.Itoa(opts.FPS),
			"-i", pattern,
			"-c:v", codec(output),
			"-b:v", strconv.Itoa(opts.Bitrate) + "k",
		}
	case KindGIF:
		loop := "1"
		if opts.Repeat {
			loop = "0"
		}
		args = append([]string{"-delay", strconv.Itoa(opts.Delay), "-loop", loop}, frames...)
	case KindStrip:
		args = append([]string{"-tile", "1x", "-geometry", "+0+0"}, frames...)
	}
	args = append(args, extra...)
	return append(args, output)
}

func removeFrames(frames []string) {
	for _, f := range frames {
		_ = os.Remove(f)
	}
}
