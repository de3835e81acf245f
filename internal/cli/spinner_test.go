package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/arborheat/pkg/observability"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner("Testing...")
	s.out = &bytes.Buffer{}
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	// Stop cancels the spinner's own context.
	if !s.Cancelled() {
		t.Error("Cancelled() should report true after Stop")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.out = &bytes.Buffer{}
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.out = &bytes.Buffer{}
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.out = &bytes.Buffer{}
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("Testing success...")
	s.out = &bytes.Buffer{}
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Done!")
}

func TestSpinnerUpdateClearsWidestMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("short")
	s.out = &buf
	s.Update("a much longer message")
	s.Update("tiny")
	s.clearLine()

	if got := s.Message(); got != "tiny" {
		t.Errorf("Message() = %q, want %q", got, "tiny")
	}
	want := "\r" + strings.Repeat(" ", len("a much longer message")+4) + "\r"
	if buf.String() != want {
		t.Errorf("clearLine wrote %q, want %q", buf.String(), want)
	}
}

func TestTrackEncoding(t *testing.T) {
	defer observability.Reset()

	s := newSpinner("Encoding...")
	s.out = &bytes.Buffer{}
	restore := trackEncoding(s)

	ctx := context.Background()
	observability.Encode().OnFrame(ctx, 4, 30)
	if got := s.Message(); got != "Rendering frame 5/30..." {
		t.Errorf("after OnFrame message = %q", got)
	}
	observability.Encode().OnToolStart(ctx, "ffmpeg", 30)
	if got := s.Message(); got != "Encoding 30 frames with ffmpeg..." {
		t.Errorf("after OnToolStart message = %q", got)
	}

	restore()
	observability.Encode().OnFrame(ctx, 0, 30)
	if got := s.Message(); got != "Encoding 30 frames with ffmpeg..." {
		t.Errorf("hooks still attached after restore: %q", got)
	}
}
