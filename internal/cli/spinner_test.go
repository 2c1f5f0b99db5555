package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureStderr(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	old := stderr
	stderr = buf
	t.Cleanup(func() { stderr = old })
	return buf
}

func TestSpinnerDraws(t *testing.T) {
	buf := captureStderr(t)

	s := newSpinner("Rendering collage...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Update("Encoding...")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering collage...") {
		t.Errorf("output missing first message: %q", out)
	}
	if !strings.Contains(out, "Encoding...") {
		t.Errorf("output missing updated message: %q", out)
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	captureStderr(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Rendering...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	captureStderr(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Rendering...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStop(t *testing.T) {
	captureStderr(t)
	tests := []struct {
		name  string
		start bool
		stop  func(*Spinner)
	}{
		{"twice", true, func(s *Spinner) { s.Stop(); s.Stop() }},
		{"before start", false, func(s *Spinner) { s.Stop() }},
		{"with success", true, func(s *Spinner) { s.StopWithSuccess("Done") }},
		{"with error", true, func(s *Spinner) { s.StopWithError("Failed") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureStdout(t)
			s := newSpinner("Testing...")
			if tt.start {
				s.Start()
			}
			done := make(chan struct{})
			go func() {
				tt.stop(s)
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("Stop did not return")
			}
		})
	}
}
