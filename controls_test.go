package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func newTestControls(t *testing.T, opts StreamOptions) (*Controls, *Stream, *bytes.Buffer) {
	t.Helper()
	s, _ := newTestStream(t, opts)
	c := NewControls(s, DefaultControlConfig())
	var log bytes.Buffer
	c.SetOutput(&log)
	return c, s, &log
}

func TestControls_UpTwice(t *testing.T) {
	c, s, log := newTestControls(t, DefaultStreamOptions())

	for range 2 {
		if err := c.HandleKey(KeyUp); err != nil {
			t.Fatalf("HandleKey(Up): %v", err)
		}
	}
	renderOnce(s)

	if got := s.Status().Frequency; got != 460 {
		t.Fatalf("expected 460 Hz, got %v", got)
	}
	if got := log.String(); got != "Audio hz = 450.0\nAudio hz = 460.0\n" {
		t.Fatalf("expected applied frequencies in log, got %q", got)
	}
}

func TestControls_LogsClampedVolume(t *testing.T) {
	opts := DefaultStreamOptions()
	opts.Volume = 0.85
	c, _, log := newTestControls(t, opts)

	_ = c.HandleKey(KeyRight)
	_ = c.HandleKey(KeyLeft)

	if got := log.String(); got != "Audio vol = 0.90\nAudio vol = 0.80\n" {
		t.Fatalf("expected clamped volumes in log, got %q", got)
	}
}

func TestControls_LogsClampedFrequency(t *testing.T) {
	opts := DefaultStreamOptions()
	opts.Frequency = MAX_FREQ - 5
	c, s, log := newTestControls(t, opts)

	_ = c.HandleKey(KeyUp)
	renderOnce(s)

	want := fmt.Sprintf("Audio hz = %.1f\n", float64(MAX_FREQ))
	if got := log.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := s.Status().Frequency; got != MAX_FREQ {
		t.Fatalf("expected logged value to match applied %v, got %v", float64(MAX_FREQ), got)
	}
}

func TestControls_DownLowersFrequency(t *testing.T) {
	c, s, _ := newTestControls(t, DefaultStreamOptions())
	_ = c.HandleKey(KeyDown)
	renderOnce(s)

	if got := s.Status().Frequency; got != 430 {
		t.Fatalf("expected 430 Hz, got %v", got)
	}
}

func TestControls_RightClampsAtMaxVolume(t *testing.T) {
	opts := DefaultStreamOptions()
	opts.Volume = 0.85
	c, s, _ := newTestControls(t, opts)

	_ = c.HandleKey(KeyRight)
	renderOnce(s)

	if got := s.Status().Volume; got != float32(MAX_VOLUME) {
		t.Fatalf("expected volume %v, got %v", float32(MAX_VOLUME), got)
	}
}

func TestControls_LeftClampsAtMinVolume(t *testing.T) {
	c, s, _ := newTestControls(t, DefaultStreamOptions())

	for range 10 {
		_ = c.HandleKey(KeyLeft)
	}
	renderOnce(s)

	if got := s.Status().Volume; got != float32(MIN_VOLUME) {
		t.Fatalf("expected volume %v, got %v", float32(MIN_VOLUME), got)
	}
}

func TestControls_SpaceToggles(t *testing.T) {
	c, s, log := newTestControls(t, DefaultStreamOptions())
	_ = s.Play()

	if err := c.HandleKey(KeySpace); err != nil {
		t.Fatalf("HandleKey(Space): %v", err)
	}
	if s.IsPlaying() {
		t.Fatal("expected Space to pause")
	}
	_ = c.HandleKey(KeySpace)
	if !s.IsPlaying() {
		t.Fatal("expected second Space to resume")
	}
	if got := log.String(); got != "Audio paused\nAudio playing\n" {
		t.Fatalf("unexpected log %q", got)
	}
}

func TestControls_SliderUpdates(t *testing.T) {
	c, s, log := newTestControls(t, DefaultStreamOptions())

	_ = c.SetFrequency(880)
	_ = c.SetVolume(0.3)
	renderOnce(s)

	st := s.Status()
	if st.Frequency != 880 || st.Volume != 0.3 {
		t.Fatalf("expected 880 Hz / 0.3, got %v / %v", st.Frequency, st.Volume)
	}
	if log.Len() != 0 {
		t.Fatalf("slider updates should not be logged, got %q", log.String())
	}
}

func TestControls_ClosedStream(t *testing.T) {
	c, s, log := newTestControls(t, DefaultStreamOptions())
	_ = s.Close()

	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeySpace} {
		if err := c.HandleKey(k); !errors.Is(err, ErrStreamUnavailable) {
			t.Fatalf("HandleKey(%v): expected ErrStreamUnavailable, got %v", k, err)
		}
	}
	if log.Len() != 0 {
		t.Fatalf("failed keys should not be logged, got %q", log.String())
	}
}

func TestControls_UnknownKeyIgnored(t *testing.T) {
	c, s, _ := newTestControls(t, DefaultStreamOptions())
	if err := c.HandleKey(KeyNone); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if s.Status().Pending != 0 {
		t.Fatal("expected no update for an unmapped key")
	}
}

func TestControls_SetOutputNil(t *testing.T) {
	c, _, _ := newTestControls(t, DefaultStreamOptions())
	c.SetOutput(nil)
	if err := c.HandleKey(KeyUp); err != nil {
		t.Fatalf("HandleKey with silenced log: %v", err)
	}
}

func TestControls_Patch(t *testing.T) {
	c, _, _ := newTestControls(t, DefaultStreamOptions())
	if got := c.Patch(); got != "hz=440.0 vol=0.50 playing=false" {
		t.Fatalf("unexpected patch %q", got)
	}
}
