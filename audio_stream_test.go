package main

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

// fakeOutput records backend calls; tests drive Render by hand.
type fakeOutput struct {
	mu       sync.Mutex
	renderer Renderer
	started  bool
	starts   int
	stops    int
	closes   int
	startErr error
}

func (f *fakeOutput) SetupPlayer(r Renderer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renderer = r
	return nil
}

func (f *fakeOutput) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	f.starts++
	return nil
}

func (f *fakeOutput) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = false
	f.stops++
	return nil
}

func (f *fakeOutput) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = false
	f.closes++
	return nil
}

func (f *fakeOutput) IsStarted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

func (f *fakeOutput) Err() error { return nil }

func (f *fakeOutput) SampleRate() int { return SAMPLE_RATE }
func (f *fakeOutput) Channels() int   { return 2 }

func newTestStream(t *testing.T, opts StreamOptions) (*Stream, *fakeOutput) {
	t.Helper()
	s := NewStream(opts)
	out := &fakeOutput{}
	if err := s.AttachOutput("fake", out); err != nil {
		t.Fatalf("AttachOutput: %v", err)
	}
	return s, out
}

func renderOnce(s *Stream) Buffer {
	buf := Buffer{SampleRate: SAMPLE_RATE, Channels: 2, Samples: make([]float32, 2*64)}
	s.Render(buf)
	return buf
}

func TestStream_InitialState(t *testing.T) {
	s, out := newTestStream(t, DefaultStreamOptions())

	if s.IsPlaying() {
		t.Fatal("expected new stream to be paused")
	}
	if out.renderer != s {
		t.Fatal("expected stream to be installed as the renderer")
	}
	st := s.Status()
	if st.Frequency != 440 || st.Volume != 0.5 {
		t.Fatalf("expected 440 Hz / 0.5, got %v / %v", st.Frequency, st.Volume)
	}
	if s.Backend() != "fake" {
		t.Fatalf("expected backend fake, got %q", s.Backend())
	}
}

func TestStream_UpdatesAppliedInOrder(t *testing.T) {
	s, _ := newTestStream(t, DefaultStreamOptions())

	for _, u := range []Update{FrequencyDelta(10), SetFrequency(300), FrequencyDelta(5), SetVolume(0.2), SetVolume(0.7)} {
		if err := s.Send(u); err != nil {
			t.Fatalf("Send(%v): %v", u, err)
		}
	}
	if s.Status().Frequency != 440 {
		t.Fatal("updates must not apply before the next render")
	}

	renderOnce(s)

	st := s.Status()
	if st.Frequency != 305 {
		t.Fatalf("expected 305 Hz, got %v", st.Frequency)
	}
	if st.Volume != 0.7 {
		t.Fatalf("expected last volume 0.7 to win, got %v", st.Volume)
	}
	if st.Applied != 5 || st.Pending != 0 {
		t.Fatalf("expected 5 applied and none pending, got %d / %d", st.Applied, st.Pending)
	}
}

func TestStream_UpdatesAppliedExactlyOnce(t *testing.T) {
	s, _ := newTestStream(t, DefaultStreamOptions())
	_ = s.Send(FrequencyDelta(10))
	_ = s.Send(FrequencyDelta(10))

	renderOnce(s)
	renderOnce(s)

	if got := s.Status().Frequency; got != 460 {
		t.Fatalf("expected 460 Hz, got %v", got)
	}
}

func TestStream_UpdateVisibleInSameBuffer(t *testing.T) {
	s, _ := newTestStream(t, DefaultStreamOptions())
	_ = s.Send(SetVolume(0.9))

	// Skip the zero first frame by rendering two frames
	buf := Buffer{SampleRate: SAMPLE_RATE, Channels: 1, Samples: make([]float32, 2)}
	s.Render(buf)

	ref := NewOscillatorState(440, 0.9, PHASE_WRAP_SAMPLE_RATE)
	want := Buffer{SampleRate: SAMPLE_RATE, Channels: 1, Samples: make([]float32, 2)}
	RenderOscillator(&ref, want)
	if buf.Samples[1] != want.Samples[1] {
		t.Fatalf("expected sample %v at the new volume, got %v", want.Samples[1], buf.Samples[1])
	}
}

func TestStream_ClampsInitialValues(t *testing.T) {
	opts := DefaultStreamOptions()
	opts.Frequency = 1
	opts.Volume = 1.5
	s, _ := newTestStream(t, opts)

	st := s.Status()
	if st.Frequency != MIN_FREQ {
		t.Fatalf("expected frequency %v, got %v", MIN_FREQ, st.Frequency)
	}
	if st.Volume != float32(MAX_VOLUME) {
		t.Fatalf("expected volume %v, got %v", float32(MAX_VOLUME), st.Volume)
	}
}

func TestStream_PlayPauseToggle(t *testing.T) {
	s, out := newTestStream(t, DefaultStreamOptions())

	if err := s.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := s.Play(); err != nil {
		t.Fatalf("second Play: %v", err)
	}
	if !s.IsPlaying() || out.starts != 1 {
		t.Fatalf("expected playing after one Start, got playing=%t starts=%d", s.IsPlaying(), out.starts)
	}

	if err := s.Toggle(); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if s.IsPlaying() || out.stops != 1 {
		t.Fatalf("expected paused after toggle, got playing=%t stops=%d", s.IsPlaying(), out.stops)
	}

	if err := s.Toggle(); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !s.IsPlaying() {
		t.Fatal("expected playing after second toggle")
	}
}

func TestStream_PlayFailureKeepsPaused(t *testing.T) {
	s, out := newTestStream(t, DefaultStreamOptions())
	out.startErr = errors.New("device busy")

	err := s.Play()
	if err == nil {
		t.Fatal("expected Play to fail")
	}
	var audioErr *AudioError
	if !errors.As(err, &audioErr) || audioErr.Operation != "play" {
		t.Fatalf("expected AudioError for play, got %v", err)
	}
	if s.IsPlaying() {
		t.Fatal("expected stream to stay paused")
	}
}

func TestStream_PausedUpdatesApplyOnResume(t *testing.T) {
	s, _ := newTestStream(t, DefaultStreamOptions())
	_ = s.Play()
	_ = s.Pause()

	if err := s.Send(FrequencyDelta(10)); err != nil {
		t.Fatalf("Send while paused: %v", err)
	}
	if s.Status().Pending != 1 {
		t.Fatal("expected update to wait in the queue")
	}

	_ = s.Play()
	renderOnce(s)

	if got := s.Status().Frequency; got != 450 {
		t.Fatalf("expected 450 Hz, got %v", got)
	}
}

func TestStream_ClosedIsUnavailable(t *testing.T) {
	s, out := newTestStream(t, DefaultStreamOptions())
	_ = s.Play()

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if out.closes != 1 {
		t.Fatalf("expected one backend close, got %d", out.closes)
	}
	if s.IsPlaying() {
		t.Fatal("expected closed stream to report not playing")
	}

	for name, err := range map[string]error{
		"send":  s.Send(FrequencyDelta(10)),
		"play":  s.Play(),
		"pause": s.Pause(),
	} {
		if !errors.Is(err, ErrStreamUnavailable) {
			t.Fatalf("%s after close: expected ErrStreamUnavailable, got %v", name, err)
		}
	}
}

func TestStream_NoOutputIsUnavailable(t *testing.T) {
	s := NewStream(DefaultStreamOptions())
	if err := s.Play(); !errors.Is(err, ErrStreamUnavailable) {
		t.Fatalf("expected ErrStreamUnavailable, got %v", err)
	}
}

func TestStream_QueueFull(t *testing.T) {
	opts := DefaultStreamOptions()
	opts.QueueSize = 2
	s, _ := newTestStream(t, opts)

	_ = s.Send(FrequencyDelta(1))
	_ = s.Send(FrequencyDelta(1))
	err := s.Send(FrequencyDelta(1))
	if !errors.Is(err, ErrUpdateQueueFull) {
		t.Fatalf("expected ErrUpdateQueueFull, got %v", err)
	}
	if got := s.Status().Rejected; got != 1 {
		t.Fatalf("expected 1 rejected update, got %d", got)
	}

	renderOnce(s)
	if got := s.Status().Frequency; got != 442 {
		t.Fatalf("expected the two queued updates to apply, got %v", got)
	}
	if err := s.Send(FrequencyDelta(1)); err != nil {
		t.Fatalf("expected room after render, got %v", err)
	}
}

func TestStream_RenderCounters(t *testing.T) {
	s, _ := newTestStream(t, DefaultStreamOptions())
	renderOnce(s)
	renderOnce(s)

	st := s.Status()
	if st.Buffers != 2 || st.Frames != 128 {
		t.Fatalf("expected 2 buffers / 128 frames, got %d / %d", st.Buffers, st.Frames)
	}
}

// TestStream_ConcurrentSendRender hammers Send from several control
// goroutines while one goroutine renders. The race detector is the oracle;
// the final frequency checks that no update was lost or applied twice.
func TestStream_ConcurrentSendRender(t *testing.T) {
	opts := DefaultStreamOptions()
	opts.Frequency = 1000
	s, _ := newTestStream(t, opts)

	const senders = 4
	const perSender = 500

	var wg sync.WaitGroup
	stop := make(chan struct{})
	renderDone := make(chan struct{})

	go func() {
		defer close(renderDone)
		for {
			select {
			case <-stop:
				return
			default:
			}
			renderOnce(s)
			_ = s.Status()
		}
	}()

	for range senders {
		wg.Go(func() {
			for sent := 0; sent < perSender; {
				err := s.Send(FrequencyDelta(1))
				if err == nil {
					sent++
					continue
				}
				if !errors.Is(err, ErrUpdateQueueFull) {
					t.Errorf("unexpected send error: %v", err)
					return
				}
				time.Sleep(time.Microsecond)
			}
		})
	}
	wg.Wait()

	deadline := time.Now().Add(2 * time.Second)
	for s.Status().Pending > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(stop)
	<-renderDone

	if got, want := s.Status().Frequency, 1000.0+senders*perSender; got != want {
		t.Fatalf("expected %v Hz, got %v", want, got)
	}
}

func TestStream_PhaseAccumulatesAcrossRenders(t *testing.T) {
	const (
		buffers = 10
		frames  = 100
	)
	s, _ := newTestStream(t, DefaultStreamOptions())
	for i := 0; i < buffers; i++ {
		s.Render(Buffer{SampleRate: SAMPLE_RATE, Channels: 1, Samples: make([]float32, frames)})
	}

	hz, sr := 440.0, float64(SAMPLE_RATE)
	want := math.Mod(buffers*frames*hz/sr, sr)
	if got := s.state.Phase(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected phase %.9f after %d frames, got %.9f", want, buffers*frames, got)
	}
	if st := s.Status(); st.Frames != buffers*frames || st.Buffers != buffers {
		t.Fatalf("expected %d buffers / %d frames, got %d / %d", buffers, buffers*frames, st.Buffers, st.Frames)
	}
}

func TestStream_SamplesContinuousAcrossBuffers(t *testing.T) {
	split, _ := newTestStream(t, DefaultStreamOptions())
	whole, _ := newTestStream(t, DefaultStreamOptions())

	first := Buffer{SampleRate: SAMPLE_RATE, Channels: 1, Samples: make([]float32, 100)}
	second := Buffer{SampleRate: SAMPLE_RATE, Channels: 1, Samples: make([]float32, 100)}
	split.Render(first)
	split.Render(second)

	ref := Buffer{SampleRate: SAMPLE_RATE, Channels: 1, Samples: make([]float32, 200)}
	whole.Render(ref)

	joined := append(append([]float32{}, first.Samples...), second.Samples...)
	for i, v := range joined {
		if v != ref.Samples[i] {
			t.Fatalf("sample %d: split render gave %v, single render gave %v", i, v, ref.Samples[i])
		}
	}
	if split.state.Phase() != whole.state.Phase() {
		t.Fatalf("expected equal phase, got %v and %v", split.state.Phase(), whole.state.Phase())
	}
}
