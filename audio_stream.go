// audio_stream.go - Audio stream: owns the oscillator, the update ring and the output backend

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"math"
	"sync"
	"sync/atomic"
)

// Renderer is what an AudioOutput pulls samples from on its audio thread.
type Renderer interface {
	Render(buf Buffer)
}

type StreamOptions struct {
	Frequency float64
	Volume    float32
	PhaseWrap PhaseWrap
	Limits    UpdateLimits
	QueueSize int
}

func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		Frequency: DEFAULT_FREQUENCY,
		Volume:    DEFAULT_VOLUME,
		PhaseWrap: PHASE_WRAP_SAMPLE_RATE,
		Limits:    DefaultUpdateLimits(),
		QueueSize: DEFAULT_UPDATE_QUEUE_SIZE,
	}
}

// StreamStatus is a point-in-time view for control threads. Frequency and
// Volume are the values the render thread last applied.
type StreamStatus struct {
	Playing   bool
	Frequency float64
	Volume    float32
	Pending   int
	Buffers   uint64
	Frames    uint64
	Applied   uint64
	Rejected  uint64
}

type Stream struct {
	// Audio thread state - only Render touches these
	state  OscillatorState
	limits UpdateLimits // Immutable after NewStream
	queue  *updateQueue

	// Published by the audio thread for readers on other threads
	frequencyBits atomic.Uint64
	volumeBits    atomic.Uint32
	buffers       atomic.Uint64
	frames        atomic.Uint64
	applied       atomic.Uint64
	rejected      atomic.Uint64

	playing atomic.Bool
	closed  atomic.Bool

	sendMu  sync.Mutex      // Serialises producers, never taken by Render
	target  OscillatorState // Where the audio thread lands once the ring drains, under sendMu
	ctrlMu  sync.Mutex // Play/Pause/Close/AttachOutput
	output  AudioOutput
	backend string

	// Lock-free view of the output for health checks on the send path
	attached atomic.Pointer[attachedOutput]
}

type attachedOutput struct {
	out  AudioOutput
	name string
}

func NewStream(opts StreamOptions) *Stream {
	limits := opts.Limits
	s := &Stream{
		state:  NewOscillatorState(limits.clampFrequency(opts.Frequency), limits.clampVolume(opts.Volume), opts.PhaseWrap),
		limits: limits,
		queue:  newUpdateQueue(opts.QueueSize),
	}
	s.target = s.state
	s.publish()
	return s
}

// AttachOutput hands the stream to a backend as its renderer. The stream
// starts paused; call Play to begin pulling audio.
func (s *Stream) AttachOutput(name string, out AudioOutput) error {
	s.ctrlMu.Lock()
	defer s.ctrlMu.Unlock()

	if s.closed.Load() {
		return &AudioError{Operation: "attach", Details: name, Err: ErrStreamUnavailable}
	}
	if err := out.SetupPlayer(s); err != nil {
		return &AudioError{Operation: "attach", Details: name, Err: err}
	}
	s.output = out
	s.backend = name
	s.attached.Store(&attachedOutput{out: out, name: name})
	return nil
}

func (s *Stream) Backend() string {
	s.ctrlMu.Lock()
	defer s.ctrlMu.Unlock()
	return s.backend
}

func (s *Stream) Play() error {
	s.ctrlMu.Lock()
	defer s.ctrlMu.Unlock()

	if err := s.checkOutput("play"); err != nil {
		return err
	}
	if s.playing.Load() {
		return nil
	}
	if err := s.output.Start(); err != nil {
		return &AudioError{Operation: "play", Details: s.backend, Err: err}
	}
	s.playing.Store(true)
	return nil
}

func (s *Stream) Pause() error {
	s.ctrlMu.Lock()
	defer s.ctrlMu.Unlock()

	if err := s.checkOutput("pause"); err != nil {
		return err
	}
	if !s.playing.Load() {
		return nil
	}
	if err := s.output.Stop(); err != nil {
		return &AudioError{Operation: "pause", Details: s.backend, Err: err}
	}
	s.playing.Store(false)
	return nil
}

// Toggle flips between playing and paused.
func (s *Stream) Toggle() error {
	if s.IsPlaying() {
		return s.Pause()
	}
	return s.Play()
}

// IsPlaying is false once the output's audio thread has died, even if the
// stream was never paused.
func (s *Stream) IsPlaying() bool {
	return s.playing.Load() && s.outputErr() == nil
}

func (s *Stream) outputErr() error {
	if a := s.attached.Load(); a != nil {
		return a.out.Err()
	}
	return nil
}

// unavailable reports a closed stream or a failed output.
func (s *Stream) unavailable(op string) error {
	if s.closed.Load() {
		return &AudioError{Operation: op, Details: "stream closed", Err: ErrStreamUnavailable}
	}
	if err := s.outputErr(); err != nil {
		a := s.attached.Load()
		return &AudioError{Operation: op, Details: a.name + " output failed: " + err.Error(), Err: ErrStreamUnavailable}
	}
	return nil
}

func (s *Stream) checkOutput(op string) error {
	if err := s.unavailable(op); err != nil {
		return err
	}
	if s.output == nil {
		return &AudioError{Operation: op, Details: "no output attached", Err: ErrStreamUnavailable}
	}
	return nil
}

// Send queues u for the audio thread. It never waits on the audio thread:
// a full ring is reported as ErrUpdateQueueFull and the update is dropped.
// A closed stream or a dead output reports ErrStreamUnavailable.
func (s *Stream) Send(u Update) error {
	_, err := s.SendTarget(u)
	return err
}

// Target is the frequency and volume the audio thread will have applied
// after every accepted update so far.
type Target struct {
	Frequency float64
	Volume    float32
}

// SendTarget is Send that also reports the target after u, with the stream
// limits applied. On error the target is unchanged.
func (s *Stream) SendTarget(u Update) (Target, error) {
	if err := s.unavailable("update " + u.String()); err != nil {
		return Target{}, err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if !s.queue.Push(u) {
		s.rejected.Add(1)
		return s.currentTarget(), &AudioError{Operation: "update", Details: u.String(), Err: ErrUpdateQueueFull}
	}
	// Same rule Render will use, so the two cannot disagree
	s.target.applyUpdate(u, s.limits)
	return s.currentTarget(), nil
}

func (s *Stream) currentTarget() Target {
	return Target{Frequency: s.target.frequency, Volume: s.target.volume}
}

// Close stops and releases the backend. Updates still queued are dropped.
func (s *Stream) Close() error {
	s.ctrlMu.Lock()
	defer s.ctrlMu.Unlock()

	if s.closed.Swap(true) {
		return nil
	}
	s.playing.Store(false)
	if s.output == nil {
		return nil
	}
	if err := s.output.Close(); err != nil {
		return &AudioError{Operation: "close", Details: s.backend, Err: err}
	}
	return nil
}

func (s *Stream) IsClosed() bool {
	return s.closed.Load()
}

// Render is the audio thread entry point. Pending updates are applied in
// submission order before the buffer is touched, so one buffer never sees
// a half-applied change. The drain is bounded by the ring capacity.
func (s *Stream) Render(buf Buffer) {
	applied := 0
	for applied < s.queue.Cap() {
		u, ok := s.queue.Pop()
		if !ok {
			break
		}
		s.state.applyUpdate(u, s.limits)
		applied++
	}
	if applied > 0 {
		s.applied.Add(uint64(applied))
		s.publish()
	}

	RenderOscillator(&s.state, buf)

	s.buffers.Add(1)
	s.frames.Add(uint64(buf.Frames()))
}

func (s *Stream) publish() {
	s.frequencyBits.Store(math.Float64bits(s.state.frequency))
	s.volumeBits.Store(math.Float32bits(s.state.volume))
}

func (s *Stream) Status() StreamStatus {
	return StreamStatus{
		Playing:   s.IsPlaying(),
		Frequency: math.Float64frombits(s.frequencyBits.Load()),
		Volume:    math.Float32frombits(s.volumeBits.Load()),
		Pending:   s.queue.Len(),
		Buffers:   s.buffers.Load(),
		Frames:    s.frames.Load(),
		Applied:   s.applied.Load(),
		Rejected:  s.rejected.Load(),
	}
}
