// oscillator.go - Sine oscillator state and the per-buffer render callback

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
	"fmt"
	"math"
)

const (
	DEFAULT_FREQUENCY = 440.0
	DEFAULT_VOLUME    = 0.5
	SAMPLE_RATE       = 44100
)

// PhaseWrap selects how the phase accumulator is reduced after each frame.
type PhaseWrap int

const (
	// PHASE_WRAP_SAMPLE_RATE reduces the phase modulo the sample rate (the
	// default). The accumulator can grow up to the sample rate.
	PHASE_WRAP_SAMPLE_RATE PhaseWrap = iota
	// PHASE_WRAP_CYCLE keeps the phase in [0,1).
	PHASE_WRAP_CYCLE
)

func (w PhaseWrap) String() string {
	switch w {
	case PHASE_WRAP_SAMPLE_RATE:
		return "sample-rate"
	case PHASE_WRAP_CYCLE:
		return "cycle"
	}
	return fmt.Sprintf("PhaseWrap(%d)", int(w))
}

func ParsePhaseWrap(s string) (PhaseWrap, error) {
	switch s {
	case "", "sample-rate":
		return PHASE_WRAP_SAMPLE_RATE, nil
	case "cycle":
		return PHASE_WRAP_CYCLE, nil
	}
	return 0, fmt.Errorf("unknown phase wrap mode %q (want sample-rate or cycle)", s)
}

// OscillatorState is the state that lives on the audio thread.
// phase is only ever touched by RenderOscillator; frequency and volume
// change only through applyUpdate, which the stream calls from its render
// entry point.
type OscillatorState struct {
	phase     float64 // Accumulated phase, advanced every frame
	frequency float64 // Oscillation frequency in Hz
	volume    float32 // Linear gain
	wrap      PhaseWrap
}

func NewOscillatorState(frequency float64, volume float32, wrap PhaseWrap) OscillatorState {
	return OscillatorState{
		frequency: frequency,
		volume:    volume,
		wrap:      wrap,
	}
}

func (st *OscillatorState) Phase() float64     { return st.phase }
func (st *OscillatorState) Frequency() float64 { return st.frequency }
func (st *OscillatorState) Volume() float32    { return st.volume }

// Buffer describes one block of interleaved output handed over by the audio host.
type Buffer struct {
	SampleRate float64
	Channels   int
	Samples    []float32 // Interleaved, len = frames*channels
}

func (b Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// RenderOscillator fills every channel of every frame with the same sine
// sample and advances the phase once per frame. It never allocates or
// blocks; a zero sample rate is the caller's bug.
func RenderOscillator(st *OscillatorState, buf Buffer) {
	channels := buf.Channels
	if channels <= 0 {
		return
	}
	sampleRate := buf.SampleRate
	volume := st.volume
	step := st.frequency / sampleRate

	samples := buf.Samples[:buf.Frames()*channels]
	for i := 0; i < len(samples); i += channels {
		amp := float32(math.Sin(2 * math.Pi * st.phase))
		frame := samples[i : i+channels]
		for c := range frame {
			frame[c] = amp * volume
		}
		st.phase += step
		if st.wrap == PHASE_WRAP_CYCLE {
			st.phase -= math.Floor(st.phase)
		} else {
			st.phase = math.Mod(st.phase, sampleRate)
		}
	}
}
