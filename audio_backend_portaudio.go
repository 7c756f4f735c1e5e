//go:build portaudio

// audio_backend_portaudio.go - PortAudio output implementation (build with -tags portaudio)

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
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

const AUDIO_BACKEND_PORTAUDIO = "portaudio"

func init() {
	registerAudioBackend(AUDIO_BACKEND_PORTAUDIO, NewPortAudioOutput, true)
}

// PortAudioOutput lets PortAudio's callback thread call straight into the
// renderer with the device's own interleaved buffer.
type PortAudioOutput struct {
	cfg      AudioConfig
	stream   *portaudio.Stream
	renderer atomic.Pointer[rendererRef]
	started  bool
	mutex    sync.Mutex
}

func NewPortAudioOutput(cfg AudioConfig) (AudioOutput, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	return &PortAudioOutput{cfg: cfg}, nil
}

func (pa *PortAudioOutput) SetupPlayer(r Renderer) error {
	pa.mutex.Lock()
	defer pa.mutex.Unlock()

	pa.renderer.Store(&rendererRef{r: r})
	stream, err := portaudio.OpenDefaultStream(0, pa.cfg.Channels, float64(pa.cfg.SampleRate), pa.cfg.BufferFrames, pa.processAudio)
	if err != nil {
		return err
	}
	pa.stream = stream
	return nil
}

func (pa *PortAudioOutput) processAudio(out []float32) {
	ref := pa.renderer.Load()
	if ref == nil {
		clear(out)
		return
	}
	ref.r.Render(Buffer{
		SampleRate: float64(pa.cfg.SampleRate),
		Channels:   pa.cfg.Channels,
		Samples:    out,
	})
}

func (pa *PortAudioOutput) Start() error {
	pa.mutex.Lock()
	defer pa.mutex.Unlock()

	if pa.started || pa.stream == nil {
		return nil
	}
	if err := pa.stream.Start(); err != nil {
		return err
	}
	pa.started = true
	return nil
}

func (pa *PortAudioOutput) Stop() error {
	pa.mutex.Lock()
	defer pa.mutex.Unlock()

	if !pa.started {
		return nil
	}
	if err := pa.stream.Stop(); err != nil {
		return err
	}
	pa.started = false
	return nil
}

func (pa *PortAudioOutput) Close() error {
	if err := pa.Stop(); err != nil {
		return err
	}
	pa.mutex.Lock()
	defer pa.mutex.Unlock()

	pa.renderer.Store(nil)
	if pa.stream != nil {
		if err := pa.stream.Close(); err != nil {
			return err
		}
		pa.stream = nil
	}
	return portaudio.Terminate()
}

func (pa *PortAudioOutput) IsStarted() bool {
	pa.mutex.Lock()
	defer pa.mutex.Unlock()
	return pa.started
}

// Err is always nil: the callback has no failure path of its own.
func (pa *PortAudioOutput) Err() error { return nil }

func (pa *PortAudioOutput) SampleRate() int { return pa.cfg.SampleRate }
func (pa *PortAudioOutput) Channels() int   { return pa.cfg.Channels }
