//go:build pulse && !portaudio

// audio_backend_pulse.go - PulseAudio output implementation (build with -tags pulse)

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
	"sync"
	"sync/atomic"

	"github.com/jfreymuth/pulse"
)

const AUDIO_BACKEND_PULSE = "pulse"

func init() {
	registerAudioBackend(AUDIO_BACKEND_PULSE, NewPulseOutput, true)
}

type PulseOutput struct {
	cfg      AudioConfig
	client   *pulse.Client
	playback *pulse.PlaybackStream
	renderer atomic.Pointer[rendererRef]
	started  bool
	mutex    sync.Mutex
}

func NewPulseOutput(cfg AudioConfig) (AudioOutput, error) {
	if cfg.Channels != 1 && cfg.Channels != 2 {
		return nil, fmt.Errorf("pulse backend supports 1 or 2 channels, got %d", cfg.Channels)
	}
	client, err := pulse.NewClient()
	if err != nil {
		return nil, err
	}
	return &PulseOutput{cfg: cfg, client: client}, nil
}

func (po *PulseOutput) SetupPlayer(r Renderer) error {
	po.mutex.Lock()
	defer po.mutex.Unlock()

	po.renderer.Store(&rendererRef{r: r})
	layout := pulse.PlaybackMono
	if po.cfg.Channels == 2 {
		layout = pulse.PlaybackStereo
	}
	playback, err := po.client.NewPlayback(pulse.Float32Reader(po.read),
		layout,
		pulse.PlaybackSampleRate(po.cfg.SampleRate),
		pulse.PlaybackLatency(po.cfg.BufferDuration().Seconds()),
	)
	if err != nil {
		return fmt.Errorf("pulse.NewPlayback failed: %w", err)
	}
	po.playback = playback
	return nil
}

func (po *PulseOutput) read(out []float32) (int, error) {
	n := len(out) - len(out)%po.cfg.Channels
	ref := po.renderer.Load()
	if ref == nil || n == 0 {
		clear(out)
		return len(out), nil
	}
	ref.r.Render(Buffer{
		SampleRate: float64(po.cfg.SampleRate),
		Channels:   po.cfg.Channels,
		Samples:    out[:n],
	})
	return n, nil
}

func (po *PulseOutput) Start() error {
	po.mutex.Lock()
	defer po.mutex.Unlock()

	if !po.started && po.playback != nil {
		po.playback.Start()
		po.started = true
	}
	return nil
}

func (po *PulseOutput) Stop() error {
	po.mutex.Lock()
	defer po.mutex.Unlock()

	if po.started && po.playback != nil {
		po.playback.Stop()
		po.started = false
	}
	return nil
}

func (po *PulseOutput) Close() error {
	if err := po.Stop(); err != nil {
		return err
	}
	po.mutex.Lock()
	defer po.mutex.Unlock()

	po.renderer.Store(nil)
	if po.playback != nil {
		po.playback.Close()
		po.playback = nil
	}
	po.client.Close()
	return nil
}

func (po *PulseOutput) IsStarted() bool {
	po.mutex.Lock()
	defer po.mutex.Unlock()
	return po.started
}

func (po *PulseOutput) Err() error {
	po.mutex.Lock()
	defer po.mutex.Unlock()
	if po.playback == nil {
		return nil
	}
	return po.playback.Error()
}

func (po *PulseOutput) SampleRate() int { return po.cfg.SampleRate }
func (po *PulseOutput) Channels() int   { return po.cfg.Channels }
