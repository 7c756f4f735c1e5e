//go:build !headless && !portaudio && !pulse

// audio_backend_oto.go - OTO v3 audio output implementation

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
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

const AUDIO_BACKEND_OTO = "oto"

func init() {
	registerAudioBackend(AUDIO_BACKEND_OTO, NewOtoPlayer, true)
}

type OtoPlayer struct {
	ctx        *oto.Context
	player     *oto.Player
	renderer   atomic.Pointer[rendererRef] // Atomic for lock-free Read()
	sampleBuf  []float32                   // Pre-allocated sample buffer
	sampleRate int
	channels   int
	started    bool
	mutex      sync.Mutex // Only for setup/control operations
}

func NewOtoPlayer(cfg AudioConfig) (AudioOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   cfg.BufferDuration(),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &OtoPlayer{
		ctx:        ctx,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
	}, nil
}

func (op *OtoPlayer) SetupPlayer(r Renderer) error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	op.renderer.Store(&rendererRef{r: r})
	op.player = op.ctx.NewPlayer(op)
	// Pre-allocate for typical oto read sizes (4096 frames of stereo float32)
	op.sampleBuf = make([]float32, 4096*op.channels)
	return nil
}

func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	// Load renderer atomically - no lock needed for the hot path
	ref := op.renderer.Load()

	numSamples := len(p) / 4
	numSamples -= numSamples % op.channels
	if ref == nil || numSamples == 0 {
		clear(p)
		return len(p), nil
	}

	// Ensure our pre-allocated buffer is large enough
	// This should rarely happen after initial SetupPlayer
	if len(op.sampleBuf) < numSamples {
		op.sampleBuf = make([]float32, numSamples)
	}
	samples := op.sampleBuf[:numSamples]

	ref.r.Render(Buffer{
		SampleRate: float64(op.sampleRate),
		Channels:   op.channels,
		Samples:    samples,
	})

	n = numSamples * 4
	copy(p, unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), n))
	return n, nil
}

func (op *OtoPlayer) Start() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
	return nil
}

func (op *OtoPlayer) Stop() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.started && op.player != nil {
		op.player.Pause()
		op.started = false
	}
	return nil
}

func (op *OtoPlayer) Close() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	op.started = false
	op.renderer.Store(nil)
	if op.player != nil {
		err := op.player.Close()
		op.player = nil
		return err
	}
	return nil
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}

func (op *OtoPlayer) Err() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.player == nil {
		return nil
	}
	return op.player.Err()
}

func (op *OtoPlayer) SampleRate() int { return op.sampleRate }
func (op *OtoPlayer) Channels() int   { return op.channels }
