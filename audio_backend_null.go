// audio_backend_null.go - Null audio output: renders on a wall-clock schedule with no device

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
	"os"
	"sync"
	"sync/atomic"
	"time"
)

const AUDIO_BACKEND_NULL = "null"

func init() {
	registerAudioBackend(AUDIO_BACKEND_NULL, NewNullOutput, false)
}

// NullOutput drives the renderer from a ticker at the cadence a real device
// would, and throws the samples away.
type NullOutput struct {
	cfg       AudioConfig
	renderer  atomic.Pointer[rendererRef]
	sampleBuf []float32
	sink      func(Buffer) error // Optional consumer of each rendered buffer
	failure   atomic.Pointer[error]
	started   bool
	stop      chan struct{}
	done      chan struct{}
	mutex     sync.Mutex
}

func NewNullOutput(cfg AudioConfig) (AudioOutput, error) {
	return newNullOutput(cfg), nil
}

func newNullOutput(cfg AudioConfig) *NullOutput {
	if cfg.BufferFrames <= 0 {
		cfg.BufferFrames = DEFAULT_BUFFER_FRAMES
	}
	return &NullOutput{cfg: cfg}
}

func (no *NullOutput) SetupPlayer(r Renderer) error {
	no.mutex.Lock()
	defer no.mutex.Unlock()

	no.renderer.Store(&rendererRef{r: r})
	no.sampleBuf = make([]float32, no.cfg.BufferFrames*no.cfg.Channels)
	return nil
}

func (no *NullOutput) Start() error {
	no.mutex.Lock()
	defer no.mutex.Unlock()

	if no.started {
		return nil
	}
	no.stop = make(chan struct{})
	no.done = make(chan struct{})
	no.started = true
	go no.run(no.stop, no.done)
	return nil
}

func (no *NullOutput) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(max(no.cfg.BufferDuration(), time.Millisecond))
	defer ticker.Stop()

	buf := Buffer{
		SampleRate: float64(no.cfg.SampleRate),
		Channels:   no.cfg.Channels,
		Samples:    no.sampleBuf,
	}
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ref := no.renderer.Load()
			if ref == nil {
				continue
			}
			ref.r.Render(buf)
			if no.sink == nil {
				continue
			}
			if err := no.sink(buf); err != nil {
				fmt.Fprintf(os.Stderr, "audio: %v\n", err)
				no.failure.Store(&err)
				return
			}
		}
	}
}

func (no *NullOutput) Stop() error {
	no.mutex.Lock()
	defer no.mutex.Unlock()

	if !no.started {
		return nil
	}
	close(no.stop)
	<-no.done
	no.started = false
	return nil
}

func (no *NullOutput) Close() error {
	if err := no.Stop(); err != nil {
		return err
	}
	no.renderer.Store(nil)
	return nil
}

func (no *NullOutput) IsStarted() bool {
	no.mutex.Lock()
	defer no.mutex.Unlock()
	return no.started && no.failure.Load() == nil
}

func (no *NullOutput) Err() error {
	if p := no.failure.Load(); p != nil {
		return *p
	}
	return nil
}

func (no *NullOutput) SampleRate() int { return no.cfg.SampleRate }
func (no *NullOutput) Channels() int   { return no.cfg.Channels }
