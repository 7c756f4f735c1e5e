//go:build alsa && linux

// audio_backend_alsa.go - ALSA audio output implementation

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

/*
#cgo LDFLAGS: -lasound
#cgo CFLAGS: -O2
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* openPCM(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t* handle, unsigned int rate, unsigned int channels, snd_pcm_uframes_t period) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params, SND_PCM_FORMAT_FLOAT);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, channels);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_period_size_near(handle, params, &period, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static int writePCM(snd_pcm_t* handle, float* buffer, int frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static void closePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drop(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"
import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"unsafe"
)

const (
	AUDIO_BACKEND_ALSA = "alsa"
	ALSA_DEVICE        = "default"
)

func init() {
	registerAudioBackend(AUDIO_BACKEND_ALSA, NewALSAPlayer, false)
}

// ALSAPlayer owns a writer goroutine that renders one period at a time and
// blocks in snd_pcm_writei, so the device sets the pace.
type ALSAPlayer struct {
	cfg       AudioConfig
	handle    *C.snd_pcm_t
	renderer  atomic.Pointer[rendererRef]
	sampleBuf []float32
	failure   atomic.Pointer[error]
	started   bool
	stop      chan struct{}
	done      chan struct{}
	mutex     sync.Mutex
}

func NewALSAPlayer(cfg AudioConfig) (AudioOutput, error) {
	device := C.CString(ALSA_DEVICE)
	defer C.free(unsafe.Pointer(device))

	var err C.int
	handle := C.openPCM(device, &err)
	if err < 0 {
		return nil, fmt.Errorf("failed to open PCM device: %s", C.GoString(C.snd_strerror(err)))
	}

	if err = C.setupPCM(handle, C.uint(cfg.SampleRate), C.uint(cfg.Channels), C.snd_pcm_uframes_t(cfg.BufferFrames)); err < 0 {
		C.closePCM(handle)
		return nil, fmt.Errorf("failed to setup PCM: %s", C.GoString(C.snd_strerror(err)))
	}

	return &ALSAPlayer{
		cfg:       cfg,
		handle:    handle,
		sampleBuf: make([]float32, cfg.BufferFrames*cfg.Channels),
	}, nil
}

func (ap *ALSAPlayer) SetupPlayer(r Renderer) error {
	ap.renderer.Store(&rendererRef{r: r})
	return nil
}

func (ap *ALSAPlayer) IsStarted() bool {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	return ap.started && ap.failure.Load() == nil
}

func (ap *ALSAPlayer) Err() error {
	if p := ap.failure.Load(); p != nil {
		return *p
	}
	return nil
}

func (ap *ALSAPlayer) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	buf := Buffer{
		SampleRate: float64(ap.cfg.SampleRate),
		Channels:   ap.cfg.Channels,
		Samples:    ap.sampleBuf,
	}
	frames := C.int(buf.Frames())
	for {
		select {
		case <-stop:
			return
		default:
		}
		if ref := ap.renderer.Load(); ref != nil {
			ref.r.Render(buf)
		} else {
			clear(buf.Samples)
		}
		if err := ap.write(frames); err != nil {
			fmt.Fprintf(os.Stderr, "alsa: %v\n", err)
			ap.failure.Store(&err)
			return
		}
	}
}

func (ap *ALSAPlayer) write(frames C.int) error {
	ptr := (*C.float)(unsafe.Pointer(&ap.sampleBuf[0]))
	n := C.writePCM(ap.handle, ptr, frames)
	if n == -C.EPIPE {
		// Underrun: re-arm the device and retry once
		C.snd_pcm_prepare(ap.handle)
		n = C.writePCM(ap.handle, ptr, frames)
	}
	if n < 0 {
		return fmt.Errorf("write failed: %s", C.GoString(C.snd_strerror(n)))
	}
	return nil
}

func (ap *ALSAPlayer) Start() error {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.started || ap.handle == nil {
		return nil
	}
	ap.stop = make(chan struct{})
	ap.done = make(chan struct{})
	ap.started = true
	go ap.run(ap.stop, ap.done)
	return nil
}

func (ap *ALSAPlayer) Stop() error {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if !ap.started {
		return nil
	}
	close(ap.stop)
	<-ap.done
	ap.started = false
	return nil
}

func (ap *ALSAPlayer) Close() error {
	if err := ap.Stop(); err != nil {
		return err
	}
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	ap.renderer.Store(nil)
	if ap.handle != nil {
		C.closePCM(ap.handle)
		ap.handle = nil
	}
	return nil
}

func (ap *ALSAPlayer) SampleRate() int { return ap.cfg.SampleRate }
func (ap *ALSAPlayer) Channels() int   { return ap.cfg.Channels }
