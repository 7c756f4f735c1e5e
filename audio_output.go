// audio_output.go - Audio backend interface and build-time backend registry

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
	"sort"
	"time"
)

const (
	DEFAULT_CHANNELS      = 2
	DEFAULT_BUFFER_FRAMES = 512
)

type AudioConfig struct {
	SampleRate   int
	Channels     int
	BufferFrames int    // Preferred frames per device buffer
	RecordPath   string // Output file for the wav backend
}

func (c AudioConfig) BufferDuration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.BufferFrames) * time.Second / time.Duration(c.SampleRate)
}

// AudioOutput is implemented by every audio host backend. The backend owns
// the audio thread and calls Renderer.Render once per device buffer.
type AudioOutput interface {
	SetupPlayer(r Renderer) error
	Start() error
	Stop() error
	Close() error
	IsStarted() bool
	Err() error // Non-nil once the audio thread has stopped on an error

	SampleRate() int
	Channels() int
}

// rendererRef lets backends swap the renderer atomically.
type rendererRef struct {
	r Renderer
}

type audioBackendFactory func(cfg AudioConfig) (AudioOutput, error)

var (
	audioBackends       = map[string]audioBackendFactory{}
	defaultAudioBackend string
)

// registerAudioBackend is called from backend init() functions, so the set
// of backends reflects the build tags.
func registerAudioBackend(name string, factory audioBackendFactory, preferred bool) {
	audioBackends[name] = factory
	compiledFeatures = append(compiledFeatures, "audio: "+name)
	if preferred {
		defaultAudioBackend = name
	}
}

func audioBackendNames() []string {
	names := make([]string, 0, len(audioBackends))
	for name := range audioBackends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveAudioBackend maps an empty name to the preferred backend, falling
// back to the null backend when no device backend was compiled in.
func resolveAudioBackend(name string) string {
	if name != "" {
		return name
	}
	if defaultAudioBackend != "" {
		return defaultAudioBackend
	}
	return AUDIO_BACKEND_NULL
}

func NewAudioOutput(name string, cfg AudioConfig) (AudioOutput, error) {
	factory, ok := audioBackends[name]
	if !ok {
		return nil, &AudioError{
			Operation: "backend creation",
			Details:   fmt.Sprintf("%q (compiled: %v)", name, audioBackendNames()),
			Err:       ErrUnknownBackend,
		}
	}
	return factory(cfg)
}
