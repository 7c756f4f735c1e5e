// config.go - Configuration: defaults, optional YAML file, flag overrides

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

	"gopkg.in/yaml.v3"
)

// Config is the complete instrument configuration. Keys missing from the
// YAML file keep their defaults.
type Config struct {
	Audio      AudioSection      `yaml:"audio"`
	Oscillator OscillatorSection `yaml:"oscillator"`
	Controls   ControlSection    `yaml:"controls"`
	Window     WindowSection     `yaml:"window"`
	Script     string            `yaml:"script"` // Lua file run at startup
}

type AudioSection struct {
	Backend      string `yaml:"backend"` // empty selects the preferred compiled backend
	SampleRate   int    `yaml:"sample_rate"`
	Channels     int    `yaml:"channels"`
	BufferFrames int    `yaml:"buffer_frames"`
	QueueSize    int    `yaml:"queue_size"` // update ring capacity, rounded up to a power of two
	RecordPath   string `yaml:"record_path"` // selects the wav backend when backend is empty
}

type OscillatorSection struct {
	Frequency float64 `yaml:"frequency"`
	Volume    float64 `yaml:"volume"`
	PhaseWrap string  `yaml:"phase_wrap"` // sample-rate or cycle
}

type ControlSection struct {
	FrequencyStep float64 `yaml:"frequency_step"`
	VolumeStep    float64 `yaml:"volume_step"`
	FrequencyMin  float64 `yaml:"frequency_min"`
	FrequencyMax  float64 `yaml:"frequency_max"`
	VolumeMin     float64 `yaml:"volume_min"`
	VolumeMax     float64 `yaml:"volume_max"`
}

type WindowSection struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func DefaultConfig() Config {
	return Config{
		Audio: AudioSection{
			SampleRate:   SAMPLE_RATE,
			Channels:     DEFAULT_CHANNELS,
			BufferFrames: DEFAULT_BUFFER_FRAMES,
			QueueSize:    DEFAULT_UPDATE_QUEUE_SIZE,
		},
		Oscillator: OscillatorSection{
			Frequency: DEFAULT_FREQUENCY,
			Volume:    DEFAULT_VOLUME,
			PhaseWrap: PHASE_WRAP_SAMPLE_RATE.String(),
		},
		Controls: ControlSection{
			FrequencyStep: DEFAULT_FREQUENCY_STEP,
			VolumeStep:    DEFAULT_VOLUME_STEP,
			FrequencyMin:  MIN_FREQ,
			FrequencyMax:  MAX_FREQ,
			VolumeMin:     MIN_VOLUME,
			VolumeMax:     MAX_VOLUME,
		},
		Window: WindowSection{
			Width:  800,
			Height: 600,
			Title:  "Intuition Tone",
		},
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Channels < 1 || c.Audio.Channels > 8 {
		return fmt.Errorf("audio.channels must be 1-8, got %d", c.Audio.Channels)
	}
	if c.Audio.BufferFrames <= 0 {
		return fmt.Errorf("audio.buffer_frames must be positive, got %d", c.Audio.BufferFrames)
	}
	if c.Audio.QueueSize <= 0 {
		return fmt.Errorf("audio.queue_size must be positive, got %d", c.Audio.QueueSize)
	}
	if _, err := ParsePhaseWrap(c.Oscillator.PhaseWrap); err != nil {
		return fmt.Errorf("oscillator.phase_wrap: %w", err)
	}
	if c.Controls.FrequencyStep <= 0 {
		return fmt.Errorf("controls.frequency_step must be positive, got %g", c.Controls.FrequencyStep)
	}
	if c.Controls.VolumeStep <= 0 {
		return fmt.Errorf("controls.volume_step must be positive, got %g", c.Controls.VolumeStep)
	}
	if err := c.UpdateLimits().Validate(); err != nil {
		return fmt.Errorf("controls: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height)
	}
	return nil
}

func (c Config) UpdateLimits() UpdateLimits {
	return UpdateLimits{
		FrequencyMin: c.Controls.FrequencyMin,
		FrequencyMax: c.Controls.FrequencyMax,
		VolumeMin:    float32(c.Controls.VolumeMin),
		VolumeMax:    float32(c.Controls.VolumeMax),
	}
}

// StreamOptions assumes Validate has passed.
func (c Config) StreamOptions() StreamOptions {
	wrap, _ := ParsePhaseWrap(c.Oscillator.PhaseWrap)
	return StreamOptions{
		Frequency: c.Oscillator.Frequency,
		Volume:    float32(c.Oscillator.Volume),
		PhaseWrap: wrap,
		Limits:    c.UpdateLimits(),
		QueueSize: c.Audio.QueueSize,
	}
}

func (c Config) AudioConfig() AudioConfig {
	return AudioConfig{
		SampleRate:   c.Audio.SampleRate,
		Channels:     c.Audio.Channels,
		BufferFrames: c.Audio.BufferFrames,
		RecordPath:   c.Audio.RecordPath,
	}
}

// BackendName picks the audio backend: the configured one, the wav recorder
// when only a record path is set, or the preferred compiled backend.
func (c Config) BackendName() string {
	if c.Audio.Backend == "" && c.Audio.RecordPath != "" {
		return AUDIO_BACKEND_WAV
	}
	return resolveAudioBackend(c.Audio.Backend)
}

func (c Config) ControlConfig() ControlConfig {
	return ControlConfig{
		FrequencyStep: c.Controls.FrequencyStep,
		VolumeStep:    c.Controls.VolumeStep,
	}
}
