package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Audio.SampleRate != SAMPLE_RATE || cfg.Audio.Channels != DEFAULT_CHANNELS {
		t.Fatalf("unexpected audio defaults %+v", cfg.Audio)
	}
	if cfg.Oscillator.Frequency != DEFAULT_FREQUENCY || cfg.Oscillator.Volume != DEFAULT_VOLUME {
		t.Fatalf("unexpected oscillator defaults %+v", cfg.Oscillator)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeTempFile(t, "tone.yaml", `
audio:
  backend: "null"
  buffer_frames: 256
oscillator:
  frequency: 220
  phase_wrap: cycle
controls:
  volume_max: 1.0
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Audio.Backend != AUDIO_BACKEND_NULL || cfg.Audio.BufferFrames != 256 {
		t.Fatalf("audio section not applied: %+v", cfg.Audio)
	}
	if cfg.Audio.SampleRate != SAMPLE_RATE {
		t.Fatalf("expected default sample rate, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Oscillator.Frequency != 220 || cfg.Oscillator.Volume != DEFAULT_VOLUME {
		t.Fatalf("unexpected oscillator section %+v", cfg.Oscillator)
	}

	opts := cfg.StreamOptions()
	if opts.PhaseWrap != PHASE_WRAP_CYCLE {
		t.Fatalf("expected cycle wrap, got %v", opts.PhaseWrap)
	}
	if opts.Limits.VolumeMax != 1 || opts.Limits.VolumeMin != float32(MIN_VOLUME) {
		t.Fatalf("unexpected limits %+v", opts.Limits)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := map[string]string{
		"audio.channels":          "audio:\n  channels: 0\n",
		"audio.sample_rate":       "audio:\n  sample_rate: -1\n",
		"oscillator.phase_wrap":   "oscillator:\n  phase_wrap: radians\n",
		"controls.frequency_step": "controls:\n  frequency_step: 0\n",
		"volume limits":           "controls:\n  volume_min: 0.8\n  volume_max: 0.2\n",
		"window size":             "window:\n  width: 0\n",
	}
	for want, body := range cases {
		path := writeTempFile(t, "bad.yaml", body)
		_, err := LoadConfig(path)
		if err == nil {
			t.Fatalf("expected error mentioning %q", want)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error mentioning %q, got %v", want, err)
		}
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := writeTempFile(t, "bad.yaml", "audio: [1, 2\n")
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfig_Conversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audio.Channels = 1
	cfg.Controls.FrequencyStep = 25

	if ac := cfg.AudioConfig(); ac.Channels != 1 || ac.SampleRate != SAMPLE_RATE {
		t.Fatalf("unexpected audio config %+v", ac)
	}
	if cc := cfg.ControlConfig(); cc.FrequencyStep != 25 || cc.VolumeStep != DEFAULT_VOLUME_STEP {
		t.Fatalf("unexpected control config %+v", cc)
	}
}

func TestConfig_BackendName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audio.RecordPath = "take.wav"
	if got := cfg.BackendName(); got != AUDIO_BACKEND_WAV {
		t.Fatalf("expected record path to select %q, got %q", AUDIO_BACKEND_WAV, got)
	}
	cfg.Audio.Backend = AUDIO_BACKEND_NULL
	if got := cfg.BackendName(); got != AUDIO_BACKEND_NULL {
		t.Fatalf("expected explicit backend to win, got %q", got)
	}
}
