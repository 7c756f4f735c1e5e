// audio_backend_wav.go - WAV recorder output: renders on a clock and writes 16-bit PCM

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
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	AUDIO_BACKEND_WAV = "wav"
	WAV_BIT_DEPTH     = 16
	WAV_FORMAT_PCM    = 1
)

func init() {
	registerAudioBackend(AUDIO_BACKEND_WAV, NewWavOutput, false)
}

// WavOutput runs on the null output's clock and appends every rendered
// buffer to a WAV file. The file is finalised on Close.
type WavOutput struct {
	*NullOutput
	file   *os.File
	enc    *wav.Encoder
	intBuf *audio.IntBuffer
}

func NewWavOutput(cfg AudioConfig) (AudioOutput, error) {
	if cfg.RecordPath == "" {
		return nil, errors.New("wav: no record path configured")
	}
	f, err := os.Create(cfg.RecordPath)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	null := newNullOutput(cfg)
	wo := &WavOutput{
		NullOutput: null,
		file:       f,
		enc:        wav.NewEncoder(f, cfg.SampleRate, WAV_BIT_DEPTH, cfg.Channels, WAV_FORMAT_PCM),
		intBuf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: cfg.Channels,
				SampleRate:  cfg.SampleRate,
			},
			Data:           make([]int, null.cfg.BufferFrames*cfg.Channels),
			SourceBitDepth: WAV_BIT_DEPTH,
		},
	}
	null.sink = wo.write
	return wo, nil
}

func (wo *WavOutput) write(buf Buffer) error {
	data := wo.intBuf.Data[:len(buf.Samples)]
	for i, s := range buf.Samples {
		data[i] = int(min(max(s, -1), 1) * 32767)
	}
	wo.intBuf.Data = data
	return wo.enc.Write(wo.intBuf)
}

func (wo *WavOutput) Close() error {
	err := wo.NullOutput.Close()
	if cerr := wo.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := wo.file.Close(); err == nil {
		err = cerr
	}
	return err
}
