// app.go - Application wiring: stream, backend, controls and the startup script

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
	"context"
	"fmt"
	"os"
)

type App struct {
	config   Config
	stream   *Stream
	controls *Controls
	script   *ScriptRunner

	ctx        context.Context
	cancel     context.CancelFunc
	scriptDone chan struct{}
}

// NewApp builds the stream and attaches it to the configured backend. The
// stream is paused until Start.
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	stream := NewStream(cfg.StreamOptions())

	name := cfg.BackendName()
	output, err := NewAudioOutput(name, cfg.AudioConfig())
	if err != nil {
		return nil, err
	}
	if err := stream.AttachOutput(name, output); err != nil {
		_ = output.Close()
		return nil, err
	}

	controls := NewControls(stream, cfg.ControlConfig())
	runtimeStatus.setStream(stream)

	ctx, cancel := context.WithCancel(ctx)
	return &App{
		config:   cfg,
		stream:   stream,
		controls: controls,
		script:   NewScriptRunner(controls),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start begins playback and launches the configured script, if any.
func (a *App) Start() error {
	if err := a.stream.Play(); err != nil {
		return err
	}
	if a.config.Script != "" {
		a.startScript(a.config.Script)
	}
	return nil
}

func (a *App) startScript(path string) {
	a.scriptDone = make(chan struct{})
	runtimeStatus.setScript(path)
	go func() {
		defer close(a.scriptDone)
		err := a.script.RunFile(a.ctx, path)
		runtimeStatus.setScriptDone(err)
		if err != nil && a.ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "script: %v\n", err)
		}
	}()
}

// ScriptDone is closed when the startup script returns. It is nil when no
// script was configured.
func (a *App) ScriptDone() <-chan struct{} {
	return a.scriptDone
}

func (a *App) Context() context.Context {
	return a.ctx
}

func (a *App) Close() {
	a.cancel()
	if a.scriptDone != nil {
		<-a.scriptDone
	}
	if err := a.stream.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "audio: %v\n", err)
	}
}
