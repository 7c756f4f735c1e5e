package main

import (
	"context"
	"testing"
	"time"
)

func TestApp_NullBackendWithScript(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audio.Backend = AUDIO_BACKEND_NULL
	cfg.Audio.BufferFrames = 64
	cfg.Script = writeTempFile(t, "start.lua", "tone.up()\ntone.up()\n")

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer app.Close()
	app.controls.SetOutput(nil)

	if err := app.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	select {
	case <-app.ScriptDone():
	case <-time.After(2 * time.Second):
		t.Fatal("script did not finish")
	}

	deadline := time.Now().Add(2 * time.Second)
	for app.stream.Status().Frequency != 460 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := app.stream.Status().Frequency; got != 460 {
		t.Fatalf("expected 460 Hz, got %v", got)
	}
	if !app.stream.IsPlaying() {
		t.Fatal("expected stream to be playing")
	}
}

func TestApp_CloseStopsStream(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audio.Backend = AUDIO_BACKEND_NULL

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	if app.ScriptDone() != nil {
		t.Fatal("expected no script channel without a script")
	}
	_ = app.Start()
	app.Close()

	if !app.stream.IsClosed() {
		t.Fatal("expected stream to be closed")
	}
	if app.Context().Err() == nil {
		t.Fatal("expected app context to be cancelled")
	}
}

func TestApp_UnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audio.Backend = "tape-deck"
	if _, err := NewApp(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
