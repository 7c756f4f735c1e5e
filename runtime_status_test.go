package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRuntimeStatus_NoStream(t *testing.T) {
	var store runtimeStatusStore
	if got := store.snapshot().statusLine(); got != "no stream" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestRuntimeStatus_StatusLine(t *testing.T) {
	s, _ := newTestStream(t, DefaultStreamOptions())
	var store runtimeStatusStore
	store.setStream(s)

	line := store.snapshot().statusLine()
	for _, want := range []string{"PAUSED", "440.0 Hz", "vol 0.50", "[fake]"} {
		if !strings.Contains(line, want) {
			t.Fatalf("status %q missing %q", line, want)
		}
	}

	_ = s.Play()
	if line := store.snapshot().statusLine(); !strings.HasPrefix(line, "PLAYING") {
		t.Fatalf("expected PLAYING, got %q", line)
	}
}

func TestRuntimeStatus_Script(t *testing.T) {
	s, _ := newTestStream(t, DefaultStreamOptions())
	var store runtimeStatusStore
	store.setStream(s)
	store.setScript("demo.lua")

	if line := store.snapshot().statusLine(); !strings.Contains(line, "script running") {
		t.Fatalf("expected running script, got %q", line)
	}
	store.setScriptDone(errors.New("boom"))
	if line := store.snapshot().statusLine(); !strings.Contains(line, "script failed") {
		t.Fatalf("expected failed script, got %q", line)
	}
	store.setScript("demo.lua")
	store.setScriptDone(nil)
	if line := store.snapshot().statusLine(); !strings.Contains(line, "script done") {
		t.Fatalf("expected finished script, got %q", line)
	}
}
