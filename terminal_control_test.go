package main

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func decodeAll(t *testing.T, in string) []termInput {
	t.Helper()
	var dec keyDecoder
	var out []termInput
	for i := 0; i < len(in); i++ {
		if ev, ok := dec.Feed(in[i]); ok {
			out = append(out, ev)
		}
	}
	return out
}

func TestKeyDecoder_ArrowKeys(t *testing.T) {
	got := decodeAll(t, "\x1b[A\x1b[B\x1b[C\x1b[D")
	want := []Key{KeyUp, KeyDown, KeyRight, KeyLeft}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), got)
	}
	for i, k := range want {
		if got[i].Key != k {
			t.Fatalf("key %d: expected %v, got %v", i, k, got[i].Key)
		}
	}
}

func TestKeyDecoder_ApplicationMode(t *testing.T) {
	got := decodeAll(t, "\x1bOA")
	if len(got) != 1 || got[0].Key != KeyUp {
		t.Fatalf("expected Up from SS3 sequence, got %v", got)
	}
}

func TestKeyDecoder_ModifiedArrow(t *testing.T) {
	got := decodeAll(t, "\x1b[1;5C")
	if len(got) != 1 || got[0].Key != KeyRight {
		t.Fatalf("expected Right from modified sequence, got %v", got)
	}
}

func TestKeyDecoder_SpaceAndQuit(t *testing.T) {
	got := decodeAll(t, " x\x03")
	if len(got) != 2 {
		t.Fatalf("expected space and quit, got %v", got)
	}
	if got[0].Key != KeySpace {
		t.Fatalf("expected Space, got %v", got[0].Key)
	}
	if !got[1].Quit {
		t.Fatal("expected Ctrl+C to quit")
	}
}

func TestKeyDecoder_UnknownSequenceIgnored(t *testing.T) {
	got := decodeAll(t, "\x1b[H\x1bx")
	if len(got) != 0 {
		t.Fatalf("expected no keys, got %v", got)
	}
	// Decoder is back in ground state
	if got := decodeAll(t, "q"); len(got) != 1 || !got[0].Quit {
		t.Fatalf("expected quit, got %v", got)
	}
}

func TestKeyDecoder_EscapeThenSpace(t *testing.T) {
	got := decodeAll(t, "\x1b \x1bq")
	if len(got) != 2 {
		t.Fatalf("expected space and quit after lone escapes, got %v", got)
	}
	if got[0].Key != KeySpace {
		t.Fatalf("expected Space, got %v", got[0].Key)
	}
	if !got[1].Quit {
		t.Fatal("expected q after escape to quit")
	}
}

// endlessReader never runs dry, like a terminal with a held key.
type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = ' '
	}
	return len(p), nil
}

func TestPumpKeys_ExitsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	keys := make(chan byte) // Nobody reads, so the pump blocks on send
	done := make(chan struct{})
	go func() {
		pumpKeys(ctx, endlessReader{}, keys)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the key pump to exit after cancel")
	}
	if _, ok := <-keys; ok {
		t.Fatal("expected keys to be closed")
	}
}

func TestCRLFWriter(t *testing.T) {
	var buf bytes.Buffer
	w := crlfWriter{&buf}

	n, err := w.Write([]byte("Audio playing\nAudio hz +10.0\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 29 {
		t.Fatalf("expected 29 bytes reported, got %d", n)
	}
	if got := buf.String(); got != "Audio playing\r\nAudio hz +10.0\r\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
