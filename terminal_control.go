// terminal_control.go - Raw-mode terminal front end: arrow keys and space drive the stream

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
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

var errNotATerminal = errors.New("stdin is not a terminal")

type termInput struct {
	Key  Key
	Quit bool
}

// keyDecoder turns the byte stream of a raw-mode terminal into keys.
// Arrow keys arrive as CSI (ESC [ A) or SS3 (ESC O A) sequences.
type keyDecoder struct {
	state int
}

const (
	decodeGround = iota
	decodeEscape
	decodeCSI
)

func (d *keyDecoder) Feed(b byte) (termInput, bool) {
	switch d.state {
	case decodeEscape:
		switch b {
		case '[', 'O':
			d.state = decodeCSI
		case 0x1B:
		default:
			// Not a sequence introducer; the byte is an ordinary key
			d.state = decodeGround
			return d.Feed(b)
		}
		return termInput{}, false
	case decodeCSI:
		// Parameter and intermediate bytes until the final byte
		if b < 0x40 || b > 0x7E {
			return termInput{}, false
		}
		d.state = decodeGround
		switch b {
		case 'A':
			return termInput{Key: KeyUp}, true
		case 'B':
			return termInput{Key: KeyDown}, true
		case 'C':
			return termInput{Key: KeyRight}, true
		case 'D':
			return termInput{Key: KeyLeft}, true
		}
		return termInput{}, false
	}

	switch b {
	case 0x1B:
		d.state = decodeEscape
	case ' ':
		return termInput{Key: KeySpace}, true
	case 'q', 'Q', 0x03, 0x04: // q, Ctrl+C, Ctrl+D
		return termInput{Quit: true}, true
	}
	return termInput{}, false
}

// TerminalControl reads keys from a raw-mode terminal and redraws a status
// line. It is the headless counterpart of the window's key handling.
type TerminalControl struct {
	controls *Controls
	in       *os.File
	out      io.Writer
	refresh  time.Duration
}

func NewTerminalControl(controls *Controls) *TerminalControl {
	return &TerminalControl{
		controls: controls,
		in:       os.Stdin,
		out:      os.Stdout,
		refresh:  100 * time.Millisecond,
	}
}

// Run blocks until the user quits or ctx is cancelled. Stdin is restored
// to its previous mode on return.
func (t *TerminalControl) Run(ctx context.Context) error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return errNotATerminal
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("terminal_control: failed to set raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(t.out, "\r\n")
	}()

	// Raw mode turns off output post-processing, so the event log from
	// Controls needs explicit carriage returns.
	t.controls.SetOutput(crlfWriter{t.out})
	defer t.controls.SetOutput(os.Stdout)

	fmt.Fprint(t.out, "Up/Down: frequency  Left/Right: volume  Space: play/pause  q: quit\r\n")

	keys := make(chan byte, 64)
	go pumpKeys(ctx, t.in, keys)

	ticker := time.NewTicker(t.refresh)
	defer ticker.Stop()

	var dec keyDecoder
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.drawStatus()
		case b, ok := <-keys:
			if !ok {
				return nil
			}
			in, ok := dec.Feed(b)
			if !ok {
				continue
			}
			if in.Quit {
				return nil
			}
			if err := t.controls.HandleKey(in.Key); err != nil {
				fmt.Fprintf(t.out, "\r\nterminal_control: %v\r\n", err)
			}
			t.drawStatus()
		}
	}
}

// runTerminalFrontend drives the app from the terminal. Without a terminal it
// waits for shutdown or for the startup script to finish.
func runTerminalFrontend(app *App) error {
	runtimeStatus.setFrontend("terminal")

	err := NewTerminalControl(app.controls).Run(app.Context())
	if !errors.Is(err, errNotATerminal) {
		return err
	}

	fmt.Println("stdin is not a terminal; running until interrupted")
	select {
	case <-app.Context().Done():
	case <-app.ScriptDone():
	}
	return nil
}

// pumpKeys copies bytes from r to keys until r fails or ctx is cancelled.
// A Read already in progress still has to return before it exits.
func pumpKeys(ctx context.Context, r io.Reader, keys chan<- byte) {
	defer close(keys)
	buf := make([]byte, 32)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case keys <- b:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (t *TerminalControl) drawStatus() {
	fmt.Fprintf(t.out, "\r%-72s", runtimeStatus.snapshot().statusLine())
}

type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	start := 0
	for i, b := range p {
		if b != '\n' {
			continue
		}
		if _, err := c.w.Write(p[start:i]); err != nil {
			return start, err
		}
		if _, err := io.WriteString(c.w, "\r\n"); err != nil {
			return i, err
		}
		start = i + 1
	}
	if _, err := c.w.Write(p[start:]); err != nil {
		return start, err
	}
	return len(p), nil
}
