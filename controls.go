// controls.go - Control-side mapping from key presses and sliders to stream operations

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
	"io"
	"os"
	"sync"
)

// Key is a front-end independent control key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeySpace:
		return "Space"
	}
	return "None"
}

const (
	DEFAULT_FREQUENCY_STEP = 10.0
	DEFAULT_VOLUME_STEP    = 0.1
)

type ControlConfig struct {
	FrequencyStep float64
	VolumeStep    float64
}

func DefaultControlConfig() ControlConfig {
	return ControlConfig{
		FrequencyStep: DEFAULT_FREQUENCY_STEP,
		VolumeStep:    DEFAULT_VOLUME_STEP,
	}
}

// Controls turns control events into stream updates. All front ends (window,
// terminal, script) share one Controls; the stream serialises their sends.
type Controls struct {
	stream *Stream
	cfg    ControlConfig

	outMu sync.Mutex
	out   io.Writer
}

func NewControls(stream *Stream, cfg ControlConfig) *Controls {
	return &Controls{
		stream: stream,
		cfg:    cfg,
		out:    os.Stdout,
	}
}

// SetOutput redirects the event log; nil silences it.
func (c *Controls) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	c.outMu.Lock()
	c.out = w
	c.outMu.Unlock()
}

func (c *Controls) logf(format string, args ...any) {
	c.outMu.Lock()
	fmt.Fprintf(c.out, format, args...)
	c.outMu.Unlock()
}

func (c *Controls) Stream() *Stream {
	return c.stream
}

func (c *Controls) HandleKey(k Key) error {
	switch k {
	case KeySpace:
		if err := c.stream.Toggle(); err != nil {
			return err
		}
		if c.stream.IsPlaying() {
			c.logf("Audio playing\n")
		} else {
			c.logf("Audio paused\n")
		}
		return nil
	case KeyUp:
		return c.send(FrequencyDelta(c.cfg.FrequencyStep))
	case KeyDown:
		return c.send(FrequencyDelta(-c.cfg.FrequencyStep))
	case KeyRight:
		return c.send(VolumeDelta(c.cfg.VolumeStep))
	case KeyLeft:
		return c.send(VolumeDelta(-c.cfg.VolumeStep))
	}
	return nil
}

// SetFrequency and SetVolume back the GUI sliders. They are sent on every
// drag step, so they are not logged.
func (c *Controls) SetFrequency(hz float64) error {
	return c.stream.Send(SetFrequency(hz))
}

func (c *Controls) SetVolume(v float64) error {
	return c.stream.Send(SetVolume(v))
}

// send logs the value that will be applied, after clamping, not the step.
func (c *Controls) send(u Update) error {
	target, err := c.stream.SendTarget(u)
	if err != nil {
		return err
	}
	switch u.Kind {
	case UpdateFrequencyDelta, UpdateFrequency:
		c.logf("Audio hz = %.1f\n", target.Frequency)
	case UpdateVolumeDelta, UpdateVolume:
		c.logf("Audio vol = %.2f\n", target.Volume)
	}
	return nil
}

// Patch formats the applied parameters, e.g. for the clipboard.
func (c *Controls) Patch() string {
	st := c.stream.Status()
	return fmt.Sprintf("hz=%.1f vol=%.2f playing=%t", st.Frequency, st.Volume, st.Playing)
}
