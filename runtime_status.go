// runtime_status.go - Runtime status snapshot shared by the status bar and the terminal status line

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
	"sync"
)

type runtimeStatusSnapshot struct {
	stream     *Stream
	frontend   string
	scriptPath string
	scriptDone bool
	scriptErr  error
}

type runtimeStatusStore struct {
	mu sync.RWMutex
	runtimeStatusSnapshot
}

func (s *runtimeStatusStore) setStream(stream *Stream) {
	s.mu.Lock()
	s.stream = stream
	s.mu.Unlock()
}

func (s *runtimeStatusStore) setFrontend(name string) {
	s.mu.Lock()
	s.frontend = name
	s.mu.Unlock()
}

func (s *runtimeStatusStore) setScript(path string) {
	s.mu.Lock()
	s.scriptPath = path
	s.scriptDone = false
	s.scriptErr = nil
	s.mu.Unlock()
}

func (s *runtimeStatusStore) setScriptDone(err error) {
	s.mu.Lock()
	s.scriptDone = true
	s.scriptErr = err
	s.mu.Unlock()
}

func (s *runtimeStatusStore) snapshot() runtimeStatusSnapshot {
	s.mu.RLock()
	snap := s.runtimeStatusSnapshot
	s.mu.RUnlock()
	return snap
}

// statusLine renders the one-line summary used by the terminal front end.
func (snap runtimeStatusSnapshot) statusLine() string {
	if snap.stream == nil {
		return "no stream"
	}
	st := snap.stream.Status()
	state := "PAUSED"
	if st.Playing {
		state = "PLAYING"
	}
	line := fmt.Sprintf("%-7s %8.1f Hz  vol %.2f  [%s]", state, st.Frequency, st.Volume, snap.stream.Backend())
	if st.Rejected > 0 {
		line += fmt.Sprintf("  dropped %d", st.Rejected)
	}
	if snap.scriptPath != "" {
		switch {
		case !snap.scriptDone:
			line += "  script running"
		case snap.scriptErr != nil:
			line += "  script failed"
		default:
			line += "  script done"
		}
	}
	return line
}

var runtimeStatus = &runtimeStatusStore{}
