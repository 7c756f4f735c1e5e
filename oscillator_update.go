// oscillator_update.go - Parameter update commands carried from control threads to the audio thread

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

import "fmt"

// UpdateKind tags an Update. Updates are plain values so they can sit in
// the lock-free ring without capturing anything from the control thread.
type UpdateKind uint8

const (
	UpdateNone UpdateKind = iota
	UpdateFrequencyDelta
	UpdateFrequency
	UpdateVolumeDelta
	UpdateVolume
)

const (
	MIN_FREQ = 10.0
	MAX_FREQ = 20000.0 // Maximum frequency in Hz

	MIN_VOLUME = 0.1
	MAX_VOLUME = 0.9
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateNone:
		return "none"
	case UpdateFrequencyDelta:
		return "frequency-delta"
	case UpdateFrequency:
		return "frequency"
	case UpdateVolumeDelta:
		return "volume-delta"
	case UpdateVolume:
		return "volume"
	}
	return fmt.Sprintf("UpdateKind(%d)", uint8(k))
}

type Update struct {
	Kind  UpdateKind
	Value float64
}

func FrequencyDelta(hz float64) Update { return Update{Kind: UpdateFrequencyDelta, Value: hz} }
func SetFrequency(hz float64) Update   { return Update{Kind: UpdateFrequency, Value: hz} }
func VolumeDelta(v float64) Update     { return Update{Kind: UpdateVolumeDelta, Value: v} }
func SetVolume(v float64) Update       { return Update{Kind: UpdateVolume, Value: v} }

func (u Update) String() string {
	switch u.Kind {
	case UpdateFrequencyDelta:
		return fmt.Sprintf("hz %+.1f", u.Value)
	case UpdateFrequency:
		return fmt.Sprintf("hz = %.1f", u.Value)
	case UpdateVolumeDelta:
		return fmt.Sprintf("vol %+.2f", u.Value)
	case UpdateVolume:
		return fmt.Sprintf("vol = %.2f", u.Value)
	}
	return u.Kind.String()
}

// UpdateLimits bounds every applied update. Both fields are clamped, for
// deltas and absolute values alike.
type UpdateLimits struct {
	FrequencyMin float64
	FrequencyMax float64
	VolumeMin    float32
	VolumeMax    float32
}

func DefaultUpdateLimits() UpdateLimits {
	return UpdateLimits{
		FrequencyMin: MIN_FREQ,
		FrequencyMax: MAX_FREQ,
		VolumeMin:    MIN_VOLUME,
		VolumeMax:    MAX_VOLUME,
	}
}

func (l UpdateLimits) Validate() error {
	if l.FrequencyMin < 0 || l.FrequencyMin > l.FrequencyMax {
		return fmt.Errorf("frequency limits [%g, %g] are invalid", l.FrequencyMin, l.FrequencyMax)
	}
	if l.VolumeMin < 0 || l.VolumeMin > l.VolumeMax {
		return fmt.Errorf("volume limits [%g, %g] are invalid", l.VolumeMin, l.VolumeMax)
	}
	return nil
}

func (l UpdateLimits) clampFrequency(hz float64) float64 {
	return min(max(hz, l.FrequencyMin), l.FrequencyMax)
}

func (l UpdateLimits) clampVolume(v float32) float32 {
	return min(max(v, l.VolumeMin), l.VolumeMax)
}

// applyUpdate runs on the audio thread, and on the stream's producer-side
// copy of the state under its send lock.
func (st *OscillatorState) applyUpdate(u Update, limits UpdateLimits) {
	switch u.Kind {
	case UpdateFrequencyDelta:
		st.frequency = limits.clampFrequency(st.frequency + u.Value)
	case UpdateFrequency:
		st.frequency = limits.clampFrequency(u.Value)
	case UpdateVolumeDelta:
		st.volume = limits.clampVolume(st.volume + float32(u.Value))
	case UpdateVolume:
		st.volume = limits.clampVolume(float32(u.Value))
	}
}
