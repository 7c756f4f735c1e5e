// script.go - Lua automation of the instrument controls

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
	"time"

	lua "github.com/yuin/gopher-lua"
)

const MAX_SCRIPT_SLEEP = time.Minute

// ScriptRunner exposes Controls to Lua as the global table "tone". Calls
// that queue an update return true, or nil plus an error message.
type ScriptRunner struct {
	controls *Controls
}

func NewScriptRunner(controls *Controls) *ScriptRunner {
	return &ScriptRunner{controls: controls}
}

func (r *ScriptRunner) RunFile(ctx context.Context, path string) error {
	L := r.newState(ctx)
	defer L.Close()
	return L.DoFile(path)
}

func (r *ScriptRunner) RunString(ctx context.Context, src string) error {
	L := r.newState(ctx)
	defer L.Close()
	return L.DoString(src)
}

func (r *ScriptRunner) newState(ctx context.Context) *lua.LState {
	L := lua.NewState()
	L.SetContext(ctx)

	tone := L.NewTable()
	L.SetFuncs(tone, map[string]lua.LGFunction{
		"up":      r.keyFunc(KeyUp),
		"down":    r.keyFunc(KeyDown),
		"left":    r.keyFunc(KeyLeft),
		"right":   r.keyFunc(KeyRight),
		"toggle":  r.keyFunc(KeySpace),
		"play":    r.play,
		"pause":   r.pause,
		"playing": r.playing,
		"set_freq": func(L *lua.LState) int {
			return pushResult(L, r.controls.SetFrequency(float64(L.CheckNumber(1))))
		},
		"set_vol": func(L *lua.LState) int {
			return pushResult(L, r.controls.SetVolume(float64(L.CheckNumber(1))))
		},
		"freq": func(L *lua.LState) int {
			L.Push(lua.LNumber(r.controls.Stream().Status().Frequency))
			return 1
		},
		"vol": func(L *lua.LState) int {
			L.Push(lua.LNumber(r.controls.Stream().Status().Volume))
			return 1
		},
		"sleep": r.sleep(ctx),
	})
	L.SetGlobal("tone", tone)
	return L
}

func (r *ScriptRunner) keyFunc(k Key) lua.LGFunction {
	return func(L *lua.LState) int {
		return pushResult(L, r.controls.HandleKey(k))
	}
}

func (r *ScriptRunner) play(L *lua.LState) int {
	return pushResult(L, r.controls.Stream().Play())
}

func (r *ScriptRunner) pause(L *lua.LState) int {
	return pushResult(L, r.controls.Stream().Pause())
}

func (r *ScriptRunner) playing(L *lua.LState) int {
	L.Push(lua.LBool(r.controls.Stream().IsPlaying()))
	return 1
}

func (r *ScriptRunner) sleep(ctx context.Context) lua.LGFunction {
	return func(L *lua.LState) int {
		d := time.Duration(float64(L.CheckNumber(1)) * float64(time.Millisecond))
		d = min(max(d, 0), MAX_SCRIPT_SLEEP)
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			L.RaiseError("script cancelled: %v", ctx.Err())
		}
		return 0
	}
}

func pushResult(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}
