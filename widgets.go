// widgets.go - Immediate-mode widget state: sliders, buttons and an XY pad

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

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PointerState is the mouse as seen by one frame's Update.
type PointerState struct {
	X, Y        int
	Pressed     bool
	JustPressed bool
}

type Slider struct {
	Label    string
	Min, Max float64
	Value    float64
	Bounds   Rect
	dragging bool
}

// Update grabs the slider on a press inside it and tracks the pointer until
// release. It reports whether Value changed.
func (s *Slider) Update(p PointerState) bool {
	if p.JustPressed && s.Bounds.Contains(p.X, p.Y) {
		s.dragging = true
	}
	if !p.Pressed {
		s.dragging = false
	}
	if !s.dragging || s.Bounds.W <= 0 {
		return false
	}
	frac := float64(p.X-s.Bounds.X) / float64(s.Bounds.W)
	v := s.Min + clamp01(frac)*(s.Max-s.Min)
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

func (s *Slider) Dragging() bool {
	return s.dragging
}

// Fraction is the knob position in [0,1].
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return clamp01((s.Value - s.Min) / (s.Max - s.Min))
}

type Button struct {
	Label  string
	Bounds Rect
}

func (b *Button) Update(p PointerState) bool {
	return p.JustPressed && b.Bounds.Contains(p.X, p.Y)
}

// XYPad maps the pad area onto [MinX,MaxX] x [MinY,MaxY] with Y growing upwards.
type XYPad struct {
	Label      string
	MinX, MaxX float64
	MinY, MaxY float64
	X, Y       float64
	Bounds     Rect
	dragging   bool
}

func (x *XYPad) Update(p PointerState) bool {
	if p.JustPressed && x.Bounds.Contains(p.X, p.Y) {
		x.dragging = true
	}
	if !p.Pressed {
		x.dragging = false
	}
	if !x.dragging || x.Bounds.W <= 0 || x.Bounds.H <= 0 {
		return false
	}
	fx := clamp01(float64(p.X-x.Bounds.X) / float64(x.Bounds.W))
	fy := clamp01(float64(p.Y-x.Bounds.Y) / float64(x.Bounds.H))
	nx := x.MinX + fx*(x.MaxX-x.MinX)
	ny := x.MaxY - fy*(x.MaxY-x.MinY)
	if nx == x.X && ny == x.Y {
		return false
	}
	x.X, x.Y = nx, ny
	return true
}

// Cursor returns the pad position in screen coordinates.
func (x *XYPad) Cursor() (int, int) {
	fx, fy := 0.0, 0.0
	if x.MaxX != x.MinX {
		fx = clamp01((x.X - x.MinX) / (x.MaxX - x.MinX))
	}
	if x.MaxY != x.MinY {
		fy = clamp01((x.MaxY - x.Y) / (x.MaxY - x.MinY))
	}
	return x.Bounds.X + int(fx*float64(x.Bounds.W)), x.Bounds.Y + int(fy*float64(x.Bounds.H))
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
