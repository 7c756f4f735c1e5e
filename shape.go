// shape.go - Display-only shape parameters driven by the GUI widgets

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
	"image/color"
	"math"
	"math/rand/v2"
)

const (
	SHAPE_MIN_RESOLUTION = 3
	SHAPE_MAX_RESOLUTION = 15
	SHAPE_MAX_SCALE      = 300.0
	SHAPE_PAD_RANGE      = 200.0
)

type Point struct {
	X, Y float64
}

// ShapeModel is UI-thread state only; nothing here reaches the audio thread.
// Position uses a centred, y-up coordinate system.
type ShapeModel struct {
	Resolution int
	Scale      float64 // Radius in pixels
	Rotation   float64 // Radians
	Color      color.RGBA
	Position   Point
}

func DefaultShape() ShapeModel {
	return ShapeModel{
		Resolution: 6,
		Scale:      200,
		Rotation:   0,
		Color:      color.RGBA{R: 255, G: 0, B: 255, A: 255},
	}
}

// Vertices returns the polygon corners in screen coordinates for a screen
// whose centre is (cx, cy).
func (s ShapeModel) Vertices(cx, cy float64) []Point {
	n := min(max(s.Resolution, SHAPE_MIN_RESOLUTION), SHAPE_MAX_RESOLUTION)
	pts := make([]Point, n)
	ox := cx + s.Position.X
	oy := cy - s.Position.Y
	for i := range pts {
		a := s.Rotation + 2*math.Pi*float64(i)/float64(n)
		pts[i] = Point{
			X: ox + s.Scale*math.Cos(a),
			Y: oy - s.Scale*math.Sin(a),
		}
	}
	return pts
}

func randomColor(r *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(r.IntN(256)),
		G: uint8(r.IntN(256)),
		B: uint8(r.IntN(256)),
		A: 255,
	}
}
