//go:build !headless

package main

import (
	"bytes"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestKeyTranslation_Arrows(t *testing.T) {
	want := map[ebiten.Key]Key{
		ebiten.KeyArrowUp:    KeyUp,
		ebiten.KeyArrowDown:  KeyDown,
		ebiten.KeyArrowLeft:  KeyLeft,
		ebiten.KeyArrowRight: KeyRight,
		ebiten.KeySpace:      KeySpace,
	}
	for ek, k := range want {
		got, ok := translateKey(ek)
		if !ok || got != k {
			t.Fatalf("translateKey(%v) = %v, %t; expected %v", ek, got, ok, k)
		}
	}
}

func TestKeyTranslation_Unmapped(t *testing.T) {
	if _, ok := translateKey(ebiten.KeyA); ok {
		t.Fatal("expected A to be unmapped")
	}
}

func TestKeyTranslation_ControlKeysAllMapped(t *testing.T) {
	for _, ek := range controlKeys {
		if _, ok := translateKey(ek); !ok {
			t.Fatalf("control key %v has no mapping", ek)
		}
	}
}

func newWidgetFrontend(t *testing.T) (*EbitenFrontend, *bytes.Buffer) {
	t.Helper()
	c, s, _ := newTestControls(t, DefaultStreamOptions())
	shape := DefaultShape()
	var events bytes.Buffer
	return &EbitenFrontend{
		controls:    c,
		stream:      s,
		shape:       shape,
		resolution:  &Slider{Min: SHAPE_MIN_RESOLUTION, Max: SHAPE_MAX_RESOLUTION, Value: float64(shape.Resolution), Bounds: Rect{X: 0, Y: 0, W: 120, H: 10}},
		scale:       &Slider{Min: 0, Max: SHAPE_MAX_SCALE, Value: shape.Scale, Bounds: Rect{X: 0, Y: 20, W: 100, H: 10}},
		rotation:    &Slider{Min: -math.Pi, Max: math.Pi, Value: shape.Rotation, Bounds: Rect{X: 0, Y: 40, W: 100, H: 10}},
		colorButton: &Button{Bounds: Rect{X: 0, Y: 60, W: 100, H: 10}},
		position: &XYPad{
			MinX: -SHAPE_PAD_RANGE, MaxX: SHAPE_PAD_RANGE,
			MinY: -SHAPE_PAD_RANGE, MaxY: SHAPE_PAD_RANGE,
			Bounds: Rect{X: 0, Y: 80, W: 100, H: 100},
		},
		frequency: &Slider{Min: MIN_FREQ, Max: SLIDER_MAX_FREQ, Bounds: Rect{X: 0, Y: 300, W: 100, H: 10}},
		volume:    &Slider{Min: MIN_VOLUME, Max: MAX_VOLUME, Bounds: Rect{X: 0, Y: 320, W: 100, H: 10}},
		rng:       rand.New(rand.NewPCG(1, 2)),
		events:    &events,
	}, &events
}

// click presses at (x, y), optionally drags to (dragX, y), then releases.
func click(f *EbitenFrontend, x, y int, dragX ...int) {
	f.updateWidgets(PointerState{X: x, Y: y, Pressed: true, JustPressed: true})
	for _, dx := range dragX {
		f.updateWidgets(PointerState{X: dx, Y: y, Pressed: true})
	}
	f.updateWidgets(PointerState{X: x, Y: y})
}

func TestWidgets_AnnounceChanges(t *testing.T) {
	f, events := newWidgetFrontend(t)

	click(f, 60, 5, 61) // Second position rounds to the same resolution
	click(f, 50, 25)
	click(f, 75, 45)
	click(f, 10, 65)
	click(f, 50, 105)

	want := "Resolution = 9\n" +
		"Scale = 150.0\n" +
		"Rotation = 1.57\n" +
		"Random color set\n" +
		"Position set\n"
	if got := events.String(); got != want {
		t.Fatalf("expected event log %q, got %q", want, got)
	}
	if f.shape.Resolution != 9 || f.shape.Scale != 150 {
		t.Fatalf("expected shape to follow widgets, got %+v", f.shape)
	}
	if f.shape.Position != (Point{X: 0, Y: 100}) {
		t.Fatalf("expected position (0,100), got %+v", f.shape.Position)
	}
}

func TestWidgets_IdlePointerIsSilent(t *testing.T) {
	f, events := newWidgetFrontend(t)
	f.updateWidgets(PointerState{X: 500, Y: 500})
	f.updateWidgets(PointerState{X: 500, Y: 500, Pressed: true, JustPressed: true})
	if events.Len() != 0 {
		t.Fatalf("expected no events outside the widgets, got %q", events.String())
	}
}
