//go:build !headless

// gui_ebiten.go - Ebiten window front end: shape display, widgets and key input

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
	"image"
	"image/color"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const (
	WIDGET_MARGIN   = 20
	WIDGET_WIDTH    = 200
	WIDGET_SPACING  = 10
	SLIDER_HEIGHT   = 30
	BUTTON_HEIGHT   = 60
	SLIDER_MAX_FREQ = 2000.0 // Keys can still go above this
)

var (
	backgroundColor = color.RGBA{5, 5, 5, 255}
	widgetColor     = color.RGBA{77, 77, 77, 255}
	widgetFillColor = color.RGBA{130, 130, 130, 255}
	labelColor      = color.RGBA{255, 255, 255, 255}
)

var controlKeys = []ebiten.Key{
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
	ebiten.KeySpace,
}

func translateKey(key ebiten.Key) (Key, bool) {
	switch key {
	case ebiten.KeyArrowUp:
		return KeyUp, true
	case ebiten.KeyArrowDown:
		return KeyDown, true
	case ebiten.KeyArrowLeft:
		return KeyLeft, true
	case ebiten.KeyArrowRight:
		return KeyRight, true
	case ebiten.KeySpace:
		return KeySpace, true
	}
	return KeyNone, false
}

type EbitenFrontend struct {
	controls *Controls
	stream   *Stream
	done     <-chan struct{}
	width    int
	height   int

	shape       ShapeModel
	resolution  *Slider
	scale       *Slider
	rotation    *Slider
	frequency   *Slider
	volume      *Slider
	colorButton *Button
	position    *XYPad
	rng         *rand.Rand
	events      io.Writer // Widget change log

	showStatusBar bool
	clipboardOnce sync.Once
	clipboardOK   bool

	whitePixel *ebiten.Image
	vertices   []ebiten.Vertex
	indices    []uint16
}

func NewEbitenFrontend(app *App) *EbitenFrontend {
	shape := DefaultShape()
	limits := app.config.UpdateLimits()
	st := app.stream.Status()

	y := WIDGET_MARGIN
	next := func(h int) Rect {
		r := Rect{X: WIDGET_MARGIN, Y: y, W: WIDGET_WIDTH, H: h}
		y += h + WIDGET_SPACING
		return r
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &EbitenFrontend{
		controls: app.controls,
		stream:   app.stream,
		done:     app.Context().Done(),
		width:    app.config.Window.Width,
		height:   app.config.Window.Height,
		shape:    shape,

		resolution: &Slider{Label: "Resolution", Min: SHAPE_MIN_RESOLUTION, Max: SHAPE_MAX_RESOLUTION, Value: float64(shape.Resolution), Bounds: next(SLIDER_HEIGHT)},
		scale:      &Slider{Label: "Scale", Min: 0, Max: SHAPE_MAX_SCALE, Value: shape.Scale, Bounds: next(SLIDER_HEIGHT)},
		rotation:   &Slider{Label: "Rotation", Min: -math.Pi, Max: math.Pi, Value: shape.Rotation, Bounds: next(SLIDER_HEIGHT)},
		frequency:  &Slider{Label: "Frequency", Min: limits.FrequencyMin, Max: min(limits.FrequencyMax, SLIDER_MAX_FREQ), Value: st.Frequency, Bounds: next(SLIDER_HEIGHT)},
		volume:     &Slider{Label: "Volume", Min: float64(limits.VolumeMin), Max: float64(limits.VolumeMax), Value: float64(st.Volume), Bounds: next(SLIDER_HEIGHT)},
		colorButton: &Button{
			Label:  "Random Color",
			Bounds: next(BUTTON_HEIGHT),
		},
		position: &XYPad{
			Label: "Position",
			MinX:  -SHAPE_PAD_RANGE, MaxX: SHAPE_PAD_RANGE,
			MinY: -SHAPE_PAD_RANGE, MaxY: SHAPE_PAD_RANGE,
			Bounds: next(WIDGET_WIDTH),
		},
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		events:        os.Stdout,
		showStatusBar: true,
		whitePixel:    white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

func runFrontend(app *App) error {
	runtimeStatus.setFrontend("ebiten")
	f := NewEbitenFrontend(app)

	ebiten.SetWindowSize(app.config.Window.Width, app.config.Window.Height)
	ebiten.SetWindowTitle(app.config.Window.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)
	return ebiten.RunGame(f)
}

func (f *EbitenFrontend) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	select {
	case <-f.done:
		return ebiten.Termination
	default:
	}

	f.handleKeyboardInput()
	f.handlePointerInput()
	return nil
}

func (f *EbitenFrontend) handleKeyboardInput() {
	for _, key := range controlKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if k, ok := translateKey(key); ok {
			if err := f.controls.HandleKey(k); err != nil {
				fmt.Fprintf(os.Stderr, "controls: %v\n", err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		f.showStatusBar = !f.showStatusBar
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		f.copyPatch()
	}
}

func (f *EbitenFrontend) handlePointerInput() {
	x, y := ebiten.CursorPosition()
	p := PointerState{
		X:           x,
		Y:           y,
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	f.updateWidgets(p)
}

// updateWidgets applies one frame of pointer input to the widgets and
// announces each change on the event log.
func (f *EbitenFrontend) updateWidgets(p PointerState) {
	if f.resolution.Update(p) {
		if n := int(math.Round(f.resolution.Value)); n != f.shape.Resolution {
			f.shape.Resolution = n
			fmt.Fprintf(f.events, "Resolution = %d\n", n)
		}
	}
	if f.scale.Update(p) {
		f.shape.Scale = f.scale.Value
		fmt.Fprintf(f.events, "Scale = %.1f\n", f.shape.Scale)
	}
	if f.rotation.Update(p) {
		f.shape.Rotation = f.rotation.Value
		fmt.Fprintf(f.events, "Rotation = %.2f\n", f.shape.Rotation)
	}
	if f.colorButton.Update(p) {
		f.shape.Color = randomColor(f.rng)
		fmt.Fprintln(f.events, "Random color set")
	}
	if f.position.Update(p) {
		f.shape.Position = Point{X: f.position.X, Y: f.position.Y}
		fmt.Fprintln(f.events, "Position set")
	}

	if f.frequency.Update(p) {
		f.reportSend(f.controls.SetFrequency(f.frequency.Value))
	}
	if f.volume.Update(p) {
		f.reportSend(f.controls.SetVolume(f.volume.Value))
	}

	// Audio sliders follow the values the audio thread applied, unless held
	st := f.stream.Status()
	if !f.frequency.Dragging() {
		f.frequency.Value = st.Frequency
	}
	if !f.volume.Dragging() {
		f.volume.Value = float64(st.Volume)
	}
}

func (f *EbitenFrontend) reportSend(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "controls: %v\n", err)
	}
}

func (f *EbitenFrontend) copyPatch() {
	f.clipboardOnce.Do(func() {
		f.clipboardOK = clipboard.Init() == nil
	})
	if !f.clipboardOK {
		return
	}
	patch := f.controls.Patch()
	clipboard.Write(clipboard.FmtText, []byte(patch))
	fmt.Printf("Copied %s\n", patch)
}

func (f *EbitenFrontend) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	f.drawShape(screen)

	f.drawSlider(screen, f.resolution, fmt.Sprintf("%d", f.shape.Resolution))
	f.drawSlider(screen, f.scale, fmt.Sprintf("%.0f", f.scale.Value))
	f.drawSlider(screen, f.rotation, fmt.Sprintf("%.2f", f.rotation.Value))
	f.drawSlider(screen, f.frequency, fmt.Sprintf("%.1f Hz", f.frequency.Value))
	f.drawSlider(screen, f.volume, fmt.Sprintf("%.2f", f.volume.Value))
	f.drawButton(screen, f.colorButton)
	f.drawPad(screen, f.position)

	if f.showStatusBar {
		f.drawRuntimeStatusBar(screen)
	}
}

func (f *EbitenFrontend) Layout(_, _ int) (int, int) {
	return f.width, f.height
}

// drawShape draws the polygon as a triangle fan around its centre.
func (f *EbitenFrontend) drawShape(screen *ebiten.Image) {
	cx, cy := float64(f.width)/2, float64(f.height)/2
	pts := f.shape.Vertices(cx, cy)
	c := f.shape.Color
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255

	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}

	f.vertices = f.vertices[:0]
	f.indices = f.indices[:0]
	f.vertices = append(f.vertices, vertex(cx+f.shape.Position.X, cy-f.shape.Position.Y))
	for _, p := range pts {
		f.vertices = append(f.vertices, vertex(p.X, p.Y))
	}
	n := uint16(len(pts))
	for i := uint16(0); i < n; i++ {
		f.indices = append(f.indices, 0, i+1, (i+1)%n+1)
	}
	screen.DrawTriangles(f.vertices, f.indices, f.whitePixel, nil)
}

func (f *EbitenFrontend) drawSlider(screen *ebiten.Image, s *Slider, value string) {
	b := s.Bounds
	ebitenutil.DrawRect(screen, float64(b.X), float64(b.Y), float64(b.W), float64(b.H), widgetColor)
	ebitenutil.DrawRect(screen, float64(b.X), float64(b.Y), s.Fraction()*float64(b.W), float64(b.H), widgetFillColor)
	text.Draw(screen, s.Label+": "+value, basicfont.Face7x13, b.X+6, b.Y+b.H/2+4, labelColor)
}

func (f *EbitenFrontend) drawButton(screen *ebiten.Image, btn *Button) {
	b := btn.Bounds
	ebitenutil.DrawRect(screen, float64(b.X), float64(b.Y), float64(b.W), float64(b.H), widgetColor)
	w := text.BoundString(basicfont.Face7x13, btn.Label).Dx()
	text.Draw(screen, btn.Label, basicfont.Face7x13, b.X+(b.W-w)/2, b.Y+b.H/2+4, labelColor)
}

func (f *EbitenFrontend) drawPad(screen *ebiten.Image, pad *XYPad) {
	b := pad.Bounds
	ebitenutil.DrawRect(screen, float64(b.X), float64(b.Y), float64(b.W), float64(b.H), widgetColor)
	cx, cy := pad.Cursor()
	ebitenutil.DrawRect(screen, float64(b.X), float64(cy), float64(b.W), 1, widgetFillColor)
	ebitenutil.DrawRect(screen, float64(cx), float64(b.Y), 1, float64(b.H), widgetFillColor)
	ebitenutil.DrawRect(screen, float64(cx-3), float64(cy-3), 7, 7, labelColor)
	label := fmt.Sprintf("%s: %.0f, %.0f", pad.Label, pad.X, pad.Y)
	text.Draw(screen, label, basicfont.Face7x13, b.X+6, b.Y+16, labelColor)
}

type statusToken struct {
	name    string
	enabled bool
}

func drawStatusLine(screen *ebiten.Image, x, baselineY int, label string, tokens []statusToken) {
	face := basicfont.Face7x13
	labelColor := color.RGBA{190, 190, 190, 255}
	offColor := color.RGBA{120, 120, 120, 255}
	onColor := color.RGBA{0, 220, 90, 255}

	text.Draw(screen, label, face, x, baselineY, labelColor)
	cursorX := x + text.BoundString(face, label).Dx() + 6

	for _, token := range tokens {
		c := offColor
		if token.enabled {
			c = onColor
		}
		text.Draw(screen, token.name, face, cursorX, baselineY, c)
		cursorX += text.BoundString(face, token.name).Dx() + 8
	}
}

func (f *EbitenFrontend) drawRuntimeStatusBar(screen *ebiten.Image) {
	s := runtimeStatus.snapshot()
	if s.stream == nil {
		return
	}
	st := s.stream.Status()

	barHeight := 31
	if barHeight >= f.height {
		return
	}
	y := f.height - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(f.width), float64(barHeight), color.RGBA{0, 0, 0, 180})

	drawStatusLine(screen, 6, y+13, "AUDIO", []statusToken{
		{name: "PLAY", enabled: st.Playing},
		{name: "|", enabled: false},
		{name: "PAUSE", enabled: !st.Playing},
		{name: "|", enabled: false},
		{name: s.stream.Backend(), enabled: st.Playing},
		{name: "|", enabled: false},
		{name: fmt.Sprintf("DROP %d", st.Rejected), enabled: st.Rejected > 0},
	})
	drawStatusLine(screen, 6, y+26, "TONE ", []statusToken{
		{name: fmt.Sprintf("%.1f Hz", st.Frequency), enabled: st.Playing},
		{name: "|", enabled: false},
		{name: fmt.Sprintf("VOL %.2f", st.Volume), enabled: st.Playing},
		{name: "|", enabled: false},
		{name: fmt.Sprintf("QUEUE %d", st.Pending), enabled: st.Pending > 0},
	})

	legendColor := color.RGBA{160, 160, 160, 255}
	legend := "Arrows Tone/Vol  Space Play  F12 Status  Ctrl+Shift+C Copy"
	legendW := text.BoundString(basicfont.Face7x13, legend).Dx()
	legendX := max(f.width-legendW-6, 6)
	text.Draw(screen, legend, basicfont.Face7x13, legendX, y+13, legendColor)
}
