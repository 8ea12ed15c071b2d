// Package term renders a sand simulation in a terminal using half-block
// characters, two grid rows per terminal row.
package term

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/sims/sand"

	"github.com/gdamore/tcell/v2"
)

// StatusRows is the number of terminal rows reserved below the grid.
const StatusRows = 1

const frameInterval = 16 * time.Millisecond

// GridSize returns the sand grid that fills a cols x rows terminal.
func GridSize(cols, rows int) (w, h int) {
	return max(cols, 1), max(rows-StatusRows, 1) * 2
}

// Front drives a sand.Sim from terminal input and draws it to a screen.
type Front struct {
	screen tcell.Screen
	sim    *sand.Sim
	step   *core.FixedStep

	pointer core.Input
	paused  bool
	fps     float64
}

// New binds sim to screen, ticking at tps.
func New(screen tcell.Screen, sim *sand.Sim, tps int) *Front {
	return &Front{screen: screen, sim: sim, step: core.NewFixedStep(tps)}
}

// Paused reports whether ticking is suspended.
func (f *Front) Paused() bool { return f.paused }

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (f *Front) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return f.handleKey(ev)
	case *tcell.EventMouse:
		f.handleMouse(ev)
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

func (f *Front) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch r := ev.Rune(); r {
	case 'q':
		return false
	case ' ':
		f.paused = !f.paused
	case 'c':
		f.sim.Restart()
		f.step.Reset()
	case '1', '2', '3':
		in := f.pointer
		in.Select = int(r - '0')
		f.sim.SetInput(in)
	}
	return true
}

func (f *Front) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	w, h := f.sim.Size().W, f.sim.Size().H
	btn := ev.Buttons()

	in := core.Input{X: col, Y: row * 2}
	in.Inside = in.X >= 0 && in.X < w && in.Y < h
	in.Paint = btn&tcell.Button1 != 0
	in.Erase = btn&tcell.Button2 != 0
	f.pointer = in

	switch {
	case btn&tcell.WheelUp != 0:
		in.Wheel = 1
	case btn&tcell.WheelDown != 0:
		in.Wheel = -1
	}
	f.sim.SetInput(in)
}

// Tick advances the simulation by however many fixed steps fit in the time
// since the previous call.
func (f *Front) Tick(now time.Time) int {
	n := f.step.Frame(now)
	if f.paused {
		return 0
	}
	for i := 0; i < n; i++ {
		f.sim.Step()
	}
	return n
}

// Draw renders the grid and the status line.
func (f *Front) Draw() {
	colors := f.sim.Colors()
	size := f.sim.Size()
	for y := 0; y < size.H; y += 2 {
		for x := 0; x < size.W; x++ {
			bottom := tcell.ColorBlack
			if y+1 < size.H {
				bottom = colorOf(colors[x+(y+1)*size.W])
			}
			style := tcell.StyleDefault.Foreground(colorOf(colors[x+y*size.W])).Background(bottom)
			f.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
	f.drawStatus((size.H + 1) / 2)
	f.screen.Show()
}

func (f *Front) drawStatus(row int) {
	cols, _ := f.screen.Size()
	line := strings.Join(f.sim.StatusLines(), "  ")
	line = fmt.Sprintf("FPS: %.0f  %s", f.fps, line)
	if f.paused {
		line += "  [paused]"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	runes := []rune(line)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		f.screen.SetContent(x, row, r, nil, style)
	}
}

// Run polls input on its own goroutine and renders about 60 frames per
// second until the user quits or ctx is cancelled.
func (f *Front) Run(ctx context.Context) error {
	f.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	f.screen.HideCursor()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !f.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			if dt := now.Sub(last); dt > 0 {
				f.fps = float64(time.Second) / float64(dt)
			}
			last = now
			f.Tick(now)
			f.Draw()
		}
	}
}

// colorOf maps a cell color to a terminal color. Transparent cells are black.
func colorOf(c color.RGBA) tcell.Color {
	if c.A == 0 {
		return tcell.ColorBlack
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
