//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/render"
	"mad-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

var materialKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}

// Game adapts a core simulation to the ebiten.Game interface. The sim runs
// on its own fixed timestep; ebiten frames only render and poll input.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	step    *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, tps int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale),
		hud:     ui.NewHUD(sim, hudWidth),
		step:    core.NewFixedStep(tps),
		scale:   scale,
		seed:    seed,
	}
}

// WindowSize returns the outer window size including the HUD panel.
func (g *Game) WindowSize() (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.step.Reset()
	g.tickOnce = false
	slog.Info("reset", "sim", g.sim.Name(), "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	onPanel := g.hud.Update(g.sim.Size().W * g.scale)

	if sim, ok := g.sim.(core.Interactive); ok {
		sim.SetInput(g.pollInput(onPanel))
	}

	ticks := g.step.Frame(time.Now())
	if g.paused {
		ticks = 0
	}
	if g.tickOnce {
		ticks = max(ticks, 1)
		g.tickOnce = false
	}
	for i := 0; i < ticks; i++ {
		g.sim.Step()
	}
	return nil
}

func (g *Game) pollInput(onPanel bool) core.Input {
	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	in := core.Input{
		X: render.Scaled(mx, g.scale),
		Y: render.Scaled(my, g.scale),
	}
	in.Inside = !onPanel && in.X >= 0 && in.Y >= 0 && in.X < size.W && in.Y < size.H
	in.Paint = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.Erase = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	for i, key := range materialKeys {
		if inpututil.IsKeyJustPressed(key) {
			in.Select = i + 1
		}
	}
	_, in.Wheel = ebiten.Wheel()
	return in
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Colors(), g.scale)
	g.overlay.Draw(screen, ebiten.ActualFPS())
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
