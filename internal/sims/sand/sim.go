package sand

import (
	"fmt"
	"image/color"

	"mad-sand/internal/core"
)

// hotkeys maps the 1-based material hotkey to a material.
var hotkeys = []Material{Sand, Water, Stone}

// Sim adapts a World to the core.Sim contract and applies brush input once
// per tick.
type Sim struct {
	cfg   Config
	world *World

	input    core.Input
	selected Material
	radius   int
}

// New returns a sand simulation configured from cfg.
func New(cfg Config) *Sim {
	cfg.normalize()
	w := NewWorld(cfg.Width, cfg.Height, cfg.Scale, cfg.Seed)
	w.SetGravity(float32(cfg.Gravity))
	selected, err := ParseMaterial(cfg.Material)
	if err != nil {
		selected = Sand
	}
	return &Sim{
		cfg:      cfg,
		world:    w,
		selected: selected,
		radius:   cfg.Brush.Radius,
	}
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "sand" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return s.world.Size() }

// Scale returns the display pixels per cell.
func (s *Sim) Scale() int { return s.world.Scale() }

// World exposes the underlying grid.
func (s *Sim) World() *World { return s.world }

// Config returns the active configuration.
func (s *Sim) Config() Config { return s.cfg }

// Colors returns the per-cell color buffer for presentation.
func (s *Sim) Colors() []color.RGBA { return s.world.Colors() }

// Seed returns the configured seed.
func (s *Sim) Seed() int64 { return s.cfg.Seed }

// Reset empties the world and reseeds its RNG with seed.
func (s *Sim) Reset(seed int64) {
	s.world.Clear()
	s.world.RNG().Reseed(seed)
}

// Restart resets the world with the configured seed.
func (s *Sim) Restart() { s.Reset(s.cfg.Seed) }

// Step runs one tick: movement, resolution, then the brush.
func (s *Sim) Step() {
	s.world.Tick()
	s.applyBrush()
}

// MotionMask exposes the free-fall intensity per cell for overlays.
func (s *Sim) MotionMask() []float32 { return s.world.MotionMask() }

// Stats reports the most recent tick's resolution summary.
func (s *Sim) Stats() TickStats { return s.world.Stats() }

// Selected returns the material the brush paints with.
func (s *Sim) Selected() Material { return s.selected }

// Select changes the brush material. Selecting Empty or a value outside the
// enumeration is a programming error.
func (s *Sim) Select(m Material) {
	if !m.Valid() || m == Empty {
		panic(fmt.Sprintf("sand: cannot select material %v", m))
	}
	s.selected = m
}

// Radius returns the brush radius in cells.
func (s *Sim) Radius() int { return s.radius }

// SetRadius sets the brush radius, clamped to the configured bounds.
func (s *Sim) SetRadius(r int) {
	s.radius = clampInt(r, s.cfg.Brush.Min, s.cfg.Brush.Max)
}

// SetInput records the frame's pointer state. Material hotkeys and wheel
// movement take effect immediately; painting happens in Step.
func (s *Sim) SetInput(in core.Input) {
	s.input = in
	if in.Select > 0 {
		if in.Select > len(hotkeys) {
			panic(fmt.Sprintf("sand: material hotkey %d out of range", in.Select))
		}
		s.Select(hotkeys[in.Select-1])
	}
	switch {
	case in.Wheel < 0:
		s.SetRadius(s.radius - s.cfg.Brush.Step)
	case in.Wheel > 0:
		s.SetRadius(s.radius + s.cfg.Brush.Step)
	}
}

func (s *Sim) applyBrush() {
	in := s.input
	if !in.Inside {
		return
	}
	switch {
	case in.Paint:
		s.world.Paint(in.X, in.Y, s.radius, s.selected, s.cfg.ChanceFor(s.selected))
	case in.Erase:
		s.world.Erase(in.X, in.Y, s.radius)
	}
}

// BrushCursor reports the brush position and radius for overlays.
func (s *Sim) BrushCursor() (x, y, radius int, ok bool) {
	return s.input.X, s.input.Y, s.radius, s.input.Inside
}

// StatusLines returns the diagnostic text shown by front-ends.
func (s *Sim) StatusLines() []string {
	st := s.world.Stats()
	return []string{
		fmt.Sprintf("Material: %s", s.selected),
		fmt.Sprintf("Brush: %d", s.radius),
		fmt.Sprintf("x: %d, y: %d", s.input.X, s.input.Y),
		fmt.Sprintf("Updates: %d", st.Queued),
		fmt.Sprintf("Particles: %d", s.world.Count()),
	}
}

func init() {
	core.Register("sand", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c), nil
	})
}
