package sand

import "mad-sand/internal/core"

// Parameters exposes the current tunables for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	cfg := s.cfg
	st := s.world.Stats()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.world.Width()),
				core.IntParam("h", "Height", s.world.Height()),
				core.IntParam("scale", "Scale", s.world.Scale()),
				core.Int64Param("seed", "Seed", cfg.Seed),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				core.StringParam("material", "Material", s.selected.String()),
				core.IntParam("brush_radius", "Brush radius", s.radius),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				core.FloatParam("gravity", "Gravity", float64(s.world.Gravity())),
			},
		},
		{
			Name: "Spawn",
			Params: []core.Parameter{
				core.IntParam("sand_chance", "Sand 1-in", cfg.Spawn.Sand),
				core.IntParam("water_chance", "Water 1-in", cfg.Spawn.Water),
				core.IntParam("stone_chance", "Stone 1-in", cfg.Spawn.Stone),
			},
		},
		{
			Name: "Tick",
			Params: []core.Parameter{
				core.IntParam("queued", "Queued", st.Queued),
				core.IntParam("committed", "Committed", st.Committed),
				core.IntParam("particles", "Particles", s.world.Count()),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "brush_radius", Label: "Brush radius", Type: core.ParamTypeInt, Step: 1,
			Min: float64(s.cfg.Brush.Min), Max: float64(s.cfg.Brush.Max), HasMin: true, HasMax: true},
		{Key: "gravity", Label: "Gravity", Type: core.ParamTypeFloat, Step: 0.25,
			Min: 0, Max: 4, HasMin: true, HasMax: true},
		{Key: "sand_chance", Label: "Sand 1-in", Type: core.ParamTypeInt, Step: 1,
			Min: 1, Max: 100, HasMin: true, HasMax: true},
		{Key: "water_chance", Label: "Water 1-in", Type: core.ParamTypeInt, Step: 1,
			Min: 1, Max: 100, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer parameter. It reports false for unknown
// keys.
func (s *Sim) SetIntParameter(key string, value int) bool {
	switch key {
	case "brush_radius":
		s.SetRadius(value)
	case "sand_chance":
		s.cfg.Spawn.Sand = max(value, 1)
	case "water_chance":
		s.cfg.Spawn.Water = max(value, 1)
	case "stone_chance":
		s.cfg.Spawn.Stone = max(value, 1)
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a floating point parameter. It reports false for
// unknown keys.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "gravity":
		if value < 0 {
			value = 0
		}
		s.cfg.Gravity = value
		s.world.SetGravity(float32(value))
	default:
		return false
	}
	return true
}
