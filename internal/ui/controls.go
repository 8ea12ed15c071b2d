package ui

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"mad-sand/internal/core"
)

// panelTitle builds the HUD heading for a sim.
func panelTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:] + " Controls"
}

// adjustedValue returns the value one step away from current in direction,
// clamped to the control's bounds. ok is false when the step would not
// change the value.
func adjustedValue(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	switch ctrl.Type {
	case core.ParamTypeInt:
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
	case core.ParamTypeFloat:
		if step <= 0 {
			step = 0.05
		}
	default:
		return current, false
	}
	target := current + float64(direction)*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	if ctrl.Type == core.ParamTypeInt {
		target = math.Round(target)
	}
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

// formatValue renders a parameter value for display, with float precision
// derived from the control step.
func formatValue(ctrl core.ParameterControl, value float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(value))
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// readouts lists the snapshot parameters that have no control, formatted as
// "Label: value" lines.
func readouts(snapshot core.ParameterSnapshot, controls []core.ParameterControl) []string {
	skip := make(map[string]bool, len(controls))
	for _, c := range controls {
		skip[c.Key] = true
	}
	var lines []string
	for _, g := range snapshot.Groups {
		for _, p := range g.Params {
			if skip[p.Key] {
				continue
			}
			lines = append(lines, p.Label+": "+strings.TrimSpace(p.Value))
		}
	}
	return lines
}

func formatFPS(fps float64) string {
	return strconv.FormatFloat(fps, 'f', 0, 64)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// brushCircle maps a brush in cell coordinates to a screen circle. The paint
// disc covers cell offsets [-r, r), so its pixel extent is centred on the
// top-left corner of the cursor cell.
func brushCircle(x, y, radius, scale int) (cx, cy, r float32) {
	s := float32(scale)
	return float32(x) * s, float32(y) * s, float32(radius) * s
}
