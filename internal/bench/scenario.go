// Package bench runs scripted, headless sand scenarios and collects their
// telemetry.
package bench

import (
	"context"
	"fmt"
	"time"

	"mad-sand/internal/sims/sand"
	"mad-sand/internal/telemetry"
)

// Pour paints a material disc every tick while the tick count is in
// [From, Until).
type Pour struct {
	Material sand.Material
	X, Y     int
	Radius   int
	From     int
	Until    int
}

// Scenario is a configured world plus the pours applied to it.
type Scenario struct {
	Name   string
	Config sand.Config
	Ticks  int
	Pours  []Pour
}

// Result is the outcome of one scenario run.
type Result struct {
	Name    string
	Seed    int64
	Summary telemetry.Summary
	Elapsed time.Duration
	Records []telemetry.TickRecord
}

// DefaultPours pours sand and water from the top third of the world onto a
// stone shelf for the first half of the run.
func DefaultPours(cfg sand.Config, ticks int) []Pour {
	w, h := cfg.Width, cfg.Height
	r := max(min(w, h)/16, 2)
	return []Pour{
		{Material: sand.Stone, X: w / 2, Y: h * 2 / 3, Radius: r, From: 0, Until: 1},
		{Material: sand.Sand, X: w / 3, Y: h / 6, Radius: r, From: 0, Until: ticks / 2},
		{Material: sand.Water, X: w * 2 / 3, Y: h / 6, Radius: r, From: 0, Until: ticks / 2},
	}
}

// Run executes sc, streaming each tick to rec when it is non-nil. Run stops
// early with ctx's error if ctx is cancelled.
func Run(ctx context.Context, sc Scenario, rec *telemetry.Recorder) (Result, error) {
	cfg := sc.Config
	sim := sand.New(cfg)
	world := sim.World()
	res := Result{Name: sc.Name, Seed: sim.Config().Seed}
	res.Records = make([]telemetry.TickRecord, 0, sc.Ticks)

	start := time.Now()
	for tick := 0; tick < sc.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		for _, p := range sc.Pours {
			if tick >= p.From && tick < p.Until {
				world.Paint(p.X, p.Y, p.Radius, p.Material, sim.Config().ChanceFor(p.Material))
			}
		}
		t0 := time.Now()
		world.Tick()
		sample := telemetry.Sample(world, time.Since(t0))
		res.Records = append(res.Records, sample)
		if err := rec.Write(sample); err != nil {
			return res, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
	}
	res.Elapsed = time.Since(start)
	res.Summary = telemetry.Summarize(res.Records)
	return res, nil
}
