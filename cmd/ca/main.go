//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"mad-sand/internal/app"
	"mad-sand/internal/core"
	_ "mad-sand/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	app.SetupLogger(os.Stderr, cfg.Verbose)

	factory, err := core.Lookup(cfg.Sim)
	if err != nil {
		slog.Error("selecting sim", "err", err)
		os.Exit(1)
	}
	sim, err := factory(cfg.SimParams())
	if err != nil {
		slog.Error("configuring sim", "sim", cfg.Sim, "err", err)
		os.Exit(1)
	}
	scale, seed := cfg.Effective(sim)
	sim.Reset(seed)

	game := app.New(sim, scale, cfg.TPS, seed)
	size := sim.Size()
	slog.Info("starting", "sim", sim.Name(), "w", size.W, "h", size.H, "scale", scale, "seed", seed, "tps", cfg.TPS)

	ebiten.SetWindowTitle("mad-sand: " + sim.Name())
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetWindowSize(game.WindowSize())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("game loop", "err", err)
		os.Exit(1)
	}
}
