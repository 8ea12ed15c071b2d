package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"mad-sand/internal/app"
	"mad-sand/internal/sims/sand"
	"mad-sand/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	tps := flag.Int("tps", 62, "simulation ticks per second")
	seed := flag.Int64("seed", 42, "random seed")
	configPath := flag.String("config", "", "YAML config file")
	logPath := flag.String("log", "", "write logs to this file (the terminal is taken by the UI)")
	var overrides app.KVList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	params := map[string]string{}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			params["seed"] = strconv.FormatInt(*seed, 10)
		}
	})
	if *configPath != "" {
		params["config"] = *configPath
	}
	maps.Copy(params, overrides.Map())

	if err := run(*tps, *logPath, params); err != nil {
		fmt.Fprintf(os.Stderr, "sand-term: %v\n", err)
		os.Exit(1)
	}
}

func run(tps int, logPath string, params map[string]string) error {
	logOut, err := openLog(logPath)
	if err != nil {
		return err
	}
	defer logOut.Close()
	app.SetupLogger(logOut, false)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	cfg, err := sand.FromMap(params)
	if err != nil {
		return err
	}
	cfg.Width, cfg.Height = term.GridSize(screen.Size())
	cfg.Scale = 1

	sim := sand.New(cfg)
	slog.Info("starting terminal front-end", "w", cfg.Width, "h", cfg.Height, "tps", tps, "seed", cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = term.New(screen, sim, tps).Run(ctx)
	slog.Info("stopped", "ticks", sim.World().Ticks(), "particles", sim.World().Count())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
