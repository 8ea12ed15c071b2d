package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"mad-sand/internal/app"
	"mad-sand/internal/bench"
	"mad-sand/internal/sims/sand"
	"mad-sand/internal/telemetry"
)

func main() {
	width := flag.Int("w", 320, "grid width (the config file's width when -config is given)")
	height := flag.Int("h", 180, "grid height (the config file's height when -config is given)")
	ticks := flag.Int("ticks", 600, "ticks to simulate per run")
	flag.Int64("seed", 42, "seed of the first run")
	runs := flag.Int("runs", 1, "number of runs, seeded seed, seed+1, ...")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel runs")
	out := flag.String("out", "", "directory for per-tick CSV telemetry and the resolved config")
	configPath := flag.String("config", "", "YAML config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	var overrides app.KVList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	app.SetupLogger(os.Stderr, *verbose)

	params := map[string]string{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w", "h", "seed":
			params[f.Name] = f.Value.String()
		}
	})
	if *configPath != "" {
		params["config"] = *configPath
	}
	maps.Copy(params, overrides.Map())

	cfg, err := sand.FromMap(params)
	if err != nil {
		slog.Error("loading config", "err", err)
		os.Exit(1)
	}
	if *configPath == "" {
		if _, ok := params["w"]; !ok {
			cfg.Width = *width
		}
		if _, ok := params["h"]; !ok {
			cfg.Height = *height
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scenarios := make([]bench.Scenario, max(*runs, 1))
	for i := range scenarios {
		c := cfg
		c.Seed = cfg.Seed + int64(i)
		scenarios[i] = bench.Scenario{
			Name:   fmt.Sprintf("seed-%d", c.Seed),
			Config: c,
			Ticks:  *ticks,
			Pours:  bench.DefaultPours(c, *ticks),
		}
	}
	slog.Info("benchmarking", "runs", len(scenarios), "w", cfg.Width, "h", cfg.Height, "ticks", *ticks, "workers", *workers)

	if err := execute(ctx, scenarios, *workers, *out); err != nil {
		slog.Error("benchmark failed", "err", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, scenarios []bench.Scenario, workers int, out string) error {
	if out == "" {
		results, err := bench.Sweep(ctx, scenarios, workers)
		if err != nil {
			return err
		}
		for _, res := range results {
			report(res)
		}
		return nil
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := scenarios[0].Config.WriteYAML(filepath.Join(out, "config.yaml")); err != nil {
		return err
	}
	for _, sc := range scenarios {
		rec, err := telemetry.NewRecorder(filepath.Join(out, sc.Name+".csv"))
		if err != nil {
			return err
		}
		res, err := bench.Run(ctx, sc, rec)
		if cerr := rec.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		report(res)
	}
	return nil
}

func report(res bench.Result) {
	slog.Info("run complete", "name", res.Name, "elapsed", res.Elapsed, "summary", res.Summary)
}
