package app

import (
	"flag"
	"fmt"
	"strings"

	"mad-sand/internal/core"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends value after checking it has the key=value shape.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map. Later duplicates win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// Config represents the command-line parameters for the application.
type Config struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	ConfigPath string
	Set        KVList
	Verbose    bool

	fs *flag.FlagSet
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", Scale: 2, TPS: 62, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.fs = fs
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML config file")
	fs.Var(&c.Set, "set", "parameter override in key=value form (repeatable)")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "enable debug logging")
}

// SimParams merges the flag values into the map handed to a sim factory.
// Once bound, -scale and -seed are only passed when given on the command
// line so a -config file can supply them. Explicit -set pairs take
// precedence over the dedicated flags.
func (c *Config) SimParams() map[string]string {
	params := map[string]string{}
	if c.explicit("scale") {
		params["scale"] = fmt.Sprint(c.Scale)
	}
	if c.explicit("seed") {
		params["seed"] = fmt.Sprint(c.Seed)
	}
	if c.ConfigPath != "" {
		params["config"] = c.ConfigPath
	}
	for k, v := range c.Set.Map() {
		params[k] = v
	}
	return params
}

// explicit reports whether the named flag was set on the command line. An
// unbound Config treats every field as explicit.
func (c *Config) explicit(name string) bool {
	if c.fs == nil {
		return true
	}
	found := false
	c.fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

type scaler interface{ Scale() int }

type seeder interface{ Seed() int64 }

// Effective returns the display scale and reset seed the sim was built
// with, falling back to the flag values for sims that do not report them.
func (c *Config) Effective(sim core.Sim) (scale int, seed int64) {
	scale, seed = c.Scale, c.Seed
	if s, ok := sim.(scaler); ok {
		scale = s.Scale()
	}
	if s, ok := sim.(seeder); ok {
		seed = s.Seed()
	}
	return scale, seed
}
