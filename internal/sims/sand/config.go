package sand

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// BrushConfig controls the paint/erase disc.
type BrushConfig struct {
	Radius int `yaml:"radius"`
	Step   int `yaml:"step"`
	Min    int `yaml:"min"`
	Max    int `yaml:"max"`
}

// SpawnConfig holds the reciprocal paint probability per material.
type SpawnConfig struct {
	Sand  int `yaml:"sand"`
	Water int `yaml:"water"`
	Stone int `yaml:"stone"`
}

// Config controls the sand simulation.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Scale  int   `yaml:"scale"`
	Seed   int64 `yaml:"seed"`

	Gravity  float64     `yaml:"gravity"`
	Material string      `yaml:"material"`
	Brush    BrushConfig `yaml:"brush"`
	Spawn    SpawnConfig `yaml:"spawn_chance"`
}

// DefaultConfig returns the standard configuration: a 1280x720 window at
// scale 2.
func DefaultConfig() Config {
	return Config{
		Width:    640,
		Height:   360,
		Scale:    2,
		Seed:     42,
		Gravity:  1,
		Material: Sand.String(),
		Brush: BrushConfig{
			Radius: 10,
			Step:   10,
			Min:    1,
			Max:    64,
		},
		Spawn: SpawnConfig{
			Sand:  SpawnChance(Sand),
			Water: SpawnChance(Water),
			Stone: SpawnChance(Stone),
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// WriteYAML saves the configuration to path.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). The "config" key names a YAML file loaded before the other keys
// are applied; it is the only source of errors.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if path, ok := cfg["config"]; ok && path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return c, err
		}
		c = loaded
	}
	for key, value := range cfg {
		if key == "config" {
			continue
		}
		c.Apply(key, value)
	}
	c.normalize()
	return c, nil
}

// Apply sets a single key. Unknown keys and unparsable values are ignored
// and reported as false.
func (c *Config) Apply(key, value string) bool {
	switch key {
	case "w", "width":
		return setPositiveInt(&c.Width, value)
	case "h", "height":
		return setPositiveInt(&c.Height, value)
	case "scale":
		return setPositiveInt(&c.Scale, value)
	case "seed":
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			c.Seed = parsed
			return true
		}
	case "gravity":
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed >= 0 {
			c.Gravity = parsed
			return true
		}
	case "material":
		if m, err := ParseMaterial(value); err == nil && m != Empty {
			c.Material = m.String()
			return true
		}
	case "brush_radius":
		return setPositiveInt(&c.Brush.Radius, value)
	case "brush_step":
		return setPositiveInt(&c.Brush.Step, value)
	case "brush_min":
		return setPositiveInt(&c.Brush.Min, value)
	case "brush_max":
		return setPositiveInt(&c.Brush.Max, value)
	case "sand_chance":
		return setPositiveInt(&c.Spawn.Sand, value)
	case "water_chance":
		return setPositiveInt(&c.Spawn.Water, value)
	case "stone_chance":
		return setPositiveInt(&c.Spawn.Stone, value)
	}
	return false
}

// ChanceFor returns the configured reciprocal spawn probability for m.
func (c Config) ChanceFor(m Material) int {
	switch m {
	case Sand:
		return c.Spawn.Sand
	case Water:
		return c.Spawn.Water
	case Stone:
		return c.Spawn.Stone
	}
	return SpawnChance(m)
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Gravity < 0 {
		c.Gravity = 0
	}
	if m, err := ParseMaterial(c.Material); err != nil || m == Empty {
		c.Material = def.Material
	}
	if c.Brush.Min <= 0 {
		c.Brush.Min = 1
	}
	if c.Brush.Max < c.Brush.Min {
		c.Brush.Max = c.Brush.Min
	}
	c.Brush.Radius = clampInt(c.Brush.Radius, c.Brush.Min, c.Brush.Max)
	if c.Brush.Step <= 0 {
		c.Brush.Step = 1
	}
	for _, chance := range []*int{&c.Spawn.Sand, &c.Spawn.Water, &c.Spawn.Stone} {
		if *chance <= 0 {
			*chance = 1
		}
	}
}

func setPositiveInt(dst *int, value string) bool {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return false
	}
	*dst = parsed
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
