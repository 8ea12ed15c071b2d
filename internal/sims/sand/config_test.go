package sand

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromMapOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"w":            "120",
		"h":            "80",
		"seed":         "9",
		"gravity":      "0.5",
		"material":     "water",
		"brush_radius": "500",
		"sand_chance":  "4",
		"scale":        "nope",
		"bogus":        "1",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Width != 120 || cfg.Height != 80 || cfg.Seed != 9 {
		t.Fatalf("geometry not applied: %+v", cfg)
	}
	if cfg.Gravity != 0.5 || cfg.Material != "Water" || cfg.Spawn.Sand != 4 {
		t.Fatalf("physics/brush not applied: %+v", cfg)
	}
	if cfg.Brush.Radius != cfg.Brush.Max {
		t.Fatalf("radius should clamp to max %d, got %d", cfg.Brush.Max, cfg.Brush.Radius)
	}
	if cfg.Scale != DefaultConfig().Scale {
		t.Fatalf("unparsable scale should keep default, got %d", cfg.Scale)
	}
}

func TestFromMapRejectsEmptyMaterial(t *testing.T) {
	cfg, err := FromMap(map[string]string{"material": "empty"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Material != "Sand" {
		t.Fatalf("Empty is not paintable, got %q", cfg.Material)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sand.yaml")
	data := []byte("width: 200\nbrush:\n  radius: 4\nspawn_chance:\n  water: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := DefaultConfig()
	if cfg.Width != 200 || cfg.Height != def.Height {
		t.Fatalf("expected width override only, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Brush.Radius != 4 || cfg.Brush.Max != def.Brush.Max {
		t.Fatalf("brush merge wrong: %+v", cfg.Brush)
	}
	if cfg.ChanceFor(Water) != 3 || cfg.ChanceFor(Sand) != def.Spawn.Sand {
		t.Fatalf("spawn merge wrong: %+v", cfg.Spawn)
	}

	out := filepath.Join(dir, "out.yaml")
	if err := cfg.WriteYAML(out); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	again, err := FromMap(map[string]string{"config": out, "h": "50"})
	if err != nil {
		t.Fatalf("FromMap with config: %v", err)
	}
	if again.Width != 200 || again.Height != 50 || again.Brush.Radius != 4 {
		t.Fatalf("config file not honored: %+v", again)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("width: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := FromMap(map[string]string{"config": bad}); err == nil {
		t.Fatal("FromMap should surface config file errors")
	}
}
