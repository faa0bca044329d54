package plasma

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/plasma/scene"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.InFlight != 3 {
		t.Errorf("InFlight = %d, want 3", cfg.InFlight)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero in flight", func(c *Config) { c.InFlight = 0 }},
		{"alignment not power of two", func(c *Config) { c.UniformAlignment = 48 }},
		{"one object", func(c *Config) { c.Objects = c.Objects[:1] }},
		{"bad scene", func(c *Config) { c.Scene.Near = 0 }},
		{"zero delta", func(c *Config) { c.Objects[1].Plasma.Time.Delta = 0 }},
		{"inverted scale", func(c *Config) { c.Objects[0].Plasma.Scale.Max = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "plasma.yaml", `
in_flight: 2
uniform_alignment: 256
scene:
  field_of_view: 50
  trigger: aspect
  eye: {x: 0, y: 0, z: -1}
objects:
  - kind: 2
    plasma:
      time: {value: 0, delta: 0.5, min: 0, max: 10, sign: 1}
      scale: {value: 1, delta: 1, min: 1, max: 8, sign: 1}
  - kind: 1
    plasma:
      time: {value: 5, delta: 0.5, min: 0, max: 10, sign: -1}
      scale: {value: 1, delta: 1, min: 1, max: 8, sign: 1}
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.InFlight != 2 || cfg.UniformAlignment != 256 {
		t.Errorf("InFlight/UniformAlignment = %d/%d", cfg.InFlight, cfg.UniformAlignment)
	}
	if cfg.Scene.FieldOfView != 50 || cfg.Scene.Trigger != scene.TriggerAspect {
		t.Errorf("scene = %+v", cfg.Scene)
	}
	if cfg.Scene.Eye.Z != -1 {
		t.Errorf("eye = %v", cfg.Scene.Eye)
	}
	// Unset fields keep their defaults.
	if cfg.Scene.Far != 100 || cfg.Scene.Center.Z != 1 {
		t.Errorf("defaults lost: far=%v center=%v", cfg.Scene.Far, cfg.Scene.Center)
	}
	if cfg.Objects[0].Kind != 2 || cfg.Objects[1].Plasma.Time.Sign != -1 {
		t.Errorf("objects = %+v", cfg.Objects)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeConfig(t, "plasma.toml", `
in_flight = 4

[scene]
rotation_delta = 1.5
trigger = "orientation"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.InFlight != 4 || cfg.Scene.RotationDelta != 1.5 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Scene.FieldOfView != 65 || len(cfg.Objects) != 2 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"unknown extension", "plasma.json", "{}", ErrUnknownConfigFormat},
		{"invalid value", "plasma.yaml", "in_flight: 0\n", ErrInvalidConfig},
		{"bad trigger", "plasma.yml", "scene:\n  trigger: sideways\n", scene.ErrInvalidTrigger},
		{"bad toml", "plasma.toml", "in_flight = [", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.content))
			if tt.want == nil {
				if err == nil {
					t.Error("LoadConfig() succeeded")
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadConfig() = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
	if _, err := ParseConfig([]byte("unknown_key: 1\n"), ".yml"); err == nil {
		t.Error("unknown YAML key accepted")
	}
}

func TestParseConfigEmptyYAML(t *testing.T) {
	cfg, err := ParseConfig(nil, ".yaml")
	if err != nil {
		t.Fatalf("ParseConfig(empty) = %v", err)
	}
	if cfg.InFlight != DefaultInFlight {
		t.Errorf("InFlight = %d", cfg.InFlight)
	}
}

func TestMustLoadConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLoadConfig did not panic")
		}
	}()
	MustLoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
}
