package plasma

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/plasma/anim"
	"github.com/gogpu/plasma/scene"
	"github.com/gogpu/plasma/uniforms"
)

// DefaultInFlight is the default number of ring slots.
const DefaultInFlight = 3

// Config holds everything a Renderer is built from. It is constructed once
// and owned by the Renderer; nothing in it is shared between renderers.
type Config struct {
	// InFlight is the ring capacity, the maximum number of frames the CPU
	// may run ahead of the GPU.
	InFlight int `yaml:"in_flight" toml:"in_flight"`

	// UniformAlignment pads uniform strides to a multiple of this value.
	// Zero or one packs them tightly. A GPU may raise it.
	UniformAlignment uint64 `yaml:"uniform_alignment" toml:"uniform_alignment"`

	Scene scene.Config `yaml:"scene" toml:"scene"`

	// Objects configures the two cubes, in draw order.
	Objects []ObjectConfig `yaml:"objects" toml:"objects"`
}

// ObjectConfig configures one cube's plasma.
type ObjectConfig struct {
	// Kind selects the plasma variant in the fragment shader.
	Kind   uint32      `yaml:"kind"   toml:"kind"`
	Plasma anim.Plasma `yaml:"plasma" toml:"plasma"`
}

// DefaultConfig returns the configuration of the plasma demo.
func DefaultConfig() Config {
	return Config{
		InFlight: DefaultInFlight,
		Scene:    scene.DefaultConfig(),
		Objects: []ObjectConfig{
			{Kind: uniforms.KindPrimary, Plasma: anim.DefaultPlasma()},
			{Kind: uniforms.KindSecondary, Plasma: anim.DefaultPlasma()},
		},
	}
}

// Validate reports the first problem in c.
func (c Config) Validate() error {
	if c.InFlight < 1 {
		return fmt.Errorf("%w: in_flight must be at least 1, got %d", ErrInvalidConfig, c.InFlight)
	}
	if a := c.UniformAlignment; a > 1 && a&(a-1) != 0 {
		return fmt.Errorf("%w: uniform_alignment %d is not a power of two", ErrInvalidConfig, a)
	}
	if err := c.Scene.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.Objects) != uniforms.ObjectCount {
		return fmt.Errorf("%w: need %d objects, got %d", ErrInvalidConfig, uniforms.ObjectCount, len(c.Objects))
	}
	for i, o := range c.Objects {
		if !o.Plasma.Time.Valid() {
			return fmt.Errorf("%w: object %d: invalid time block %+v", ErrInvalidConfig, i, o.Plasma.Time)
		}
		if !o.Plasma.Scale.Valid() {
			return fmt.Errorf("%w: object %d: invalid scale block %+v", ErrInvalidConfig, i, o.Plasma.Scale)
		}
	}
	return nil
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file over
// DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("plasma: read config: %w", err)
	}
	return ParseConfig(data, filepath.Ext(path))
}

// ParseConfig decodes data in the format named by ext (".yaml", ".yml" or
// ".toml") over DefaultConfig and validates the result.
func ParseConfig(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF and leaves the defaults.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("plasma: decode yaml config: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("plasma: decode toml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownConfigFormat, ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoadConfig is LoadConfig that panics on error.
func MustLoadConfig(path string) Config {
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
