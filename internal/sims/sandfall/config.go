package sandfall

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds the tunables the engine and the command surface read every frame.
type Params struct {
	GravityX float64 `yaml:"gravity_x"`
	GravityY float64 `yaml:"gravity_y"`
	TimeStep float64 `yaml:"time_step"`

	BrushRadius int `yaml:"brush_radius"`

	ExplosionMinRadius float64 `yaml:"explosion_min_radius"`
	ExplosionMaxRadius float64 `yaml:"explosion_max_radius"`
	ExplosionScorch    float64 `yaml:"explosion_scorch"`
}

// Config controls the world dimensions and its tunables.
type Config struct {
	Size      int   `yaml:"size"`
	ChunkSize int   `yaml:"chunk_size"`
	Seed      int64 `yaml:"seed"`

	Params Params `yaml:",inline"`
}

const defaultChunkSize = 16

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:      256,
		ChunkSize: defaultChunkSize,
		Seed:      1337,
		Params: Params{
			GravityX:           0,
			GravityY:           9.81,
			TimeStep:           1.0 / 60.0,
			BrushRadius:        6,
			ExplosionMinRadius: 8,
			ExplosionMaxRadius: 12,
			ExplosionScorch:    4,
		},
	}
}

// Normalize repairs values that cannot be used as given: a non-positive chunk
// size falls back to the default, the world size is rounded up to a whole
// number of chunks and the explosion band is kept ordered.
func (c Config) Normalize() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	if c.Size <= 0 {
		c.Size = c.ChunkSize
	}
	if rem := c.Size % c.ChunkSize; rem != 0 {
		c.Size += c.ChunkSize - rem
	}
	if c.Params.TimeStep <= 0 {
		c.Params.TimeStep = DefaultConfig().Params.TimeStep
	}
	if c.Params.BrushRadius < 0 {
		c.Params.BrushRadius = 0
	}
	if c.Params.ExplosionMinRadius < 0 {
		c.Params.ExplosionMinRadius = 0
	}
	if c.Params.ExplosionMaxRadius < c.Params.ExplosionMinRadius {
		c.Params.ExplosionMaxRadius = c.Params.ExplosionMinRadius
	}
	if c.Params.ExplosionScorch < 0 {
		c.Params.ExplosionScorch = 0
	}
	return c
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["chunk_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["gravity_x"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.GravityX = parsed
		}
	}
	if v, ok := cfg["gravity_y"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.GravityY = parsed
		}
	}
	if v, ok := cfg["time_step"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.TimeStep = parsed
		}
	}
	if v, ok := cfg["brush_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.BrushRadius = parsed
		}
	}
	if v, ok := cfg["explosion_min_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.ExplosionMinRadius = parsed
		}
	}
	if v, ok := cfg["explosion_max_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.ExplosionMaxRadius = parsed
		}
	}
	if v, ok := cfg["explosion_scorch"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.ExplosionScorch = parsed
		}
	}
	return c.Normalize()
}

// LoadConfig reads a YAML config file. Keys missing from the file keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("sandfall config: %w", err)
	}
	return c.Normalize(), nil
}
