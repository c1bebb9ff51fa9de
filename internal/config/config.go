// Package config handles fractal configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/fractals/internal/fractal"
	"github.com/Faultbox/fractals/internal/scene"
)

// Config holds all settings.
type Config struct {
	Fractal    FractalConfig    `yaml:"fractal" toml:"fractal" envPrefix:"FRACTAL_"`
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation" envPrefix:"FRACTAL_SIM_"`
	Graphics   GraphicsConfig   `yaml:"graphics" toml:"graphics" envPrefix:"FRACTAL_GFX_"`
	Audio      AudioConfig      `yaml:"audio" toml:"audio" envPrefix:"FRACTAL_AUDIO_"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging" envPrefix:"FRACTAL_LOG_"`
}

// FractalConfig holds the tree shape parameters.
type FractalConfig struct {
	Meshes           []string `yaml:"meshes" toml:"meshes" env:"MESHES"`
	MaxDepth         int      `yaml:"max_depth" toml:"max_depth" env:"MAX_DEPTH"`
	ChildScale       float32  `yaml:"child_scale" toml:"child_scale" env:"CHILD_SCALE"`
	SpawnProbability float32  `yaml:"spawn_probability" toml:"spawn_probability" env:"SPAWN_PROBABILITY"`
	MaxRotationSpeed float32  `yaml:"max_rotation_speed" toml:"max_rotation_speed" env:"MAX_ROTATION_SPEED"` // degrees per second
	MaxTwist         float32  `yaml:"max_twist" toml:"max_twist" env:"MAX_TWIST"`                            // degrees
	SpawnDelay       float64  `yaml:"spawn_delay" toml:"spawn_delay" env:"SPAWN_DELAY"`                      // seconds
}

// SimulationConfig holds timeline settings.
type SimulationConfig struct {
	Seed        uint64  `yaml:"seed" toml:"seed" env:"SEED"` // 0 picks a seed from the clock
	TickRate    int     `yaml:"tick_rate" toml:"tick_rate" env:"TICK_RATE"`
	Duration    float64 `yaml:"duration" toml:"duration" env:"DURATION"` // seconds, headless runs
	MaxEntities int     `yaml:"max_entities" toml:"max_entities" env:"MAX_ENTITIES"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int     `yaml:"width" toml:"width" env:"WIDTH"`
	Height        int     `yaml:"height" toml:"height" env:"HEIGHT"`
	Fullscreen    bool    `yaml:"fullscreen" toml:"fullscreen" env:"FULLSCREEN"`
	VSync         bool    `yaml:"vsync" toml:"vsync" env:"VSYNC"`
	FOV           float32 `yaml:"fov" toml:"fov" env:"FOV"` // degrees
	ScreenshotDir string  `yaml:"screenshot_dir" toml:"screenshot_dir" env:"SCREENSHOT_DIR"`
}

// AudioConfig holds the growth chime settings for the viewer.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Volume  float64 `yaml:"volume" toml:"volume" env:"VOLUME"` // 0.0 to 1.0
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level" env:"LEVEL"`
	LogFile string `yaml:"log_file" toml:"log_file" env:"FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Fractal: FractalConfig{
			Meshes:           []string{string(scene.Cube), string(scene.Octahedron)},
			MaxDepth:         4,
			ChildScale:       0.5,
			SpawnProbability: 0.7,
			MaxRotationSpeed: 60,
			MaxTwist:         20,
			SpawnDelay:       1,
		},
		Simulation: SimulationConfig{
			Seed:        0,
			TickRate:    60,
			Duration:    30,
			MaxEntities: 0,
		},
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			FOV:           60,
			ScreenshotDir: "screenshots",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Tree converts the fractal section into a generator configuration using the
// built-in primitives and the default material.
func (c *Config) Tree() (fractal.Config, error) {
	meshes, err := scene.Meshes(c.Fractal.Meshes)
	if err != nil {
		return fractal.Config{}, fmt.Errorf("fractal meshes: %w", err)
	}
	cfg := fractal.Config{
		Meshes:           meshes,
		Material:         scene.DefaultMaterial(),
		MaxDepth:         c.Fractal.MaxDepth,
		ChildScale:       c.Fractal.ChildScale,
		SpawnProbability: c.Fractal.SpawnProbability,
		MaxRotationSpeed: c.Fractal.MaxRotationSpeed,
		MaxTwist:         c.Fractal.MaxTwist,
		SpawnDelay:       time.Duration(c.Fractal.SpawnDelay * float64(time.Second)),
	}
	if err := cfg.Validate(); err != nil {
		return fractal.Config{}, err
	}
	return cfg, nil
}
