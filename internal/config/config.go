package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/NotAF0e/Gravitonic/internal/physics"
)

const (
	DefaultSubSteps  = 8
	DefaultDt        = 1.0 / 60.0 / DefaultSubSteps
	DefaultFrames    = 600
	DefaultWidth     = 1920.0
	DefaultHeight    = 1080.0
	DefaultArenaR    = 300.0
	DefaultStrength  = 0.07
	DefaultMinRadius = 5.0
	DefaultMaxRadius = 25.0
)

const (
	ShapeRect   = "rect"
	ShapeCircle = "circle"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name           string      `yaml:"name,omitempty"`
	Dt             float64     `yaml:"dt"`
	SubSteps       int         `yaml:"sub_steps"`
	Frames         int         `yaml:"frames"`
	Seed           int64       `yaml:"seed"`
	Gravity        Vec         `yaml:"gravity"`
	CenterGravity  bool        `yaml:"center_gravity"`
	CenterStrength float64     `yaml:"center_strength"`
	Arena          ArenaConfig `yaml:"arena"`
	Spawn          SpawnConfig `yaml:"spawn"`
	RecordEvery    int         `yaml:"record_every"`
	Scenario       string      `yaml:"scenario,omitempty"`
}

// Vec is the YAML form of a 2D point.
type Vec struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func (v Vec) R2() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

type ArenaConfig struct {
	Shape  string  `yaml:"shape" json:"shape"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Center Vec     `yaml:"center" json:"center"`
	Radius float64 `yaml:"radius" json:"radius"`
}

// Boundary builds the physics boundary for the arena.
func (a ArenaConfig) Boundary() physics.Boundary {
	if a.Shape == ShapeCircle {
		return physics.Circle{Center: a.Center.R2(), Radius: a.Radius}
	}
	return physics.Rect{Width: a.Width, Height: a.Height}
}

type SpawnConfig struct {
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	// Rate is the number of bodies emitted per frame by headless runs.
	Rate int `yaml:"rate"`
	// MaxBodies caps spawning; 0 leaves the store unbounded.
	MaxBodies int `yaml:"max_bodies"`
	// Origin is where headless runs emit bodies.
	Origin Vec `yaml:"origin"`
	// Jitter spreads emitted positions uniformly around Origin.
	Jitter float64 `yaml:"jitter"`
}

// DefaultConfig is the "original" preset: a 1920x1080 window, eight
// sub-steps per 60 Hz frame, earth-like gravity and the screen as boundary.
func DefaultConfig() *Config {
	return &Config{
		Name:           "original",
		Dt:             DefaultDt,
		SubSteps:       DefaultSubSteps,
		Frames:         DefaultFrames,
		Gravity:        Vec{X: physics.EarthGravity.X, Y: physics.EarthGravity.Y},
		CenterStrength: DefaultStrength,
		Arena: ArenaConfig{
			Shape:  ShapeRect,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Center: Vec{X: DefaultWidth / 2, Y: DefaultHeight / 2},
			Radius: DefaultArenaR,
		},
		Spawn: SpawnConfig{
			MinRadius: DefaultMinRadius,
			MaxRadius: DefaultMaxRadius,
			Rate:      1,
			Origin:    Vec{X: DefaultWidth / 2, Y: DefaultHeight / 4},
			Jitter:    200,
		},
		RecordEvery: 10,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the solver and spawner depend on.
func (c *Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	case c.SubSteps <= 0:
		return fmt.Errorf("%w: sub_steps must be positive, got %d", ErrInvalidConfig, c.SubSteps)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalidConfig, c.Frames)
	case c.Spawn.MinRadius <= 0 || c.Spawn.MaxRadius < c.Spawn.MinRadius:
		return fmt.Errorf("%w: spawn radius range [%f, %f)", ErrInvalidConfig, c.Spawn.MinRadius, c.Spawn.MaxRadius)
	case c.Spawn.Rate < 0 || c.Spawn.MaxBodies < 0:
		return fmt.Errorf("%w: spawn rate and max_bodies must not be negative", ErrInvalidConfig)
	}
	switch c.Arena.Shape {
	case ShapeRect:
		if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
			return fmt.Errorf("%w: rect arena needs positive width and height", ErrInvalidConfig)
		}
	case ShapeCircle:
		if c.Arena.Radius <= 0 {
			return fmt.Errorf("%w: circle arena needs a positive radius", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown arena shape %q", ErrInvalidConfig, c.Arena.Shape)
	}
	return nil
}

func (c *Config) Boundary() physics.Boundary {
	return c.Arena.Boundary()
}

// Settings converts the configuration into what the solver reads per frame.
// Centre gravity pulls toward the arena centre.
func (c *Config) Settings() physics.Settings {
	return physics.Settings{
		Gravity:       c.Gravity.R2(),
		CenterGravity: c.CenterGravity,
		Center:        c.Arena.Center.R2(),
		Strength:      c.CenterStrength,
		Bounds:        c.Boundary(),
	}
}

// Extent returns the world-space size of the area the renderer must show.
func (c *Config) Extent() (width, height float64) {
	if c.Arena.Shape == ShapeCircle && (c.Arena.Width <= 0 || c.Arena.Height <= 0) {
		return c.Arena.Center.X + c.Arena.Radius, c.Arena.Center.Y + c.Arena.Radius
	}
	return c.Arena.Width, c.Arena.Height
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
