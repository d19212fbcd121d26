package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

const (
	DefaultDt             = 0.016
	DefaultDuration       = 10.0
	DefaultEntityCount    = 100
	DefaultEntityRadius   = 25.0
	DefaultBoundaryRadius = 400.0
	DefaultBoundaryOffset = 25.0
	DefaultGravityY       = 10.0
	DefaultWidth          = 1600
	DefaultHeight         = 900
	DefaultFPS            = 60
)

type Config struct {
	Name       string         `yaml:"name"`
	Seed       int64          `yaml:"seed"`
	Dt         float64        `yaml:"dt"`
	Duration   float64        `yaml:"duration"`
	Background string         `yaml:"background"`
	Gravity    Vec            `yaml:"gravity"`
	Boundary   BoundaryConfig `yaml:"boundary"`
	Spawn      SpawnConfig    `yaml:"spawn"`
	Entity     EntityConfig   `yaml:"entity"`
	Window     WindowConfig   `yaml:"window"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) Vec2() dynamo.Vec2 { return dynamo.V(v.X, v.Y) }

type BoundaryConfig struct {
	Center Vec     `yaml:"center"`
	Radius float64 `yaml:"radius"`
	Offset float64 `yaml:"offset"`
	Color  string  `yaml:"color"`
}

// SpawnConfig is the rectangle new entities are scattered over.
type SpawnConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type EntityConfig struct {
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
	Count  int     `yaml:"count"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	FPS        int    `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "default",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Background: "#000000",
		Gravity:    Vec{X: 0, Y: DefaultGravityY},
		Boundary: BoundaryConfig{
			Center: Vec{X: 800, Y: 450},
			Radius: DefaultBoundaryRadius,
			Offset: DefaultBoundaryOffset,
			Color:  "#828282",
		},
		Spawn: SpawnConfig{X: 600, Y: 300, Width: 200, Height: 200},
		Entity: EntityConfig{
			Radius: DefaultEntityRadius,
			Color:  "#ffffff",
			Count:  DefaultEntityCount,
		},
		Window: WindowConfig{
			Title:      "Balls",
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Fullscreen: true,
			FPS:        DefaultFPS,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, which is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the solver cannot be built from.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f: %w", c.Dt, dynamo.ErrParameterBounds)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f: %w", c.Duration, dynamo.ErrParameterBounds)
	}
	if c.Entity.Radius <= 0 {
		return fmt.Errorf("entity radius must be positive, got %f: %w", c.Entity.Radius, dynamo.ErrParameterBounds)
	}
	if c.Entity.Count < 0 {
		return fmt.Errorf("entity count must not be negative, got %d: %w", c.Entity.Count, dynamo.ErrParameterBounds)
	}
	if c.Spawn.Width < 0 || c.Spawn.Height < 0 {
		return fmt.Errorf("spawn area %fx%f has a negative side: %w", c.Spawn.Width, c.Spawn.Height, dynamo.ErrParameterBounds)
	}
	if _, err := c.Constraint(); err != nil {
		return err
	}
	for _, s := range []string{c.Background, c.Entity.Color} {
		if _, err := dynamo.ParseHex(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Constraint() (physics.Constraint, error) {
	color, err := dynamo.ParseHex(c.Boundary.Color)
	if err != nil {
		return physics.Constraint{}, err
	}
	return physics.NewConstraint(c.Boundary.Center.Vec2(), c.Boundary.Radius, c.Boundary.Offset, color)
}

func (c *Config) SpawnConfig() physics.SpawnConfig {
	color, err := dynamo.ParseHex(c.Entity.Color)
	if err != nil {
		color = dynamo.White
	}
	return physics.SpawnConfig{
		Min:    dynamo.V(c.Spawn.X, c.Spawn.Y),
		Size:   dynamo.V(c.Spawn.Width, c.Spawn.Height),
		Radius: c.Entity.Radius,
		Color:  color,
		Count:  c.Entity.Count,
	}
}

func (c *Config) BackgroundColor() dynamo.RGBA {
	color, err := dynamo.ParseHex(c.Background)
	if err != nil {
		return dynamo.Black
	}
	return color
}

// World validates the configuration and builds the solver inputs from it.
// The population is spawned from Seed.
func (c *Config) World() (physics.Population, physics.Constraint, *physics.Resolver, error) {
	if err := c.Validate(); err != nil {
		return nil, physics.Constraint{}, nil, err
	}
	boundary, err := c.Constraint()
	if err != nil {
		return nil, physics.Constraint{}, nil, err
	}
	pop := physics.Spawn(c.SpawnConfig(), rand.New(rand.NewSource(c.Seed)))
	return pop, boundary, physics.NewResolver(c.Gravity.Vec2()), nil
}

// ParamNames lists the scalar settings SetParam understands.
var ParamNames = []string{"dt", "duration", "seed", "entities", "radius", "gravity_x", "gravity_y", "boundary_radius", "boundary_offset"}

// SetParam sets one scalar setting by name, so sweeps and scenarios can
// address configuration without knowing its layout.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "dt":
		c.Dt = v
	case "duration":
		c.Duration = v
	case "seed":
		c.Seed = int64(v)
	case "entities":
		c.Entity.Count = int(v)
	case "radius":
		c.Entity.Radius = v
	case "gravity_x":
		c.Gravity.X = v
	case "gravity_y":
		c.Gravity.Y = v
	case "boundary_radius":
		c.Boundary.Radius = v
	case "boundary_offset":
		c.Boundary.Offset = v
	default:
		return fmt.Errorf("unknown parameter %q (available: %v): %w", name, ParamNames, dynamo.ErrParameterBounds)
	}
	return nil
}
