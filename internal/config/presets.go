package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"dense": with(func(c *Config) {
		c.Name = "dense"
		c.Entity.Radius, c.Entity.Count = 12, 300
		c.Spawn = SpawnConfig{X: 500, Y: 200, Width: 600, Height: 400}
	}),
	"sparse": with(func(c *Config) {
		c.Name = "sparse"
		c.Entity.Radius, c.Entity.Count = 15, 25
	}),
	"zero_g": with(func(c *Config) {
		c.Name = "zero_g"
		c.Gravity = Vec{}
		c.Duration = 5
	}),
	"sideways": with(func(c *Config) {
		c.Name = "sideways"
		c.Gravity = Vec{X: 10, Y: 0}
	}),
	"heavy": with(func(c *Config) {
		c.Name = "heavy"
		c.Gravity = Vec{X: 0, Y: 40}
		c.Entity.Color = "#ffaa00"
	}),
}

func with(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
