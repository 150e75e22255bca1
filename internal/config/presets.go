package config

import "sort"

// Presets are ready-made configurations selectable by name.
var Presets = map[string]func() *Config{
	"original": DefaultConfig,
	"arena": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "arena"
		cfg.Arena.Shape = ShapeCircle
		cfg.Spawn.Origin = Vec{X: 1100, Y: 540}
		cfg.Spawn.Jitter = 60
		return cfg
	},
	"vortex": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "vortex"
		cfg.CenterGravity = true
		cfg.CenterStrength = 0.15
		cfg.Arena.Shape = ShapeCircle
		cfg.Arena.Radius = 400
		cfg.Spawn.Origin = Vec{X: 960, Y: 300}
		cfg.Spawn.Jitter = 100
		return cfg
	},
	"rain": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "rain"
		cfg.Spawn.Rate = 3
		cfg.Spawn.MinRadius = 4
		cfg.Spawn.MaxRadius = 8
		cfg.Spawn.MaxBodies = 900
		cfg.Spawn.Origin = Vec{X: DefaultWidth / 2, Y: 40}
		cfg.Spawn.Jitter = 900
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
