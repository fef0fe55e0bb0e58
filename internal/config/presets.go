package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/billiards/internal/dynamo"
)

var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"power": func(c *Config) {
		c.PushForce = 60
	},
	"frictionless": func(c *Config) {
		c.Friction = 1.0
	},
	"crowded": func(c *Config) {
		c.BallCount = 40
		c.MinRadius = 8
		c.MaxRadius = 16
	},
	"single": func(c *Config) {
		c.BallCount = 1
		c.MinRadius = 20
		c.MaxRadius = 20
		c.Friction = 1.0
	},
}

// GetPreset returns the default configuration modified by the named preset.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
