package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/billiards/internal/dynamo"
)

const (
	DefaultWidth       = 700.0
	DefaultHeight      = 500.0
	DefaultBallCount   = 10
	DefaultMinRadius   = 10.0
	DefaultMaxRadius   = 30.0
	DefaultFriction    = 0.995
	DefaultRestitution = 0.9
	DefaultPushForce   = 6.0
	DefaultFPS         = 60
)

// DefaultColors is the ball palette.
var DefaultColors = []string{
	"#ff0000",
	"#ff7f00",
	"#ffff00",
	"#00ff00",
	"#0000ff",
	"#4b0082",
	"#8a2be2",
	"#ffffff",
	"#a9a9a9",
	"#000000",
}

type Config struct {
	Width       float64  `yaml:"width"`
	Height      float64  `yaml:"height"`
	BallCount   int      `yaml:"ball_count"`
	MinRadius   float64  `yaml:"min_radius"`
	MaxRadius   float64  `yaml:"max_radius"`
	Colors      []string `yaml:"colors"`
	Friction    float64  `yaml:"friction"`
	Restitution float64  `yaml:"restitution"`
	PushForce   float64  `yaml:"push_force"`
	Seed        int64    `yaml:"seed"`
	FPS         int      `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		BallCount:   DefaultBallCount,
		MinRadius:   DefaultMinRadius,
		MaxRadius:   DefaultMaxRadius,
		Colors:      append([]string(nil), DefaultColors...),
		Friction:    DefaultFriction,
		Restitution: DefaultRestitution,
		PushForce:   DefaultPushForce,
		FPS:         DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads the YAML file at path on top of cfg. Keys absent from the
// file keep their current values.
func Overlay(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Colors = append([]string(nil), c.Colors...)
	return &cp
}

// Validate checks the configuration once, before a table is built.
func (c *Config) Validate() error {
	switch {
	case !finite(c.Width, c.Height, c.MinRadius, c.MaxRadius, c.Friction, c.Restitution, c.PushForce):
		return bounds("parameters must be finite, got width=%g height=%g radius=%g..%g friction=%g restitution=%g push_force=%g",
			c.Width, c.Height, c.MinRadius, c.MaxRadius, c.Friction, c.Restitution, c.PushForce)
	case c.Width <= 0 || c.Height <= 0:
		return bounds("surface must be positive, got %gx%g", c.Width, c.Height)
	case c.BallCount < 0:
		return bounds("ball_count must be non-negative, got %d", c.BallCount)
	case c.MinRadius <= 0:
		return bounds("min_radius must be positive, got %g", c.MinRadius)
	case c.MinRadius > c.MaxRadius:
		return bounds("min_radius %g exceeds max_radius %g", c.MinRadius, c.MaxRadius)
	case 2*c.MaxRadius > c.Width || 2*c.MaxRadius > c.Height:
		return bounds("max_radius %g does not fit a %gx%g surface", c.MaxRadius, c.Width, c.Height)
	case len(c.Colors) == 0:
		return bounds("color palette is empty")
	case c.Friction < 0 || c.Friction > 1:
		return bounds("friction must be in [0, 1], got %g", c.Friction)
	case c.Restitution < 0 || c.Restitution > 1:
		return bounds("restitution must be in [0, 1], got %g", c.Restitution)
	case c.PushForce < 0:
		return bounds("push_force must be non-negative, got %g", c.PushForce)
	case c.FPS <= 0:
		return bounds("fps must be positive, got %d", c.FPS)
	}
	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func bounds(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{dynamo.ErrParameterBounds}, args...)...)
}
