package dynamo

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2          { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2          { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2     { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64       { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64             { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64      { return v.Sub(o).Len() }
func (v Vec2) IsValid() bool            { return isFinite(v.X) && isFinite(v.Y) }
func (v Vec2) String() string           { return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y) }
func (v Vec2) Angle(to Vec2) float64    { return math.Atan2(to.Y-v.Y, to.X-v.X) }
func FromAngle(angle, mag float64) Vec2 { return Vec2{math.Cos(angle) * mag, math.Sin(angle) * mag} }

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Body is a circular rigid body. Radius is fixed at creation and doubles as
// the body's mass in collisions.
type Body struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  string
}

// Contains reports whether p lies strictly inside the body's disk.
func (b *Body) Contains(p Vec2) bool {
	return b.Pos.Dist(p) < b.Radius
}

func (b *Body) IsValid() bool {
	return b.Pos.IsValid() && b.Vel.IsValid()
}

func (b *Body) Snapshot() Snapshot {
	return Snapshot{X: b.Pos.X, Y: b.Pos.Y, Radius: b.Radius, Color: b.Color}
}

// Snapshot is what a renderer reads once per frame.
type Snapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

type Integrator interface {
	Step(bodies []Body)
}

type Resolver interface {
	Resolve(bodies []Body)
}

type Metric interface {
	Name() string
	Observe(tick int, bodies []Body)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tick int, bodies []Body)
}

type Config struct {
	Ticks         int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:         600,
		ValidateState: true,
	}
}

type Result struct {
	Ticks   int
	Metrics map[string]float64
	Final   []Snapshot
	Errors  []error
}
