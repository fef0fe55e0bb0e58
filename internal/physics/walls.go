package physics

import "github.com/san-kum/billiards/internal/dynamo"

// Walls reflects bodies off the edges of a Width x Height surface.
//
// A body whose disk crosses an edge while moving toward it has that axis of
// velocity negated and scaled by Restitution. Position is not clamped: the
// disk may stay partly outside for a frame until its own motion carries it
// back. A body already moving away from the edge is left alone, so it is not
// flipped again on the next tick while still overlapping the edge.
type Walls struct {
	Width       float64
	Height      float64
	Restitution float64
}

func NewWalls(width, height, restitution float64) *Walls {
	return &Walls{Width: width, Height: height, Restitution: restitution}
}

func (w *Walls) Resolve(bodies []dynamo.Body) {
	for i := range bodies {
		b := &bodies[i]
		if (b.Pos.X-b.Radius < 0 && b.Vel.X < 0) || (b.Pos.X+b.Radius > w.Width && b.Vel.X > 0) {
			b.Vel.X *= -w.Restitution
		}
		if (b.Pos.Y-b.Radius < 0 && b.Vel.Y < 0) || (b.Pos.Y+b.Radius > w.Height && b.Vel.Y > 0) {
			b.Vel.Y *= -w.Restitution
		}
	}
}

// Penetration returns how far the body's disk extends past the nearest
// edge, or 0 when it is fully inside.
func (w *Walls) Penetration(b *dynamo.Body) float64 {
	p := 0.0
	p = max(p, b.Radius-b.Pos.X)
	p = max(p, b.Pos.X+b.Radius-w.Width)
	p = max(p, b.Radius-b.Pos.Y)
	p = max(p, b.Pos.Y+b.Radius-w.Height)
	return p
}
