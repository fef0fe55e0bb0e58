package physics

import (
	"math"

	"github.com/san-kum/billiards/internal/dynamo"
)

// Pairwise resolves ball-ball contacts over every unordered pair.
type Pairwise struct {
	// Contacts counts the pairs resolved by the last Resolve call.
	Contacts int
}

func NewPairwise() *Pairwise {
	return &Pairwise{}
}

func (p *Pairwise) Resolve(bodies []dynamo.Body) {
	p.Contacts = 0
	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if collide(&bodies[i], &bodies[j]) {
				p.Contacts++
			}
		}
	}
}

// collide resolves a single overlapping pair and reports whether the pair
// was in contact.
func collide(a, b *dynamo.Body) bool {
	dx := b.Pos.X - a.Pos.X
	dy := b.Pos.Y - a.Pos.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	sumR := a.Radius + b.Radius
	if dist >= sumR {
		return false
	}

	// Coincident centers have no normal: skip the exchange and separate
	// along +x.
	if dist == 0 {
		overlap := sumR / 2
		a.Pos.X -= overlap
		b.Pos.X += overlap
		return true
	}

	angle := math.Atan2(dy, dx)
	sin, cos := math.Sincos(angle)

	// Rotate into the collision frame: n along the normal, t perpendicular.
	an := a.Vel.X*cos + a.Vel.Y*sin
	at := a.Vel.Y*cos - a.Vel.X*sin
	bn := b.Vel.X*cos + b.Vel.Y*sin
	bt := b.Vel.Y*cos - b.Vel.X*sin

	ra, rb := a.Radius, b.Radius
	anAfter := ((ra-rb)*an + 2*rb*bn) / sumR
	bnAfter := ((rb-ra)*bn + 2*ra*an) / sumR

	// Rotate back, each body keeping its own tangential component.
	a.Vel.X = anAfter*cos - at*sin
	a.Vel.Y = anAfter*sin + at*cos
	b.Vel.X = bnAfter*cos - bt*sin
	b.Vel.Y = bnAfter*sin + bt*cos

	overlap := (sumR - dist) / 2
	a.Pos.X -= overlap * cos
	a.Pos.Y -= overlap * sin
	b.Pos.X += overlap * cos
	b.Pos.Y += overlap * sin
	return true
}

// Overlap returns the largest pairwise penetration depth among bodies.
func Overlap(bodies []dynamo.Body) float64 {
	worst := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[i].Radius + bodies[j].Radius - bodies[i].Pos.Dist(bodies[j].Pos)
			worst = math.Max(worst, d)
		}
	}
	return worst
}
