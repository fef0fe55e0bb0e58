package physics

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/billiards/internal/dynamo"
)

// maxPlacementTries bounds the rejection sampling in Scatter.
const maxPlacementTries = 100

// Table is the body store. It is the single owner of every body for the
// lifetime of a run; bodies are never added or removed after construction.
type Table struct {
	Width   float64
	Height  float64
	palette []string
	bodies  []dynamo.Body
}

func NewTable(width, height float64, bodies []dynamo.Body) *Table {
	return &Table{Width: width, Height: height, bodies: bodies}
}

// SetPalette restricts SetColor to the given colors. A nil palette accepts
// any color.
func (t *Table) SetPalette(palette []string) {
	t.palette = append([]string(nil), palette...)
}

func (t *Table) Palette() []string { return t.palette }
func (t *Table) Len() int          { return len(t.bodies) }

// Bodies exposes the live collection for in-place mutation.
func (t *Table) Bodies() []dynamo.Body { return t.bodies }

// Body returns a pointer into the store, or nil for an invalid index.
func (t *Table) Body(i int) *dynamo.Body {
	if i < 0 || i >= len(t.bodies) {
		return nil
	}
	return &t.bodies[i]
}

// HitTest returns the index of the first body in store order whose disk
// contains p, or -1.
func (t *Table) HitTest(p dynamo.Vec2) int {
	for i := range t.bodies {
		if t.bodies[i].Contains(p) {
			return i
		}
	}
	return -1
}

func (t *Table) SetColor(i int, color string) error {
	b := t.Body(i)
	if b == nil {
		return fmt.Errorf("%w: %d (have %d bodies)", dynamo.ErrIndexOutOfRange, i, len(t.bodies))
	}
	if t.palette != nil && !contains(t.palette, color) {
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownColor, color)
	}
	b.Color = color
	return nil
}

// Snapshot appends one entry per body, in store order, to dst.
func (t *Table) Snapshot(dst []dynamo.Snapshot) []dynamo.Snapshot {
	for i := range t.bodies {
		dst = append(dst, t.bodies[i].Snapshot())
	}
	return dst
}

// Scatter creates n resting bodies with radii uniform in [minR, maxR] and
// colors drawn from palette. Each disk lies fully inside the surface. Up to
// maxPlacementTries positions are sampled per body to avoid overlapping an
// earlier body; the last sample is kept if the table is too crowded.
func Scatter(rnd *rand.Rand, width, height float64, n int, minR, maxR float64, palette []string) []dynamo.Body {
	bodies := make([]dynamo.Body, 0, n)
	for i := 0; i < n; i++ {
		r := minR + rnd.Float64()*(maxR-minR)

		var pos dynamo.Vec2
		for try := 0; try < maxPlacementTries; try++ {
			pos = dynamo.Vec2{
				X: rnd.Float64()*(width-2*r) + r,
				Y: rnd.Float64()*(height-2*r) + r,
			}
			if !overlapsAny(bodies, pos, r) {
				break
			}
		}

		bodies = append(bodies, dynamo.Body{
			Pos:    pos,
			Radius: r,
			Color:  palette[rnd.Intn(len(palette))],
		})
	}
	return bodies
}

func overlapsAny(bodies []dynamo.Body, pos dynamo.Vec2, r float64) bool {
	for i := range bodies {
		if bodies[i].Pos.Dist(pos) < bodies[i].Radius+r {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
