package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/billiards/internal/dynamo"
	"github.com/san-kum/billiards/internal/physics"
)

var _ = Describe("Pairwise", func() {
	var pairwise *physics.Pairwise

	BeforeEach(func() {
		pairwise = physics.NewPairwise()
	})

	It("swaps normal velocities of equal radii in a head-on hit", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 3}, Radius: 10},
			{Pos: dynamo.Vec2{X: 118, Y: 100}, Vel: dynamo.Vec2{X: -3}, Radius: 10},
		}
		pairwise.Resolve(bodies)

		Expect(pairwise.Contacts).To(Equal(1))
		Expect(bodies[0].Vel.X).To(Equal(-3.0))
		Expect(bodies[1].Vel.X).To(Equal(3.0))
		Expect(bodies[0].Vel.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(bodies[1].Vel.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("separates an overlapping pair to touching distance", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 200, Y: 200}, Vel: dynamo.Vec2{X: 1, Y: 2}, Radius: 15},
			{Pos: dynamo.Vec2{X: 210, Y: 212}, Vel: dynamo.Vec2{X: -2, Y: 0.5}, Radius: 25},
		}
		pairwise.Resolve(bodies)

		dist := bodies[0].Pos.Dist(bodies[1].Pos)
		Expect(dist).To(BeNumerically(">=", 40-1e-9))
		Expect(dist).To(BeNumerically("~", 40, 1e-9))
	})

	It("moves both centers by half the overlap", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Radius: 10},
			{Pos: dynamo.Vec2{X: 116, Y: 100}, Radius: 10},
		}
		pairwise.Resolve(bodies)

		Expect(bodies[0].Pos.X).To(BeNumerically("~", 98, 1e-12))
		Expect(bodies[1].Pos.X).To(BeNumerically("~", 118, 1e-12))
	})

	It("preserves each body's own tangential component", func() {
		// Contact normal along x: tangential components are the y velocities.
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 2, Y: 7}, Radius: 10},
			{Pos: dynamo.Vec2{X: 115, Y: 100}, Vel: dynamo.Vec2{X: -1, Y: -4}, Radius: 10},
		}
		pairwise.Resolve(bodies)

		Expect(bodies[0].Vel.Y).To(BeNumerically("~", 7, 1e-12))
		Expect(bodies[1].Vel.Y).To(BeNumerically("~", -4, 1e-12))
		Expect(bodies[0].Vel.X).To(BeNumerically("~", -1, 1e-12))
		Expect(bodies[1].Vel.X).To(BeNumerically("~", 2, 1e-12))
	})

	It("conserves radius-weighted momentum and energy for unequal radii", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 300, Y: 300}, Vel: dynamo.Vec2{X: 4, Y: 1}, Radius: 30},
			{Pos: dynamo.Vec2{X: 330, Y: 320}, Vel: dynamo.Vec2{X: -2, Y: -3}, Radius: 10},
		}
		momentum := func() dynamo.Vec2 {
			return bodies[0].Vel.Scale(bodies[0].Radius).Add(bodies[1].Vel.Scale(bodies[1].Radius))
		}
		energy := func() float64 {
			e := 0.0
			for _, b := range bodies {
				e += 0.5 * b.Radius * b.Vel.Dot(b.Vel)
			}
			return e
		}
		p0, e0 := momentum(), energy()

		pairwise.Resolve(bodies)

		p1 := momentum()
		Expect(p1.X).To(BeNumerically("~", p0.X, 1e-9))
		Expect(p1.Y).To(BeNumerically("~", p0.Y, 1e-9))
		Expect(energy()).To(BeNumerically("~", e0, 1e-9))
	})

	It("ignores pairs that do not overlap", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 1}, Radius: 10},
			{Pos: dynamo.Vec2{X: 120, Y: 100}, Vel: dynamo.Vec2{X: -1}, Radius: 10},
		}
		pairwise.Resolve(bodies)

		Expect(pairwise.Contacts).To(Equal(0))
		Expect(bodies[0].Vel.X).To(Equal(1.0))
		Expect(bodies[1].Pos.X).To(Equal(120.0))
	})

	It("separates coincident centers without exchanging velocity", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 1, Y: 2}, Radius: 10},
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: -3, Y: 0}, Radius: 10},
		}
		pairwise.Resolve(bodies)

		Expect(bodies[0].Vel).To(Equal(dynamo.Vec2{X: 1, Y: 2}))
		Expect(bodies[1].Vel).To(Equal(dynamo.Vec2{X: -3, Y: 0}))
		Expect(bodies[0].Pos.Dist(bodies[1].Pos)).To(BeNumerically("~", 20, 1e-12))
		for _, b := range bodies {
			Expect(b.IsValid()).To(BeTrue())
		}
	})

	It("resolves chains sequentially in ascending index order", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 2}, Radius: 10},
			{Pos: dynamo.Vec2{X: 119, Y: 100}, Radius: 10},
			{Pos: dynamo.Vec2{X: 138, Y: 100}, Radius: 10},
		}
		pairwise.Resolve(bodies)

		// (0,1) hands the velocity to 1, (0,2) is apart, (1,2) hands it to 2.
		Expect(pairwise.Contacts).To(Equal(2))
		Expect(bodies[0].Vel.X).To(BeNumerically("~", 0, 1e-12))
		Expect(bodies[1].Vel.X).To(BeNumerically("~", 0, 1e-12))
		Expect(bodies[2].Vel.X).To(BeNumerically("~", 2, 1e-12))
	})

	It("never changes radius", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 2, Y: 1}, Radius: 12},
			{Pos: dynamo.Vec2{X: 110, Y: 105}, Vel: dynamo.Vec2{X: -1}, Radius: 18},
		}
		pairwise.Resolve(bodies)
		Expect(bodies[0].Radius).To(Equal(12.0))
		Expect(bodies[1].Radius).To(Equal(18.0))
	})
})

var _ = Describe("Overlap", func() {
	It("reports the deepest penetration", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 0, Y: 0}, Radius: 10},
			{Pos: dynamo.Vec2{X: 15, Y: 0}, Radius: 10},
			{Pos: dynamo.Vec2{X: 0, Y: 100}, Radius: 10},
		}
		Expect(physics.Overlap(bodies)).To(BeNumerically("~", 5, 1e-12))
	})

	It("is zero for a separated table", func() {
		bodies := []dynamo.Body{
			{Pos: dynamo.Vec2{X: 0, Y: 0}, Radius: 1},
			{Pos: dynamo.Vec2{X: math.Sqrt2 * 10, Y: 0}, Radius: 1},
		}
		Expect(physics.Overlap(bodies)).To(Equal(0.0))
	})
})
