package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/billiards/internal/dynamo"
	"github.com/san-kum/billiards/internal/physics"
)

var _ = Describe("Walls", func() {
	var walls *physics.Walls

	BeforeEach(func() {
		walls = physics.NewWalls(700, 500, 0.9)
	})

	DescribeTable("reflects the crossing axis and damps it",
		func(pos, vel, want dynamo.Vec2) {
			bodies := []dynamo.Body{{Pos: pos, Vel: vel, Radius: 20}}
			walls.Resolve(bodies)
			Expect(bodies[0].Vel.X).To(BeNumerically("~", want.X, 1e-12))
			Expect(bodies[0].Vel.Y).To(BeNumerically("~", want.Y, 1e-12))
		},
		Entry("right edge", dynamo.Vec2{X: 685, Y: 250}, dynamo.Vec2{X: 5, Y: 1}, dynamo.Vec2{X: -4.5, Y: 1}),
		Entry("left edge", dynamo.Vec2{X: 15, Y: 250}, dynamo.Vec2{X: -5, Y: 1}, dynamo.Vec2{X: 4.5, Y: 1}),
		Entry("top edge", dynamo.Vec2{X: 300, Y: 10}, dynamo.Vec2{X: 2, Y: -10}, dynamo.Vec2{X: 2, Y: 9}),
		Entry("bottom edge", dynamo.Vec2{X: 300, Y: 490}, dynamo.Vec2{X: 2, Y: 10}, dynamo.Vec2{X: 2, Y: -9}),
		Entry("corner", dynamo.Vec2{X: 690, Y: 490}, dynamo.Vec2{X: 10, Y: 10}, dynamo.Vec2{X: -9, Y: -9}),
		Entry("inside", dynamo.Vec2{X: 300, Y: 250}, dynamo.Vec2{X: 10, Y: 10}, dynamo.Vec2{X: 10, Y: 10}),
	)

	It("does not flip a body already moving back inside", func() {
		bodies := []dynamo.Body{{Pos: dynamo.Vec2{X: 690, Y: 250}, Vel: dynamo.Vec2{X: -4.5}, Radius: 20}}
		walls.Resolve(bodies)
		Expect(bodies[0].Vel.X).To(Equal(-4.5))
	})

	It("does not clamp position", func() {
		bodies := []dynamo.Body{{Pos: dynamo.Vec2{X: 695, Y: 250}, Vel: dynamo.Vec2{X: 5}, Radius: 20}}
		walls.Resolve(bodies)
		Expect(bodies[0].Pos).To(Equal(dynamo.Vec2{X: 695, Y: 250}))
	})

	It("measures penetration past the nearest edge", func() {
		inside := dynamo.Body{Pos: dynamo.Vec2{X: 300, Y: 250}, Radius: 20}
		outside := dynamo.Body{Pos: dynamo.Vec2{X: 695, Y: 250}, Radius: 20}
		Expect(walls.Penetration(&inside)).To(Equal(0.0))
		Expect(walls.Penetration(&outside)).To(BeNumerically("~", 15, 1e-12))
	})

	It("never changes radius", func() {
		bodies := []dynamo.Body{{Pos: dynamo.Vec2{X: 5, Y: 5}, Vel: dynamo.Vec2{X: -1, Y: -1}, Radius: 20}}
		walls.Resolve(bodies)
		Expect(bodies[0].Radius).To(Equal(20.0))
	})
})
