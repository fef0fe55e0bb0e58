package physics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/billiards/internal/dynamo"
	"github.com/san-kum/billiards/internal/physics"
)

var _ = Describe("Table", func() {
	var table *physics.Table

	BeforeEach(func() {
		table = physics.NewTable(700, 500, []dynamo.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Radius: 20, Color: "#ff0000"},
			{Pos: dynamo.Vec2{X: 110, Y: 100}, Radius: 20, Color: "#00ff00"},
			{Pos: dynamo.Vec2{X: 400, Y: 300}, Radius: 10, Color: "#0000ff"},
		})
		table.SetPalette([]string{"#ff0000", "#00ff00", "#0000ff"})
	})

	Describe("HitTest", func() {
		It("returns the first body in store order when disks overlap", func() {
			Expect(table.HitTest(dynamo.Vec2{X: 105, Y: 100})).To(Equal(0))
		})

		It("finds a body by a point inside its disk", func() {
			Expect(table.HitTest(dynamo.Vec2{X: 405, Y: 305})).To(Equal(2))
		})

		It("returns -1 for empty space", func() {
			Expect(table.HitTest(dynamo.Vec2{X: 600, Y: 50})).To(Equal(-1))
		})

		It("treats the rim as outside", func() {
			Expect(table.HitTest(dynamo.Vec2{X: 410, Y: 300})).To(Equal(-1))
		})
	})

	Describe("SetColor", func() {
		It("recolors a body with a palette entry", func() {
			Expect(table.SetColor(2, "#ff0000")).To(Succeed())
			Expect(table.Body(2).Color).To(Equal("#ff0000"))
		})

		It("rejects an out of range index", func() {
			Expect(table.SetColor(3, "#ff0000")).To(MatchError(dynamo.ErrIndexOutOfRange))
			Expect(table.SetColor(-1, "#ff0000")).To(MatchError(dynamo.ErrIndexOutOfRange))
		})

		It("rejects a color outside the palette", func() {
			Expect(table.SetColor(0, "#123456")).To(MatchError(dynamo.ErrUnknownColor))
			Expect(table.Body(0).Color).To(Equal("#ff0000"))
		})

		It("is visible in the next snapshot", func() {
			Expect(table.SetColor(1, "#0000ff")).To(Succeed())
			snaps := table.Snapshot(nil)
			Expect(snaps).To(HaveLen(3))
			Expect(snaps[1].Color).To(Equal("#0000ff"))
		})
	})

	It("returns nil for an invalid body index", func() {
		Expect(table.Body(5)).To(BeNil())
	})

	It("snapshots every body in store order", func() {
		snaps := table.Snapshot(make([]dynamo.Snapshot, 0, 3))
		Expect(snaps).To(Equal([]dynamo.Snapshot{
			{X: 100, Y: 100, Radius: 20, Color: "#ff0000"},
			{X: 110, Y: 100, Radius: 20, Color: "#00ff00"},
			{X: 400, Y: 300, Radius: 10, Color: "#0000ff"},
		}))
	})
})

var _ = Describe("Scatter", func() {
	palette := []string{"#ff0000", "#00ff00"}

	It("places resting bodies fully inside the surface", func() {
		bodies := physics.Scatter(rand.New(rand.NewSource(7)), 700, 500, 25, 10, 30, palette)
		Expect(bodies).To(HaveLen(25))
		for _, b := range bodies {
			Expect(b.Radius).To(And(BeNumerically(">=", 10), BeNumerically("<=", 30)))
			Expect(b.Pos.X - b.Radius).To(BeNumerically(">=", 0))
			Expect(b.Pos.X + b.Radius).To(BeNumerically("<=", 700))
			Expect(b.Pos.Y - b.Radius).To(BeNumerically(">=", 0))
			Expect(b.Pos.Y + b.Radius).To(BeNumerically("<=", 500))
			Expect(b.Vel).To(Equal(dynamo.Vec2{}))
			Expect(palette).To(ContainElement(b.Color))
		}
	})

	It("avoids overlaps when there is room", func() {
		bodies := physics.Scatter(rand.New(rand.NewSource(1)), 700, 500, 10, 10, 30, palette)
		Expect(physics.Overlap(bodies)).To(BeNumerically("<=", 0))
	})

	It("is deterministic for a seed", func() {
		a := physics.Scatter(rand.New(rand.NewSource(42)), 700, 500, 5, 10, 30, palette)
		b := physics.Scatter(rand.New(rand.NewSource(42)), 700, 500, 5, 10, 30, palette)
		Expect(a).To(Equal(b))
	})

	It("draws continuous radii inside a fractional range", func() {
		bodies := physics.Scatter(rand.New(rand.NewSource(5)), 700, 500, 20, 8.5, 9.5, palette)
		fractional := 0
		for _, b := range bodies {
			Expect(b.Radius).To(And(BeNumerically(">=", 8.5), BeNumerically("<=", 9.5)))
			if b.Radius != math.Trunc(b.Radius) {
				fractional++
			}
		}
		Expect(fractional).To(BeNumerically(">", 0))
	})

	It("supports a fixed radius", func() {
		bodies := physics.Scatter(rand.New(rand.NewSource(3)), 100, 100, 3, 15, 15, palette)
		for _, b := range bodies {
			Expect(b.Radius).To(Equal(15.0))
		}
	})
})
