package control

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/billiards/internal/dynamo"
	"github.com/san-kum/billiards/internal/physics"
)

var _ = Describe("transition", func() {
	DescribeTable("state table",
		func(from State, kind EventKind, hit bool, want State) {
			Expect(transition(from, kind, hit)).To(Equal(want))
		},
		Entry("idle down on body", Idle, Down, true, Steering),
		Entry("idle down on empty", Idle, Down, false, Armed),
		Entry("idle move", Idle, Move, false, Idle),
		Entry("idle up", Idle, Up, false, Idle),
		Entry("armed move", Armed, Move, false, Armed),
		Entry("armed down", Armed, Down, true, Armed),
		Entry("armed up", Armed, Up, false, Idle),
		Entry("steering move", Steering, Move, false, Steering),
		Entry("steering down", Steering, Down, true, Steering),
		Entry("steering up", Steering, Up, false, Idle),
	)
})

var _ = Describe("Pointer", func() {
	const force = 6.0

	var (
		table   *physics.Table
		pointer *Pointer
	)

	at := func(x, y float64) dynamo.Vec2 { return dynamo.Vec2{X: x, Y: y} }

	BeforeEach(func() {
		table = physics.NewTable(700, 500, []dynamo.Body{
			{Pos: at(100, 100), Vel: at(1, 1), Radius: 20},
			{Pos: at(300, 300), Radius: 15},
		})
		pointer = NewPointer(force)
	})

	It("starts idle with no selection", func() {
		Expect(pointer.State()).To(Equal(Idle))
		_, ok := pointer.Selected()
		Expect(ok).To(BeFalse())
	})

	It("selects the body under the pointer", func() {
		pointer.Handle(table, Event{Kind: Down, Pos: at(305, 300)})

		Expect(pointer.State()).To(Equal(Steering))
		idx, ok := pointer.Selected()
		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(1))
	})

	It("does not change velocity on press", func() {
		pointer.Handle(table, Event{Kind: Down, Pos: at(100, 100)})
		Expect(table.Body(0).Vel).To(Equal(at(1, 1)))
	})

	It("overwrites velocity toward the latest pointer on every move", func() {
		pointer.Handle(table, Event{Kind: Down, Pos: at(100, 100)})

		targets := []dynamo.Vec2{at(200, 100), at(100, 50), at(0, 200), at(130, 140)}
		for _, target := range targets {
			table.Body(0).Vel = at(99, -99)
			pointer.Handle(table, Event{Kind: Move, Pos: target})

			angle := math.Atan2(target.Y-100, target.X-100)
			vel := table.Body(0).Vel
			Expect(vel.X).To(BeNumerically("~", math.Cos(angle)*force, 1e-12))
			Expect(vel.Y).To(BeNumerically("~", math.Sin(angle)*force, 1e-12))
			Expect(vel.Len()).To(BeNumerically("~", force, 1e-12))
		}
	})

	It("keeps the last velocity on release and clears selection", func() {
		pointer.Handle(table, Event{Kind: Down, Pos: at(100, 100)})
		pointer.Handle(table, Event{Kind: Move, Pos: at(200, 100)})
		pointer.Handle(table, Event{Kind: Up})

		Expect(pointer.State()).To(Equal(Idle))
		_, ok := pointer.Selected()
		Expect(ok).To(BeFalse())
		Expect(table.Body(0).Vel.X).To(BeNumerically("~", force, 1e-12))
		Expect(table.Body(0).Vel.Y).To(BeNumerically("~", 0, 1e-12))

		pointer.Handle(table, Event{Kind: Move, Pos: at(100, 300)})
		Expect(table.Body(0).Vel.X).To(BeNumerically("~", force, 1e-12))
	})

	It("ignores moves after a press on empty space", func() {
		pointer.Handle(table, Event{Kind: Down, Pos: at(600, 450)})
		Expect(pointer.State()).To(Equal(Armed))

		pointer.Handle(table, Event{Kind: Move, Pos: at(100, 100)})
		Expect(table.Body(0).Vel).To(Equal(at(1, 1)))
		Expect(table.Body(1).Vel).To(Equal(at(0, 0)))

		pointer.Handle(table, Event{Kind: Up})
		Expect(pointer.State()).To(Equal(Idle))
	})

	It("does not reselect on a second press while steering", func() {
		pointer.Handle(table, Event{Kind: Down, Pos: at(100, 100)})
		pointer.Handle(table, Event{Kind: Down, Pos: at(300, 300)})

		idx, _ := pointer.Selected()
		Expect(idx).To(Equal(0))
	})

	It("aims along +x when the pointer sits on the center", func() {
		pointer.Handle(table, Event{Kind: Down, Pos: at(100, 100)})
		pointer.Handle(table, Event{Kind: Move, Pos: at(100, 100)})
		Expect(table.Body(0).Vel).To(Equal(at(force, 0)))
	})

	It("resets to idle", func() {
		pointer.Handle(table, Event{Kind: Down, Pos: at(100, 100)})
		pointer.Reset()
		Expect(pointer.State()).To(Equal(Idle))
	})
})

var _ = Describe("State", func() {
	It("has readable names", func() {
		Expect(Idle.String()).To(Equal("idle"))
		Expect(Armed.String()).To(Equal("armed"))
		Expect(Steering.String()).To(Equal("steering"))
		Expect(State(9).String()).To(Equal("unknown"))
	})
})
