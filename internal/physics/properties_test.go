package physics_test

import (
	"math"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/NotAF0e/Gravitonic/internal/physics"
)

const (
	frameDt  = 1.0 / 60 / 8
	subSteps = 8
)

func spawnAll(s *physics.Store, reqs ...physics.SpawnRequest) {
	for _, req := range reqs {
		Expect(s.Spawn(req)).To(Succeed())
	}
}

func at(x, y, r float64) physics.SpawnRequest {
	return physics.SpawnRequest{Position: r2.Vec{X: x, Y: y}, Radius: r}
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

var _ = Describe("Solver", func() {
	var (
		solver *physics.Solver
		store  *physics.Store
	)

	BeforeEach(func() {
		store = physics.NewStore()
		solver = physics.NewSolver(store)
	})

	Context("with a single body at rest and no gravity", func() {
		It("leaves the body where it is", func() {
			spawnAll(store, at(960, 540, 20))
			settings := physics.Settings{Bounds: physics.Circle{Center: r2.Vec{X: 960, Y: 540}, Radius: 300}}

			for i := 0; i < 100; i++ {
				Expect(solver.Advance(frameDt, subSteps, settings)).To(Succeed())
			}

			b := store.At(0)
			Expect(b.Current.X).To(BeNumerically("~", 960, 1e-9))
			Expect(b.Current.Y).To(BeNumerically("~", 540, 1e-9))
			Expect(b.Old).To(Equal(b.Current))
		})
	})

	Context("with one unconstrained body under uniform gravity", func() {
		It("follows the closed-form Verlet trajectory", func() {
			g := r2.Vec{X: 3, Y: 980.7}
			spawnAll(store, at(0, 0, 1))
			settings := physics.Settings{Gravity: g}

			frames := 10
			for i := 0; i < frames; i++ {
				Expect(solver.Advance(frameDt, subSteps, settings)).To(Succeed())
			}

			k := float64(frames * subSteps)
			want := r2.Scale(frameDt*frameDt*k*(k+1)/2, g)
			Expect(store.At(0).Current.X).To(BeNumerically("~", want.X, 1e-9))
			Expect(store.At(0).Current.Y).To(BeNumerically("~", want.Y, 1e-9))

			v := store.At(0).Velocity()
			Expect(v.Y).To(BeNumerically("~", g.Y*frameDt*frameDt*k, 1e-9))
		})
	})

	Context("with two coincident bodies", func() {
		It("keeps every position finite", func() {
			spawnAll(store, at(500, 500, 10), at(500, 500, 10))
			settings := physics.Settings{Gravity: physics.EarthGravity, Bounds: physics.Rect{Width: 1920, Height: 1080}}

			Expect(solver.Advance(frameDt, subSteps, settings)).To(Succeed())

			for _, b := range store.Bodies() {
				Expect(finite(b.Current)).To(BeTrue())
				Expect(finite(b.Old)).To(BeTrue())
			}
			Expect(store.Validate()).To(Succeed())
		})

		It("stays finite under centre gravity placed on top of them", func() {
			spawnAll(store, at(960, 540, 10), at(960, 540, 10))
			settings := physics.Settings{
				CenterGravity: true,
				Center:        r2.Vec{X: 960, Y: 540},
				Strength:      0.07,
				Bounds:        physics.Circle{Center: r2.Vec{X: 960, Y: 540}, Radius: 300},
			}

			for i := 0; i < 10; i++ {
				Expect(solver.Advance(frameDt, subSteps, settings)).To(Succeed())
			}
			Expect(store.Validate()).To(Succeed())
		})
	})

	Context("with bodies far outside the arena", func() {
		DescribeTable("the boundary pass contains them",
			func(bounds physics.Boundary) {
				spawnAll(store, at(-5000, 20, 10), at(8000, 9000, 25), at(960, 540, 5))
				bounds.Constrain(store)
				for _, b := range store.Bodies() {
					Expect(bounds.Contains(b)).To(BeTrue(), "body at %v", b.Current)
				}
			},
			Entry("circle", physics.Circle{Center: r2.Vec{X: 960, Y: 540}, Radius: 300}),
			Entry("rect", physics.Rect{Width: 1920, Height: 1080}),
		)
	})

	Context("when spawning between frames", func() {
		It("only ever grows", func() {
			settings := physics.Settings{Gravity: physics.EarthGravity, Bounds: physics.Rect{Width: 1920, Height: 1080}}
			for n := 1; n <= 20; n++ {
				pos := r2.Vec{X: float64(40 * n), Y: 100}
				spawnAll(store, physics.SpawnRequest{Position: pos, Radius: 5})
				Expect(store.Len()).To(Equal(n))
				Expect(store.At(n - 1).Current).To(Equal(pos))
				Expect(store.At(n - 1).Old).To(Equal(pos))
				Expect(solver.Advance(frameDt, subSteps, settings)).To(Succeed())
			}
			Expect(store.Len()).To(Equal(20))
		})
	})

	Context("with non-overlapping bodies", func() {
		It("reaches the same positions regardless of insertion order", func() {
			reqs := []physics.SpawnRequest{at(100, 100, 10), at(300, 120, 15), at(600, 400, 5), at(900, 50, 20)}
			settings := physics.Settings{Gravity: physics.EarthGravity, Bounds: physics.Rect{Width: 1920, Height: 1080}}

			run := func(order []int) [][2]float64 {
				s := physics.NewSolver(nil)
				for _, i := range order {
					Expect(s.Store().Spawn(reqs[i])).To(Succeed())
				}
				Expect(s.Advance(frameDt, subSteps, settings)).To(Succeed())
				out := make([][2]float64, 0, len(reqs))
				for _, b := range s.Store().Bodies() {
					out = append(out, [2]float64{b.Current.X, b.Current.Y})
				}
				sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
				return out
			}

			forward := run([]int{0, 1, 2, 3})
			reversed := run([]int{3, 2, 1, 0})
			for i := range forward {
				Expect(reversed[i][0]).To(BeNumerically("~", forward[i][0], 1e-9))
				Expect(reversed[i][1]).To(BeNumerically("~", forward[i][1], 1e-9))
			}
		})
	})
})

var _ = Describe("ResolveCollisions", func() {
	It("separates an overlapping pair to exactly the sum of radii", func() {
		store := physics.NewStore()
		spawnAll(store, at(0, 0, 12), at(7, 0, 8))

		Expect(physics.ResolveCollisions(store)).To(Equal(1))

		d := r2.Norm(r2.Sub(store.At(0).Current, store.At(1).Current))
		Expect(d).To(BeNumerically("~", 20, 1e-9))
		Expect(store.At(0).Current.X).To(BeNumerically("~", -6.5, 1e-9))
		Expect(store.At(1).Current.X).To(BeNumerically("~", 13.5, 1e-9))
	})
})
