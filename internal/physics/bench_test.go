package physics

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func grid(n int) *Store {
	s := NewStore()
	side := 1
	for side*side < n {
		side++
	}
	for i := 0; i < n; i++ {
		x := float64(i%side)*18 + 20
		y := float64(i/side)*18 + 20
		_ = s.Spawn(SpawnRequest{Position: r2.Vec{X: x, Y: y}, Radius: 10})
	}
	return s
}

func BenchmarkResolveCollisions(b *testing.B) {
	for _, n := range []int{100, 500, 1000} {
		b.Run(fmt.Sprintf("Bodies-%d", n), func(b *testing.B) {
			s := grid(n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ResolveCollisions(s)
			}
		})
	}
}

func BenchmarkAdvance(b *testing.B) {
	settings := Settings{Gravity: EarthGravity, Bounds: Rect{Width: 1920, Height: 1080}}
	for _, n := range []int{100, 500} {
		b.Run(fmt.Sprintf("Bodies-%d", n), func(b *testing.B) {
			solver := NewSolver(grid(n))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = solver.Advance(1.0/60/8, 8, settings)
			}
		})
	}
}
