// Package spawn turns pointer positions and emitter settings into spawn
// requests with random radius and colour.
package spawn

import (
	"image/color"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/NotAF0e/Gravitonic/internal/config"
	"github.com/NotAF0e/Gravitonic/internal/physics"
)

// Spawner draws radius uniformly from [MinRadius, MaxRadius) and an opaque
// random RGB colour for every request.
type Spawner struct {
	rnd       *rand.Rand
	minRadius float64
	maxRadius float64
	maxBodies int
}

func New(seed uint64, cfg config.SpawnConfig) *Spawner {
	return &Spawner{
		rnd:       rand.New(rand.NewSource(seed)),
		minRadius: cfg.MinRadius,
		maxRadius: cfg.MaxRadius,
		maxBodies: cfg.MaxBodies,
	}
}

// At builds a request centred on pos.
func (s *Spawner) At(pos r2.Vec) physics.SpawnRequest {
	return physics.SpawnRequest{
		Position: pos,
		Radius:   s.radius(),
		Color:    s.color(),
	}
}

// Around builds a request uniformly within a square of side 2*jitter
// around origin.
func (s *Spawner) Around(origin r2.Vec, jitter float64) physics.SpawnRequest {
	offset := r2.Vec{
		X: (s.rnd.Float64()*2 - 1) * jitter,
		Y: (s.rnd.Float64()*2 - 1) * jitter,
	}
	return s.At(r2.Add(origin, offset))
}

// Allowed reports whether a store of size n may grow by one more body.
func (s *Spawner) Allowed(n int) bool {
	return s.maxBodies == 0 || n < s.maxBodies
}

// Emit spawns up to count bodies around origin into store, honouring the
// body cap, and returns how many were added.
func (s *Spawner) Emit(store *physics.Store, count int, origin r2.Vec, jitter float64) (int, error) {
	added := 0
	for i := 0; i < count && s.Allowed(store.Len()); i++ {
		if err := store.Spawn(s.Around(origin, jitter)); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (s *Spawner) radius() float64 {
	if s.maxRadius <= s.minRadius {
		return s.minRadius
	}
	return s.minRadius + s.rnd.Float64()*(s.maxRadius-s.minRadius)
}

func (s *Spawner) color() color.RGBA {
	return color.RGBA{
		R: uint8(s.rnd.Intn(256)),
		G: uint8(s.rnd.Intn(256)),
		B: uint8(s.rnd.Intn(256)),
		A: 255,
	}
}
