package physics

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestStoreSpawn(t *testing.T) {
	s := NewStore()
	positions := []r2.Vec{{X: 10, Y: 20}, {X: 300, Y: 40}, {X: -5, Y: 7.5}}

	for i, p := range positions {
		if err := s.Spawn(SpawnRequest{Position: p, Radius: float64(i + 1), Color: color.RGBA{R: 255, A: 255}}); err != nil {
			t.Fatalf("spawn %d failed: %v", i, err)
		}
	}

	if s.Len() != len(positions) {
		t.Fatalf("expected %d bodies, got %d", len(positions), s.Len())
	}

	for i, p := range positions {
		b := s.At(i)
		if b.Current != p || b.Old != p {
			t.Errorf("body %d: expected current=old=%v, got %v / %v", i, p, b.Current, b.Old)
		}
		if b.Acceleration != (r2.Vec{}) {
			t.Errorf("body %d: expected zero acceleration, got %v", i, b.Acceleration)
		}
		if b.Color.R != 255 {
			t.Errorf("body %d: colour not carried through", i)
		}
	}
}

func TestStoreSpawnInvalidRadius(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
	}{
		{"zero", 0},
		{"negative", -3},
		{"NaN", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			err := s.Spawn(SpawnRequest{Radius: tt.radius})
			if !errors.Is(err, ErrInvalidRadius) {
				t.Errorf("expected ErrInvalidRadius, got %v", err)
			}
			if s.Len() != 0 {
				t.Errorf("rejected spawn must not grow the store")
			}
		})
	}
}

func TestStorePair(t *testing.T) {
	s := NewStore()
	for i := 0; i < 4; i++ {
		_ = s.Spawn(SpawnRequest{Position: r2.Vec{X: float64(i)}, Radius: 1})
	}

	a, b := s.Pair(1, 3)
	a.Current.X = 100
	b.Current.X = 300

	if s.At(1).Current.X != 100 || s.At(3).Current.X != 300 {
		t.Errorf("Pair handles do not alias the store: %v", s.Bodies())
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for i == j")
		}
	}()
	s.Pair(2, 2)
}

func TestStoreValidate(t *testing.T) {
	s := NewStore()
	_ = s.Spawn(SpawnRequest{Radius: 1})
	_ = s.Spawn(SpawnRequest{Radius: 1})

	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.At(1).Current.Y = math.Inf(1)
	err := s.Validate()
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
	var be *BodyError
	if !errors.As(err, &be) || be.Index != 1 {
		t.Errorf("expected BodyError for index 1, got %v", err)
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := NewStore()
	_ = s.Spawn(SpawnRequest{Position: r2.Vec{X: 1, Y: 1}, Radius: 1})

	snap := s.Snapshot()
	snap[0].Current.X = 42

	if s.At(0).Current.X != 1 {
		t.Error("Snapshot shares memory with the store")
	}
}
