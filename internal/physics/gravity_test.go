package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestUniformTargetsAcceleration(t *testing.T) {
	s := NewStore()
	_ = s.Spawn(SpawnRequest{Position: r2.Vec{X: 5, Y: 5}, Radius: 1})

	g := Uniform{Vector: r2.Vec{X: 1, Y: 2}}
	g.Apply(s)
	g.Apply(s)

	b := s.At(0)
	if b.Acceleration != (r2.Vec{X: 2, Y: 4}) {
		t.Errorf("expected accumulated acceleration (2,4), got %v", b.Acceleration)
	}
	if b.Current != (r2.Vec{X: 5, Y: 5}) {
		t.Errorf("uniform gravity must not touch position, got %v", b.Current)
	}
	if g.Target() != TargetAcceleration {
		t.Errorf("expected acceleration target, got %v", g.Target())
	}
}

func TestCenterSeekingTargetsPosition(t *testing.T) {
	tests := []struct {
		name  string
		start r2.Vec
		want  r2.Vec
	}{
		{"right of centre", r2.Vec{X: 110, Y: 100}, r2.Vec{X: 109.5, Y: 100}},
		{"above centre", r2.Vec{X: 100, Y: 90}, r2.Vec{X: 100, Y: 90.5}},
		{"on centre", r2.Vec{X: 100, Y: 100}, r2.Vec{X: 100, Y: 100}},
	}

	g := CenterSeeking{Center: r2.Vec{X: 100, Y: 100}, Strength: 0.5}
	if g.Target() != TargetPosition {
		t.Fatalf("expected position target, got %v", g.Target())
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			_ = s.Spawn(SpawnRequest{Position: tt.start, Radius: 1})
			g.Apply(s)

			b := s.At(0)
			if math.IsNaN(b.Current.X) || math.IsNaN(b.Current.Y) {
				t.Fatalf("NaN position %v", b.Current)
			}
			if !near(b.Current, tt.want, tol) {
				t.Errorf("expected %v, got %v", tt.want, b.Current)
			}
			if b.Acceleration != (r2.Vec{}) {
				t.Errorf("centre gravity must not touch acceleration, got %v", b.Acceleration)
			}
			if b.Old != tt.start {
				t.Errorf("centre gravity must not touch old position, got %v", b.Old)
			}
		})
	}
}

func TestSettingsGravityModel(t *testing.T) {
	s := Settings{Gravity: EarthGravity, Center: r2.Vec{X: 1, Y: 1}, Strength: 0.07}

	if _, ok := s.GravityModel().(Uniform); !ok {
		t.Errorf("expected uniform model, got %T", s.GravityModel())
	}

	toggled := s.ToggleCenter()
	cs, ok := toggled.GravityModel().(CenterSeeking)
	if !ok {
		t.Fatalf("expected centre-seeking model, got %T", toggled.GravityModel())
	}
	if cs.Strength != 0.07 || cs.Center != (r2.Vec{X: 1, Y: 1}) {
		t.Errorf("centre parameters not carried: %+v", cs)
	}
	if s.CenterGravity {
		t.Error("ToggleCenter mutated the receiver")
	}
}
