package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/NotAF0e/Gravitonic/internal/automation"
	"github.com/NotAF0e/Gravitonic/internal/config"
	"github.com/NotAF0e/Gravitonic/internal/metrics"
	"github.com/NotAF0e/Gravitonic/internal/physics"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Frames = 30
	cfg.Seed = 1
	cfg.RecordEvery = 10
	return cfg
}

func TestRunnerRun(t *testing.T) {
	cfg := testConfig()
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.FramesRun != 30 {
		t.Errorf("expected 30 frames, got %d", result.FramesRun)
	}
	if result.SubSteps != 30*cfg.SubSteps {
		t.Errorf("expected %d sub-steps, got %d", 30*cfg.SubSteps, result.SubSteps)
	}
	if r.Store().Len() != 30 || result.Spawned != 30 {
		t.Errorf("expected one body per frame, got %d (spawned %d)", r.Store().Len(), result.Spawned)
	}

	// frames 0, 10, 20 and the final frame 29
	if len(result.Frames) != 4 {
		t.Fatalf("expected 4 recorded frames, got %d", len(result.Frames))
	}
	if last := result.Frames[3]; last.Index != 29 || len(last.Bodies) != 30 {
		t.Errorf("unexpected final frame %d with %d bodies", last.Index, len(last.Bodies))
	}
	if math.Abs(result.Frames[3].Time-30.0/60.0) > 1e-9 {
		t.Errorf("expected final time 0.5s, got %f", result.Frames[3].Time)
	}

	for i, n := range result.Counts {
		if n != i+1 {
			t.Fatalf("frame %d: expected %d bodies, got %d", i, i+1, n)
		}
	}
	if len(result.Energy) != 30 {
		t.Errorf("expected energy per frame, got %d", len(result.Energy))
	}
	if result.Metrics["bodies"] != 30 {
		t.Errorf("expected bodies metric 30, got %f", result.Metrics["bodies"])
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero dt", func(c *config.Config) { c.Dt = 0 }},
		{"negative dt", func(c *config.Config) { c.Dt = -0.1 }},
		{"zero sub-steps", func(c *config.Config) { c.SubSteps = 0 }},
		{"bad arena", func(c *config.Config) { c.Arena.Shape = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			if _, err := New(cfg); !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunnerPresetsStayFinite(t *testing.T) {
	for _, preset := range config.ListPresets() {
		t.Run(preset, func(t *testing.T) {
			cfg := config.GetPreset(preset)
			cfg.Frames = 120
			cfg.Seed = 3

			r, err := New(cfg)
			if err != nil {
				t.Fatal(err)
			}
			result, err := r.Run(context.Background())
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if len(result.Errors) != 0 {
				t.Fatalf("run reported errors: %v", result.Errors)
			}
			if err := r.Store().Validate(); err != nil {
				t.Fatalf("store not finite: %v", err)
			}
		})
	}
}

func TestRunnerScenario(t *testing.T) {
	cfg := testConfig()
	cfg.Spawn.Rate = 0

	scenario := &automation.Scenario{Events: []automation.Event{
		{Frame: 0, Action: automation.ActionSpawn, X: 960, Y: 300, Count: 5, Jitter: 50},
		{Frame: 10, Action: automation.ActionToggleGravity},
		{Frame: 20, Action: automation.ActionGravity, X: 0, Y: -100},
	}}

	observed := 0
	r, err := New(cfg, WithScenario(scenario), WithObserver(ObserverFunc(
		func(frame int, _ float64, _ *physics.Store) { observed++ })))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if observed != cfg.Frames {
		t.Errorf("expected observer on every frame, got %d calls", observed)
	}
	if r.Store().Len() != 5 {
		t.Errorf("expected 5 scripted bodies, got %d", r.Store().Len())
	}
	s := r.Settings()
	if !s.CenterGravity {
		t.Error("expected centre gravity after toggle")
	}
	if s.Gravity != (r2.Vec{X: 0, Y: -100}) {
		t.Errorf("expected updated gravity vector, got %v", s.Gravity)
	}
}

func TestRunnerMaxBodies(t *testing.T) {
	cfg := testConfig()
	cfg.Spawn.Rate = 5
	cfg.Spawn.MaxBodies = 12

	r, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if r.Store().Len() != 12 || result.Spawned != 12 {
		t.Errorf("expected cap of 12 bodies, got %d (spawned %d)", r.Store().Len(), result.Spawned)
	}
}

func TestRunnerCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Frames = 1000

	ctx, cancel := context.WithCancel(context.Background())
	stopAt := 5
	r, err := New(cfg, WithObserver(ObserverFunc(func(frame int, _ float64, _ *physics.Store) {
		if frame == stopAt {
			cancel()
		}
	})))
	if err != nil {
		t.Fatal(err)
	}

	result, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.FramesRun != stopAt+1 {
		t.Errorf("expected the in-flight frame to finish: %d frames run", result.FramesRun)
	}
}

func TestRunnerMetrics(t *testing.T) {
	cfg := testConfig()
	r, err := New(cfg, WithMetrics(metrics.Defaults(cfg.Dt, cfg.Boundary())...))
	if err != nil {
		t.Fatal(err)
	}
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"kinetic_energy", "max_speed", "max_overlap", "containment", "bodies"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s missing from result", name)
		}
	}
	if c := result.Metrics["containment"]; c < 0 || c > 1 {
		t.Errorf("containment must be a fraction, got %f", c)
	}
}

func TestRunnerNext(t *testing.T) {
	cfg := testConfig()
	cfg.Spawn.Rate = 0
	seen := 0
	r, err := New(cfg, WithObserver(ObserverFunc(func(int, float64, *physics.Store) { seen++ })))
	if err != nil {
		t.Fatal(err)
	}

	if err := r.SpawnAround(r2.Vec{X: 500, Y: 500}, 1, 0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := r.Next(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}

	if r.Frame() != 5 || seen != 5 {
		t.Errorf("expected 5 frames observed, got frame=%d seen=%d", r.Frame(), seen)
	}
	if r.Store().Len() != 1 {
		t.Errorf("emitter disabled, expected 1 body, got %d", r.Store().Len())
	}
	if b := r.Store().At(0); b.Current.Y <= 500 {
		t.Errorf("body should fall under gravity, y=%f", b.Current.Y)
	}
}

func TestEnsemble(t *testing.T) {
	cfg := testConfig()
	cfg.Frames = 20

	results, err := NewEnsemble(cfg, nil, 3, 100, logr.Discard()).Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	a := results[0].Frames[len(results[0].Frames)-1].Bodies[0]
	b := results[1].Frames[len(results[1].Frames)-1].Bodies[0]
	if a.Radius == b.Radius && a.Current == b.Current {
		t.Error("different seeds should produce different runs")
	}
}

func TestFrameError(t *testing.T) {
	err := &FrameError{Frame: 12, Time: 0.2, Wrapped: physics.ErrNonFinite}
	expected := "frame 12 (t=0.2000): physics: non-finite body position"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, physics.ErrNonFinite) {
		t.Error("FrameError should unwrap")
	}
}
