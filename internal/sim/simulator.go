package sim

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/NotAF0e/Gravitonic/internal/automation"
	"github.com/NotAF0e/Gravitonic/internal/config"
	"github.com/NotAF0e/Gravitonic/internal/metrics"
	"github.com/NotAF0e/Gravitonic/internal/physics"
	"github.com/NotAF0e/Gravitonic/internal/spawn"
)

// Runner is the frame-paced caller around a physics solver. Everything that
// mutates the store from outside (scripted events, emitters) happens between
// Advance calls.
type Runner struct {
	cfg       *config.Config
	solver    *physics.Solver
	spawner   *spawn.Spawner
	player    *automation.Player
	settings  physics.Settings
	metrics   []metrics.Metric
	observers []Observer
	log       logr.Logger
	spawned   int
	next      int
	validate  bool
}

type Option func(*Runner)

func WithLogger(l logr.Logger) Option {
	return func(r *Runner) { r.log = l }
}

func WithScenario(s *automation.Scenario) Option {
	return func(r *Runner) { r.player = automation.NewPlayer(s) }
}

func WithMetrics(ms ...metrics.Metric) Option {
	return func(r *Runner) { r.metrics = append(r.metrics, ms...) }
}

func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// WithoutValidation skips the per-frame NaN/Inf check.
func WithoutValidation() Option {
	return func(r *Runner) { r.validate = false }
}

func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:      cfg,
		solver:   physics.NewSolver(physics.NewStore()),
		spawner:  spawn.New(uint64(cfg.Seed), cfg.Spawn),
		player:   automation.NewPlayer(nil),
		settings: cfg.Settings(),
		log:      logr.Discard(),
		validate: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runner) Store() *physics.Store      { return r.solver.Store() }
func (r *Runner) Settings() physics.Settings { return r.settings }
func (r *Runner) Contacts() int              { return r.solver.Contacts() }
func (r *Runner) Frame() int                 { return r.next }

// SpawnAround implements automation.Target.
func (r *Runner) SpawnAround(origin r2.Vec, count int, jitter float64) error {
	added, err := r.spawner.Emit(r.Store(), count, origin, jitter)
	r.spawned += added
	if added < count {
		r.log.V(1).Info("spawn capped", "requested", count, "added", added, "bodies", r.Store().Len())
	}
	return err
}

func (r *Runner) ToggleCenterGravity() {
	r.settings = r.settings.ToggleCenter()
	r.log.Info("gravity mode", "model", r.settings.GravityModel().Name())
}

func (r *Runner) SetCenterGravity(enabled bool) {
	r.settings.CenterGravity = enabled
	r.log.Info("gravity mode", "model", r.settings.GravityModel().Name())
}

func (r *Runner) SetGravity(g r2.Vec) {
	r.settings.Gravity = g
	r.log.Info("gravity vector", "x", g.X, "y", g.Y)
}

// Run advances cfg.Frames frames. Cancellation is only observed between
// frames; a frame in progress always completes.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	frames := r.cfg.Frames
	result := &Result{
		Counts:  make([]int, 0, frames),
		Energy:  make([]float64, 0, frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}
	energy := metrics.NewKineticEnergy(r.cfg.Dt)

	frameTime := r.cfg.Dt * float64(r.cfg.SubSteps)
	t := 0.0
	r.log.Info("run started", "name", r.cfg.Name, "frames", frames, "subSteps", r.cfg.SubSteps, "arena", r.settings.Bounds.Shape())

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		if err := r.stepFrame(i); err != nil {
			ferr := &FrameError{Frame: i, Time: t, Wrapped: err}
			result.Errors = append(result.Errors, ferr)
			r.finish(result)
			return result, ferr
		}
		t += frameTime
		result.FramesRun++

		store := r.Store()
		if r.validate {
			if err := store.Validate(); err != nil {
				ferr := &FrameError{Frame: i, Time: t, Wrapped: err}
				result.Errors = append(result.Errors, ferr)
				r.log.Error(err, "simulation diverged", "frame", i)
				break
			}
		}

		energy.Observe(store, i)
		for _, m := range r.metrics {
			m.Observe(store, i)
		}
		for _, obs := range r.observers {
			obs.OnFrame(i, t, store)
		}
		result.Counts = append(result.Counts, store.Len())
		result.Energy = append(result.Energy, energy.Last())

		if r.shouldRecord(i, frames) {
			result.Frames = append(result.Frames, Frame{Index: i, Time: t, Bodies: store.Snapshot()})
		}
		r.log.V(2).Info("frame", "index", i, "bodies", store.Len(), "contacts", r.solver.Contacts())
	}

	r.finish(result)
	r.log.Info("run finished", "frames", result.FramesRun, "bodies", r.Store().Len(), "spawned", result.Spawned)
	return result, nil
}

// Next advances a single frame for callers that pace frames themselves,
// such as the live view. It shares the scenario clock with nothing else, so
// do not mix it with Run on the same runner.
func (r *Runner) Next() error {
	i := r.next
	r.next++
	t := float64(r.next) * r.cfg.Dt * float64(r.cfg.SubSteps)

	if err := r.stepFrame(i); err != nil {
		return &FrameError{Frame: i, Time: t, Wrapped: err}
	}
	if r.validate {
		if err := r.Store().Validate(); err != nil {
			return &FrameError{Frame: i, Time: t, Wrapped: err}
		}
	}
	for _, m := range r.metrics {
		m.Observe(r.Store(), i)
	}
	for _, obs := range r.observers {
		obs.OnFrame(i, t, r.Store())
	}
	return nil
}

// stepFrame applies due events, emits this frame's bodies and advances.
func (r *Runner) stepFrame(i int) error {
	if _, err := r.player.Apply(i, r); err != nil {
		return err
	}
	if rate := r.cfg.Spawn.Rate; rate > 0 {
		if err := r.SpawnAround(r.cfg.Spawn.Origin.R2(), rate, r.cfg.Spawn.Jitter); err != nil {
			return fmt.Errorf("emit: %w", err)
		}
	}
	return r.solver.Advance(r.cfg.Dt, r.cfg.SubSteps, r.settings)
}

func (r *Runner) shouldRecord(i, frames int) bool {
	every := r.cfg.RecordEvery
	if every <= 0 {
		return false
	}
	return i%every == 0 || i == frames-1
}

func (r *Runner) finish(result *Result) {
	result.SubSteps = r.solver.SubSteps()
	result.Spawned = r.spawned
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Metrics["bodies"] = float64(r.Store().Len())
}
