package sim

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"github.com/NotAF0e/Gravitonic/internal/automation"
	"github.com/NotAF0e/Gravitonic/internal/config"
	"github.com/NotAF0e/Gravitonic/internal/metrics"
)

// Ensemble runs independent copies of a configuration with consecutive
// seeds. Each run owns its own store and solver; nothing is shared.
type Ensemble struct {
	base      *config.Config
	scenario  *automation.Scenario
	numRuns   int
	seedStart int64
	log       logr.Logger
}

func NewEnsemble(cfg *config.Config, scenario *automation.Scenario, numRuns int, seedStart int64, log logr.Logger) *Ensemble {
	return &Ensemble{base: cfg, scenario: scenario, numRuns: numRuns, seedStart: seedStart, log: log}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.base.Clone()
			cfg.Seed = e.seedStart + int64(idx)

			r, err := New(cfg,
				WithScenario(e.scenario),
				WithMetrics(metrics.Defaults(cfg.Dt, cfg.Boundary())...),
				WithLogger(e.log.WithValues("run", idx)),
			)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = r.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
