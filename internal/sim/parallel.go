package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/billiards/internal/config"
	"github.com/san-kum/billiards/internal/dynamo"
)

// Ensemble runs independent tables, one per seed, in parallel. Each table is
// still driven by a single goroutine.
type Ensemble struct {
	base      *config.Config
	numRuns   int
	seedStart int64
	metrics   func(cfg *config.Config) []dynamo.Metric
}

// NewEnsemble prepares numRuns copies of base seeded seedStart, seedStart+1,
// and so on. metrics builds a fresh metric set for each run and may be nil.
func NewEnsemble(base *config.Config, numRuns int, seedStart int64, metrics func(cfg *config.Config) []dynamo.Metric) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, runCfg dynamo.Config) ([]*dynamo.Result, error) {
	if e.numRuns < 0 {
		return nil, fmt.Errorf("%w: ensemble needs a non-negative run count, got %d", dynamo.ErrParameterBounds, e.numRuns)
	}

	results := make([]*dynamo.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.base.Clone()
			cfgCopy.Seed = e.seedStart + int64(idx)

			s, err := FromConfig(cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics(cfgCopy) {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, runCfg)
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
