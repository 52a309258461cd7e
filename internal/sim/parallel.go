package sim

import (
	"context"
	"sync"
)

// Factory builds an independent simulator for run idx. Controllers are not
// safe for concurrent use, so every run gets its own scene.
type Factory func(idx int) (*Simulator, Input, error)

type Ensemble struct {
	factory Factory
	numRuns int
}

func NewEnsemble(factory Factory, numRuns int) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, input, err := e.factory(idx)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, cfg, input)
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
