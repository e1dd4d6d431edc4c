package sim

import (
	"context"
	"sync"
)

// Factory builds an independent simulator for one seed.
type Factory func(seed int64) (*Simulator, error)

// Ensemble runs independent simulations concurrently, one goroutine each.
// Every run owns its own store, attractor and driver.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

// Seeds returns the seed of each run in order: consecutive values from the
// start seed, skipping 0 since that asks for a time-based seed.
func (e *Ensemble) Seeds() []int64 {
	seeds := make([]int64, 0, e.numRuns)
	for s := e.seedStart; len(seeds) < e.numRuns; s++ {
		if s == 0 {
			continue
		}
		seeds = append(seeds, s)
	}
	return seeds
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	seeds := e.Seeds()
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := e.factory(seeds[idx])
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
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
