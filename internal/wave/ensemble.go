package wave

import "sync"

// Ensemble runs Setup once per seed concurrently and returns the states in
// seed order. Every run owns its random source.
func Ensemble(cfg Config, p Params, seeds []int64, opts ...Option) ([]*State, error) {
	states := make([]*State, len(seeds))
	errs := make([]error, len(seeds))

	var wg sync.WaitGroup
	for i, seed := range seeds {
		wg.Add(1)
		go func(idx int, seed int64) {
			defer wg.Done()

			c := cfg
			c.PhaseSeed = seed
			runOpts := append(append([]Option(nil), opts...), WithRand(nil))
			states[idx], errs[idx] = Setup(c, p, runOpts...)
		}(i, seed)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return states, nil
}
