package bench

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// Sweep runs scenarios across workers goroutines and returns the results in
// input order. Per-tick records are not streamed; each Result still carries
// them. The first error cancels the remaining work.
func Sweep(ctx context.Context, scenarios []Scenario, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		idx int
		sc  Scenario
	}
	type outcome struct {
		idx int
		res Result
		err error
	}

	jobs := make(chan job)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := Run(ctx, j.sc, nil)
				results <- outcome{idx: j.idx, res: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i, sc := range scenarios {
			select {
			case jobs <- job{idx: i, sc: sc}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		all      []outcome
		firstErr error
	)
	for o := range results {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
				cancel()
			}
			continue
		}
		slog.Debug("scenario finished", "name", o.res.Name, "summary", o.res.Summary)
		all = append(all, o)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(all, func(i, j int) bool { return all[i].idx < all[j].idx })
	out := make([]Result, len(all))
	for i, o := range all {
		out[i] = o.res
	}
	return out, nil
}
