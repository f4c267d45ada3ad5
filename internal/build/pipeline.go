package build

import (
	"context"
	"fmt"
	"sync"
)

// renderParallel runs fn for every hour using a pool of workers. Once any
// invocation fails or ctx is cancelled, no new hours are started and the
// first error is returned.
func renderParallel(ctx context.Context, hours []int, workers int, fn func(i, hour int) error) error {
	if len(hours) == 0 {
		return nil
	}
	if workers > len(hours) {
		workers = len(hours)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct{ i, hour int }
	jobs := make(chan job)
	errCh := make(chan error, 1)
	var once sync.Once
	var wg sync.WaitGroup

	fail := func(err error) {
		once.Do(func() {
			errCh <- err
			cancel()
		})
	}

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := fn(j.i, j.hour); err != nil {
					fail(fmt.Errorf("hour %02d: %w", j.hour, err))
					return
				}
			}
		}()
	}

send:
	for i, h := range hours {
		select {
		case jobs <- job{i, h}:
		case <-ctx.Done():
			break send
		}
	}
	close(jobs)
	wg.Wait()
	close(errCh)

	if err, ok := <-errCh; ok {
		return err
	}
	// Cancelled by the caller rather than by a failed hour.
	return ctx.Err()
}

// renderSequential runs fn for each hour in order.
func renderSequential(ctx context.Context, hours []int, fn func(i, hour int) error) error {
	for i, h := range hours {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(i, h); err != nil {
			return fmt.Errorf("hour %02d: %w", h, err)
		}
	}
	return nil
}
