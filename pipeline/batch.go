package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/core"
)

// RunBatch runs p over independent buffers with at most workers goroutines.
// workers <= 0 selects runtime.GOMAXPROCS(0). Results are index-aligned with
// bufs; every buffer is attempted and the failures are joined. A buffer
// listed twice fails the whole batch with core.ErrInvalidBuffer before any
// work starts.
func RunBatch(ctx context.Context, p *Pipeline, bufs []*buffer.Buffer, workers int) ([]Result, error) {
	seen := make(map[*buffer.Buffer]int, len(bufs))

	for i, b := range bufs {
		if b == nil {
			continue
		}

		if first, dup := seen[b]; dup {
			return nil, fmt.Errorf("buffer %d repeats buffer %d: %w", i, first, core.ErrInvalidBuffer)
		}

		seen[b] = i
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	workers = min(workers, len(bufs))

	results := make([]Result, len(bufs))
	errs := make([]error, len(bufs))
	jobs := make(chan int)

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				res, err := p.Run(ctx, bufs[i])
				results[i] = res

				if err != nil {
					errs[i] = fmt.Errorf("buffer %d: %w", i, err)
				}
			}
		}()
	}

	for i := range bufs {
		jobs <- i
	}

	close(jobs)
	wg.Wait()

	return results, errors.Join(errs...)
}
