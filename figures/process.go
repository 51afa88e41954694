package figures

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Aggregate maps fn over independent result files with a bounded worker
// pool. Each file is parsed into at most one value; fn returning ok=false
// skips the file, a non-nil error cancels the remaining work. Output order
// is unspecified since callers sort before plotting anyway.
func Aggregate[T any](ctx context.Context, paths []string, workers int, fn func(ctx context.Context, path string) (T, bool, error)) ([]T, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu  sync.Mutex
		out []T
	)
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(workers)
	for _, path := range paths {
		path := path
		errGrp.Go(func() error {
			if err := dCtx.Err(); err != nil {
				return errors.Wrapf(err, "aggregate %s", path)
			}
			v, ok, err := fn(dCtx, path)
			if err != nil {
				return errors.Wrapf(err, "aggregate %s", path)
			}
			if !ok {
				return nil
			}
			mu.Lock()
			out = append(out, v)
			mu.Unlock()
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
