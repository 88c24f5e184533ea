// Package retry retries connection establishment with exponential backoff.
//
// Only opening the pool is retried. Once a load has started, a failure
// aborts the run so a half-written file is never replayed.
//
//	executor := retry.NewExecutor(
//	    retry.NewPostgreSQLErrorClassifier(),
//	    retry.NewExponentialBackoff(3),
//	)
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
package retry
