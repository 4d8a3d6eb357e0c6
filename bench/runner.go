package bench

// BenchFunc is one benchmark instance. Instances launched together must not
// share mutable state; every operation in this package allocates its own.
type BenchFunc func() (float64, error)

type taskResult struct {
	elapsed float64
	err     error
}

// RunConcurrent launches n instances of fn on separate goroutines and
// collects each result as it becomes available. The returned slice is in
// completion order, fastest finisher first, which deliberately surfaces
// scheduling variance instead of hiding it behind launch order. A task
// error aborts the whole run after the remaining tasks drain; there is no
// partial-result reporting.
func RunConcurrent(n int, fn BenchFunc) ([]float64, error) {
	results := make(chan taskResult, n)
	for i := 0; i < n; i++ {
		go func() {
			elapsed, err := fn()
			results <- taskResult{elapsed: elapsed, err: err}
		}()
	}
	elapsedTimes := make([]float64, 0, n)
	var firstErr error
	for i := 0; i < n; i++ {
		result := <-results
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		elapsedTimes = append(elapsedTimes, result.elapsed)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return elapsedTimes, nil
}
