package tournament

import (
	"sync"
)

// fanOut runs work once per worker in parallel and waits for all of them.
// Results are returned in worker order regardless of completion order.
func fanOut[T any](workers int, work func(worker int) T) []T {
	results := make([]T, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = work(i)
		}()
	}
	wg.Wait()

	return results
}
