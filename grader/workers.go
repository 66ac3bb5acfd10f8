package grader

import "sync"

// runWorkers processes files on a pool of jobs workers and returns one result
// per file in completion order.
func runWorkers[T any](files []FileJob, jobs int, process func(FileJob) T) []T {
	if len(files) == 0 {
		return nil
	}

	results := make(chan T, 128)
	jobQueue := make(chan FileJob, 128)
	var wg sync.WaitGroup

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	worker := func() {
		defer wg.Done()
		for job := range jobQueue {
			results <- process(job)
		}
	}

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go worker()
	}

	go func() {
		for _, f := range files {
			jobQueue <- f
		}
		close(jobQueue)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]T, 0, len(files))
	for r := range results {
		all = append(all, r)
	}

	return all
}
