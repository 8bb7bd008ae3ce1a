package layer

import (
	"runtime"
	"sync"
)

// parallelThreshold is the batch size from which per-sample work is spread
// over worker goroutines.
var parallelThreshold = 64

// forEachSampleChunk calls fn over contiguous sample ranges covering [0, n).
// fn must only write state owned by the samples in its range.
func forEachSampleChunk(n int, fn func(start, end int)) {
	numWorkers := min(n, runtime.NumCPU())
	if n < parallelThreshold || numWorkers <= 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + numWorkers - 1) / numWorkers
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start < end {
			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				fn(start, end)
			}(start, end)
		}
	}
	wg.Wait()
}
