package advect

import (
	"runtime"
	"sync"
)

// parallelRange executes fn for each i in [start,end), splitting the range
// among the available CPUs. Each call touches a disjoint slice of the
// output field, so no synchronization beyond the final wait is needed.
func parallelRange(start, end int, fn func(i int)) {
	total := end - start
	if total <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > total {
		workers = total
	}
	chunk := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		s := start + w*chunk
		e := s + chunk
		if e > end {
			e = end
		}
		if s >= end {
			break
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				fn(i)
			}
		}(s, e)
	}
	wg.Wait()
}
