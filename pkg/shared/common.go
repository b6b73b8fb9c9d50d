package shared

import (
	"sync"

	"github.com/spf13/pflag"
)

// ForEveryWithBoundedGoroutines runs f for every value on at most limit
// concurrent goroutines and blocks until all of them have finished.
func ForEveryWithBoundedGoroutines[T any](limit int, values []T, f func(i int, value T)) {
	if limit < 1 {
		limit = 1
	}
	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, value := range values {
		guard <- struct{}{} // would block if guard channel is already filled
		wg.Add(1)
		go func(i int, value T) {
			defer wg.Done()
			f(i, value)
			<-guard
		}(i, value)
	}
	wg.Wait()
}

// HasFlags reports whether any flag in the set was explicitly changed.
func HasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			changed = true
		}
	})
	return changed
}
