package shared

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestForEveryWithBoundedGoroutinesVisitsEveryValue(t *testing.T) {
	values := []string{"a", "b", "c", "d", "e"}

	var mu sync.Mutex
	visited := make(map[string]int)
	ForEveryWithBoundedGoroutines(2, values, func(i int, value string) {
		mu.Lock()
		visited[value] = i
		mu.Unlock()
	})

	assert.Len(t, visited, len(values))
	for i, value := range values {
		assert.Equal(t, i, visited[value])
	}
}

func TestForEveryWithBoundedGoroutinesHonorsLimit(t *testing.T) {
	const limit = 3
	var active, peak int32

	ForEveryWithBoundedGoroutines(limit, make([]int, 32), func(int, int) {
		now := atomic.AddInt32(&active, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
				break
			}
		}
		atomic.AddInt32(&active, -1)
	})

	assert.LessOrEqual(t, peak, int32(limit))
}

func TestForEveryWithBoundedGoroutinesZeroLimit(t *testing.T) {
	count := 0
	ForEveryWithBoundedGoroutines(0, []int{1, 2, 3}, func(int, int) {
		count++ // limit clamps to 1, so this runs sequentially
	})
	assert.Equal(t, 3, count)
}

func TestHasFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", 2, "")
	flags.String("results-dir", "", "")

	assert.False(t, HasFlags(flags))

	assert.NoError(t, flags.Set("workers", "4"))
	assert.True(t, HasFlags(flags))
}
