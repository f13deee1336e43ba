package visit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGuard_FirstVisitOnly(t *testing.T) {
	guard := NewMemoryGuard()
	ctx := context.Background()

	assert.True(t, guard.TryVisit(ctx, "https://docs.test/a"))
	assert.False(t, guard.TryVisit(ctx, "https://docs.test/a"))
	assert.True(t, guard.TryVisit(ctx, "https://docs.test/b"))
}

func TestMemoryGuard_AtomicUnderRace(t *testing.T) {
	guard := NewMemoryGuard()
	ctx := context.Background()

	const racers = 100
	var admitted atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.TryVisit(ctx, "https://docs.test/contended") {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
}
