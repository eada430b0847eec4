package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlocking_RejectsZeroCapacity(t *testing.T) {
	require.Panics(t, func() { NewBlocking[int](0) })
	require.Panics(t, func() { NewBlocking[int](-1) })
}

func TestBlocking_CapacityInvariant(t *testing.T) {
	q := NewBlocking[int](4)

	for i := 0; i < 4; i++ {
		require.True(t, q.TryPush(i), "push %d should fit", i)
	}
	assert.False(t, q.TryPush(4), "push beyond capacity must fail, not block")
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, 4, q.Cap())

	// One pop makes room for exactly one more push.
	assert.Equal(t, 0, q.Pop())
	assert.True(t, q.TryPush(4))
	assert.False(t, q.TryPush(5))
}

func TestBlocking_FIFO(t *testing.T) {
	q := NewBlocking[string](8)

	pushed := []string{"a", "b", "c", "d", "e"}
	for _, s := range pushed {
		require.True(t, q.TryPush(s))
	}

	var popped []string
	for range pushed {
		popped = append(popped, q.Pop())
	}
	assert.Equal(t, pushed, popped)
	assert.True(t, q.Empty())
}

func TestBlocking_FIFOAcrossWraparound(t *testing.T) {
	q := NewBlocking[int](3)

	// Cycle more items than the capacity so head wraps.
	next := 0
	for i := 0; i < 10; i++ {
		require.True(t, q.TryPush(i))
		assert.Equal(t, next, q.Pop())
		next++
	}

	require.True(t, q.TryPush(100))
	require.True(t, q.TryPush(101))
	assert.Equal(t, 100, q.Pop())
	assert.Equal(t, 101, q.Pop())
}

func TestBlocking_PopBlocksUntilPush(t *testing.T) {
	q := NewBlocking[int](2)

	got := make(chan int, 1)
	go func() {
		got <- q.Pop()
	}()

	// The consumer must still be blocked with nothing pushed.
	select {
	case v := <-got:
		t.Fatalf("Pop returned %d from an empty queue", v)
	case <-time.After(20 * time.Millisecond):
	}

	require.True(t, q.TryPush(42))

	select {
	case v := <-got:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after push")
	}
}

func TestBlocking_ConcurrentProducersRespectCapacity(t *testing.T) {
	const capacity = 8
	q := NewBlocking[int](capacity)

	var wg sync.WaitGroup
	var accepted sync.Map
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if q.TryPush(p*100 + i) {
					accepted.Store(p*100+i, true)
				}
			}
		}(p)
	}
	wg.Wait()

	count := 0
	accepted.Range(func(_, _ any) bool {
		count++
		return true
	})
	require.Equal(t, capacity, count, "exactly capacity pushes may succeed without pops")
	require.Equal(t, capacity, q.Len())

	// Everything popped must be something a producer pushed, each at most once.
	for i := 0; i < capacity; i++ {
		v := q.Pop()
		_, ok := accepted.LoadAndDelete(v)
		assert.True(t, ok, "popped %d which was not accepted (or popped twice)", v)
	}
	assert.True(t, q.Empty())
}

func TestBlocking_EmptySnapshot(t *testing.T) {
	q := NewBlocking[int](2)
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())

	q.TryPush(1)
	assert.False(t, q.Empty())

	q.Pop()
	assert.True(t, q.Empty())
}
