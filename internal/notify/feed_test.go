package notify

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_Bounded(t *testing.T) {
	feed := NewFeed(100)

	for i := 0; i < 150; i++ {
		feed.Push(fmt.Sprintf("entry %d", i))
	}

	snapshot := feed.Snapshot()
	require.Len(t, snapshot, 100)
	// The last 100 pushes survive, in insertion order.
	assert.Equal(t, "entry 50", snapshot[0])
	assert.Equal(t, "entry 149", snapshot[99])
}

func TestFeed_SnapshotDoesNotConsume(t *testing.T) {
	feed := NewFeed(10)
	feed.Push("a")
	feed.Push("b")

	assert.Equal(t, []string{"a", "b"}, feed.Snapshot())
	assert.Equal(t, []string{"a", "b"}, feed.Snapshot())
	assert.Equal(t, 2, feed.Len())
}

func TestFeed_SnapshotIsACopy(t *testing.T) {
	feed := NewFeed(10)
	feed.Push("a")

	snapshot := feed.Snapshot()
	snapshot[0] = "mutated"
	assert.Equal(t, []string{"a"}, feed.Snapshot())
}

func TestFeed_ConcurrentPushes(t *testing.T) {
	feed := NewFeed(100)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				feed.Push(fmt.Sprintf("worker %d entry %d", w, i))
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, feed.Snapshot(), 100)
}

func TestFeed_DefaultCapacity(t *testing.T) {
	feed := NewFeed(0)
	for i := 0; i < DefaultFeedCapacity+1; i++ {
		feed.Push("x")
	}
	assert.Equal(t, DefaultFeedCapacity, feed.Len())
}
