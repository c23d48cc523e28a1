package notify

import (
	"sync"

	"inspection-service/internal/metrics"
)

// DefaultFeedCapacity bounds the in-memory activity feed.
const DefaultFeedCapacity = 100

// Feed is a process-wide, concurrency-safe FIFO of formatted notification
// text. It acts as a ring-buffer activity log for a polling UI, not as a
// delivery-guaranteed queue: once full, the oldest entries are evicted.
type Feed struct {
	mu       sync.Mutex
	entries  []string
	capacity int
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultFeedCapacity
	}
	return &Feed{capacity: capacity}
}

// Push appends text and evicts from the front until the feed fits its
// capacity again.
func (f *Feed) Push(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, text)
	if excess := len(f.entries) - f.capacity; excess > 0 {
		f.entries = append([]string(nil), f.entries[excess:]...)
	}
	metrics.FeedEntries.Set(float64(len(f.entries)))
}

// Snapshot returns the current contents, most recent last, without
// consuming them.
func (f *Feed) Snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len reports the current number of entries.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}
