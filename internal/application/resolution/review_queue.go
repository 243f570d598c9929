package resolution

import (
	"sync"
	"time"

	domain "github.com/skubridge/backend/internal/domain/resolution"
)

// ReviewQueue is a bounded in-memory queue of results awaiting manual
// confirmation. When full, the oldest entries are dropped; the queue is
// a working set for reviewers, not an audit log.
type ReviewQueue struct {
	mu    sync.Mutex
	items []ReviewItem
	cap   int
}

// NewReviewQueue creates a queue holding at most capacity items
func NewReviewQueue(capacity int) *ReviewQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &ReviewQueue{cap: capacity}
}

// Push appends a result, evicting the oldest entry when full
func (q *ReviewQueue) Push(result *domain.ResolutionResult) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, ReviewItem{QueuedAt: time.Now(), Result: result})
	if len(q.items) > q.cap {
		q.items = q.items[len(q.items)-q.cap:]
	}
}

// Items returns entries newest first, up to limit (<= 0 means all)
func (q *ReviewQueue) Items(limit int) []ReviewItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]ReviewItem, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, q.items[i])
	}
	return out
}

// Len returns the current queue depth
func (q *ReviewQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
