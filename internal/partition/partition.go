// Package partition implements greedy balanced multiway partitioning of
// weighted items, using the Longest-Processing-Time-first heuristic from
// multiprocessor scheduling.
package partition

import (
	"container/heap"
	"errors"
	"sort"
	"time"
)

// ErrInvalidBucketCount is returned when the requested bucket count is not positive.
var ErrInvalidBucketCount = errors.New("bucket count must be positive")

// bucketLoad tracks one bucket's running total inside the assignment heap.
type bucketLoad[T any] struct {
	items []T
	sum   time.Duration
	seq   int // bumped on every assignment; ties go to the oldest bucket
}

// loadHeap is a min-heap of buckets keyed by (running sum, last-assignment
// sequence). The sequence tie-break keeps bucket selection stable: among
// equally loaded buckets, the one untouched longest receives the next item.
type loadHeap[T any] []*bucketLoad[T]

func (h loadHeap[T]) Len() int { return len(h) }

func (h loadHeap[T]) Less(i, j int) bool {
	if h[i].sum != h[j].sum {
		return h[i].sum < h[j].sum
	}
	return h[i].seq < h[j].seq
}

func (h loadHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *loadHeap[T]) Push(x any) { *h = append(*h, x.(*bucketLoad[T])) }

func (h *loadHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// LPT distributes items across at most n buckets, minimizing the maximum
// bucket weight. Items are sorted by descending weight (stable, so equal
// weights keep their input order), the heaviest min(n, len(items)) items
// seed one bucket each, and every remaining item goes to the currently
// lightest bucket. The result is deterministic for a fixed input order, but
// the position of a bucket within the returned slice carries no meaning.
//
// LPT guarantees a makespan within (4/3 - 1/(3n)) of the optimum for
// nonnegative weights. Empty input yields zero buckets. Fewer than n items
// yield len(items) buckets, never empty placeholders. n < 1 is an error.
//
// Complexity: O(M log M) for the sort plus O(M log n) for assignment.
func LPT[T any](items []T, n int, weight func(T) time.Duration) ([][]T, error) {
	if n < 1 {
		return nil, ErrInvalidBucketCount
	}
	if len(items) == 0 {
		return nil, nil
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return weight(sorted[i]) > weight(sorted[j])
	})

	count := n
	if len(sorted) < count {
		count = len(sorted)
	}

	seq := 0
	loads := make(loadHeap[T], 0, count)
	for i := 0; i < count; i++ {
		loads = append(loads, &bucketLoad[T]{
			items: []T{sorted[i]},
			sum:   weight(sorted[i]),
			seq:   seq,
		})
		seq++
	}
	heap.Init(&loads)

	for _, item := range sorted[count:] {
		lightest := heap.Pop(&loads).(*bucketLoad[T])
		lightest.items = append(lightest.items, item)
		lightest.sum += weight(item)
		lightest.seq = seq
		seq++
		heap.Push(&loads, lightest)
	}

	buckets := make([][]T, 0, count)
	for _, load := range loads {
		buckets = append(buckets, load.items)
	}
	return buckets, nil
}
