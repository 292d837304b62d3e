package partition

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"
)

func identity(d time.Duration) time.Duration { return d }

func durations(values ...int64) []time.Duration {
	items := make([]time.Duration, 0, len(values))
	for _, v := range values {
		items = append(items, time.Duration(v))
	}
	return items
}

func bucketSums(buckets [][]time.Duration) []int64 {
	sums := make([]int64, 0, len(buckets))
	for _, b := range buckets {
		var sum time.Duration
		for _, item := range b {
			sum += item
		}
		sums = append(sums, int64(sum))
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i] < sums[j] })
	return sums
}

func TestLPT(t *testing.T) {
	t.Run("greedy seed then fill example", func(t *testing.T) {
		buckets, err := LPT(durations(4, 5, 2, 8, 2), 2, identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sums := bucketSums(buckets)
		if len(sums) != 2 || sums[0] != 10 || sums[1] != 11 {
			t.Errorf("expected bucket sums 10 and 11, got %v", sums)
		}
	})

	t.Run("single bucket gets everything", func(t *testing.T) {
		buckets, err := LPT(durations(7, 1), 1, identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(buckets) != 1 || len(buckets[0]) != 2 {
			t.Fatalf("expected one bucket with both items, got %v", buckets)
		}
		if sums := bucketSums(buckets); sums[0] != 8 {
			t.Errorf("expected sum 8, got %v", sums)
		}
	})

	t.Run("rejects non-positive bucket counts", func(t *testing.T) {
		for _, n := range []int{0, -1, -10} {
			if _, err := LPT(durations(1, 2), n, identity); !errors.Is(err, ErrInvalidBucketCount) {
				t.Errorf("n=%d: expected ErrInvalidBucketCount, got %v", n, err)
			}
		}
	})

	t.Run("empty input yields zero buckets", func(t *testing.T) {
		buckets, err := LPT(nil, 3, identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(buckets) != 0 {
			t.Errorf("expected no buckets, got %v", buckets)
		}
	})

	t.Run("more buckets than items yields one bucket per item", func(t *testing.T) {
		buckets, err := LPT(durations(3, 1), 5, identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
		for i, b := range buckets {
			if len(b) != 1 {
				t.Errorf("bucket %d: expected exactly one item, got %d", i, len(b))
			}
		}
	})

	t.Run("zero weights are legal", func(t *testing.T) {
		buckets, err := LPT(durations(0, 0, 5, 0), 2, identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		total := 0
		for _, b := range buckets {
			total += len(b)
		}
		if total != 4 {
			t.Errorf("expected all 4 items placed, got %d", total)
		}
	})

	t.Run("deterministic for a fixed input order", func(t *testing.T) {
		items := durations(6, 3, 3, 3, 2, 2, 1)
		first, err := LPT(items, 3, identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 5; i++ {
			again, err := LPT(items, 3, identity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(again) != len(first) {
				t.Fatalf("bucket count changed between runs")
			}
			firstSums := bucketSums(first)
			againSums := bucketSums(again)
			for j := range firstSums {
				if firstSums[j] != againSums[j] {
					t.Fatalf("sums changed between runs: %v vs %v", firstSums, againSums)
				}
			}
		}
	})
}

func TestLPT_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		count := 1 + rng.Intn(20)
		n := 1 + rng.Intn(6)
		items := make([]time.Duration, count)
		var total time.Duration
		for i := range items {
			items[i] = time.Duration(rng.Intn(10000))
			total += items[i]
		}

		buckets, err := LPT(items, n, identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Every item appears in exactly one bucket: compare sorted multisets.
		var placed []time.Duration
		var placedTotal time.Duration
		for _, b := range buckets {
			for _, item := range b {
				placed = append(placed, item)
				placedTotal += item
			}
		}
		if len(placed) != len(items) {
			t.Fatalf("trial %d: %d items in, %d items out", trial, len(items), len(placed))
		}
		if placedTotal != total {
			t.Fatalf("trial %d: weight sum %v in, %v out", trial, total, placedTotal)
		}

		want := append([]time.Duration(nil), items...)
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
		sort.Slice(placed, func(i, j int) bool { return placed[i] < placed[j] })
		for i := range want {
			if want[i] != placed[i] {
				t.Fatalf("trial %d: multiset mismatch at %d: %v vs %v", trial, i, want[i], placed[i])
			}
		}
	}
}

// bruteForceMakespan finds the optimal makespan by exhaustively assigning
// every item to every bucket. Only feasible for tiny instances.
func bruteForceMakespan(items []time.Duration, n int) time.Duration {
	best := time.Duration(1<<62 - 1)
	sums := make([]time.Duration, n)

	var assign func(i int)
	assign = func(i int) {
		if i == len(items) {
			var max time.Duration
			for _, s := range sums {
				if s > max {
					max = s
				}
			}
			if max < best {
				best = max
			}
			return
		}
		for b := 0; b < n; b++ {
			sums[b] += items[i]
			assign(i + 1)
			sums[b] -= items[i]
		}
	}
	assign(0)
	return best
}

func TestLPT_ApproximationBound(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 40; trial++ {
		n := 2 + rng.Intn(2) // 2 or 3 buckets
		count := n + rng.Intn(6)
		items := make([]time.Duration, count)
		for i := range items {
			items[i] = time.Duration(1 + rng.Intn(100))
		}

		buckets, err := LPT(items, n, identity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var makespan time.Duration
		for _, b := range buckets {
			var sum time.Duration
			for _, item := range b {
				sum += item
			}
			if sum > makespan {
				makespan = sum
			}
		}

		optimal := bruteForceMakespan(items, n)

		// LPT bound: makespan <= (4/3 - 1/(3n)) * optimal.
		// Compare in integers: 3n*makespan <= (4n-1)*optimal.
		if int64(makespan)*int64(3*n) > int64(optimal)*int64(4*n-1) {
			t.Errorf("trial %d: makespan %v exceeds LPT bound for optimal %v (n=%d, items=%v)",
				trial, makespan, optimal, n, items)
		}
	}
}
