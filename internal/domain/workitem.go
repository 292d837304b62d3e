package domain

import "time"

// WorkItem is a single test file with its estimated execution cost.
// Identity is the file's base name only, not its full path.
type WorkItem struct {
	Name   string        // Base name of the test file
	Weight time.Duration // Estimated execution time
}

// Bucket is one group in a partition, corresponding to one CI worker's
// share of the test files.
type Bucket struct {
	Items []WorkItem
}

// Total returns the summed weight of all items in the bucket.
func (b Bucket) Total() time.Duration {
	var sum time.Duration
	for _, item := range b.Items {
		sum += item.Weight
	}
	return sum
}

// Names returns the identifiers of all items in the bucket.
func (b Bucket) Names() []string {
	names := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		names = append(names, item.Name)
	}
	return names
}

// Partition is an ordered sequence of buckets. Only the bucket contents and
// totals are meaningful; the position of a bucket within the slice is not
// stable across runs.
type Partition []Bucket

// Makespan returns the largest bucket total, the quantity the partitioner
// minimizes.
func (p Partition) Makespan() time.Duration {
	var max time.Duration
	for _, b := range p {
		if t := b.Total(); t > max {
			max = t
		}
	}
	return max
}

// TotalWeight returns the summed weight across all buckets.
func (p Partition) TotalWeight() time.Duration {
	var sum time.Duration
	for _, b := range p {
		sum += b.Total()
	}
	return sum
}
