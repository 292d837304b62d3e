package partition

import (
	"sort"
	"time"

	"tsplit/internal/domain"
)

// Split partitions a resolved weight map into at most n buckets. Items are
// ordered by name before the LPT pass so the result does not depend on map
// iteration order.
func Split(weights map[string]time.Duration, n int) (domain.Partition, error) {
	items := make([]domain.WorkItem, 0, len(weights))
	for name, weight := range weights {
		items = append(items, domain.WorkItem{Name: name, Weight: weight})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	buckets, err := LPT(items, n, func(item domain.WorkItem) time.Duration {
		return item.Weight
	})
	if err != nil {
		return nil, err
	}

	result := make(domain.Partition, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, domain.Bucket{Items: b})
	}
	return result, nil
}
