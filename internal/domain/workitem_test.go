package domain

import (
	"testing"
	"time"
)

func TestBucket_Total(t *testing.T) {
	bucket := Bucket{Items: []WorkItem{
		{Name: "a.js", Weight: 3 * time.Second},
		{Name: "b.js", Weight: 2 * time.Second},
		{Name: "c.js", Weight: 0},
	}}

	if bucket.Total() != 5*time.Second {
		t.Errorf("expected total 5s, got %v", bucket.Total())
	}
}

func TestPartition_Makespan(t *testing.T) {
	part := Partition{
		{Items: []WorkItem{{Name: "a.js", Weight: 4 * time.Second}}},
		{Items: []WorkItem{{Name: "b.js", Weight: 7 * time.Second}}},
	}

	if part.Makespan() != 7*time.Second {
		t.Errorf("expected makespan 7s, got %v", part.Makespan())
	}
	if part.TotalWeight() != 11*time.Second {
		t.Errorf("expected total 11s, got %v", part.TotalWeight())
	}

	var empty Partition
	if empty.Makespan() != 0 {
		t.Errorf("empty partition makespan should be 0, got %v", empty.Makespan())
	}
}
