package jobqueue

import (
	"context"
	"sort"
	"testing"
)

func TestPoolRunProcessesAllJobs(t *testing.T) {
	pool := &Pool[int, int]{
		Workers: 4,
		Handle: func(ctx context.Context, job int) int {
			return job * 2
		},
	}
	jobs := []int{1, 2, 3, 4, 5}
	results := pool.Run(context.Background(), jobs)
	sort.Ints(results)
	want := []int{2, 4, 6, 8, 10}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("results = %v, want %v", results, want)
		}
	}
}

func TestLoadGovernorDisabledByDefault(t *testing.T) {
	g := NewLoadGovernor(0)
	if !g.Allow() {
		t.Fatalf("zero max load should never throttle")
	}
}

func TestLoadGovernorThrottles(t *testing.T) {
	g := &LoadGovernor{MaxLoad: 1.0, readLoad: func() (float64, error) { return 5.0, nil }}
	if g.Allow() {
		t.Fatalf("expected governor to refuse scheduling under high load")
	}
}
