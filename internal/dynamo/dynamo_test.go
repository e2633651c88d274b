package dynamo

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Frame: 12, CT: 1.5, Wrapped: ErrInvalidState}
	expected := "frame 12 (ct=1.5000): dynamo: invalid state (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("expected errors.Is to see wrapped sentinel")
	}
}

func TestParallelFor(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		minChunk int
		workers  int
	}{
		{"inline", 10, 100, 4},
		{"single worker", 1000, 10, 1},
		{"split", 1000, 10, 4},
		{"uneven", 1001, 7, 3},
		{"few items", 5, 1, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make([]int32, tt.n)
			ParallelFor(tt.n, tt.minChunk, tt.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&seen[i], 1)
				}
			})
			for i, v := range seen {
				if v != 1 {
					t.Fatalf("index %d visited %d times", i, v)
				}
			}
		})
	}
}
