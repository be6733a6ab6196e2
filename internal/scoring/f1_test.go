package scoring

import (
	"math"
	"testing"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestComputeMetrics(t *testing.T) {
	cases := []struct {
		name  string
		truth []int
		preds []int
		want  float64
	}{
		{"perfect predictions", []int{0, 1, 1, 2}, []int{0, 1, 1, 2}, 1.0},
		{"one miss", []int{0, 1, 1}, []int{0, 1, 0}, 2.0 / 3.0},
		{"all positive predictions", []int{0, 0, 1}, []int{1, 1, 1}, 1.0 / 6.0},
		{"prediction-only class has zero weight", []int{1, 1}, []int{1, 2}, 2.0 / 3.0},
		{"all wrong", []int{0, 0}, []int{1, 1}, 0.0},
		{"single value", []int{3}, []int{3}, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeMetrics(tc.truth, tc.preds)
			if err != nil {
				t.Fatalf("ComputeMetrics() error = %v", err)
			}
			if !almost(got.F1, tc.want) {
				t.Errorf("F1 = %v, want %v", got.F1, tc.want)
			}
		})
	}

	t.Run("length mismatch", func(t *testing.T) {
		if _, err := ComputeMetrics([]int{1, 2}, []int{1}); err == nil {
			t.Fatal("expected error for mismatched lengths")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, err := ComputeMetrics(nil, nil); err == nil {
			t.Fatal("expected error for empty input")
		}
	})
}
