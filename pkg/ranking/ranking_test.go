package ranking

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/arborheat/pkg/errors"
)

// extractMax ranks dists the way the original scripts did: repeatedly take
// the first occurrence of the current maximum and blank it out.
func extractMax(dists []float64) []int {
	work := slices.Clone(dists)
	out := make([]int, 0, len(work))
	for range work {
		best := 0
		for i, d := range work {
			if d > work[best] {
				best = i
			}
		}
		out = append(out, best)
		work[best] = -1
	}
	return out
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name  string
		dists []float64
		want  []int
	}{
		{"empty", nil, []int{}},
		{"single", []float64{4}, []int{0}},
		{"descending scenario", []float64{10, 30, 20, 5}, []int{1, 2, 0, 3}},
		{"already sorted", []float64{9, 8, 7}, []int{0, 1, 2}},
		{"ties keep index order", []float64{5, 7, 5, 7}, []int{1, 3, 0, 2}},
		{"all equal", []float64{2, 2, 2}, []int{0, 1, 2}},
		{"zeros", []float64{0, 3, 0}, []int{1, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Order(tt.dists)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Order(%v) = %v, want %v", tt.dists, got, tt.want)
			}
		})
	}
}

func TestOrderMatchesExtractMax(t *testing.T) {
	inputs := [][]float64{
		{10, 30, 20, 5},
		{1, 1, 1, 1, 1},
		{3, 1, 3, 2, 1, 3},
		{0, 0, 12.5, 12.5, 0.1},
		{100, 99.999, 100, 42},
	}
	for _, in := range inputs {
		if got, want := Order(in), extractMax(in); !slices.Equal(got, want) {
			t.Errorf("Order(%v) = %v, extract-max gives %v", in, got, want)
		}
	}
}

func TestOrderIsPermutation(t *testing.T) {
	dists := []float64{4, 8, 15, 16, 23, 42, 8, 4, 0, 15}
	order := Order(dists)
	if len(order) != len(dists) {
		t.Fatalf("len(Order) = %d, want %d", len(order), len(dists))
	}
	seen := make(map[int]bool)
	for _, i := range order {
		if i < 0 || i >= len(dists) {
			t.Fatalf("index %d out of range", i)
		}
		if seen[i] {
			t.Fatalf("index %d appears twice in %v", i, order)
		}
		seen[i] = true
	}
	for k := 1; k < len(order); k++ {
		if dists[order[k-1]] < dists[order[k]] {
			t.Errorf("order not descending at %d: %v", k, order)
		}
	}
}

func TestOrderDoesNotModifyInput(t *testing.T) {
	dists := []float64{3, 1, 2}
	_ = Order(dists)
	if !slices.Equal(dists, []float64{3, 1, 2}) {
		t.Errorf("input modified: %v", dists)
	}
}

func TestAscending(t *testing.T) {
	order := []int{1, 3, 0, 2}
	got := Ascending(order)
	if want := []int{2, 0, 3, 1}; !slices.Equal(got, want) {
		t.Errorf("Ascending(%v) = %v, want %v", order, got, want)
	}
	if !slices.Equal(order, []int{1, 3, 0, 2}) {
		t.Error("Ascending modified its input")
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize([]float64{10, 30, 20, 5})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	want := []float64{0.333, 1.0, 0.667, 0.167}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-3 {
			t.Errorf("Normalize()[%d] = %.4f, want %.3f", i, got[i], want[i])
		}
	}
}

func TestNormalizeConstant(t *testing.T) {
	got, err := Normalize([]float64{7, 7, 7})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	for i, v := range got {
		if v != 1.0 {
			t.Errorf("Normalize()[%d] = %v, want 1", i, v)
		}
	}

	got, err = NormalizeTo([]float64{7, 7, 7}, 14)
	if err != nil {
		t.Fatalf("NormalizeTo error: %v", err)
	}
	for i, v := range got {
		if v != 0.5 {
			t.Errorf("NormalizeTo()[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got, err := Normalize(nil)
	if err != nil {
		t.Fatalf("Normalize(nil) error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		dists      []float64
		vmax       float64
		useVMax    bool
		degenerate bool
	}{
		{"observed max zero", []float64{0, 0, 0}, 0, false, true},
		{"supplied max zero", []float64{1, 2}, 0, true, true},
		{"supplied tiny max", []float64{0, 0}, 1e-300, true, false},
		{"observed max positive", []float64{0, 1}, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.useVMax {
				_, err = NormalizeTo(tt.dists, tt.vmax)
			} else {
				_, err = Normalize(tt.dists)
			}
			if got := errors.Is(err, errors.ErrCodeDegenerateInput); got != tt.degenerate {
				t.Errorf("degenerate = %v, want %v (err = %v)", got, tt.degenerate, err)
			}
		})
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		dists []float64
		vmax  float64
	}{
		{"negative distance", []float64{1, -2}, 5},
		{"NaN distance", []float64{1, math.NaN()}, 5},
		{"infinite distance", []float64{1, math.Inf(1)}, 5},
		{"negative max", []float64{1}, -5},
		{"NaN max", []float64{10, 30}, math.NaN()},
		{"infinite max", []float64{10, 30}, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTo(tt.dists, tt.vmax)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("NormalizeTo(%v, %v) = %v, %v, want INVALID_INPUT", tt.dists, tt.vmax, got, err)
			}
		})
	}

	if got, err := Normalize([]float64{10, math.Inf(1)}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Normalize with +Inf = %v, %v, want INVALID_INPUT", got, err)
	}
}

func TestNormalizeZeroMaxWins(t *testing.T) {
	_, err := NormalizeTo([]float64{-1, 2}, 0)
	if !errors.Is(err, errors.ErrCodeDegenerateInput) {
		t.Errorf("err = %v, want DEGENERATE_INPUT for a zero maximum", err)
	}
}
