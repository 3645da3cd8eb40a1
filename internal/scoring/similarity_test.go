package scoring

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.5, 0.2, 0.8}
		got := CosineSimilarity(v, v)
		if math.Abs(got-1.0) > 1e-9 {
			t.Errorf("CosineSimilarity(v, v) = %v, want 1.0", got)
		}
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		got := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		if math.Abs(got) > 1e-9 {
			t.Errorf("CosineSimilarity = %v, want 0", got)
		}
	})

	t.Run("opposite vectors", func(t *testing.T) {
		got := CosineSimilarity([]float32{1, 2}, []float32{-1, -2})
		if math.Abs(got+1.0) > 1e-9 {
			t.Errorf("CosineSimilarity = %v, want -1.0", got)
		}
	})

	t.Run("empty vectors", func(t *testing.T) {
		if got := CosineSimilarity(nil, nil); got != 0 {
			t.Errorf("CosineSimilarity(nil, nil) = %v, want 0", got)
		}
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		if got := CosineSimilarity([]float32{1, 2}, []float32{1}); got != 0 {
			t.Errorf("CosineSimilarity = %v, want 0", got)
		}
	})

	t.Run("zero magnitude", func(t *testing.T) {
		if got := CosineSimilarity([]float32{0, 0}, []float32{1, 2}); got != 0 {
			t.Errorf("CosineSimilarity = %v, want 0", got)
		}
	})
}
