// Package scoring provides embedding similarity and keyword statistics used
// by the resume analysis pipeline.
package scoring

import "math"

// CosineSimilarity computes the cosine similarity between two embedding
// vectors. Returns 0 for empty, mismatched, or zero-magnitude vectors rather
// than propagating NaN into scores.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
