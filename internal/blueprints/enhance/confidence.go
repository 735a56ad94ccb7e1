package enhance

import "math"

// Confidence weights.
const (
	confidenceBase         = 0.2
	confidenceStackWeight  = 0.3
	confidenceReasonWeight = 0.2
	confidenceCtxWeight    = 0.3
	confidenceFullStack    = 5.0
	confidenceFullReason   = 500.0
)

// Confidence scores an enhanced result from stack size, reasoning length and
// project-context completeness. The result is in [0.2, 1].
func Confidence(stackSize int, reasoning string, completeness float64) float64 {
	c := confidenceBase +
		confidenceStackWeight*math.Min(float64(stackSize)/confidenceFullStack, 1) +
		confidenceReasonWeight*math.Min(float64(len(reasoning))/confidenceFullReason, 1) +
		confidenceCtxWeight*math.Max(0, math.Min(completeness, 1))
	return math.Round(math.Min(c, 1)*100) / 100
}
