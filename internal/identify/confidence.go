// confidence.go - Confidence scoring rules shared by normalizer and renderer.

package identify

import "math/rand"

// Fallback confidence range used when the upstream model omits the field.
// The filled value is plausible but not a measured probability.
const (
	FallbackConfidenceMin = 70
	FallbackConfidenceMax = 99
)

// Display color thresholds for the confidence bar.
const (
	confidenceGreenAbove  = 90
	confidenceYellowAbove = 75
)

// FallbackConfidence returns a pseudo-random confidence in [70,99].
func FallbackConfidence() int {
	return FallbackConfidenceMin + rand.Intn(FallbackConfidenceMax-FallbackConfidenceMin+1)
}

// ClampConfidence bounds a reported score to the valid 0..100 range.
func ClampConfidence(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ConfidenceColor maps a score to the report color code:
// >90 green, >75 yellow, otherwise red.
func ConfidenceColor(score int) string {
	switch {
	case score > confidenceGreenAbove:
		return "green"
	case score > confidenceYellowAbove:
		return "yellow"
	default:
		return "red"
	}
}

// ConfidenceLevel maps a score to the coarse level used in log summaries.
func ConfidenceLevel(score int) string {
	switch {
	case score > confidenceGreenAbove:
		return "high"
	case score > confidenceYellowAbove:
		return "medium"
	default:
		return "low"
	}
}
