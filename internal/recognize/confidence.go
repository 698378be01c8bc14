package recognize

// ConfidencePolicy maps recognizer output density to an ordinal confidence
// score in [0, 1]. Scores are heuristic, not calibrated probabilities;
// callers must only compare them against thresholds, never interpret them as
// likelihoods.
type ConfidencePolicy func(blockCount, wordCount int) float64

// DensityConfidence is the default policy: more blocks and words mean higher
// confidence, saturating at 1. The exact shape of the formula gates cloud
// fallback behavior, so it must not be re-tuned casually.
func DensityConfidence(blockCount, wordCount int) float64 {
	c := (float64(blockCount) + float64(wordCount)/20.0) / 10.0
	if c > 1 {
		return 1
	}
	return c
}
