package domain

// ScoringConfig holds the global point multipliers. Missing keys mean 1.0.
type ScoringConfig struct {
	DifficultyWeights map[string]float64
	StatusMultipliers map[string]float64
}

// DifficultyWeight returns the weight for difficulty, or 1.0 when unset.
func (c ScoringConfig) DifficultyWeight(difficulty string) float64 {
	if w, ok := c.DifficultyWeights[difficulty]; ok {
		return w
	}
	return 1.0
}

// StatusMultiplier returns the multiplier for status, or 1.0 when unset.
func (c ScoringConfig) StatusMultiplier(status string) float64 {
	if m, ok := c.StatusMultipliers[status]; ok {
		return m
	}
	return 1.0
}
