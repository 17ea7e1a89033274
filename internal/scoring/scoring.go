// Package scoring holds the point and progress formulas applied to a session
// at save time.
package scoring

import (
	"math"

	"github.com/alexanderramin/codelog/internal/domain"
)

// Points weighs hours by difficulty and status. Keys missing from cfg count
// as 1.0, so an unconfigured install awards one point per hour.
func Points(hours float64, difficulty domain.Difficulty, status domain.SessionStatus, cfg domain.ScoringConfig) float64 {
	return hours * cfg.DifficultyWeight(string(difficulty)) * cfg.StatusMultiplier(string(status))
}

// ProgressPct returns totalHours as a percentage of targetHours, clamped to
// [0, 100]. A non-positive target always yields 0.
func ProgressPct(totalHours, targetHours float64) float64 {
	if targetHours <= 0 {
		return 0
	}
	pct := totalHours * 100 / targetHours
	return math.Max(0, math.Min(100, pct))
}
