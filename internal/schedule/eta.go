// Package schedule holds the project-economics rules: remaining-days
// estimation, the labor budget cap, and budget-derived worker headcounts.
// Everything here is a pure function of its inputs so the UI can call it
// on every render.
package schedule

import (
	"math"

	"github.com/homereno/renoterm/internal/model"
)

// ExpertiseOffsetDays returns the fixed schedule adjustment, in days, for
// a contractor skill tier. A senior contractor shortens the schedule and a
// junior lengthens it by an absolute offset rather than a factor, so the
// adjustment stays comparable to the progress-driven component regardless
// of project size. Unknown or absent expertise behaves like APPRENTICE.
func ExpertiseOffsetDays(expertise model.Expertise) float64 {
	switch expertise {
	case model.ExpertiseJunior:
		return 7
	case model.ExpertiseSenior:
		return -7
	default:
		return 0
	}
}

// EtaDays computes the remaining days to completion from the baseline
// estimate, worker headcount, manual progress, and contractor expertise.
// The second return is false when no estimate is displayable, which is the
// case whenever the baseline is absent, non-finite, or not positive. That
// is distinct from "zero days left": a finished project should report
// through its finished state, not through this function.
func EtaDays(baseEtaWeeks, workers, progressPercent float64, expertise model.Expertise) (int, bool) {
	baseWeeks := toFinite(baseEtaWeeks)
	if baseWeeks <= 0 {
		return 0, false
	}

	baseDays := baseWeeks * 7
	afterExpertise := baseDays + ExpertiseOffsetDays(expertise)

	// Each worker beyond the first shaves 0.4 days; fewer than one
	// worker lengthens the estimate.
	workerCount := math.Max(0, math.Round(toFinite(workers)))
	workerDelta := workerCount - 1
	afterWorkers := math.Max(0, afterExpertise-0.4*workerDelta)

	// Progress never fully zeroes the estimate; 100 is reserved for the
	// finished state, so the fraction caps at 0.99.
	fraction := clampFraction(toFinite(progressPercent) / 100)
	etaDays := afterWorkers * (1 - fraction)

	return int(math.Max(0, math.Ceil(etaDays))), true
}

// LegacyEtaDays is the older multiplicative estimate still used by the
// project list view: baseline weeks scaled by expertise, worker, and
// progress factors. An empty expertise (contractor unknown or absent)
// scales by 1.
func LegacyEtaDays(baseEtaWeeks float64, workers int, progressPercent float64, expertise model.Expertise) (int, bool) {
	if toFinite(baseEtaWeeks) <= 0 {
		return 0, false
	}

	etaWeeks := baseEtaWeeks *
		legacyExpertiseFactor(expertise) *
		legacyWorkerFactor(workers) *
		legacyProgressFactor(toFinite(progressPercent))

	return int(math.Max(0, math.Round(etaWeeks*7))), true
}

func legacyExpertiseFactor(expertise model.Expertise) float64 {
	switch expertise {
	case model.ExpertiseSenior:
		return 0.75
	case model.ExpertiseApprentice:
		return 0.95
	case model.ExpertiseJunior:
		return 1.15
	default:
		return 1
	}
}

func legacyWorkerFactor(workers int) float64 {
	if workers <= 0 {
		return 1.2
	}
	const baseline = 12
	ratio := float64(baseline) / float64(workers)
	return math.Min(1.35, math.Max(0.65, ratio))
}

func legacyProgressFactor(progress float64) float64 {
	clamped := math.Min(100, math.Max(0, progress))
	return math.Max(0.05, 1-clamped/100)
}

func clampFraction(fraction float64) float64 {
	if math.IsNaN(fraction) {
		return 0
	}
	return math.Min(0.99, math.Max(0, fraction))
}

// toFinite coerces NaN and infinities to 0 so malformed server values
// degrade instead of throwing the estimate off the scale.
func toFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
