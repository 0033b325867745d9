package analytics

import (
	"math"
	"time"
)

// OPSScore is the Overall Performance Score, a weighted 0-100 composite of the six modules.
type OPSScore struct {
	Total       int                `json:"total"`
	Trend       Trend              `json:"trend"`
	Delta       float64            `json:"delta"`
	Breakdown   map[Module]int     `json:"breakdown"`
	RawScores   map[Module]float64 `json:"rawScores"`
	LastUpdated time.Time          `json:"lastUpdated"`
}

type Scorer struct {
	policy Policy
}

func NewScorer(policy Policy) *Scorer {
	return &Scorer{
		policy: policy.clone(),
	}
}

// Normalize maps every node to a score in [0, 1].
func (s *Scorer) Normalize(data AggregatedData) map[Module]float64 {
	n := s.policy.Normalizer
	return map[Module]float64{
		ModuleHealth: clamp01(float64(data.Health.HealthScore) / 100),
		ModuleWorkout: clamp01(
			0.6*clamp01(data.Training.WorkoutFrequencyWeekly/n.WorkoutFrequencyTarget) +
				0.4*clamp01(float64(data.Training.EfficiencyRating)/100),
		),
		ModuleNutrition: clamp01(
			0.7*clamp01(float64(data.Nutrition.MacroAdherence)/100) +
				0.3*clamp01(data.Nutrition.QualityIndex/100),
		),
		ModulePerformance: clamp01(
			0.7*clamp01((data.Performance.StrengthProgression+n.ProgressionOffset)/n.ProgressionSpan) +
				0.3*clamp01(float64(data.Performance.PRCountMonthly)/n.PRTarget),
		),
		ModuleSupplements: clamp01(float64(data.Supplements.AdherenceScore) / 100),
		ModuleBio:         clamp01(n.Adaptation[data.Bio.AdaptationLevel]),
	}
}

// ComputeOPS scores the aggregated nodes. The trend and delta are measured against
// the baseline snapshot, a nil baseline yields a stable trend with zero delta.
func (s *Scorer) ComputeOPS(data AggregatedData, previous *Snapshot, now time.Time) OPSScore {
	raw := s.Normalize(data)

	var weighted float64
	breakdown := make(map[Module]int, len(raw))
	for _, m := range Modules {
		weighted += s.policy.Weights.Of(m) * raw[m]
		breakdown[m] = int(math.Round(raw[m] * 100))
	}
	total := int(math.Round(100 * clamp01(weighted)))

	delta := 0.0
	if previous != nil {
		delta = Delta(total, previous.Total)
	}

	return OPSScore{
		Total:       total,
		Trend:       s.TrendOf(delta),
		Delta:       delta,
		Breakdown:   breakdown,
		RawScores:   raw,
		LastUpdated: now,
	}
}

func (s *Scorer) TrendOf(delta float64) Trend {
	switch {
	case delta > s.policy.TrendThreshold:
		return TrendImproving
	case delta < -s.policy.TrendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Delta is the percentage change from previous to current, rounded to one decimal.
// A zero previous total has no meaningful percentage, the plain point difference is used.
func Delta(current, previous int) float64 {
	if previous == 0 {
		return float64(current - previous)
	}
	return round1(float64(current-previous) / float64(previous) * 100)
}
