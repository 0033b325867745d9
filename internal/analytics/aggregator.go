package analytics

import (
	"math"
	"sort"
	"time"
)

// Aggregator reduces the raw logs of a profile into the six analytics nodes.
// Missing or empty collections never fail, they yield neutral defaults.
type Aggregator struct {
	policy     Policy
	strategies Strategies
	now        func() time.Time
}

func NewAggregator(policy Policy, strategies Strategies, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		policy:     policy.clone(),
		strategies: strategies.withDefaults(),
		now:        now,
	}
}

func (a *Aggregator) Aggregate(profile UserProfile, logs []DailyLog) AggregatedData {
	now := a.now()
	return AggregatedData{
		Health:      a.health(profile.MetricsHistory, logs, now),
		Training:    a.training(profile.TrainingLogs, now),
		Nutrition:   a.nutrition(profile, now),
		Performance: a.performance(profile.PerformanceRecords, now),
		Supplements: a.supplements(profile.Supplements, profile.SupplementLogs, now),
		Bio:         a.bio(profile.BodyScans),
		Meta: AggregationMeta{
			GeneratedAt:        now,
			DailyLogs:          len(logs),
			TrainingLogs:       len(profile.TrainingLogs),
			NutritionLogs:      len(profile.NutritionLogs),
			BodyScans:          len(profile.BodyScans),
			PerformanceRecords: len(profile.PerformanceRecords),
		},
	}
}

func (a *Aggregator) windowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -a.policy.Windows.Days)
}

// weeksInWindow is the number of whole weeks in the trailing window, at least 1.
func (a *Aggregator) weeksInWindow() float64 {
	weeks := a.policy.Windows.Days / 7
	if weeks < 1 {
		weeks = 1
	}
	return float64(weeks)
}

func (a *Aggregator) health(history []MetricSample, logs []DailyLog, now time.Time) HealthNode {
	recent := logs
	if len(recent) > a.policy.Windows.Days {
		recent = recent[len(recent)-a.policy.Windows.Days:]
	}

	node := HealthNode{
		VitalTrend: a.vitalTrend(logs),
	}

	if len(recent) > 0 {
		sleep := make([]float64, len(recent))
		energy := make([]float64, len(recent))
		stress := make([]float64, len(recent))
		for i, l := range recent {
			sleep[i] = l.SleepHours
			energy[i] = l.EnergyLevel
			stress[i] = l.StressIndex
		}
		node.AvgSleep = mean(sleep)
		node.AvgEnergy = mean(energy)
		node.AvgStress = mean(stress)
	}

	node.WeightChangeMonthly = a.weightChange(history, now)
	node.HealthScore = int(math.Round(clamp(node.AvgSleep*10+(100-node.AvgStress)/2, 0, 100)))

	return node
}

// vitalTrend compares total sleep of the last week of logs with the week before.
// Both weeks must be complete, otherwise the trend is stable.
func (a *Aggregator) vitalTrend(logs []DailyLog) Trend {
	week := a.policy.Windows.TrendWeek
	n := len(logs)
	if n < 2*week {
		return TrendStable
	}

	var recent, previous float64
	for _, l := range logs[n-week:] {
		recent += l.SleepHours
	}
	for _, l := range logs[n-2*week : n-week] {
		previous += l.SleepHours
	}

	diff := recent - previous
	switch {
	case diff > a.policy.Windows.VitalTrendHours:
		return TrendImproving
	case diff < -a.policy.Windows.VitalTrendHours:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func (a *Aggregator) weightChange(history []MetricSample, now time.Time) float64 {
	if len(history) < 2 {
		return 0
	}

	samples := make([]MetricSample, len(history))
	copy(samples, history)
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Date.Before(samples[j].Date)
	})

	latest := samples[len(samples)-1]
	cutoff := a.windowStart(now)
	for i := len(samples) - 1; i >= 0; i-- {
		if !samples[i].Date.After(cutoff) {
			return finiteOr(round1(latest.WeightKg-samples[i].WeightKg), 0)
		}
	}

	return 0
}

func (a *Aggregator) training(logs []TrainingLog, now time.Time) TrainingNode {
	start := a.windowStart(now)

	var sessions, completed int
	var volume float64
	for _, l := range logs {
		if l.Date.Before(start) {
			continue
		}
		sessions++
		if l.Completed {
			completed++
		}
		for _, ex := range l.Exercises {
			for _, set := range ex.Sets {
				if set.Completed {
					volume += set.WeightKg * float64(set.Reps)
				}
			}
		}
	}

	frequency := float64(sessions) / a.weeksInWindow()

	intensity := IntensityLow
	switch {
	case frequency > 4:
		intensity = IntensityHigh
	case frequency > 2:
		intensity = IntensityModerate
	}

	return TrainingNode{
		TotalVolumeMonthly:     finiteOr(volume, 0),
		WorkoutFrequencyWeekly: frequency,
		IntensityTrend:         intensity,
		EfficiencyRating:       int(math.Round(100 * ratio(float64(completed), float64(sessions), 0))),
	}
}

func (a *Aggregator) nutrition(profile UserProfile, now time.Time) NutritionNode {
	if len(profile.NutritionLogs) == 0 {
		return NutritionNode{
			CaloricBalance: BalanceMaintenance,
		}
	}

	logs := make([]NutritionLog, len(profile.NutritionLogs))
	copy(logs, profile.NutritionLogs)
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
	if len(logs) > a.policy.Windows.Days {
		logs = logs[len(logs)-a.policy.Windows.Days:]
	}

	calories := make([]float64, len(logs))
	var adherentDays int
	for i, l := range logs {
		calories[i] = l.CaloriesConsumed
		if l.CaloriesTarget <= 0 {
			continue
		}
		r := l.CaloriesConsumed / l.CaloriesTarget
		if r >= a.policy.NutritionBand.Low && r <= a.policy.NutritionBand.High {
			adherentDays++
		}
	}

	n := float64(len(logs))
	balance := BalanceMaintenance
	if goal, ok := profile.PrimaryGoal(); ok {
		switch goal.Type {
		case GoalFatLoss:
			balance = BalanceDeficit
		case GoalMuscleGain:
			balance = BalanceSurplus
		}
	}

	return NutritionNode{
		AvgDailyCalories: roundInt(mean(calories)),
		MacroAdherence:   int(math.Round(100 * float64(adherentDays) / n)),
		CaloricBalance:   balance,
		QualityIndex:     finiteOr(a.strategies.Quality.QualityIndex(logs), 0),
	}
}

func (a *Aggregator) performance(records []PerformanceRecord, now time.Time) PerformanceNode {
	start := a.windowStart(now)

	recent := make([]PerformanceRecord, 0, len(records))
	prCount := 0
	for _, r := range records {
		if r.Date.Before(start) {
			continue
		}
		recent = append(recent, r)
		if r.IsPersonalRecord {
			prCount++
		}
	}

	return PerformanceNode{
		PRCountMonthly:      prCount,
		StrengthProgression: finiteOr(a.strategies.Progression.StrengthProgression(recent), 0),
		PowerIndex:          finiteOr(a.strategies.Power.PowerIndex(recent), 0),
	}
}

func (a *Aggregator) supplements(supplements []Supplement, logs []SupplementLog, now time.Time) SupplementNode {
	start := a.windowStart(now)

	active := 0
	for _, s := range supplements {
		if s.Active {
			active++
		}
	}

	taken := 0
	for _, l := range logs {
		if l.Taken && !l.Date.Before(start) {
			taken++
		}
	}

	// no active supplements means nothing was missed
	adherence := 100.0
	if expected := float64(active * a.policy.Windows.Days); expected > 0 {
		adherence = clamp(100*float64(taken)/expected, 0, 100)
	}
	score := int(math.Round(adherence))

	return SupplementNode{
		AdherenceScore:   score,
		StackEfficiency:  finiteOr(a.strategies.StackEfficiency.StackEfficiency(supplements, logs), 0),
		DailyConsistency: score > a.policy.Rules.SupplementConsistentPct,
	}
}

func (a *Aggregator) bio(scans []BodyScan) BioNode {
	if len(scans) < 2 {
		return BioNode{
			AdaptationLevel: AdaptationMedium,
		}
	}

	sorted := make([]BodyScan, len(scans))
	copy(sorted, scans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	latest, previous := sorted[0], sorted[1]
	muscleDelta := finiteOr(round1(latest.MuscleMassKg-previous.MuscleMassKg), 0)

	level := AdaptationMedium
	if latest.MuscleMassKg > previous.MuscleMassKg {
		level = AdaptationHigh
	}

	return BioNode{
		BodyFatTrend:    finiteOr(round1(latest.BodyFatPct-previous.BodyFatPct), 0),
		MuscleMassTrend: muscleDelta,
		AdaptationLevel: level,
	}
}
