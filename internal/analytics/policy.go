package analytics

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Module names the six scored areas of the OPS breakdown.
type Module string

const (
	ModuleHealth      Module = "health"
	ModuleWorkout     Module = "workout"
	ModuleNutrition   Module = "nutrition"
	ModulePerformance Module = "performance"
	ModuleSupplements Module = "supplements"
	ModuleBio         Module = "bio"
)

// Modules lists all scored modules in display order.
var Modules = []Module{
	ModuleHealth,
	ModuleWorkout,
	ModuleNutrition,
	ModulePerformance,
	ModuleSupplements,
	ModuleBio,
}

// Weights of the composite score, they must sum to 1.0.
type Weights struct {
	Health      float64 `toml:"health" json:"health"`
	Workout     float64 `toml:"workout" json:"workout"`
	Nutrition   float64 `toml:"nutrition" json:"nutrition"`
	Performance float64 `toml:"performance" json:"performance"`
	Supplements float64 `toml:"supplements" json:"supplements"`
	Bio         float64 `toml:"bio" json:"bio"`
}

func (w Weights) Of(m Module) float64 {
	switch m {
	case ModuleHealth:
		return w.Health
	case ModuleWorkout:
		return w.Workout
	case ModuleNutrition:
		return w.Nutrition
	case ModulePerformance:
		return w.Performance
	case ModuleSupplements:
		return w.Supplements
	case ModuleBio:
		return w.Bio
	default:
		return 0
	}
}

func (w Weights) Sum() float64 {
	return w.Health + w.Workout + w.Nutrition + w.Performance + w.Supplements + w.Bio
}

type Windows struct {
	// Days is the trailing window used by every node, in days or log entries.
	Days int
	// TrendWeek is the number of daily logs compared for the vital trend.
	TrendWeek int
	// VitalTrendHours is the sleep difference needed to flag a vital trend.
	VitalTrendHours float64
}

type NutritionBand struct {
	Low  float64
	High float64
}

type Normalizer struct {
	WorkoutFrequencyTarget float64
	PRTarget               float64
	ProgressionOffset      float64
	ProgressionSpan        float64
	Adaptation             map[AdaptationLevel]float64
}

type RuleThresholds struct {
	SleepDebtBreakdown      int
	SleepDebtHours          float64
	ProteinNutritionMax     int
	ProteinWorkoutMin       int
	PlateauTotalMin         int
	DeloadVolumeMin         float64
	AlertDeltaDrop          float64
	AlertSleepHours         float64
	SupplementConsistentPct int
}

// Policy is the scoring configuration of a pipeline.
// It is copied into the pipeline on construction and never changes afterwards.
type Policy struct {
	Weights        Weights
	Windows        Windows
	NutritionBand  NutritionBand
	Normalizer     Normalizer
	Rules          RuleThresholds
	TrendThreshold float64
	TrendJitter    int
}

func DefaultPolicy() Policy {
	return Policy{
		Weights: Weights{
			Health:      0.20,
			Workout:     0.25,
			Nutrition:   0.20,
			Performance: 0.20,
			Supplements: 0.05,
			Bio:         0.10,
		},
		Windows: Windows{
			Days:            30,
			TrendWeek:       7,
			VitalTrendHours: 2,
		},
		NutritionBand: NutritionBand{Low: 0.9, High: 1.1},
		Normalizer: Normalizer{
			WorkoutFrequencyTarget: 4,
			PRTarget:               2,
			ProgressionOffset:      5,
			ProgressionSpan:        10,
			Adaptation: map[AdaptationLevel]float64{
				AdaptationHigh:   1,
				AdaptationMedium: 0.6,
				AdaptationLow:    0.3,
			},
		},
		Rules: RuleThresholds{
			SleepDebtBreakdown:      60,
			SleepDebtHours:          6,
			ProteinNutritionMax:     70,
			ProteinWorkoutMin:       80,
			PlateauTotalMin:         80,
			DeloadVolumeMin:         20000,
			AlertDeltaDrop:          -10,
			AlertSleepHours:         5.5,
			SupplementConsistentPct: 80,
		},
		TrendThreshold: 1,
		TrendJitter:    5,
	}
}

// WithWeights returns a copy of the policy using the given weights.
func (p Policy) WithWeights(w Weights) Policy {
	p.Weights = w
	return p
}

// Validate reports every inconsistency of the policy, not only the first one.
func (p Policy) Validate() error {
	var err error

	for _, m := range Modules {
		if p.Weights.Of(m) < 0 {
			err = multierr.Append(err, fmt.Errorf("weight %s is negative: %f", m, p.Weights.Of(m)))
		}
	}
	if sum := p.Weights.Sum(); math.Abs(sum-1) > 1e-6 {
		err = multierr.Append(err, fmt.Errorf("weights sum to %f, expected 1.0", sum))
	}

	if p.Windows.Days <= 0 {
		err = multierr.Append(err, errors.New("windows: days must be positive"))
	}
	if p.Windows.TrendWeek <= 0 {
		err = multierr.Append(err, errors.New("windows: trend week must be positive"))
	}
	if p.Windows.VitalTrendHours < 0 {
		err = multierr.Append(err, errors.New("windows: vital trend hours must not be negative"))
	}

	if p.NutritionBand.Low <= 0 || p.NutritionBand.Low > p.NutritionBand.High {
		err = multierr.Append(err, fmt.Errorf("invalid nutrition band [%f, %f]", p.NutritionBand.Low, p.NutritionBand.High))
	}

	if p.Normalizer.WorkoutFrequencyTarget <= 0 || p.Normalizer.PRTarget <= 0 || p.Normalizer.ProgressionSpan <= 0 {
		err = multierr.Append(err, errors.New("normalizer targets must be positive"))
	}
	for _, level := range []AdaptationLevel{AdaptationHigh, AdaptationMedium, AdaptationLow} {
		if _, ok := p.Normalizer.Adaptation[level]; !ok {
			err = multierr.Append(err, fmt.Errorf("normalizer: missing adaptation score for %s", level))
		}
	}

	if p.TrendThreshold < 0 {
		err = multierr.Append(err, errors.New("trend threshold must not be negative"))
	}
	if p.TrendJitter < 0 {
		err = multierr.Append(err, errors.New("trend jitter must not be negative"))
	}

	return err
}

// clone copies the reference-typed fields so callers can't mutate a pipeline's policy.
func (p Policy) clone() Policy {
	adaptation := make(map[AdaptationLevel]float64, len(p.Normalizer.Adaptation))
	for k, v := range p.Normalizer.Adaptation {
		adaptation[k] = v
	}
	p.Normalizer.Adaptation = adaptation
	return p
}
