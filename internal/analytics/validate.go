package analytics

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	maxBodyKg   = 1000
	maxCalories = 50_000
	maxMacroG   = 5_000
	maxReps     = 10_000
	maxRecord   = 1e6
)

// checkRange rejects NaN, infinities and values outside [lo, hi].
func checkRange(field string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < lo || v > hi {
		return fmt.Errorf("%s must be within [%g, %g], got %g", field, lo, hi, v)
	}
	return nil
}

// Validate reports every out of range field of the daily log.
func (l DailyLog) Validate() error {
	var err error
	if l.Date.IsZero() {
		err = multierr.Append(err, errors.New("date is required"))
	}
	err = multierr.Append(err, checkRange("workoutScore", l.WorkoutScore, 0, 100))
	err = multierr.Append(err, checkRange("nutritionScore", l.NutritionScore, 0, 100))
	err = multierr.Append(err, checkRange("sleepHours", l.SleepHours, 0, 24))
	err = multierr.Append(err, checkRange("energyLevel", l.EnergyLevel, 0, 100))
	err = multierr.Append(err, checkRange("stressIndex", l.StressIndex, 0, 100))
	err = multierr.Append(err, checkRange("waterIntakeL", l.WaterIntakeL, 0, 50))
	if l.BodyWeightKg != nil {
		err = multierr.Append(err, checkRange("bodyWeightKg", *l.BodyWeightKg, 0, maxBodyKg))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// Validate reports every out of range numeric field of the profile.
func (p UserProfile) Validate() error {
	var err error

	for i, t := range p.TrainingLogs {
		for j, ex := range t.Exercises {
			for k, set := range ex.Sets {
				prefix := fmt.Sprintf("trainingLogs[%d].exercises[%d].sets[%d]", i, j, k)
				err = multierr.Append(err, checkRange(prefix+".weightKg", set.WeightKg, 0, maxBodyKg))
				err = multierr.Append(err, checkRange(prefix+".reps", float64(set.Reps), 0, maxReps))
			}
		}
	}

	for i, n := range p.NutritionLogs {
		prefix := fmt.Sprintf("nutritionLogs[%d]", i)
		err = multierr.Append(err, checkRange(prefix+".caloriesConsumed", n.CaloriesConsumed, 0, maxCalories))
		err = multierr.Append(err, checkRange(prefix+".caloriesTarget", n.CaloriesTarget, 0, maxCalories))
		err = multierr.Append(err, checkRange(prefix+".proteinG", n.ProteinG, 0, maxMacroG))
		err = multierr.Append(err, checkRange(prefix+".carbsG", n.CarbsG, 0, maxMacroG))
		err = multierr.Append(err, checkRange(prefix+".fatG", n.FatG, 0, maxMacroG))
	}

	for i, s := range p.BodyScans {
		prefix := fmt.Sprintf("bodyScans[%d]", i)
		err = multierr.Append(err, checkRange(prefix+".weightKg", s.WeightKg, 0, maxBodyKg))
		err = multierr.Append(err, checkRange(prefix+".bodyFatPct", s.BodyFatPct, 0, 100))
		err = multierr.Append(err, checkRange(prefix+".muscleMassKg", s.MuscleMassKg, 0, maxBodyKg))
	}

	for i, r := range p.PerformanceRecords {
		err = multierr.Append(err, checkRange(fmt.Sprintf("performanceRecords[%d].value", i), r.Value, -maxRecord, maxRecord))
	}

	for i, m := range p.MetricsHistory {
		err = multierr.Append(err, checkRange(fmt.Sprintf("metricsHistory[%d].weightKg", i), m.WeightKg, 0, maxBodyKg))
	}

	for i, g := range p.Goals {
		err = multierr.Append(err, checkRange(fmt.Sprintf("goals[%d].target", i), g.Target, -maxRecord, maxRecord))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
