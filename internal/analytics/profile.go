package analytics

import "time"

// UserProfile is the read-only input of the pipeline.
// It is owned by the persistence layer, and the pipeline never mutates it.
type UserProfile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Settings Settings `json:"settings"`

	TrainingLogs       []TrainingLog       `json:"trainingLogs"`
	NutritionLogs      []NutritionLog      `json:"nutritionLogs"`
	BodyScans          []BodyScan          `json:"bodyScans"`
	Supplements        []Supplement        `json:"supplements"`
	SupplementLogs     []SupplementLog     `json:"supplementLogs"`
	PerformanceRecords []PerformanceRecord `json:"performanceRecords"`
	MetricsHistory     []MetricSample      `json:"metricsHistory"`
	Goals              []Goal              `json:"goals"`
}

// Settings are presentation-only, aggregation never reads them.
type Settings struct {
	Locale   string `json:"locale"`
	Units    string `json:"units"`
	Timezone string `json:"timezone"`
}

type TrainingLog struct {
	ID        string        `json:"id"`
	Date      time.Time     `json:"date"`
	Completed bool          `json:"completed"`
	Exercises []ExerciseLog `json:"exercises"`
}

type ExerciseLog struct {
	Name string   `json:"name"`
	Sets []SetLog `json:"sets"`
}

type SetLog struct {
	WeightKg  float64 `json:"weightKg"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

type NutritionLog struct {
	Date             time.Time `json:"date"`
	CaloriesConsumed float64   `json:"caloriesConsumed"`
	CaloriesTarget   float64   `json:"caloriesTarget"`
	ProteinG         float64   `json:"proteinG"`
	CarbsG           float64   `json:"carbsG"`
	FatG             float64   `json:"fatG"`
}

type BodyScan struct {
	Date         time.Time `json:"date"`
	WeightKg     float64   `json:"weightKg"`
	BodyFatPct   float64   `json:"bodyFatPct"`
	MuscleMassKg float64   `json:"muscleMassKg"`
}

type Supplement struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Active bool   `json:"active"`
}

type SupplementLog struct {
	SupplementID string    `json:"supplementId"`
	Date         time.Time `json:"date"`
	Taken        bool      `json:"taken"`
}

type PerformanceRecord struct {
	Exercise         string    `json:"exercise"`
	Value            float64   `json:"value"`
	Unit             string    `json:"unit"`
	Date             time.Time `json:"date"`
	IsPersonalRecord bool      `json:"isPersonalRecord"`
}

type MetricSample struct {
	Date     time.Time `json:"date"`
	WeightKg float64   `json:"weightKg"`
}

// GoalType can be one of:
//   - fatLoss
//   - muscleGain
//   - maintenance
//   - performance
type GoalType string

const (
	GoalFatLoss     GoalType = "fatLoss"
	GoalMuscleGain  GoalType = "muscleGain"
	GoalMaintenance GoalType = "maintenance"
	GoalPerformance GoalType = "performance"
)

type Goal struct {
	Type    GoalType `json:"type"`
	Target  float64  `json:"target"`
	Primary bool     `json:"primary"`
}

// PrimaryGoal returns the goal flagged as primary, falling back to the first one.
func (p UserProfile) PrimaryGoal() (Goal, bool) {
	for _, g := range p.Goals {
		if g.Primary {
			return g, true
		}
	}
	if len(p.Goals) > 0 {
		return p.Goals[0], true
	}
	return Goal{}, false
}

// DailyLog is one entry per calendar day.
// A slice of daily logs is expected in chronological order.
type DailyLog struct {
	Date           time.Time `json:"date"`
	WorkoutScore   float64   `json:"workoutScore"`
	NutritionScore float64   `json:"nutritionScore"`
	SleepHours     float64   `json:"sleepHours"`
	EnergyLevel    float64   `json:"energyLevel"`
	StressIndex    float64   `json:"stressIndex"`
	WaterIntakeL   float64   `json:"waterIntakeL"`
	BodyWeightKg   *float64  `json:"bodyWeightKg,omitempty"`
}
