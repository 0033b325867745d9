package analytics

import "time"

type Trend string

const (
	TrendImproving Trend = "Improving"
	TrendStable    Trend = "Stable"
	TrendDeclining Trend = "Declining"
)

type Intensity string

const (
	IntensityHigh     Intensity = "High"
	IntensityModerate Intensity = "Moderate"
	IntensityLow      Intensity = "Low"
)

type CaloricBalance string

const (
	BalanceDeficit     CaloricBalance = "Deficit"
	BalanceSurplus     CaloricBalance = "Surplus"
	BalanceMaintenance CaloricBalance = "Maintenance"
)

type AdaptationLevel string

const (
	AdaptationHigh   AdaptationLevel = "High"
	AdaptationMedium AdaptationLevel = "Medium"
	AdaptationLow    AdaptationLevel = "Low"
)

type HealthNode struct {
	AvgSleep            float64 `json:"avgSleep"`
	AvgEnergy           float64 `json:"avgEnergy"`
	AvgStress           float64 `json:"avgStress"`
	VitalTrend          Trend   `json:"vitalTrend"`
	WeightChangeMonthly float64 `json:"weightChangeMonthly"`
	HealthScore         int     `json:"healthScore"`
}

type TrainingNode struct {
	TotalVolumeMonthly     float64   `json:"totalVolumeMonthly"`
	WorkoutFrequencyWeekly float64   `json:"workoutFrequencyWeekly"`
	IntensityTrend         Intensity `json:"intensityTrend"`
	EfficiencyRating       int       `json:"efficiencyRating"`
}

type NutritionNode struct {
	AvgDailyCalories int            `json:"avgDailyCalories"`
	MacroAdherence   int            `json:"macroAdherence"`
	CaloricBalance   CaloricBalance `json:"caloricBalance"`
	QualityIndex     float64        `json:"qualityIndex"`
}

type PerformanceNode struct {
	PRCountMonthly      int     `json:"prCountMonthly"`
	StrengthProgression float64 `json:"strengthProgression"`
	PowerIndex          float64 `json:"powerIndex"`
}

type SupplementNode struct {
	AdherenceScore   int     `json:"adherenceScore"`
	StackEfficiency  float64 `json:"stackEfficiency"`
	DailyConsistency bool    `json:"dailyConsistency"`
}

type BioNode struct {
	BodyFatTrend    float64         `json:"bodyFatTrend"`
	MuscleMassTrend float64         `json:"muscleMassTrend"`
	AdaptationLevel AdaptationLevel `json:"adaptationLevel"`
}

// AggregationMeta describes the input a set of nodes was computed from.
type AggregationMeta struct {
	GeneratedAt        time.Time `json:"generatedAt"`
	DailyLogs          int       `json:"dailyLogs"`
	TrainingLogs       int       `json:"trainingLogs"`
	NutritionLogs      int       `json:"nutritionLogs"`
	BodyScans          int       `json:"bodyScans"`
	PerformanceRecords int       `json:"performanceRecords"`
}

// AggregatedData holds the six analytics nodes.
// No node depends on another one.
type AggregatedData struct {
	Health      HealthNode      `json:"health"`
	Training    TrainingNode    `json:"training"`
	Nutrition   NutritionNode   `json:"nutrition"`
	Performance PerformanceNode `json:"performance"`
	Supplements SupplementNode  `json:"supplements"`
	Bio         BioNode         `json:"bio"`
	Meta        AggregationMeta `json:"meta"`
}
