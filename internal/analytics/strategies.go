package analytics

// Metrics without a real algorithm yet are computed through these strategies,
// so they can be upgraded without touching the scoring core.

type QualityIndexer interface {
	QualityIndex(logs []NutritionLog) float64
}

type StrengthProgressor interface {
	StrengthProgression(records []PerformanceRecord) float64
}

type PowerIndexer interface {
	PowerIndex(records []PerformanceRecord) float64
}

type StackEfficiencyRater interface {
	StackEfficiency(supplements []Supplement, logs []SupplementLog) float64
}

const (
	DefaultQualityIndex        = 85
	DefaultStrengthProgression = 2.5
	DefaultPowerIndex          = 75
	DefaultStackEfficiency     = 90
)

type ConstantQualityIndex float64

func (c ConstantQualityIndex) QualityIndex([]NutritionLog) float64 {
	return float64(c)
}

type ConstantStrengthProgression float64

func (c ConstantStrengthProgression) StrengthProgression([]PerformanceRecord) float64 {
	return float64(c)
}

type ConstantPowerIndex float64

func (c ConstantPowerIndex) PowerIndex([]PerformanceRecord) float64 {
	return float64(c)
}

type ConstantStackEfficiency float64

func (c ConstantStackEfficiency) StackEfficiency([]Supplement, []SupplementLog) float64 {
	return float64(c)
}

// Strategies groups the pluggable placeholder computations.
type Strategies struct {
	Quality         QualityIndexer
	Progression     StrengthProgressor
	Power           PowerIndexer
	StackEfficiency StackEfficiencyRater
}

func DefaultStrategies() Strategies {
	return Strategies{
		Quality:         ConstantQualityIndex(DefaultQualityIndex),
		Progression:     ConstantStrengthProgression(DefaultStrengthProgression),
		Power:           ConstantPowerIndex(DefaultPowerIndex),
		StackEfficiency: ConstantStackEfficiency(DefaultStackEfficiency),
	}
}

// withDefaults fills every missing strategy with its constant default.
func (s Strategies) withDefaults() Strategies {
	d := DefaultStrategies()
	if s.Quality == nil {
		s.Quality = d.Quality
	}
	if s.Progression == nil {
		s.Progression = d.Progression
	}
	if s.Power == nil {
		s.Power = d.Power
	}
	if s.StackEfficiency == nil {
		s.StackEfficiency = d.StackEfficiency
	}
	return s
}
