package analytics

import (
	"fmt"
	"sort"
	"time"
)

// ActionType can be one of:
//   - navigate
//   - supplement_add
//   - advice
type ActionType string

const (
	ActionNavigate      ActionType = "navigate"
	ActionSupplementAdd ActionType = "supplement_add"
	ActionAdvice        ActionType = "advice"
)

// Action is only proposed to the presentation layer, never executed here.
type Action struct {
	Label  string            `json:"label"`
	Type   ActionType        `json:"type"`
	Params map[string]string `json:"params,omitempty"`
}

const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityNormal   = 3
)

type Recommendation struct {
	ID                string    `json:"id"`
	Rule              string    `json:"rule"`
	Priority          int       `json:"priority"`
	Title             string    `json:"title"`
	Explanation       string    `json:"explanation"`
	Actions           []Action  `json:"actions"`
	ExpectedTimeframe string    `json:"expectedTimeframe"`
	ConfidenceScore   float64   `json:"confidenceScore"`
	RelatedMetrics    []string  `json:"relatedMetrics"`
	CreatedAt         time.Time `json:"createdAt"`
}

const (
	RuleSleepDebt   = "sleep-debt"
	RuleProteinGap  = "protein-gap"
	RulePlateau     = "plateau"
	RuleDeload      = "deload"
	RuleMaintenance = "maintain-momentum"
)

// proteinPerKg is the daily protein intake suggested when closing a protein gap.
const proteinPerKg = 1.8

type recommendationRule struct {
	name  string
	fires func(ops OPSScore, data AggregatedData) bool
	build func(profile UserProfile, data AggregatedData) Recommendation
}

type Recommender struct {
	policy Policy
	rules  []recommendationRule
	newID  func() string
}

func NewRecommender(policy Policy, newID func() string) *Recommender {
	r := &Recommender{
		policy: policy.clone(),
		newID:  newID,
	}
	r.rules = []recommendationRule{
		{name: RuleSleepDebt, fires: r.sleepDebtFires, build: sleepDebtRecommendation},
		{name: RuleProteinGap, fires: r.proteinGapFires, build: proteinGapRecommendation},
		{name: RulePlateau, fires: r.plateauFires, build: plateauRecommendation},
		{name: RuleDeload, fires: r.deloadFires, build: deloadRecommendation},
	}
	return r
}

// Generate evaluates every rule independently and returns the fired recommendations
// ordered by priority. The result is never empty.
func (r *Recommender) Generate(ops OPSScore, profile UserProfile, data AggregatedData, now time.Time) []Recommendation {
	recommendations := make([]Recommendation, 0, len(r.rules))
	for _, rule := range r.rules {
		if !rule.fires(ops, data) {
			continue
		}
		recommendations = append(recommendations, r.stamp(rule.name, rule.build(profile, data), now))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, r.stamp(RuleMaintenance, maintenanceRecommendation(ops), now))
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Priority < recommendations[j].Priority
	})

	return recommendations
}

func (r *Recommender) stamp(rule string, rec Recommendation, now time.Time) Recommendation {
	rec.ID = rule + "-" + r.newID()
	rec.Rule = rule
	rec.CreatedAt = now
	return rec
}

func (r *Recommender) sleepDebtFires(ops OPSScore, data AggregatedData) bool {
	return ops.Breakdown[ModuleHealth] < r.policy.Rules.SleepDebtBreakdown ||
		data.Health.AvgSleep < r.policy.Rules.SleepDebtHours
}

func (r *Recommender) proteinGapFires(ops OPSScore, _ AggregatedData) bool {
	return ops.Breakdown[ModuleNutrition] < r.policy.Rules.ProteinNutritionMax &&
		ops.Breakdown[ModuleWorkout] > r.policy.Rules.ProteinWorkoutMin
}

func (r *Recommender) plateauFires(ops OPSScore, data AggregatedData) bool {
	return ops.Trend == TrendStable &&
		ops.Total > r.policy.Rules.PlateauTotalMin &&
		data.Training.IntensityTrend == IntensityModerate
}

func (r *Recommender) deloadFires(ops OPSScore, data AggregatedData) bool {
	return ops.Trend == TrendDeclining &&
		data.Training.TotalVolumeMonthly > r.policy.Rules.DeloadVolumeMin &&
		data.Health.VitalTrend == TrendDeclining
}

func sleepDebtRecommendation(_ UserProfile, data AggregatedData) Recommendation {
	return Recommendation{
		Priority: PriorityCritical,
		Title:    "Recover your sleep debt",
		Explanation: fmt.Sprintf(
			"You averaged %.1f hours of sleep recently. Short sleep slows recovery and drags down every other score.",
			data.Health.AvgSleep,
		),
		Actions: []Action{
			{Label: "Set a fixed bedtime", Type: ActionAdvice, Params: map[string]string{"topic": "sleep_schedule"}},
			{Label: "Consider magnesium", Type: ActionSupplementAdd, Params: map[string]string{"supplement": "magnesium"}},
			{Label: "Open sleep log", Type: ActionNavigate, Params: map[string]string{"route": "/daily-log"}},
		},
		ExpectedTimeframe: "1-2 weeks",
		ConfidenceScore:   0.9,
		RelatedMetrics:    []string{"health.avgSleep", "health.healthScore"},
	}
}

func proteinGapRecommendation(profile UserProfile, _ AggregatedData) Recommendation {
	explanation := "Your training load is high but nutrition adherence is lagging. Increase protein intake to support recovery."
	params := map[string]string{"topic": "protein_intake"}
	if weight := latestWeight(profile); weight > 0 {
		target := int(weight*proteinPerKg + 0.5)
		explanation = fmt.Sprintf(
			"Your training load is high but nutrition adherence is lagging. Aim for about %d g of protein per day.",
			target,
		)
		params["targetGrams"] = fmt.Sprintf("%d", target)
	}

	return Recommendation{
		Priority:    PriorityCritical,
		Title:       "Close the protein gap",
		Explanation: explanation,
		Actions: []Action{
			{Label: "Protein intake tips", Type: ActionAdvice, Params: params},
			{Label: "Add whey protein", Type: ActionSupplementAdd, Params: map[string]string{"supplement": "whey_protein"}},
			{Label: "Open nutrition log", Type: ActionNavigate, Params: map[string]string{"route": "/nutrition"}},
		},
		ExpectedTimeframe: "2-4 weeks",
		ConfidenceScore:   0.85,
		RelatedMetrics:    []string{"nutrition.macroAdherence", "training.workoutFrequencyWeekly"},
	}
}

func plateauRecommendation(_ UserProfile, _ AggregatedData) Recommendation {
	return Recommendation{
		Priority:    PriorityHigh,
		Title:       "Break through the plateau",
		Explanation: "Your score is high but flat with moderate intensity. Vary rep ranges or add a progressive overload block.",
		Actions: []Action{
			{Label: "Progressive overload guide", Type: ActionAdvice, Params: map[string]string{"topic": "progressive_overload"}},
			{Label: "Open training plan", Type: ActionNavigate, Params: map[string]string{"route": "/training"}},
		},
		ExpectedTimeframe: "3-4 weeks",
		ConfidenceScore:   0.75,
		RelatedMetrics:    []string{"ops.total", "training.intensityTrend"},
	}
}

func deloadRecommendation(_ UserProfile, data AggregatedData) Recommendation {
	return Recommendation{
		Priority: PriorityCritical,
		Title:    "Schedule a deload week",
		Explanation: fmt.Sprintf(
			"You moved %.0f kg this month while your score and sleep are declining. Reduce volume by 40-50%% for a week.",
			data.Training.TotalVolumeMonthly,
		),
		Actions: []Action{
			{Label: "How to deload", Type: ActionAdvice, Params: map[string]string{"topic": "deload"}},
			{Label: "Adjust training plan", Type: ActionNavigate, Params: map[string]string{"route": "/training"}},
		},
		ExpectedTimeframe: "1 week",
		ConfidenceScore:   0.88,
		RelatedMetrics:    []string{"training.totalVolumeMonthly", "health.vitalTrend", "ops.trend"},
	}
}

func maintenanceRecommendation(ops OPSScore) Recommendation {
	return Recommendation{
		Priority:    PriorityNormal,
		Title:       "Maintain your momentum",
		Explanation: fmt.Sprintf("Your overall score is %d. Keep the current routine consistent.", ops.Total),
		Actions: []Action{
			{Label: "View progress", Type: ActionNavigate, Params: map[string]string{"route": "/dashboard"}},
		},
		ExpectedTimeframe: "ongoing",
		ConfidenceScore:   0.6,
		RelatedMetrics:    []string{"ops.total"},
	}
}

// latestWeight returns the most recent known body weight, or 0.
func latestWeight(profile UserProfile) float64 {
	var weight float64
	var at time.Time
	for _, s := range profile.MetricsHistory {
		if s.WeightKg > 0 && !s.Date.Before(at) {
			weight, at = s.WeightKg, s.Date
		}
	}
	for _, s := range profile.BodyScans {
		if s.WeightKg > 0 && s.Date.After(at) {
			weight, at = s.WeightKg, s.Date
		}
	}
	return weight
}
