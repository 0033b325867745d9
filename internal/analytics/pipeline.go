package analytics

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a persisted OPS total of a user at a given time.
type Snapshot struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"userId"`
	Total     int            `json:"total"`
	Breakdown map[Module]int `json:"breakdown"`
	CreatedAt time.Time      `json:"createdAt"`
}

type TrendPoint struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// AnalyticsState is everything the dashboard shows for one pipeline run.
type AnalyticsState struct {
	OPS             OPSScore         `json:"ops"`
	Recommendations []Recommendation `json:"recommendations"`
	Alerts          []Alert          `json:"alerts"`
	WeeklyTrend     []TrendPoint     `json:"weeklyTrend"`
	Aggregated      AggregatedData   `json:"aggregated"`
}

type NewPipelineParams struct {
	Policy     Policy
	Strategies Strategies
	// Now defaults to time.Now
	Now func() time.Time
	// RandSource drives the synthetic weekly trend, defaults to a time seeded source
	RandSource rand.Source
	// NewID defaults to random UUIDs
	NewID func() string
}

// Pipeline runs aggregate -> score -> recommend -> alert for one user.
// It holds no mutable state besides its random source, so it's safe for concurrent use.
type Pipeline struct {
	policy      Policy
	now         func() time.Time
	aggregator  *Aggregator
	scorer      *Scorer
	recommender *Recommender
	alerter     *Alerter
	jitter      *lockedRand
}

func NewPipeline(params NewPipelineParams) (*Pipeline, error) {
	if err := params.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	if params.Now == nil {
		params.Now = time.Now
	}
	if params.RandSource == nil {
		params.RandSource = rand.NewSource(time.Now().UnixNano())
	}
	if params.NewID == nil {
		params.NewID = uuid.NewString
	}

	return &Pipeline{
		policy:      params.Policy.clone(),
		now:         params.Now,
		aggregator:  NewAggregator(params.Policy, params.Strategies, params.Now),
		scorer:      NewScorer(params.Policy),
		recommender: NewRecommender(params.Policy, params.NewID),
		alerter:     NewAlerter(params.Policy, params.NewID),
		jitter:      &lockedRand{r: rand.New(params.RandSource)},
	}, nil
}

func (p *Pipeline) Policy() Policy {
	return p.policy.clone()
}

// Run computes a fresh analytics state. history holds the persisted snapshots
// of the user, oldest first; it may be empty.
// The delta is measured against the newest snapshot at least a trend week old,
// and the weekly trend uses one point per day.
func (p *Pipeline) Run(profile UserProfile, logs []DailyLog, history []Snapshot) AnalyticsState {
	now := p.now()

	data := p.aggregator.Aggregate(profile, logs)

	daily := dailySnapshots(history, now)
	ops := p.scorer.ComputeOPS(data, p.weekAgoSnapshot(daily, now), now)

	recommendations := p.recommender.Generate(ops, profile, data, now)
	alerts := p.alerter.Generate(ops, data, now)

	return AnalyticsState{
		OPS:             ops,
		Recommendations: recommendations,
		Alerts:          alerts,
		WeeklyTrend:     p.weeklyTrend(ops.Total, daily, now),
		Aggregated:      data,
	}
}

func utcDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// dailySnapshots keeps the last snapshot of every day before today (UTC).
// Today is represented by the current run.
func dailySnapshots(history []Snapshot, now time.Time) []Snapshot {
	today := utcDay(now)
	daily := make([]Snapshot, 0, len(history))
	for _, s := range history {
		day := utcDay(s.CreatedAt)
		if !day.Before(today) {
			continue
		}
		if n := len(daily); n > 0 && utcDay(daily[n-1].CreatedAt).Equal(day) {
			daily[n-1] = s
			continue
		}
		daily = append(daily, s)
	}
	return daily
}

func (p *Pipeline) weekAgoSnapshot(daily []Snapshot, now time.Time) *Snapshot {
	cutoff := utcDay(now).AddDate(0, 0, -p.policy.Windows.TrendWeek)
	for i := len(daily) - 1; i >= 0; i-- {
		if !utcDay(daily[i].CreatedAt).After(cutoff) {
			return &daily[i]
		}
	}
	return nil
}

const weeklyTrendPoints = 7

// weeklyTrend uses the daily snapshots of the past six days followed by the current total.
// With fewer than 2 such points a synthetic series around the current total is returned.
func (p *Pipeline) weeklyTrend(total int, daily []Snapshot, now time.Time) []TrendPoint {
	firstDay := utcDay(now).AddDate(0, 0, -(weeklyTrendPoints - 1))
	week := make([]Snapshot, 0, weeklyTrendPoints-1)
	for _, s := range daily {
		if !utcDay(s.CreatedAt).Before(firstDay) {
			week = append(week, s)
		}
	}

	if len(week) >= 2 {
		points := make([]TrendPoint, 0, len(week)+1)
		for _, s := range week {
			points = append(points, TrendPoint{Date: s.CreatedAt, Score: s.Total})
		}
		return append(points, TrendPoint{Date: now, Score: total})
	}

	points := make([]TrendPoint, weeklyTrendPoints)
	for i := range points {
		score := total
		if i < weeklyTrendPoints-1 && p.policy.TrendJitter > 0 {
			score += p.jitter.Intn(2*p.policy.TrendJitter+1) - p.policy.TrendJitter
		}
		points[i] = TrendPoint{
			Date:  now.AddDate(0, 0, i-(weeklyTrendPoints-1)),
			Score: int(clamp(float64(score), 0, 100)),
		}
	}
	return points
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
