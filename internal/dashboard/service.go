package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitscore/internal/analytics"
	"github.com/2beens/fitscore/internal/telemetry/metrics"
	"github.com/2beens/fitscore/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	dailyLogsWindow = 90
	// daily snapshots, enough to reach the week old baseline
	historyWindow = 14

	megabyte          = 1024 * 1024
	throttleCacheSize = 10 * megabyte
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=dashboard_test

type profileStore interface {
	GetProfile(ctx context.Context, userID string) (*analytics.UserProfile, error)
	ListDailyLogs(ctx context.Context, userID string, limit int) ([]analytics.DailyLog, error)
}

type historyStore interface {
	Append(ctx context.Context, snapshot analytics.Snapshot) (*analytics.Snapshot, error)
	Latest(ctx context.Context, userID string, n int) ([]analytics.Snapshot, error)
}

type NewServiceParams struct {
	Pipeline       *analytics.Pipeline
	Profiles       profileStore
	History        historyStore
	MetricsManager *metrics.Manager
	// SnapshotMinInterval is the minimum time between two persisted snapshots of the same user
	SnapshotMinInterval time.Duration
}

type Service struct {
	pipeline            *analytics.Pipeline
	profiles            profileStore
	history             historyStore
	metricsManager      *metrics.Manager
	snapshotMinInterval time.Duration
	// user id -> marker, expiring after snapshotMinInterval
	snapshotThrottle *freecache.Cache
}

func NewService(params NewServiceParams) *Service {
	return &Service{
		pipeline:            params.Pipeline,
		profiles:            params.Profiles,
		history:             params.History,
		metricsManager:      params.MetricsManager,
		snapshotMinInterval: params.SnapshotMinInterval,
		snapshotThrottle:    freecache.NewCache(throttleCacheSize),
	}
}

// Dashboard runs the analytics pipeline over the stored profile, daily logs and
// snapshot history of the user. The resulting total is persisted as a new snapshot,
// at most once per snapshot interval.
func (s *Service) Dashboard(ctx context.Context, userID string) (_ *analytics.AnalyticsState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	logs, err := s.profiles.ListDailyLogs(ctx, userID, dailyLogsWindow)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}

	history, err := s.history.Latest(ctx, userID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("get snapshot history: %w", err)
	}

	start := time.Now()
	state := s.pipeline.Run(*profile, logs, history)
	s.recordRun(state, time.Since(start))

	span.SetAttributes(
		attribute.Int("ops.total", state.OPS.Total),
		attribute.String("ops.trend", string(state.OPS.Trend)),
	)

	if err := s.persistSnapshot(ctx, userID, state.OPS); err != nil {
		log.Errorf("persist snapshot for user %s: %s", userID, err)
	}

	return &state, nil
}

// History returns the latest limit snapshots of the user, oldest first.
func (s *Service) History(ctx context.Context, userID string, limit int) (_ []analytics.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("limit", limit),
	)

	if _, err := s.profiles.GetProfile(ctx, userID); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	snapshots, err := s.history.Latest(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get snapshot history: %w", err)
	}
	return snapshots, nil
}

func (s *Service) persistSnapshot(ctx context.Context, userID string, ops analytics.OPSScore) error {
	key := []byte(userID)
	if _, err := s.snapshotThrottle.Get(key); err == nil {
		log.Tracef("snapshot of user %s throttled", userID)
		return nil
	}

	if _, err := s.history.Append(ctx, analytics.Snapshot{
		UserID:    userID,
		Total:     ops.Total,
		Breakdown: ops.Breakdown,
		CreatedAt: ops.LastUpdated,
	}); err != nil {
		return err
	}
	s.metricsManager.CounterSnapshots.Inc()

	expireSeconds := int(s.snapshotMinInterval.Seconds())
	if expireSeconds <= 0 {
		return nil
	}
	if err := s.snapshotThrottle.Set(key, []byte{1}, expireSeconds); err != nil {
		log.Warnf("set snapshot throttle for user %s: %s", userID, err)
	}

	return nil
}

func (s *Service) recordRun(state analytics.AnalyticsState, duration time.Duration) {
	s.metricsManager.CounterPipelineRuns.WithLabelValues(string(state.OPS.Trend)).Inc()
	s.metricsManager.HistogramPipelineDuration.Observe(duration.Seconds())
	s.metricsManager.HistogramOPSTotal.Observe(float64(state.OPS.Total))
	s.metricsManager.GaugeLastOPS.Set(float64(state.OPS.Total))
	for _, rec := range state.Recommendations {
		s.metricsManager.CounterRecommendations.WithLabelValues(rec.Rule).Inc()
	}
	for _, alert := range state.Alerts {
		s.metricsManager.CounterAlerts.WithLabelValues(string(alert.Level)).Inc()
	}
}
