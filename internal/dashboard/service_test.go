package dashboard_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/2beens/fitscore/internal/analytics"
	"github.com/2beens/fitscore/internal/dashboard"
	"github.com/2beens/fitscore/internal/profiles"
	"github.com/2beens/fitscore/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	profiles       *MockprofileStore
	history        *MockhistoryStore
	metricsManager *metrics.Manager
}

func newTestService(t *testing.T, minInterval time.Duration) (*dashboard.Service, testDeps) {
	t.Helper()

	pipeline, err := analytics.NewPipeline(analytics.NewPipelineParams{
		Policy:     analytics.DefaultPolicy(),
		Strategies: analytics.DefaultStrategies(),
		Now:        func() time.Time { return testNow },
		RandSource: rand.NewSource(1),
	})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	deps := testDeps{
		profiles:       NewMockprofileStore(ctrl),
		history:        NewMockhistoryStore(ctrl),
		metricsManager: metrics.NewTestManager(),
	}

	return dashboard.NewService(dashboard.NewServiceParams{
		Pipeline:            pipeline,
		Profiles:            deps.profiles,
		History:             deps.history,
		MetricsManager:      deps.metricsManager,
		SnapshotMinInterval: minInterval,
	}), deps
}

func testLogs() []analytics.DailyLog {
	logs := make([]analytics.DailyLog, 0, 14)
	for i := 14; i > 0; i-- {
		logs = append(logs, analytics.DailyLog{
			Date:        testNow.AddDate(0, 0, -i),
			SleepHours:  5,
			EnergyLevel: 4,
			StressIndex: 70,
		})
	}
	return logs
}

func expectLoad(deps testDeps, userID string, history []analytics.Snapshot) {
	deps.profiles.EXPECT().
		GetProfile(gomock.Any(), userID).
		Return(&analytics.UserProfile{ID: userID}, nil)
	deps.profiles.EXPECT().
		ListDailyLogs(gomock.Any(), userID, 90).
		Return(testLogs(), nil)
	deps.history.EXPECT().
		Latest(gomock.Any(), userID, 14).
		Return(history, nil)
}

func TestService_Dashboard(t *testing.T) {
	service, deps := newTestService(t, 15*time.Minute)
	ctx := context.Background()

	history := []analytics.Snapshot{
		{UserID: "u1", Total: 95, CreatedAt: testNow.AddDate(0, 0, -7)},
		{UserID: "u1", Total: 90, CreatedAt: testNow.AddDate(0, 0, -2)},
		{UserID: "u1", Total: 95, CreatedAt: testNow.AddDate(0, 0, -1)},
	}
	expectLoad(deps, "u1", history)

	var appended analytics.Snapshot
	deps.history.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s analytics.Snapshot) (*analytics.Snapshot, error) {
			appended = s
			s.ID = 1
			return &s, nil
		})

	state, err := service.Dashboard(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, state)

	assert.Equal(t, "u1", appended.UserID)
	assert.Equal(t, state.OPS.Total, appended.Total)
	assert.Equal(t, state.OPS.Breakdown, appended.Breakdown)
	assert.Equal(t, testNow, appended.CreatedAt)

	// poor sleep against a 95 total a week ago
	assert.Equal(t, analytics.TrendDeclining, state.OPS.Trend)
	require.Len(t, state.WeeklyTrend, 3)
	assert.Equal(t, 95, state.WeeklyTrend[1].Score)

	m := deps.metricsManager
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterPipelineRuns.WithLabelValues(string(analytics.TrendDeclining))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterSnapshots))
	assert.Equal(t, float64(state.OPS.Total), testutil.ToFloat64(m.GaugeLastOPS))
	require.NotEmpty(t, state.Recommendations)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRecommendations.WithLabelValues(analytics.RuleSleepDebt)))
	for _, alert := range state.Alerts {
		assert.Positive(t, testutil.ToFloat64(m.CounterAlerts.WithLabelValues(string(alert.Level))))
	}
}

func TestService_Dashboard_SubDailySnapshots(t *testing.T) {
	service, deps := newTestService(t, 0)
	ctx := context.Background()

	history := []analytics.Snapshot{{UserID: "u1", Total: 95, CreatedAt: testNow.AddDate(0, 0, -7)}}
	for i := 0; i < 6; i++ {
		history = append(history, analytics.Snapshot{
			UserID:    "u1",
			Total:     40,
			CreatedAt: testNow.Add(-90*time.Minute + time.Duration(i)*15*time.Minute),
		})
	}
	expectLoad(deps, "u1", history)
	deps.history.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s analytics.Snapshot) (*analytics.Snapshot, error) {
			return &s, nil
		})

	state, err := service.Dashboard(ctx, "u1")
	require.NoError(t, err)

	// compared with the week old total, not with the runs earlier today
	assert.Equal(t, analytics.Delta(state.OPS.Total, 95), state.OPS.Delta)
	assert.Equal(t, analytics.TrendDeclining, state.OPS.Trend)
	require.Len(t, state.WeeklyTrend, 7)
	assert.Equal(t, testNow.AddDate(0, 0, -6), state.WeeklyTrend[0].Date)
}

func TestService_Dashboard_SnapshotThrottled(t *testing.T) {
	service, deps := newTestService(t, 15*time.Minute)
	ctx := context.Background()

	expectLoad(deps, "u1", nil)
	expectLoad(deps, "u1", nil)
	expectLoad(deps, "u2", nil)

	// one append for u1 despite two runs, one for u2
	deps.history.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s analytics.Snapshot) (*analytics.Snapshot, error) {
			return &s, nil
		}).
		Times(2)

	_, err := service.Dashboard(ctx, "u1")
	require.NoError(t, err)
	_, err = service.Dashboard(ctx, "u1")
	require.NoError(t, err)
	_, err = service.Dashboard(ctx, "u2")
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(deps.metricsManager.CounterSnapshots))
}

func TestService_Dashboard_NoThrottle(t *testing.T) {
	service, deps := newTestService(t, 0)
	ctx := context.Background()

	expectLoad(deps, "u1", nil)
	expectLoad(deps, "u1", nil)
	deps.history.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s analytics.Snapshot) (*analytics.Snapshot, error) {
			return &s, nil
		}).
		Times(2)

	_, err := service.Dashboard(ctx, "u1")
	require.NoError(t, err)
	_, err = service.Dashboard(ctx, "u1")
	require.NoError(t, err)
}

func TestService_Dashboard_PersistFailure(t *testing.T) {
	service, deps := newTestService(t, 15*time.Minute)
	ctx := context.Background()

	expectLoad(deps, "u1", nil)
	expectLoad(deps, "u1", nil)
	// a failed append is not throttled, so the next run retries it
	deps.history.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down")).
		Times(2)

	state, err := service.Dashboard(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, analytics.TrendStable, state.OPS.Trend)

	_, err = service.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, testutil.ToFloat64(deps.metricsManager.CounterSnapshots))
}

func TestService_Dashboard_LoadErrors(t *testing.T) {
	service, deps := newTestService(t, time.Minute)
	ctx := context.Background()

	deps.profiles.EXPECT().
		GetProfile(gomock.Any(), "u1").
		Return(nil, profiles.ErrProfileNotFound)
	state, err := service.Dashboard(ctx, "u1")
	require.ErrorIs(t, err, profiles.ErrProfileNotFound)
	assert.Nil(t, state)

	deps.profiles.EXPECT().
		GetProfile(gomock.Any(), "u1").
		Return(&analytics.UserProfile{ID: "u1"}, nil)
	deps.profiles.EXPECT().
		ListDailyLogs(gomock.Any(), "u1", 90).
		Return(nil, errors.New("timeout"))
	_, err = service.Dashboard(ctx, "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list daily logs")

	deps.profiles.EXPECT().
		GetProfile(gomock.Any(), "u1").
		Return(&analytics.UserProfile{ID: "u1"}, nil)
	deps.profiles.EXPECT().
		ListDailyLogs(gomock.Any(), "u1", 90).
		Return(nil, nil)
	deps.history.EXPECT().
		Latest(gomock.Any(), "u1", 14).
		Return(nil, errors.New("timeout"))
	_, err = service.Dashboard(ctx, "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot history")

	assert.Zero(t, testutil.CollectAndCount(deps.metricsManager.CounterPipelineRuns))
}

func TestService_History(t *testing.T) {
	service, deps := newTestService(t, time.Minute)
	ctx := context.Background()

	snapshots := []analytics.Snapshot{
		{ID: 1, UserID: "u1", Total: 70},
		{ID: 2, UserID: "u1", Total: 72},
	}
	deps.profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(&analytics.UserProfile{ID: "u1"}, nil)
	deps.history.EXPECT().Latest(gomock.Any(), "u1", 30).Return(snapshots, nil)

	got, err := service.History(ctx, "u1", 30)
	require.NoError(t, err)
	assert.Equal(t, snapshots, got)

	deps.profiles.EXPECT().GetProfile(gomock.Any(), "u2").Return(nil, profiles.ErrProfileNotFound)
	_, err = service.History(ctx, "u2", 30)
	require.ErrorIs(t, err, profiles.ErrProfileNotFound)
}
