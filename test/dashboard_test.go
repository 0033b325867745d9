//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/fitscore/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestPublicRoutes() {
	ctx := context.Background()
	t := s.T()

	status, body := s.do(ctx, "GET", "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "test-version-info")

	status, _ = s.do(ctx, "GET", "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(ctx, "GET", "/dashboard/anyone", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(ctx, "GET", "/dashboard/anyone", "not-a-session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestDashboardFlow() {
	ctx := context.Background()
	t := s.T()

	userID := "it-user-1"
	token := s.newSession(ctx, userID)

	status, _ := s.do(ctx, "GET", "/dashboard/"+userID, token, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(ctx, "GET", "/profiles/someone-else", token, nil)
	require.Equal(t, http.StatusForbidden, status)

	now := time.Now().UTC()
	profile := analytics.UserProfile{
		Name: "Integration",
		Goals: []analytics.Goal{
			{Type: analytics.GoalMuscleGain, Primary: true},
		},
		TrainingLogs: []analytics.TrainingLog{
			{
				Date:      now.AddDate(0, 0, -1),
				Completed: true,
				Exercises: []analytics.ExerciseLog{
					{Name: "squat", Sets: []analytics.SetLog{{WeightKg: 100, Reps: 5, Completed: true}}},
				},
			},
		},
	}
	status, _ = s.do(ctx, "PUT", "/profiles/"+userID, token, profile)
	require.Equal(t, http.StatusOK, status)

	for i := 14; i > 0; i-- {
		status, _ = s.do(ctx, "POST", "/profiles/"+userID+"/logs", token, analytics.DailyLog{
			Date:        now.AddDate(0, 0, -i),
			SleepHours:  7.5,
			EnergyLevel: 7,
			StressIndex: 30,
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := s.do(ctx, "GET", "/profiles/"+userID+"/logs?limit=5", token, nil)
	require.Equal(t, http.StatusOK, status)
	var logs []analytics.DailyLog
	require.NoError(t, json.Unmarshal(body, &logs))
	require.Len(t, logs, 5)
	assert.True(t, logs[0].Date.Before(logs[4].Date))

	status, body = s.do(ctx, "GET", "/dashboard/"+userID, token, nil)
	require.Equal(t, http.StatusOK, status)
	var state analytics.AnalyticsState
	require.NoError(t, json.Unmarshal(body, &state))
	assert.GreaterOrEqual(t, state.OPS.Total, 0)
	assert.LessOrEqual(t, state.OPS.Total, 100)
	assert.Len(t, state.OPS.Breakdown, len(analytics.Modules))
	assert.NotEmpty(t, state.Recommendations)
	assert.Equal(t, analytics.TrendStable, state.OPS.Trend)

	// the second run is within the snapshot interval, so history keeps one entry
	status, _ = s.do(ctx, "GET", "/dashboard/"+userID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = s.do(ctx, "GET", "/dashboard/"+userID+"/history", token, nil)
	require.Equal(t, http.StatusOK, status)
	var snapshots []analytics.Snapshot
	require.NoError(t, json.Unmarshal(body, &snapshots))
	require.Len(t, snapshots, 1)
	assert.Equal(t, state.OPS.Total, snapshots[0].Total)

	day := now.AddDate(0, 0, -1).Format("2006-01-02")
	status, _ = s.do(ctx, "DELETE", "/profiles/"+userID+"/logs/"+day, token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.do(ctx, "DELETE", "/profiles/"+userID+"/logs/"+day, token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(ctx, "DELETE", "/profiles/"+userID, token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.do(ctx, "GET", "/profiles/"+userID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestRevokedSession() {
	ctx := context.Background()
	t := s.T()

	token := s.newSession(ctx, "it-user-2")
	status, _ := s.do(ctx, "GET", "/dashboard/it-user-2", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	revoked, err := s.authService.Revoke(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	status, _ = s.do(ctx, "GET", "/dashboard/it-user-2", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
