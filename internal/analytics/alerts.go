package analytics

import (
	"fmt"
	"time"
)

type AlertLevel string

const (
	AlertCritical AlertLevel = "Critical"
	AlertWarning  AlertLevel = "Warning"
	AlertInfo     AlertLevel = "Info"
)

// Alert is independent of recommendations, both may be raised for the same condition.
type Alert struct {
	ID              string     `json:"id"`
	Level           AlertLevel `json:"level"`
	Reason          string     `json:"reason"`
	MetricsInvolved []string   `json:"metricsInvolved"`
	Timestamp       time.Time  `json:"timestamp"`
	SuggestedAction *string    `json:"suggestedAction,omitempty"`
	IsAcknowledged  bool       `json:"isAcknowledged"`
}

type Alerter struct {
	policy Policy
	newID  func() string
}

func NewAlerter(policy Policy, newID func() string) *Alerter {
	return &Alerter{
		policy: policy.clone(),
		newID:  newID,
	}
}

// Generate returns the alerts raised by the score and the aggregated nodes, possibly none.
func (a *Alerter) Generate(ops OPSScore, data AggregatedData, now time.Time) []Alert {
	alerts := make([]Alert, 0, 3)

	if ops.Delta < a.policy.Rules.AlertDeltaDrop {
		alerts = append(alerts, a.alert(
			AlertCritical,
			fmt.Sprintf("Overall performance dropped by %.1f%% since the last score", -ops.Delta),
			[]string{"ops.delta", "ops.total"},
			"Review recovery and training load",
			now,
		))
	}

	if data.Health.AvgSleep < a.policy.Rules.AlertSleepHours {
		alerts = append(alerts, a.alert(
			AlertWarning,
			fmt.Sprintf("Chronic sleep deprivation: averaging %.1f hours per night", data.Health.AvgSleep),
			[]string{"health.avgSleep"},
			"Prioritize at least 7 hours of sleep",
			now,
		))
	}

	if pr := data.Performance.PRCountMonthly; pr > 0 {
		alerts = append(alerts, a.alert(
			AlertInfo,
			fmt.Sprintf("New PRs: %d personal records this month", pr),
			[]string{"performance.prCountMonthly"},
			"",
			now,
		))
	}

	return alerts
}

func (a *Alerter) alert(level AlertLevel, reason string, metrics []string, suggestion string, now time.Time) Alert {
	alert := Alert{
		ID:              "alert-" + a.newID(),
		Level:           level,
		Reason:          reason,
		MetricsInvolved: metrics,
		Timestamp:       now,
	}
	if suggestion != "" {
		alert.SuggestedAction = &suggestion
	}
	return alert
}
