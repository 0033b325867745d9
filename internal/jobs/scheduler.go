package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitscore/internal/telemetry/metrics"
	"github.com/2beens/fitscore/internal/telemetry/tracing"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	JobHistoryPrune = "history-prune"
	JobSessionClean = "session-clean"

	jobTimeout = 5 * time.Minute
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=jobs_test

type historyPruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type sessionCleaner interface {
	ScanAndClean(ctx context.Context) (int, error)
}

type NewSchedulerParams struct {
	HistoryPruner        historyPruner
	SessionCleaner       sessionCleaner
	MetricsManager       *metrics.Manager
	HistoryRetention     time.Duration
	HistoryPruneSchedule string
	SessionCleanSchedule string
	// Now defaults to time.Now
	Now func() time.Time
}

// Scheduler runs the periodic maintenance jobs, both of them in UTC.
type Scheduler struct {
	cron             *cron.Cron
	historyPruner    historyPruner
	sessionCleaner   sessionCleaner
	metricsManager   *metrics.Manager
	historyRetention time.Duration
	now              func() time.Time
}

func NewScheduler(params NewSchedulerParams) (*Scheduler, error) {
	if params.HistoryRetention <= 0 {
		return nil, fmt.Errorf("invalid history retention: %s", params.HistoryRetention)
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		historyPruner:    params.HistoryPruner,
		sessionCleaner:   params.SessionCleaner,
		metricsManager:   params.MetricsManager,
		historyRetention: params.HistoryRetention,
		now:              now,
	}

	if _, err := s.cron.AddFunc(params.HistoryPruneSchedule, s.runWithTimeout(s.PruneHistory)); err != nil {
		return nil, fmt.Errorf("add %s job [%s]: %w", JobHistoryPrune, params.HistoryPruneSchedule, err)
	}
	if _, err := s.cron.AddFunc(params.SessionCleanSchedule, s.runWithTimeout(s.CleanSessions)); err != nil {
		return nil, fmt.Errorf("add %s job [%s]: %w", JobSessionClean, params.SessionCleanSchedule, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, entry := range s.cron.Entries() {
		log.Debugf("job %d scheduled, next run: %s", entry.ID, entry.Next)
	}
}

// Stop prevents new runs and waits for the running jobs, at most until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		log.Debugln("jobs scheduler stopped")
	case <-ctx.Done():
		log.Warnf("jobs scheduler stop: %s", ctx.Err())
	}
}

func (s *Scheduler) runWithTimeout(job func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := job(ctx); err != nil {
			log.Errorf("scheduled job: %s", err)
		}
	}
}

// PruneHistory deletes the snapshots older than the retention period.
func (s *Scheduler) PruneHistory(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "job."+JobHistoryPrune)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cutoff := s.now().Add(-s.historyRetention)
	pruned, err := s.historyPruner.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("%s: %w", JobHistoryPrune, err)
	}

	s.metricsManager.CounterPrunedSnapshots.Add(float64(pruned))
	log.Infof("%s: removed %d snapshots older than %s", JobHistoryPrune, pruned, cutoff.Format(time.RFC3339))
	return nil
}

// CleanSessions removes the expired login sessions.
func (s *Scheduler) CleanSessions(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "job."+JobSessionClean)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cleaned, err := s.sessionCleaner.ScanAndClean(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", JobSessionClean, err)
	}

	s.metricsManager.CounterCleanedSessions.Add(float64(cleaned))
	log.Infof("%s: removed %d sessions", JobSessionClean, cleaned)
	return nil
}
