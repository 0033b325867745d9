package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitscore/internal/analytics"
	"github.com/2beens/fitscore/internal/telemetry/tracing"
	"github.com/2beens/fitscore/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrDailyLogNotFound = errors.New("daily log not found")
)

const dayLayout = "2006-01-02"

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetProfile(ctx context.Context, userID string) (_ *analytics.UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, data FROM user_profile WHERE id = $1;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, ErrProfileNotFound
	}

	var id, name string
	var dataJson []byte
	if err := rows.Scan(&id, &name, &dataJson); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	var profile analytics.UserProfile
	if err := json.Unmarshal(dataJson, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile data: %w", err)
	}
	// columns are the source of truth for identity
	profile.ID = id
	profile.Name = name

	return &profile, nil
}

func (r *Repo) UpsertProfile(ctx context.Context, profile analytics.UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", profile.ID))

	if profile.ID == "" {
		return errors.New("profile id empty")
	}

	dataJson, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_profile (id, name, data, updated_at)
			VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at;`,
		profile.ID, profile.Name, dataJson, time.Now().UTC(),
	)
	return err
}

// DeleteProfile removes the profile, its daily logs are removed by the cascading FK.
func (r *Repo) DeleteProfile(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM user_profile WHERE id = $1;`,
		userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// UpsertDailyLog stores the log under its calendar day, replacing an existing entry.
func (r *Repo) UpsertDailyLog(ctx context.Context, userID string, dailyLog analytics.DailyLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.logs.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("day", dailyLog.Date.Format(dayLayout)),
	)

	if dailyLog.Date.IsZero() {
		return errors.New("daily log date empty")
	}

	dataJson, err := json.Marshal(dailyLog)
	if err != nil {
		return fmt.Errorf("marshal daily log: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO daily_log (user_id, day, data)
			VALUES ($1, $2, $3)
		ON CONFLICT (user_id, day) DO UPDATE SET data = EXCLUDED.data;`,
		userID, dailyLog.Date.Format(dayLayout), dataJson,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrProfileNotFound
		}
		return err
	}

	return nil
}

// ListDailyLogs returns the newest limit logs of the user in chronological order.
func (r *Repo) ListDailyLogs(ctx context.Context, userID string, limit int) (_ []analytics.DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.logs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("limit", limit),
	)

	if limit <= 0 {
		return []analytics.DailyLog{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT day, data FROM (
			SELECT day, data FROM daily_log
			WHERE user_id = $1
			ORDER BY day DESC
			LIMIT $2
		) latest
		ORDER BY day ASC;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]analytics.DailyLog, 0, limit)
	for rows.Next() {
		var day time.Time
		var dataJson []byte
		if err := rows.Scan(&day, &dataJson); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		var dailyLog analytics.DailyLog
		if err := json.Unmarshal(dataJson, &dailyLog); err != nil {
			return nil, fmt.Errorf("unmarshal daily log %s: %w", day.Format(dayLayout), err)
		}
		dailyLog.Date = day.UTC()
		logs = append(logs, dailyLog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *Repo) DeleteDailyLog(ctx context.Context, userID string, day time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.logs.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("day", day.Format(dayLayout)),
	)

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM daily_log WHERE user_id = $1 AND day = $2;`,
		userID, day.Format(dayLayout),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDailyLogNotFound
	}
	return nil
}
