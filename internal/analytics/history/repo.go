package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitscore/internal/analytics"
	"github.com/2beens/fitscore/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const dayLayout = "2006-01-02"

var ErrInvalidSnapshot = errors.New("invalid snapshot")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Append stores the snapshot as the one of its UTC day, replacing an earlier
// snapshot of the same user and day.
func (r *Repo) Append(ctx context.Context, snapshot analytics.Snapshot) (_ *analytics.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.append")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", snapshot.UserID))

	if snapshot.UserID == "" || snapshot.CreatedAt.IsZero() {
		return nil, fmt.Errorf("%w: user id or timestamp empty", ErrInvalidSnapshot)
	}

	breakdownJson, err := json.Marshal(snapshot.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("marshal breakdown: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO ops_snapshot (user_id, total, breakdown, created_at, day)
			VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, day) DO UPDATE
			SET total = EXCLUDED.total, breakdown = EXCLUDED.breakdown, created_at = EXCLUDED.created_at
		RETURNING id;`,
		snapshot.UserID, snapshot.Total, breakdownJson, snapshot.CreatedAt,
		snapshot.CreatedAt.UTC().Format(dayLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int64
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int64("snapshot.id", id))

	snapshot.ID = id
	return &snapshot, nil
}

// Latest returns up to n most recent snapshots of the user, oldest first.
func (r *Repo) Latest(ctx context.Context, userID string, n int) (_ []analytics.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("limit", n),
	)

	if n <= 0 {
		return []analytics.Snapshot{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, total, breakdown, created_at FROM (
			SELECT * FROM ops_snapshot
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) latest
		ORDER BY created_at ASC, id ASC;`,
		userID, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]analytics.Snapshot, 0, n)
	for rows.Next() {
		var s analytics.Snapshot
		var breakdownJson []byte
		if err := rows.Scan(&s.ID, &s.UserID, &s.Total, &breakdownJson, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(breakdownJson, &s.Breakdown); err != nil {
			return nil, fmt.Errorf("unmarshal breakdown of snapshot %d: %w", s.ID, err)
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}

// PruneOlderThan deletes all snapshots created before cutoff and returns how many were removed.
func (r *Repo) PruneOlderThan(ctx context.Context, cutoff time.Time) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.prune")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM ops_snapshot WHERE created_at < $1;`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("pruned", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}
