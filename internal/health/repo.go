package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db db.PoolSource
}

func NewRepo(db db.PoolSource) *Repo {
	return &Repo{
		db: db,
	}
}

// RecordEvent appends a health event. A placeholder profile is created for
// environments that were never configured, so the event always has a parent.
func (r *Repo) RecordEvent(ctx context.Context, event Event) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.health.recordEvent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("status", string(event.Status)))

	if event.Environment == "" {
		return errors.New("event environment empty")
	}

	pool, err := r.db.Pool()
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO database_connection_profile
					(environment, host, port, schema_name, credential_ref)
				VALUES ($1, 'unknown', 0, 'public', 'unset')
				ON CONFLICT (environment) DO NOTHING;`,
			event.Environment,
		); err != nil {
			return fmt.Errorf("ensure profile: %w", err)
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO connection_health_event
					(environment, status, latency_ms, error_code, last_failure_at)
				VALUES ($1, $2, $3, $4, $5);`,
			event.Environment, event.Status, event.LatencyMs, event.ErrorCode, event.LastFailureAt,
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		return nil
	})
}

func (r *Repo) UpsertProfile(ctx context.Context, profile Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.health.upsertProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pool, err := r.db.Pool()
	if err != nil {
		return err
	}

	_, err = pool.Exec(
		ctx,
		`INSERT INTO database_connection_profile
				(environment, host, port, schema_name, credential_ref, rotation_interval_hours, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now())
			ON CONFLICT (environment) DO UPDATE SET
				host = EXCLUDED.host,
				port = EXCLUDED.port,
				schema_name = EXCLUDED.schema_name,
				credential_ref = EXCLUDED.credential_ref,
				rotation_interval_hours = EXCLUDED.rotation_interval_hours,
				updated_at = now();`,
		profile.Environment, profile.Host, profile.Port, profile.Schema,
		profile.CredentialRef, profile.RotationIntervalHours,
	)
	return err
}

// ListEvents returns the latest events of the environment, newest first.
func (r *Repo) ListEvents(ctx context.Context, environment string, limit int) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.health.listEvents")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(
		ctx,
		`
			SELECT
				id, environment, status, latency_ms, error_code, last_failure_at, created_at
			FROM connection_health_event
			WHERE environment = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2;`,
		environment, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var e Event
		var latency *int64
		if err := rows.Scan(
			&e.ID, &e.Environment, &e.Status, &latency, &e.ErrorCode, &e.LastFailureAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if latency != nil {
			e.LatencyMs = *latency
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
