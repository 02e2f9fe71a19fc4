package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg"
	"github.com/2beens/coachdesk/pkg/editor"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

const (
	sessionCodeConstraint = "training_session_session_code_key"
	sectionPKConstraint   = "session_section_pkey"
	exercisePKConstraint  = "session_exercise_pkey"
)

const selectSession = `
	SELECT
		id::text, micro_cycle_id::text, name, session_code, to_char(session_date, 'YYYY-MM-DD'),
		start_time, end_time, duration_minutes, location, intensity, trainer, athlete,
		participants, notes, status, created_at, updated_at
	FROM training_session`

// Repo stores sessions as one training_session row plus its sections and
// exercises. Per-set values live in jsonb arrays.
type Repo struct {
	db db.PoolSource
}

func NewRepo(db db.PoolSource) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts the session with all its children. Every id must already
// be a durable uuid.
func (r *Repo) Create(ctx context.Context, athleteID string, s editor.Draft) (_ *editor.Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}

	sessionID, _ := s.ID.Durable()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO training_session
					(id, athlete_id, micro_cycle_id, name, session_code, session_date, start_time, end_time,
					 duration_minutes, location, intensity, trainer, athlete, participants, notes, status)
				VALUES ($1::text::uuid, $2, $3::text::uuid, $4, $5, NULLIF($6::text, '')::date, $7, $8,
					 $9, $10, $11, $12, $13, $14, $15, $16);`,
			sessionID, athleteID, s.MicroCycleID, s.Name, s.SessionCode, s.Date, s.StartTime, s.EndTime,
			s.DurationMinutes, s.Location, intensityText(s.Intensity), s.Trainer, s.Athlete, s.Participants,
			s.Notes, string(s.Status),
		); err != nil {
			return mapWriteError(err)
		}
		return insertChildren(ctx, tx, sessionID, s)
	}); err != nil {
		return nil, err
	}

	return r.Get(ctx, athleteID, sessionID)
}

// Update replaces the session and all of its children.
func (r *Repo) Update(ctx context.Context, athleteID string, s editor.Draft) (_ *editor.Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}

	sessionID, _ := s.ID.Durable()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			`UPDATE training_session SET
					micro_cycle_id = $3::text::uuid, name = $4, session_code = $5,
					session_date = NULLIF($6::text, '')::date, start_time = $7, end_time = $8,
					duration_minutes = $9, location = $10, intensity = $11, trainer = $12, athlete = $13,
					participants = $14, notes = $15, status = $16, updated_at = now()
				WHERE id = $1::text::uuid AND athlete_id = $2;`,
			sessionID, athleteID, s.MicroCycleID, s.Name, s.SessionCode, s.Date, s.StartTime, s.EndTime,
			s.DurationMinutes, s.Location, intensityText(s.Intensity), s.Trainer, s.Athlete, s.Participants,
			s.Notes, string(s.Status),
		)
		if err != nil {
			return mapWriteError(err)
		}
		if tag.RowsAffected() == 0 {
			return ErrSessionNotFound
		}

		// exercises go with their sections
		if _, err := tx.Exec(ctx, `DELETE FROM session_section WHERE session_id = $1::text::uuid;`, sessionID); err != nil {
			return fmt.Errorf("delete sections: %w", err)
		}
		return insertChildren(ctx, tx, sessionID, s)
	}); err != nil {
		return nil, err
	}

	return r.Get(ctx, athleteID, sessionID)
}

func (r *Repo) UpdateStatus(ctx context.Context, athleteID, id string, status editor.Status) (_ *editor.Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.updateStatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}

	tag, err := pool.Exec(
		ctx,
		`UPDATE training_session SET status = $3, updated_at = now()
			WHERE id = $1::text::uuid AND athlete_id = $2;`,
		id, athleteID, string(status),
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrSessionNotFound
	}

	return r.Get(ctx, athleteID, id)
}

func (r *Repo) Get(ctx context.Context, athleteID, id string) (_ *editor.Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}

	s, err := scanSession(pool.QueryRow(
		ctx,
		selectSession+` WHERE id = $1::text::uuid AND athlete_id = $2;`,
		id, athleteID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	sessions := []editor.Draft{s}
	if err := loadChildren(ctx, pool, sessions); err != nil {
		return nil, err
	}
	return &sessions[0], nil
}

// List returns the sessions of one athlete ordered by date, sessions without
// a date last.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []editor.Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := pool.Query(
		ctx,
		selectSession+`
			WHERE athlete_id = $1
				AND ($2::date IS NULL OR session_date >= $2::date)
				AND ($3::date IS NULL OR session_date <= $3::date)
			ORDER BY session_date ASC NULLS LAST, created_at ASC
			LIMIT $4;`,
		params.AthleteID, params.Start, params.End, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []editor.Draft{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadChildren(ctx, pool, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func insertChildren(ctx context.Context, tx pgx.Tx, sessionID string, s editor.Draft) error {
	batch := &pgx.Batch{}
	for _, section := range s.Sections {
		sectionID, _ := section.ID.Durable()
		batch.Queue(
			`INSERT INTO session_section (id, session_id, category, section_order)
				VALUES ($1::text::uuid, $2::text::uuid, $3, $4);`,
			sectionID, sessionID, string(section.Category), section.Order,
		)
	}
	for _, e := range s.Exercises {
		exerciseID, _ := e.ID.Durable()
		sectionID, _ := e.SectionID.Durable()
		reps, err := json.Marshal(nonNil(e.RepsPerSet))
		if err != nil {
			return fmt.Errorf("marshal reps: %w", err)
		}
		loads, err := json.Marshal(nonNil(e.LoadPerSet))
		if err != nil {
			return fmt.Errorf("marshal loads: %w", err)
		}
		batch.Queue(
			`INSERT INTO session_exercise
					(id, session_id, section_id, name, pace, sets, reps_per_set, load_per_set,
					 duration_seconds, rest_seconds, exercise_order, notes)
				VALUES ($1::text::uuid, $2::text::uuid, $3::text::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
			exerciseID, sessionID, sectionID, e.Name, e.Pace, e.Sets, reps, loads,
			e.DurationSeconds, e.RestSeconds, e.Order, e.Notes,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert children: %w", mapWriteError(err))
	}
	return nil
}

func loadChildren(ctx context.Context, q querier, sessions []editor.Draft) error {
	if len(sessions) == 0 {
		return nil
	}

	index := make(map[string]int, len(sessions))
	ids := make([]string, 0, len(sessions))
	for i := range sessions {
		id, _ := sessions[i].ID.Durable()
		index[id] = i
		ids = append(ids, id)
		sessions[i].Sections = []editor.Section{}
		sessions[i].Exercises = []editor.Exercise{}
	}

	sectionRows, err := q.Query(
		ctx,
		`SELECT id::text, session_id::text, category, section_order
			FROM session_section
			WHERE session_id = ANY($1::text[]::uuid[])
			ORDER BY section_order ASC;`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("query sections: %w", err)
	}
	defer sectionRows.Close()

	for sectionRows.Next() {
		var id, sessionID, category string
		var order int
		if err := sectionRows.Scan(&id, &sessionID, &category, &order); err != nil {
			return fmt.Errorf("scan section: %w", err)
		}
		i := index[sessionID]
		sessions[i].Sections = append(sessions[i].Sections, editor.Section{
			ID:       editor.DurableID(id),
			Category: editor.SectionCategory(category),
			Order:    order,
		})
	}
	if err := sectionRows.Err(); err != nil {
		return err
	}

	exerciseRows, err := q.Query(
		ctx,
		`SELECT
				id::text, session_id::text, section_id::text, name, pace, sets, reps_per_set, load_per_set,
				duration_seconds, rest_seconds, exercise_order, notes
			FROM session_exercise
			WHERE session_id = ANY($1::text[]::uuid[])
			ORDER BY exercise_order ASC;`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("query exercises: %w", err)
	}
	defer exerciseRows.Close()

	for exerciseRows.Next() {
		var (
			e                    editor.Exercise
			id, sessionID, secID string
			repsJson, loadsJson  []byte
		)
		if err := exerciseRows.Scan(
			&id, &sessionID, &secID, &e.Name, &e.Pace, &e.Sets, &repsJson, &loadsJson,
			&e.DurationSeconds, &e.RestSeconds, &e.Order, &e.Notes,
		); err != nil {
			return fmt.Errorf("scan exercise: %w", err)
		}
		if err := json.Unmarshal(repsJson, &e.RepsPerSet); err != nil {
			return fmt.Errorf("unmarshal reps of %s: %w", id, err)
		}
		if err := json.Unmarshal(loadsJson, &e.LoadPerSet); err != nil {
			return fmt.Errorf("unmarshal loads of %s: %w", id, err)
		}
		e.ID = editor.DurableID(id)
		e.SectionID = editor.DurableID(secID)

		i := index[sessionID]
		sessions[i].Exercises = append(sessions[i].Exercises, e)
	}
	return exerciseRows.Err()
}

func scanSession(row pgx.Row) (editor.Draft, error) {
	var (
		s         editor.Draft
		id        string
		date      *string
		intensity *string
		status    string
	)
	if err := row.Scan(
		&id, &s.MicroCycleID, &s.Name, &s.SessionCode, &date,
		&s.StartTime, &s.EndTime, &s.DurationMinutes, &s.Location, &intensity, &s.Trainer, &s.Athlete,
		&s.Participants, &s.Notes, &status, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return editor.Draft{}, err
	}

	s.ID = editor.DurableID(id)
	if date != nil {
		s.Date = *date
	}
	if intensity != nil {
		s.Intensity = editor.Ptr(editor.Intensity(*intensity))
	}
	s.Status = editor.Status(status)
	return s, nil
}

func mapWriteError(err error) error {
	switch {
	case pkg.IsUniqueViolationError(err) && pkg.ConstraintName(err) == sessionCodeConstraint:
		return fmt.Errorf("%w: %w", ErrSessionCodeTaken, err)
	case pkg.IsUniqueViolationError(err) && pkg.ConstraintName(err) == sectionPKConstraint:
		// the client sent a section id owned by another session
		return &ValidationError{Reason: "section id already in use", Err: err}
	case pkg.IsUniqueViolationError(err) && pkg.ConstraintName(err) == exercisePKConstraint:
		return &ValidationError{Reason: "exercise id already in use", Err: err}
	case pkg.IsForeignKeyViolationError(err):
		return fmt.Errorf("%w: %w", ErrMicroCycleNotFound, err)
	default:
		return err
	}
}

func intensityText(i *editor.Intensity) *string {
	if i == nil {
		return nil
	}
	return editor.Ptr(string(*i))
}

func nonNil[T any](s []*T) []*T {
	if s == nil {
		return []*T{}
	}
	return s
}
