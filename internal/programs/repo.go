package programs

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db db.PoolSource
}

func NewRepo(db db.PoolSource) *Repo {
	return &Repo{
		db: db,
	}
}

// GetCurrent returns the most recently updated active or planned program of
// the athlete, with its phases, micro cycles and first sessions.
func (r *Repo) GetCurrent(ctx context.Context, athleteID string) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.getCurrent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}

	p := &Program{
		Phases:   []Phase{},
		Sessions: []SessionSummary{},
	}
	err = pool.QueryRow(
		ctx,
		`SELECT id::text, athlete_id, title, status, description,
				to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
				is_validated, updated_at
			FROM training_program
			WHERE athlete_id = $1 AND status IN ('active', 'planned')
			ORDER BY updated_at DESC
			LIMIT 1;`,
		athleteID,
	).Scan(
		&p.ID, &p.AthleteID, &p.Title, &p.Status, &p.Description,
		&p.StartDate, &p.EndDate, &p.ValidationFlag, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadPhases(ctx, pool, p); err != nil {
		return nil, err
	}
	if err := r.loadSessions(ctx, pool, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repo) loadPhases(ctx context.Context, pool *pgxpool.Pool, p *Program) error {
	rows, err := pool.Query(
		ctx,
		`SELECT id::text, name, phase_order, focus,
				to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD')
			FROM program_phase
			WHERE program_id = $1::text::uuid
			ORDER BY phase_order;`,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("query phases: %w", err)
	}
	defer rows.Close()

	phaseIdx := map[string]int{}
	for rows.Next() {
		ph := Phase{MicroCycles: []MicroCycle{}}
		if err := rows.Scan(&ph.ID, &ph.Name, &ph.Order, &ph.Focus, &ph.StartDate, &ph.EndDate); err != nil {
			return fmt.Errorf("scan phase: %w", err)
		}
		phaseIdx[ph.ID] = len(p.Phases)
		p.Phases = append(p.Phases, ph)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	mcRows, err := pool.Query(
		ctx,
		`SELECT mc.id::text, mc.phase_id::text, mc.week, mc.theme, mc.load, mc.updated_at
			FROM micro_cycle mc
			JOIN program_phase ph ON ph.id = mc.phase_id
			WHERE ph.program_id = $1::text::uuid
			ORDER BY mc.week, mc.id;`,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("query micro cycles: %w", err)
	}
	defer mcRows.Close()

	for mcRows.Next() {
		var mc MicroCycle
		var phaseID string
		if err := mcRows.Scan(&mc.ID, &phaseID, &mc.Week, &mc.Theme, &mc.Load, &mc.UpdatedAt); err != nil {
			return fmt.Errorf("scan micro cycle: %w", err)
		}
		if idx, ok := phaseIdx[phaseID]; ok {
			p.Phases[idx].MicroCycles = append(p.Phases[idx].MicroCycles, mc)
		}
	}

	return mcRows.Err()
}

func (r *Repo) loadSessions(ctx context.Context, pool *pgxpool.Pool, p *Program) error {
	rows, err := pool.Query(
		ctx,
		`SELECT s.id::text, to_char(s.session_date, 'YYYY-MM-DD'), s.status, s.duration_minutes
			FROM training_session s
			JOIN micro_cycle mc ON mc.id = s.micro_cycle_id
			JOIN program_phase ph ON ph.id = mc.phase_id
			WHERE ph.program_id = $1::text::uuid
			ORDER BY s.session_date NULLS LAST, s.id
			LIMIT $2;`,
		p.ID, MaxProgramSessions,
	)
	if err != nil {
		return fmt.Errorf("query program sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.ID, &s.ScheduledAt, &s.Status, &s.DurationMin); err != nil {
			return fmt.Errorf("scan program session: %w", err)
		}
		p.Sessions = append(p.Sessions, s)
	}

	return rows.Err()
}
