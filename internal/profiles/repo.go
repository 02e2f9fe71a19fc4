package profiles

import (
	"context"
	"errors"

	"github.com/2beens/coachdesk/internal/db"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
)

type Repo struct {
	db db.PoolSource
}

func NewRepo(db db.PoolSource) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, athleteID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pool, err := r.db.Pool()
	if err != nil {
		return nil, err
	}

	var p Profile
	err = pool.QueryRow(
		ctx,
		`SELECT athlete_id, first_name, last_name, status, email, timezone, avatar_url, updated_at
			FROM athlete_profile
			WHERE athlete_id = $1;`,
		athleteID,
	).Scan(&p.AthleteID, &p.FirstName, &p.LastName, &p.Status, &p.Email, &p.Timezone, &p.AvatarURL, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
