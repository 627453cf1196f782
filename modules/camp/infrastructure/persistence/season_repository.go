package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/season"
)

const (
	seasonColumns = `id, tenant_id, year, name, starts_on, ends_on, dues_minor, created_at, updated_at`

	upsertSeasonQuery = `
		INSERT INTO seasons (tenant_id, year, name, starts_on, ends_on, dues_minor)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, year) DO UPDATE SET
			name = EXCLUDED.name,
			starts_on = EXCLUDED.starts_on,
			ends_on = EXCLUDED.ends_on,
			dues_minor = EXCLUDED.dues_minor,
			updated_at = now()
		RETURNING ` + seasonColumns + `, (xmax = 0) AS inserted`

	selectSeasonByYearQuery = `SELECT ` + seasonColumns + ` FROM seasons WHERE tenant_id = $1 AND year = $2`
)

type SeasonRepository struct{}

func NewSeasonRepository() season.Repository {
	return &SeasonRepository{}
}

func (r *SeasonRepository) Upsert(ctx context.Context, s season.Season) (season.Season, bool, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return season.Season{}, false, err
	}
	row := tx.QueryRow(ctx, upsertSeasonQuery,
		tenant, s.Year(), s.Name(), s.StartsOn(), s.EndsOn(), s.DuesMinor(),
	)
	var inserted bool
	saved, err := scanSeason(row, &inserted)
	if err != nil {
		return season.Season{}, false, gerrors.Wrap(err, "upsert season")
	}
	return saved, inserted, nil
}

func (r *SeasonRepository) GetByYear(ctx context.Context, year int) (season.Season, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return season.Season{}, err
	}
	s, err := scanSeason(tx.QueryRow(ctx, selectSeasonByYearQuery, tenant, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return season.Season{}, season.ErrNotFound
		}
		return season.Season{}, gerrors.Wrap(err, "get season")
	}
	return s, nil
}

func scanSeason(row pgx.Row, extra ...any) (season.Season, error) {
	var (
		id, tenant           uuid.UUID
		year                 int
		name                 string
		startsOn, endsOn     *time.Time
		dues                 int64
		createdAt, updatedAt time.Time
	)
	dest := append([]any{&id, &tenant, &year, &name, &startsOn, &endsOn, &dues, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return season.Season{}, err
	}
	return season.Hydrate(tenant, id, year, name, startsOn, endsOn, dues, createdAt, updatedAt), nil
}
