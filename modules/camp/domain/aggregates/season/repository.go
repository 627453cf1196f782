package season

import "context"

type Repository interface {
	// Upsert creates or updates the season keyed by (tenant, year). created
	// reports whether a new row was inserted.
	Upsert(ctx context.Context, s Season) (saved Season, created bool, err error)
	GetByYear(ctx context.Context, year int) (Season, error)
}
