package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/camp-sdk/pkg/composables"
	"github.com/iota-uz/camp-sdk/pkg/repo"
)

const pgUniqueViolation = "23505"

func tenantID(ctx context.Context) (uuid.UUID, error) {
	id, err := composables.UseTenantID(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get tenant from context: %w", err)
	}
	return id, nil
}

// session returns the querier and tenant for ctx.
func session(ctx context.Context) (repo.Tx, uuid.UUID, error) {
	tenant, err := tenantID(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return tx, tenant, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
