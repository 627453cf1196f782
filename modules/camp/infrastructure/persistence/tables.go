package persistence

import (
	"context"
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"

	"github.com/iota-uz/camp-sdk/pkg/composables"
)

// Tables lists every entity table in verification order.
var Tables = []string{
	"seasons",
	"members",
	"season_enrollments",
	"payments",
	"build_assignments",
	"early_arrival_passes",
	"strike_assignments",
	"tickets",
	"inventory_items",
	"budget_lines",
	"expenses",
}

// MissingTablesError lists the camp tables absent from the database.
type MissingTablesError struct {
	Tables []string
}

func (e *MissingTablesError) Error() string {
	return fmt.Sprintf("missing tables: %s (apply modules/camp/infrastructure/persistence/schema/camp-schema.sql)",
		strings.Join(e.Tables, ", "))
}

// Precheck verifies every camp table is reachable through the search path.
func Precheck(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	var missing []string
	for _, table := range Tables {
		var ok bool
		if err := tx.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&ok); err != nil {
			return gerrors.Wrapf(err, "check %s table", table)
		}
		if !ok {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return &MissingTablesError{Tables: missing}
	}
	return nil
}

type Counter struct{}

func NewCounter() *Counter {
	return &Counter{}
}

// Count returns the tenant's row count for one of Tables.
func (c *Counter) Count(ctx context.Context, table string) (int64, error) {
	if !knownTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	tx, tenant, err := session(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.QueryRow(ctx, "SELECT count(*)::bigint FROM "+table+" WHERE tenant_id=$1", tenant).Scan(&n); err != nil {
		return 0, gerrors.Wrapf(err, "count %s", table)
	}
	return n, nil
}

func knownTable(table string) bool {
	for _, t := range Tables {
		if t == table {
			return true
		}
	}
	return false
}
