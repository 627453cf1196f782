package composables

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/camp-sdk/pkg/configuration"
	"github.com/iota-uz/camp-sdk/pkg/constants"
)

// InTenantTx runs fn inside the transaction already carried by ctx, or in a
// new one that is committed when fn succeeds. The tenant row-level-security
// setting is applied either way.
func InTenantTx(ctx context.Context, fn func(context.Context) error) error {
	if existing, ok := ctx.Value(constants.TxKey).(pgx.Tx); ok && existing != nil {
		if err := ApplyTenantRLS(ctx, existing); err != nil {
			return err
		}
		return fn(ctx)
	}

	return InTx(ctx, func(txCtx context.Context) error {
		tx := txCtx.Value(constants.TxKey).(pgx.Tx)
		if err := ApplyTenantRLS(txCtx, tx); err != nil {
			return err
		}
		return fn(txCtx)
	})
}

// ApplyTenantRLS sets app.current_tenant for the transaction when RLS_ENFORCE
// is "enforce".
func ApplyTenantRLS(ctx context.Context, tx pgx.Tx) error {
	if configuration.Use().RLSEnforce != configuration.RLSEnforce {
		return nil
	}
	tenantID, err := UseTenantID(ctx)
	if err != nil {
		return fmt.Errorf("rls requires tenant in context: %w", err)
	}
	if _, err := tx.Exec(ctx, "SELECT set_config('app.current_tenant', $1, true)", tenantID.String()); err != nil {
		return errors.Join(errors.New("set rls tenant context"), err)
	}
	return nil
}
