package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/finance"
)

const (
	paymentColumns = `id, tenant_id, season_id, member_id, type, method, amount_minor, paid_on, note, created_at`

	selectPaymentQuery = `
		SELECT ` + paymentColumns + ` FROM payments
		WHERE tenant_id = $1 AND season_id = $2 AND member_id = $3 AND type = $4 AND amount_minor = $5 AND paid_on = $6
		LIMIT 1`

	insertPaymentQuery = `
		INSERT INTO payments (tenant_id, season_id, member_id, type, method, amount_minor, paid_on, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + paymentColumns

	budgetColumns = `id, tenant_id, season_id, category, amount_minor, description, created_at, updated_at`

	upsertBudgetLineQuery = `
		INSERT INTO budget_lines (tenant_id, season_id, category, amount_minor, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, season_id, category) DO UPDATE SET
			amount_minor = EXCLUDED.amount_minor,
			description = EXCLUDED.description,
			updated_at = now()
		RETURNING ` + budgetColumns + `, (xmax = 0) AS inserted`

	expenseColumns = `id, tenant_id, season_id, spent_on, description, amount_minor, paid_by, category, reimbursed,
		receipt_note, created_at`

	selectExpenseQuery = `
		SELECT ` + expenseColumns + ` FROM expenses
		WHERE tenant_id = $1 AND season_id = $2 AND description = $3 AND amount_minor = $4 AND spent_on = $5
			AND paid_by IS NOT DISTINCT FROM $6::uuid
		LIMIT 1`

	insertExpenseQuery = `
		INSERT INTO expenses (tenant_id, season_id, spent_on, description, amount_minor, paid_by, category, reimbursed, receipt_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + expenseColumns
)

type FinanceRepository struct{}

func NewFinanceRepository() finance.Repository {
	return &FinanceRepository{}
}

func (r *FinanceRepository) FindPayment(ctx context.Context, key finance.PaymentKey) (finance.Payment, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return finance.Payment{}, err
	}
	p, err := scanPayment(tx.QueryRow(ctx, selectPaymentQuery,
		tenant, key.SeasonID, key.MemberID, string(key.Type), key.AmountMinor, key.PaidOn,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return finance.Payment{}, finance.ErrNotFound
		}
		return finance.Payment{}, gerrors.Wrap(err, "find payment")
	}
	return p, nil
}

func (r *FinanceRepository) CreatePayment(ctx context.Context, p finance.Payment) (finance.Payment, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return finance.Payment{}, err
	}
	saved, err := scanPayment(tx.QueryRow(ctx, insertPaymentQuery,
		tenant, p.SeasonID, p.MemberID, string(p.Type), string(p.Method), p.AmountMinor, p.PaidOn, p.Note,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return finance.Payment{}, finance.ErrDuplicate
		}
		return finance.Payment{}, gerrors.Wrap(err, "create payment")
	}
	return saved, nil
}

func (r *FinanceRepository) UpsertBudgetLine(ctx context.Context, l finance.BudgetLine) (finance.BudgetLine, bool, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return finance.BudgetLine{}, false, err
	}
	var (
		saved    finance.BudgetLine
		category string
		inserted bool
	)
	err = tx.QueryRow(ctx, upsertBudgetLineQuery,
		tenant, l.SeasonID, string(l.Category), l.AmountMinor, l.Description,
	).Scan(
		&saved.ID, &saved.TenantID, &saved.SeasonID, &category, &saved.AmountMinor, &saved.Description,
		&saved.CreatedAt, &saved.UpdatedAt, &inserted,
	)
	if err != nil {
		return finance.BudgetLine{}, false, gerrors.Wrap(err, "upsert budget line")
	}
	saved.Category = finance.BudgetCategory(category)
	return saved, inserted, nil
}

func (r *FinanceRepository) FindExpense(ctx context.Context, key finance.ExpenseKey) (finance.Expense, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return finance.Expense{}, err
	}
	e, err := scanExpense(tx.QueryRow(ctx, selectExpenseQuery,
		tenant, key.SeasonID, key.Description, key.AmountMinor, key.SpentOn, key.PaidBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return finance.Expense{}, finance.ErrNotFound
		}
		return finance.Expense{}, gerrors.Wrap(err, "find expense")
	}
	return e, nil
}

func (r *FinanceRepository) CreateExpense(ctx context.Context, e finance.Expense) (finance.Expense, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return finance.Expense{}, err
	}
	saved, err := scanExpense(tx.QueryRow(ctx, insertExpenseQuery,
		tenant, e.SeasonID, e.SpentOn, e.Description, e.AmountMinor, e.PaidBy, string(e.Category), e.Reimbursed, e.ReceiptNote,
	))
	if err != nil {
		return finance.Expense{}, gerrors.Wrap(err, "create expense")
	}
	return saved, nil
}

func scanPayment(row pgx.Row) (finance.Payment, error) {
	var (
		p           finance.Payment
		typ, method string
	)
	if err := row.Scan(&p.ID, &p.TenantID, &p.SeasonID, &p.MemberID, &typ, &method, &p.AmountMinor, &p.PaidOn, &p.Note, &p.CreatedAt); err != nil {
		return finance.Payment{}, err
	}
	p.Type = finance.PaymentType(typ)
	p.Method = finance.PaymentMethod(method)
	return p, nil
}

func scanExpense(row pgx.Row) (finance.Expense, error) {
	var (
		e        finance.Expense
		category string
	)
	if err := row.Scan(
		&e.ID, &e.TenantID, &e.SeasonID, &e.SpentOn, &e.Description, &e.AmountMinor, &e.PaidBy, &category,
		&e.Reimbursed, &e.ReceiptNote, &e.CreatedAt,
	); err != nil {
		return finance.Expense{}, err
	}
	e.Category = finance.BudgetCategory(category)
	return e, nil
}
