package finance

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("finance record not found")
	// ErrDuplicate is returned by Create* when the natural key already exists.
	ErrDuplicate = errors.New("finance record already recorded")
)

type Repository interface {
	FindPayment(ctx context.Context, key PaymentKey) (Payment, error)
	CreatePayment(ctx context.Context, p Payment) (Payment, error)
	// UpsertBudgetLine creates or replaces the line keyed by
	// (tenant, season, category).
	UpsertBudgetLine(ctx context.Context, l BudgetLine) (saved BudgetLine, created bool, err error)
	FindExpense(ctx context.Context, key ExpenseKey) (Expense, error)
	CreateExpense(ctx context.Context, e Expense) (Expense, error)
}
