package finance

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	SeasonID    uuid.UUID
	SpentOn     time.Time
	Description string
	AmountMinor int64
	// PaidBy is nil when the camp paid directly.
	PaidBy      *uuid.UUID
	Category    BudgetCategory
	Reimbursed  bool
	ReceiptNote string
	CreatedAt   time.Time
}

type ExpenseKey struct {
	SeasonID    uuid.UUID
	Description string
	AmountMinor int64
	SpentOn     time.Time
	PaidBy      *uuid.UUID
}

func (e Expense) Key() ExpenseKey {
	return ExpenseKey{
		SeasonID:    e.SeasonID,
		Description: e.Description,
		AmountMinor: e.AmountMinor,
		SpentOn:     e.SpentOn,
		PaidBy:      e.PaidBy,
	}
}
