package finance

import (
	"time"

	"github.com/google/uuid"
)

// BudgetLine is the planned spend for one category of a season.
type BudgetLine struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	SeasonID    uuid.UUID
	Category    BudgetCategory
	AmountMinor int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
