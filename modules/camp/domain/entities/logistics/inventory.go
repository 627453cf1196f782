package logistics

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is camp-owned gear. Identity is (normalized name, category);
// items are not tied to a season.
type InventoryItem struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Name           string
	NormalizedName string
	Category       InventoryCategory
	Quantity       int
	Location       string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
