package logistics

import (
	"time"

	"github.com/google/uuid"
)

// BuildAssignment puts an enrolled member on the build crew for one day.
type BuildAssignment struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	EnrollmentID uuid.UUID
	Day          string
	Date         *time.Time
	Task         string
	Shift        string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StrikeAssignment struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	EnrollmentID uuid.UUID
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
