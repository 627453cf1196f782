package logistics

import (
	"time"

	"github.com/google/uuid"
)

type EarlyArrivalPass struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	EnrollmentID uuid.UUID
	ArrivalOn    time.Time
	PassType     PassType
	Vehicle      string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Ticket struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	EnrollmentID uuid.UUID
	Type         TicketType
	Quantity     int
	PriceMinor   int64
	VehiclePass  bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
