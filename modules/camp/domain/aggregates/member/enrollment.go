package member

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is the per-season projection of a Member. One per
// (season, member); re-imports update it in place.
type Enrollment struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	SeasonID uuid.UUID
	MemberID uuid.UUID

	Status           EnrollmentStatus
	InMessagingGroup bool
	DuesPaid         bool
	DuesNote         string
	GridTier         GridTier
	GridNote         string
	Housing          HousingType
	HousingSize      string
	RideDetails      string
	ArrivalOn        *time.Time
	DepartureOn      *time.Time
	Dietary          string
	ShiftNote        string
	PreApproval      PreApproval
	PreApprovalNote  string
	TicketNote       string
	BuildCrew        bool
	StrikeCrew       bool
	CampVirgin       bool
	BurnVirgin       bool
	MapObject        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
