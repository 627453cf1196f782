package finance

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one ledger entry. Identity is (season, member, type, amount,
// paid on); the same entry seen twice is a duplicate, not a second payment.
type Payment struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	SeasonID    uuid.UUID
	MemberID    uuid.UUID
	Type        PaymentType
	Method      PaymentMethod
	AmountMinor int64
	PaidOn      time.Time
	Note        string
	CreatedAt   time.Time
}

type PaymentKey struct {
	SeasonID    uuid.UUID
	MemberID    uuid.UUID
	Type        PaymentType
	AmountMinor int64
	PaidOn      time.Time
}

func (p Payment) Key() PaymentKey {
	return PaymentKey{
		SeasonID:    p.SeasonID,
		MemberID:    p.MemberID,
		Type:        p.Type,
		AmountMinor: p.AmountMinor,
		PaidOn:      p.PaidOn,
	}
}
