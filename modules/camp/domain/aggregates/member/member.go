package member

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/camp-sdk/pkg/transform"
)

var (
	ErrNotFound   = errors.New("member not found")
	ErrEmailTaken = errors.New("member email already taken")
)

// Member is the canonical identity of one person across every sheet.
type Member struct {
	tenantID         uuid.UUID
	id               uuid.UUID
	email            string
	placeholderEmail bool
	displayName      string
	gender           Gender
	createdAt        time.Time
	updatedAt        time.Time
}

func New(email string, displayName string, gender Gender, placeholderEmail bool) Member {
	return Member{
		email:            transform.NormalizeEmail(email),
		placeholderEmail: placeholderEmail,
		displayName:      cleanDisplayName(displayName),
		gender:           gender,
	}
}

func Hydrate(
	tenantID uuid.UUID,
	id uuid.UUID,
	email string,
	placeholderEmail bool,
	displayName string,
	gender Gender,
	createdAt time.Time,
	updatedAt time.Time,
) Member {
	return Member{
		tenantID:         tenantID,
		id:               id,
		email:            transform.NormalizeEmail(email),
		placeholderEmail: placeholderEmail,
		displayName:      cleanDisplayName(displayName),
		gender:           gender,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (m Member) TenantID() uuid.UUID    { return m.tenantID }
func (m Member) ID() uuid.UUID          { return m.id }
func (m Member) Email() string          { return m.email }
func (m Member) PlaceholderEmail() bool { return m.placeholderEmail }
func (m Member) DisplayName() string    { return m.displayName }
func (m Member) NormalizedName() string { return transform.NormalizeName(m.displayName) }
func (m Member) Gender() Gender         { return m.gender }
func (m Member) CreatedAt() time.Time   { return m.createdAt }
func (m Member) UpdatedAt() time.Time   { return m.updatedAt }
func (m Member) IsZero() bool           { return m.id == uuid.Nil && m.email == "" }

func cleanDisplayName(v string) string { return strings.Join(strings.Fields(v), " ") }
