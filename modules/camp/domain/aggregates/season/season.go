package season

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("season not found")

type Season struct {
	tenantID  uuid.UUID
	id        uuid.UUID
	year      int
	name      string
	startsOn  *time.Time
	endsOn    *time.Time
	duesMinor int64
	createdAt time.Time
	updatedAt time.Time
}

type Option func(s *Season)

func WithName(name string) Option {
	return func(s *Season) {
		if name = strings.TrimSpace(name); name != "" {
			s.name = name
		}
	}
}

func WithDates(startsOn, endsOn *time.Time) Option {
	return func(s *Season) {
		s.startsOn = startsOn
		s.endsOn = endsOn
	}
}

func WithDues(minor int64) Option {
	return func(s *Season) {
		s.duesMinor = minor
	}
}

func New(year int, opts ...Option) Season {
	s := Season{
		year: year,
		name: DefaultName(year),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func Hydrate(
	tenantID uuid.UUID,
	id uuid.UUID,
	year int,
	name string,
	startsOn *time.Time,
	endsOn *time.Time,
	duesMinor int64,
	createdAt time.Time,
	updatedAt time.Time,
) Season {
	return Season{
		tenantID:  tenantID,
		id:        id,
		year:      year,
		name:      name,
		startsOn:  startsOn,
		endsOn:    endsOn,
		duesMinor: duesMinor,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// DefaultName is used when neither configuration nor the workbook names the
// season.
func DefaultName(year int) string {
	return "Season " + strconv.Itoa(year)
}

func (s Season) TenantID() uuid.UUID  { return s.tenantID }
func (s Season) ID() uuid.UUID        { return s.id }
func (s Season) Year() int            { return s.year }
func (s Season) Name() string         { return s.name }
func (s Season) StartsOn() *time.Time { return s.startsOn }
func (s Season) EndsOn() *time.Time   { return s.endsOn }
func (s Season) DuesMinor() int64     { return s.duesMinor }
func (s Season) CreatedAt() time.Time { return s.createdAt }
func (s Season) UpdatedAt() time.Time { return s.updatedAt }
func (s Season) IsZero() bool         { return s.id == uuid.Nil && s.year == 0 }
