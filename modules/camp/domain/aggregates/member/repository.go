package member

import (
	"context"

	"github.com/google/uuid"
)

type FindEnrollmentsParams struct {
	SeasonID       uuid.UUID
	StrikeCrewOnly bool
}

type Repository interface {
	// Upsert creates or updates the member keyed by (tenant, email).
	Upsert(ctx context.Context, m Member) (saved Member, created bool, err error)
	GetByEmail(ctx context.Context, email string) (Member, error)
	// UpsertEnrollment creates or updates the enrollment keyed by
	// (tenant, season, member).
	UpsertEnrollment(ctx context.Context, e Enrollment) (saved Enrollment, created bool, err error)
	FindEnrollments(ctx context.Context, params *FindEnrollmentsParams) ([]Enrollment, error)
}
