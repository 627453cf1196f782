package importers

import (
	"context"
	"fmt"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/member"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

// ImportStrike has no sheet of its own: it assigns every enrollment flagged
// for strike crew on the roster.
func ImportStrike(ctx context.Context, env *Env, _ workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepStrike}
	if err := env.requireSeason(); err != nil {
		return r, err
	}

	crew, err := env.Members.FindEnrollments(ctx, &member.FindEnrollmentsParams{
		SeasonID:       env.Season.ID(),
		StrikeCrewOnly: true,
	})
	if err != nil {
		return r, fmt.Errorf("list strike crew: %w", err)
	}
	for _, e := range crew {
		_, created, err := env.Logistics.UpsertStrikeAssignment(ctx, logistics.StrikeAssignment{EnrollmentID: e.ID})
		if err != nil {
			return r, fmt.Errorf("upsert strike assignment for enrollment %s: %w", e.ID, err)
		}
		tally(&r, created)
	}
	r.Detail("strike crew", len(crew))
	return r, nil
}
