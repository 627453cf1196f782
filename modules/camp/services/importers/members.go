package importers

import (
	"context"
	"fmt"
	"time"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/member"
	"github.com/iota-uz/camp-sdk/modules/camp/services/matcher"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

// Roster columns.
const (
	rosterStatus = iota
	rosterMessaging
	rosterName
	rosterEmail
	rosterDues
	rosterGrid
	rosterHousing
	rosterHousingSize
	rosterReserved
	rosterRide
	rosterArrival
	rosterDeparture
	rosterDietary
	rosterShift
	rosterPreApproval
	rosterGender
	rosterTicket
	rosterBuildCrew
	rosterStrikeCrew
	rosterCampVirgin
	rosterBurnVirgin
	rosterMapObject
)

type rosterRow struct {
	name       string
	email      string
	status     member.EnrollmentStatus
	messaging  bool
	duesPaid   bool
	duesNote   string
	grid       member.GridTier
	gridNote   string
	housing    member.HousingType
	size       string
	ride       string
	arrival    workbook.Cell
	departure  workbook.Cell
	dietary    string
	shift      string
	preApp     member.PreApproval
	preAppNote string
	gender     member.Gender
	ticket     string
	buildCrew  bool
	strikeCrew bool
	campVirgin bool
	burnVirgin bool
	mapObject  string
}

func parseRosterRow(row []workbook.Cell) rosterRow {
	text := func(i int) string { return workbook.At(row, i).Text() }
	return rosterRow{
		name:       text(rosterName),
		email:      text(rosterEmail),
		status:     member.ParseEnrollmentStatus(text(rosterStatus)),
		messaging:  transform.YesNo(workbook.At(row, rosterMessaging)),
		duesPaid:   transform.YesNo(workbook.At(row, rosterDues)),
		duesNote:   text(rosterDues),
		grid:       member.ParseGridTier(text(rosterGrid)),
		gridNote:   text(rosterGrid),
		housing:    member.ParseHousingType(text(rosterHousing)),
		size:       text(rosterHousingSize),
		ride:       text(rosterRide),
		arrival:    workbook.At(row, rosterArrival),
		departure:  workbook.At(row, rosterDeparture),
		dietary:    text(rosterDietary),
		shift:      text(rosterShift),
		preApp:     member.ParsePreApproval(text(rosterPreApproval)),
		preAppNote: text(rosterPreApproval),
		gender:     member.ParseGender(text(rosterGender)),
		ticket:     text(rosterTicket),
		buildCrew:  transform.YesNo(workbook.At(row, rosterBuildCrew)),
		strikeCrew: transform.YesNo(workbook.At(row, rosterStrikeCrew)),
		campVirgin: transform.YesNo(workbook.At(row, rosterCampVirgin)),
		burnVirgin: transform.YesNo(workbook.At(row, rosterBurnVirgin)),
		mapObject:  text(rosterMapObject),
	}
}

// ImportMembers upserts one member and one season enrollment per roster row
// and registers every saved member with the matcher.
func ImportMembers(ctx context.Context, env *Env, t workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepMembers}
	if err := env.requireSeason(); err != nil {
		return r, err
	}
	logger := stepLogger(ctx, StepMembers)

	firstSeen := map[string]int{}
	placeholders, enrollmentsCreated := 0, 0
	for i, row := range t.Rows {
		in := parseRosterRow(row)
		if in.name == "" {
			continue
		}
		at := rowContext(SheetRoster, i)

		email := transform.NormalizeEmail(in.email)
		// Addresses already in the placeholder domain (copied back from an
		// export) stay placeholders and out of the email index.
		placeholder := transform.IsPlaceholderEmail(email, env.Config.PlaceholderDomain)
		if !transform.IsEmail(email) {
			email, placeholder = transform.PlaceholderEmail(in.name, env.Config.PlaceholderDomain), true
			placeholders++
			r.Warn("%s: no usable email for %q; using placeholder email %s", at, in.name, email)
		}
		if prev, dup := firstSeen[email]; dup {
			r.Warn("%s: email %s already used on row %d; updating that member", at, email, prev)
		} else {
			firstSeen[email] = workbook.SheetRow(i)
		}

		saved, created, err := env.Members.Upsert(ctx, member.New(email, in.name, in.gender, placeholder))
		if err != nil {
			return r, fmt.Errorf("%s: upsert member: %w", at, err)
		}
		tally(&r, created)

		enrollment := member.Enrollment{
			SeasonID:         env.Season.ID(),
			MemberID:         saved.ID(),
			Status:           in.status,
			InMessagingGroup: in.messaging,
			DuesPaid:         in.duesPaid,
			DuesNote:         in.duesNote,
			GridTier:         in.grid,
			GridNote:         in.gridNote,
			Housing:          in.housing,
			HousingSize:      in.size,
			RideDetails:      in.ride,
			ArrivalOn:        env.optionalDay(&r, at, "arrival", in.arrival),
			DepartureOn:      env.optionalDay(&r, at, "departure", in.departure),
			Dietary:          in.dietary,
			ShiftNote:        in.shift,
			PreApproval:      in.preApp,
			PreApprovalNote:  in.preAppNote,
			TicketNote:       in.ticket,
			BuildCrew:        in.buildCrew,
			StrikeCrew:       in.strikeCrew,
			CampVirgin:       in.campVirgin,
			BurnVirgin:       in.burnVirgin,
			MapObject:        in.mapObject,
		}
		savedEnrollment, enrolled, err := env.Members.UpsertEnrollment(ctx, enrollment)
		if err != nil {
			return r, fmt.Errorf("%s: upsert enrollment: %w", at, err)
		}
		if enrolled {
			enrollmentsCreated++
		}

		env.Matcher.Register(matcher.Identity{
			MemberID:         saved.ID(),
			EnrollmentID:     savedEnrollment.ID,
			Email:            saved.Email(),
			Name:             saved.DisplayName(),
			PlaceholderEmail: saved.PlaceholderEmail(),
		})
		logger.WithField("row", workbook.SheetRow(i)).Debugf("member %s saved (created=%t)", saved.Email(), created)
	}

	r.Detail("identities", env.Matcher.Len())
	r.Detail("enrollments created", enrollmentsCreated)
	r.Detail("placeholder emails", placeholders)
	return r, nil
}

// optionalDay parses a non-empty date cell; an unparseable value is reported
// and left null.
func (e *Env) optionalDay(r *report.Report, at, field string, c workbook.Cell) *time.Time {
	if c.IsEmpty() {
		return nil
	}
	day, ok := parseDay(c, e.Config.Year)
	if !ok {
		r.Warn("%s: unparseable %s date %q; left empty", at, field, c.Text())
		return nil
	}
	return &day
}
