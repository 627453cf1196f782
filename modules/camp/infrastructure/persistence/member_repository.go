package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/member"
	"github.com/iota-uz/camp-sdk/pkg/transform"
)

const (
	memberColumns = `id, tenant_id, email, placeholder_email, display_name, gender, created_at, updated_at`

	upsertMemberQuery = `
		INSERT INTO members (tenant_id, email, placeholder_email, display_name, gender)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, email) DO UPDATE SET
			placeholder_email = EXCLUDED.placeholder_email,
			display_name = EXCLUDED.display_name,
			gender = EXCLUDED.gender,
			updated_at = now()
		RETURNING ` + memberColumns + `, (xmax = 0) AS inserted`

	selectMemberByEmailQuery = `SELECT ` + memberColumns + ` FROM members WHERE tenant_id = $1 AND email = $2`

	enrollmentColumns = `id, tenant_id, season_id, member_id, status, in_messaging_group, dues_paid, dues_note,
		grid_tier, grid_note, housing, housing_size, ride_details, arrival_on, departure_on, dietary,
		shift_note, pre_approval, pre_approval_note, ticket_note, build_crew, strike_crew, camp_virgin,
		burn_virgin, map_object, created_at, updated_at`

	upsertEnrollmentQuery = `
		INSERT INTO season_enrollments (
			tenant_id, season_id, member_id, status, in_messaging_group, dues_paid, dues_note,
			grid_tier, grid_note, housing, housing_size, ride_details, arrival_on, departure_on, dietary,
			shift_note, pre_approval, pre_approval_note, ticket_note, build_crew, strike_crew, camp_virgin,
			burn_virgin, map_object
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (tenant_id, season_id, member_id) DO UPDATE SET
			status = EXCLUDED.status,
			in_messaging_group = EXCLUDED.in_messaging_group,
			dues_paid = EXCLUDED.dues_paid,
			dues_note = EXCLUDED.dues_note,
			grid_tier = EXCLUDED.grid_tier,
			grid_note = EXCLUDED.grid_note,
			housing = EXCLUDED.housing,
			housing_size = EXCLUDED.housing_size,
			ride_details = EXCLUDED.ride_details,
			arrival_on = EXCLUDED.arrival_on,
			departure_on = EXCLUDED.departure_on,
			dietary = EXCLUDED.dietary,
			shift_note = EXCLUDED.shift_note,
			pre_approval = EXCLUDED.pre_approval,
			pre_approval_note = EXCLUDED.pre_approval_note,
			ticket_note = EXCLUDED.ticket_note,
			build_crew = EXCLUDED.build_crew,
			strike_crew = EXCLUDED.strike_crew,
			camp_virgin = EXCLUDED.camp_virgin,
			burn_virgin = EXCLUDED.burn_virgin,
			map_object = EXCLUDED.map_object,
			updated_at = now()
		RETURNING ` + enrollmentColumns + `, (xmax = 0) AS inserted`

	selectEnrollmentsQuery = `
		SELECT e.id, e.tenant_id, e.season_id, e.member_id, e.status, e.in_messaging_group, e.dues_paid,
			e.dues_note, e.grid_tier, e.grid_note, e.housing, e.housing_size, e.ride_details, e.arrival_on,
			e.departure_on, e.dietary, e.shift_note, e.pre_approval, e.pre_approval_note, e.ticket_note,
			e.build_crew, e.strike_crew, e.camp_virgin, e.burn_virgin, e.map_object, e.created_at, e.updated_at
		FROM season_enrollments e
		JOIN members m ON m.id = e.member_id
		WHERE e.tenant_id = $1 AND e.season_id = $2 AND ($3 = false OR e.strike_crew)
		ORDER BY m.display_name, m.email`
)

type MemberRepository struct{}

func NewMemberRepository() member.Repository {
	return &MemberRepository{}
}

func (r *MemberRepository) Upsert(ctx context.Context, m member.Member) (member.Member, bool, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return member.Member{}, false, err
	}
	row := tx.QueryRow(ctx, upsertMemberQuery,
		tenant, m.Email(), m.PlaceholderEmail(), m.DisplayName(), string(m.Gender()),
	)
	var inserted bool
	saved, err := scanMember(row, &inserted)
	if err != nil {
		return member.Member{}, false, gerrors.Wrap(err, "upsert member")
	}
	return saved, inserted, nil
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (member.Member, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return member.Member{}, err
	}
	m, err := scanMember(tx.QueryRow(ctx, selectMemberByEmailQuery, tenant, transform.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrNotFound
		}
		return member.Member{}, gerrors.Wrap(err, "get member by email")
	}
	return m, nil
}

func (r *MemberRepository) UpsertEnrollment(ctx context.Context, e member.Enrollment) (member.Enrollment, bool, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return member.Enrollment{}, false, err
	}
	row := tx.QueryRow(ctx, upsertEnrollmentQuery,
		tenant, e.SeasonID, e.MemberID, string(e.Status), e.InMessagingGroup, e.DuesPaid, e.DuesNote,
		string(e.GridTier), e.GridNote, string(e.Housing), e.HousingSize, e.RideDetails, e.ArrivalOn, e.DepartureOn,
		e.Dietary, e.ShiftNote, string(e.PreApproval), e.PreApprovalNote, e.TicketNote, e.BuildCrew, e.StrikeCrew,
		e.CampVirgin, e.BurnVirgin, e.MapObject,
	)
	var inserted bool
	saved, err := scanEnrollment(row, &inserted)
	if err != nil {
		return member.Enrollment{}, false, gerrors.Wrap(err, "upsert enrollment")
	}
	return saved, inserted, nil
}

func (r *MemberRepository) FindEnrollments(ctx context.Context, params *member.FindEnrollmentsParams) ([]member.Enrollment, error) {
	if params == nil {
		params = &member.FindEnrollmentsParams{}
	}
	tx, tenant, err := session(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectEnrollmentsQuery, tenant, params.SeasonID, params.StrikeCrewOnly)
	if err != nil {
		return nil, gerrors.Wrap(err, "find enrollments")
	}
	defer rows.Close()

	var out []member.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, gerrors.Wrap(err, "scan enrollment")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanMember(row pgx.Row, extra ...any) (member.Member, error) {
	var (
		id, tenant           uuid.UUID
		email, name, gender  string
		placeholder          bool
		createdAt, updatedAt time.Time
	)
	dest := append([]any{&id, &tenant, &email, &placeholder, &name, &gender, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return member.Member{}, err
	}
	return member.Hydrate(tenant, id, email, placeholder, name, member.Gender(gender), createdAt, updatedAt), nil
}

func scanEnrollment(row pgx.Row, extra ...any) (member.Enrollment, error) {
	var (
		e                                      member.Enrollment
		status, gridTier, housing, preApproval string
	)
	dest := append([]any{
		&e.ID, &e.TenantID, &e.SeasonID, &e.MemberID, &status, &e.InMessagingGroup, &e.DuesPaid, &e.DuesNote,
		&gridTier, &e.GridNote, &housing, &e.HousingSize, &e.RideDetails, &e.ArrivalOn, &e.DepartureOn, &e.Dietary,
		&e.ShiftNote, &preApproval, &e.PreApprovalNote, &e.TicketNote, &e.BuildCrew, &e.StrikeCrew, &e.CampVirgin,
		&e.BurnVirgin, &e.MapObject, &e.CreatedAt, &e.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return member.Enrollment{}, err
	}
	e.Status = member.EnrollmentStatus(status)
	e.GridTier = member.GridTier(gridTier)
	e.Housing = member.HousingType(housing)
	e.PreApproval = member.PreApproval(preApproval)
	return e, nil
}
