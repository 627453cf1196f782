package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/member"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/season"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/finance"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
	"github.com/iota-uz/camp-sdk/modules/camp/infrastructure/persistence"
	"github.com/iota-uz/camp-sdk/modules/camp/infrastructure/persistence/schema"
	"github.com/iota-uz/camp-sdk/pkg/composables"
	"github.com/iota-uz/camp-sdk/pkg/itf"
)

func setupDB(t *testing.T) (context.Context, *pgxpool.Pool) {
	t.Helper()
	itf.RequirePostgres(t)

	pool := itf.NewPool(t)
	ctx := composables.WithPool(context.Background(), pool)
	_, err := pool.Exec(ctx, schema.SQL)
	require.NoError(t, err)
	return composables.WithTenantID(ctx, uuid.New()), pool
}

func TestPrecheck_ReportsMissingTables(t *testing.T) {
	itf.RequirePostgres(t)

	pool := itf.NewPool(t)
	ctx := composables.WithPool(context.Background(), pool)

	err := persistence.Precheck(ctx)
	var missing *persistence.MissingTablesError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, persistence.Tables, missing.Tables)

	_, err = pool.Exec(ctx, schema.SQL)
	require.NoError(t, err)
	require.NoError(t, persistence.Precheck(ctx))
}

func TestRepositories_UpsertIsIdempotent(t *testing.T) {
	ctx, _ := setupDB(t)

	seasons := persistence.NewSeasonRepository()
	members := persistence.NewMemberRepository()
	fin := persistence.NewFinanceRepository()
	logi := persistence.NewLogisticsRepository()
	counter := persistence.NewCounter()

	s, created, err := seasons.Upsert(ctx, season.New(2025))
	require.NoError(t, err)
	require.True(t, created)
	again, created, err := seasons.Upsert(ctx, season.New(2025, season.WithName("Dusty")))
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, s.ID(), again.ID())
	require.Equal(t, "Dusty", again.Name())

	m, created, err := members.Upsert(ctx, member.New("Jane@Example.com", "Jane Doe", member.GenderFemale, false))
	require.NoError(t, err)
	require.True(t, created)
	got, err := members.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, m.ID(), got.ID())

	_, err = members.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, member.ErrNotFound)

	e, created, err := members.UpsertEnrollment(ctx, member.Enrollment{
		SeasonID: s.ID(), MemberID: m.ID(), Status: member.StatusConfirmed, StrikeCrew: true,
	})
	require.NoError(t, err)
	require.True(t, created)
	_, created, err = members.UpsertEnrollment(ctx, member.Enrollment{
		SeasonID: s.ID(), MemberID: m.ID(), Status: member.StatusConfirmed, StrikeCrew: true, Dietary: "vegan",
	})
	require.NoError(t, err)
	require.False(t, created)

	strike, err := members.FindEnrollments(ctx, &member.FindEnrollmentsParams{SeasonID: s.ID(), StrikeCrewOnly: true})
	require.NoError(t, err)
	require.Len(t, strike, 1)
	require.Equal(t, "vegan", strike[0].Dietary)

	paidOn := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := finance.Payment{SeasonID: s.ID(), MemberID: m.ID(), Type: finance.PaymentDues, AmountMinor: 45000, PaidOn: paidOn}
	_, err = fin.FindPayment(ctx, p.Key())
	require.ErrorIs(t, err, finance.ErrNotFound)
	_, err = fin.CreatePayment(ctx, p)
	require.NoError(t, err)
	_, err = fin.FindPayment(ctx, p.Key())
	require.NoError(t, err)

	x := finance.Expense{SeasonID: s.ID(), SpentOn: paidOn, Description: "ice", AmountMinor: 1299}
	_, err = fin.CreateExpense(ctx, x)
	require.NoError(t, err)
	_, err = fin.FindExpense(ctx, x.Key())
	require.NoError(t, err)

	_, created, err = logi.UpsertTicket(ctx, logistics.Ticket{EnrollmentID: e.ID, Type: logistics.TicketMain, Quantity: 1})
	require.NoError(t, err)
	require.True(t, created)
	_, created, err = logi.UpsertTicket(ctx, logistics.Ticket{EnrollmentID: e.ID, Type: logistics.TicketMain, Quantity: 2})
	require.NoError(t, err)
	require.False(t, created)

	for table, want := range map[string]int64{
		"seasons":            1,
		"members":            1,
		"season_enrollments": 1,
		"payments":           1,
		"expenses":           1,
		"tickets":            1,
		"budget_lines":       0,
	} {
		n, err := counter.Count(ctx, table)
		require.NoError(t, err)
		require.Equal(t, want, n, table)
	}
}
