package importers_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/member"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/finance"
	"github.com/iota-uz/camp-sdk/modules/camp/infrastructure/persistence/memory"
	"github.com/iota-uz/camp-sdk/modules/camp/services/importers"
	"github.com/iota-uz/camp-sdk/modules/camp/services/matcher"
	"github.com/iota-uz/camp-sdk/pkg/composables"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

func row(vals ...any) []workbook.Cell {
	out := make([]workbook.Cell, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case string:
			out[i] = workbook.String(v)
		case float64:
			out[i] = workbook.Number(v)
		case int:
			out[i] = workbook.Number(float64(v))
		case time.Time:
			out[i] = workbook.Date(v)
		}
	}
	return out
}

// person is a roster line with the name and email columns filled; extra sets
// further columns by index.
func person(name, email string, extra map[int]string) []workbook.Cell {
	cells := make([]workbook.Cell, 22)
	cells[0] = workbook.String("yes")
	cells[2] = workbook.String(name)
	cells[3] = workbook.String(email)
	for i, v := range extra {
		cells[i] = workbook.String(v)
	}
	return cells
}

func roster(people ...[]workbook.Cell) workbook.Table {
	return workbook.Table{Name: importers.SheetRoster, Header: row("Confirmed", "WhatsApp", "Name", "Email"), Rows: people}
}

type fixture struct {
	ctx   context.Context
	env   *importers.Env
	store *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		ctx:   composables.WithTenantID(context.Background(), uuid.New()),
		store: store,
	}
	f.env = f.freshEnv()
	_, err := importers.ImportSeason(f.ctx, f.env, nil)
	require.NoError(t, err)
	return f
}

// freshEnv is a new run against the same store.
func (f *fixture) freshEnv() *importers.Env {
	return &importers.Env{
		Seasons:   f.store.Seasons(),
		Members:   f.store.Members(),
		Finance:   f.store.Finance(),
		Logistics: f.store.Logistics(),
		Matcher:   matcher.New(matcher.DefaultAliases()),
		Config: importers.Config{
			Year:              2025,
			PlaceholderDomain: "placeholder.invalid",
			Currency:          "USD",
		},
	}
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	n, err := f.store.Count(f.ctx, table)
	require.NoError(t, err)
	return n
}

func (f *fixture) importRoster(t *testing.T, people ...[]workbook.Cell) {
	t.Helper()
	_, err := importers.ImportMembers(f.ctx, f.env, roster(people...))
	require.NoError(t, err)
}

func TestImportSeason_SheetOverridesConfig(t *testing.T) {
	f := newFixture(t)
	f.env.Config.SeasonName = "From Config"

	sheet := workbook.Table{
		Name:   importers.SheetSeason,
		Header: row("Name", "Dusty Days"),
		Rows: [][]workbook.Cell{
			row("Start date", "8/24"),
			row("End date", "2025-09-01"),
			row("Dues", "$450.00"),
			row("Mascot", "Owl"),
		},
	}
	r, err := importers.ImportSeason(f.ctx, f.env, &sheet)
	require.NoError(t, err)
	require.Equal(t, 0, r.Created)
	require.Equal(t, 1, r.Updated)
	require.Equal(t, []string{`season row 5: unknown season field "Mascot"; ignored`}, r.Warnings)

	s := f.env.Season
	require.Equal(t, "Dusty Days", s.Name())
	require.Equal(t, int64(45000), s.DuesMinor())
	require.NotNil(t, s.StartsOn())
	require.Equal(t, time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC), *s.StartsOn())
	require.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), *s.EndsOn())
	require.Equal(t, int64(1), f.count(t, "seasons"))
}

func TestImportMembers_PlaceholderEmail(t *testing.T) {
	f := newFixture(t)

	r, err := importers.ImportMembers(f.ctx, f.env, roster(
		person("Zoë Smith", "", nil),
		row(),
	))
	require.NoError(t, err)
	require.Equal(t, 1, r.Created)
	require.Equal(t, 1, f.env.Matcher.Len())
	require.Equal(t, []string{
		`roster row 2: no usable email for "Zoë Smith"; using placeholder email zoe.smith@placeholder.invalid`,
	}, r.Warnings)

	m, err := f.env.Members.GetByEmail(f.ctx, "zoe.smith@placeholder.invalid")
	require.NoError(t, err)
	require.True(t, m.PlaceholderEmail())

	// A second run finds the same member instead of creating another one.
	again := f.freshEnv()
	again.Season = f.env.Season
	r, err = importers.ImportMembers(f.ctx, again, roster(person("Zoë Smith", "n/a", nil)))
	require.NoError(t, err)
	require.Equal(t, 0, r.Created)
	require.Equal(t, 1, r.Updated)
	require.Equal(t, int64(1), f.count(t, "members"))
	require.Equal(t, int64(1), f.count(t, "season_enrollments"))
}

func TestImportMembers_NonLatinNamesKeepSeparateIdentities(t *testing.T) {
	f := newFixture(t)

	r, err := importers.ImportMembers(f.ctx, f.env, roster(
		person("علی رضایی", "", nil),
		person("مریم احمدی", "", nil),
	))
	require.NoError(t, err)
	require.Equal(t, 2, r.Created)
	require.Len(t, r.Warnings, 2)
	require.NotContains(t, r.Warnings[0], "already used")
	require.NotContains(t, r.Warnings[1], "already used")
	require.Equal(t, int64(2), f.count(t, "members"))
	require.Equal(t, int64(2), f.count(t, "season_enrollments"))
	require.Equal(t, 2, f.env.Matcher.Len())

	ali, ok := f.env.Matcher.Resolve("علی رضایی", "test")
	require.True(t, ok)
	maryam, ok := f.env.Matcher.Resolve("مریم احمدی", "test")
	require.True(t, ok)
	require.NotEqual(t, ali.MemberID, maryam.MemberID)
	require.Empty(t, f.env.Matcher.DrainWarnings())
}

func TestImportMembers_PlaceholderDomainAddressStaysPlaceholder(t *testing.T) {
	f := newFixture(t)

	r, err := importers.ImportMembers(f.ctx, f.env, roster(person("Zoë Smith", "zoe.smith@placeholder.invalid", nil)))
	require.NoError(t, err)
	require.Empty(t, r.Warnings)

	m, err := f.env.Members.GetByEmail(f.ctx, "zoe.smith@placeholder.invalid")
	require.NoError(t, err)
	require.True(t, m.PlaceholderEmail())

	_, ok := f.env.Matcher.ResolveByEmailOnly("zoe.smith@placeholder.invalid", "test")
	require.False(t, ok)
	f.env.Matcher.DrainWarnings()
}

func TestImportMembers_EnrollmentFields(t *testing.T) {
	f := newFixture(t)

	r, err := importers.ImportMembers(f.ctx, f.env, roster(
		person("Jane Doe", "Jane@Example.com", map[int]string{
			4:  "paid in full",
			5:  "30 amp",
			6:  "RV",
			10: "8/24",
			11: "someday",
			18: "x",
		}),
		person("Jane Doe", "jane@example.com", nil),
	))
	require.NoError(t, err)
	require.Equal(t, 1, r.Created)
	require.Equal(t, 1, r.Updated)
	require.Len(t, r.Warnings, 2)
	require.Contains(t, r.Warnings[0], `roster row 2: unparseable departure date "someday"`)
	require.Contains(t, r.Warnings[1], "already used on row 2")

	enrollments, err := f.env.Members.FindEnrollments(f.ctx, &member.FindEnrollmentsParams{SeasonID: f.env.Season.ID()})
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	// The duplicate row was imported last and wins.
	require.False(t, enrollments[0].DuesPaid)
	require.False(t, enrollments[0].StrikeCrew)
}

func TestImportPayments_UnmatchedName(t *testing.T) {
	f := newFixture(t)
	f.importRoster(t, person("Jane Doe", "jane@example.com", nil))

	r, err := importers.ImportPayments(f.ctx, f.env, workbook.Table{
		Name:   importers.SheetPayments,
		Header: row("Date", "Name", "Email", "Amount", "Type", "Method", "Note"),
		Rows: [][]workbook.Cell{
			row(45893, "Nobody Here", "", "$50.00", "dues", "venmo"),
		},
	})
	require.NoError(t, err)
	require.Equal(t, 0, r.Created)
	require.Equal(t, 1, r.Skipped)
	require.Len(t, r.Warnings, 1)
	require.Contains(t, r.Warnings[0], `payments row 2: unmatched name "Nobody Here"`)
	require.Zero(t, f.count(t, "payments"))
}

func TestImportPayments_DedupAndValidation(t *testing.T) {
	f := newFixture(t)
	f.importRoster(t,
		person("Jane Doe", "jane@example.com", nil),
		person("Stevie Hatz", "stevie@example.com", nil),
	)
	sheet := workbook.Table{
		Name:   importers.SheetPayments,
		Header: row("Date", "Name", "Email", "Amount", "Type", "Method", "Note"),
		Rows: [][]workbook.Cell{
			row(45893, "J. Doe", "JANE@example.com", "$1,200.00", "", "zelle"),
			row("2025-08-24", "Steve Hatz", "", 450, "Dues"),
			row("2025-08-24", "Steve Hatz", "", 450, "Dues"),
			row("", "Jane Doe", "", 10),
			row("2025-08-24", "Jane Doe", "", "NA"),
		},
	}

	r, err := importers.ImportPayments(f.ctx, f.env, sheet)
	require.NoError(t, err)
	require.Equal(t, 2, r.Created)
	require.Equal(t, 3, r.Skipped)
	require.Equal(t, []string{
		`payments row 5: missing or unparseable date ""; skipped`,
		`payments row 6: zero or missing amount; skipped`,
	}, r.Warnings)
	require.Equal(t, "1", r.Details["duplicates"])
	require.Equal(t, "$1,650.00", r.Details["recorded total"])

	r, err = importers.ImportPayments(f.ctx, f.env, sheet)
	require.NoError(t, err)
	require.Zero(t, r.Created)
	require.Equal(t, "3", r.Details["duplicates"])
	require.Equal(t, int64(2), f.count(t, "payments"))
}

type conflictingPayments struct {
	finance.Repository
	creates int
}

func (c *conflictingPayments) FindPayment(context.Context, finance.PaymentKey) (finance.Payment, error) {
	return finance.Payment{}, finance.ErrNotFound
}

func (c *conflictingPayments) CreatePayment(context.Context, finance.Payment) (finance.Payment, error) {
	c.creates++
	return finance.Payment{}, finance.ErrDuplicate
}

func TestImportPayments_ConstraintViolationStopsStep(t *testing.T) {
	f := newFixture(t)
	f.importRoster(t, person("Jane Doe", "jane@example.com", nil))
	repo := &conflictingPayments{Repository: f.env.Finance}
	f.env.Finance = repo

	_, err := importers.ImportPayments(f.ctx, f.env, workbook.Table{
		Name:   importers.SheetPayments,
		Header: row("Date", "Name", "Email", "Amount"),
		Rows: [][]workbook.Cell{
			row("2025-08-24", "Jane Doe", "", 100),
			row("2025-08-25", "Jane Doe", "", 200),
		},
	})
	require.ErrorIs(t, err, finance.ErrDuplicate)
	require.Contains(t, err.Error(), "payments row 2")
	require.Equal(t, 1, repo.creates)
}

func TestImportBuildCrew_DayStateMachine(t *testing.T) {
	f := newFixture(t)
	f.importRoster(t,
		person("Jane Doe", "jane@example.com", nil),
		person("Kim Kilo", "kim@example.com", nil),
	)

	r, err := importers.ImportBuildCrew(f.ctx, f.env, workbook.Table{
		Name:   importers.SheetBuildCrew,
		Header: row("Name", "Task", "Shift", "Notes", "", "Name", "Task", "Shift", "Notes"),
		Rows: [][]workbook.Cell{
			row("Jane Doe", "shade", "AM", "", "", "Kim Kilo"),
			row("Monday 8/18", "", "", "", "", "TUES"),
			row("Jane Doe", "shade", "AM", "", "", "Kim Kilo", "kitchen"),
			row("Wed.", "", "", "", "", "jane doe"),
			row("Kim Kilo", "power"),
			row("Ghost Person"),
		},
	})
	require.NoError(t, err)
	require.Equal(t, 4, r.Created)
	require.Equal(t, 3, r.Skipped)
	require.Len(t, r.Warnings, 3)
	require.Equal(t, `build crew row 2: left list entry "Jane Doe" comes before any day header; skipped`, r.Warnings[0])
	require.Equal(t, `build crew row 2: right list entry "Kim Kilo" comes before any day header; skipped`, r.Warnings[1])
	require.Contains(t, r.Warnings[2], `build crew row 7: unmatched name "Ghost Person"`)
	require.Equal(t, map[string]string{"Monday": "1", "Tuesday": "2", "Wednesday": "1"}, r.Details)
	require.Equal(t, int64(4), f.count(t, "build_assignments"))
}

func TestImportEarlyArrivalAndStrike(t *testing.T) {
	f := newFixture(t)
	f.importRoster(t,
		person("Jane Doe", "jane@example.com", map[int]string{18: "yes"}),
		person("Kim Kilo", "kim@example.com", map[int]string{18: "yes"}),
		person("Amy Alpha", "amy@example.com", map[int]string{18: "no"}),
	)

	r, err := importers.ImportEarlyArrival(f.ctx, f.env, workbook.Table{
		Name:   importers.SheetEarlyArrival,
		Header: row("Name", "Email", "Arrival", "Pass", "Vehicle", "Notes"),
		Rows: [][]workbook.Cell{
			row("", "kim@example.com", "8/20", "EA", "truck"),
			row("Jane Doe", "", "TBD"),
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, r.Created)
	require.Equal(t, 1, r.Skipped)
	require.Equal(t, "1", r.Details["arriving 2025-08-20"])

	r, err = importers.ImportStrike(f.ctx, f.env, workbook.Table{})
	require.NoError(t, err)
	require.Equal(t, 2, r.Created)
	require.Equal(t, "2", r.Details["strike crew"])

	r, err = importers.ImportStrike(f.ctx, f.env, workbook.Table{})
	require.NoError(t, err)
	require.Zero(t, r.Created)
	require.Equal(t, 2, r.Updated)
}

func TestImportTickets_EmailColumnIsStrict(t *testing.T) {
	f := newFixture(t)
	f.importRoster(t, person("Jane Doe", "jane@example.com", nil))

	r, err := importers.ImportTickets(f.ctx, f.env, workbook.Table{
		Name:   importers.SheetTickets,
		Header: row("Name", "Email", "Type", "Qty", "Price", "Vehicle", "Notes"),
		Rows: [][]workbook.Cell{
			row("Jane Doe", "old-jane@example.com", "main"),
			row("Jane Doe", "", "", "", "$575"),
			row("Jane Doe", "", "vehicle pass", 0),
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, r.Created)
	require.Equal(t, 2, r.Skipped)
	require.Equal(t, []string{
		`tickets row 2: unmatched email "old-jane@example.com"`,
		`tickets row 4: invalid ticket quantity "0"; skipped`,
	}, r.Warnings)
	require.Equal(t, "1", r.Details["MAIN"])
}

func TestImportInventory_CategoryGroups(t *testing.T) {
	f := newFixture(t)

	sheet := workbook.Table{
		Name:   importers.SheetInventory,
		Header: row("Kitchen", "Qty", "Where", "Notes", "Shade", "Qty", "Where", "Notes", "Lasers"),
		Rows: [][]workbook.Cell{
			row("Stock pot", 2, "bin 4", "", "Aluminet 30x40", "", "container"),
			row("Stock Pot", 3, "", "", "", "", "", "", "Disco ball"),
		},
	}
	r, err := importers.ImportInventory(f.ctx, f.env, sheet)
	require.NoError(t, err)
	require.Equal(t, 3, r.Created)
	require.Equal(t, 1, r.Updated)
	require.Equal(t, []string{`inventory row 1: unknown category "Lasers"; items filed under OTHER`}, r.Warnings)
	require.Equal(t, map[string]string{"KITCHEN": "2", "SHADE": "1", "OTHER": "1"}, r.Details)
	require.Equal(t, int64(3), f.count(t, "inventory_items"))
}

type budgetRecorder struct {
	finance.Repository
	lines []finance.BudgetLine
}

func (b *budgetRecorder) UpsertBudgetLine(ctx context.Context, l finance.BudgetLine) (finance.BudgetLine, bool, error) {
	b.lines = append(b.lines, l)
	return b.Repository.UpsertBudgetLine(ctx, l)
}

func TestImportBudget_AggregatesPerCategory(t *testing.T) {
	f := newFixture(t)
	rec := &budgetRecorder{Repository: f.env.Finance}
	f.env.Finance = rec

	r, err := importers.ImportBudget(f.ctx, f.env, workbook.Table{
		Name:   importers.SheetBudget,
		Header: row("Item", "Amount", "Notes"),
		Rows: [][]workbook.Cell{
			row("Groceries", "$400.50"),
			row("Mystery box", 10),
			row("Ice", 0),
			row("Water", ""),
			row("Costco run", 220),
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, r.Created)
	require.Equal(t, 3, r.Skipped)
	require.Equal(t, []string{
		`budget row 3: no budget category for "Mystery box"; excluded from totals`,
		`budget row 4: zero or missing amount; skipped`,
		`budget row 5: zero or missing amount; skipped`,
	}, r.Warnings)
	require.Equal(t, "$620.50", r.Details["FOOD"])

	require.Len(t, rec.lines, 1)
	require.Equal(t, finance.CategoryFood, rec.lines[0].Category)
	require.Equal(t, int64(62050), rec.lines[0].AmountMinor)
	require.Equal(t, "Groceries; Costco run", rec.lines[0].Description)
	require.Equal(t, int64(1), f.count(t, "budget_lines"))
}

func TestImportExpenses(t *testing.T) {
	f := newFixture(t)
	f.importRoster(t, person("Jane Doe", "jane@example.com", nil))

	sheet := workbook.Table{
		Name:   importers.SheetExpenses,
		Header: row("Date", "Description", "Amount", "Paid by", "Category", "Reimbursed", "Receipt"),
		Rows: [][]workbook.Cell{
			row("8/10", "Bags of  ice", "$12.99", "jane doe", "ice", "yes"),
			row("8/11", "Porta potty", 800, "", "sanitation"),
			row("8/12", "Lumber", 300, "Nobody Here", "structure"),
			row("", "Rope", 20),
		},
	}
	r, err := importers.ImportExpenses(f.ctx, f.env, sheet)
	require.NoError(t, err)
	require.Equal(t, 2, r.Created)
	require.Equal(t, 2, r.Skipped)
	require.Len(t, r.Warnings, 2)
	require.Contains(t, r.Warnings[0], `expenses row 4: unmatched name "Nobody Here"`)
	require.Equal(t, `expenses row 5: missing or unparseable date ""; skipped`, r.Warnings[1])
	require.Equal(t, "$812.99", r.Details["recorded total"])

	r, err = importers.ImportExpenses(f.ctx, f.env, sheet)
	require.NoError(t, err)
	require.Zero(t, r.Created)
	require.Equal(t, "2", r.Details["duplicates"])
	require.Equal(t, int64(2), f.count(t, "expenses"))
}
