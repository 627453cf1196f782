package pipeline_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/camp-sdk/modules/camp/infrastructure/persistence/memory"
	"github.com/iota-uz/camp-sdk/modules/camp/services/importers"
	"github.com/iota-uz/camp-sdk/modules/camp/services/pipeline"
	"github.com/iota-uz/camp-sdk/pkg/composables"
	"github.com/iota-uz/camp-sdk/pkg/workbook/xlsxtest"
)

func rosterLine(status, name, email string, strike string) []any {
	line := make([]any, 22)
	line[0] = status
	line[2] = name
	if email != "" {
		line[3] = email
	}
	if strike != "" {
		line[18] = strike
	}
	return line
}

func recordsWorkbook(t *testing.T) string {
	t.Helper()
	return xlsxtest.Write(t,
		xlsxtest.Sheet{Name: "Roster", Rows: [][]any{
			{"Confirmed", "WhatsApp", "Name", "Email"},
			rosterLine("yes", "Jane Doe", "jane@example.com", "yes"),
			rosterLine("yes", "Stevie Hatz", "stevie@example.com", ""),
			rosterLine("maybe", "Zoë Smith", "", "x"),
		}},
		xlsxtest.Sheet{Name: "payments", Rows: [][]any{
			{"Date", "Name", "Email", "Amount", "Type", "Method", "Note"},
			{"2025-06-01", "Steve Hatz", nil, "$450.00", "dues", "venmo"},
			{45893, "Jane Doe", "jane@example.com", 450, nil, "cash"},
			{"2025-06-02", "Nobody Here", nil, 20},
		}},
		xlsxtest.Sheet{Name: "Build Crew", Rows: [][]any{
			{"Name", "Task", "Shift", "Notes", nil, "Name", "Task", "Shift", "Notes"},
			{"Monday 8/18", nil, nil, nil, nil, "Tues 8/19"},
			{"Jane Doe", "shade", "AM", nil, nil, "Zoë Smith", "kitchen"},
		}},
		xlsxtest.Sheet{Name: "Inventory", Rows: [][]any{
			{"Kitchen", "Qty", "Where", "Notes", "Power"},
			{"Stock pot", 2, "bin 4", nil, "Generator", 1},
		}},
		xlsxtest.Sheet{Name: "Budget", Rows: [][]any{
			{"Item", "Amount", "Notes"},
			{"Groceries", "$400.50"},
			{"Costco run", 220},
		}},
		xlsxtest.Sheet{Name: "Expenses", Rows: [][]any{
			{"Date", "Description", "Amount", "Paid by", "Category", "Reimbursed", "Receipt"},
			{"8/10", "Ice", "$12.99", "Jane Doe", "ice", "yes"},
		}},
	)
}

func newPipeline(store *memory.Store, path string, out *bytes.Buffer, textfile string) *pipeline.Pipeline {
	return pipeline.New(pipeline.MemoryStore(store), pipeline.Config{
		WorkbookPath: path,
		Import: importers.Config{
			Year:              2025,
			PlaceholderDomain: "placeholder.invalid",
			Currency:          "USD",
		},
		WarningPreview:  10,
		MetricsTextfile: textfile,
	}, pipeline.WithOutput(out))
}

func TestRun_IsIdempotent(t *testing.T) {
	path := recordsWorkbook(t)
	store := memory.NewStore()
	ctx := composables.WithTenantID(context.Background(), uuid.New())

	var out bytes.Buffer
	agg, err := newPipeline(store, path, &out, "").Run(ctx)
	require.NoError(t, err)

	first := agg.Totals()
	require.Positive(t, first.Created)
	steps := make([]string, 0, 10)
	for _, r := range agg.Reports() {
		steps = append(steps, r.Step)
	}
	require.Equal(t, []string{
		"Season", "Members", "Payments", "BuildCrew", "EarlyArrival",
		"Strike", "Tickets", "Inventory", "Budget", "Expenses",
	}, steps)

	text := out.String()
	require.Contains(t, text, "[Payments] created=2 updated=0 skipped=1 warnings=1")
	require.Contains(t, text, `table "Early Arrival" not found; step skipped`)
	require.Contains(t, text, `table "Tickets" not found; step skipped`)
	require.Contains(t, text, "IMPORT SUMMARY")
	require.Contains(t, text, "VERIFICATION")

	counts := map[string]int64{}
	for _, table := range []string{"members", "payments", "build_assignments", "strike_assignments", "budget_lines", "expenses", "inventory_items"} {
		n, err := store.Count(ctx, table)
		require.NoError(t, err)
		counts[table] = n
	}
	require.Equal(t, map[string]int64{
		"members":            3,
		"payments":           2,
		"build_assignments":  2,
		"strike_assignments": 2,
		"budget_lines":       1,
		"expenses":           1,
		"inventory_items":    2,
	}, counts)

	out.Reset()
	agg, err = newPipeline(store, path, &out, "").Run(ctx)
	require.NoError(t, err)
	require.Zero(t, agg.Totals().Created)
	for table, want := range counts {
		n, err := store.Count(ctx, table)
		require.NoError(t, err)
		require.Equal(t, want, n, table)
	}
}

func TestRun_RosterMissingIsFatal(t *testing.T) {
	path := xlsxtest.Write(t, xlsxtest.Sheet{Name: "Payments", Rows: [][]any{{"Date"}}})
	ctx := composables.WithTenantID(context.Background(), uuid.New())

	var out bytes.Buffer
	agg, err := newPipeline(memory.NewStore(), path, &out, "").Run(ctx)
	require.ErrorIs(t, err, pipeline.ErrRosterMissing)
	require.Len(t, agg.Reports(), 1)
}

func TestRun_UnreadableWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("name,email\n"), 0o644))
	ctx := composables.WithTenantID(context.Background(), uuid.New())

	_, err := newPipeline(memory.NewStore(), path, &bytes.Buffer{}, "").Run(ctx)
	require.ErrorIs(t, err, pipeline.ErrInput)
}

func TestRun_WritesMetricsTextfile(t *testing.T) {
	path := recordsWorkbook(t)
	textfile := filepath.Join(t.TempDir(), "camp_seed.prom")
	ctx := composables.WithTenantID(context.Background(), uuid.New())

	_, err := newPipeline(memory.NewStore(), path, &bytes.Buffer{}, textfile).Run(ctx)
	require.NoError(t, err)

	raw, err := os.ReadFile(textfile)
	require.NoError(t, err)
	require.Contains(t, string(raw), `camp_seed_rows{outcome="created",step="Members"} 3`)
	require.Contains(t, string(raw), `camp_seed_table_rows{table="members"} 3`)
}

func TestRun_RequiresTenant(t *testing.T) {
	path := recordsWorkbook(t)
	_, err := newPipeline(memory.NewStore(), path, &bytes.Buffer{}, "").Run(context.Background())
	require.ErrorIs(t, err, pipeline.ErrStore)
	require.ErrorIs(t, err, composables.ErrNoTenantID)
}
