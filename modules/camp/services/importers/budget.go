package importers

import (
	"context"
	"fmt"
	"strings"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/finance"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

type budgetRow struct {
	description string
	amount      int64
	notes       string
}

func parseBudgetRow(row []workbook.Cell) budgetRow {
	return budgetRow{
		description: workbook.At(row, 0).Text(),
		amount:      transform.ToMinorUnits(workbook.At(row, 1)),
		notes:       workbook.At(row, 2).Text(),
	}
}

type budgetBucket struct {
	category     finance.BudgetCategory
	amount       int64
	descriptions []string
}

// ImportBudget maps every line to a category, sums per category and then
// writes one budget line per category. Lines without an amount or that no
// rule recognizes are reported and left out of the totals.
func ImportBudget(ctx context.Context, env *Env, t workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepBudget}
	if err := env.requireSeason(); err != nil {
		return r, err
	}

	var buckets []*budgetBucket
	byCategory := map[finance.BudgetCategory]*budgetBucket{}
	for i, row := range t.Rows {
		in := parseBudgetRow(row)
		if in.description == "" {
			continue
		}
		at := rowContext(SheetBudget, i)
		if in.amount == 0 {
			r.Skipped++
			r.Warn("%s: zero or missing amount; skipped", at)
			continue
		}
		category, ok := finance.LookupBudgetCategory(in.description)
		if !ok {
			r.Skipped++
			r.Warn("%s: no budget category for %q; excluded from totals", at, in.description)
			continue
		}
		b, seen := byCategory[category]
		if !seen {
			b = &budgetBucket{category: category}
			byCategory[category] = b
			buckets = append(buckets, b)
		}
		b.amount += in.amount
		b.descriptions = append(b.descriptions, in.description)
	}

	var total int64
	for _, b := range buckets {
		_, created, err := env.Finance.UpsertBudgetLine(ctx, finance.BudgetLine{
			SeasonID:    env.Season.ID(),
			Category:    b.category,
			AmountMinor: b.amount,
			Description: strings.Join(b.descriptions, "; "),
		})
		if err != nil {
			return r, fmt.Errorf("upsert budget line %s: %w", b.category, err)
		}
		tally(&r, created)
		total += b.amount
		r.Detail(string(b.category), transform.FormatMinorUnits(b.amount, env.Config.Currency))
	}
	r.Detail("total", transform.FormatMinorUnits(total, env.Config.Currency))
	return r, nil
}
