package importers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/finance"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

type expenseRow struct {
	date        workbook.Cell
	description string
	amount      int64
	paidBy      string
	category    finance.BudgetCategory
	reimbursed  bool
	receipt     string
}

func parseExpenseRow(row []workbook.Cell) expenseRow {
	return expenseRow{
		date:        workbook.At(row, 0),
		description: strings.Join(strings.Fields(workbook.At(row, 1).Text()), " "),
		amount:      transform.ToMinorUnits(workbook.At(row, 2)),
		paidBy:      workbook.At(row, 3).Text(),
		category:    finance.ParseBudgetCategory(workbook.At(row, 4).Text()),
		reimbursed:  transform.YesNo(workbook.At(row, 5)),
		receipt:     workbook.At(row, 6).Text(),
	}
}

// ImportExpenses records actual spend. A blank payer means the camp paid
// directly; a payer that cannot be resolved skips the row.
func ImportExpenses(ctx context.Context, env *Env, t workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepExpenses}
	if err := env.requireSeason(); err != nil {
		return r, err
	}

	var duplicates int
	var total int64
	for i, row := range t.Rows {
		if workbook.IsBlankRow(row) {
			continue
		}
		at := rowContext(SheetExpenses, i)
		in := parseExpenseRow(row)

		spentOn, ok := parseDay(in.date, env.Config.Year)
		if !ok {
			r.Skipped++
			r.Warn("%s: missing or unparseable date %q; skipped", at, in.date.Text())
			continue
		}
		if in.amount == 0 {
			r.Skipped++
			r.Warn("%s: zero or missing amount; skipped", at)
			continue
		}

		var paidBy *uuid.UUID
		if in.paidBy != "" {
			id, ok := env.Matcher.Resolve(in.paidBy, at)
			env.drain(&r)
			if !ok {
				r.Skipped++
				continue
			}
			paidBy = &id.MemberID
		}

		x := finance.Expense{
			SeasonID:    env.Season.ID(),
			SpentOn:     spentOn,
			Description: in.description,
			AmountMinor: in.amount,
			PaidBy:      paidBy,
			Category:    in.category,
			Reimbursed:  in.reimbursed,
			ReceiptNote: in.receipt,
		}
		_, err := env.Finance.FindExpense(ctx, x.Key())
		switch {
		case err == nil:
			r.Skipped++
			duplicates++
			continue
		case !errors.Is(err, finance.ErrNotFound):
			return r, fmt.Errorf("%s: find expense: %w", at, err)
		}
		if _, err := env.Finance.CreateExpense(ctx, x); err != nil {
			return r, fmt.Errorf("%s: create expense: %w", at, err)
		}
		r.Created++
		total += in.amount
	}

	r.Detail("duplicates", duplicates)
	r.Detail("recorded total", transform.FormatMinorUnits(total, env.Config.Currency))
	return r, nil
}
