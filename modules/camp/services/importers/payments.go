package importers

import (
	"context"
	"errors"
	"fmt"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/finance"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

type paymentRow struct {
	date   workbook.Cell
	name   string
	email  string
	amount int64
	typ    finance.PaymentType
	method finance.PaymentMethod
	note   string
}

func parsePaymentRow(row []workbook.Cell) paymentRow {
	return paymentRow{
		date:   workbook.At(row, 0),
		name:   workbook.At(row, 1).Text(),
		email:  transform.NormalizeEmail(workbook.At(row, 2).Text()),
		amount: transform.ToMinorUnits(workbook.At(row, 3)),
		typ:    finance.ParsePaymentType(workbook.At(row, 4).Text()),
		method: finance.ParsePaymentMethod(workbook.At(row, 5).Text()),
		note:   workbook.At(row, 6).Text(),
	}
}

// ImportPayments records ledger entries. An entry already stored under the
// same (member, type, amount, date) is a duplicate and is skipped quietly.
func ImportPayments(ctx context.Context, env *Env, t workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepPayments}
	if err := env.requireSeason(); err != nil {
		return r, err
	}
	logger := stepLogger(ctx, StepPayments)

	var duplicates int
	var total int64
	for i, row := range t.Rows {
		if workbook.IsBlankRow(row) {
			continue
		}
		at := rowContext(SheetPayments, i)
		in := parsePaymentRow(row)

		if in.amount == 0 {
			r.Skipped++
			r.Warn("%s: zero or missing amount; skipped", at)
			continue
		}
		paidOn, ok := parseDay(in.date, env.Config.Year)
		if !ok {
			r.Skipped++
			r.Warn("%s: missing or unparseable date %q; skipped", at, in.date.Text())
			continue
		}
		id, ok := env.resolvePerson(in.name, in.email, at)
		env.drain(&r)
		if !ok {
			r.Skipped++
			continue
		}

		p := finance.Payment{
			SeasonID:    env.Season.ID(),
			MemberID:    id.MemberID,
			Type:        in.typ,
			Method:      in.method,
			AmountMinor: in.amount,
			PaidOn:      paidOn,
			Note:        in.note,
		}
		_, err := env.Finance.FindPayment(ctx, p.Key())
		switch {
		case err == nil:
			r.Skipped++
			duplicates++
			continue
		case !errors.Is(err, finance.ErrNotFound):
			return r, fmt.Errorf("%s: find payment: %w", at, err)
		}

		if _, err := env.Finance.CreatePayment(ctx, p); err != nil {
			return r, fmt.Errorf("%s: create payment: %w", at, err)
		}
		r.Created++
		total += in.amount
		logger.WithField("row", workbook.SheetRow(i)).Debugf("payment %s %d for %s", in.typ, in.amount, id.Email)
	}

	r.Detail("duplicates", duplicates)
	r.Detail("recorded total", transform.FormatMinorUnits(total, env.Config.Currency))
	return r, nil
}
