package importers

import (
	"context"
	"fmt"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
	"github.com/iota-uz/camp-sdk/modules/camp/services/matcher"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

type ticketRow struct {
	name        string
	email       string
	typ         logistics.TicketType
	quantity    workbook.Cell
	price       int64
	vehiclePass bool
	notes       string
}

func parseTicketRow(row []workbook.Cell) ticketRow {
	return ticketRow{
		name:        workbook.At(row, 0).Text(),
		email:       workbook.At(row, 1).Text(),
		typ:         logistics.ParseTicketType(workbook.At(row, 2).Text()),
		quantity:    workbook.At(row, 3),
		price:       transform.ToMinorUnits(workbook.At(row, 4)),
		vehiclePass: transform.YesNo(workbook.At(row, 5)),
		notes:       workbook.At(row, 6).Text(),
	}
}

// ImportTickets trusts the email column when it is filled: such rows resolve
// by email only. Rows without an email resolve by name.
func ImportTickets(ctx context.Context, env *Env, t workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepTickets}
	if err := env.requireSeason(); err != nil {
		return r, err
	}

	perType := map[string]int{}
	for i, row := range t.Rows {
		if workbook.IsBlankRow(row) {
			continue
		}
		at := rowContext(SheetTickets, i)
		in := parseTicketRow(row)

		quantity := 1
		if !in.quantity.IsEmpty() {
			n, ok := parseCount(in.quantity)
			if !ok || n < 1 {
				r.Skipped++
				r.Warn("%s: invalid ticket quantity %q; skipped", at, in.quantity.Text())
				continue
			}
			quantity = n
		}

		var (
			id matcher.Identity
			ok bool
		)
		switch {
		case in.email != "":
			id, ok = env.Matcher.ResolveByEmailOnly(in.email, at)
		case in.name != "":
			id, ok = env.Matcher.Resolve(in.name, at)
		default:
			r.Warn("%s: no name or email; skipped", at)
		}
		env.drain(&r)
		if !ok {
			r.Skipped++
			continue
		}

		_, created, err := env.Logistics.UpsertTicket(ctx, logistics.Ticket{
			EnrollmentID: id.EnrollmentID,
			Type:         in.typ,
			Quantity:     quantity,
			PriceMinor:   in.price,
			VehiclePass:  in.vehiclePass,
			Notes:        in.notes,
		})
		if err != nil {
			return r, fmt.Errorf("%s: upsert ticket: %w", at, err)
		}
		tally(&r, created)
		perType[string(in.typ)] += quantity
	}

	for typ, n := range perType {
		r.Detail(typ, n)
	}
	return r, nil
}
