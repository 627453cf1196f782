package importers

import (
	"context"
	"fmt"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

type arrivalRow struct {
	name     string
	email    string
	arrival  workbook.Cell
	passType logistics.PassType
	vehicle  string
	notes    string
}

func parseArrivalRow(row []workbook.Cell) arrivalRow {
	return arrivalRow{
		name:     workbook.At(row, 0).Text(),
		email:    transform.NormalizeEmail(workbook.At(row, 1).Text()),
		arrival:  workbook.At(row, 2),
		passType: logistics.ParsePassType(workbook.At(row, 3).Text()),
		vehicle:  workbook.At(row, 4).Text(),
		notes:    workbook.At(row, 5).Text(),
	}
}

func ImportEarlyArrival(ctx context.Context, env *Env, t workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepEarlyArrival}
	if err := env.requireSeason(); err != nil {
		return r, err
	}

	perDate := map[string]int{}
	for i, row := range t.Rows {
		if workbook.IsBlankRow(row) {
			continue
		}
		at := rowContext(SheetEarlyArrival, i)
		in := parseArrivalRow(row)

		arrival, ok := parseDay(in.arrival, env.Config.Year)
		if !ok {
			r.Skipped++
			r.Warn("%s: missing or unparseable arrival date %q; skipped", at, in.arrival.Text())
			continue
		}
		id, ok := env.resolvePerson(in.name, in.email, at)
		env.drain(&r)
		if !ok {
			r.Skipped++
			continue
		}

		_, created, err := env.Logistics.UpsertEarlyArrivalPass(ctx, logistics.EarlyArrivalPass{
			EnrollmentID: id.EnrollmentID,
			ArrivalOn:    arrival,
			PassType:     in.passType,
			Vehicle:      in.vehicle,
			Notes:        in.notes,
		})
		if err != nil {
			return r, fmt.Errorf("%s: upsert early arrival pass: %w", at, err)
		}
		tally(&r, created)
		perDate["arriving "+arrival.Format("2006-01-02")]++
	}

	for k, n := range perDate {
		r.Detail(k, n)
	}
	return r, nil
}
