package importers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/season"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

type seasonField int

const (
	seasonFieldUnknown seasonField = iota
	seasonFieldName
	seasonFieldStart
	seasonFieldEnd
	seasonFieldDues
)

var seasonFields = transform.NewVocabulary("season field", seasonFieldUnknown,
	map[string]seasonField{
		"name":        seasonFieldName,
		"season":      seasonFieldName,
		"season name": seasonFieldName,
		"start":       seasonFieldStart,
		"start date":  seasonFieldStart,
		"starts":      seasonFieldStart,
		"end":         seasonFieldEnd,
		"end date":    seasonFieldEnd,
		"ends":        seasonFieldEnd,
		"dues":        seasonFieldDues,
	},
	transform.Rule[seasonField]{Match: transform.Contains("dues", "fee"), Result: seasonFieldDues},
	transform.Rule[seasonField]{Match: transform.Contains("start", "begin", "arrive"), Result: seasonFieldStart},
	transform.Rule[seasonField]{Match: transform.Contains("end", "leave", "depart"), Result: seasonFieldEnd},
	transform.Rule[seasonField]{Match: transform.Contains("name"), Result: seasonFieldName},
)

// ImportSeason upserts the season for the configured year. t is the optional
// key/value Season sheet; its values override the configured name and add
// dates and dues. The saved season is stored on env.
func ImportSeason(ctx context.Context, env *Env, t *workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepSeason}
	opts := []season.Option{season.WithName(env.Config.SeasonName)}

	if t != nil {
		var starts, ends *time.Time
		// The sheet has no column header; its first line is already a pair.
		rows := append([][]workbook.Cell{t.Header}, t.Rows...)
		for i, row := range rows {
			if workbook.IsBlankRow(row) {
				continue
			}
			at := rowContext(SheetSeason, i-1)
			key, value := workbook.At(row, 0).Text(), workbook.At(row, 1)
			field, known := seasonFields.Lookup(key)
			if !known && i == 0 {
				continue
			}
			switch field {
			case seasonFieldName:
				opts = append(opts, season.WithName(value.Text()))
			case seasonFieldStart, seasonFieldEnd:
				day, ok := parseDay(value, env.Config.Year)
				if !ok {
					r.Warn("%s: unparseable %s %q; ignored", at, strings.ToLower(key), value.Text())
					continue
				}
				if field == seasonFieldStart {
					starts = ptr(day)
				} else {
					ends = ptr(day)
				}
			case seasonFieldDues:
				opts = append(opts, season.WithDues(transform.ToMinorUnits(value)))
			default:
				r.Warn("%s: unknown season field %q; ignored", at, key)
			}
		}
		if starts != nil || ends != nil {
			opts = append(opts, season.WithDates(starts, ends))
		}
	}

	saved, created, err := env.Seasons.Upsert(ctx, season.New(env.Config.Year, opts...))
	if err != nil {
		return r, fmt.Errorf("upsert season %d: %w", env.Config.Year, err)
	}
	env.Season = saved
	tally(&r, created)

	r.Detail("year", saved.Year())
	r.Detail("name", saved.Name())
	if saved.DuesMinor() != 0 {
		r.Detail("dues", transform.FormatMinorUnits(saved.DuesMinor(), env.Config.Currency))
	}
	return r, nil
}
