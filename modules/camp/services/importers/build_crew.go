package importers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

// The Build Crew sheet holds two independent lists side by side, each with
// name, task, shift and notes columns and its own day headers.
var crewGroups = []struct {
	label  string
	offset int
}{
	{"left", 0},
	{"right", 5},
}

var weekdays = map[string]string{
	"mon": "Monday", "monday": "Monday",
	"tue": "Tuesday", "tues": "Tuesday", "tuesday": "Tuesday",
	"wed": "Wednesday", "weds": "Wednesday", "wednesday": "Wednesday",
	"thu": "Thursday", "thur": "Thursday", "thurs": "Thursday", "thursday": "Thursday",
	"fri": "Friday", "friday": "Friday",
	"sat": "Saturday", "saturday": "Saturday",
	"sun": "Sunday", "sunday": "Sunday",
}

// dayState is the day a group's rows currently belong to. The zero value means
// no header has been seen yet.
type dayState struct {
	day  string
	date *time.Time
}

func (s dayState) started() bool { return s.day != "" }

// parseDayHeader recognizes "Monday", "Tues 8/19", "WED." and similar. Anything
// with more than a weekday and one date token is a person.
func parseDayHeader(s string, year int) (dayState, bool) {
	tokens := strings.Fields(strings.ToLower(s))
	if len(tokens) == 0 || len(tokens) > 2 {
		return dayState{}, false
	}
	day, ok := weekdays[strings.TrimRight(tokens[0], ".,:")]
	if !ok {
		return dayState{}, false
	}
	next := dayState{day: day}
	if len(tokens) == 2 {
		date, ok := transform.ParseDateWithYear(strings.Trim(tokens[1], "(),"), year)
		if !ok {
			return dayState{}, false
		}
		next.date = &date
	}
	return next, true
}

type crewRow struct {
	name  workbook.Cell
	task  string
	shift string
	notes string
}

func parseCrewRow(row []workbook.Cell, offset int) crewRow {
	return crewRow{
		name:  workbook.At(row, offset),
		task:  workbook.At(row, offset+1).Text(),
		shift: workbook.At(row, offset+2).Text(),
		notes: workbook.At(row, offset+3).Text(),
	}
}

// ImportBuildCrew walks both groups through their own day state machine and
// upserts one assignment per (enrollment, day).
func ImportBuildCrew(ctx context.Context, env *Env, t workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepBuildCrew}
	if err := env.requireSeason(); err != nil {
		return r, err
	}
	logger := stepLogger(ctx, StepBuildCrew)

	states := make([]dayState, len(crewGroups))
	perDay := map[string]int{}

	// A day header may sit in the sheet's first line, so the header row is
	// fed through the state machine too; its other cells are column titles.
	rows := append([][]workbook.Cell{t.Header}, t.Rows...)
	for i, row := range rows {
		at := rowContext(SheetBuildCrew, i-1)
		for g, group := range crewGroups {
			in := parseCrewRow(row, group.offset)
			name := in.name.Text()
			if name == "" {
				continue
			}
			if next, ok := parseDayHeader(name, env.Config.Year); ok {
				states[g] = next
				continue
			}
			if i == 0 {
				continue
			}
			if !states[g].started() {
				r.Skipped++
				r.Warn("%s: %s list entry %q comes before any day header; skipped", at, group.label, name)
				continue
			}

			id, ok := env.Matcher.Resolve(name, at)
			env.drain(&r)
			if !ok {
				r.Skipped++
				continue
			}
			_, created, err := env.Logistics.UpsertBuildAssignment(ctx, logistics.BuildAssignment{
				EnrollmentID: id.EnrollmentID,
				Day:          states[g].day,
				Date:         states[g].date,
				Task:         in.task,
				Shift:        in.shift,
				Notes:        in.notes,
			})
			if err != nil {
				return r, fmt.Errorf("%s: upsert build assignment: %w", at, err)
			}
			tally(&r, created)
			perDay[states[g].day]++
			logger.WithField("row", workbook.SheetRow(i-1)).Debugf("%s on %s build crew", id.Name, states[g].day)
		}
	}

	for day, n := range perDay {
		r.Detail(day, n)
	}
	return r, nil
}
