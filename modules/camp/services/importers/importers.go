// Package importers turns the sheets of the camp records workbook into stored
// records. Every importer parses positional cells into a typed row, resolves
// people through the matcher, writes idempotently and returns a report.
package importers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/member"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/season"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/finance"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
	"github.com/iota-uz/camp-sdk/modules/camp/services/matcher"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/composables"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

var ErrNoSeason = errors.New("season has not been imported")

type Config struct {
	Year              int
	SeasonName        string
	PlaceholderDomain string
	Currency          string
}

// Env is shared by every step of one run. Season is filled by ImportSeason and
// read by all later steps; Matcher is filled by ImportMembers.
type Env struct {
	Seasons   season.Repository
	Members   member.Repository
	Finance   finance.Repository
	Logistics logistics.Repository
	Matcher   *matcher.Matcher
	Config    Config
	Season    season.Season
}

// RunFunc imports one table. Steps without a sheet receive a zero Table.
type RunFunc func(ctx context.Context, env *Env, t workbook.Table) (report.Report, error)

// Importer binds a report step name to the sheet it reads.
type Importer struct {
	Step  string
	Sheet string
	Run   RunFunc
}

const (
	StepSeason       = "Season"
	StepMembers      = "Members"
	StepPayments     = "Payments"
	StepBuildCrew    = "BuildCrew"
	StepEarlyArrival = "EarlyArrival"
	StepStrike       = "Strike"
	StepTickets      = "Tickets"
	StepInventory    = "Inventory"
	StepBudget       = "Budget"
	StepExpenses     = "Expenses"

	SheetSeason       = "Season"
	SheetRoster       = "Roster"
	SheetPayments     = "Payments"
	SheetBuildCrew    = "Build Crew"
	SheetEarlyArrival = "Early Arrival"
	SheetTickets      = "Tickets"
	SheetInventory    = "Inventory"
	SheetBudget       = "Budget"
	SheetExpenses     = "Expenses"
)

// Steps lists the importers that run after the roster, in order.
func Steps() []Importer {
	return []Importer{
		{Step: StepPayments, Sheet: SheetPayments, Run: ImportPayments},
		{Step: StepBuildCrew, Sheet: SheetBuildCrew, Run: ImportBuildCrew},
		{Step: StepEarlyArrival, Sheet: SheetEarlyArrival, Run: ImportEarlyArrival},
		{Step: StepStrike, Run: ImportStrike},
		{Step: StepTickets, Sheet: SheetTickets, Run: ImportTickets},
		{Step: StepInventory, Sheet: SheetInventory, Run: ImportInventory},
		{Step: StepBudget, Sheet: SheetBudget, Run: ImportBudget},
		{Step: StepExpenses, Sheet: SheetExpenses, Run: ImportExpenses},
	}
}

// rowContext labels warnings with the sheet and the row number a person sees
// in the spreadsheet.
func rowContext(sheet string, i int) string {
	return fmt.Sprintf("%s row %d", strings.ToLower(sheet), workbook.SheetRow(i))
}

// drain moves the matcher's pending warnings into r, keeping row order.
func (e *Env) drain(r *report.Report) {
	if e.Matcher == nil {
		return
	}
	r.Warnings = append(r.Warnings, e.Matcher.DrainWarnings()...)
}

func (e *Env) requireSeason() error {
	if e.Season.IsZero() {
		return ErrNoSeason
	}
	return nil
}

// resolvePerson uses the email when it is known and otherwise falls back to
// the full name cascade (on the email when the name is blank).
func (e *Env) resolvePerson(name, email, at string) (matcher.Identity, bool) {
	if email != "" {
		if id, ok := e.Matcher.LookupEmail(email); ok {
			return id, true
		}
	}
	input := name
	if input == "" {
		input = email
	}
	return e.Matcher.Resolve(input, at)
}

func stepLogger(ctx context.Context, step string) *logrus.Entry {
	return composables.UseLogger(ctx).WithField("step", step)
}

// parseDay reads a date cell, completing "M/D" text with the season year.
func parseDay(c workbook.Cell, year int) (time.Time, bool) {
	if t, ok := transform.ParseDate(c); ok {
		return t, true
	}
	if c.Kind == workbook.CellString {
		return transform.ParseDateWithYear(c.Str, year)
	}
	return time.Time{}, false
}

// parseCount reads a whole quantity. ok is false for empty or non-numeric
// cells.
func parseCount(c workbook.Cell) (int, bool) {
	switch c.Kind {
	case workbook.CellNumber:
		return int(c.Num), true
	case workbook.CellString:
		s := strings.TrimSpace(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Str)), "x"))
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

func ptr[T any](v T) *T {
	return &v
}

func tally(r *report.Report, created bool) {
	if created {
		r.Created++
	} else {
		r.Updated++
	}
}
