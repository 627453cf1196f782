package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
)

const DefaultWarningPreview = 10

// Report is the outcome of one import step.
type Report struct {
	Step     string
	Created  int
	Updated  int
	Skipped  int
	Warnings []string
	Details  map[string]string
}

func (r *Report) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Detail records a key/value printed under the step summary.
func (r *Report) Detail(key string, value any) {
	if r.Details == nil {
		r.Details = map[string]string{}
	}
	r.Details[key] = fmt.Sprint(value)
}

type Totals struct {
	Created  int
	Updated  int
	Skipped  int
	Warnings int
}

// TableCount is one line of the post-run verification section.
type TableCount struct {
	Table string
	Rows  int64
}

type Option func(a *Aggregator)

func WithWarningPreview(n int) Option {
	return func(a *Aggregator) {
		if n >= 0 {
			a.preview = n
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// Aggregator accumulates step reports for a whole run and renders the audit
// trail to w. One instance is owned by the pipeline and passed to each step.
type Aggregator struct {
	w       io.Writer
	preview int
	logger  logrus.FieldLogger
	reports []Report
}

func New(w io.Writer, opts ...Option) *Aggregator {
	a := &Aggregator{
		w:       w,
		preview: DefaultWarningPreview,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddReport stores r and immediately prints its one-line summary, the first
// warnings and the details.
func (a *Aggregator) AddReport(r Report) {
	a.reports = append(a.reports, r)

	fmt.Fprintf(a.w, "[%s] created=%d updated=%d skipped=%d warnings=%d\n",
		r.Step, r.Created, r.Updated, r.Skipped, len(r.Warnings))
	for i, w := range r.Warnings {
		if i == a.preview {
			fmt.Fprintf(a.w, "  ... and %d more warning(s)\n", len(r.Warnings)-a.preview)
			break
		}
		fmt.Fprintf(a.w, "  ! %s\n", w)
	}
	for _, k := range sortedKeys(r.Details) {
		fmt.Fprintf(a.w, "  %s: %s\n", k, r.Details[k])
	}

	if a.logger != nil {
		a.logger.WithFields(logrus.Fields{
			"step":     r.Step,
			"created":  r.Created,
			"updated":  r.Updated,
			"skipped":  r.Skipped,
			"warnings": len(r.Warnings),
		}).Info("import step finished")
	}
}

func (a *Aggregator) Reports() []Report {
	return append([]Report(nil), a.reports...)
}

func (a *Aggregator) Totals() Totals {
	var t Totals
	for _, r := range a.reports {
		t.Created += r.Created
		t.Updated += r.Updated
		t.Skipped += r.Skipped
		t.Warnings += len(r.Warnings)
	}
	return t
}

// PrintFinalReport prints the per-step table with grand totals and, when any
// step warned, every warning grouped by step.
func (a *Aggregator) PrintFinalReport() {
	fmt.Fprintln(a.w)
	fmt.Fprintln(a.w, "IMPORT SUMMARY")
	tw := tabwriter.NewWriter(a.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tCREATED\tUPDATED\tSKIPPED\tWARNINGS")
	for _, r := range a.reports {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", r.Step, r.Created, r.Updated, r.Skipped, len(r.Warnings))
	}
	t := a.Totals()
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\t%d\n", t.Created, t.Updated, t.Skipped, t.Warnings)
	_ = tw.Flush()

	if t.Warnings == 0 {
		return
	}
	fmt.Fprintln(a.w)
	fmt.Fprintln(a.w, "WARNINGS")
	for _, r := range a.reports {
		if len(r.Warnings) == 0 {
			continue
		}
		fmt.Fprintf(a.w, "[%s]\n", r.Step)
		for _, w := range r.Warnings {
			fmt.Fprintf(a.w, "  ! %s\n", w)
		}
	}
}

// PrintVerification prints the row count of every entity table after the run.
func (a *Aggregator) PrintVerification(counts []TableCount) {
	fmt.Fprintln(a.w)
	fmt.Fprintln(a.w, "VERIFICATION")
	tw := tabwriter.NewWriter(a.w, 0, 0, 2, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Table, c.Rows)
	}
	_ = tw.Flush()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
