// Package pipeline runs the yearly records import end to end: read the
// workbook, run every importer in order, print the audit trail and verify
// what was stored.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/camp-sdk/modules/camp/infrastructure/persistence"
	"github.com/iota-uz/camp-sdk/modules/camp/services/importers"
	"github.com/iota-uz/camp-sdk/modules/camp/services/matcher"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/composables"
	"github.com/iota-uz/camp-sdk/pkg/metrics"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

var (
	ErrRosterMissing = fmt.Errorf("table %q not found; nothing can be matched without it", importers.SheetRoster)
	// ErrInput wraps failures to read the workbook or the alias file.
	ErrInput         = errors.New("unusable input")
	// ErrStore wraps repository failures raised inside a step.
	ErrStore         = errors.New("store failure")
)

const metricsNamespace = "camp_seed"

type Config struct {
	WorkbookPath    string
	AliasFile       string
	Import          importers.Config
	WarningPreview  int
	MetricsTextfile string
}

type Option func(p *Pipeline)

func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

type Pipeline struct {
	store  Store
	cfg    Config
	out    io.Writer
	logger *logrus.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func New(store Store, cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:  store,
		cfg:    cfg,
		out:    io.Discard,
		logger: logrus.StandardLogger(),
		tracer: otel.Tracer("github.com/iota-uz/camp-sdk/modules/camp/services/pipeline"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run imports the workbook for the tenant carried by ctx. The returned
// aggregator holds every step report, also when a fatal error stopped the run
// part way.
func (p *Pipeline) Run(ctx context.Context) (*report.Aggregator, error) {
	started := p.now()
	log := p.logger.WithFields(logrus.Fields{
		"run_id":   uuid.New().String(),
		"workbook": p.cfg.WorkbookPath,
		"year":     p.cfg.Import.Year,
	})
	ctx = composables.WithLogger(ctx, log)
	ctx, span := p.tracer.Start(ctx, "camp-seed.run")
	defer span.End()

	agg := report.New(p.out,
		report.WithWarningPreview(p.cfg.WarningPreview),
		report.WithLogger(log),
	)

	tables, err := workbook.Read(p.cfg.WorkbookPath)
	if err != nil {
		return agg, fmt.Errorf("%w: %w", ErrInput, err)
	}
	aliases := matcher.DefaultAliases()
	if p.cfg.AliasFile != "" {
		if aliases, err = matcher.LoadAliases(p.cfg.AliasFile); err != nil {
			return agg, fmt.Errorf("%w: %w", ErrInput, err)
		}
	}
	log.WithField("tables", len(tables)).Info("workbook loaded")

	env := &importers.Env{
		Seasons:   p.store.Seasons,
		Members:   p.store.Members,
		Finance:   p.store.Finance,
		Logistics: p.store.Logistics,
		Matcher:   matcher.New(aliases),
		Config:    p.cfg.Import,
	}

	var seasonSheet *workbook.Table
	if t, ok := workbook.GetTable(tables, importers.SheetSeason); ok {
		seasonSheet = &t
	}
	err = p.runStep(ctx, agg, importers.StepSeason, func(ctx context.Context) (report.Report, error) {
		return importers.ImportSeason(ctx, env, seasonSheet)
	})
	if err != nil {
		return agg, err
	}

	roster, ok := workbook.GetTable(tables, importers.SheetRoster)
	if !ok {
		return agg, ErrRosterMissing
	}
	err = p.runStep(ctx, agg, importers.StepMembers, func(ctx context.Context) (report.Report, error) {
		return importers.ImportMembers(ctx, env, roster)
	})
	if err != nil {
		return agg, err
	}

	for _, imp := range importers.Steps() {
		var t workbook.Table
		if imp.Sheet != "" {
			if t, ok = workbook.GetTable(tables, imp.Sheet); !ok {
				r := report.Report{Step: imp.Step}
				r.Warn("table %q not found; step skipped", imp.Sheet)
				agg.AddReport(r)
				continue
			}
		}
		err := p.runStep(ctx, agg, imp.Step, func(ctx context.Context) (report.Report, error) {
			return imp.Run(ctx, env, t)
		})
		if err != nil {
			return agg, err
		}
	}

	agg.PrintFinalReport()
	counts, err := p.verify(ctx)
	if err != nil {
		return agg, err
	}
	agg.PrintVerification(counts)

	elapsed := p.now().Sub(started)
	if p.cfg.MetricsTextfile != "" {
		if err := p.exportMetrics(agg, counts, elapsed); err != nil {
			log.WithError(err).Warn("metrics textfile not written")
		}
	}
	totals := agg.Totals()
	log.WithFields(logrus.Fields{
		"created":  totals.Created,
		"updated":  totals.Updated,
		"skipped":  totals.Skipped,
		"warnings": totals.Warnings,
		"elapsed":  elapsed.String(),
	}).Info("import finished")
	return agg, nil
}

// runStep executes one step in its own transaction and span and records its
// report.
func (p *Pipeline) runStep(ctx context.Context, agg *report.Aggregator, step string, fn func(context.Context) (report.Report, error)) error {
	ctx, span := p.tracer.Start(ctx, "camp-seed.step", trace.WithAttributes(attribute.String("import.step", step)))
	defer span.End()

	var r report.Report
	err := p.store.InTx(ctx, func(txCtx context.Context) error {
		var err error
		r, err = fn(txCtx)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%w: %s: %w", ErrStore, step, err)
	}

	span.SetAttributes(
		attribute.Int("import.created", r.Created),
		attribute.Int("import.updated", r.Updated),
		attribute.Int("import.skipped", r.Skipped),
		attribute.Int("import.warnings", len(r.Warnings)),
	)
	agg.AddReport(r)
	return nil
}

func (p *Pipeline) verify(ctx context.Context) ([]report.TableCount, error) {
	counts := make([]report.TableCount, 0, len(persistence.Tables))
	err := p.store.InTx(ctx, func(ctx context.Context) error {
		for _, table := range persistence.Tables {
			n, err := p.store.Counter.Count(ctx, table)
			if err != nil {
				return err
			}
			counts = append(counts, report.TableCount{Table: table, Rows: n})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: verification: %w", ErrStore, err)
	}
	return counts, nil
}

func (p *Pipeline) exportMetrics(agg *report.Aggregator, counts []report.TableCount, elapsed time.Duration) error {
	m := metrics.NewRunMetrics(metricsNamespace)
	for _, r := range agg.Reports() {
		m.ObserveStep(r.Step, r.Created, r.Updated, r.Skipped, len(r.Warnings))
	}
	for _, c := range counts {
		m.ObserveTable(c.Table, c.Rows)
	}
	m.ObserveRun(elapsed, p.now())
	return m.WriteTextfile(p.cfg.MetricsTextfile)
}
