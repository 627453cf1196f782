package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/camp-sdk/modules/camp/infrastructure/persistence"
	"github.com/iota-uz/camp-sdk/modules/camp/infrastructure/persistence/memory"
	"github.com/iota-uz/camp-sdk/modules/camp/services/importers"
	"github.com/iota-uz/camp-sdk/modules/camp/services/pipeline"
	"github.com/iota-uz/camp-sdk/pkg/composables"
	"github.com/iota-uz/camp-sdk/pkg/configuration"
	"github.com/iota-uz/camp-sdk/pkg/logging"
)

const connectTimeout = 5 * time.Second

func runSeed(ctx context.Context, out io.Writer) error {
	conf, err := configuration.Init()
	if err != nil {
		return withCode(exitUsage, err)
	}
	defer conf.Unload()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		cleanup := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer cleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	ctx = composables.WithTenantID(ctx, conf.Seed.Tenant())

	var store pipeline.Store
	switch conf.Seed.StoreBackend {
	case configuration.BackendMemory:
		logger.Warn("memory store selected; nothing will be persisted")
		store = pipeline.MemoryStore(memory.NewStore())
	default:
		pool, err := connect(ctx, conf.Database.Opts)
		if err != nil {
			return withCode(exitDB, err)
		}
		defer pool.Close()
		ctx = composables.WithPool(ctx, pool)
		if err := persistence.Precheck(ctx); err != nil {
			return withCode(exitDB, err)
		}
		store = pipeline.PostgresStore()
	}

	p := pipeline.New(store, pipelineConfig(conf.Seed),
		pipeline.WithOutput(out),
		pipeline.WithLogger(logger),
	)
	_, err = p.Run(ctx)
	return classify(err)
}

func connect(ctx context.Context, opts string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	pool, err := pgxpool.New(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func pipelineConfig(seed configuration.SeedOptions) pipeline.Config {
	return pipeline.Config{
		WorkbookPath: seed.WorkbookPath,
		AliasFile:    seed.AliasFile,
		Import: importers.Config{
			Year:              seed.SeasonYear,
			SeasonName:        seed.SeasonName,
			PlaceholderDomain: seed.PlaceholderEmailDomain,
			Currency:          seed.Currency,
		},
		WarningPreview:  seed.WarningPreview,
		MetricsTextfile: seed.MetricsTextfile,
	}
}

// classify maps a pipeline failure onto the process exit code.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case is(err, pipeline.ErrRosterMissing):
		return withCode(exitValidation, err)
	case is(err, pipeline.ErrInput):
		return withCode(exitUsage, err)
	case is(err, pipeline.ErrStore):
		return withCode(exitDBWrite, err)
	default:
		return err
	}
}
