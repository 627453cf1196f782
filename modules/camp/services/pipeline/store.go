package pipeline

import (
	"context"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/member"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/season"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/finance"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
	"github.com/iota-uz/camp-sdk/modules/camp/infrastructure/persistence"
	"github.com/iota-uz/camp-sdk/modules/camp/infrastructure/persistence/memory"
	"github.com/iota-uz/camp-sdk/pkg/composables"
)

// TxRunner runs fn as one unit of work.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Counter interface {
	Count(ctx context.Context, table string) (int64, error)
}

// Store bundles the repositories a run writes through.
type Store struct {
	Seasons   season.Repository
	Members   member.Repository
	Finance   finance.Repository
	Logistics logistics.Repository
	Counter   Counter
	InTx      TxRunner
}

// PostgresStore expects the pgx pool on the context; every step runs in its
// own tenant transaction.
func PostgresStore() Store {
	return Store{
		Seasons:   persistence.NewSeasonRepository(),
		Members:   persistence.NewMemberRepository(),
		Finance:   persistence.NewFinanceRepository(),
		Logistics: persistence.NewLogisticsRepository(),
		Counter:   persistence.NewCounter(),
		InTx:      composables.InTenantTx,
	}
}

// MemoryStore is used for dry runs; it has no transactions.
func MemoryStore(s *memory.Store) Store {
	return Store{
		Seasons:   s.Seasons(),
		Members:   s.Members(),
		Finance:   s.Finance(),
		Logistics: s.Logistics(),
		Counter:   s,
		InTx: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}
