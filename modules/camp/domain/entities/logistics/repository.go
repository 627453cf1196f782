package logistics

import "context"

// Repository upserts logistics records. Every Upsert reports whether a new row
// was created.
type Repository interface {
	// UpsertBuildAssignment is keyed by (tenant, enrollment, day).
	UpsertBuildAssignment(ctx context.Context, a BuildAssignment) (BuildAssignment, bool, error)
	// UpsertEarlyArrivalPass is keyed by (tenant, enrollment).
	UpsertEarlyArrivalPass(ctx context.Context, p EarlyArrivalPass) (EarlyArrivalPass, bool, error)
	// UpsertStrikeAssignment is keyed by (tenant, enrollment).
	UpsertStrikeAssignment(ctx context.Context, a StrikeAssignment) (StrikeAssignment, bool, error)
	// UpsertTicket is keyed by (tenant, enrollment, type).
	UpsertTicket(ctx context.Context, t Ticket) (Ticket, bool, error)
	// UpsertInventoryItem is keyed by (tenant, normalized name, category).
	UpsertInventoryItem(ctx context.Context, i InventoryItem) (InventoryItem, bool, error)
}
