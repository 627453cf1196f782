package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
)

const (
	upsertBuildAssignmentQuery = `
		INSERT INTO build_assignments (tenant_id, enrollment_id, day, date, task, shift, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, enrollment_id, day) DO UPDATE SET
			date = EXCLUDED.date,
			task = EXCLUDED.task,
			shift = EXCLUDED.shift,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, tenant_id, created_at, updated_at, (xmax = 0) AS inserted`

	upsertEarlyArrivalPassQuery = `
		INSERT INTO early_arrival_passes (tenant_id, enrollment_id, arrival_on, pass_type, vehicle, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, enrollment_id) DO UPDATE SET
			arrival_on = EXCLUDED.arrival_on,
			pass_type = EXCLUDED.pass_type,
			vehicle = EXCLUDED.vehicle,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, tenant_id, created_at, updated_at, (xmax = 0) AS inserted`

	upsertStrikeAssignmentQuery = `
		INSERT INTO strike_assignments (tenant_id, enrollment_id, notes)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, enrollment_id) DO UPDATE SET
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, tenant_id, created_at, updated_at, (xmax = 0) AS inserted`

	upsertTicketQuery = `
		INSERT INTO tickets (tenant_id, enrollment_id, type, quantity, price_minor, vehicle_pass, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, enrollment_id, type) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			price_minor = EXCLUDED.price_minor,
			vehicle_pass = EXCLUDED.vehicle_pass,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, tenant_id, created_at, updated_at, (xmax = 0) AS inserted`

	upsertInventoryItemQuery = `
		INSERT INTO inventory_items (tenant_id, name, normalized_name, category, quantity, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, normalized_name, category) DO UPDATE SET
			name = EXCLUDED.name,
			quantity = EXCLUDED.quantity,
			location = EXCLUDED.location,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, tenant_id, created_at, updated_at, (xmax = 0) AS inserted`
)

type LogisticsRepository struct{}

func NewLogisticsRepository() logistics.Repository {
	return &LogisticsRepository{}
}

func (r *LogisticsRepository) UpsertBuildAssignment(ctx context.Context, a logistics.BuildAssignment) (logistics.BuildAssignment, bool, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return logistics.BuildAssignment{}, false, err
	}
	var inserted bool
	err = tx.QueryRow(ctx, upsertBuildAssignmentQuery,
		tenant, a.EnrollmentID, a.Day, a.Date, a.Task, a.Shift, a.Notes,
	).Scan(&a.ID, &a.TenantID, &a.CreatedAt, &a.UpdatedAt, &inserted)
	if err != nil {
		return logistics.BuildAssignment{}, false, gerrors.Wrap(err, "upsert build assignment")
	}
	return a, inserted, nil
}

func (r *LogisticsRepository) UpsertEarlyArrivalPass(ctx context.Context, p logistics.EarlyArrivalPass) (logistics.EarlyArrivalPass, bool, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return logistics.EarlyArrivalPass{}, false, err
	}
	var inserted bool
	err = tx.QueryRow(ctx, upsertEarlyArrivalPassQuery,
		tenant, p.EnrollmentID, p.ArrivalOn, string(p.PassType), p.Vehicle, p.Notes,
	).Scan(&p.ID, &p.TenantID, &p.CreatedAt, &p.UpdatedAt, &inserted)
	if err != nil {
		return logistics.EarlyArrivalPass{}, false, gerrors.Wrap(err, "upsert early arrival pass")
	}
	return p, inserted, nil
}

func (r *LogisticsRepository) UpsertStrikeAssignment(ctx context.Context, a logistics.StrikeAssignment) (logistics.StrikeAssignment, bool, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return logistics.StrikeAssignment{}, false, err
	}
	var inserted bool
	err = tx.QueryRow(ctx, upsertStrikeAssignmentQuery,
		tenant, a.EnrollmentID, a.Notes,
	).Scan(&a.ID, &a.TenantID, &a.CreatedAt, &a.UpdatedAt, &inserted)
	if err != nil {
		return logistics.StrikeAssignment{}, false, gerrors.Wrap(err, "upsert strike assignment")
	}
	return a, inserted, nil
}

func (r *LogisticsRepository) UpsertTicket(ctx context.Context, t logistics.Ticket) (logistics.Ticket, bool, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return logistics.Ticket{}, false, err
	}
	var inserted bool
	err = tx.QueryRow(ctx, upsertTicketQuery,
		tenant, t.EnrollmentID, string(t.Type), t.Quantity, t.PriceMinor, t.VehiclePass, t.Notes,
	).Scan(&t.ID, &t.TenantID, &t.CreatedAt, &t.UpdatedAt, &inserted)
	if err != nil {
		return logistics.Ticket{}, false, gerrors.Wrap(err, "upsert ticket")
	}
	return t, inserted, nil
}

func (r *LogisticsRepository) UpsertInventoryItem(ctx context.Context, i logistics.InventoryItem) (logistics.InventoryItem, bool, error) {
	tx, tenant, err := session(ctx)
	if err != nil {
		return logistics.InventoryItem{}, false, err
	}
	var inserted bool
	err = tx.QueryRow(ctx, upsertInventoryItemQuery,
		tenant, i.Name, i.NormalizedName, string(i.Category), i.Quantity, i.Location, i.Notes,
	).Scan(&i.ID, &i.TenantID, &i.CreatedAt, &i.UpdatedAt, &inserted)
	if err != nil {
		return logistics.InventoryItem{}, false, gerrors.Wrap(err, "upsert inventory item")
	}
	return i, inserted, nil
}
