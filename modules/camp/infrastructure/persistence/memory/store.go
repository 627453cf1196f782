// Package memory is an in-process store with the same upsert semantics as the
// Postgres repositories. It backs dry runs (SEED_STORE_BACKEND=memory) and
// tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/member"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/aggregates/season"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/finance"
	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
	"github.com/iota-uz/camp-sdk/pkg/composables"
)

type seasonKey struct {
	tenant uuid.UUID
	year   int
}

type emailKey struct {
	tenant uuid.UUID
	email  string
}

type enrollmentKey struct {
	tenant uuid.UUID
	season uuid.UUID
	member uuid.UUID
}

type perEnrollment struct {
	tenant     uuid.UUID
	enrollment uuid.UUID
}

type dayKey struct {
	perEnrollment
	day string
}

type ticketKey struct {
	perEnrollment
	typ logistics.TicketType
}

type inventoryKey struct {
	tenant   uuid.UUID
	name     string
	category logistics.InventoryCategory
}

type budgetKey struct {
	tenant   uuid.UUID
	season   uuid.UUID
	category finance.BudgetCategory
}

type Store struct {
	mu  sync.Mutex
	now func() time.Time

	seasons     map[seasonKey]season.Season
	members     map[emailKey]member.Member
	enrollments map[enrollmentKey]member.Enrollment
	payments    []finance.Payment
	budget      map[budgetKey]finance.BudgetLine
	expenses    []finance.Expense
	builds      map[dayKey]logistics.BuildAssignment
	passes      map[perEnrollment]logistics.EarlyArrivalPass
	strikes     map[perEnrollment]logistics.StrikeAssignment
	tickets     map[ticketKey]logistics.Ticket
	inventory   map[inventoryKey]logistics.InventoryItem
}

func NewStore() *Store {
	return &Store{
		now:         func() time.Time { return time.Now().UTC() },
		seasons:     map[seasonKey]season.Season{},
		members:     map[emailKey]member.Member{},
		enrollments: map[enrollmentKey]member.Enrollment{},
		budget:      map[budgetKey]finance.BudgetLine{},
		builds:      map[dayKey]logistics.BuildAssignment{},
		passes:      map[perEnrollment]logistics.EarlyArrivalPass{},
		strikes:     map[perEnrollment]logistics.StrikeAssignment{},
		tickets:     map[ticketKey]logistics.Ticket{},
		inventory:   map[inventoryKey]logistics.InventoryItem{},
	}
}

func (s *Store) Seasons() season.Repository      { return seasonRepo{s} }
func (s *Store) Members() member.Repository      { return memberRepo{s} }
func (s *Store) Finance() finance.Repository     { return financeRepo{s} }
func (s *Store) Logistics() logistics.Repository { return logisticsRepo{s} }

// Count returns the tenant's number of rows for a table named like its
// Postgres counterpart.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	tenant, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	count := func(ok bool) {
		if ok {
			n++
		}
	}
	switch table {
	case "seasons":
		for k := range s.seasons {
			count(k.tenant == tenant)
		}
	case "members":
		for k := range s.members {
			count(k.tenant == tenant)
		}
	case "season_enrollments":
		for k := range s.enrollments {
			count(k.tenant == tenant)
		}
	case "payments":
		for _, p := range s.payments {
			count(p.TenantID == tenant)
		}
	case "build_assignments":
		for k := range s.builds {
			count(k.tenant == tenant)
		}
	case "early_arrival_passes":
		for k := range s.passes {
			count(k.tenant == tenant)
		}
	case "strike_assignments":
		for k := range s.strikes {
			count(k.tenant == tenant)
		}
	case "tickets":
		for k := range s.tickets {
			count(k.tenant == tenant)
		}
	case "inventory_items":
		for k := range s.inventory {
			count(k.tenant == tenant)
		}
	case "budget_lines":
		for k := range s.budget {
			count(k.tenant == tenant)
		}
	case "expenses":
		for _, e := range s.expenses {
			count(e.TenantID == tenant)
		}
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	return n, nil
}

// lock takes the store mutex and resolves the tenant; callers must unlock.
func (s *Store) lock(ctx context.Context) (uuid.UUID, error) {
	tenant, err := composables.UseTenantID(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	s.mu.Lock()
	return tenant, nil
}

type seasonRepo struct{ s *Store }

func (r seasonRepo) Upsert(ctx context.Context, in season.Season) (season.Season, bool, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return season.Season{}, false, err
	}
	defer r.s.mu.Unlock()

	key := seasonKey{tenant, in.Year()}
	now := r.s.now()
	existing, ok := r.s.seasons[key]
	id, createdAt := uuid.New(), now
	if ok {
		id, createdAt = existing.ID(), existing.CreatedAt()
	}
	saved := season.Hydrate(tenant, id, in.Year(), in.Name(), in.StartsOn(), in.EndsOn(), in.DuesMinor(), createdAt, now)
	r.s.seasons[key] = saved
	return saved, !ok, nil
}

func (r seasonRepo) GetByYear(ctx context.Context, year int) (season.Season, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return season.Season{}, err
	}
	defer r.s.mu.Unlock()

	if s, ok := r.s.seasons[seasonKey{tenant, year}]; ok {
		return s, nil
	}
	return season.Season{}, season.ErrNotFound
}

type memberRepo struct{ s *Store }

func (r memberRepo) Upsert(ctx context.Context, in member.Member) (member.Member, bool, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return member.Member{}, false, err
	}
	defer r.s.mu.Unlock()

	key := emailKey{tenant, in.Email()}
	now := r.s.now()
	existing, ok := r.s.members[key]
	id, createdAt := uuid.New(), now
	if ok {
		id, createdAt = existing.ID(), existing.CreatedAt()
	}
	saved := member.Hydrate(tenant, id, in.Email(), in.PlaceholderEmail(), in.DisplayName(), in.Gender(), createdAt, now)
	r.s.members[key] = saved
	return saved, !ok, nil
}

func (r memberRepo) GetByEmail(ctx context.Context, email string) (member.Member, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return member.Member{}, err
	}
	defer r.s.mu.Unlock()

	lookup := member.New(email, "", member.GenderUnspecified, false)
	if m, ok := r.s.members[emailKey{tenant, lookup.Email()}]; ok {
		return m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (r memberRepo) UpsertEnrollment(ctx context.Context, in member.Enrollment) (member.Enrollment, bool, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return member.Enrollment{}, false, err
	}
	defer r.s.mu.Unlock()

	key := enrollmentKey{tenant, in.SeasonID, in.MemberID}
	now := r.s.now()
	existing, ok := r.s.enrollments[key]
	in.TenantID = tenant
	in.ID, in.CreatedAt = uuid.New(), now
	if ok {
		in.ID, in.CreatedAt = existing.ID, existing.CreatedAt
	}
	in.UpdatedAt = now
	r.s.enrollments[key] = in
	return in, !ok, nil
}

func (r memberRepo) FindEnrollments(ctx context.Context, params *member.FindEnrollmentsParams) ([]member.Enrollment, error) {
	if params == nil {
		params = &member.FindEnrollmentsParams{}
	}
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	names := map[uuid.UUID]member.Member{}
	for k, m := range r.s.members {
		if k.tenant == tenant {
			names[m.ID()] = m
		}
	}
	var out []member.Enrollment
	for k, e := range r.s.enrollments {
		if k.tenant != tenant || k.season != params.SeasonID {
			continue
		}
		if params.StrikeCrewOnly && !e.StrikeCrew {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := names[out[i].MemberID], names[out[j].MemberID]
		if a.DisplayName() != b.DisplayName() {
			return a.DisplayName() < b.DisplayName()
		}
		return a.Email() < b.Email()
	})
	return out, nil
}

type financeRepo struct{ s *Store }

func (r financeRepo) FindPayment(ctx context.Context, key finance.PaymentKey) (finance.Payment, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return finance.Payment{}, err
	}
	defer r.s.mu.Unlock()

	for _, p := range r.s.payments {
		k := p.Key()
		if p.TenantID == tenant && k.SeasonID == key.SeasonID && k.MemberID == key.MemberID &&
			k.Type == key.Type && k.AmountMinor == key.AmountMinor && k.PaidOn.Equal(key.PaidOn) {
			return p, nil
		}
	}
	return finance.Payment{}, finance.ErrNotFound
}

func (r financeRepo) CreatePayment(ctx context.Context, p finance.Payment) (finance.Payment, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return finance.Payment{}, err
	}
	defer r.s.mu.Unlock()

	p.ID, p.TenantID, p.CreatedAt = uuid.New(), tenant, r.s.now()
	r.s.payments = append(r.s.payments, p)
	return p, nil
}

func (r financeRepo) UpsertBudgetLine(ctx context.Context, l finance.BudgetLine) (finance.BudgetLine, bool, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return finance.BudgetLine{}, false, err
	}
	defer r.s.mu.Unlock()

	key := budgetKey{tenant, l.SeasonID, l.Category}
	now := r.s.now()
	existing, ok := r.s.budget[key]
	l.TenantID = tenant
	l.ID, l.CreatedAt = uuid.New(), now
	if ok {
		l.ID, l.CreatedAt = existing.ID, existing.CreatedAt
	}
	l.UpdatedAt = now
	r.s.budget[key] = l
	return l, !ok, nil
}

func (r financeRepo) FindExpense(ctx context.Context, key finance.ExpenseKey) (finance.Expense, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return finance.Expense{}, err
	}
	defer r.s.mu.Unlock()

	for _, e := range r.s.expenses {
		k := e.Key()
		if e.TenantID == tenant && k.SeasonID == key.SeasonID && k.Description == key.Description &&
			k.AmountMinor == key.AmountMinor && k.SpentOn.Equal(key.SpentOn) && samePayer(k.PaidBy, key.PaidBy) {
			return e, nil
		}
	}
	return finance.Expense{}, finance.ErrNotFound
}

func (r financeRepo) CreateExpense(ctx context.Context, e finance.Expense) (finance.Expense, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return finance.Expense{}, err
	}
	defer r.s.mu.Unlock()

	e.ID, e.TenantID, e.CreatedAt = uuid.New(), tenant, r.s.now()
	r.s.expenses = append(r.s.expenses, e)
	return e, nil
}

func samePayer(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type logisticsRepo struct{ s *Store }

func (r logisticsRepo) UpsertBuildAssignment(ctx context.Context, a logistics.BuildAssignment) (logistics.BuildAssignment, bool, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return logistics.BuildAssignment{}, false, err
	}
	defer r.s.mu.Unlock()

	key := dayKey{perEnrollment{tenant, a.EnrollmentID}, a.Day}
	existing, ok := r.s.builds[key]
	a.TenantID = tenant
	a.ID, a.CreatedAt, a.UpdatedAt = stamp(r.s.now(), ok, existing.ID, existing.CreatedAt)
	r.s.builds[key] = a
	return a, !ok, nil
}

func (r logisticsRepo) UpsertEarlyArrivalPass(ctx context.Context, p logistics.EarlyArrivalPass) (logistics.EarlyArrivalPass, bool, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return logistics.EarlyArrivalPass{}, false, err
	}
	defer r.s.mu.Unlock()

	key := perEnrollment{tenant, p.EnrollmentID}
	existing, ok := r.s.passes[key]
	p.TenantID = tenant
	p.ID, p.CreatedAt, p.UpdatedAt = stamp(r.s.now(), ok, existing.ID, existing.CreatedAt)
	r.s.passes[key] = p
	return p, !ok, nil
}

func (r logisticsRepo) UpsertStrikeAssignment(ctx context.Context, a logistics.StrikeAssignment) (logistics.StrikeAssignment, bool, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return logistics.StrikeAssignment{}, false, err
	}
	defer r.s.mu.Unlock()

	key := perEnrollment{tenant, a.EnrollmentID}
	existing, ok := r.s.strikes[key]
	a.TenantID = tenant
	a.ID, a.CreatedAt, a.UpdatedAt = stamp(r.s.now(), ok, existing.ID, existing.CreatedAt)
	r.s.strikes[key] = a
	return a, !ok, nil
}

func (r logisticsRepo) UpsertTicket(ctx context.Context, t logistics.Ticket) (logistics.Ticket, bool, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return logistics.Ticket{}, false, err
	}
	defer r.s.mu.Unlock()

	key := ticketKey{perEnrollment{tenant, t.EnrollmentID}, t.Type}
	existing, ok := r.s.tickets[key]
	t.TenantID = tenant
	t.ID, t.CreatedAt, t.UpdatedAt = stamp(r.s.now(), ok, existing.ID, existing.CreatedAt)
	r.s.tickets[key] = t
	return t, !ok, nil
}

func (r logisticsRepo) UpsertInventoryItem(ctx context.Context, i logistics.InventoryItem) (logistics.InventoryItem, bool, error) {
	tenant, err := r.s.lock(ctx)
	if err != nil {
		return logistics.InventoryItem{}, false, err
	}
	defer r.s.mu.Unlock()

	key := inventoryKey{tenant, i.NormalizedName, i.Category}
	existing, ok := r.s.inventory[key]
	i.TenantID = tenant
	i.ID, i.CreatedAt, i.UpdatedAt = stamp(r.s.now(), ok, existing.ID, existing.CreatedAt)
	r.s.inventory[key] = i
	return i, !ok, nil
}

// stamp keeps the identity of an existing row and refreshes updated_at.
func stamp(now time.Time, exists bool, id uuid.UUID, createdAt time.Time) (uuid.UUID, time.Time, time.Time) {
	if exists {
		return id, createdAt, now
	}
	return uuid.New(), now, now
}
