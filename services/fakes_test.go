package services

import (
	"context"
	"sync"

	providerRepo "carebook/database/repository/provider"
	reservationRepo "carebook/database/repository/reservation"
	schedulerRepo "carebook/database/repository/scheduler"
	"carebook/models"
)

// In-memory doubles for the repository and gateway interfaces. The fake
// scheduler guards the ledger with a single mutex, mirroring the storage
// layer's per-slot atomicity guarantee.

type fakeProviderRepo struct {
	mu        sync.Mutex
	providers map[string]*models.Provider
}

func newFakeProviderRepo(providers ...*models.Provider) *fakeProviderRepo {
	repo := &fakeProviderRepo{providers: make(map[string]*models.Provider)}
	for _, p := range providers {
		if p.SlotsBooked == nil {
			p.SlotsBooked = models.SlotLedger{}
		}
		repo.providers[p.ID] = p
	}
	return repo
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	snapshot := *p
	snapshot.SlotsBooked = p.SlotsBooked.Clone()
	return &snapshot, nil
}

func (f *fakeProviderRepo) GetAll(ctx context.Context) ([]models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Provider, 0, len(f.providers))
	for _, p := range f.providers {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if provider.SlotsBooked == nil {
		provider.SlotsBooked = models.SlotLedger{}
	}
	f.providers[provider.ID] = provider
	return nil
}

func (f *fakeProviderRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Available = available
	return nil
}

func (f *fakeProviderRepo) UpdateProfile(ctx context.Context, id string, fee float64, address string, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Fee = fee
	p.Address = address
	p.Available = available
	return nil
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[string]*models.Reservation
	order        []string
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[string]*models.Reservation)}
}

func (f *fakeReservationRepo) insert(res *models.Reservation) {
	f.reservations[res.ID] = res
	f.order = append(f.order, res.ID)
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	snapshot := *res
	return &snapshot, nil
}

func (f *fakeReservationRepo) listWhere(match func(*models.Reservation) bool) []models.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	// Insertion order reversed: most recent first.
	for i := len(f.order) - 1; i >= 0; i-- {
		if res := f.reservations[f.order[i]]; match(res) {
			out = append(out, *res)
		}
	}
	return out
}

func (f *fakeReservationRepo) ListByClient(ctx context.Context, clientID string) ([]models.Reservation, error) {
	return f.listWhere(func(r *models.Reservation) bool { return r.ClientID == clientID }), nil
}

func (f *fakeReservationRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Reservation, error) {
	return f.listWhere(func(r *models.Reservation) bool { return r.ProviderID == providerID }), nil
}

func (f *fakeReservationRepo) MarkCompleted(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrNotFound
	}
	if res.Status != models.StatusActive {
		return reservationRepo.ErrNotActive
	}
	res.Status = models.StatusCompleted
	return nil
}

func (f *fakeReservationRepo) MarkPaid(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrNotFound
	}
	res.Settlement = models.SettlementPaid
	return nil
}

// fakeScheduler applies the reserve/cancel write pairs atomically under one
// lock, the way the mongo implementation does inside a transaction.
type fakeScheduler struct {
	mu           sync.Mutex
	providers    *fakeProviderRepo
	reservations *fakeReservationRepo
}

func newFakeScheduler(providers *fakeProviderRepo, reservations *fakeReservationRepo) *fakeScheduler {
	return &fakeScheduler{providers: providers, reservations: reservations}
}

func (f *fakeScheduler) Reserve(ctx context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	provider, ok := f.providers.providers[res.ProviderID]
	if !ok {
		return schedulerRepo.ErrSlotConflict
	}
	if err := provider.SlotsBooked.Book(res.Slot.Date, res.Slot.Time); err != nil {
		return schedulerRepo.ErrSlotConflict
	}
	f.reservations.mu.Lock()
	f.reservations.insert(res)
	f.reservations.mu.Unlock()
	return nil
}

func (f *fakeScheduler) Cancel(ctx context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations.mu.Lock()
	stored, ok := f.reservations.reservations[res.ID]
	if !ok || stored.Status != models.StatusActive {
		f.reservations.mu.Unlock()
		return schedulerRepo.ErrNotActive
	}
	stored.Status = models.StatusCancelled
	f.reservations.mu.Unlock()

	if provider, ok := f.providers.providers[res.ProviderID]; ok {
		provider.SlotsBooked.Release(res.Slot.Date, res.Slot.Time)
	}
	return nil
}

// fakeGateway is a substitutable settlement gateway double.
type fakeGateway struct {
	mu          sync.Mutex
	orders      map[string]*models.SettlementOrder
	createCalls int
	createErr   error
	fetchErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orders: make(map[string]*models.SettlementOrder)}
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.SettlementOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	order := &models.SettlementOrder{
		ID:       "order_" + receipt,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   models.OrderStatusCreated,
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeGateway) FetchOrder(ctx context.Context, orderID string) (*models.SettlementOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	order, ok := f.orders[orderID]
	if !ok {
		return nil, NewError(CodeNotFound, "order not found")
	}
	snapshot := *order
	return &snapshot, nil
}

func (f *fakeGateway) markPaid(orderID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order, ok := f.orders[orderID]; ok {
		order.Status = models.OrderStatusPaid
	}
}
