package schedulerRepo

import (
	"context"
	"errors"

	"carebook/models"
)

var (
	// ErrSlotConflict is returned when the requested slot is already held in
	// the provider's ledger.
	ErrSlotConflict = errors.New("slot already booked")
	// ErrNotActive is returned by Cancel when the reservation has left the
	// active state since it was loaded.
	ErrNotActive = errors.New("reservation not active")
)

// SchedulerRepository owns the two writes that must be atomic with respect
// to concurrent callers: claiming a slot in the provider ledger together
// with persisting the reservation, and the reverse on cancellation. For a
// given (provider, date, time), at most one concurrent Reserve succeeds;
// every other caller observes ErrSlotConflict. Failure leaves both the
// ledger and the reservation store unchanged.
type SchedulerRepository interface {
	Reserve(ctx context.Context, res *models.Reservation) error
	Cancel(ctx context.Context, res *models.Reservation) error
}
