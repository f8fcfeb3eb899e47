package reservationRepo

import (
	"context"
	"errors"

	"carebook/models"
)

var (
	// ErrNotFound is returned when no reservation matches the given id.
	ErrNotFound = errors.New("reservation not found")
	// ErrNotActive is returned by conditional status flips when the
	// reservation is no longer in the active state.
	ErrNotActive = errors.New("reservation not active")
)

// ReservationRepository defines methods for reservation data access.
// Reservations are created only through the scheduler repository, inside the
// same transaction that claims the slot. Status and settlement flips are
// conditional one-way updates; nothing here ever resets a state.
type ReservationRepository interface {
	// GetByID retrieves a reservation by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// ListByClient returns a client's reservations, most recent first.
	ListByClient(ctx context.Context, clientID string) ([]models.Reservation, error)
	// ListByProvider returns a provider's reservations, most recent first.
	ListByProvider(ctx context.Context, providerID string) ([]models.Reservation, error)
	// MarkCompleted flips status active -> completed. Returns ErrNotActive
	// when the reservation is cancelled or already completed.
	MarkCompleted(ctx context.Context, id string) error
	// MarkPaid flips settlement unpaid -> paid. Marking an already-paid
	// reservation is a no-op; paid is never reset.
	MarkPaid(ctx context.Context, id string) error
}
