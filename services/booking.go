package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	providerRepo "carebook/database/repository/provider"
	reservationRepo "carebook/database/repository/reservation"
	schedulerRepo "carebook/database/repository/scheduler"
	"carebook/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ledger keys are opaque strings compared by exact form, so malformed labels
// are rejected before they can pollute the ledger.
var (
	dateLabelRe = regexp.MustCompile(`^\d{1,2}_\d{1,2}_\d{4}$`)
	timeLabelRe = regexp.MustCompile(`^(0[1-9]|1[0-2]):[0-5]\d (AM|PM)$`)
)

// BookingService defines the booking engine and cancellation operations.
type BookingService interface {
	Reserve(ctx context.Context, clientID, providerID, date, timeLabel string) (string, error)
	Cancel(ctx context.Context, requesterID, reservationID string) error
	Complete(ctx context.Context, providerID, reservationID string) error
	ListForClient(ctx context.Context, clientID string) ([]models.Reservation, error)
	ListForProvider(ctx context.Context, providerID string) ([]models.Reservation, error)
}

// DefaultBookingService is the default, repository-backed implementation.
type DefaultBookingService struct {
	Providers    providerRepo.ProviderRepository
	Reservations reservationRepo.ReservationRepository
	Scheduler    schedulerRepo.SchedulerRepository
	Cache        *redis.Client
	Logger       *zap.Logger
}

// Reserve validates the requested slot against the provider and commits it
// exclusively. The slot claim and the reservation insert are one atomic unit
// in the scheduler repository, so for concurrent duplicates at most one
// caller wins; everyone else gets a slotConflict. Failure paths leave no
// side effects.
func (s *DefaultBookingService) Reserve(ctx context.Context, clientID, providerID, date, timeLabel string) (string, error) {
	if !dateLabelRe.MatchString(date) {
		return "", NewError(CodeValidation, "malformed date label")
	}
	if !timeLabelRe.MatchString(timeLabel) {
		return "", NewError(CodeValidation, "malformed time label")
	}

	provider, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return "", NewError(CodeNotFound, "provider not found")
		}
		return "", err
	}
	if !provider.Available {
		return "", NewError(CodeProviderUnavailable, "provider not available")
	}

	res := &models.Reservation{
		ID:         uuid.New().String(),
		ClientID:   clientID,
		ProviderID: providerID,
		Slot:       models.Slot{Date: date, Time: timeLabel},
		Provider:   provider.Snapshot(),
		Amount:     provider.Fee,
		Status:     models.StatusActive,
		Settlement: models.SettlementUnpaid,
		CreatedAt:  time.Now(),
	}

	if err := s.Scheduler.Reserve(ctx, res); err != nil {
		if errors.Is(err, schedulerRepo.ErrSlotConflict) {
			return "", NewError(CodeSlotConflict, "slot not available")
		}
		return "", err
	}

	invalidateProviderSnapshot(ctx, s.Cache, providerID)
	s.Logger.Info("reservation created",
		zap.String("reservation", res.ID),
		zap.String("provider", providerID),
		zap.String("date", date),
		zap.String("time", timeLabel),
	)
	return res.ID, nil
}

// Cancel marks the reservation cancelled and releases its slot back into the
// provider's ledger, both in one transaction. Either the owning client or
// the booked provider may cancel. Cancelling an already-cancelled
// reservation is accepted as a no-op.
func (s *DefaultBookingService) Cancel(ctx context.Context, requesterID, reservationID string) error {
	res, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return NewError(CodeNotFound, "reservation not found")
		}
		return err
	}

	if requesterID != res.ClientID && requesterID != res.ProviderID {
		return NewError(CodeUnauthorized, "not allowed to cancel this reservation")
	}

	switch res.Status {
	case models.StatusCancelled:
		return nil
	case models.StatusCompleted:
		return NewError(CodeValidation, "reservation already completed")
	}

	if err := s.Scheduler.Cancel(ctx, res); err != nil {
		if errors.Is(err, schedulerRepo.ErrNotActive) {
			// A concurrent cancel got there first; idempotent outcome.
			current, gerr := s.Reservations.GetByID(ctx, reservationID)
			if gerr == nil && current.Status == models.StatusCancelled {
				return nil
			}
			return NewError(CodeValidation, "reservation is not active")
		}
		return err
	}

	invalidateProviderSnapshot(ctx, s.Cache, res.ProviderID)
	s.Logger.Info("reservation cancelled",
		zap.String("reservation", reservationID),
		zap.String("requester", requesterID),
	)
	return nil
}

// Complete marks a reservation completed. Only the booked provider may do
// this, and only while the reservation is active.
func (s *DefaultBookingService) Complete(ctx context.Context, providerID, reservationID string) error {
	res, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return NewError(CodeNotFound, "reservation not found")
		}
		return err
	}
	if res.ProviderID != providerID {
		return NewError(CodeUnauthorized, "not allowed to complete this reservation")
	}

	if err := s.Reservations.MarkCompleted(ctx, reservationID); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrNotFound):
			return NewError(CodeNotFound, "reservation not found")
		case errors.Is(err, reservationRepo.ErrNotActive):
			return NewError(CodeValidation, "reservation is not active")
		}
		return err
	}
	return nil
}

// ListForClient returns the client's reservation snapshots, most recent first.
func (s *DefaultBookingService) ListForClient(ctx context.Context, clientID string) ([]models.Reservation, error) {
	return s.Reservations.ListByClient(ctx, clientID)
}

// ListForProvider returns the provider's reservation snapshots, most recent first.
func (s *DefaultBookingService) ListForProvider(ctx context.Context, providerID string) ([]models.Reservation, error) {
	return s.Reservations.ListByProvider(ctx, providerID)
}
