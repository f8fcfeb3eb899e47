package services

import (
	"context"
	"errors"

	reservationRepo "carebook/database/repository/reservation"
	"carebook/models"

	"go.uber.org/zap"
)

// SettlementGateway is the external payment provider, treated as an
// untrusted but generally-available service. Implementations must carry
// their own call timeouts and surface failure as a recoverable error.
type SettlementGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.SettlementOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*models.SettlementOrder, error)
}

// SettlementService drives payment orders and their confirmation.
type SettlementService interface {
	CreateOrder(ctx context.Context, reservationID string) (*models.SettlementOrder, error)
	ConfirmPayment(ctx context.Context, orderID string) (bool, error)
}

// DefaultSettlementService is the default implementation against an
// injected gateway.
type DefaultSettlementService struct {
	Reservations reservationRepo.ReservationRepository
	Gateway      SettlementGateway
	Currency     string
	Logger       *zap.Logger
}

// CreateOrder requests an external order for the reservation's amount in
// minor units, keyed by the reservation id as the order receipt. No local
// state is mutated; all local checks run before any external call.
func (s *DefaultSettlementService) CreateOrder(ctx context.Context, reservationID string) (*models.SettlementOrder, error) {
	res, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "reservation not found")
		}
		return nil, err
	}
	if res.Status == models.StatusCancelled {
		return nil, NewError(CodeAlreadyCancelled, "reservation is cancelled")
	}
	if res.Amount <= 0 {
		return nil, NewError(CodeInvalidFee, "reservation amount must be positive")
	}

	order, err := s.Gateway.CreateOrder(ctx, int64(res.Amount*100), s.Currency, res.ID)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("settlement order created",
		zap.String("reservation", reservationID),
		zap.String("order", order.ID),
		zap.Int64("amount", order.Amount),
	)
	return order, nil
}

// ConfirmPayment fetches the order from the gateway and, when it reports
// paid, marks the referenced reservation's settlement confirmed. This is the
// only path that flips the settlement state, and it is one-way: a paid
// reservation never becomes unpaid again. Any other order status reports
// failure without mutating state.
func (s *DefaultSettlementService) ConfirmPayment(ctx context.Context, orderID string) (bool, error) {
	order, err := s.Gateway.FetchOrder(ctx, orderID)
	if err != nil {
		return false, err
	}
	if order.Status != models.OrderStatusPaid {
		return false, nil
	}

	if err := s.Reservations.MarkPaid(ctx, order.Receipt); err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return false, NewError(CodeNotFound, "reservation not found for order receipt")
		}
		return false, err
	}
	s.Logger.Info("payment confirmed",
		zap.String("order", orderID),
		zap.String("reservation", order.Receipt),
	)
	return true, nil
}
