package services

import (
	"context"
	"errors"

	providerRepo "carebook/database/repository/provider"
	"carebook/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ProviderService is the thin provider-management surface the booking core
// consumes. It owns profile writes; the booked-slot ledger is touched only
// by the scheduler repository.
type ProviderService interface {
	List(ctx context.Context) ([]models.Provider, error)
	Get(ctx context.Context, id string) (*models.Provider, error)
	ToggleAvailability(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id string, fee float64, address string, available bool) error
}

// DefaultProviderService implements ProviderService.
type DefaultProviderService struct {
	Repo   providerRepo.ProviderRepository
	Cache  *redis.Client
	Logger *zap.Logger
}

func (s *DefaultProviderService) List(ctx context.Context) ([]models.Provider, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultProviderService) Get(ctx context.Context, id string) (*models.Provider, error) {
	provider, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "provider not found")
		}
		return nil, err
	}
	return provider, nil
}

// ToggleAvailability flips the provider's availability flag. While the flag
// is off, existing ledger state is kept; new reservations are refused at
// booking time.
func (s *DefaultProviderService) ToggleAvailability(ctx context.Context, id string) error {
	provider, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.SetAvailability(ctx, id, !provider.Available); err != nil {
		return err
	}
	invalidateProviderSnapshot(ctx, s.Cache, id)
	s.Logger.Info("provider availability changed",
		zap.String("provider", id),
		zap.Bool("available", !provider.Available),
	)
	return nil
}

func (s *DefaultProviderService) UpdateProfile(ctx context.Context, id string, fee float64, address string, available bool) error {
	if fee <= 0 {
		return NewError(CodeInvalidFee, "fee must be positive")
	}
	if err := s.Repo.UpdateProfile(ctx, id, fee, address, available); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return NewError(CodeNotFound, "provider not found")
		}
		return err
	}
	invalidateProviderSnapshot(ctx, s.Cache, id)
	return nil
}
