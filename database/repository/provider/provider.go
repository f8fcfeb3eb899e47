package providerRepo

import (
	"context"
	"errors"

	"carebook/models"
)

// ErrNotFound is returned when no provider matches the given id.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines methods for provider data access. The booked
// slot ledger embedded in the provider document is mutated only through the
// scheduler repository; this repository owns the profile fields.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetAll retrieves all providers.
	GetAll(ctx context.Context) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// SetAvailability flips the provider's availability flag.
	SetAvailability(ctx context.Context, id string, available bool) error
	// UpdateProfile patches the provider-managed profile fields.
	UpdateProfile(ctx context.Context, id string, fee float64, address string, available bool) error
}
