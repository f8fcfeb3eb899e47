package services

import (
	"context"

	reservationRepo "carebook/database/repository/reservation"
	"carebook/models"
)

const dashboardLatestCount = 5

// DashboardService produces read-only rollups from reservation history.
// Pure projection; it holds no invariants of its own.
type DashboardService interface {
	ProviderDashboard(ctx context.Context, providerID string) (*models.ProviderDashboard, error)
}

// DefaultDashboardService implements DashboardService.
type DefaultDashboardService struct {
	Reservations reservationRepo.ReservationRepository
}

// ProviderDashboard aggregates a provider's earnings, distinct patients and
// latest activity. A reservation counts toward earnings once it is either
// completed or paid.
func (s *DefaultDashboardService) ProviderDashboard(ctx context.Context, providerID string) (*models.ProviderDashboard, error) {
	reservations, err := s.Reservations.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	var earnings float64
	patients := make(map[string]struct{})
	for _, res := range reservations {
		if res.Status == models.StatusCompleted || res.Settlement == models.SettlementPaid {
			earnings += res.Amount
		}
		patients[res.ClientID] = struct{}{}
	}

	latest := reservations
	if len(latest) > dashboardLatestCount {
		latest = latest[:dashboardLatestCount]
	}

	return &models.ProviderDashboard{
		Earnings:     earnings,
		Reservations: len(reservations),
		Patients:     len(patients),
		Latest:       latest,
	}, nil
}
