package services

import (
	"context"
	"sync"
	"testing"

	"carebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingFixture(providers ...*models.Provider) (*DefaultBookingService, *fakeProviderRepo, *fakeReservationRepo) {
	provRepo := newFakeProviderRepo(providers...)
	resRepo := newFakeReservationRepo()
	svc := &DefaultBookingService{
		Providers:    provRepo,
		Reservations: resRepo,
		Scheduler:    newFakeScheduler(provRepo, resRepo),
		Logger:       zap.NewNop(),
	}
	return svc, provRepo, resRepo
}

func testProvider() *models.Provider {
	return &models.Provider{
		ID:         "prov-1",
		Name:       "Dr. Achieng",
		Speciality: "Dermatology",
		Fee:        500,
		Available:  true,
	}
}

func TestReserveCreatesActiveUnpaidReservation(t *testing.T) {
	svc, provRepo, resRepo := newBookingFixture(testProvider())
	ctx := context.Background()

	id, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	res, err := resRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "client-1", res.ClientID)
	assert.Equal(t, "prov-1", res.ProviderID)
	assert.Equal(t, models.StatusActive, res.Status)
	assert.Equal(t, models.SettlementUnpaid, res.Settlement)
	assert.Equal(t, 500.0, res.Amount)
	assert.Equal(t, "Dr. Achieng", res.Provider.Name)
	assert.Equal(t, 500.0, res.Provider.Fee)

	provider, err := provRepo.GetByID(ctx, "prov-1")
	require.NoError(t, err)
	assert.True(t, provider.SlotsBooked.IsBooked("5_6_2024", "10:00 AM"))
}

func TestReserveSnapshotImmuneToLaterFeeChange(t *testing.T) {
	svc, provRepo, resRepo := newBookingFixture(testProvider())
	ctx := context.Background()

	id, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	require.NoError(t, err)

	require.NoError(t, provRepo.UpdateProfile(ctx, "prov-1", 900, "new address", true))

	res, err := resRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 500.0, res.Amount)
	assert.Equal(t, 500.0, res.Provider.Fee)
}

func TestReserveSameSlotConflicts(t *testing.T) {
	svc, _, _ := newBookingFixture(testProvider())
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, "client-2", "prov-1", "5_6_2024", "10:00 AM")
	assert.Equal(t, CodeSlotConflict, ErrorCode(err))

	// Adjacent slot on the same day is unaffected.
	_, err = svc.Reserve(ctx, "client-2", "prov-1", "5_6_2024", "10:30 AM")
	assert.NoError(t, err)
}

func TestReserveConcurrentSingleWinner(t *testing.T) {
	svc, _, resRepo := newBookingFixture(testProvider())
	ctx := context.Background()

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.Equal(t, CodeSlotConflict, ErrorCode(err))
		}
	}
	assert.Equal(t, 1, wins)

	stored, err := resRepo.ListByProvider(ctx, "prov-1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestReserveProviderUnavailable(t *testing.T) {
	provider := testProvider()
	provider.Available = false
	svc, provRepo, resRepo := newBookingFixture(provider)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	assert.Equal(t, CodeProviderUnavailable, ErrorCode(err))

	// No side effects on failure.
	p, err := provRepo.GetByID(ctx, "prov-1")
	require.NoError(t, err)
	assert.False(t, p.SlotsBooked.IsBooked("5_6_2024", "10:00 AM"))
	stored, _ := resRepo.ListByProvider(ctx, "prov-1")
	assert.Empty(t, stored)
}

func TestReserveUnknownProvider(t *testing.T) {
	svc, _, _ := newBookingFixture(testProvider())

	_, err := svc.Reserve(context.Background(), "client-1", "prov-404", "5_6_2024", "10:00 AM")
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestReserveRejectsMalformedLabels(t *testing.T) {
	svc, _, _ := newBookingFixture(testProvider())
	ctx := context.Background()

	cases := []struct{ date, timeLabel string }{
		{"2024-06-05", "10:00 AM"},
		{"5_6_24", "10:00 AM"},
		{"5_6_2024", "22:00"},
		{"5_6_2024", "10:00am"},
		{"5_6_2024", "13:00 PM"},
	}
	for _, tc := range cases {
		_, err := svc.Reserve(ctx, "client-1", "prov-1", tc.date, tc.timeLabel)
		assert.Equal(t, CodeValidation, ErrorCode(err), "date=%q time=%q", tc.date, tc.timeLabel)
	}
}

func TestCancelReleasesSlotForRebooking(t *testing.T) {
	svc, provRepo, resRepo := newBookingFixture(testProvider())
	ctx := context.Background()

	id, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, "client-1", id))

	res, err := resRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, res.Status)

	p, err := provRepo.GetByID(ctx, "prov-1")
	require.NoError(t, err)
	assert.False(t, p.SlotsBooked.IsBooked("5_6_2024", "10:00 AM"))

	// Slot is bookable again by anyone.
	_, err = svc.Reserve(ctx, "client-2", "prov-1", "5_6_2024", "10:00 AM")
	assert.NoError(t, err)
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _, _ := newBookingFixture(testProvider())
	ctx := context.Background()

	id, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, "client-1", id))
	assert.NoError(t, svc.Cancel(ctx, "client-1", id))
}

func TestCancelAuthorization(t *testing.T) {
	svc, _, _ := newBookingFixture(testProvider())
	ctx := context.Background()

	id, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	require.NoError(t, err)

	err = svc.Cancel(ctx, "client-2", id)
	assert.Equal(t, CodeUnauthorized, ErrorCode(err))

	// The booked provider may cancel too.
	assert.NoError(t, svc.Cancel(ctx, "prov-1", id))
}

func TestCancelUnknownReservation(t *testing.T) {
	svc, _, _ := newBookingFixture(testProvider())

	err := svc.Cancel(context.Background(), "client-1", "missing")
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestCancelCompletedReservationRejected(t *testing.T) {
	svc, _, resRepo := newBookingFixture(testProvider())
	ctx := context.Background()

	id, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	require.NoError(t, err)
	require.NoError(t, resRepo.MarkCompleted(ctx, id))

	err = svc.Cancel(ctx, "client-1", id)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestCompleteOnlyByBookedProvider(t *testing.T) {
	svc, _, resRepo := newBookingFixture(testProvider())
	ctx := context.Background()

	id, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	require.NoError(t, err)

	err = svc.Complete(ctx, "prov-2", id)
	assert.Equal(t, CodeUnauthorized, ErrorCode(err))

	require.NoError(t, svc.Complete(ctx, "prov-1", id))
	res, err := resRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, res.Status)

	// Completing twice fails; the status set is closed.
	err = svc.Complete(ctx, "prov-1", id)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestListOrderingMostRecentFirst(t *testing.T) {
	svc, _, _ := newBookingFixture(testProvider())
	ctx := context.Background()

	first, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:00 AM")
	require.NoError(t, err)
	second, err := svc.Reserve(ctx, "client-1", "prov-1", "5_6_2024", "10:30 AM")
	require.NoError(t, err)

	byClient, err := svc.ListForClient(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, byClient, 2)
	assert.Equal(t, second, byClient[0].ID)
	assert.Equal(t, first, byClient[1].ID)

	byProvider, err := svc.ListForProvider(ctx, "prov-1")
	require.NoError(t, err)
	assert.Len(t, byProvider, 2)
}
