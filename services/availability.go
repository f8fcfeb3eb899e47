package services

import (
	"context"
	"errors"
	"time"

	providerRepo "carebook/database/repository/provider"
	"carebook/models"

	"github.com/go-redis/redis/v8"
)

const (
	// scheduleHorizonDays is the forward window over which open slots are
	// computed.
	scheduleHorizonDays = 7
	// openingHour and closingHour bound a provider's bookable day.
	openingHour = 10
	closingHour = 21
	// slotStep is the fixed slot duration; slots are never subdivided or
	// merged.
	slotStep = 30 * time.Minute
)

// AvailabilityService computes a provider's open time windows.
type AvailabilityService interface {
	GetUpcomingSlots(ctx context.Context, providerID string) ([]models.DaySlots, error)
}

// DefaultAvailabilityService is a concrete implementation serving from the
// cached provider snapshot.
type DefaultAvailabilityService struct {
	Repo  providerRepo.ProviderRepository
	Cache *redis.Client
	// Now is the reference-instant source; defaults to time.Now.
	Now func() time.Time
}

// GetUpcomingSlots returns one bucket of open slots per day of the horizon,
// derived from the provider's snapshot at the time of the call. The
// availability flag is deliberately not folded in here: flag and ledger are
// sampled independently, so unavailability is enforced at booking time.
func (s *DefaultAvailabilityService) GetUpcomingSlots(ctx context.Context, providerID string) ([]models.DaySlots, error) {
	provider, err := loadProviderSnapshot(ctx, s.Cache, s.Repo, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "provider not found")
		}
		return nil, err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return BuildSchedule(provider, now), nil
}

// BuildSchedule derives the open slots for the horizon from the provider's
// booked-slot ledger and the reference instant. The schedule is recomputed
// from scratch on every call.
//
// Day 0 starts at the next bookable half hour after "now" (never before
// 10:00); later days start at 10:00. Every day ends at 21:00. A slot is open
// iff its (date, time) pair is absent from the ledger.
func BuildSchedule(provider *models.Provider, now time.Time) []models.DaySlots {
	schedule := make([]models.DaySlots, 0, scheduleHorizonDays)

	for i := 0; i < scheduleHorizonDays; i++ {
		day := now.AddDate(0, 0, i)

		hour := openingHour
		minute := 0
		if i == 0 {
			if now.Hour() > openingHour {
				hour = now.Hour() + 1
			}
			if now.Minute() > 30 {
				minute = 30
			}
		}
		cursor := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
		boundary := time.Date(day.Year(), day.Month(), day.Day(), closingHour, 0, 0, 0, now.Location())

		bucket := models.DaySlots{Date: models.DateLabel(day)}
		for cursor.Before(boundary) {
			date := models.DateLabel(cursor)
			timeLabel := models.TimeLabel(cursor)
			if !provider.SlotsBooked.IsBooked(date, timeLabel) {
				bucket.Slots = append(bucket.Slots, models.SlotOption{
					DateTime: cursor,
					Time:     timeLabel,
				})
			}
			cursor = cursor.Add(slotStep)
		}
		schedule = append(schedule, bucket)
	}
	return schedule
}
