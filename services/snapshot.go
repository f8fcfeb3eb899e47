package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	providerRepo "carebook/database/repository/provider"
	"carebook/models"

	"github.com/go-redis/redis/v8"
)

// Provider snapshots are cached briefly so availability queries do not hit
// the primary store on every call. Booking, cancellation and profile writes
// invalidate the snapshot; a stale read only affects the advisory slot list,
// never the booking-time conflict check.
const providerSnapshotTTL = 30 * time.Second

func providerSnapshotKey(id string) string {
	return fmt.Sprintf("provider:snapshot:%s", id)
}

// loadProviderSnapshot returns the cached provider document when warm, or
// fetches it from the repository and caches it. A nil cache client is
// tolerated and simply bypasses caching.
func loadProviderSnapshot(ctx context.Context, cache *redis.Client, repo providerRepo.ProviderRepository, id string) (*models.Provider, error) {
	if cache != nil {
		raw, err := cache.Get(ctx, providerSnapshotKey(id)).Result()
		if err == nil {
			var provider models.Provider
			if err := json.Unmarshal([]byte(raw), &provider); err == nil {
				return &provider, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			// Cache trouble is not fatal; fall through to the repository.
		}
	}

	provider, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if data, err := json.Marshal(provider); err == nil {
			cache.Set(ctx, providerSnapshotKey(id), data, providerSnapshotTTL)
		}
	}
	return provider, nil
}

// invalidateProviderSnapshot drops the cached snapshot after a write.
func invalidateProviderSnapshot(ctx context.Context, cache *redis.Client, id string) {
	if cache != nil {
		cache.Del(ctx, providerSnapshotKey(id))
	}
}
