package repository

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type memorySession struct {
	cache *ttlcache.Cache[string, tictactoe.Snapshot]
}

// NewMemorySessionRepository - keeps sessions in process memory; they are gone when the process exits.
// Like redis, reads do not extend a session, only saves do. A zero ttl keeps sessions until deleted.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memorySession{
		cache: ttlcache.New[string, tictactoe.Snapshot](
			ttlcache.WithTTL[string, tictactoe.Snapshot](ttl),
			ttlcache.WithDisableTouchOnHit[string, tictactoe.Snapshot](),
		),
	}
}

// Save - stores the snapshot and frees every session that has expired in the meantime.
func (that *memorySession) Save(_ context.Context, id string, snapshot tictactoe.Snapshot) error {
	that.cache.DeleteExpired()
	that.cache.Set(id, snapshot, ttlcache.DefaultTTL)

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (tictactoe.Snapshot, error) {
	item := that.cache.Get(id)
	if item == nil || item.IsExpired() {
		return tictactoe.Snapshot{}, apperror.ErrSessionNotFound
	}

	return item.Value(), nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	if !that.cache.Has(id) {
		return apperror.ErrSessionNotFound
	}

	that.cache.Delete(id)

	return nil
}
