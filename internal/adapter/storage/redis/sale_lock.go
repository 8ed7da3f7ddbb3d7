package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when the caller still holds it, so
// a lock that expired and was re-acquired by another run is never released by
// the old holder.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// SaleLocker implements ports.SaleLocker using Redis SET NX. One orchestration
// chain runs per sale at a time; the TTL bounds how long a crashed run can
// hold the lock.
type SaleLocker struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewSaleLocker creates a new Redis-backed sale locker.
func NewSaleLocker(client *goredis.Client, ttl time.Duration) *SaleLocker {
	return &SaleLocker{
		client: client,
		prefix: "salelock:",
		ttl:    ttl,
	}
}

// Acquire attempts to take the per-sale lock. Returns the holder token and
// whether the lock was acquired.
func (s *SaleLocker) Acquire(ctx context.Context, saleID uuid.UUID) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, s.prefix+saleID.String(), token, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis sale lock acquire: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release frees the lock if the token still holds it.
func (s *SaleLocker) Release(ctx context.Context, saleID uuid.UUID, token string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.prefix + saleID.String()}, token).Err(); err != nil {
		return fmt.Errorf("redis sale lock release: %w", err)
	}
	return nil
}
