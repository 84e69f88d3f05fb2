package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"options-quiz-service/internal/domain"
)

// DefaultEntitlementRetention keeps stale flags around long enough to serve
// as a fallback when the subscription store is down.
const DefaultEntitlementRetention = 30 * 24 * time.Hour

// EntitlementCache stores premium flags as a hash per user:
//
//	HSET entitlement:{userID} premium 1 checkedAt 1730462400
type EntitlementCache struct {
	client    *redis.Client
	retention time.Duration
}

type cachedEntitlement struct {
	Premium   bool  `redis:"premium"`
	CheckedAt int64 `redis:"checkedAt"`
}

func NewEntitlementCache(client *redis.Client, retention time.Duration) *EntitlementCache {
	if retention <= 0 {
		retention = DefaultEntitlementRetention
	}
	return &EntitlementCache{client: client, retention: retention}
}

func (c *EntitlementCache) GetEntitlement(ctx context.Context, userID string) (domain.Entitlement, bool, error) {
	res := c.client.HGetAll(ctx, c.key(userID))
	if err := res.Err(); err != nil {
		return domain.Entitlement{}, false, err
	}
	if len(res.Val()) == 0 {
		return domain.Entitlement{}, false, nil
	}
	var cached cachedEntitlement
	if err := res.Scan(&cached); err != nil {
		return domain.Entitlement{}, false, err
	}
	return domain.Entitlement{
		UserID:          userID,
		IsPremiumActive: cached.Premium,
		LastCheckedAt:   time.Unix(cached.CheckedAt, 0).UTC(),
	}, true, nil
}

func (c *EntitlementCache) PutEntitlement(ctx context.Context, e domain.Entitlement) error {
	key := c.key(e.UserID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, cachedEntitlement{Premium: e.IsPremiumActive, CheckedAt: e.LastCheckedAt.Unix()})
	pipe.Expire(ctx, key, c.retention)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *EntitlementCache) key(userID string) string {
	return "entitlement:" + userID
}
