package memory

import (
	"context"
	"sync"

	"options-quiz-service/internal/domain"
)

// EntitlementCache keeps premium flags in process. Last writer wins.
type EntitlementCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Entitlement
}

func NewEntitlementCache() *EntitlementCache {
	return &EntitlementCache{entries: make(map[string]domain.Entitlement)}
}

func (c *EntitlementCache) GetEntitlement(_ context.Context, userID string) (domain.Entitlement, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[userID]
	return e, ok, nil
}

func (c *EntitlementCache) PutEntitlement(_ context.Context, e domain.Entitlement) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.UserID] = e
	return nil
}
