package app

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"options-quiz-service/internal/domain"
)

// DefaultEntitlementFreshness is how long a cached premium flag is trusted.
const DefaultEntitlementFreshness = time.Hour

// EntitlementService answers "is this user premium" from a cache backed by
// the subscription store.
type EntitlementService struct {
	subs      SubscriptionStore
	cache     EntitlementCache
	freshness time.Duration
	clock     func() time.Time
	sf        singleflight.Group
	log       logrus.FieldLogger
}

func NewEntitlementService(subs SubscriptionStore, cache EntitlementCache, freshness time.Duration, log logrus.FieldLogger) *EntitlementService {
	if freshness <= 0 {
		freshness = DefaultEntitlementFreshness
	}
	return &EntitlementService{
		subs:      subs,
		cache:     cache,
		freshness: freshness,
		clock:     time.Now,
		log:       log,
	}
}

// Check never fails. Anonymous users are not premium; a store failure falls
// back to the last cached value of any age, then to false.
func (s *EntitlementService) Check(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	cached, ok, err := s.cache.GetEntitlement(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("entitlement cache read failed")
		ok = false
	}
	if ok && cached.UserID == userID && s.clock().Sub(cached.LastCheckedAt) < s.freshness {
		return cached.IsPremiumActive
	}

	premium, err := s.load(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("subscription lookup failed")
		if ok && cached.UserID == userID {
			return cached.IsPremiumActive
		}
		return false
	}
	return premium
}

// Refresh bypasses the cache and reports the store's current answer.
func (s *EntitlementService) Refresh(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUnauthenticated
	}
	return s.load(ctx, userID)
}

// SetPremium writes the subscription document, then the cache.
func (s *EntitlementService) SetPremium(ctx context.Context, userID string, premium bool) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	status := "inactive"
	if premium {
		status = domain.SubscriptionActive
	}
	now := s.clock()
	if err := s.subs.PutSubscription(ctx, domain.Subscription{UserID: userID, Status: status, UpdatedAt: now}); err != nil {
		return err
	}
	s.store(ctx, domain.Entitlement{UserID: userID, IsPremiumActive: premium, LastCheckedAt: now})
	return nil
}

func (s *EntitlementService) load(ctx context.Context, userID string) (bool, error) {
	result, err, _ := s.sf.Do(userID, func() (interface{}, error) {
		sub, err := s.subs.GetSubscription(ctx, userID)
		switch {
		case errors.Is(err, domain.ErrSubscriptionNotFound):
			sub = domain.Subscription{UserID: userID}
		case err != nil:
			return false, err
		}
		premium := sub.IsPremium()
		s.store(ctx, domain.Entitlement{UserID: userID, IsPremiumActive: premium, LastCheckedAt: s.clock()})
		return premium, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func (s *EntitlementService) store(ctx context.Context, e domain.Entitlement) {
	if err := s.cache.PutEntitlement(ctx, e); err != nil {
		s.log.WithError(err).WithField("user_id", e.UserID).Warn("entitlement cache write failed")
	}
}
