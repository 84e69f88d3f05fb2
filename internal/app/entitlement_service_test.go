package app

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"options-quiz-service/internal/domain"
)

type fakeSubs struct {
	subs  map[string]domain.Subscription
	err   error
	reads int
}

func (f *fakeSubs) GetSubscription(_ context.Context, userID string) (domain.Subscription, error) {
	f.reads++
	if f.err != nil {
		return domain.Subscription{}, f.err
	}
	sub, ok := f.subs[userID]
	if !ok {
		return domain.Subscription{}, domain.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (f *fakeSubs) PutSubscription(_ context.Context, sub domain.Subscription) error {
	if f.err != nil {
		return f.err
	}
	f.subs[sub.UserID] = sub
	return nil
}

type fakeCache map[string]domain.Entitlement

func (c fakeCache) GetEntitlement(_ context.Context, userID string) (domain.Entitlement, bool, error) {
	e, ok := c[userID]
	return e, ok, nil
}

func (c fakeCache) PutEntitlement(_ context.Context, e domain.Entitlement) error {
	c[e.UserID] = e
	return nil
}

func newEntitlements(subs *fakeSubs, cache fakeCache, now time.Time) *EntitlementService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewEntitlementService(subs, cache, time.Hour, log)
	s.clock = func() time.Time { return now }
	return s
}

func TestCheckAnonymousIsFree(t *testing.T) {
	subs := &fakeSubs{subs: map[string]domain.Subscription{}}
	s := newEntitlements(subs, fakeCache{}, time.Now())
	if s.Check(context.Background(), "") {
		t.Fatalf("anonymous user must not be premium")
	}
	if subs.reads != 0 {
		t.Fatalf("anonymous check should not hit the store")
	}
}

func TestCheckUsesFreshCache(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	subs := &fakeSubs{subs: map[string]domain.Subscription{}}
	cache := fakeCache{"u": {UserID: "u", IsPremiumActive: true, LastCheckedAt: now.Add(-30 * time.Minute)}}
	s := newEntitlements(subs, cache, now)

	if !s.Check(context.Background(), "u") {
		t.Fatalf("expected cached premium flag")
	}
	if subs.reads != 0 {
		t.Fatalf("fresh cache should not hit the store, reads=%d", subs.reads)
	}
}

func TestCheckReloadsStaleCache(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	subs := &fakeSubs{subs: map[string]domain.Subscription{"u": {UserID: "u", Status: "canceled"}}}
	cache := fakeCache{"u": {UserID: "u", IsPremiumActive: true, LastCheckedAt: now.Add(-2 * time.Hour)}}
	s := newEntitlements(subs, cache, now)

	if s.Check(context.Background(), "u") {
		t.Fatalf("expected canceled subscription to revoke premium")
	}
	if subs.reads != 1 {
		t.Fatalf("expected one store read, got %d", subs.reads)
	}
	if e := cache["u"]; e.IsPremiumActive || !e.LastCheckedAt.Equal(now) {
		t.Fatalf("expected cache refreshed, got %+v", e)
	}
}

func TestCheckFallsBackOnStoreFailure(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	subs := &fakeSubs{err: errors.New("db down")}
	cache := fakeCache{"u": {UserID: "u", IsPremiumActive: true, LastCheckedAt: now.Add(-48 * time.Hour)}}
	s := newEntitlements(subs, cache, now)

	if !s.Check(context.Background(), "u") {
		t.Fatalf("expected stale cached value on store failure")
	}
	if s.Check(context.Background(), "other") {
		t.Fatalf("expected false without any cached value")
	}
	if _, err := s.Refresh(context.Background(), "u"); err == nil {
		t.Fatalf("expected refresh to surface the store error")
	}
}

func TestSetPremiumWritesStoreAndCache(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	subs := &fakeSubs{subs: map[string]domain.Subscription{}}
	cache := fakeCache{}
	s := newEntitlements(subs, cache, now)

	if err := s.SetPremium(context.Background(), "u", true); err != nil {
		t.Fatalf("set premium: %v", err)
	}
	if sub := subs.subs["u"]; !sub.IsPremium() || !sub.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected subscription %+v", sub)
	}
	if !cache["u"].IsPremiumActive {
		t.Fatalf("expected cache updated")
	}
	if premium, err := s.Refresh(context.Background(), "u"); err != nil || !premium {
		t.Fatalf("expected premium on refresh, got %v %v", premium, err)
	}
	if err := s.SetPremium(context.Background(), "", true); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
