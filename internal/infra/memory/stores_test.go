package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"options-quiz-service/internal/domain"
)

func TestScoreStoreReturnsNewestFirst(t *testing.T) {
	store := NewScoreStore()
	base := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		err := store.SaveAttempt(context.Background(), domain.QuizAttempt{
			ID:     fmt.Sprintf("a-%d", i),
			UserID: "user-1",
			Date:   base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	_ = store.SaveAttempt(context.Background(), domain.QuizAttempt{ID: "other", UserID: "user-2", Date: base})

	got, err := store.RecentAttempts(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 attempts, got %d", len(got))
	}
	if got[0].ID != "a-11" || got[9].ID != "a-2" {
		t.Fatalf("unexpected order %s..%s", got[0].ID, got[9].ID)
	}
}

func TestSubscriptionStore(t *testing.T) {
	store := NewSubscriptionStore()
	if _, err := store.GetSubscription(context.Background(), "user-1"); !errors.Is(err, domain.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
	_ = store.PutSubscription(context.Background(), domain.Subscription{UserID: "user-1", Status: domain.SubscriptionActive})
	sub, err := store.GetSubscription(context.Background(), "user-1")
	if err != nil || !sub.IsPremium() {
		t.Fatalf("expected active subscription, got %+v (%v)", sub, err)
	}
}

func TestEntitlementCacheLastWriterWins(t *testing.T) {
	cache := NewEntitlementCache()
	ctx := context.Background()
	_ = cache.PutEntitlement(ctx, domain.Entitlement{UserID: "u", IsPremiumActive: true})
	_ = cache.PutEntitlement(ctx, domain.Entitlement{UserID: "u", IsPremiumActive: false})

	e, ok, err := cache.GetEntitlement(ctx, "u")
	if err != nil || !ok {
		t.Fatalf("expected cached entitlement, got ok=%v err=%v", ok, err)
	}
	if e.IsPremiumActive {
		t.Fatalf("expected last write to win")
	}
}
