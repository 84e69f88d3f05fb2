package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/infra/memory"
)

func TestProfileRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		ProfileLoader: memory.NewStaticProfileLoader(map[string]domain.CompanyProfile{
			"AAPL": {Ticker: "AAPL", Name: "Apple Inc", MarketCap: 3685993.47, Employees: 161000},
		}),
	}
	repo := NewProfileRepository(newClient(mr), loader, time.Minute)

	if _, err := repo.GetProfile(context.Background(), "aapl"); err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("market:profile:AAPL") {
		t.Fatalf("expected profile hash in redis")
	}

	// Second call should hit cache, loader not incremented.
	p, err := repo.GetProfile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("get profile 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if p.Name != "Apple Inc" || p.MarketCap != 3685993.47 || p.Employees != 161000 {
		t.Fatalf("profile did not round trip: %+v", p)
	}

	mr.FastForward(2 * time.Minute)
	_, _ = repo.GetProfile(context.Background(), "AAPL")
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls=%d", loader.calls)
	}
}

func TestEntitlementCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewEntitlementCache(newClient(mr), 0)
	ctx := context.Background()

	if _, ok, err := cache.GetEntitlement(ctx, "user-1"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	checked := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	if err := cache.PutEntitlement(ctx, domain.Entitlement{UserID: "user-1", IsPremiumActive: true, LastCheckedAt: checked}); err != nil {
		t.Fatalf("put: %v", err)
	}
	e, ok, err := cache.GetEntitlement(ctx, "user-1")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !e.IsPremiumActive || !e.LastCheckedAt.Equal(checked) {
		t.Fatalf("unexpected entitlement %+v", e)
	}
	if ttl := mr.TTL("entitlement:user-1"); ttl != DefaultEntitlementRetention {
		t.Fatalf("expected 30 day retention, got %v", ttl)
	}
}

type countingLoader struct {
	memory.ProfileLoader
	calls int
}

func (l *countingLoader) LoadProfile(ctx context.Context, symbol string) (domain.CompanyProfile, error) {
	l.calls++
	return l.ProfileLoader.LoadProfile(ctx, symbol)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
