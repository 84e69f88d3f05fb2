package memory

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"options-quiz-service/internal/domain"
)

// ProfileLoader fetches company profiles from the market data provider.
type ProfileLoader interface {
	LoadProfile(ctx context.Context, symbol string) (domain.CompanyProfile, error)
}

// ProfileRepository caches company profiles with TTL to avoid repeated
// provider calls. Concurrent misses for one symbol share a single load.
type ProfileRepository struct {
	loader ProfileLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedProfile
}

type cachedProfile struct {
	profile   domain.CompanyProfile
	expiresAt time.Time
}

func NewProfileRepository(loader ProfileLoader, ttl time.Duration) *ProfileRepository {
	return &ProfileRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedProfile),
	}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, symbol string) (domain.CompanyProfile, error) {
	symbol = strings.ToUpper(symbol)
	if p, ok := r.lookup(symbol); ok {
		return p, nil
	}

	result, err, _ := r.sf.Do(symbol, func() (interface{}, error) {
		if p, ok := r.lookup(symbol); ok {
			return p, nil
		}
		profile, err := r.loader.LoadProfile(ctx, symbol)
		if err != nil {
			return domain.CompanyProfile{}, err
		}

		r.mu.Lock()
		r.cache[symbol] = cachedProfile{
			profile:   profile,
			expiresAt: r.clock().Add(r.ttlWithJitterLocked()),
		}
		r.mu.Unlock()
		return profile, nil
	})
	if err != nil {
		return domain.CompanyProfile{}, err
	}
	return result.(domain.CompanyProfile), nil
}

func (r *ProfileRepository) lookup(symbol string) (domain.CompanyProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[symbol]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return domain.CompanyProfile{}, false
	}
	return entry.profile, true
}

// ttlWithJitterLocked must be called with r.mu held for writing.
func (r *ProfileRepository) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticProfileLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticProfileLoader struct {
	profiles map[string]domain.CompanyProfile
}

func NewStaticProfileLoader(profiles map[string]domain.CompanyProfile) *StaticProfileLoader {
	return &StaticProfileLoader{profiles: profiles}
}

func (l *StaticProfileLoader) LoadProfile(_ context.Context, symbol string) (domain.CompanyProfile, error) {
	if p, ok := l.profiles[strings.ToUpper(symbol)]; ok {
		return p, nil
	}
	return domain.CompanyProfile{}, domain.ErrNoProfileData
}
