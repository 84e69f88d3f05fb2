package redis

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/infra/memory"
)

// ProfileRepository caches company profiles in Redis (hash per symbol) and
// falls back to a loader on cache miss:
//
//	HSET market:profile:{SYMBOL} name ... ticker ... marketCapitalization ...
type ProfileRepository struct {
	client *redis.Client
	loader memory.ProfileLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

// cachedProfile is the hash layout; field names follow the provider's JSON.
type cachedProfile struct {
	Ticker            string  `redis:"ticker"`
	Name              string  `redis:"name"`
	Industry          string  `redis:"finnhubIndustry"`
	MarketCap         float64 `redis:"marketCapitalization"`
	SharesOutstanding float64 `redis:"shareOutstanding"`
	Employees         float64 `redis:"employeeTotal"`
	Country           string  `redis:"country"`
	Currency          string  `redis:"currency"`
	Exchange          string  `redis:"exchange"`
	IPO               string  `redis:"ipo"`
	Logo              string  `redis:"logo"`
	WebURL            string  `redis:"weburl"`
}

func NewProfileRepository(client *redis.Client, loader memory.ProfileLoader, ttl time.Duration) *ProfileRepository {
	return &ProfileRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, symbol string) (domain.CompanyProfile, error) {
	symbol = strings.ToUpper(symbol)
	key := r.key(symbol)

	if p, ok := r.cached(ctx, key); ok {
		return p, nil
	}

	result, err, _ := r.sf.Do(symbol, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if p, ok := r.cached(ctx, key); ok {
			return p, nil
		}

		profile, err := r.loader.LoadProfile(ctx, symbol)
		if err != nil {
			return domain.CompanyProfile{}, err
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		pipe.HSet(ctx, key, toCached(profile))
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return profile, nil
	})
	if err != nil {
		return domain.CompanyProfile{}, err
	}
	return result.(domain.CompanyProfile), nil
}

func (r *ProfileRepository) cached(ctx context.Context, key string) (domain.CompanyProfile, bool) {
	res := r.client.HGetAll(ctx, key)
	if res.Err() != nil || len(res.Val()) == 0 {
		return domain.CompanyProfile{}, false
	}
	var c cachedProfile
	if err := res.Scan(&c); err != nil {
		return domain.CompanyProfile{}, false
	}
	return fromCached(c), true
}

func (r *ProfileRepository) key(symbol string) string {
	return "market:profile:" + symbol
}

func (r *ProfileRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func toCached(p domain.CompanyProfile) cachedProfile {
	return cachedProfile(p)
}

func fromCached(c cachedProfile) domain.CompanyProfile {
	return domain.CompanyProfile(c)
}
