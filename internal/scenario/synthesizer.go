// Package scenario turns a live quote into a hypothetical options trade.
package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"options-quiz-service/internal/domain"
)

const (
	DefaultFutureRange = 0.20
	DefaultExpiryDays  = 30
)

// Offset scales the current price into a strike and a premium.
type Offset struct {
	Strike  float64
	Premium float64
}

// DefaultOffsets are the per-strategy multipliers used when configuration
// does not override them. Put-based strategies strike below spot.
func DefaultOffsets() map[domain.StrategyKind]Offset {
	return map[domain.StrategyKind]Offset{
		domain.LongCall:       {Strike: 1.05, Premium: 0.03},
		domain.CoveredCall:    {Strike: 1.05, Premium: 0.03},
		domain.CashSecuredPut: {Strike: 0.95, Premium: 0.03},
		domain.ProtectivePut:  {Strike: 0.95, Premium: 0.03},
		domain.Collar:         {Strike: 1.05, Premium: 0.03},
		domain.LongPut:        {Strike: 0.95, Premium: 0.03},
		domain.CallSpread:     {Strike: 1.05, Premium: 0.03},
		domain.PutSpread:      {Strike: 0.95, Premium: 0.03},
		domain.FigLeaf:        {Strike: 1.05, Premium: 0.03},
		domain.OptionsTheory:  {Strike: 1.05, Premium: 0.03},
	}
}

// Options configures a Synthesizer. Zero values take the defaults.
type Options struct {
	Offsets     map[domain.StrategyKind]Offset
	FutureRange float64
	ExpiryDays  int
	Rand        *rand.Rand
	Now         func() time.Time
}

// Synthesizer builds scenarios. It is safe for concurrent use.
type Synthesizer struct {
	offsets     map[domain.StrategyKind]Offset
	futureRange float64
	expiryDays  int
	now         func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSynthesizer(opts Options) *Synthesizer {
	s := &Synthesizer{
		offsets:     DefaultOffsets(),
		futureRange: opts.FutureRange,
		expiryDays:  opts.ExpiryDays,
		now:         opts.Now,
		rnd:         opts.Rand,
	}
	for kind, off := range opts.Offsets {
		s.offsets[domain.StrategyKind(strings.ToUpper(string(kind)))] = off
	}
	if s.futureRange <= 0 {
		s.futureRange = DefaultFutureRange
	}
	if s.expiryDays <= 0 {
		s.expiryDays = DefaultExpiryDays
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Synthesize derives strike, premium, a random future price and the expiry
// from currentPrice. A zero tradeDate means today.
func (s *Synthesizer) Synthesize(symbol string, currentPrice float64, kind domain.StrategyKind, tradeDate time.Time) (domain.Scenario, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return domain.Scenario{}, fmt.Errorf("%w: symbol is required", domain.ErrInvalidScenario)
	}
	if math.IsNaN(currentPrice) || math.IsInf(currentPrice, 0) || currentPrice <= 0 {
		return domain.Scenario{}, fmt.Errorf("%w: current price must be positive", domain.ErrInvalidScenario)
	}
	kind = domain.StrategyKind(strings.ToUpper(string(kind)))
	off, ok := s.offsets[kind]
	if !ok {
		return domain.Scenario{}, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, kind)
	}
	if tradeDate.IsZero() {
		tradeDate = s.now().UTC()
	}
	tradeDate = time.Date(tradeDate.Year(), tradeDate.Month(), tradeDate.Day(), 0, 0, 0, 0, time.UTC)

	s.mu.Lock()
	u := s.rnd.Float64()
	s.mu.Unlock()

	low := currentPrice * (1 - s.futureRange)
	high := currentPrice * (1 + s.futureRange)

	return domain.Scenario{
		Symbol:         symbol,
		CurrentPrice:   currentPrice,
		StrikePrice:    round2(currentPrice * off.Strike),
		Premium:        round2(currentPrice * off.Premium),
		FuturePrice:    round2(low + u*(high-low)),
		TradeDate:      tradeDate,
		ExpirationDate: tradeDate.AddDate(0, 0, s.expiryDays),
		Strategy:       kind,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
