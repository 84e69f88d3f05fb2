// Package strategy holds the options formula layer: per-strategy payoff
// math, question generators and capital calculators.
package strategy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"options-quiz-service/internal/domain"
)

// ContractSize is the number of shares one option contract controls.
const ContractSize = 100

// Inputs are the scenario fields every formula is computed from.
type Inputs struct {
	Symbol     string
	Spot       float64
	Strike     float64
	Premium    float64
	Future     float64
	Expiration time.Time
	TradeDate  time.Time
}

// Strategy is implemented only by the variants in this package.
type Strategy interface {
	Kind() domain.StrategyKind
	Label() string
	Description() string
	// Premium reports whether the strategy is gated behind a paid entitlement.
	Premium() bool
	Questions(in Inputs) []Draft
	// Profit is the P/L in dollars for one contract with the underlying at price.
	Profit(in Inputs, price float64) float64
	Metrics(in Inputs) domain.Metrics
	RequiredCapital(in Inputs) domain.Amount
	InitialInvestment(in Inputs) domain.Amount

	priceRange(in Inputs) (lo, hi float64)
}

var all = []Strategy{
	longCall{},
	coveredCall{},
	cashSecuredPut{},
	protectivePut{},
	collar{},
	longPut{},
	callSpread{},
	putSpread{},
	figLeaf{},
	optionsTheory{},
}

var byKind = func() map[domain.StrategyKind]Strategy {
	m := make(map[domain.StrategyKind]Strategy, len(all))
	for _, s := range all {
		m[s.Kind()] = s
	}
	return m
}()

// All returns every strategy in display order.
func All() []Strategy {
	out := make([]Strategy, len(all))
	copy(out, all)
	return out
}

// Lookup resolves a wire name to its strategy.
func Lookup(kind domain.StrategyKind) (Strategy, error) {
	s, ok := byKind[domain.StrategyKind(strings.ToUpper(string(kind)))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, kind)
	}
	return s, nil
}

// FromScenario converts a synthesized scenario into formula inputs.
func FromScenario(sc domain.Scenario) Inputs {
	return Inputs{
		Symbol:     sc.Symbol,
		Spot:       sc.CurrentPrice,
		Strike:     sc.StrikePrice,
		Premium:    sc.Premium,
		Future:     sc.FuturePrice,
		Expiration: sc.ExpirationDate,
		TradeDate:  sc.TradeDate,
	}
}

// RawInputs are scenario fields as entered by a user.
type RawInputs struct {
	Symbol         string
	StockPrice     string
	StrikePrice    string
	Premium        string
	FuturePrice    string
	ExpirationDate string
	TradeDate      string
}

// ParseInputs validates user-entered scenario fields. The formulas themselves
// never reject input, so everything non-numeric stops here.
func ParseInputs(raw RawInputs) (Inputs, error) {
	in := Inputs{Symbol: strings.ToUpper(strings.TrimSpace(raw.Symbol))}
	if in.Symbol == "" {
		return Inputs{}, fmt.Errorf("%w: symbol is required", domain.ErrInvalidScenario)
	}
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"stockPrice", raw.StockPrice, &in.Spot},
		{"strikePrice", raw.StrikePrice, &in.Strike},
		{"premium", raw.Premium, &in.Premium},
		{"futurePrice", raw.FuturePrice, &in.Future},
	}
	for _, f := range fields {
		v, err := parsePositive(f.raw)
		if err != nil {
			return Inputs{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidScenario, f.name, err)
		}
		*f.dst = v
	}
	var err error
	if in.TradeDate, err = parseDate(raw.TradeDate); err != nil {
		return Inputs{}, fmt.Errorf("%w: tradeDate: %v", domain.ErrInvalidScenario, err)
	}
	if in.Expiration, err = parseDate(raw.ExpirationDate); err != nil {
		return Inputs{}, fmt.Errorf("%w: expirationDate: %v", domain.ErrInvalidScenario, err)
	}
	return in, nil
}

// ParsePrice validates a single user-entered price.
func ParsePrice(name, raw string) (float64, error) {
	v, err := parsePositive(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrInvalidScenario, name, err)
	}
	return v, nil
}

func parsePositive(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("must be a positive number: %q", raw)
	}
	return v, nil
}

func parseDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateLayout, strings.TrimSpace(raw))
}

// RequiredCapital looks up the capital calculator by wire name. Unknown names
// yield a zero amount with no description.
func RequiredCapital(kind domain.StrategyKind, in Inputs) domain.Amount {
	s, err := Lookup(kind)
	if err != nil {
		return zeroAmount
	}
	return s.RequiredCapital(in)
}

// InitialInvestment looks up the cash flow calculator by wire name. Unknown
// names yield a zero amount with no description.
func InitialInvestment(kind domain.StrategyKind, in Inputs) domain.Amount {
	s, err := Lookup(kind)
	if err != nil {
		return zeroAmount
	}
	return s.InitialInvestment(in)
}

var zeroAmount = domain.Amount{Amount: "0.00", Description: ""}

func amount(v float64, description string) domain.Amount {
	return domain.Amount{Amount: money(v), Description: description}
}

func expirationLabel(in Inputs) string {
	if in.Expiration.IsZero() {
		return "expiration"
	}
	return in.Expiration.Format(domain.DateLayout)
}

func tradeDateLabel(in Inputs) string {
	if in.TradeDate.IsZero() {
		return "today"
	}
	return in.TradeDate.Format(domain.DateLayout)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func intrinsicCall(price, strike float64) float64 {
	return math.Max(price-strike, 0)
}

func intrinsicPut(price, strike float64) float64 {
	return math.Max(strike-price, 0)
}

func strikeRange(in Inputs) (float64, float64) {
	return in.Strike * 0.7, in.Strike * 1.5
}
