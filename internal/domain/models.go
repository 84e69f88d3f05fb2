package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// StrategyKind is the wire name of an options strategy.
type StrategyKind string

const (
	LongCall       StrategyKind = "LONG_CALL"
	CoveredCall    StrategyKind = "COVERED_CALL"
	CashSecuredPut StrategyKind = "CASH_SECURED_PUT"
	ProtectivePut  StrategyKind = "PROTECTIVE_PUT"
	Collar         StrategyKind = "COLLAR_STRATEGY"
	LongPut        StrategyKind = "LONG_PUT"
	CallSpread     StrategyKind = "LONG_CALL_SPREAD"
	PutSpread      StrategyKind = "LONG_PUT_SPREAD"
	FigLeaf        StrategyKind = "FIG_LEAF"
	OptionsTheory  StrategyKind = "OPTIONS_THEORY"
)

// DateLayout is how trade and expiration dates travel on the wire.
const DateLayout = "2006-01-02"

// Scenario is the synthesized trade a quiz is built from. It is never mutated
// once generated.
type Scenario struct {
	Symbol         string       `json:"symbol"`
	CurrentPrice   float64      `json:"currentPrice"`
	StrikePrice    float64      `json:"strikePrice"`
	Premium        float64      `json:"premium"`
	FuturePrice    float64      `json:"futurePrice"`
	ExpirationDate time.Time    `json:"-"`
	TradeDate      time.Time    `json:"-"`
	Strategy       StrategyKind `json:"strategy"`
}

type scenarioJSON struct {
	Symbol         string       `json:"symbol"`
	CurrentPrice   float64      `json:"currentPrice"`
	StrikePrice    float64      `json:"strikePrice"`
	Premium        float64      `json:"premium"`
	FuturePrice    float64      `json:"futurePrice"`
	ExpirationDate string       `json:"expirationDate"`
	TradeDate      string       `json:"tradeDate"`
	Strategy       StrategyKind `json:"strategy"`
}

// MarshalJSON renders dates as calendar days.
func (s Scenario) MarshalJSON() ([]byte, error) {
	return json.Marshal(scenarioJSON{
		Symbol:         s.Symbol,
		CurrentPrice:   s.CurrentPrice,
		StrikePrice:    s.StrikePrice,
		Premium:        s.Premium,
		FuturePrice:    s.FuturePrice,
		ExpirationDate: s.ExpirationDate.Format(DateLayout),
		TradeDate:      s.TradeDate.Format(DateLayout),
		Strategy:       s.Strategy,
	})
}

// UnmarshalJSON accepts calendar days for the date fields.
func (s *Scenario) UnmarshalJSON(data []byte) error {
	var raw scenarioJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Scenario{
		Symbol:       raw.Symbol,
		CurrentPrice: raw.CurrentPrice,
		StrikePrice:  raw.StrikePrice,
		Premium:      raw.Premium,
		FuturePrice:  raw.FuturePrice,
		Strategy:     raw.Strategy,
	}
	var err error
	if raw.ExpirationDate != "" {
		if s.ExpirationDate, err = time.Parse(DateLayout, raw.ExpirationDate); err != nil {
			return fmt.Errorf("expirationDate: %w", err)
		}
	}
	if raw.TradeDate != "" {
		if s.TradeDate, err = time.Parse(DateLayout, raw.TradeDate); err != nil {
			return fmt.Errorf("tradeDate: %w", err)
		}
	}
	return nil
}

// Question is a rendered multiple choice question. CorrectAnswer indexes Options.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuizAttempt is one completed quiz.
type QuizAttempt struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Symbol         string    `json:"symbol"`
	Strategy       string    `json:"strategy,omitempty"`
	Date           time.Time `json:"date"`
	TradeDate      string    `json:"tradeDate"`
}

// Subscription mirrors the document the payment provider's webhook maintains.
type Subscription struct {
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubscriptionActive is the only status that grants premium access.
const SubscriptionActive = "active"

// IsPremium reports whether the subscription grants premium access.
func (s Subscription) IsPremium() bool {
	return s.Status == SubscriptionActive
}

// Entitlement is the cached premium flag for a user.
type Entitlement struct {
	UserID          string    `json:"userId"`
	IsPremiumActive bool      `json:"isPremiumActive"`
	LastCheckedAt   time.Time `json:"lastCheckedAt"`
}

// Quote is the subset of a market quote the service uses.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// CompanyProfile is company metadata from the market data provider.
type CompanyProfile struct {
	Ticker            string  `json:"ticker"`
	Name              string  `json:"name"`
	Industry          string  `json:"finnhubIndustry"`
	MarketCap         float64 `json:"marketCapitalization"`
	SharesOutstanding float64 `json:"shareOutstanding"`
	Employees         float64 `json:"employeeTotal"`
	Country           string  `json:"country"`
	Currency          string  `json:"currency"`
	Exchange          string  `json:"exchange"`
	IPO               string  `json:"ipo"`
	Logo              string  `json:"logo"`
	WebURL            string  `json:"weburl"`
}

// CompanySummary is the encyclopedia blurb shown next to the company card.
type CompanySummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url"`
}

// Amount is a formatted dollar figure with its human readable qualifier.
type Amount struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Metrics summarizes a position at expiration, in dollars per contract.
type Metrics struct {
	BreakEven       float64 `json:"breakEven"`
	MaxProfit       float64 `json:"maxProfit"`
	MaxLoss         float64 `json:"maxLoss"`
	UnlimitedProfit bool    `json:"unlimitedProfit"`
	UnlimitedLoss   bool    `json:"unlimitedLoss"`
}

// PayoffPoint is one sample of the profit/loss curve.
type PayoffPoint struct {
	Price     float64 `json:"price"`
	PL        float64 `json:"pl"`
	PLPercent float64 `json:"plPercent"`
}
