package strategy

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"options-quiz-service/internal/domain"
)

func sampleInputs(kind domain.StrategyKind, future float64) Inputs {
	in := Inputs{
		Symbol:     "AAPL",
		Spot:       100,
		Strike:     105,
		Premium:    3,
		Future:     future,
		TradeDate:  time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		Expiration: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	switch kind {
	case domain.CashSecuredPut, domain.ProtectivePut, domain.LongPut, domain.PutSpread:
		in.Strike = 95
	}
	return in
}

func TestLongCallFormulas(t *testing.T) {
	s, err := Lookup(domain.LongCall)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	in := sampleInputs(domain.LongCall, 120)

	m := s.Metrics(in)
	if m.BreakEven != 108 {
		t.Fatalf("expected break-even 108, got %v", m.BreakEven)
	}
	if m.MaxLoss != 300 {
		t.Fatalf("expected max loss 300, got %v", m.MaxLoss)
	}
	if !m.UnlimitedProfit {
		t.Fatalf("expected unlimited profit")
	}
	if got := s.Profit(in, 120); got != 1200 {
		t.Fatalf("expected profit 1200 at 120, got %v", got)
	}
	if got := s.Profit(in, in.Strike); got != -300 {
		t.Fatalf("expiring at the strike should lose the premium, got %v", got)
	}
}

func TestLongPutAtStrikeIsNotInTheMoney(t *testing.T) {
	s, _ := Lookup(domain.LongPut)
	in := sampleInputs(domain.LongPut, 95)
	if got := s.Profit(in, in.Strike); got != -300 {
		t.Fatalf("expected premium loss at the strike, got %v", got)
	}
}

func TestCashSecuredPutAmounts(t *testing.T) {
	in := Inputs{Symbol: "MSFT", Spot: 100, Strike: 95, Premium: 2, Future: 90}
	s, _ := Lookup(domain.CashSecuredPut)

	if got := usd(s.Metrics(in).BreakEven); got != "$93.00" {
		t.Fatalf("expected $93.00, got %s", got)
	}
	capital := RequiredCapital(domain.CashSecuredPut, in)
	if capital.Amount != "9500.00" || capital.Description != "(cash to buy 100 shares)" {
		t.Fatalf("unexpected capital %+v", capital)
	}
	if got := money(s.Metrics(in).MaxProfit); got != "200.00" {
		t.Fatalf("expected max gain 200.00, got %s", got)
	}
}

func TestBreakEvenHasZeroProfit(t *testing.T) {
	for _, s := range All() {
		in := sampleInputs(s.Kind(), 100)
		be := s.Metrics(in).BreakEven
		if got := s.Profit(in, be); math.Abs(got) > 0.01 {
			t.Fatalf("%s: profit at break-even %v is %v", s.Kind(), be, got)
		}
	}
}

func TestQuestionsHaveExactlyOneCorrectOption(t *testing.T) {
	counts := map[domain.StrategyKind]int{
		domain.LongCall:    8,
		domain.CoveredCall: 6,
		domain.Collar:      6,
	}
	for _, s := range All() {
		for _, future := range []float64{70, 95, 100, 105, 108, 130} {
			in := sampleInputs(s.Kind(), future)
			drafted := s.Questions(in)
			questions, err := Render(drafted, rand.New(rand.NewSource(7)))
			if err != nil {
				t.Fatalf("%s at %v: %v", s.Kind(), future, err)
			}
			want, ok := counts[s.Kind()]
			if !ok {
				want = 10
			}
			if len(questions) != want {
				t.Fatalf("%s: expected %d questions, got %d", s.Kind(), want, len(questions))
			}
			for i, q := range questions {
				if q.ID != i+1 {
					t.Fatalf("%s: expected id %d, got %d", s.Kind(), i+1, q.ID)
				}
				if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
					t.Fatalf("%s q%d: correct index %d out of range", s.Kind(), q.ID, q.CorrectAnswer)
				}
				if q.Options[q.CorrectAnswer] != correctText(drafted[i]) {
					t.Fatalf("%s q%d: correct index points at %q", s.Kind(), q.ID, q.Options[q.CorrectAnswer])
				}
			}
		}
	}
}

func correctText(d Draft) string {
	for _, o := range d.Options {
		if o.Correct {
			return o.Text
		}
	}
	return ""
}

func TestRenderRejectsAmbiguousDraft(t *testing.T) {
	d := ask("q", "e", right("a"), right("b"))
	if _, err := Render([]Draft{d}, NewShuffler(1)); err == nil {
		t.Fatalf("expected error for two correct options")
	}
}

func TestCapitalIsPure(t *testing.T) {
	in := sampleInputs(domain.Collar, 100)
	first := RequiredCapital(domain.Collar, in)
	second := RequiredCapital(domain.Collar, in)
	if first != second {
		t.Fatalf("capital changed between calls: %+v vs %+v", first, second)
	}
	if first.Amount != "10000.00" {
		t.Fatalf("expected 10000.00, got %s", first.Amount)
	}
	inv := InitialInvestment(domain.Collar, in)
	if inv.Description != "net credit received" || inv.Amount != "60.00" {
		t.Fatalf("unexpected collar investment %+v", inv)
	}
}

func TestUnknownStrategyFallsBackToZero(t *testing.T) {
	in := sampleInputs(domain.LongCall, 100)
	want := domain.Amount{Amount: "0.00", Description: ""}
	if got := RequiredCapital("BOGUS", in); got != want {
		t.Fatalf("expected zero amount, got %+v", got)
	}
	if got := InitialInvestment(domain.OptionsTheory, in); got != want {
		t.Fatalf("expected zero amount for options theory, got %+v", got)
	}
	if _, err := Lookup("BOGUS"); !errors.Is(err, domain.ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestLookupIgnoresCase(t *testing.T) {
	s, err := Lookup("long_call")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if s.Kind() != domain.LongCall {
		t.Fatalf("expected LONG_CALL, got %s", s.Kind())
	}
}

func TestParseInputs(t *testing.T) {
	in, err := ParseInputs(RawInputs{
		Symbol:         " aapl ",
		StockPrice:     "100",
		StrikePrice:    "105",
		Premium:        "3",
		FuturePrice:    "120.5",
		ExpirationDate: "2024-12-01",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Symbol != "AAPL" || in.Future != 120.5 || in.Expiration.Day() != 1 {
		t.Fatalf("unexpected inputs %+v", in)
	}
	if !in.TradeDate.IsZero() {
		t.Fatalf("expected empty trade date")
	}

	bad := []RawInputs{
		{Symbol: "AAPL", StockPrice: "abc", StrikePrice: "1", Premium: "1", FuturePrice: "1"},
		{Symbol: "AAPL", StockPrice: "1", StrikePrice: "-1", Premium: "1", FuturePrice: "1"},
		{Symbol: "AAPL", StockPrice: "1", StrikePrice: "1", Premium: "NaN", FuturePrice: "1"},
		{Symbol: "", StockPrice: "1", StrikePrice: "1", Premium: "1", FuturePrice: "1"},
		{Symbol: "AAPL", StockPrice: "1", StrikePrice: "1", Premium: "1", FuturePrice: "1", TradeDate: "11/01/2024"},
	}
	for i, raw := range bad {
		if _, err := ParseInputs(raw); !errors.Is(err, domain.ErrInvalidScenario) {
			t.Fatalf("case %d: expected ErrInvalidScenario, got %v", i, err)
		}
	}
}

func TestChartRange(t *testing.T) {
	s, _ := Lookup(domain.CoveredCall)
	in := sampleInputs(domain.CoveredCall, 100)

	var points []domain.PayoffPoint
	for p := range Chart(s, in) {
		points = append(points, p)
	}
	if len(points) != ChartPoints {
		t.Fatalf("expected %d points, got %d", ChartPoints, len(points))
	}
	if points[0].Price != 80 || points[len(points)-1].Price != 126 {
		t.Fatalf("unexpected range %v..%v", points[0].Price, points[len(points)-1].Price)
	}
	last := points[len(points)-1]
	if last.PL != 800 || last.PLPercent != 8 {
		t.Fatalf("expected capped profit 800 (8%%), got %+v", last)
	}
}

func TestChartStopsEarly(t *testing.T) {
	s, _ := Lookup(domain.LongCall)
	n := 0
	for range Chart(s, sampleInputs(domain.LongCall, 100)) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("expected 3 points, got %d", n)
	}
}

func TestMoneyNonFinite(t *testing.T) {
	if got := money(math.Inf(1)); got != "Infinity" {
		t.Fatalf("expected Infinity, got %s", got)
	}
	if got := money(math.NaN()); got != "NaN" {
		t.Fatalf("expected NaN, got %s", got)
	}
	if got := money(-12.5); got != "-12.50" {
		t.Fatalf("expected -12.50, got %s", got)
	}
}
