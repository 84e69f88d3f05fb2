package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"options-quiz-service/internal/app"
	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/infra/memory"
)

type stubSummaries struct {
	err error
}

func (s stubSummaries) Summary(_ context.Context, name string) (domain.CompanySummary, error) {
	if s.err != nil {
		return domain.CompanySummary{}, s.err
	}
	return domain.CompanySummary{Title: name, Extract: name + " makes things."}, nil
}

func newMarket(summaries app.SummarySource) *app.MarketService {
	profiles := memory.NewProfileRepository(memory.NewStaticProfileLoader(map[string]domain.CompanyProfile{
		"AAPL": {Ticker: "AAPL", Name: "Apple Inc", MarketCap: 3685993.47, Employees: 161000},
	}), time.Minute)
	return app.NewMarketService(stubQuotes{prices: map[string]float64{"AAPL": 227.48}}, profiles, summaries, quietLogger())
}

func TestCompanyCard(t *testing.T) {
	card, err := newMarket(stubSummaries{}).Company(context.Background(), " aapl ")
	if err != nil {
		t.Fatalf("company: %v", err)
	}
	if card.Quote.Current != 227.48 || card.Profile.Name != "Apple Inc" {
		t.Fatalf("unexpected card %+v", card)
	}
	if card.MarketCap != "$3.69T" || card.Employees != "161.0k" {
		t.Fatalf("unexpected formatting %q %q", card.MarketCap, card.Employees)
	}
	if card.Summary.Title != "Apple Inc" {
		t.Fatalf("expected summary, got %+v", card.Summary)
	}
}

func TestCompanyCardWithoutSummary(t *testing.T) {
	card, err := newMarket(stubSummaries{err: errors.New("no page")}).Company(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("summary failure must not fail the card: %v", err)
	}
	if card.Summary.Title != "" {
		t.Fatalf("expected empty summary, got %+v", card.Summary)
	}
}

func TestCompanyErrors(t *testing.T) {
	m := newMarket(nil)
	if _, err := m.Company(context.Background(), "MSFT"); !errors.Is(err, domain.ErrNoProfileData) && !errors.Is(err, domain.ErrNoQuoteData) {
		t.Fatalf("expected missing data error, got %v", err)
	}
	if _, err := m.Quote(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestFormatters(t *testing.T) {
	caps := map[float64]string{
		0:          "N/A",
		512.3:      "$512.30M",
		2500:       "$2.50B",
		3685993.47: "$3.69T",
	}
	for in, want := range caps {
		if got := app.FormatMarketCap(in); got != want {
			t.Fatalf("FormatMarketCap(%v) = %q, want %q", in, got, want)
		}
	}
	employees := map[float64]string{0: "N/A", 850: "850", 12345: "12.3k"}
	for in, want := range employees {
		if got := app.FormatEmployees(in); got != want {
			t.Fatalf("FormatEmployees(%v) = %q, want %q", in, got, want)
		}
	}
}
