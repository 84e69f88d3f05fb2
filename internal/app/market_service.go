package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"options-quiz-service/internal/domain"
)

// CompanyCard is everything the company panel shows.
type CompanyCard struct {
	Profile   domain.CompanyProfile `json:"profile"`
	Quote     domain.Quote          `json:"quote"`
	Summary   domain.CompanySummary `json:"summary"`
	MarketCap string                `json:"marketCap"`
	Employees string                `json:"employees"`
}

// MarketService serves quotes and company details.
type MarketService struct {
	quotes    QuoteSource
	profiles  ProfileRepository
	summaries SummarySource
	log       logrus.FieldLogger
}

func NewMarketService(quotes QuoteSource, profiles ProfileRepository, summaries SummarySource, log logrus.FieldLogger) *MarketService {
	return &MarketService{quotes: quotes, profiles: profiles, summaries: summaries, log: log}
}

func (s *MarketService) Quote(ctx context.Context, symbol string) (domain.Quote, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return domain.Quote{}, fmt.Errorf("%w: symbol is required", domain.ErrInvalidRequest)
	}
	return s.quotes.Quote(ctx, symbol)
}

// Company loads the profile and quote concurrently, then the summary. A
// missing summary never fails the card.
func (s *MarketService) Company(ctx context.Context, symbol string) (CompanyCard, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return CompanyCard{}, fmt.Errorf("%w: symbol is required", domain.ErrInvalidRequest)
	}

	var card CompanyCard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profiles.GetProfile(gctx, symbol)
		card.Profile = p
		return err
	})
	g.Go(func() error {
		q, err := s.quotes.Quote(gctx, symbol)
		card.Quote = q
		return err
	})
	if err := g.Wait(); err != nil {
		return CompanyCard{}, err
	}

	card.MarketCap = FormatMarketCap(card.Profile.MarketCap)
	card.Employees = FormatEmployees(card.Profile.Employees)

	if s.summaries != nil && card.Profile.Name != "" {
		summary, err := s.summaries.Summary(ctx, card.Profile.Name)
		if err != nil {
			s.log.WithError(err).WithField("symbol", symbol).Warn("company summary unavailable")
		} else {
			card.Summary = summary
		}
	}
	return card, nil
}

// FormatMarketCap renders a market cap given in millions as $T, $B or $M.
func FormatMarketCap(millions float64) string {
	switch {
	case millions <= 0:
		return "N/A"
	case millions >= 1_000_000:
		return "$" + strconv.FormatFloat(millions/1_000_000, 'f', 2, 64) + "T"
	case millions >= 1_000:
		return "$" + strconv.FormatFloat(millions/1_000, 'f', 2, 64) + "B"
	default:
		return "$" + strconv.FormatFloat(millions, 'f', 2, 64) + "M"
	}
}

// FormatEmployees renders head counts of a thousand or more as 12.3k.
func FormatEmployees(n float64) string {
	switch {
	case n <= 0:
		return "N/A"
	case n >= 1000:
		return strconv.FormatFloat(n/1000, 'f', 1, 64) + "k"
	default:
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
