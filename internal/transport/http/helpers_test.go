package http

import (
	"context"
	"io"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"options-quiz-service/internal/app"
	"options-quiz-service/internal/auth"
	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/infra/memory"
	"options-quiz-service/internal/scenario"
	"options-quiz-service/internal/strategy"
)

type fakeQuotes map[string]float64

func (f fakeQuotes) Quote(_ context.Context, symbol string) (domain.Quote, error) {
	price, ok := f[symbol]
	if !ok {
		return domain.Quote{}, domain.ErrNoQuoteData
	}
	return domain.Quote{Symbol: symbol, Current: price}, nil
}

type fakeCheckout struct{}

func (fakeCheckout) CreateCheckout(_ context.Context, req app.CheckoutRequest) (string, error) {
	return "https://checkout.example/" + req.UserID, nil
}

func (fakeCheckout) GetCheckout(_ context.Context, id string) (app.CheckoutStatus, error) {
	return app.CheckoutStatus{SessionID: id, UserID: strings.TrimPrefix(id, "paid-"), Paid: strings.HasPrefix(id, "paid-")}, nil
}

type testEnv struct {
	server   *httptest.Server
	verifier *auth.Verifier
	scores   *memory.ScoreStore
	sessions *memory.SessionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	verifier, err := auth.NewVerifier("test-secret-long-enough-for-hs256", time.Hour)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}

	quotes := fakeQuotes{"AAPL": 200}
	profiles := memory.NewProfileRepository(memory.NewStaticProfileLoader(map[string]domain.CompanyProfile{
		"AAPL": {Ticker: "AAPL", Name: "Apple Inc", MarketCap: 3685993.47, Employees: 161000},
	}), time.Minute)
	scores := memory.NewScoreStore()
	sessions := memory.NewSessionStore()
	entitlements := app.NewEntitlementService(memory.NewSubscriptionStore(), memory.NewEntitlementCache(), time.Hour, log)
	synth := scenario.NewSynthesizer(scenario.Options{Rand: rand.New(rand.NewSource(7))})

	quizzes := app.NewQuizService(quotes, synth, entitlements, scores, sessions, app.QuizOptions{
		Shuffler: strategy.NewShuffler(7),
		Logger:   log,
	})
	market := app.NewMarketService(quotes, profiles, nil, log)
	checkout := app.NewCheckoutService(fakeCheckout{}, entitlements, "price_test", "http://localhost:5173", 0, log)

	router := NewRouter(NewHandler(quizzes, market, entitlements, checkout, log), NewWSHandler(quizzes, log), verifier, log)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, verifier: verifier, scores: scores, sessions: sessions}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := e.verifier.Issue(userID, "")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}
