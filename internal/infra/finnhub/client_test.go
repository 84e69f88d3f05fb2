package finnhub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"options-quiz-service/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := DefaultHTTPConfig("test-key")
	cfg.BaseURL = srv.URL
	cfg.RateLimiter = nil
	return NewClient(cfg)
}

func TestQuote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "AAPL" || r.URL.Query().Get("token") != "test-key" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"c":227.48,"d":1.2,"dp":0.53,"h":228,"l":225,"o":226,"pc":226.28,"t":1730462400}`))
	})

	q, err := c.Quote(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Symbol != "AAPL" || q.Current != 227.48 || q.PreviousClose != 226.28 {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestQuoteZeroPriceIsNoData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0,"t":0}`))
	})

	_, err := c.Quote(context.Background(), "NOPE")
	if !errors.Is(err, domain.ErrNoQuoteData) {
		t.Fatalf("expected ErrNoQuoteData, got %v", err)
	}
}

func TestQuoteUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Quote(context.Background(), "AAPL")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestLoadProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/profile2" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") == "AAPL" {
			_, _ = w.Write([]byte(`{"ticker":"AAPL","name":"Apple Inc","finnhubIndustry":"Technology","marketCapitalization":3685993.47,"employeeTotal":161000}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})

	p, err := c.LoadProfile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Name != "Apple Inc" || p.Industry != "Technology" || p.Employees != 161000 {
		t.Fatalf("unexpected profile %+v", p)
	}

	if _, err := c.LoadProfile(context.Background(), "ZZZZ"); !errors.Is(err, domain.ErrNoProfileData) {
		t.Fatalf("expected ErrNoProfileData, got %v", err)
	}
}
