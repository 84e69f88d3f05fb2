package wikipedia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("list") == "search":
			if q.Get("srsearch") != "Apple Inc company" {
				t.Errorf("unexpected search %q", q.Get("srsearch"))
			}
			_, _ = w.Write([]byte(`{"query":{"search":[{"pageid":856,"title":"Apple Inc."}]}}`))
		case q.Get("pageids") == "856":
			_, _ = w.Write([]byte(`{"query":{"pages":{"856":{"pageid":856,"title":"Apple Inc.","extract":"Apple Inc. is an American multinational technology company."}}}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	s, err := c.Summary(context.Background(), "Apple Inc")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.Title != "Apple Inc." {
		t.Fatalf("unexpected title %q", s.Title)
	}
	if s.Extract != "Apple Inc. is an American multinational technology company." {
		t.Fatalf("unexpected extract %q", s.Extract)
	}
	if s.URL != srv.URL+"/wiki/Apple_Inc." {
		t.Fatalf("unexpected url %q", s.URL)
	}
}

func TestSummaryNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Summary(context.Background(), "Nobody")
	if !errors.Is(err, ErrNoArticle) {
		t.Fatalf("expected ErrNoArticle, got %v", err)
	}
}
