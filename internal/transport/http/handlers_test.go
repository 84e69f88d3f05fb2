package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/strategy"
)

func doJSON(t *testing.T, method, url, token, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestStrategiesListsEveryVariant(t *testing.T) {
	env := newTestEnv(t)
	var out []strategyInfo
	if code := doJSON(t, http.MethodGet, env.server.URL+"/api/strategies", "", "", &out); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(out) != 10 {
		t.Fatalf("expected 10 strategies, got %d", len(out))
	}
	if out[0].Kind != domain.LongCall || out[0].Premium {
		t.Fatalf("expected free long call first, got %+v", out[0])
	}
}

func TestQuoteAndCompany(t *testing.T) {
	env := newTestEnv(t)

	var q domain.Quote
	if code := doJSON(t, http.MethodGet, env.server.URL+"/api/quote/aapl", "", "", &q); code != http.StatusOK || q.Current != 200 {
		t.Fatalf("unexpected quote %d %+v", code, q)
	}

	var errBody errorPayload
	if code := doJSON(t, http.MethodGet, env.server.URL+"/api/quote/NOPE", "", "", &errBody); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if errBody.Message != quoteUnavailable {
		t.Fatalf("unexpected message %q", errBody.Message)
	}

	var card struct {
		MarketCap string `json:"marketCap"`
		Employees string `json:"employees"`
	}
	if code := doJSON(t, http.MethodGet, env.server.URL+"/api/company/AAPL", "", "", &card); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if card.MarketCap != "$3.69T" || card.Employees != "161.0k" {
		t.Fatalf("unexpected card %+v", card)
	}
}

func TestGenerateQuizGatesPremiumStrategies(t *testing.T) {
	env := newTestEnv(t)

	var quiz struct {
		Scenario  domain.Scenario   `json:"scenario"`
		Questions []domain.Question `json:"questions"`
	}
	code := doJSON(t, http.MethodPost, env.server.URL+"/api/quizzes", "", `{"symbol":"AAPL","strategy":"LONG_CALL"}`, &quiz)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if quiz.Scenario.StrikePrice != 210 || quiz.Scenario.Premium != 6 || len(quiz.Questions) != 8 {
		t.Fatalf("unexpected quiz %+v", quiz.Scenario)
	}

	var errBody errorPayload
	code = doJSON(t, http.MethodPost, env.server.URL+"/api/quizzes", "", `{"symbol":"AAPL","strategy":"FIG_LEAF"}`, &errBody)
	if code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", code)
	}

	code = doJSON(t, http.MethodPost, env.server.URL+"/api/quizzes", "", `{"symbol":"AAPL","strategy":"IRON_CONDOR"}`, &errBody)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestPayoffAndCapital(t *testing.T) {
	env := newTestEnv(t)
	query := "?symbol=AAPL&stockPrice=100&strikePrice=95&premium=3&futurePrice=90"

	var payoff payoffResponse
	if code := doJSON(t, http.MethodGet, env.server.URL+"/api/payoff"+query+"&strategy=CASH_SECURED_PUT", "", "", &payoff); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(payoff.Points) != strategy.ChartPoints {
		t.Fatalf("expected %d points, got %d", strategy.ChartPoints, len(payoff.Points))
	}

	var capital capitalResponse
	if code := doJSON(t, http.MethodGet, env.server.URL+"/api/capital"+query+"&strategy=CASH_SECURED_PUT", "", "", &capital); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if capital.Capital.Amount != "9500.00" || capital.Investment.Amount != "300.00" {
		t.Fatalf("unexpected capital %+v", capital)
	}

	if code := doJSON(t, http.MethodGet, env.server.URL+"/api/capital"+query+"&strategy=UNKNOWN", "", "", &capital); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if capital.Capital.Amount != "0.00" {
		t.Fatalf("expected zero capital for unknown strategy, got %+v", capital.Capital)
	}

	var errBody errorPayload
	if code := doJSON(t, http.MethodGet, env.server.URL+"/api/payoff?symbol=AAPL&stockPrice=abc&strategy=LONG_CALL", "", "", &errBody); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestScoresRequireUser(t *testing.T) {
	env := newTestEnv(t)
	url := env.server.URL + "/api/scores"

	if code := doJSON(t, http.MethodGet, url, "", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	tok := env.token(t, "user-1")
	var saved domain.QuizAttempt
	code := doJSON(t, http.MethodPost, url, tok, `{"score":7,"totalQuestions":8,"symbol":"aapl","strategy":"long_call","tradeDate":"2024-11-01"}`, &saved)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if saved.ID == "" || saved.UserID != "user-1" || saved.Symbol != "AAPL" {
		t.Fatalf("unexpected attempt %+v", saved)
	}

	var errBody errorPayload
	if code := doJSON(t, http.MethodPost, url, tok, `{"score":9,"totalQuestions":8,"symbol":"AAPL"}`, &errBody); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}

	var history []domain.QuizAttempt
	if code := doJSON(t, http.MethodGet, url, tok, "", &history); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(history) != 1 || history[0].Score != 7 {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestCheckoutActivatesPremium(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1")

	var ent map[string]bool
	doJSON(t, http.MethodGet, env.server.URL+"/api/entitlement", tok, "", &ent)
	if ent["isPremium"] {
		t.Fatalf("expected non-premium before checkout")
	}

	var created map[string]string
	if code := doJSON(t, http.MethodPost, env.server.URL+"/api/create-checkout-session", tok, `{}`, &created); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if created["url"] != "https://checkout.example/user-1" {
		t.Fatalf("unexpected url %q", created["url"])
	}

	var success struct {
		IsPremium            bool   `json:"isPremium"`
		RedirectTo           string `json:"redirectTo"`
		RedirectAfterSeconds int    `json:"redirectAfterSeconds"`
	}
	if code := doJSON(t, http.MethodGet, env.server.URL+"/api/success?session_id=paid-user-1", tok, "", &success); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !success.IsPremium || success.RedirectTo != "/" || success.RedirectAfterSeconds != 3 {
		t.Fatalf("unexpected success %+v", success)
	}

	doJSON(t, http.MethodGet, env.server.URL+"/api/entitlement", tok, "", &ent)
	if !ent["isPremium"] {
		t.Fatalf("expected premium after checkout")
	}

	var quiz struct {
		Questions []domain.Question `json:"questions"`
	}
	if code := doJSON(t, http.MethodPost, env.server.URL+"/api/quizzes", tok, `{"symbol":"AAPL","strategy":"FIG_LEAF"}`, &quiz); code != http.StatusOK {
		t.Fatalf("expected premium quiz, got %d", code)
	}
}

func TestCreateCheckoutRequiresUser(t *testing.T) {
	env := newTestEnv(t)
	var errBody errorPayload
	if code := doJSON(t, http.MethodPost, env.server.URL+"/api/create-checkout-session", "", `{"priceId":"price_x"}`, &errBody); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
