package http

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"options-quiz-service/internal/app"
	"options-quiz-service/internal/auth"
	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/strategy"
)

// Handler serves the JSON API.
type Handler struct {
	quizzes  *app.QuizService
	market   *app.MarketService
	entitle  *app.EntitlementService
	checkout *app.CheckoutService
	log      logrus.FieldLogger
}

func NewHandler(quizzes *app.QuizService, market *app.MarketService, entitle *app.EntitlementService, checkout *app.CheckoutService, log logrus.FieldLogger) *Handler {
	return &Handler{quizzes: quizzes, market: market, entitle: entitle, checkout: checkout, log: log}
}

type strategyInfo struct {
	Kind        domain.StrategyKind `json:"kind"`
	Label       string              `json:"label"`
	Description string              `json:"description"`
	Premium     bool                `json:"premium"`
}

func (h *Handler) Strategies(w http.ResponseWriter, r *http.Request) {
	all := strategy.All()
	out := make([]strategyInfo, 0, len(all))
	for _, s := range all {
		out = append(out, strategyInfo{Kind: s.Kind(), Label: s.Label(), Description: s.Description(), Premium: s.Premium()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	q, err := h.market.Quote(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) Company(w http.ResponseWriter, r *http.Request) {
	card, err := h.market.Company(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *Handler) Scenario(w http.ResponseWriter, r *http.Request) {
	var req app.ScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.quizzes.NewScenario(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req app.ScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}
	quiz, err := h.quizzes.Generate(r.Context(), auth.UserFromContext(r.Context()), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

type payoffResponse struct {
	Strategy domain.StrategyKind  `json:"strategy"`
	Points   []domain.PayoffPoint `json:"points"`
}

func (h *Handler) Payoff(w http.ResponseWriter, r *http.Request) {
	strat, err := strategy.Lookup(domain.StrategyKind(r.URL.Query().Get("strategy")))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	in, err := queryInputs(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, payoffResponse{
		Strategy: strat.Kind(),
		Points:   slices.Collect(strategy.Chart(strat, in)),
	})
}

type capitalResponse struct {
	Strategy   domain.StrategyKind `json:"strategy"`
	Capital    domain.Amount       `json:"requiredCapital"`
	Investment domain.Amount       `json:"initialInvestment"`
}

// Capital answers with zero amounts for unknown strategy names.
func (h *Handler) Capital(w http.ResponseWriter, r *http.Request) {
	in, err := queryInputs(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	kind := domain.StrategyKind(r.URL.Query().Get("strategy"))
	writeJSON(w, http.StatusOK, capitalResponse{
		Strategy:   kind,
		Capital:    strategy.RequiredCapital(kind, in),
		Investment: strategy.InitialInvestment(kind, in),
	})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.quizzes.History(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}

type scoreRequest struct {
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Symbol         string `json:"symbol"`
	Strategy       string `json:"strategy"`
	TradeDate      string `json:"tradeDate"`
}

func (h *Handler) RecordScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !h.decode(w, r, &req) {
		return
	}
	attempt, err := h.quizzes.RecordScore(r.Context(), domain.QuizAttempt{
		UserID:         auth.UserFromContext(r.Context()),
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Symbol:         req.Symbol,
		Strategy:       req.Strategy,
		TradeDate:      req.TradeDate,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, attempt)
}

func (h *Handler) Entitlement(w http.ResponseWriter, r *http.Request) {
	premium := h.entitle.Check(r.Context(), auth.UserFromContext(r.Context()))
	writeJSON(w, http.StatusOK, map[string]bool{"isPremium": premium})
}

type checkoutRequest struct {
	UserID  string `json:"userId"`
	PriceID string `json:"priceId"`
}

func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !h.decode(w, r, &req) {
		return
	}
	userID := auth.UserFromContext(r.Context())
	if userID == "" {
		userID = req.UserID
	}
	url, err := h.checkout.CreateSession(r.Context(), userID, req.PriceID)
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			h.log.WithError(err).WithField("user_id", userID).Error("checkout session failed")
			msg = "could not start checkout"
		}
		writeJSON(w, status, errorPayload{Message: msg})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	res, err := h.checkout.Confirm(r.Context(), auth.UserFromContext(r.Context()), r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid request body"})
		return false
	}
	return true
}

// queryInputs reads a fully specified scenario from the query string.
func queryInputs(r *http.Request) (strategy.Inputs, error) {
	q := r.URL.Query()
	return strategy.ParseInputs(strategy.RawInputs{
		Symbol:         q.Get("symbol"),
		StockPrice:     q.Get("stockPrice"),
		StrikePrice:    q.Get("strikePrice"),
		Premium:        q.Get("premium"),
		FuturePrice:    q.Get("futurePrice"),
		ExpirationDate: q.Get("expirationDate"),
		TradeDate:      q.Get("tradeDate"),
	})
}
