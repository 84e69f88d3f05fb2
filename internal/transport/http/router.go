package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"options-quiz-service/internal/auth"
)

// NewRouter mounts the JSON API and the walkthrough socket.
func NewRouter(h *Handler, ws *WSHandler, verifier *auth.Verifier, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(auth.Middleware(verifier, log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/auth/logout", auth.Logout)
	r.Get("/ws/quiz", ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/strategies", h.Strategies)
		r.Get("/quote/{symbol}", h.Quote)
		r.Get("/company/{symbol}", h.Company)
		r.Post("/scenarios", h.Scenario)
		r.Post("/quizzes", h.GenerateQuiz)
		r.Get("/payoff", h.Payoff)
		r.Get("/capital", h.Capital)
		r.Get("/entitlement", h.Entitlement)
		r.Post("/create-checkout-session", h.CreateCheckoutSession)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Get("/scores", h.History)
			r.Post("/scores", h.RecordScore)
			r.Get("/success", h.Success)
		})
	})
	return r
}

func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
			}).Info("request")
		})
	}
}
