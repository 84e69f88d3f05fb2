package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"options-quiz-service/internal/domain"
)

// quoteUnavailable is shown for both unknown symbols and provider outages.
const quoteUnavailable = "Unable to fetch stock data. Please check the symbol and try again."

type errorPayload struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP statuses and client-facing messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidScenario),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrUnknownStrategy),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrAlreadyAnswered),
		errors.Is(err, domain.ErrSessionCompleted):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrPremiumRequired):
		return http.StatusPaymentRequired, err.Error()
	case errors.Is(err, domain.ErrNoQuoteData):
		return http.StatusNotFound, quoteUnavailable
	case errors.Is(err, domain.ErrNoProfileData), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, quoteUnavailable
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorPayload{Message: msg})
}
