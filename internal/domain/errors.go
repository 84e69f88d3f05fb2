package domain

import "errors"

var (
	// ErrNoQuoteData is returned when the quote endpoint has no current price for a symbol.
	ErrNoQuoteData = errors.New("no data available")
	// ErrNoProfileData is returned when the profile endpoint returns an empty document.
	ErrNoProfileData = errors.New("no company profile available")
	// ErrInvalidScenario indicates missing or non-numeric scenario fields.
	ErrInvalidScenario = errors.New("invalid scenario")
	// ErrInvalidRequest indicates a malformed request outside scenario fields.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUpstream wraps transport or status failures from market data providers.
	ErrUpstream = errors.New("upstream service unavailable")
	// ErrUnknownStrategy indicates a strategy name outside the supported set.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrPremiumRequired is returned when a gated strategy is requested without an entitlement.
	ErrPremiumRequired = errors.New("premium subscription required")
	// ErrUnauthenticated is returned when an operation needs a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrSessionNotFound is returned when a quiz walkthrough has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuestionNotFound indicates an answer for a question outside the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates an answer index outside the question's options.
	ErrOptionNotFound = errors.New("option not found")
	// ErrAlreadyAnswered indicates a second answer for the same question.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrSessionCompleted indicates an answer after the last question.
	ErrSessionCompleted = errors.New("quiz already completed")
	// ErrSubscriptionNotFound is returned by subscription stores for unknown users.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrPaymentNotCompleted is returned when a checkout session is unpaid or belongs to another user.
	ErrPaymentNotCompleted = errors.New("payment not completed")
)
