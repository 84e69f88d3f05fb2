package app

import (
	"context"

	"options-quiz-service/internal/domain"
)

// QuoteSource fetches live market data.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (domain.Quote, error)
}

// ProfileRepository returns company profiles, usually from a cache.
type ProfileRepository interface {
	GetProfile(ctx context.Context, symbol string) (domain.CompanyProfile, error)
}

// SummarySource looks up an encyclopedia summary for a company name.
type SummarySource interface {
	Summary(ctx context.Context, companyName string) (domain.CompanySummary, error)
}

// ScoreStore persists completed quiz attempts.
type ScoreStore interface {
	SaveAttempt(ctx context.Context, attempt domain.QuizAttempt) error
	RecentAttempts(ctx context.Context, userID string, limit int) ([]domain.QuizAttempt, error)
}

// SubscriptionStore reads and writes the per-user subscription document.
// GetSubscription returns domain.ErrSubscriptionNotFound for unknown users.
type SubscriptionStore interface {
	GetSubscription(ctx context.Context, userID string) (domain.Subscription, error)
	PutSubscription(ctx context.Context, sub domain.Subscription) error
}

// EntitlementCache holds the last known premium flag per user.
type EntitlementCache interface {
	GetEntitlement(ctx context.Context, userID string) (domain.Entitlement, bool, error)
	PutEntitlement(ctx context.Context, e domain.Entitlement) error
}

// SessionRepository abstracts how walkthrough sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Create(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// AttemptPublisher announces completed attempts to downstream consumers.
type AttemptPublisher interface {
	PublishAttempt(ctx context.Context, attempt domain.QuizAttempt) error
}

// CheckoutProvider talks to the payment provider.
type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)
	GetCheckout(ctx context.Context, sessionID string) (CheckoutStatus, error)
}

// CheckoutRequest describes a one-time payment page.
type CheckoutRequest struct {
	UserID     string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// CheckoutStatus is what the provider reports for a finished checkout page.
type CheckoutStatus struct {
	SessionID string
	UserID    string
	Paid      bool
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishAttempt(context.Context, domain.QuizAttempt) error { return nil }
