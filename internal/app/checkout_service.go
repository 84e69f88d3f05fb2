package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"options-quiz-service/internal/domain"
)

// DefaultRedirectSeconds is how long the success page waits before going home.
const DefaultRedirectSeconds = 3

// SuccessResult is what the post-payment page renders.
type SuccessResult struct {
	IsPremium            bool   `json:"isPremium"`
	RedirectTo           string `json:"redirectTo"`
	RedirectAfterSeconds int    `json:"redirectAfterSeconds"`
}

// CheckoutService starts payments and confirms them afterwards.
type CheckoutService struct {
	provider     CheckoutProvider
	entitlements *EntitlementService
	priceID      string
	publicURL    string
	redirectSecs int
	log          logrus.FieldLogger
}

func NewCheckoutService(provider CheckoutProvider, entitlements *EntitlementService, priceID, publicURL string, redirectSecs int, log logrus.FieldLogger) *CheckoutService {
	if redirectSecs <= 0 {
		redirectSecs = DefaultRedirectSeconds
	}
	return &CheckoutService{
		provider:     provider,
		entitlements: entitlements,
		priceID:      priceID,
		publicURL:    strings.TrimRight(publicURL, "/"),
		redirectSecs: redirectSecs,
		log:          log,
	}
}

// CreateSession returns the provider's payment page URL. An empty priceID
// uses the configured price.
func (s *CheckoutService) CreateSession(ctx context.Context, userID, priceID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: userId is required", domain.ErrInvalidRequest)
	}
	if priceID == "" {
		priceID = s.priceID
	}
	if priceID == "" {
		return "", fmt.Errorf("%w: priceId is required", domain.ErrInvalidRequest)
	}
	url, err := s.provider.CreateCheckout(ctx, CheckoutRequest{
		UserID:     userID,
		PriceID:    priceID,
		SuccessURL: s.publicURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.publicURL + "/",
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return url, nil
}

// Confirm runs when the user lands on the success page. A paid checkout that
// belongs to the user activates the subscription; the entitlement is then
// re-read from the store either way.
func (s *CheckoutService) Confirm(ctx context.Context, userID, sessionID string) (SuccessResult, error) {
	if userID == "" {
		return SuccessResult{}, domain.ErrUnauthenticated
	}
	logger := s.log.WithFields(logrus.Fields{"user_id": userID, "checkout_session": sessionID})

	if sessionID != "" {
		status, err := s.provider.GetCheckout(ctx, sessionID)
		switch {
		case err != nil:
			logger.WithError(err).Warn("checkout lookup failed")
		case status.Paid && status.UserID == userID:
			if err := s.entitlements.SetPremium(ctx, userID, true); err != nil {
				return SuccessResult{}, err
			}
			logger.Info("premium activated")
		default:
			logger.WithError(domain.ErrPaymentNotCompleted).Info("checkout not applied")
		}
	}

	premium, err := s.entitlements.Refresh(ctx, userID)
	if err != nil {
		return SuccessResult{}, err
	}
	return SuccessResult{IsPremium: premium, RedirectTo: "/", RedirectAfterSeconds: s.redirectSecs}, nil
}
