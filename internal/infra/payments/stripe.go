package payments

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"options-quiz-service/internal/app"
)

// sessionAPI is the part of the checkout session client used here.
type sessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeCheckout implements app.CheckoutProvider with hosted checkout pages.
type StripeCheckout struct {
	sessions sessionAPI
}

func NewStripeCheckout(secretKey string) *StripeCheckout {
	return &StripeCheckout{
		sessions: session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
	}
}

func (s *StripeCheckout) CreateCheckout(ctx context.Context, req app.CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(req.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.UserID),
	}
	params.Context = ctx
	params.AddMetadata("userId", req.UserID)

	cs, err := s.sessions.New(params)
	if err != nil {
		return "", err
	}
	if cs.URL == "" {
		return "", errors.New("checkout session has no url")
	}
	return cs.URL, nil
}

func (s *StripeCheckout) GetCheckout(ctx context.Context, sessionID string) (app.CheckoutStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	cs, err := s.sessions.Get(sessionID, params)
	if err != nil {
		return app.CheckoutStatus{}, err
	}
	userID := cs.Metadata["userId"]
	if userID == "" {
		userID = cs.ClientReferenceID
	}
	return app.CheckoutStatus{
		SessionID: cs.ID,
		UserID:    userID,
		Paid:      cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}, nil
}
