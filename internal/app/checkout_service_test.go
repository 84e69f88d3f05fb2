package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"options-quiz-service/internal/app"
	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/infra/memory"
)

type stubProvider struct {
	lastReq app.CheckoutRequest
	status  app.CheckoutStatus
	err     error
}

func (p *stubProvider) CreateCheckout(_ context.Context, req app.CheckoutRequest) (string, error) {
	p.lastReq = req
	if p.err != nil {
		return "", p.err
	}
	return "https://checkout.example/session", nil
}

func (p *stubProvider) GetCheckout(_ context.Context, id string) (app.CheckoutStatus, error) {
	if p.err != nil {
		return app.CheckoutStatus{}, p.err
	}
	return p.status, nil
}

func newCheckout(p *stubProvider) (*app.CheckoutService, *app.EntitlementService) {
	log := quietLogger()
	ents := app.NewEntitlementService(memory.NewSubscriptionStore(), memory.NewEntitlementCache(), time.Hour, log)
	return app.NewCheckoutService(p, ents, "price_default", "https://quiz.example/", 0, log), ents
}

func TestCreateSessionBuildsReturnURLs(t *testing.T) {
	p := &stubProvider{}
	svc, _ := newCheckout(p)

	url, err := svc.CreateSession(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if url != "https://checkout.example/session" {
		t.Fatalf("unexpected url %q", url)
	}
	if p.lastReq.PriceID != "price_default" {
		t.Fatalf("expected default price, got %q", p.lastReq.PriceID)
	}
	if p.lastReq.SuccessURL != "https://quiz.example/success?session_id={CHECKOUT_SESSION_ID}" || p.lastReq.CancelURL != "https://quiz.example/" {
		t.Fatalf("unexpected return urls %+v", p.lastReq)
	}

	if _, err := svc.CreateSession(context.Background(), "", "price_x"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}

	p.err = errors.New("card network down")
	if _, err := svc.CreateSession(context.Background(), "user-1", "price_x"); err == nil {
		t.Fatalf("expected provider error")
	}
}

func TestConfirmActivatesOnlyPaidSessionsOfTheUser(t *testing.T) {
	ctx := context.Background()

	p := &stubProvider{status: app.CheckoutStatus{SessionID: "cs_1", UserID: "someone-else", Paid: true}}
	svc, _ := newCheckout(p)
	res, err := svc.Confirm(ctx, "user-1", "cs_1")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if res.IsPremium {
		t.Fatalf("checkout of another user must not grant premium")
	}

	p.status = app.CheckoutStatus{SessionID: "cs_2", UserID: "user-1", Paid: false}
	if res, _ = svc.Confirm(ctx, "user-1", "cs_2"); res.IsPremium {
		t.Fatalf("unpaid checkout must not grant premium")
	}

	p.status = app.CheckoutStatus{SessionID: "cs_3", UserID: "user-1", Paid: true}
	res, err = svc.Confirm(ctx, "user-1", "cs_3")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !res.IsPremium || res.RedirectTo != "/" || res.RedirectAfterSeconds != app.DefaultRedirectSeconds {
		t.Fatalf("unexpected result %+v", res)
	}

	if _, err := svc.Confirm(ctx, "", "cs_3"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestConfirmSurvivesProviderLookupFailure(t *testing.T) {
	p := &stubProvider{err: errors.New("timeout")}
	svc, ents := newCheckout(p)
	if err := ents.SetPremium(context.Background(), "user-1", true); err != nil {
		t.Fatalf("set premium: %v", err)
	}
	res, err := svc.Confirm(context.Background(), "user-1", "cs_1")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !res.IsPremium {
		t.Fatalf("expected stored entitlement to be reported")
	}
}
