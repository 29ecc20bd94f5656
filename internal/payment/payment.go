// Package payment talks to the hosted checkout provider.
package payment

import (
	"context"

	"foodapp/internal/apperr"
)

// EventCheckoutSessionCompleted is the only event type that creates orders.
const EventCheckoutSessionCompleted = "checkout.session.completed"

var (
	ErrInvalidSignature = apperr.New(apperr.Auth, "invalid_signature", "invalid webhook signature")
	ErrMalformedEvent   = apperr.New(apperr.Validation, "malformed_event", "malformed webhook event")
	ErrProvider         = apperr.New(apperr.Upstream, "payment_provider", "payment provider request failed")
)

type LineItem struct {
	Name       string
	Image      string
	UnitAmount int64
	Quantity   int64
}

type CheckoutRequest struct {
	Currency         string
	SuccessURL       string
	CancelURL        string
	CustomerEmail    string
	AllowedCountries []string
	LineItems        []LineItem
	Metadata         map[string]string
	IdempotencyKey   string
}

type Session struct {
	ID          string
	URL         string
	AmountTotal int64
}

// CompletedSession is the part of a finished checkout session the order flow
// reads back.
type CompletedSession struct {
	ID            string
	AmountTotal   int64
	PaymentStatus string
	CustomerEmail string
	Metadata      map[string]string
}

type Event struct {
	ID   string
	Type string
	// Session is set only for EventCheckoutSessionCompleted.
	Session *CompletedSession
}

type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	// ParseWebhook verifies the signature header over the raw payload before
	// decoding it. Failed verification returns ErrInvalidSignature.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
