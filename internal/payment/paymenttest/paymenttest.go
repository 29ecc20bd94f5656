// Package paymenttest provides an in-process payment.Provider and helpers for
// producing signed webhook deliveries.
package paymenttest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/stripe/stripe-go/v76/webhook"

	"foodapp/internal/payment"
)

// Provider records checkout requests and verifies webhooks with the same
// code path as the Stripe provider.
type Provider struct {
	Secret string
	// Err, when set, is returned by CreateCheckoutSession.
	Err error

	mu       sync.Mutex
	requests []payment.CheckoutRequest
}

func New(secret string) *Provider {
	return &Provider{Secret: secret}
}

func (p *Provider) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (*payment.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}
	p.requests = append(p.requests, req)

	var total int64
	for _, item := range req.LineItems {
		total += item.UnitAmount * item.Quantity
	}
	id := fmt.Sprintf("cs_test_%d", len(p.requests))
	return &payment.Session{
		ID:          id,
		URL:         "https://checkout.stripe.test/c/pay/" + id,
		AmountTotal: total,
	}, nil
}

func (p *Provider) ParseWebhook(payload []byte, signature string) (*payment.Event, error) {
	return payment.ParseStripeEvent(payload, signature, p.Secret)
}

// Requests returns a copy of every checkout request received so far.
func (p *Provider) Requests() []payment.CheckoutRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]payment.CheckoutRequest(nil), p.requests...)
}

// Sign builds a Stripe-Signature header for payload.
func Sign(payload []byte, secret string, at time.Time) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})
	return signed.Header
}

// CompletedEvent builds a checkout.session.completed payload for a session
// created from req.
func CompletedEvent(eventID, sessionID, paymentStatus string, amountTotal int64, req payment.CheckoutRequest) []byte {
	event := map[string]any{
		"id":     eventID,
		"object": "event",
		"type":   payment.EventCheckoutSessionCompleted,
		"data": map[string]any{
			"object": map[string]any{
				"id":             sessionID,
				"object":         "checkout.session",
				"amount_total":   amountTotal,
				"payment_status": paymentStatus,
				"customer_email": req.CustomerEmail,
				"metadata":       req.Metadata,
			},
		},
	}
	payload, err := json.Marshal(event)
	if err != nil {
		panic(err)
	}
	return payload
}
