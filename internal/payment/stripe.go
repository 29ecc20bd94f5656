package payment

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"foodapp/internal/apperr"
)

// Stripe implements Provider with hosted Stripe Checkout.
type Stripe struct {
	api           *client.API
	webhookSecret string
}

func NewStripe(secretKey, webhookSecret string) *Stripe {
	return &Stripe{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
	}
}

func (s *Stripe) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		LineItems:          make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems)),
	}
	params.Context = ctx

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if len(req.AllowedCountries) > 0 {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(req.AllowedCountries),
		}
	}

	for _, item := range req.LineItems {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Image != "" {
			product.Images = stripe.StringSlice([]string{item.Image})
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		log.Println("[PAYMENT] [ERROR] checkout session creation failed:", err)
		return nil, wrapProviderError(err)
	}

	log.Println("[PAYMENT] [INFO] checkout session created:", session.ID)
	return &Session{
		ID:          session.ID,
		URL:         session.URL,
		AmountTotal: session.AmountTotal,
	}, nil
}

func (s *Stripe) ParseWebhook(payload []byte, signature string) (*Event, error) {
	return ParseStripeEvent(payload, signature, s.webhookSecret)
}

// ParseStripeEvent verifies a Stripe-Signature header and decodes the event.
// Events from any API version are accepted; only the checkout session fields
// read below need to be stable.
func ParseStripeEvent(payload []byte, signature, secret string) (*Event, error) {
	if secret == "" {
		return nil, ErrInvalidSignature.WithMessage("webhook secret is not configured")
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, ErrInvalidSignature.WithMessage(err.Error())
		}
		return nil, ErrMalformedEvent.WithMessage(err.Error())
	}

	out := &Event{ID: event.ID, Type: string(event.Type)}
	if out.Type != EventCheckoutSessionCompleted {
		return out, nil
	}
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return nil, ErrMalformedEvent.WithMessage("event has no data")
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, ErrMalformedEvent.WithMessage("checkout session could not be decoded")
	}

	email := session.CustomerEmail
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		email = session.CustomerDetails.Email
	}
	out.Session = &CompletedSession{
		ID:            session.ID,
		AmountTotal:   session.AmountTotal,
		PaymentStatus: string(session.PaymentStatus),
		CustomerEmail: email,
		Metadata:      session.Metadata,
	}
	return out, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

func wrapProviderError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 {
		log.Printf("[PAYMENT] [ERROR] provider rejected request: type=%s code=%s", stripeErr.Type, stripeErr.Code)
	}
	return apperr.Wrap(ErrProvider, err)
}
