package orders

import (
	"context"
	"errors"
	"log"
	"strings"

	"foodapp/internal/database"
	"foodapp/internal/models"
	"foodapp/internal/payment"
)

type WebhookResult struct {
	EventType string
	Order     *models.Order
	// Duplicate is set when the session already produced an order.
	Duplicate bool
	// Ignored is set for events that never create orders.
	Ignored bool
}

// HandleWebhook verifies a provider event and, for a paid completed checkout
// session, creates exactly one Pending order. Redelivery of the same session
// returns the existing order.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := s.payments.ParseWebhook(payload, signature)
	if err != nil {
		return nil, err
	}

	result := &WebhookResult{EventType: event.Type}
	if event.Type != payment.EventCheckoutSessionCompleted || event.Session == nil {
		log.Printf("[WEBHOOK] [INFO] ignoring event %s of type %s", event.ID, event.Type)
		result.Ignored = true
		return result, nil
	}

	session := event.Session
	if session.ID == "" {
		return nil, payment.ErrMalformedEvent.WithMessage("checkout session id is missing")
	}
	if session.PaymentStatus == "unpaid" {
		log.Printf("[WEBHOOK] [INFO] session %s completed without payment, no order created", session.ID)
		result.Ignored = true
		return result, nil
	}

	existing, err := s.orders.FindByCheckoutSession(ctx, session.ID)
	if err == nil {
		log.Printf("[WEBHOOK] [INFO] session %s already has order %s", session.ID, existing.ID.Hex())
		result.Order = existing
		result.Duplicate = true
		return result, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	snap, err := decodeMetadata(session.Metadata)
	if err != nil {
		log.Printf("[WEBHOOK] [ERROR] session %s: %v", session.ID, err)
		return nil, err
	}

	total, ok := models.CartTotal(snap.CartItems)
	if !ok || total != snap.TotalAmount || (session.AmountTotal != 0 && session.AmountTotal != total) {
		log.Printf("[WEBHOOK] [ERROR] session %s: total mismatch items=%d metadata=%d charged=%d",
			session.ID, total, snap.TotalAmount, session.AmountTotal)
		return nil, ErrTotalMismatch
	}

	delivery := snap.DeliveryDetails
	if strings.TrimSpace(delivery.Email) == "" {
		delivery.Email = session.CustomerEmail
	}

	now := s.now()
	order := &models.Order{
		User:              snap.UserID,
		Restaurant:        snap.RestaurantID,
		DeliveryDetails:   delivery,
		CartItems:         snap.CartItems,
		TotalAmount:       total,
		Status:            models.StatusPending,
		CheckoutSessionID: session.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if !errors.Is(err, database.ErrDuplicate) {
			return nil, err
		}
		// A concurrent delivery of the same event won the insert.
		existing, findErr := s.orders.FindByCheckoutSession(ctx, session.ID)
		if findErr != nil {
			return nil, findErr
		}
		result.Order = existing
		result.Duplicate = true
		return result, nil
	}

	log.Printf("[WEBHOOK] [INFO] order %s created for session %s total=%d", order.ID.Hex(), session.ID, total)
	result.Order = order
	return result, nil
}
