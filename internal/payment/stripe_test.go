package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"

	"foodapp/internal/apperr"
)

const testSecret = "whsec_test_secret"

func sign(payload []byte, secret string, at time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	}).Header
}

const completedEvent = `{
  "id": "evt_1",
  "object": "event",
  "type": "checkout.session.completed",
  "data": {"object": {
    "id": "cs_test_1",
    "object": "checkout.session",
    "amount_total": 1300,
    "payment_status": "paid",
    "customer_details": {"email": "buyer@example.com"},
    "metadata": {"userId": "u1", "totalAmount": "1300"}
  }}
}`

func TestParseStripeEventCompletedSession(t *testing.T) {
	payload := []byte(completedEvent)

	event, err := ParseStripeEvent(payload, sign(payload, testSecret, time.Now()), testSecret)
	require.NoError(t, err)

	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, EventCheckoutSessionCompleted, event.Type)
	require.NotNil(t, event.Session)
	assert.Equal(t, "cs_test_1", event.Session.ID)
	assert.Equal(t, int64(1300), event.Session.AmountTotal)
	assert.Equal(t, "paid", event.Session.PaymentStatus)
	assert.Equal(t, "buyer@example.com", event.Session.CustomerEmail)
	assert.Equal(t, "1300", event.Session.Metadata["totalAmount"])
}

func TestParseStripeEventRejectsWrongSecret(t *testing.T) {
	payload := []byte(completedEvent)

	_, err := ParseStripeEvent(payload, sign(payload, "whsec_other", time.Now()), testSecret)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, apperr.Auth, apperr.KindOf(err))
}

func TestParseStripeEventRejectsTamperedPayload(t *testing.T) {
	payload := []byte(completedEvent)
	header := sign(payload, testSecret, time.Now())
	tampered := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_evil"}}}`)

	_, err := ParseStripeEvent(tampered, header, testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseStripeEventRejectsMissingHeaderAndStaleTimestamp(t *testing.T) {
	payload := []byte(completedEvent)

	_, err := ParseStripeEvent(payload, "", testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = ParseStripeEvent(payload, sign(payload, testSecret, time.Now().Add(-time.Hour)), testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseStripeEventRequiresConfiguredSecret(t *testing.T) {
	payload := []byte(completedEvent)

	_, err := ParseStripeEvent(payload, sign(payload, "", time.Now()), "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseStripeEventOtherTypesCarryNoSession(t *testing.T) {
	payload := []byte(`{"id":"evt_2","object":"event","type":"payment_intent.created","data":{"object":{"id":"pi_1","object":"payment_intent"}}}`)

	event, err := ParseStripeEvent(payload, sign(payload, testSecret, time.Now()), testSecret)
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.created", event.Type)
	assert.Nil(t, event.Session)
}
