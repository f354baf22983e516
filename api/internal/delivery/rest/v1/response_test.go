package v1

import (
	"gateway/api/internal/domain"
	"testing"
	"time"
)

func TestToResponseWebhookEventDecodesPayload(t *testing.T) {
	event := &domain.WebhookEvents{
		EventID:   "e1",
		EventType: "payment.completed",
		Payload:   `{"payment_id":"p1","merchant_id":"m1","amount":"10.50","currency":"BRL","status":"completed"}`,
		Status:    domain.WEBHOOK_SUCCESS,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	resp := toResponseWebhookEvent(event)
	if resp.Payload == nil {
		t.Fatal("expected decoded payload")
	}
	if resp.Payload.PaymentID != "p1" || resp.Payload.Amount != "10.50" {
		t.Fatalf("unexpected payload: %+v", resp.Payload)
	}

	// an undecodable payload is omitted, not an error
	event.Payload = "not json"
	resp = toResponseWebhookEvent(event)
	if resp.Payload != nil {
		t.Fatalf("expected nil payload, got %+v", resp.Payload)
	}
}
