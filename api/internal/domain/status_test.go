package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPaymentTransitions(t *testing.T) {
	tests := []struct {
		from  PaymentStatus
		to    PaymentStatus
		legal bool
	}{
		{PAYMENT_PENDING, PAYMENT_PROCESSING, true},
		{PAYMENT_PENDING, PAYMENT_COMPLETED, true},
		{PAYMENT_PENDING, PAYMENT_CANCELED, true},
		{PAYMENT_PROCESSING, PAYMENT_COMPLETED, true},
		{PAYMENT_PROCESSING, PAYMENT_FAILED, true},
		{PAYMENT_COMPLETED, PAYMENT_PENDING, false},
		{PAYMENT_COMPLETED, PAYMENT_FAILED, false},
		{PAYMENT_FAILED, PAYMENT_COMPLETED, false},
		{PAYMENT_CANCELED, PAYMENT_PROCESSING, false},
		{PAYMENT_PROCESSING, PAYMENT_PENDING, false},
	}

	for _, x := range tests {
		if got := x.from.CanTransition(x.to); got != x.legal {
			t.Fatalf("%s -> %s: want %v, got %v", x.from.ToString(), x.to.ToString(), x.legal, got)
		}
	}
}

func TestWebhookTransitions(t *testing.T) {
	tests := []struct {
		from  WebhookStatus
		to    WebhookStatus
		legal bool
	}{
		{WEBHOOK_PENDING, WEBHOOK_IN_FLIGHT, true},
		{WEBHOOK_RETRYING, WEBHOOK_IN_FLIGHT, true},
		{WEBHOOK_IN_FLIGHT, WEBHOOK_SUCCESS, true},
		{WEBHOOK_IN_FLIGHT, WEBHOOK_RETRYING, true},
		{WEBHOOK_IN_FLIGHT, WEBHOOK_FAILED, true},
		{WEBHOOK_FAILED, WEBHOOK_RETRYING, true}, // manual retry only
		{WEBHOOK_PENDING, WEBHOOK_SUCCESS, false},
		{WEBHOOK_SUCCESS, WEBHOOK_RETRYING, false},
		{WEBHOOK_SUCCESS, WEBHOOK_IN_FLIGHT, false},
		{WEBHOOK_FAILED, WEBHOOK_IN_FLIGHT, false},
	}

	for _, x := range tests {
		if got := x.from.CanTransition(x.to); got != x.legal {
			t.Fatalf("%s -> %s: want %v, got %v", x.from.ToString(), x.to.ToString(), x.legal, got)
		}
	}

	if !WEBHOOK_SUCCESS.IsTerminal() || !WEBHOOK_FAILED.IsTerminal() {
		t.Fatal("success and failed must be terminal")
	}
	if WEBHOOK_IN_FLIGHT.IsTerminal() {
		t.Fatal("in_flight must not be terminal")
	}
}

func TestQrTransitions(t *testing.T) {
	if !QR_ACTIVE.CanTransition(QR_USED) || !QR_ACTIVE.CanTransition(QR_EXPIRED) {
		t.Fatal("active must transition to used and expired")
	}
	if QR_USED.CanTransition(QR_EXPIRED) {
		t.Fatal("used code cannot expire")
	}
	if QR_EXPIRED.CanTransition(QR_USED) {
		t.Fatal("expired code cannot be used")
	}
}

func TestEventType(t *testing.T) {
	tests := []struct {
		status PaymentStatus
		want   string
	}{
		{PAYMENT_PENDING, "payment.pending"},
		{PAYMENT_PROCESSING, "payment.processing"},
		{PAYMENT_COMPLETED, "payment.completed"},
		{PAYMENT_FAILED, "payment.failed"},
		{PAYMENT_CANCELED, "payment.canceled"},
	}

	for _, x := range tests {
		if got := x.status.EventType(); got != x.want {
			t.Fatalf("want %s, got %s", x.want, got)
		}
	}
}

func TestStrToCurrency(t *testing.T) {
	if StrToCurrency("BRL") != CURRENCY_BRL {
		t.Fatal("BRL")
	}
	if StrToCurrency("JPY") != CURRENCY_NONE {
		t.Fatal("unknown currency must map to none")
	}
}

func TestSnapshotPayment(t *testing.T) {
	p := &Payments{
		PaymentID:       "pay-1",
		MerchantID:      "mer-1",
		UserID:          "usr-1",
		PaymentMethodID: "met-1",
		Amount:          decimal.NewFromFloat(10.50),
		Currency:        CURRENCY_BRL,
		Status:          PAYMENT_COMPLETED,
	}
	p.CreatedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	snap := SnapshotPayment(p)
	if snap.Amount != "10.5" || snap.Currency != "BRL" || snap.Status != "completed" {
		t.Fatalf("bad snapshot: %+v", snap)
	}
	if snap.QrID != "" {
		t.Fatal("qr id must stay empty for non-qr payments")
	}
}

func TestDeliveryResultIsSuccess(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{200, true},
		{201, true},
		{299, true},
		{199, false},
		{300, false},
		{404, false},
		{500, false},
		{0, false},
	}

	for _, x := range tests {
		if got := (DeliveryResult{Code: x.code}).IsSuccess(); got != x.want {
			t.Fatalf("code %d: want %v, got %v", x.code, x.want, got)
		}
	}
}
