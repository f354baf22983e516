package logger

import (
	"github.com/shopspring/decimal"
)

func (l Logger) TemplPaymentErr(message string, errorId string, paymentId string, amount decimal.Decimal, currency string, uri string, merchantId string, ip string) string {
	l.Error(message, templateSkip, "payment_id", paymentId, "amount", amount.String(), "currency", currency, "uri", uri, "error_id", errorId, "ip", ip, "merchant_id", merchantId)
	return errorId
}

func (l Logger) TemplPaymentInfo(message string, errorId string, paymentId string, amount decimal.Decimal, currency string, uri string, merchantId string, ip string) string {
	l.Info(message, templateSkip, "payment_id", paymentId, "amount", amount.String(), "currency", currency, "uri", uri, "error_id", errorId, "ip", ip, "merchant_id", merchantId)
	return errorId
}

// use only for fatal errors
func (l Logger) TemplHTTPError(message string, ipv4 string, err error) {
	l.Fatal(message, templateSkip, "error", err.Error(), "ipv4", ipv4)
}

func (l Logger) TemplWebhookErr(message, eventType string, eventId string, attempt int, payload []byte) {
	l.Error(message, templateSkip, "event_type", eventType, "event_id", eventId, "attempt", attempt, "payload", string(payload))
}

func (l Logger) TemplWebhookInfo(message, eventType string, eventId string, attempt int) {
	l.Info(message, templateSkip, "event_type", eventType, "event_id", eventId, "attempt", attempt)
}
