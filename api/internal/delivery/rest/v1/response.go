package v1

import (
	"gateway/api/internal/domain"
	"gateway/pkg/utils"

	"github.com/gin-gonic/gin"
)

type responseError struct {
	Error   bool   `json:"error"`
	ErrorID string `json:"error_id"`
	Msg     string `json:"msg"`
}

type responseUserCreated struct {
	Error  bool   `json:"error"`
	UserID string `json:"user_id"`
}

type responseMerchantCreated struct {
	Error      bool   `json:"error"`
	ApiKey     string `json:"api_key"`
	MerchantId string `json:"merchant_id"`
}

type responsePaymentMethod struct {
	MethodID    string `json:"method_id"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type responsePayment struct {
	PaymentID string `json:"payment_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	QrID      string `json:"qr_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

type responsePaymentOK struct {
	Error   bool            `json:"error"`
	Payment responsePayment `json:"payment"`
}

type responsePaymentList struct {
	Error    bool              `json:"error"`
	Payments []responsePayment `json:"payments"`
}

type responseQr struct {
	QrID       string `json:"qr_id"`
	CodeString string `json:"code_string"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
	ExpiresAt  string `json:"expires_at"`
	PaymentID  string `json:"payment_id,omitempty"`
	Image      string `json:"image,omitempty"` // url of the png
}

type responseQrOK struct {
	Error bool       `json:"error"`
	Qr    responseQr `json:"qr"`
}

type responseQrList struct {
	Error bool         `json:"error"`
	Qrs   []responseQr `json:"qrs"`
}

type responseWebhookEvent struct {
	EventID       string                  `json:"event_id"`
	EventType     string                  `json:"event_type"`
	PaymentID     string                  `json:"payment_id,omitempty"`
	Status        string                  `json:"status"`
	AttemptCount  int                     `json:"attempt_count"`
	NextAttemptAt string                  `json:"next_attempt_at,omitempty"`
	CreatedAt     string                  `json:"created_at"`
	Payload       *domain.PaymentSnapshot `json:"payload,omitempty"`
}

type responseWebhookEventOK struct {
	Error bool                 `json:"error"`
	Event responseWebhookEvent `json:"event"`
}

type responseWebhookEventList struct {
	Error  bool                   `json:"error"`
	Events []responseWebhookEvent `json:"events"`
}

type responseWebhookAttempt struct {
	AttemptID    string `json:"attempt_id"`
	Status       string `json:"status"`
	ResponseCode *int   `json:"response_code,omitempty"`
	ResponseBody string `json:"response_body,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type responseWebhookAttemptList struct {
	Error    bool                     `json:"error"`
	Attempts []responseWebhookAttempt `json:"attempts"`
}

const timeLayout = "2006-01-02 15:04:05"

func toResponsePayment(p *domain.Payments) responsePayment {
	return responsePayment{
		PaymentID: p.PaymentID,
		Amount:    p.Amount.String(),
		Currency:  p.Currency.ToString(),
		Status:    p.Status.ToString(),
		QrID:      p.QrID,
		CreatedAt: p.CreatedAt.Format(timeLayout),
	}
}

func toResponseQr(qr *domain.QrPayments) responseQr {
	return responseQr{
		QrID:       qr.QrID,
		CodeString: qr.CodeString,
		Amount:     qr.Amount.String(),
		Status:     qr.Status.ToString(),
		ExpiresAt:  qr.ExpiresAt.Format(timeLayout),
		PaymentID:  qr.PaymentID,
	}
}

func toResponseWebhookEvent(e *domain.WebhookEvents) responseWebhookEvent {
	resp := responseWebhookEvent{
		EventID:      e.EventID,
		EventType:    e.EventType,
		PaymentID:    e.PaymentID,
		Status:       e.Status.ToString(),
		AttemptCount: e.AttemptCount,
		CreatedAt:    e.CreatedAt.Format(timeLayout),
	}
	if e.NextAttemptAt != nil {
		resp.NextAttemptAt = e.NextAttemptAt.Format(timeLayout)
	}
	if snapshot, err := utils.Unmarshal[domain.PaymentSnapshot]([]byte(e.Payload)); err == nil {
		resp.Payload = snapshot
	}
	return resp
}

func toResponseWebhookAttempt(a *domain.WebhookAttempts) responseWebhookAttempt {
	return responseWebhookAttempt{
		AttemptID:    a.AttemptID,
		Status:       a.Status.ToString(),
		ResponseCode: a.ResponseCode,
		ResponseBody: a.ResponseBody,
		CreatedAt:    a.CreatedAt.Format(timeLayout),
	}
}

func responseErr(c *gin.Context, statusCode int, msg, errorID string) {
	c.AbortWithStatusJSON(statusCode, responseError{true, errorID, msg})
}
