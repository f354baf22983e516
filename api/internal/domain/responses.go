package domain

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrMsgInternalServerError = "internal server error"
	ErrMsgBadRequest          = "bad request"
	ErrMsgParamsBadRequest    = "bad request: %s"
	ErrMsgRateLimitExceeded   = "rate limit exceeded"
	ErrMsgAccessError         = "access error"

	ErrMsgApiKeyNotFound     = "api key not found"
	ErrMsgMerchantNotFound   = "merchant not found"
	ErrMsgMerchantNameExists = "merchant with that name already exists"
	ErrMsgEmailExists        = "user with that email already exists"
)

var (
	ErrInternalServerError = errors.New(ErrMsgInternalServerError)

	ErrNotFound          = errors.New("not found")
	ErrDuplicateKey      = errors.New("duplicate unique key")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidCurrency   = errors.New("unsupported currency")
	ErrInvalidStatus     = errors.New("unknown status")
	ErrIllegalTransition = errors.New("illegal status transition")

	ErrQrCodeExpired = errors.New("qr code expired")
	ErrQrCodeUsed    = errors.New("qr code already used")

	ErrNotRetryable     = errors.New("event is not in a retryable state")
	ErrDeliveryTimeout  = errors.New("delivery timed out")
	ErrAttemptsExceeded = errors.New("max delivery attempts exceeded")
)

func GetStatusByErr(err error) (status int) {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, ErrNotRetryable):
		status = http.StatusConflict
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidCurrency),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrIllegalTransition),
		errors.Is(err, ErrQrCodeExpired),
		errors.Is(err, ErrQrCodeUsed):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	return status
}

func WrapNotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}
