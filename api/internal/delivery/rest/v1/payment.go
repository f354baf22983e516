package v1

import (
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"gateway/api/internal/repository"
	"gateway/api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// POST /{version}/payment/create
func (h *Handler) paymentCreate(c *gin.Context) {
	var errid = logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	data, ok := filterPaymentQuery(c)
	if !ok || data == nil {
		return
	}

	payment, err := h.services.Payments.Create(service.CreatePayment{
		Amount:          data.Amount,
		Currency:        data.Currency,
		MerchantID:      merchant.MerchantID,
		UserID:          data.UserID,
		PaymentMethodID: data.PaymentMethodID,
		QrID:            data.QrID,
	})
	if err != nil {
		status := domain.GetStatusByErr(err)
		if status == http.StatusInternalServerError {
			responseErr(c, status, domain.ErrMsgInternalServerError, errid)
			h.log.TemplPaymentErr("payment create error: "+err.Error(), errid, logger.NA, data.Amount, data.Currency, c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
			return
		}
		responseErr(c, status, err.Error(), "")
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responsePaymentOK{
		Error:   false,
		Payment: toResponsePayment(payment),
	})

	h.log.TemplPaymentInfo("new payment created", errid, payment.PaymentID, payment.Amount, payment.Currency.ToString(), c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
}

// POST /{version}/payment/info
func (h *Handler) paymentInfo(c *gin.Context) {
	var data struct {
		PaymentId string `json:"payment_id"`
	}

	var errid = logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}
	if data.PaymentId == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	payment, err := h.services.Payments.FindByPaymentID(data.PaymentId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	// merchants only see their own payments
	if payment.MerchantID != merchant.MerchantID {
		responseErr(c, http.StatusNotFound, domain.ErrNotFound.Error(), "")
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responsePaymentOK{
		Error:   false,
		Payment: toResponsePayment(payment),
	})
}

// POST /{version}/payment/list
func (h *Handler) paymentList(c *gin.Context) {
	var data struct {
		UserID string `json:"user_id"`
		Status string `json:"status"`
	}

	var errid = logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	filter := repository.PaymentsFilter{
		MerchantID: merchant.MerchantID,
		UserID:     data.UserID,
	}
	if data.Status != "" {
		status, ok := domain.StrToPaymentStatus(data.Status)
		if !ok {
			responseErr(c, http.StatusBadRequest, domain.ErrInvalidStatus.Error(), "")
			return
		}
		filter.Status = &status
	}

	payments, err := h.services.Payments.List(filter)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplPaymentErr("payment list error: "+err.Error(), errid, logger.NA, decimal.Zero, logger.NA, c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
		return
	}

	resp := responsePaymentList{Error: false, Payments: []responsePayment{}}
	for i := range payments {
		resp.Payments = append(resp.Payments, toResponsePayment(&payments[i]))
	}

	c.AbortWithStatusJSON(http.StatusOK, resp)
}

// POST /{version}/payment/updateStatus
func (h *Handler) paymentUpdateStatus(c *gin.Context) {
	var data struct {
		PaymentId string `json:"payment_id"`
		Status    string `json:"status"`
	}

	var errid = logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}
	if data.PaymentId == "" || data.Status == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	payment, err := h.services.Payments.FindByPaymentID(data.PaymentId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}
	if payment.MerchantID != merchant.MerchantID {
		responseErr(c, http.StatusNotFound, domain.ErrNotFound.Error(), "")
		return
	}

	updated, err := h.services.Payments.UpdateStatus(data.PaymentId, data.Status)
	if err != nil {
		status := domain.GetStatusByErr(err)
		if status == http.StatusInternalServerError {
			responseErr(c, status, domain.ErrMsgInternalServerError, errid)
			h.log.TemplPaymentErr("payment status update error: "+err.Error(), errid, data.PaymentId, payment.Amount, payment.Currency.ToString(), c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
			return
		}
		responseErr(c, status, err.Error(), "")
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responsePaymentOK{
		Error:   false,
		Payment: toResponsePayment(updated),
	})

	h.log.TemplPaymentInfo("payment status updated to "+data.Status, errid, updated.PaymentID, updated.Amount, updated.Currency.ToString(), c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
}

func (h *Handler) initPaymentRoutes(g *gin.RouterGroup) {
	g.POST("/payment/create", h.apiKeyMiddleware(), h.paymentCreate)
	g.POST("/payment/info", h.apiKeyMiddleware(), h.paymentInfo)
	g.POST("/payment/list", h.apiKeyMiddleware(), h.paymentList)
	g.POST("/payment/updateStatus", h.apiKeyMiddleware(), h.paymentUpdateStatus)
}
