package v1

import (
	"encoding/base64"
	"fmt"
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"gateway/api/internal/repository"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const MAX_TTL_MINUTES = 4320

// POST /{version}/qr/create
func (h *Handler) qrCreate(c *gin.Context) {
	var data struct {
		AmountFloat float64 `json:"amount"`
		TTLMinutes  int     `json:"ttl_minutes"` // 0 means the configured default
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
	if data.TTLMinutes < 0 || data.TTLMinutes > MAX_TTL_MINUTES {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "ttl_minutes out of range"), "")
		return
	}

	amount := decimal.NewFromFloat(data.AmountFloat)
	ttl := time.Duration(data.TTLMinutes) * time.Minute

	qr, err := h.services.QrPayments.Create(merchant.MerchantID, amount, ttl)
	if err != nil {
		status := domain.GetStatusByErr(err)
		if status == http.StatusInternalServerError {
			responseErr(c, status, domain.ErrMsgInternalServerError, errid)
			h.log.TemplPaymentErr("qr create error: "+err.Error(), errid, logger.NA, amount, logger.NA, c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
			return
		}
		responseErr(c, status, err.Error(), "")
		return
	}

	// pre-render the png so the image route serves from cache
	if _, err := h.services.QrCodes.New(qr.CodeString); err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplPaymentErr("qr render error: "+err.Error(), errid, logger.NA, amount, logger.NA, c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
		return
	}

	resp := toResponseQr(qr)
	resp.Image = fmt.Sprintf("%s://%s/v1/qr/image/%s", h.config.Api.Proto, h.config.Api.Ipv4, qr.QrID)

	c.AbortWithStatusJSON(http.StatusOK, responseQrOK{Error: false, Qr: resp})
}

// POST /{version}/qr/info
func (h *Handler) qrInfo(c *gin.Context) {
	var data struct {
		QrId string `json:"qr_id"`
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
	if data.QrId == "" {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "qr id is required"), "")
		return
	}

	qr, err := h.services.QrPayments.FindByQrID(data.QrId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}
	if qr.MerchantID != merchant.MerchantID {
		responseErr(c, http.StatusNotFound, domain.ErrNotFound.Error(), "")
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseQrOK{Error: false, Qr: toResponseQr(qr)})
}

// POST /{version}/qr/lookup
// resolves a scanned code string, expiring it on the spot when overdue
func (h *Handler) qrLookup(c *gin.Context) {
	var data struct {
		CodeString string `json:"code_string"`
	}

	var errid = logger.GenErrorId()

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}
	if data.CodeString == "" {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "code string is required"), "")
		return
	}

	qr, err := h.services.QrPayments.FindByCode(data.CodeString)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseQrOK{Error: false, Qr: toResponseQr(qr)})
}

// POST /{version}/qr/list
func (h *Handler) qrList(c *gin.Context) {
	var data struct {
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

	filter := repository.QrPaymentsFilter{MerchantID: merchant.MerchantID}
	if data.Status != "" {
		for i, statusName := range domain.QrStatuses {
			if data.Status == statusName {
				status := domain.QrStatus(i)
				filter.Status = &status
				break
			}
		}
		if filter.Status == nil {
			responseErr(c, http.StatusBadRequest, domain.ErrInvalidStatus.Error(), "")
			return
		}
	}

	qrs, err := h.services.QrPayments.List(filter)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplPaymentErr("qr list error: "+err.Error(), errid, logger.NA, decimal.Zero, logger.NA, c.Request.RequestURI, merchant.MerchantID, c.ClientIP())
		return
	}

	resp := responseQrList{Error: false, Qrs: []responseQr{}}
	for i := range qrs {
		resp.Qrs = append(resp.Qrs, toResponseQr(&qrs[i]))
	}

	c.AbortWithStatusJSON(http.StatusOK, resp)
}

// GET /{version}/qr/image/:qr_id
func (h *Handler) qrImage(c *gin.Context) {
	var errid = logger.GenErrorId()

	qrId := c.Param("qr_id")
	if qrId == "" {
		responseErr(c, http.StatusBadRequest, fmt.Sprintf(domain.ErrMsgParamsBadRequest, "qr id is required"), "")
		return
	}

	qr, err := h.services.QrPayments.FindByQrID(qrId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	qrCode, err := h.services.QrCodes.FindOrNew(qr.CodeString)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplPaymentErr("qr code find or new error: "+err.Error(), errid, logger.NA, qr.Amount, logger.NA, c.Request.RequestURI, qr.MerchantID, c.ClientIP())
		return
	}

	imageData, err := base64.RawStdEncoding.DecodeString(qrCode)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.TemplPaymentErr("qr code decode error: "+err.Error(), errid, logger.NA, qr.Amount, logger.NA, c.Request.RequestURI, qr.MerchantID, c.ClientIP())
		return
	}

	c.Data(http.StatusOK, "image/png", imageData)
}

func (h *Handler) initQrRoutes(g *gin.RouterGroup) {
	g.POST("/qr/create", h.apiKeyMiddleware(), h.qrCreate)
	g.POST("/qr/info", h.apiKeyMiddleware(), h.qrInfo)
	g.POST("/qr/list", h.apiKeyMiddleware(), h.qrList)
	g.POST("/qr/lookup", h.qrLookup)
	g.GET("/qr/image/:qr_id", h.qrImage)
}
