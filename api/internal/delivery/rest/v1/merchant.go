package v1

import (
	"errors"
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func (h *Handler) merchantInit(c *gin.Context) {
	var data struct {
		MerchantName string `json:"merchant_name" validate:"required,min=1,max=32,alphanum"`
		WebhookUrl   string `json:"webhook_url" validate:"required,url,startswith=https://"`
		UserID       string `json:"user_id" validate:"required,uuid4"`
	}

	errid := logger.GenErrorId()

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, errid)
		h.log.Debug("bind json error: " + err.Error())
		return
	}

	v := validator.New()

	if err := v.Struct(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, errid)
		return
	}

	merchant, err := h.services.Merchants.Create(data.MerchantName, data.WebhookUrl, data.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			responseErr(c, http.StatusConflict, domain.ErrMsgMerchantNameExists, "")
			return
		}
		responseErr(c, domain.GetStatusByErr(err), domain.ErrMsgInternalServerError, errid)
		h.log.Error("merchant create error: "+err.Error(), "error_id", errid, "merchant_name", data.MerchantName)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseMerchantCreated{
		Error:      false,
		ApiKey:     merchant.ApiKey,
		MerchantId: merchant.MerchantID,
	})
}

// POST /{version}/merchant/info
// api keys are write-only after creation, not echoed back here
func (h *Handler) merchantInfo(c *gin.Context) {
	var data struct {
		MerchantId string `json:"merchant_id"`
	}

	errid := logger.GenErrorId()

	if err := c.ShouldBindJSON(&data); err != nil || data.MerchantId == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	merchant, err := h.services.Merchants.FindByID(data.MerchantId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{
		"error": false,
		"merchant": gin.H{
			"merchant_id":   merchant.MerchantID,
			"merchant_name": merchant.MerchantName,
			"webhook_url":   merchant.WebhookUrl,
			"user_id":       merchant.UserID,
		},
	})
}

// POST /{version}/merchant/list
func (h *Handler) merchantList(c *gin.Context) {
	errid := logger.GenErrorId()

	merchants, err := h.services.Merchants.List()
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.Error("merchant list error: "+err.Error(), "error_id", errid)
		return
	}

	resp := []gin.H{}
	for _, merchant := range merchants {
		resp = append(resp, gin.H{
			"merchant_id":   merchant.MerchantID,
			"merchant_name": merchant.MerchantName,
			"webhook_url":   merchant.WebhookUrl,
			"user_id":       merchant.UserID,
		})
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": false, "merchants": resp})
}

func (h *Handler) initMerchantRoutes(g *gin.RouterGroup) {
	g.POST("/merchant/create", h.adminAccessMiddleware(), h.merchantInit)
	g.POST("/merchant/info", h.adminAccessMiddleware(), h.merchantInfo)
	g.POST("/merchant/list", h.adminAccessMiddleware(), h.merchantList)
}
