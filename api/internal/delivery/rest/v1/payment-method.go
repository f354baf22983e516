package v1

import (
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// POST /{version}/method/create
func (h *Handler) methodCreate(c *gin.Context) {
	var data struct {
		Type        string `json:"type" validate:"required,oneof=credit_card pix boleto bank_transfer"`
		Description string `json:"description" validate:"max=256"`
	}

	errid := logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	v := validator.New()

	if err := v.Struct(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	method, err := h.services.PaymentMethods.Create(merchant.MerchantID, data.Type, data.Description)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{
		"error":  false,
		"method": responsePaymentMethod{MethodID: method.MethodID, Type: method.Type, Description: method.Description},
	})
}

// POST /{version}/method/list
func (h *Handler) methodList(c *gin.Context) {
	errid := logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	methods, err := h.services.PaymentMethods.ListByMerchant(merchant.MerchantID)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.Error("method list error: "+err.Error(), "error_id", errid, "merchant_id", merchant.MerchantID)
		return
	}

	resp := []responsePaymentMethod{}
	for _, method := range methods {
		resp = append(resp, responsePaymentMethod{MethodID: method.MethodID, Type: method.Type, Description: method.Description})
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": false, "methods": resp})
}

// POST /{version}/method/update
func (h *Handler) methodUpdate(c *gin.Context) {
	var data struct {
		MethodId    string `json:"method_id" validate:"required,uuid4"`
		Type        string `json:"type" validate:"required,oneof=credit_card pix boleto bank_transfer"`
		Description string `json:"description" validate:"max=256"`
	}

	errid := logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	v := validator.New()

	if err := v.Struct(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	if !h.methodBelongsToMerchant(c, data.MethodId, merchant.MerchantID, errid) {
		return
	}

	method, err := h.services.PaymentMethods.Update(data.MethodId, data.Type, data.Description)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{
		"error":  false,
		"method": responsePaymentMethod{MethodID: method.MethodID, Type: method.Type, Description: method.Description},
	})
}

// POST /{version}/method/delete
func (h *Handler) methodDelete(c *gin.Context) {
	var data struct {
		MethodId string `json:"method_id"`
	}

	errid := logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil || data.MethodId == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	if !h.methodBelongsToMerchant(c, data.MethodId, merchant.MerchantID, errid) {
		return
	}

	if err := h.services.PaymentMethods.Delete(data.MethodId); err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": false})
}

func (h *Handler) methodBelongsToMerchant(c *gin.Context, methodID, merchantID, errid string) bool {
	method, err := h.services.PaymentMethods.FindByMethodID(methodID)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return false
	}
	if method.MerchantID != merchantID {
		responseErr(c, http.StatusNotFound, domain.ErrNotFound.Error(), "")
		return false
	}
	return true
}

// POST /{version}/method/info
func (h *Handler) methodInfo(c *gin.Context) {
	var data struct {
		MethodId string `json:"method_id"`
	}

	errid := logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil || data.MethodId == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	method, err := h.services.PaymentMethods.FindByMethodID(data.MethodId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}
	if method.MerchantID != merchant.MerchantID {
		responseErr(c, http.StatusNotFound, domain.ErrNotFound.Error(), "")
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{
		"error":  false,
		"method": responsePaymentMethod{MethodID: method.MethodID, Type: method.Type, Description: method.Description},
	})
}

func (h *Handler) initPaymentMethodRoutes(g *gin.RouterGroup) {
	g.POST("/method/create", h.apiKeyMiddleware(), h.methodCreate)
	g.POST("/method/info", h.apiKeyMiddleware(), h.methodInfo)
	g.POST("/method/list", h.apiKeyMiddleware(), h.methodList)
	g.POST("/method/update", h.apiKeyMiddleware(), h.methodUpdate)
	g.POST("/method/delete", h.apiKeyMiddleware(), h.methodDelete)
}
