package v1

import (
	"gateway/api/internal/config"
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"gateway/api/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /{version}/webhook/events/list
func (h *Handler) webhookEventList(c *gin.Context) {
	var data struct {
		EventType string `json:"event_type"`
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

	filter := repository.WebhookEventsFilter{
		MerchantID: merchant.MerchantID,
		EventType:  data.EventType,
	}
	if data.Status != "" {
		status, ok := domain.StrToWebhookStatus(data.Status)
		if !ok {
			responseErr(c, http.StatusBadRequest, domain.ErrInvalidStatus.Error(), "")
			return
		}
		filter.Status = &status
	}

	events, err := h.services.WebhookEvents.List(filter)
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.Error("webhook event list error: "+err.Error(), "error_id", errid, "merchant_id", merchant.MerchantID)
		return
	}

	resp := responseWebhookEventList{Error: false, Events: []responseWebhookEvent{}}
	for i := range events {
		resp.Events = append(resp.Events, toResponseWebhookEvent(&events[i]))
	}

	c.AbortWithStatusJSON(http.StatusOK, resp)
}

// POST /{version}/webhook/events/info
func (h *Handler) webhookEventInfo(c *gin.Context) {
	var data struct {
		EventId string `json:"event_id"`
	}

	var errid = logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil || data.EventId == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	event, err := h.services.WebhookEvents.FindByEventID(data.EventId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}
	if event.MerchantID != merchant.MerchantID {
		responseErr(c, http.StatusNotFound, domain.ErrNotFound.Error(), "")
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWebhookEventOK{Error: false, Event: toResponseWebhookEvent(event)})
}

// POST /{version}/webhook/events/attempts
func (h *Handler) webhookEventAttempts(c *gin.Context) {
	var data struct {
		EventId string `json:"event_id"`
	}

	var errid = logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil || data.EventId == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	event, err := h.services.WebhookEvents.FindByEventID(data.EventId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}
	if event.MerchantID != merchant.MerchantID {
		responseErr(c, http.StatusNotFound, domain.ErrNotFound.Error(), "")
		return
	}

	attempts, err := h.services.WebhookEvents.ListAttempts(data.EventId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	resp := responseWebhookAttemptList{Error: false, Attempts: []responseWebhookAttempt{}}
	for i := range attempts {
		resp.Attempts = append(resp.Attempts, toResponseWebhookAttempt(&attempts[i]))
	}

	c.AbortWithStatusJSON(http.StatusOK, resp)
}

// POST /{version}/webhook/events/retry
// puts a failed event back in the queue, due immediately
func (h *Handler) webhookEventRetry(c *gin.Context) {
	var data struct {
		EventId string `json:"event_id"`
	}

	var errid = logger.GenErrorId()

	merchant := h.merchantFromCtx(c)
	if merchant == nil {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgAccessError, "")
		return
	}

	if err := c.ShouldBindJSON(&data); err != nil || data.EventId == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	event, err := h.services.WebhookEvents.FindByEventID(data.EventId)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}
	if event.MerchantID != merchant.MerchantID {
		responseErr(c, http.StatusNotFound, domain.ErrNotFound.Error(), "")
		return
	}

	if err := h.services.WebhookEvents.RetryNow(data.EventId); err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": false})
}

func (h *Handler) initWebhookRoutes(g *gin.RouterGroup) {
	g.POST("/webhook/events/list", h.apiKeyMiddleware(), h.webhookEventList)
	g.POST("/webhook/events/info", h.apiKeyMiddleware(), h.webhookEventInfo)
	g.POST("/webhook/events/attempts", h.apiKeyMiddleware(), h.webhookEventAttempts)
	g.POST("/webhook/events/retry", h.apiKeyMiddleware(), h.webhookEventRetry)

	g.POST("/webhook/updateProxyList", h.adminAccessMiddleware(), h.updateProxyList)
	g.POST("/webhook/getProxyList", h.adminAccessMiddleware(), h.getProxyList)
}

func (h *Handler) updateProxyList(c *gin.Context) {
	if h.config.Webhook.ProxyPath == "" {
		responseErr(c, http.StatusBadRequest, "proxy path is not configured", "")
		return
	}

	h.services.WebhookSender.UpdateList(config.GetProxyList(h.config.Webhook.ProxyPath))
	c.JSON(200, gin.H{
		"ok": true,
	})
}

func (h *Handler) getProxyList(c *gin.Context) {
	c.JSON(200, gin.H{
		"proxies": h.services.WebhookSender.GetList(),
	})
}
