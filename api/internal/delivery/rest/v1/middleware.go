package v1

import (
	"errors"
	"gateway/api/internal/domain"
	"gateway/api/internal/infra/cache"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const DEFAULT_LIMIT = 150
const EXPIRATION_SECONDS = 30

const merchantCtxKey = "merchant"

// returns true if rate limit is exceeded
func rateLimit(apiKey string, limit int) bool {
	var expiration = time.Second * time.Duration(EXPIRATION_SECONDS)

	count := cache.RateLimitsCache.LoadOrSet(apiKey, 1, expiration)
	if count == nil {
		return false
	}

	countInt, ok := count.(int)
	if !ok {
		return true
	}

	if countInt > limit {
		return true
	}

	cache.RateLimitsCache.Set(apiKey, countInt+1, expiration)
	return false
}

// apiKeyMiddleware resolves the calling merchant from the X-Api-Key header and
// stores it on the request context.
func (h *Handler) apiKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.Request.Header.Get("X-Api-Key")
		if apiKey == "" {
			responseErr(c, http.StatusUnauthorized, domain.ErrMsgApiKeyNotFound, "")
			c.Abort()
			return
		}

		if rateLimit(apiKey, DEFAULT_LIMIT) {
			responseErr(c, http.StatusTooManyRequests, domain.ErrMsgRateLimitExceeded, "")
			c.Abort()
			return
		}

		merchant, err := h.services.Merchants.FindByApiKey(apiKey)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				responseErr(c, http.StatusUnauthorized, domain.ErrMsgApiKeyNotFound, "")
			} else {
				responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, "")
			}
			c.Abort()
			return
		}

		c.Set(merchantCtxKey, merchant)
		c.Next()
	}
}

func (h *Handler) merchantFromCtx(c *gin.Context) *domain.Merchants {
	merchant, ok := c.Get(merchantCtxKey)
	if !ok {
		return nil
	}
	m, ok := merchant.(*domain.Merchants)
	if !ok {
		return nil
	}
	return m
}

func (h *Handler) adminAccessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.config.PrivateKey != c.Request.Header.Get("Access") {
			responseErr(c, http.StatusUnauthorized, "access denied", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
