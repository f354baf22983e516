package v1

import (
	"gateway/api/internal/config"
	"gateway/api/internal/logger"
	"gateway/api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	services *service.Services
	db       *gorm.DB
	config   *config.Config
	log      logger.Logger
}

func (h *Handler) InitRoutes(g *gin.RouterGroup) {
	{
		h.initPaymentRoutes(g)
		h.initQrRoutes(g)
		h.initWebhookRoutes(g)

		h.initMerchantRoutes(g)
		h.initPaymentMethodRoutes(g)
		h.initUserRoutes(g)
	}
}

func NewHandler(services *service.Services, db *gorm.DB, config *config.Config, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		log:      log,
		services: services,
		db:       db,
	}
}
