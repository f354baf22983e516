package app

import (
	"context"
	"fmt"
	"gateway/api/internal/config"
	"gateway/api/internal/delivery"
	"gateway/api/internal/logger"
	"gateway/api/internal/service"
	"gateway/pkg/clock"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	cors "github.com/rs/cors/wrapper/gin"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Db     *gorm.DB
	Log    logger.Logger
}

func (app *App) Start() {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(cors.Default())

	services := service.NewServices(app.Db, app.Log, app.Config, clock.System())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.Autostart(ctx, services)

	{
		h := delivery.InitHandler(services, app.Db, app.Config, app.Log)

		h.InitAPI(r)
	}

	eChan := make(chan error)
	interrupt := make(chan os.Signal, 1)

	fmt.Println("gateway web is starting")

	go func() {
		err := r.Run(app.Config.Api.Ipv4)
		if err != nil {
			eChan <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-eChan:
		app.Log.TemplHTTPError("app fatal error", app.Config.Api.Ipv4, err)
		return
	case <-interrupt:
		return
	}
}

// start background loops
func (app *App) Autostart(ctx context.Context, services *service.Services) {
	fmt.Println("Autostart: start webhook dispatcher")
	services.Dispatcher.Start(ctx)

	fmt.Println("Autostart: start qr expiry sweep")
	services.QrPayments.StartExpirySweep(ctx)
}
