package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"paybridge/internal/handler"
	"paybridge/internal/handler/api"
	"paybridge/internal/middleware"
	"paybridge/internal/repository"
	"paybridge/internal/tappay"

	"gorm.io/gorm"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	db *gorm.DB,
	client *tappay.Client,
	logger *zap.Logger,
	apiKey string,
	notifyDeduper middleware.NotifyDeduper,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	// Repositories
	repos := &api.Repos{
		Payment: repository.NewPaymentRecordRepository(db),
	}

	// Handlers
	paymentHandler := api.NewPaymentHandler(repos, client, logger)
	notifyHandler := handler.NewNotifyHandler(repos.Payment, logger)

	// API group with auth middleware
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.APIAuth(apiKey))

	apiGroup.POST("/payments/prime", paymentHandler.PayByPrime)
	apiGroup.POST("/payments/token", paymentHandler.PayByToken)
	apiGroup.POST("/payments/query", paymentHandler.QueryGatewayRecords)
	apiGroup.POST("/payments/:order_number/refund", paymentHandler.Refund)
	apiGroup.GET("/payments", paymentHandler.List)

	// Gateway callback (protected by deduplication, not by API auth: the
	// gateway signs nothing, so the handler trusts only the trade id lookup)
	callbackGroup := e.Group("/callbacks/tappay")
	callbackGroup.Use(middleware.NotifyDedup(notifyDeduper))
	callbackGroup.POST("/notify", notifyHandler.HandleNotify)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
