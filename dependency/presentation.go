package dependency

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/infrastructure/cache"
	"github.com/roomkit/guesthistory/infrastructure/metrics"
	configCtrl "github.com/roomkit/guesthistory/presentation/controllers/config"
	"github.com/roomkit/guesthistory/presentation/controllers/history"
	"github.com/roomkit/guesthistory/presentation/controllers/lifecycle"
	"github.com/roomkit/guesthistory/presentation/controllers/webhook"
	"github.com/roomkit/guesthistory/presentation/middlewares"
	"github.com/roomkit/guesthistory/presentation/routes"
	"go.uber.org/zap"
)

func (c *Container) initControllers() {
	c.ConfigController = configCtrl.NewConfigController(c.RoomConfigUC)
	c.WebhookController = webhook.NewWebhookController(c.GuestAccessUC, c.Logger)
	c.HistoryController = history.NewHistoryController(c.GuestAccessUC)
	c.LifecycleController = lifecycle.NewLifecycleController(c.TenantUC)

	c.Logger.Info("Controllers initialized successfully")
}

func (c *Container) SetupRouter() *gin.Engine {
	switch c.Config.Server.RunMode {
	case "release", "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()

	router.Use(middlewares.GinLogger(c.Logger))
	router.Use(middlewares.CorsMiddleware(c.Config))

	router.GET("/healthcheck", c.healthCheckHandler)

	c.registerObservabilityRoutes(router)

	c.registerAPIRoutes(router)

	c.Logger.Info("Router configured successfully")

	return router
}

func (c *Container) registerAPIRoutes(router *gin.Engine) {
	// Platform-signed surface: everything the chat platform calls on behalf
	// of an installed tenant.
	signed := router.Group("/")
	{
		signed.Use(middlewares.TenantAuthMiddleware(c.TenantRepo, c.Logger))

		routes.ConfigRoutes(signed, c.ConfigController)
		routes.WebhookRoutes(signed, c.WebhookController)
	}

	// Anonymous guest surface: the token in the URL is the only credential,
	// so these routes get the IP rate limiter instead of tenant auth.
	anon := router.Group("/")
	{
		anon.Use(middlewares.RateLimiterMiddleware(cache.GetRedis(), c.Logger, middlewares.GuestRateLimiterConfig()))

		routes.HistoryRoutes(anon, c.HistoryController)
	}

	routes.LifecycleRoutes(&router.RouterGroup, c.LifecycleController)
}

func (c *Container) healthCheckHandler(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (c *Container) registerObservabilityRoutes(router *gin.Engine) {
	metricsGroup := router.Group("/observability")
	{
		metrics.GetHandler(metricsGroup, c.MetricsManager)
	}
}

func (c *Container) Shutdown() error {
	c.Logger.Info("Shutting down dependencies...")

	if c.TracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.TracerProvider.Shutdown(ctx); err != nil {
			c.Logger.Error("failed to shutdown tracer provider", zap.Error(err))
		}
	}

	cache.CloseRedis()

	if err := c.Logger.Log.Sync(); err != nil {
		c.Logger.Error("failed to sync logger", zap.Error(err))
	}

	c.Logger.Info("Dependencies shut down successfully")

	return nil
}
