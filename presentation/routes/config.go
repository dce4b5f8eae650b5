package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/presentation/controllers/config"
)

// ConfigRoutes are room scoped and expect the tenant auth middleware on the
// group.
func ConfigRoutes(router *gin.RouterGroup, controller config.ConfigController) {
	router.GET("/glance", controller.Glance)

	cfg := router.Group("/config")
	{
		cfg.GET("/room", controller.GetFlags)
		cfg.POST("/room", controller.SetHistoryFlag)
		cfg.POST("/room/greeting", controller.SetGreetingFlag)
	}
}
