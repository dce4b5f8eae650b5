package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/presentation/controllers/webhook"
)

// WebhookRoutes registers both callback URLs on the same handler; the
// payload's event field decides the behavior.
func WebhookRoutes(router *gin.RouterGroup, controller webhook.WebhookController) {
	hooks := router.Group("/webhook")
	{
		hooks.POST("/history", controller.RoomEvent)
		hooks.POST("/greeting", controller.RoomEvent)
	}
}
