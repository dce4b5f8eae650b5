package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/presentation/controllers/lifecycle"
)

func LifecycleRoutes(router *gin.RouterGroup, controller lifecycle.LifecycleController) {
	installable := router.Group("/installable")
	{
		installable.POST("", controller.Install)
		installable.DELETE("/:clientKey", controller.Uninstall)
	}
}
