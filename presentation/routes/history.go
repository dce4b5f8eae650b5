package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/presentation/controllers/history"
)

func HistoryRoutes(router *gin.RouterGroup, controller history.HistoryController) {
	hist := router.Group("/history")
	{
		hist.GET("/:token", controller.RoomContext)
		hist.GET("/:token/latest", controller.Latest)
	}
}
