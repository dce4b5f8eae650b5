// Package lifecycle handles the platform's install and uninstall callbacks.
package lifecycle

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/application/usecases/tenant"
	"github.com/roomkit/guesthistory/domain/model"
)

type LifecycleController interface {
	Install(ctx *gin.Context)
	Uninstall(ctx *gin.Context)
}

type lifecycleController struct {
	usecase tenant.TenantUseCase
}

func NewLifecycleController(usecase tenant.TenantUseCase) LifecycleController {
	return &lifecycleController{
		usecase: usecase,
	}
}

// Install persists the credentials the platform hands over at install time.
// The callback is unauthenticated; knowing the secret it carries is what
// authenticates every later request.
func (c *lifecycleController) Install(ctx *gin.Context) {
	var req InstallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	installed := &model.Tenant{
		ClientKey:   req.OAuthID,
		OAuthSecret: req.OAuthSecret,
		APIBaseURL:  req.APIBaseURL,
		GroupID:     req.GroupID.String(),
		RoomID:      req.RoomID.String(),
		InstalledAt: time.Now().UTC(),
	}

	if err := c.usecase.Install(ctx.Request.Context(), installed); err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "install_failed",
			Message: err.Error(),
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *lifecycleController) Uninstall(ctx *gin.Context) {
	clientKey := ctx.Param("clientKey")
	if clientKey == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "client key is required",
		})
		return
	}

	if err := c.usecase.Uninstall(ctx.Request.Context(), clientKey); err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "uninstall_failed",
			Message: err.Error(),
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}
