// Package config exposes the per-room flag endpoints backing the add-on's
// configuration page and glance.
package config

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/application/usecases/roomconfig"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/presentation/middlewares"
)

type ConfigController interface {
	SetHistoryFlag(ctx *gin.Context)
	SetGreetingFlag(ctx *gin.Context)
	GetFlags(ctx *gin.Context)
	Glance(ctx *gin.Context)
}

type configController struct {
	usecase roomconfig.RoomConfigUseCase
}

func NewConfigController(usecase roomconfig.RoomConfigUseCase) ConfigController {
	return &configController{
		usecase: usecase,
	}
}

func (c *configController) SetHistoryFlag(ctx *gin.Context) {
	c.setFlag(ctx, c.usecase.SetHistory)
}

func (c *configController) SetGreetingFlag(ctx *gin.Context) {
	c.setFlag(ctx, c.usecase.SetGreeting)
}

type toggleFunc func(ctx context.Context, tenant *model.Tenant, roomID string, target bool) (bool, error)

func (c *configController) setFlag(ctx *gin.Context, toggle toggleFunc) {
	tenant, roomID, ok := roomScope(ctx)
	if !ok {
		return
	}

	var req FlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	// A changed toggle and an already-set one both succeed; only a failed
	// transition is an error.
	if _, err := toggle(ctx.Request.Context(), tenant, roomID, model.FlagToBool(req.Value)); err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "toggle_failed",
			Message: err.Error(),
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *configController) GetFlags(ctx *gin.Context) {
	tenant, roomID, ok := roomScope(ctx)
	if !ok {
		return
	}

	history, greeting, err := c.usecase.Flags(ctx.Request.Context(), tenant.ClientKey, roomID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "read_failed",
			Message: err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, FlagsResponse{
		History:  history,
		Greeting: greeting,
	})
}

func (c *configController) Glance(ctx *gin.Context) {
	tenant, roomID, ok := roomScope(ctx)
	if !ok {
		return
	}

	glance, err := c.usecase.Glance(ctx.Request.Context(), tenant.ClientKey, roomID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "glance_failed",
			Message: err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, glance)
}

// roomScope pulls the authenticated tenant and room out of the request; the
// middleware put them there for every room-scoped route.
func roomScope(ctx *gin.Context) (*model.Tenant, string, bool) {
	tenant, exists := middlewares.GetTenantFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "tenant authentication required",
		})
		return nil, "", false
	}

	roomID, exists := middlewares.GetRoomIDFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "request is not room scoped",
		})
		return nil, "", false
	}

	return tenant, roomID, true
}
