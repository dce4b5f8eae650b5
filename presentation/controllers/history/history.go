// Package history serves the unauthenticated guest history endpoints. The
// token in the URL is the only credential.
package history

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/application/usecases/guestaccess"
	"github.com/roomkit/guesthistory/domain/model"
)

type HistoryController interface {
	RoomContext(ctx *gin.Context)
	Latest(ctx *gin.Context)
}

type historyController struct {
	usecase guestaccess.GuestAccessUseCase
}

func NewHistoryController(usecase guestaccess.GuestAccessUseCase) HistoryController {
	return &historyController{
		usecase: usecase,
	}
}

// RoomContext resolves the token to the room it belongs to, for the page
// shell that then polls Latest.
func (c *historyController) RoomContext(ctx *gin.Context) {
	tokenCtx, ok := c.resolve(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, RoomContextResponse{
		RoomID:   tokenCtx.Room.ID,
		RoomName: tokenCtx.Room.Name,
	})
}

func (c *historyController) Latest(ctx *gin.Context) {
	messages, tokenCtx, err := c.usecase.LatestHistory(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	items := make([]MessageResponse, len(messages))
	for i, msg := range messages {
		items[i] = MessageResponse{
			ID:      msg.ID,
			From:    msg.From,
			Message: msg.Message,
			Date:    msg.Date,
		}
	}

	ctx.JSON(http.StatusOK, LatestHistoryResponse{
		RoomName: tokenCtx.Room.Name,
		Items:    items,
	})
}

func (c *historyController) resolve(ctx *gin.Context) (*model.TokenContext, bool) {
	tokenCtx, err := c.usecase.ResolveToken(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		c.writeError(ctx, err)
		return nil, false
	}
	return tokenCtx, true
}

// writeError keeps the three failure modes distinguishable for the page: a
// URL with no token, a token that resolves to nothing, and everything else.
func (c *historyController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrMissingToken):
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "missing_token",
			Message: "Missing Token",
		})
	case errors.Is(err, model.ErrTokenNotFound):
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "invalid_token",
			Message: "Token is invalid",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "history_failed",
			Message: err.Error(),
		})
	}
}
