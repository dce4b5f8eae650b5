// Package webhook receives the room event callbacks registered by the hook
// provisioner.
package webhook

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/application/usecases/guestaccess"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"github.com/roomkit/guesthistory/presentation/middlewares"
	"go.uber.org/zap"
)

type WebhookController interface {
	RoomEvent(ctx *gin.Context)
}

type webhookController struct {
	usecase guestaccess.GuestAccessUseCase
	logger  *logger.Logger
}

func NewWebhookController(usecase guestaccess.GuestAccessUseCase, log *logger.Logger) WebhookController {
	return &webhookController{
		usecase: usecase,
		logger:  log,
	}
}

// RoomEvent handles both registered event kinds; the payload's event field,
// not the path, decides how it is treated.
func (c *webhookController) RoomEvent(ctx *gin.Context) {
	tenant, exists := middlewares.GetTenantFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "tenant authentication required",
		})
		return
	}

	var req EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	event, err := req.toRoomEvent()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if _, err := c.usecase.HandleRoomEvent(ctx.Request.Context(), tenant, event); err != nil {
		// The platform retries failed deliveries; log and report so a
		// transient chat API failure gets another shot.
		c.logger.Error("failed to handle room event",
			zap.String("event", event.Event),
			zap.String("roomID", event.Room.ID),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "event_failed",
			Message: err.Error(),
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (r *EventRequest) toRoomEvent() (*model.RoomEvent, error) {
	senderID := r.senderID()
	if senderID == "" {
		return nil, errMissingSender
	}
	if r.Item.Room.ID.String() == "" {
		return nil, errMissingRoom
	}

	return &model.RoomEvent{
		Event: r.Event,
		Room: model.RoomIdentity{
			ID:   r.Item.Room.ID.String(),
			Name: r.Item.Room.Name,
		},
		SenderID: senderID,
	}, nil
}

// senderID flattens the two payload shapes: message events nest the sender
// under item.message.from, enter events under item.sender.
func (r *EventRequest) senderID() string {
	if r.Event == model.EventRoomMessage {
		if r.Item.Message != nil && r.Item.Message.From != nil {
			return r.Item.Message.From.ID.String()
		}
		return ""
	}
	if r.Item.Sender != nil {
		return r.Item.Sender.ID.String()
	}
	return ""
}
