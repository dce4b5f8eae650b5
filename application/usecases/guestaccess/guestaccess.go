// Package guestaccess issues and resolves guest history tokens and handles
// the inbound room events that advertise them.
package guestaccess

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/chat"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"go.uber.org/zap"
)

type GuestAccessUseCase interface {
	// HistoryLink returns the room's guest history URL, reusing the live
	// token when one exists so links stay stable.
	HistoryLink(ctx context.Context, clientKey string, room model.RoomIdentity) (string, error)

	// ResolveToken maps a token back to its tenant and room. Unknown tokens
	// yield model.ErrTokenNotFound.
	ResolveToken(ctx context.Context, token string) (*model.TokenContext, error)

	// LatestHistory resolves the token and fetches the room's recent
	// messages from the chat platform.
	LatestHistory(ctx context.Context, token string) ([]chat.Message, *model.TokenContext, error)

	// HandleRoomEvent applies the eligibility rules to an inbound event and,
	// when eligible, posts the history link card into the room. The returned
	// bool reports whether a message was sent.
	HandleRoomEvent(ctx context.Context, tenant *model.Tenant, event *model.RoomEvent) (bool, error)
}

type guestAccessUseCase struct {
	flags        repository.FlagRepository
	tokens       repository.TokenRepository
	tenants      repository.TenantRepository
	chat         chat.API
	baseURL      string
	historyLimit int
	logger       *logger.Logger
}

func NewGuestAccessUseCase(
	flags repository.FlagRepository,
	tokens repository.TokenRepository,
	tenants repository.TenantRepository,
	chatAPI chat.API,
	baseURL string,
	historyLimit int,
	log *logger.Logger,
) GuestAccessUseCase {
	return &guestAccessUseCase{
		flags:        flags,
		tokens:       tokens,
		tenants:      tenants,
		chat:         chatAPI,
		baseURL:      baseURL,
		historyLimit: historyLimit,
		logger:       log,
	}
}

func (uc *guestAccessUseCase) HistoryLink(ctx context.Context, clientKey string, room model.RoomIdentity) (string, error) {
	token, found, err := uc.tokens.GetByRoom(ctx, clientKey, room.ID)
	if err != nil {
		return "", fmt.Errorf("failed to look up guest token: %w", err)
	}
	if found {
		return uc.link(token), nil
	}

	// Creation is check-then-act: two guests hitting a fresh room at once
	// can each mint a token. Rare, benign, healed by the next revoke.
	token = uuid.NewString()
	if err := uc.tokens.Create(ctx, clientKey, room, token); err != nil {
		return "", fmt.Errorf("failed to create guest token: %w", err)
	}

	uc.logger.Info("guest token created", zap.String("roomID", room.ID))
	return uc.link(token), nil
}

func (uc *guestAccessUseCase) ResolveToken(ctx context.Context, token string) (*model.TokenContext, error) {
	if token == "" {
		return nil, model.ErrMissingToken
	}
	return uc.tokens.Resolve(ctx, token)
}

func (uc *guestAccessUseCase) LatestHistory(ctx context.Context, token string) ([]chat.Message, *model.TokenContext, error) {
	tokenCtx, err := uc.ResolveToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	tenant, err := uc.tenants.GetByClientKey(ctx, tokenCtx.ClientKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load install record: %w", err)
	}

	messages, err := uc.chat.GetLatestHistory(ctx, tenant, tokenCtx.Room.ID, uc.historyLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch room history: %w", err)
	}

	return messages, tokenCtx, nil
}

func (uc *guestAccessUseCase) HandleRoomEvent(ctx context.Context, tenant *model.Tenant, event *model.RoomEvent) (bool, error) {
	user, err := uc.chat.GetUser(ctx, tenant, event.SenderID)
	if err != nil {
		return false, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsGuest {
		return false, nil
	}

	history, err := uc.flags.Get(ctx, tenant.ClientKey, model.FlagHistory, event.Room.ID)
	if err != nil {
		return false, fmt.Errorf("failed to read history flag: %w", err)
	}
	// The advertised token only exists while history is on, so even
	// greeting events are gated on the history flag.
	if !history {
		return false, nil
	}

	if event.HookType() == model.HookGreeting {
		greeting, err := uc.flags.Get(ctx, tenant.ClientKey, model.FlagGreeting, event.Room.ID)
		if err != nil {
			return false, fmt.Errorf("failed to read greeting flag: %w", err)
		}
		if !greeting {
			return false, nil
		}
	}

	link, err := uc.HistoryLink(ctx, tenant.ClientKey, event.Room)
	if err != nil {
		return false, err
	}

	card := &chat.Card{
		Style: "link",
		URL:   link,
		ID:    uuid.NewString(),
		Title: "Looking for room history? ...follow me",
		Description: fmt.Sprintf(
			"Hi %s! Use this link to browse through messages from your teammates. "+
				"You can also type '/history' in chat to see this card again.", user.Name),
		Icon: chat.CardIcon{URL: uc.baseURL + "/img/History-transparent-128.png"},
	}

	msg := card.Title + card.Description
	if err := uc.chat.SendMessage(ctx, tenant, event.Room.ID, msg, chat.MessageOptions{Color: "green"}, card); err != nil {
		return false, fmt.Errorf("failed to send history card: %w", err)
	}

	uc.logger.Info("history card sent",
		zap.String("roomID", event.Room.ID),
		zap.String("event", event.Event),
	)
	return true, nil
}

func (uc *guestAccessUseCase) link(token string) string {
	return uc.baseURL + "/history/" + token
}
