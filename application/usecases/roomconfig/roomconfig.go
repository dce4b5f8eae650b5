// Package roomconfig drives per-room flag transitions. A toggle reads the
// current flag, and only when the target differs does it provision or tear
// down hooks and tokens before persisting the new value; a failure partway
// leaves state to be corrected by the next toggle rather than rolled back.
package roomconfig

import (
	"context"
	"fmt"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/chat"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"go.uber.org/zap"
)

type RoomConfigUseCase interface {
	// SetHistory moves the history flag to target. The returned bool reports
	// whether anything changed; an unchanged flag is a no-op.
	SetHistory(ctx context.Context, tenant *model.Tenant, roomID string, target bool) (bool, error)

	// SetGreeting toggles only the greeting hook; the history flag and its
	// token are untouched.
	SetGreeting(ctx context.Context, tenant *model.Tenant, roomID string, target bool) (bool, error)

	// Flags reads both flags for the room.
	Flags(ctx context.Context, clientKey, roomID string) (history, greeting bool, err error)

	// Glance computes the status descriptor for the room.
	Glance(ctx context.Context, clientKey, roomID string) (model.Glance, error)
}

type roomConfigUseCase struct {
	flags       repository.FlagRepository
	tokens      repository.TokenRepository
	provisioner *hookProvisioner
	chat        chat.API
	glanceKey   string
	logger      *logger.Logger
}

func NewRoomConfigUseCase(
	flags repository.FlagRepository,
	tokens repository.TokenRepository,
	hooks repository.HookRepository,
	chatAPI chat.API,
	baseURL string,
	glanceKey string,
	log *logger.Logger,
) RoomConfigUseCase {
	return &roomConfigUseCase{
		flags:       flags,
		tokens:      tokens,
		provisioner: newHookProvisioner(hooks, chatAPI, baseURL, log),
		chat:        chatAPI,
		glanceKey:   glanceKey,
		logger:      log,
	}
}

func (uc *roomConfigUseCase) SetHistory(ctx context.Context, tenant *model.Tenant, roomID string, target bool) (bool, error) {
	current, err := uc.flags.Get(ctx, tenant.ClientKey, model.FlagHistory, roomID)
	if err != nil {
		return false, fmt.Errorf("failed to read history flag: %w", err)
	}
	if current == target {
		uc.logger.Debug("history flag already set",
			zap.String("roomID", roomID), zap.Bool("value", target))
		return false, nil
	}

	if target {
		if err := uc.provisioner.enableHistory(ctx, tenant, roomID); err != nil {
			return false, err
		}
	} else {
		// Hooks and the token go first: a crash mid-sequence leaves stale
		// hooks (re-disable is idempotent) rather than an enabled flag with
		// nothing behind it.
		token, err := uc.tokens.Revoke(ctx, tenant.ClientKey, roomID)
		if err != nil {
			return false, fmt.Errorf("failed to revoke guest token: %w", err)
		}
		if token != "" {
			uc.logger.Info("guest token revoked",
				zap.String("roomID", roomID))
		}

		if err := uc.provisioner.disableHistory(ctx, tenant, roomID); err != nil {
			return false, err
		}
	}

	if err := uc.flags.Set(ctx, tenant.ClientKey, model.FlagHistory, roomID, target); err != nil {
		return false, fmt.Errorf("failed to write history flag: %w", err)
	}

	if err := uc.chat.UpdateGlance(ctx, tenant, roomID, uc.glanceKey, model.NewGlance(target)); err != nil {
		return false, fmt.Errorf("failed to refresh glance: %w", err)
	}

	uc.logger.Info("history flag set",
		zap.String("roomID", roomID), zap.Bool("value", target))
	return true, nil
}

func (uc *roomConfigUseCase) SetGreeting(ctx context.Context, tenant *model.Tenant, roomID string, target bool) (bool, error) {
	current, err := uc.flags.Get(ctx, tenant.ClientKey, model.FlagGreeting, roomID)
	if err != nil {
		return false, fmt.Errorf("failed to read greeting flag: %w", err)
	}
	if current == target {
		uc.logger.Debug("greeting flag already set",
			zap.String("roomID", roomID), zap.Bool("value", target))
		return false, nil
	}

	if target {
		if err := uc.provisioner.enableGreetingOnly(ctx, tenant, roomID); err != nil {
			return false, err
		}
	} else {
		if err := uc.provisioner.disableGreetingOnly(ctx, tenant, roomID); err != nil {
			return false, err
		}
	}

	if err := uc.flags.Set(ctx, tenant.ClientKey, model.FlagGreeting, roomID, target); err != nil {
		return false, fmt.Errorf("failed to write greeting flag: %w", err)
	}

	uc.logger.Info("greeting flag set",
		zap.String("roomID", roomID), zap.Bool("value", target))
	return true, nil
}

func (uc *roomConfigUseCase) Flags(ctx context.Context, clientKey, roomID string) (bool, bool, error) {
	history, err := uc.flags.Get(ctx, clientKey, model.FlagHistory, roomID)
	if err != nil {
		return false, false, fmt.Errorf("failed to read history flag: %w", err)
	}

	greeting, err := uc.flags.Get(ctx, clientKey, model.FlagGreeting, roomID)
	if err != nil {
		return false, false, fmt.Errorf("failed to read greeting flag: %w", err)
	}

	return history, greeting, nil
}

func (uc *roomConfigUseCase) Glance(ctx context.Context, clientKey, roomID string) (model.Glance, error) {
	enabled, err := uc.flags.Get(ctx, clientKey, model.FlagHistory, roomID)
	if err != nil {
		return model.Glance{}, fmt.Errorf("failed to read history flag: %w", err)
	}
	return model.NewGlance(enabled), nil
}
