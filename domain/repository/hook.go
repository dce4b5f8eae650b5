package repository

import (
	"context"

	"github.com/roomkit/guesthistory/domain/model"
)

// HookRepository persists the per-room record of live remote subscriptions.
type HookRepository interface {
	// Get returns the room's hook record; the second return is false when
	// none exists.
	Get(ctx context.Context, clientKey, roomID string) (*model.HookRecord, bool, error)

	Save(ctx context.Context, clientKey, roomID string, record *model.HookRecord) error

	// Delete tolerates an absent record.
	Delete(ctx context.Context, clientKey, roomID string) error
}
