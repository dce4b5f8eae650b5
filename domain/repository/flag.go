package repository

import (
	"context"

	"github.com/roomkit/guesthistory/domain/model"
)

// FlagRepository is the typed boolean view over the settings store, keyed by
// (flag, room, tenant). Absent keys read as false.
type FlagRepository interface {
	Get(ctx context.Context, clientKey string, flag model.FlagName, roomID string) (bool, error)
	Set(ctx context.Context, clientKey string, flag model.FlagName, roomID string, value bool) error
}
